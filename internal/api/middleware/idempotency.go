package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/beanleaf/cafeapi/internal/repository"
	"github.com/beanleaf/cafeapi/pkg/errors"
)

const (
	idempotencyKeyContextKey  = "idempotency_key"
	requestHashContextKey     = "idempotency_request_hash"
	existingOrderIDContextKey = "idempotency_existing_order_id"
)

// IdempotencyMiddleware guards order submission against double-submits
// (a retried QR scan or a pre-order form resubmission). Clients opt in by
// sending an Idempotency-Key header; a repeated key with the same body maps
// to the previously created order, a repeated key with a different body is
// rejected.
func IdempotencyMiddleware(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("Idempotency-Key")
		if key == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		hash := sha256.Sum256(body)
		requestHash := hex.EncodeToString(hash[:])

		c.Set(idempotencyKeyContextKey, key)
		c.Set(requestHashContextKey, requestHash)

		existing, err := repos.IdempotencyKey.Get(c.Request.Context(), key)
		if err != nil {
			if _, ok := err.(*errors.ErrNotFound); !ok {
				logger.Error("Failed to look up idempotency key", zap.Error(err))
			}
			c.Next()
			return
		}

		if existing.RequestHash != requestHash {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "idempotency key reused with a different payload"})
			return
		}

		c.Set(existingOrderIDContextKey, existing.CafeOrderID.String())
		c.Next()
	}
}

// GetIdempotencyInfo returns the idempotency key, request hash, any existing
// order ID, and whether an existing order was found
func GetIdempotencyInfo(c *gin.Context) (string, string, string, bool) {
	key := c.GetString(idempotencyKeyContextKey)
	hash := c.GetString(requestHashContextKey)
	existingID := c.GetString(existingOrderIDContextKey)
	return key, hash, existingID, existingID != ""
}
