package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/beanleaf/cafeapi/internal/api/middleware"
	"github.com/beanleaf/cafeapi/internal/domain"
	"github.com/beanleaf/cafeapi/internal/repository"
	"github.com/beanleaf/cafeapi/internal/service"
	"github.com/beanleaf/cafeapi/pkg/errors"
)

// OrderSubmitResponse represents the order submission response
type OrderSubmitResponse struct {
	OrderID              string             `json:"order_id"`
	Status               domain.OrderStatus `json:"status"`
	Total                float64            `json:"total"`
	EstimatedPrepMinutes int                `json:"estimated_prep_minutes"`
}

// HandleSubmitOrder handles POST /v1/orders
func HandleSubmitOrder(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Check if this is an idempotent replay
		_, _, existingOrderID, isExisting := middleware.GetIdempotencyInfo(c)
		if isExisting {
			orderID, err := uuid.Parse(existingOrderID)
			if err != nil {
				logger.Error("Invalid existing order ID from idempotency", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
				return
			}

			order, err := repos.Order.GetByID(c.Request.Context(), orderID)
			if err != nil {
				logger.Error("Failed to get existing order", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
				return
			}

			c.JSON(http.StatusOK, OrderSubmitResponse{
				OrderID:              order.ID.String(),
				Status:               order.Status,
				Total:                order.Total.InexactFloat64(),
				EstimatedPrepMinutes: order.EstimatedPrepMinutes,
			})
			return
		}

		var req service.OrderSubmitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		orderService := service.NewOrderService(repos, logger)
		order, err := orderService.CreateFromCart(c.Request.Context(), req)
		if err != nil {
			switch err.(type) {
			case *errors.ErrValidation:
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			case *errors.ErrNotFound:
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			case *errors.ErrTotalMismatch:
				// The client's pricing is stale; it should re-quote and retry.
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			default:
				logger.Error("Failed to create order", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create order"})
			}
			return
		}

		// Store idempotency key if provided
		idempotencyKey, requestHash, _, _ := middleware.GetIdempotencyInfo(c)
		if idempotencyKey != "" {
			record := &domain.IdempotencyKey{
				Key:         idempotencyKey,
				CafeOrderID: order.ID,
				RequestHash: requestHash,
			}
			if err := repos.IdempotencyKey.Create(c.Request.Context(), record); err != nil {
				logger.Warn("Failed to store idempotency key", zap.Error(err))
				// Don't fail the request if idempotency storage fails
			}
		}

		c.JSON(http.StatusCreated, OrderSubmitResponse{
			OrderID:              order.ID.String(),
			Status:               order.Status,
			Total:                order.Total.InexactFloat64(),
			EstimatedPrepMinutes: order.EstimatedPrepMinutes,
		})
	}
}

// HandleGetOrder handles GET /v1/orders/:id
func HandleGetOrder(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
			return
		}

		order, err := repos.Order.GetByID(c.Request.Context(), orderID)
		if err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			logger.Error("Failed to get order", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		items, err := repos.OrderItem.GetByOrderID(c.Request.Context(), orderID)
		if err != nil {
			logger.Error("Failed to get order items", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, newOrderResponse(order, items))
	}
}
