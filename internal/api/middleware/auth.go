package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/beanleaf/cafeapi/internal/domain"
	"github.com/beanleaf/cafeapi/internal/repository"
)

const adminContextKey = "admin"

// AuthMiddleware authenticates admin panel requests via bearer API key
func AuthMiddleware(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing API key"})
			return
		}

		apiKey := strings.TrimPrefix(header, "Bearer ")
		admin, err := repos.Admin.GetByAPIKey(c.Request.Context(), apiKey)
		if err != nil {
			logger.Warn("Admin authentication failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid API key"})
			return
		}

		c.Set(adminContextKey, admin)
		c.Next()
	}
}

// GetAdminFromContext returns the authenticated admin user, if any
func GetAdminFromContext(c *gin.Context) (*domain.AdminUser, bool) {
	value, ok := c.Get(adminContextKey)
	if !ok {
		return nil, false
	}
	admin, ok := value.(*domain.AdminUser)
	return admin, ok
}
