package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/beanleaf/cafeapi/internal/repository"
	"github.com/beanleaf/cafeapi/internal/service"
	"github.com/beanleaf/cafeapi/pkg/errors"
)

// HandlePriceCart handles POST /v1/carts/price. It is the quote endpoint
// every ordering flow calls after each cart mutation; nothing is persisted.
func HandlePriceCart(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.PriceCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		orderService := service.NewOrderService(repos, logger)
		result, err := orderService.PriceCart(c.Request.Context(), req.Items)
		if err != nil {
			switch err.(type) {
			case *errors.ErrValidation:
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			case *errors.ErrNotFound:
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			default:
				logger.Error("Failed to price cart", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
			return
		}

		c.JSON(http.StatusOK, newPricingResponse(result))
	}
}
