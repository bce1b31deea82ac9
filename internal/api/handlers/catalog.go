package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/beanleaf/cafeapi/internal/repository"
)

// HandleListMenu handles GET /v1/menu
func HandleListMenu(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := repos.MenuItem.ListAvailable(c.Request.Context())
		if err != nil {
			logger.Error("Failed to list menu items", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		responses := make([]MenuItemResponse, len(items))
		for i, item := range items {
			responses[i] = MenuItemResponse{
				ID:              item.ID.String(),
				Name:            item.Name,
				Description:     item.Description,
				Price:           item.Price.InexactFloat64(),
				Category:        item.Category,
				PrepTimeMinutes: item.PrepTimeMinutes,
			}
		}

		c.JSON(http.StatusOK, gin.H{"items": responses})
	}
}

// HandleListOffers handles GET /v1/offers
func HandleListOffers(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		offers, err := repos.Offer.ListActive(c.Request.Context())
		if err != nil {
			logger.Error("Failed to list offers", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		responses := make([]OfferResponse, len(offers))
		for i, offer := range offers {
			responses[i] = newOfferResponse(offer)
		}

		c.JSON(http.StatusOK, gin.H{"offers": responses})
	}
}
