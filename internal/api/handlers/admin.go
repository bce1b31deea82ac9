package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/beanleaf/cafeapi/internal/api/middleware"
	"github.com/beanleaf/cafeapi/internal/domain"
	"github.com/beanleaf/cafeapi/internal/repository"
	"github.com/beanleaf/cafeapi/internal/service"
	"github.com/beanleaf/cafeapi/pkg/errors"
)

// UpdateOrderStatusRequest represents an order status change request
type UpdateOrderStatusRequest struct {
	Status string  `json:"status" binding:"required"`
	Reason *string `json:"reason,omitempty"`
}

// HandleCreateOffer handles POST /v1/admin/offers
func HandleCreateOffer(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := middleware.GetAdminFromContext(c); !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req service.UpsertOfferRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		offerService := service.NewOfferService(repos, logger)
		offer, err := offerService.Create(c.Request.Context(), req)
		if err != nil {
			if _, ok := err.(*errors.ErrValidation); ok {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			logger.Error("Failed to create offer", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create offer"})
			return
		}

		c.JSON(http.StatusCreated, newOfferResponse(offer))
	}
}

// HandleUpdateOffer handles PUT /v1/admin/offers/:id
func HandleUpdateOffer(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := middleware.GetAdminFromContext(c); !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		offerID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid offer ID"})
			return
		}

		var req service.UpsertOfferRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		offerService := service.NewOfferService(repos, logger)
		offer, err := offerService.Update(c.Request.Context(), offerID, req)
		if err != nil {
			switch err.(type) {
			case *errors.ErrNotFound:
				c.JSON(http.StatusNotFound, gin.H{"error": "offer not found"})
			case *errors.ErrValidation:
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			default:
				logger.Error("Failed to update offer", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update offer"})
			}
			return
		}

		c.JSON(http.StatusOK, newOfferResponse(offer))
	}
}

// HandleDeleteOffer handles DELETE /v1/admin/offers/:id
func HandleDeleteOffer(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := middleware.GetAdminFromContext(c); !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		offerID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid offer ID"})
			return
		}

		offerService := service.NewOfferService(repos, logger)
		if err := offerService.Delete(c.Request.Context(), offerID); err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "offer not found"})
				return
			}
			logger.Error("Failed to delete offer", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete offer"})
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// HandleListAllOffers handles GET /v1/admin/offers
func HandleListAllOffers(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := middleware.GetAdminFromContext(c); !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		offers, err := repos.Offer.List(c.Request.Context())
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

// HandleGetBillingSettings handles GET /v1/admin/settings/billing
func HandleGetBillingSettings(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := middleware.GetAdminFromContext(c); !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		settings, err := repos.Settings.GetBilling(c.Request.Context())
		if err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusOK, gin.H{
					"cgst_rate":     2.5,
					"sgst_rate":     2.5,
					"tax_base_mode": domain.TaxBaseDiscountedSubtotal,
					"defaults":      true,
				})
				return
			}
			logger.Error("Failed to get billing settings", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"cgst_rate":     settings.CGSTRate.InexactFloat64(),
			"sgst_rate":     settings.SGSTRate.InexactFloat64(),
			"tax_base_mode": settings.TaxBase,
		})
	}
}

// HandleUpdateBillingSettings handles PUT /v1/admin/settings/billing
func HandleUpdateBillingSettings(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := middleware.GetAdminFromContext(c); !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req service.UpdateBillingSettingsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		mode := domain.TaxBaseMode(req.TaxBaseMode)
		if !mode.IsValid() {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid tax base mode"})
			return
		}

		settings := &domain.BillingSettings{
			CGSTRate: decimal.NewFromFloat(req.CGSTRate),
			SGSTRate: decimal.NewFromFloat(req.SGSTRate),
			TaxBase:  mode,
		}
		if err := repos.Settings.UpsertBilling(c.Request.Context(), settings); err != nil {
			logger.Error("Failed to update billing settings", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update settings"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"cgst_rate":     settings.CGSTRate.InexactFloat64(),
			"sgst_rate":     settings.SGSTRate.InexactFloat64(),
			"tax_base_mode": settings.TaxBase,
		})
	}
}

// HandleListOrders handles GET /v1/admin/orders
func HandleListOrders(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := middleware.GetAdminFromContext(c); !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		statusStr := c.Query("status")
		limitStr := c.DefaultQuery("limit", "50")
		offsetStr := c.DefaultQuery("offset", "0")

		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > 100 {
			limit = 50
		}

		offset, err := strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			offset = 0
		}

		var orders []*domain.CafeOrder
		if statusStr != "" {
			status := domain.OrderStatus(statusStr)
			if !status.IsValid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
				return
			}
			orders, err = repos.Order.ListByStatus(c.Request.Context(), status, limit, offset)
		} else {
			orders, err = repos.Order.List(c.Request.Context(), limit, offset)
		}

		if err != nil {
			logger.Error("Failed to list orders", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		responses := make([]OrderResponse, len(orders))
		for i, order := range orders {
			responses[i] = newOrderResponse(order, nil)
		}

		c.JSON(http.StatusOK, gin.H{
			"orders": responses,
			"limit":  limit,
			"offset": offset,
		})
	}
}

// HandleUpdateOrderStatus handles POST /v1/admin/orders/:id/status
func HandleUpdateOrderStatus(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := middleware.GetAdminFromContext(c); !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		orderID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
			return
		}

		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		newStatus := domain.OrderStatus(req.Status)
		if !newStatus.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}

		orderService := service.NewOrderService(repos, logger)
		if err := orderService.UpdateStatus(c.Request.Context(), orderID, newStatus, req.Reason); err != nil {
			switch err.(type) {
			case *errors.ErrNotFound:
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			case *errors.ErrInvalidStateTransition:
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				logger.Error("Failed to update order status", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order status"})
			}
			return
		}

		order, err := repos.Order.GetByID(c.Request.Context(), orderID)
		if err != nil {
			logger.Error("Failed to reload order after status update", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"id":     order.ID.String(),
			"status": order.Status,
		})
	}
}
