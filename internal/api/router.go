package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/beanleaf/cafeapi/internal/api/handlers"
	"github.com/beanleaf/cafeapi/internal/api/middleware"
	"github.com/beanleaf/cafeapi/internal/config"
	"github.com/beanleaf/cafeapi/internal/repository"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, repos *repository.Repositories, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/v1")
	{
		// Public ordering routes (counter, QR and pre-order flows)
		v1.GET("/menu", handlers.HandleListMenu(repos, logger))
		v1.GET("/offers", handlers.HandleListOffers(repos, logger))
		v1.POST("/carts/price", handlers.HandlePriceCart(repos, logger))

		orderRoutes := v1.Group("/orders")
		orderRoutes.Use(middleware.IdempotencyMiddleware(repos, logger))
		{
			orderRoutes.POST("", handlers.HandleSubmitOrder(repos, logger))
			orderRoutes.GET("/:id", handlers.HandleGetOrder(repos, logger))
		}

		// Admin panel routes
		adminRoutes := v1.Group("/admin")
		adminRoutes.Use(middleware.AuthMiddleware(repos, logger))
		{
			adminRoutes.GET("/offers", handlers.HandleListAllOffers(repos, logger))
			adminRoutes.POST("/offers", handlers.HandleCreateOffer(repos, logger))
			adminRoutes.PUT("/offers/:id", handlers.HandleUpdateOffer(repos, logger))
			adminRoutes.DELETE("/offers/:id", handlers.HandleDeleteOffer(repos, logger))
			adminRoutes.GET("/settings/billing", handlers.HandleGetBillingSettings(repos, logger))
			adminRoutes.PUT("/settings/billing", handlers.HandleUpdateBillingSettings(repos, logger))
			adminRoutes.GET("/orders", handlers.HandleListOrders(repos, logger))
			adminRoutes.POST("/orders/:id/status", handlers.HandleUpdateOrderStatus(repos, logger))
		}
	}

	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
