package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/beanleaf/cafeapi/internal/api"
	"github.com/beanleaf/cafeapi/internal/config"
	"github.com/beanleaf/cafeapi/internal/domain"
	"github.com/beanleaf/cafeapi/internal/repository"
	"github.com/beanleaf/cafeapi/internal/repository/postgres"
	"github.com/beanleaf/cafeapi/pkg/errors"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Connect to database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Create repositories
	repos := postgres.NewRepositories(db, logger)

	// Seed billing settings from config when none exist yet
	if err := seedBillingSettings(context.Background(), cfg, repos); err != nil {
		logger.Warn("Failed to seed billing settings, engine will use defaults", zap.Error(err))
	}

	// Start server
	router := api.NewRouter(cfg, repos, logger)
	logger.Info("Starting cafe API server",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
	)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

func seedBillingSettings(ctx context.Context, cfg *config.Config, repos *repository.Repositories) error {
	if _, err := repos.Settings.GetBilling(ctx); err == nil {
		return nil
	} else if _, ok := err.(*errors.ErrNotFound); !ok {
		return err
	}

	cgst, err := decimal.NewFromString(cfg.Billing.CGSTRate)
	if err != nil {
		return fmt.Errorf("invalid CGST_RATE %q: %w", cfg.Billing.CGSTRate, err)
	}
	sgst, err := decimal.NewFromString(cfg.Billing.SGSTRate)
	if err != nil {
		return fmt.Errorf("invalid SGST_RATE %q: %w", cfg.Billing.SGSTRate, err)
	}
	mode := domain.TaxBaseMode(cfg.Billing.TaxBaseMode)
	if !mode.IsValid() {
		return fmt.Errorf("invalid TAX_BASE_MODE %q", cfg.Billing.TaxBaseMode)
	}

	return repos.Settings.UpsertBilling(ctx, &domain.BillingSettings{
		CGSTRate: cgst,
		SGSTRate: sgst,
		TaxBase:  mode,
	})
}
