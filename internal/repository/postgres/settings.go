package postgres

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/beanleaf/cafeapi/internal/domain"
	"github.com/beanleaf/cafeapi/pkg/errors"
)

type settingsRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *sql.DB, logger *zap.Logger) *settingsRepository {
	return &settingsRepository{
		db:     db,
		logger: logger,
	}
}

// The billing settings table holds a single row keyed by a fixed id.
const billingSettingsID = 1

func (r *settingsRepository) GetBilling(ctx context.Context) (*domain.BillingSettings, error) {
	query := `
		SELECT cgst_rate, sgst_rate, tax_base_mode, updated_at
		FROM billing_settings
		WHERE id = $1
	`

	var settings domain.BillingSettings
	err := r.db.QueryRowContext(ctx, query, billingSettingsID).Scan(
		&settings.CGSTRate,
		&settings.SGSTRate,
		&settings.TaxBase,
		&settings.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "billing settings", ID: "default"}
	}
	if err != nil {
		r.logger.Error("Failed to get billing settings", zap.Error(err))
		return nil, err
	}

	return &settings, nil
}

func (r *settingsRepository) UpsertBilling(ctx context.Context, settings *domain.BillingSettings) error {
	query := `
		INSERT INTO billing_settings (id, cgst_rate, sgst_rate, tax_base_mode, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET cgst_rate = EXCLUDED.cgst_rate,
		    sgst_rate = EXCLUDED.sgst_rate,
		    tax_base_mode = EXCLUDED.tax_base_mode,
		    updated_at = EXCLUDED.updated_at
	`

	settings.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		billingSettingsID,
		settings.CGSTRate,
		settings.SGSTRate,
		settings.TaxBase,
		settings.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to upsert billing settings", zap.Error(err))
		return err
	}

	return nil
}
