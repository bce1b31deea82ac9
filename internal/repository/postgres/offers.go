package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/beanleaf/cafeapi/internal/domain"
	"github.com/beanleaf/cafeapi/pkg/errors"
)

type offerRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewOfferRepository creates a new offer repository
func NewOfferRepository(db *sql.DB, logger *zap.Logger) *offerRepository {
	return &offerRepository{
		db:     db,
		logger: logger,
	}
}

const offerColumns = `
	id, name, description, offer_type, discount_value, max_discount_amount,
	min_order_amount, applicable_categories, applicable_items, priority,
	is_active, created_at, updated_at
`

func (r *offerRepository) Create(ctx context.Context, offer *domain.Offer) error {
	query := `
		INSERT INTO offers (` + offerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	now := time.Now()
	if offer.ID == uuid.Nil {
		offer.ID = uuid.New()
	}
	if offer.CreatedAt.IsZero() {
		offer.CreatedAt = now
	}
	if offer.UpdatedAt.IsZero() {
		offer.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, query,
		offer.ID,
		offer.Name,
		offer.Description,
		offer.Type,
		offer.DiscountValue,
		decimalPtrValue(offer.MaxDiscountAmount),
		decimalPtrValue(offer.MinOrderAmount),
		pq.Array(offer.ApplicableCategories),
		pq.Array(idsToStrings(offer.ApplicableItems)),
		offer.Priority,
		offer.IsActive,
		offer.CreatedAt,
		offer.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create offer", zap.Error(err))
		return err
	}

	return nil
}

func (r *offerRepository) Update(ctx context.Context, offer *domain.Offer) error {
	query := `
		UPDATE offers
		SET name = $2, description = $3, offer_type = $4, discount_value = $5,
		    max_discount_amount = $6, min_order_amount = $7,
		    applicable_categories = $8, applicable_items = $9, priority = $10,
		    is_active = $11, updated_at = $12
		WHERE id = $1
	`

	offer.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		offer.ID,
		offer.Name,
		offer.Description,
		offer.Type,
		offer.DiscountValue,
		decimalPtrValue(offer.MaxDiscountAmount),
		decimalPtrValue(offer.MinOrderAmount),
		pq.Array(offer.ApplicableCategories),
		pq.Array(idsToStrings(offer.ApplicableItems)),
		offer.Priority,
		offer.IsActive,
		offer.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to update offer", zap.Error(err))
		return err
	}

	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return &errors.ErrNotFound{Resource: "offer", ID: offer.ID.String()}
	}

	return nil
}

func (r *offerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM offers WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete offer", zap.Error(err))
		return err
	}

	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return &errors.ErrNotFound{Resource: "offer", ID: id.String()}
	}

	return nil
}

func (r *offerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM offers WHERE id = $1`

	offer, err := scanOffer(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "offer", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get offer by ID", zap.Error(err))
		return nil, err
	}

	return offer, nil
}

func (r *offerRepository) List(ctx context.Context) ([]*domain.Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM offers ORDER BY priority DESC, created_at`
	return r.queryOffers(ctx, query)
}

func (r *offerRepository) ListActive(ctx context.Context) ([]*domain.Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM offers WHERE is_active = true ORDER BY priority DESC, created_at`
	return r.queryOffers(ctx, query)
}

func (r *offerRepository) queryOffers(ctx context.Context, query string) ([]*domain.Offer, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to query offers", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	offers := make([]*domain.Offer, 0)
	for rows.Next() {
		offer, err := scanOffer(rows)
		if err != nil {
			r.logger.Error("Failed to scan offer row", zap.Error(err))
			return nil, err
		}
		offers = append(offers, offer)
	}

	return offers, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOffer(row rowScanner) (*domain.Offer, error) {
	var offer domain.Offer
	var maxDiscount, minOrder sql.NullString
	var categories pq.StringArray
	var itemIDs pq.StringArray

	err := row.Scan(
		&offer.ID,
		&offer.Name,
		&offer.Description,
		&offer.Type,
		&offer.DiscountValue,
		&maxDiscount,
		&minOrder,
		&categories,
		&itemIDs,
		&offer.Priority,
		&offer.IsActive,
		&offer.CreatedAt,
		&offer.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if maxDiscount.Valid {
		d, err := decimal.NewFromString(maxDiscount.String)
		if err != nil {
			return nil, err
		}
		offer.MaxDiscountAmount = &d
	}
	if minOrder.Valid {
		d, err := decimal.NewFromString(minOrder.String)
		if err != nil {
			return nil, err
		}
		offer.MinOrderAmount = &d
	}
	offer.ApplicableCategories = []string(categories)
	offer.ApplicableItems, err = stringsToIDs(itemIDs)
	if err != nil {
		return nil, err
	}

	return &offer, nil
}

func decimalPtrValue(d *decimal.Decimal) interface{} {
	if d == nil {
		return nil
	}
	return *d
}

func idsToStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func stringsToIDs(values []string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(values))
	for _, v := range values {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}
