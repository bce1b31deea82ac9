package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/beanleaf/cafeapi/internal/domain"
	"github.com/beanleaf/cafeapi/pkg/errors"
)

type orderRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sql.DB, logger *zap.Logger) *orderRepository {
	return &orderRepository{
		db:     db,
		logger: logger,
	}
}

const orderColumns = `
	id, channel, status, table_number, scheduled_at, customer_name,
	customer_phone, applied_offer_id, subtotal, discount_amount, cgst_amount,
	sgst_amount, total, estimated_prep_minutes, payment_status,
	cancellation_reason, created_at, updated_at
`

func (r *orderRepository) Create(ctx context.Context, order *domain.CafeOrder) error {
	query := `
		INSERT INTO cafe_orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	now := time.Now()
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	if order.UpdatedAt.IsZero() {
		order.UpdatedAt = now
	}

	var appliedOfferID interface{}
	if order.AppliedOfferID != nil {
		appliedOfferID = *order.AppliedOfferID
	}

	_, err := r.db.ExecContext(ctx, query,
		order.ID,
		order.Channel,
		order.Status,
		order.TableNumber,
		order.ScheduledAt,
		order.CustomerName,
		order.CustomerPhone,
		appliedOfferID,
		order.Subtotal,
		order.DiscountAmount,
		order.CGSTAmount,
		order.SGSTAmount,
		order.Total,
		order.EstimatedPrepMinutes,
		order.PaymentStatus,
		order.CancellationReason,
		order.CreatedAt,
		order.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create order", zap.Error(err))
		return err
	}

	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CafeOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM cafe_orders WHERE id = $1`

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get order by ID", zap.Error(err))
		return nil, err
	}

	return order, nil
}

func (r *orderRepository) ListByStatus(ctx context.Context, status domain.OrderStatus, limit, offset int) ([]*domain.CafeOrder, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM cafe_orders
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	return r.queryOrders(ctx, query, status, limit, offset)
}

func (r *orderRepository) List(ctx context.Context, limit, offset int) ([]*domain.CafeOrder, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM cafe_orders
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	return r.queryOrders(ctx, query, limit, offset)
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus, reason *string) error {
	query := `
		UPDATE cafe_orders
		SET status = $2, cancellation_reason = $3, updated_at = $4
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, status, reason, time.Now())
	if err != nil {
		r.logger.Error("Failed to update order status", zap.Error(err))
		return err
	}

	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}

	return nil
}

func (r *orderRepository) queryOrders(ctx context.Context, query string, args ...interface{}) ([]*domain.CafeOrder, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to query orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	orders := make([]*domain.CafeOrder, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			r.logger.Error("Failed to scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, order)
	}

	return orders, rows.Err()
}

func scanOrder(row rowScanner) (*domain.CafeOrder, error) {
	var order domain.CafeOrder
	var tableNumber, phone, reason sql.NullString
	var scheduledAt sql.NullTime
	var appliedOfferID uuid.NullUUID

	err := row.Scan(
		&order.ID,
		&order.Channel,
		&order.Status,
		&tableNumber,
		&scheduledAt,
		&order.CustomerName,
		&phone,
		&appliedOfferID,
		&order.Subtotal,
		&order.DiscountAmount,
		&order.CGSTAmount,
		&order.SGSTAmount,
		&order.Total,
		&order.EstimatedPrepMinutes,
		&order.PaymentStatus,
		&reason,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if tableNumber.Valid {
		order.TableNumber = &tableNumber.String
	}
	if scheduledAt.Valid {
		t := scheduledAt.Time
		order.ScheduledAt = &t
	}
	if phone.Valid {
		order.CustomerPhone = phone.String
	}
	if appliedOfferID.Valid {
		id := appliedOfferID.UUID
		order.AppliedOfferID = &id
	}
	if reason.Valid {
		order.CancellationReason = &reason.String
	}

	return &order, nil
}
