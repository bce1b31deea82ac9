package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/beanleaf/cafeapi/internal/domain"
)

// MenuItemRepository provides access to the menu catalog
type MenuItemRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.MenuItem, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.MenuItem, error)
	ListAvailable(ctx context.Context) ([]*domain.MenuItem, error)
}

// OfferRepository provides access to the promotional offer store
type OfferRepository interface {
	Create(ctx context.Context, offer *domain.Offer) error
	Update(ctx context.Context, offer *domain.Offer) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Offer, error)
	List(ctx context.Context) ([]*domain.Offer, error)
	ListActive(ctx context.Context) ([]*domain.Offer, error)
}

// OrderRepository provides access to placed cafe orders
type OrderRepository interface {
	Create(ctx context.Context, order *domain.CafeOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CafeOrder, error)
	ListByStatus(ctx context.Context, status domain.OrderStatus, limit, offset int) ([]*domain.CafeOrder, error)
	List(ctx context.Context, limit, offset int) ([]*domain.CafeOrder, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus, reason *string) error
}

// OrderItemRepository provides access to order line items
type OrderItemRepository interface {
	CreateBatch(ctx context.Context, items []*domain.OrderItem) error
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]*domain.OrderItem, error)
}

// SettingsRepository provides access to the billing settings row
type SettingsRepository interface {
	GetBilling(ctx context.Context) (*domain.BillingSettings, error)
	UpsertBilling(ctx context.Context, settings *domain.BillingSettings) error
}

// AdminRepository provides access to admin panel accounts
type AdminRepository interface {
	GetByAPIKey(ctx context.Context, apiKey string) (*domain.AdminUser, error)
	Create(ctx context.Context, admin *domain.AdminUser) error
}

// OrderEventRepository records audit events for orders
type OrderEventRepository interface {
	Create(ctx context.Context, event *domain.OrderEvent) error
}

// IdempotencyKeyRepository stores idempotency keys for order submission
type IdempotencyKeyRepository interface {
	Create(ctx context.Context, key *domain.IdempotencyKey) error
	Get(ctx context.Context, key string) (*domain.IdempotencyKey, error)
}

// Repositories aggregates all repository implementations
type Repositories struct {
	MenuItem       MenuItemRepository
	Offer          OfferRepository
	Order          OrderRepository
	OrderItem      OrderItemRepository
	Settings       SettingsRepository
	Admin          AdminRepository
	OrderEvent     OrderEventRepository
	IdempotencyKey IdempotencyKeyRepository
}
