package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MenuItem represents a catalog item served by the cafe
type MenuItem struct {
	ID              uuid.UUID
	Name            string
	Description     string
	Price           decimal.Decimal
	Category        string
	PrepTimeMinutes int
	IsAvailable     bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Offer represents an admin-defined promotional rule. The pricing engine
// reads offers as a snapshot; it never mutates them.
type Offer struct {
	ID                   uuid.UUID
	Name                 string
	Description          string
	Type                 OfferType
	DiscountValue        decimal.Decimal
	MaxDiscountAmount    *decimal.Decimal // percentage offers only
	MinOrderAmount       *decimal.Decimal
	ApplicableCategories []string
	ApplicableItems      []uuid.UUID
	Priority             int
	IsActive             bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// BillingSettings holds the tax configuration applied at checkout
type BillingSettings struct {
	CGSTRate  decimal.Decimal
	SGSTRate  decimal.Decimal
	TaxBase   TaxBaseMode
	UpdatedAt time.Time
}

// CafeOrder represents a placed order from any of the ordering flows
type CafeOrder struct {
	ID                   uuid.UUID
	Channel              OrderChannel
	Status               OrderStatus
	TableNumber          *string    // QR orders
	ScheduledAt          *time.Time // pre-orders
	CustomerName         string
	CustomerPhone        string
	AppliedOfferID       *uuid.UUID
	Subtotal             decimal.Decimal
	DiscountAmount       decimal.Decimal
	CGSTAmount           decimal.Decimal
	SGSTAmount           decimal.Decimal
	Total                decimal.Decimal
	EstimatedPrepMinutes int
	PaymentStatus        string
	CancellationReason   *string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// OrderItem represents a line item in a cafe order
type OrderItem struct {
	ID         uuid.UUID
	OrderID    uuid.UUID
	MenuItemID uuid.UUID
	Name       string
	UnitPrice  decimal.Decimal
	Quantity   int
	Category   string
	CreatedAt  time.Time
}

// AdminUser represents a staff account for the admin panel
type AdminUser struct {
	ID         uuid.UUID
	Name       string
	APIKeyHash string
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IdempotencyKey stores idempotency information for order submission
type IdempotencyKey struct {
	Key         string
	CafeOrderID uuid.UUID
	RequestHash string
	CreatedAt   time.Time
}

// OrderEvent represents an audit event for an order
type OrderEvent struct {
	ID          uuid.UUID
	CafeOrderID uuid.UUID
	EventType   string
	EventData   map[string]interface{} // JSONB
	CreatedAt   time.Time
}
