package service

import "time"

// CartLine is one cart entry as submitted by an ordering flow. Prices are
// never accepted from the client; they are re-hydrated from the menu.
type CartLine struct {
	MenuItemID string `json:"menu_item_id" binding:"required,uuid"`
	Quantity   int    `json:"quantity" binding:"required,min=1"`
}

// PriceCartRequest asks for a pricing quote over a cart snapshot
type PriceCartRequest struct {
	Items []CartLine `json:"items"`
}

type CustomerInfo struct {
	Name  string  `json:"name" binding:"required"`
	Phone *string `json:"phone,omitempty"`
}

// CartTotals carries the client-side pricing result for server verification
type CartTotals struct {
	Subtotal float64 `json:"subtotal" binding:"min=0"`
	Discount float64 `json:"discount" binding:"min=0"`
	Tax      float64 `json:"tax" binding:"min=0"`
	Total    float64 `json:"total" binding:"required,min=0"`
}

// OrderSubmitRequest represents the order submission payload shared by the
// counter, QR and pre-order flows
type OrderSubmitRequest struct {
	Channel       string       `json:"channel" binding:"required"`
	TableNumber   *string      `json:"table_number,omitempty"`
	ScheduledAt   *time.Time   `json:"scheduled_at,omitempty"`
	Items         []CartLine   `json:"items" binding:"required,min=1"`
	Customer      CustomerInfo `json:"customer" binding:"required"`
	Totals        CartTotals   `json:"totals" binding:"required"`
	PaymentStatus string       `json:"payment_status"`
}

// UpsertOfferRequest is the admin payload for creating or editing an offer
type UpsertOfferRequest struct {
	Name                 string   `json:"name" binding:"required"`
	Description          string   `json:"description"`
	OfferType            string   `json:"offer_type" binding:"required"`
	DiscountValue        float64  `json:"discount_value" binding:"min=0"`
	MaxDiscountAmount    *float64 `json:"max_discount_amount,omitempty"`
	MinOrderAmount       *float64 `json:"min_order_amount,omitempty"`
	ApplicableCategories []string `json:"applicable_categories,omitempty"`
	ApplicableItems      []string `json:"applicable_items,omitempty"`
	Priority             int      `json:"priority"`
	IsActive             *bool    `json:"is_active,omitempty"`
}

// UpdateBillingSettingsRequest is the admin payload for the tax configuration
type UpdateBillingSettingsRequest struct {
	CGSTRate    float64 `json:"cgst_rate" binding:"min=0"`
	SGSTRate    float64 `json:"sgst_rate" binding:"min=0"`
	TaxBaseMode string  `json:"tax_base_mode" binding:"required"`
}
