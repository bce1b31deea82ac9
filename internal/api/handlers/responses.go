package handlers

import (
	"time"

	"github.com/beanleaf/cafeapi/internal/domain"
	"github.com/beanleaf/cafeapi/internal/pricing"
)

// AppliedOfferResponse describes the auto-applied offer in a pricing quote
type AppliedOfferResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// PricingResponse is the rendered engine output. All amounts are rounded to
// two decimal places here, at the presentation boundary.
type PricingResponse struct {
	Subtotal             float64               `json:"subtotal"`
	AppliedOffer         *AppliedOfferResponse `json:"applied_offer,omitempty"`
	DiscountAmount       float64               `json:"discount_amount"`
	DiscountedSubtotal   float64               `json:"discounted_subtotal"`
	CGSTAmount           float64               `json:"cgst_amount"`
	SGSTAmount           float64               `json:"sgst_amount"`
	TaxAmount            float64               `json:"tax_amount"`
	Total                float64               `json:"total"`
	EstimatedPrepMinutes int                   `json:"estimated_prep_minutes"`
}

func newPricingResponse(result pricing.Result) PricingResponse {
	rounded := result.Rounded()
	resp := PricingResponse{
		Subtotal:             rounded.Subtotal.InexactFloat64(),
		DiscountAmount:       rounded.DiscountAmount.InexactFloat64(),
		DiscountedSubtotal:   rounded.DiscountedSubtotal.InexactFloat64(),
		CGSTAmount:           rounded.CGSTAmount.InexactFloat64(),
		SGSTAmount:           rounded.SGSTAmount.InexactFloat64(),
		TaxAmount:            rounded.TaxAmount.InexactFloat64(),
		Total:                rounded.Total.InexactFloat64(),
		EstimatedPrepMinutes: rounded.EstimatedPrepMinutes,
	}
	if rounded.AppliedOffer != nil {
		resp.AppliedOffer = &AppliedOfferResponse{
			ID:          rounded.AppliedOffer.ID.String(),
			Name:        rounded.AppliedOffer.Name,
			Description: rounded.AppliedOffer.Description,
		}
	}
	return resp
}

// OfferResponse is the public offer representation
type OfferResponse struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	Description          string   `json:"description,omitempty"`
	OfferType            string   `json:"offer_type"`
	DiscountValue        float64  `json:"discount_value"`
	MaxDiscountAmount    *float64 `json:"max_discount_amount,omitempty"`
	MinOrderAmount       *float64 `json:"min_order_amount,omitempty"`
	ApplicableCategories []string `json:"applicable_categories,omitempty"`
	ApplicableItems      []string `json:"applicable_items,omitempty"`
	Priority             int      `json:"priority"`
	IsActive             bool     `json:"is_active"`
}

func newOfferResponse(offer *domain.Offer) OfferResponse {
	resp := OfferResponse{
		ID:                   offer.ID.String(),
		Name:                 offer.Name,
		Description:          offer.Description,
		OfferType:            string(offer.Type),
		DiscountValue:        offer.DiscountValue.InexactFloat64(),
		ApplicableCategories: offer.ApplicableCategories,
		Priority:             offer.Priority,
		IsActive:             offer.IsActive,
	}
	if offer.MaxDiscountAmount != nil {
		v := offer.MaxDiscountAmount.InexactFloat64()
		resp.MaxDiscountAmount = &v
	}
	if offer.MinOrderAmount != nil {
		v := offer.MinOrderAmount.InexactFloat64()
		resp.MinOrderAmount = &v
	}
	for _, id := range offer.ApplicableItems {
		resp.ApplicableItems = append(resp.ApplicableItems, id.String())
	}
	return resp
}

// MenuItemResponse is the public menu item representation
type MenuItemResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description,omitempty"`
	Price           float64 `json:"price"`
	Category        string  `json:"category"`
	PrepTimeMinutes int     `json:"prep_time_minutes"`
}

// OrderItemResponse is one line of a placed order
type OrderItemResponse struct {
	MenuItemID string  `json:"menu_item_id"`
	Name       string  `json:"name"`
	UnitPrice  float64 `json:"unit_price"`
	Quantity   int     `json:"quantity"`
	Category   string  `json:"category"`
}

// OrderResponse is the representation of a placed order
type OrderResponse struct {
	ID                   string              `json:"id"`
	Channel              domain.OrderChannel `json:"channel"`
	Status               domain.OrderStatus  `json:"status"`
	TableNumber          *string             `json:"table_number,omitempty"`
	ScheduledAt          *time.Time          `json:"scheduled_at,omitempty"`
	CustomerName         string              `json:"customer_name"`
	CustomerPhone        string              `json:"customer_phone,omitempty"`
	AppliedOfferID       *string             `json:"applied_offer_id,omitempty"`
	Subtotal             float64             `json:"subtotal"`
	DiscountAmount       float64             `json:"discount_amount"`
	CGSTAmount           float64             `json:"cgst_amount"`
	SGSTAmount           float64             `json:"sgst_amount"`
	Total                float64             `json:"total"`
	EstimatedPrepMinutes int                 `json:"estimated_prep_minutes"`
	PaymentStatus        string              `json:"payment_status,omitempty"`
	CancellationReason   *string             `json:"cancellation_reason,omitempty"`
	Items                []OrderItemResponse `json:"items,omitempty"`
	CreatedAt            string              `json:"created_at"`
	UpdatedAt            string              `json:"updated_at"`
}

func newOrderResponse(order *domain.CafeOrder, items []*domain.OrderItem) OrderResponse {
	resp := OrderResponse{
		ID:                   order.ID.String(),
		Channel:              order.Channel,
		Status:               order.Status,
		TableNumber:          order.TableNumber,
		ScheduledAt:          order.ScheduledAt,
		CustomerName:         order.CustomerName,
		CustomerPhone:        order.CustomerPhone,
		Subtotal:             order.Subtotal.InexactFloat64(),
		DiscountAmount:       order.DiscountAmount.InexactFloat64(),
		CGSTAmount:           order.CGSTAmount.InexactFloat64(),
		SGSTAmount:           order.SGSTAmount.InexactFloat64(),
		Total:                order.Total.InexactFloat64(),
		EstimatedPrepMinutes: order.EstimatedPrepMinutes,
		PaymentStatus:        order.PaymentStatus,
		CancellationReason:   order.CancellationReason,
		CreatedAt:            order.CreatedAt.Format(time.RFC3339),
		UpdatedAt:            order.UpdatedAt.Format(time.RFC3339),
	}
	if order.AppliedOfferID != nil {
		id := order.AppliedOfferID.String()
		resp.AppliedOfferID = &id
	}
	for _, item := range items {
		resp.Items = append(resp.Items, OrderItemResponse{
			MenuItemID: item.MenuItemID.String(),
			Name:       item.Name,
			UnitPrice:  item.UnitPrice.InexactFloat64(),
			Quantity:   item.Quantity,
			Category:   item.Category,
		})
	}
	return resp
}
