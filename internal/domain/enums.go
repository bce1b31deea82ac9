package domain

// OfferType represents how an offer's discount value is interpreted
type OfferType string

const (
	OfferTypePercentage OfferType = "percentage"
	OfferTypeFlat       OfferType = "flat"
)

// IsValid checks if the offer type is a known discount strategy
func (t OfferType) IsValid() bool {
	switch t {
	case OfferTypePercentage, OfferTypeFlat:
		return true
	default:
		return false
	}
}

// TaxBaseMode selects whether tax is computed before or after the offer
// discount is subtracted
type TaxBaseMode string

const (
	TaxBaseSubtotal           TaxBaseMode = "on_subtotal"
	TaxBaseDiscountedSubtotal TaxBaseMode = "on_discounted_subtotal"
)

// IsValid checks if the tax base mode is valid
func (m TaxBaseMode) IsValid() bool {
	switch m {
	case TaxBaseSubtotal, TaxBaseDiscountedSubtotal:
		return true
	default:
		return false
	}
}

// OrderChannel identifies which ordering flow created an order
type OrderChannel string

const (
	ChannelCounter  OrderChannel = "COUNTER"
	ChannelQR       OrderChannel = "QR"
	ChannelPreorder OrderChannel = "PREORDER"
)

// IsValid checks if the order channel is valid
func (c OrderChannel) IsValid() bool {
	switch c {
	case ChannelCounter, ChannelQR, ChannelPreorder:
		return true
	default:
		return false
	}
}

// OrderStatus represents the status of a cafe order
type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "PLACED"
	OrderStatusPreparing OrderStatus = "PREPARING"
	OrderStatusReady     OrderStatus = "READY"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// IsValid checks if the order status is valid
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPlaced,
		OrderStatusPreparing,
		OrderStatusReady,
		OrderStatusCompleted,
		OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionTo checks if a status transition is valid
func (s OrderStatus) CanTransitionTo(newStatus OrderStatus) bool {
	switch s {
	case OrderStatusPlaced:
		return newStatus == OrderStatusPreparing ||
			newStatus == OrderStatusCancelled
	case OrderStatusPreparing:
		return newStatus == OrderStatusReady ||
			newStatus == OrderStatusCancelled
	case OrderStatusReady:
		return newStatus == OrderStatusCompleted
	case OrderStatusCompleted, OrderStatusCancelled:
		return false // Terminal states
	default:
		return false
	}
}
