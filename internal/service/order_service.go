package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/beanleaf/cafeapi/internal/domain"
	"github.com/beanleaf/cafeapi/internal/pricing"
	"github.com/beanleaf/cafeapi/internal/repository"
	"github.com/beanleaf/cafeapi/pkg/errors"
)

type orderService struct {
	repos   *repository.Repositories
	pricing *pricingService
	logger  *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(repos *repository.Repositories, logger *zap.Logger) *orderService {
	return &orderService{
		repos:   repos,
		pricing: NewPricingService(repos, logger),
		logger:  logger,
	}
}

// CreateFromCart creates a cafe order from a cart submission. The engine is
// re-run server-side and the client-computed total must match it before
// anything is persisted; the stored totals are always the engine's own.
func (s *orderService) CreateFromCart(ctx context.Context, req OrderSubmitRequest) (*domain.CafeOrder, error) {
	channel := domain.OrderChannel(req.Channel)
	if !channel.IsValid() {
		return nil, &errors.ErrValidation{Field: "channel", Message: "unknown order channel " + req.Channel}
	}
	if channel == domain.ChannelQR && (req.TableNumber == nil || *req.TableNumber == "") {
		return nil, &errors.ErrValidation{Field: "table_number", Message: "table number is required for QR orders"}
	}
	if channel == domain.ChannelPreorder && req.ScheduledAt == nil {
		return nil, &errors.ErrValidation{Field: "scheduled_at", Message: "scheduled time is required for pre-orders"}
	}

	items, result, err := s.pricing.PriceCart(ctx, req.Items)
	if err != nil {
		return nil, err
	}
	rounded := result.Rounded()

	submitted := decimal.NewFromFloat(req.Totals.Total).Round(2)
	if !submitted.Equal(rounded.Total) {
		return nil, &errors.ErrTotalMismatch{
			Submitted: submitted.StringFixed(2),
			Computed:  rounded.Total.StringFixed(2),
		}
	}

	order := &domain.CafeOrder{
		Channel:              channel,
		Status:               domain.OrderStatusPlaced,
		TableNumber:          req.TableNumber,
		ScheduledAt:          req.ScheduledAt,
		CustomerName:         req.Customer.Name,
		Subtotal:             rounded.Subtotal,
		DiscountAmount:       rounded.DiscountAmount,
		CGSTAmount:           rounded.CGSTAmount,
		SGSTAmount:           rounded.SGSTAmount,
		Total:                rounded.Total,
		EstimatedPrepMinutes: rounded.EstimatedPrepMinutes,
		PaymentStatus:        req.PaymentStatus,
	}
	if req.Customer.Phone != nil {
		order.CustomerPhone = *req.Customer.Phone
	}
	if rounded.AppliedOffer != nil {
		offerID := rounded.AppliedOffer.ID
		order.AppliedOfferID = &offerID
	}

	if err := s.repos.Order.Create(ctx, order); err != nil {
		return nil, err
	}

	orderItems := make([]*domain.OrderItem, 0, len(items))
	for _, item := range items {
		orderItems = append(orderItems, &domain.OrderItem{
			OrderID:    order.ID,
			MenuItemID: item.ItemID,
			Name:       item.Name,
			UnitPrice:  item.UnitPrice,
			Quantity:   item.Quantity,
			Category:   item.Category,
		})
	}
	if err := s.repos.OrderItem.CreateBatch(ctx, orderItems); err != nil {
		return nil, err
	}

	eventData := map[string]interface{}{
		"channel": order.Channel,
		"status":  order.Status,
		"total":   order.Total.StringFixed(2),
	}
	if order.AppliedOfferID != nil {
		eventData["applied_offer_id"] = order.AppliedOfferID.String()
	}
	s.repos.OrderEvent.Create(ctx, &domain.OrderEvent{
		CafeOrderID: order.ID,
		EventType:   "order_created",
		EventData:   eventData,
	})

	return order, nil
}

// PriceCart exposes a pricing quote without persisting anything
func (s *orderService) PriceCart(ctx context.Context, lines []CartLine) (pricing.Result, error) {
	_, result, err := s.pricing.PriceCart(ctx, lines)
	return result, err
}

// UpdateStatus transitions an order to a new status
func (s *orderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, newStatus domain.OrderStatus, reason *string) error {
	order, err := s.repos.Order.GetByID(ctx, orderID)
	if err != nil {
		return err
	}

	if !order.Status.CanTransitionTo(newStatus) {
		return &errors.ErrInvalidStateTransition{
			From: order.Status,
			To:   newStatus,
		}
	}

	if err := s.repos.Order.UpdateStatus(ctx, orderID, newStatus, reason); err != nil {
		return err
	}

	eventData := map[string]interface{}{
		"from": order.Status,
		"to":   newStatus,
	}
	if reason != nil {
		eventData["reason"] = *reason
	}
	s.repos.OrderEvent.Create(ctx, &domain.OrderEvent{
		CafeOrderID: orderID,
		EventType:   "status_change",
		EventData:   eventData,
	})

	return nil
}
