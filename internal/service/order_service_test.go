package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/beanleaf/cafeapi/internal/domain"
	"github.com/beanleaf/cafeapi/internal/repository"
	"github.com/beanleaf/cafeapi/pkg/errors"
)

type fakeMenuItemRepo struct {
	items map[uuid.UUID]*domain.MenuItem
}

func (f *fakeMenuItemRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.MenuItem, error) {
	if item, ok := f.items[id]; ok {
		return item, nil
	}
	return nil, &errors.ErrNotFound{Resource: "menu item", ID: id.String()}
}

func (f *fakeMenuItemRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.MenuItem, error) {
	found := make(map[uuid.UUID]*domain.MenuItem)
	for _, id := range ids {
		if item, ok := f.items[id]; ok {
			found[id] = item
		}
	}
	return found, nil
}

func (f *fakeMenuItemRepo) ListAvailable(ctx context.Context) ([]*domain.MenuItem, error) {
	out := make([]*domain.MenuItem, 0, len(f.items))
	for _, item := range f.items {
		out = append(out, item)
	}
	return out, nil
}

type fakeOfferRepo struct {
	offers []*domain.Offer
}

func (f *fakeOfferRepo) Create(ctx context.Context, offer *domain.Offer) error {
	f.offers = append(f.offers, offer)
	return nil
}

func (f *fakeOfferRepo) Update(ctx context.Context, offer *domain.Offer) error { return nil }
func (f *fakeOfferRepo) Delete(ctx context.Context, id uuid.UUID) error        { return nil }

func (f *fakeOfferRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Offer, error) {
	for _, offer := range f.offers {
		if offer.ID == id {
			return offer, nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "offer", ID: id.String()}
}

func (f *fakeOfferRepo) List(ctx context.Context) ([]*domain.Offer, error) { return f.offers, nil }

func (f *fakeOfferRepo) ListActive(ctx context.Context) ([]*domain.Offer, error) {
	active := make([]*domain.Offer, 0, len(f.offers))
	for _, offer := range f.offers {
		if offer.IsActive {
			active = append(active, offer)
		}
	}
	return active, nil
}

type fakeOrderRepo struct {
	orders map[uuid.UUID]*domain.CafeOrder
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *domain.CafeOrder) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if f.orders == nil {
		f.orders = make(map[uuid.UUID]*domain.CafeOrder)
	}
	f.orders[order.ID] = order
	return nil
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.CafeOrder, error) {
	if order, ok := f.orders[id]; ok {
		return order, nil
	}
	return nil, &errors.ErrNotFound{Resource: "order", ID: id.String()}
}

func (f *fakeOrderRepo) ListByStatus(ctx context.Context, status domain.OrderStatus, limit, offset int) ([]*domain.CafeOrder, error) {
	return nil, nil
}

func (f *fakeOrderRepo) List(ctx context.Context, limit, offset int) ([]*domain.CafeOrder, error) {
	return nil, nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus, reason *string) error {
	order, ok := f.orders[id]
	if !ok {
		return &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}
	order.Status = status
	order.CancellationReason = reason
	return nil
}

type fakeOrderItemRepo struct {
	created []*domain.OrderItem
}

func (f *fakeOrderItemRepo) CreateBatch(ctx context.Context, items []*domain.OrderItem) error {
	f.created = append(f.created, items...)
	return nil
}

func (f *fakeOrderItemRepo) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]*domain.OrderItem, error) {
	return f.created, nil
}

type fakeSettingsRepo struct {
	settings *domain.BillingSettings
}

func (f *fakeSettingsRepo) GetBilling(ctx context.Context) (*domain.BillingSettings, error) {
	if f.settings == nil {
		return nil, &errors.ErrNotFound{Resource: "billing settings", ID: "default"}
	}
	return f.settings, nil
}

func (f *fakeSettingsRepo) UpsertBilling(ctx context.Context, settings *domain.BillingSettings) error {
	f.settings = settings
	return nil
}

type fakeOrderEventRepo struct {
	events []*domain.OrderEvent
}

func (f *fakeOrderEventRepo) Create(ctx context.Context, event *domain.OrderEvent) error {
	f.events = append(f.events, event)
	return nil
}

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func newTestRepos(menu *fakeMenuItemRepo, offers *fakeOfferRepo) *repository.Repositories {
	return &repository.Repositories{
		MenuItem:   menu,
		Offer:      offers,
		Order:      &fakeOrderRepo{},
		OrderItem:  &fakeOrderItemRepo{},
		Settings:   &fakeSettingsRepo{},
		OrderEvent: &fakeOrderEventRepo{},
	}
}

func testMenu() (*fakeMenuItemRepo, uuid.UUID, uuid.UUID) {
	latteID := uuid.New()
	teaID := uuid.New()
	menu := &fakeMenuItemRepo{items: map[uuid.UUID]*domain.MenuItem{
		latteID: {ID: latteID, Name: "Cafe Latte", Price: dec("200"), Category: "Coffee", PrepTimeMinutes: 4, IsAvailable: true},
		teaID:   {ID: teaID, Name: "Masala Chai", Price: dec("100"), Category: "Tea", PrepTimeMinutes: 3, IsAvailable: true},
	}}
	return menu, latteID, teaID
}

func TestCreateFromCart_PersistsEngineTotals(t *testing.T) {
	ctx := context.Background()
	menu, latteID, teaID := testMenu()
	offer := &domain.Offer{
		ID:                   uuid.New(),
		Name:                 "coffee10",
		Type:                 domain.OfferTypePercentage,
		DiscountValue:        dec("10"),
		ApplicableCategories: []string{"Coffee"},
		IsActive:             true,
	}
	repos := newTestRepos(menu, &fakeOfferRepo{offers: []*domain.Offer{offer}})
	svc := NewOrderService(repos, zap.NewNop())

	// Subtotal 300, coffee-only 10% discount = 20, default 2.5/2.5 tax on
	// 280 = 14, total 294.
	req := OrderSubmitRequest{
		Channel: string(domain.ChannelCounter),
		Items: []CartLine{
			{MenuItemID: latteID.String(), Quantity: 1},
			{MenuItemID: teaID.String(), Quantity: 1},
		},
		Customer: CustomerInfo{Name: "Asha"},
		Totals:   CartTotals{Subtotal: 300, Discount: 20, Tax: 14, Total: 294},
	}

	order, err := svc.CreateFromCart(ctx, req)
	if err != nil {
		t.Fatalf("CreateFromCart error: %v", err)
	}

	if !order.Total.Equal(dec("294")) {
		t.Fatalf("stored total: want 294.00, got %s", order.Total)
	}
	if !order.DiscountAmount.Equal(dec("20")) {
		t.Fatalf("stored discount: want 20.00, got %s", order.DiscountAmount)
	}
	if order.AppliedOfferID == nil || *order.AppliedOfferID != offer.ID {
		t.Fatalf("expected applied offer ID to be persisted, got %v", order.AppliedOfferID)
	}
	if order.Status != domain.OrderStatusPlaced {
		t.Fatalf("new order status: want PLACED, got %s", order.Status)
	}

	items := repos.OrderItem.(*fakeOrderItemRepo).created
	if len(items) != 2 {
		t.Fatalf("expected 2 persisted order items, got %d", len(items))
	}
	events := repos.OrderEvent.(*fakeOrderEventRepo).events
	if len(events) != 1 || events[0].EventType != "order_created" {
		t.Fatalf("expected an order_created event, got %+v", events)
	}
}

func TestCreateFromCart_RejectsTotalMismatch(t *testing.T) {
	ctx := context.Background()
	menu, latteID, _ := testMenu()
	repos := newTestRepos(menu, &fakeOfferRepo{})
	svc := NewOrderService(repos, zap.NewNop())

	req := OrderSubmitRequest{
		Channel:  string(domain.ChannelCounter),
		Items:    []CartLine{{MenuItemID: latteID.String(), Quantity: 1}},
		Customer: CustomerInfo{Name: "Asha"},
		// Engine computes 200 + 5% tax = 210; the client claims 200.
		Totals: CartTotals{Total: 200},
	}

	_, err := svc.CreateFromCart(ctx, req)
	if _, ok := err.(*errors.ErrTotalMismatch); !ok {
		t.Fatalf("expected ErrTotalMismatch, got %v", err)
	}

	if len(repos.Order.(*fakeOrderRepo).orders) != 0 {
		t.Fatal("nothing must be persisted on a total mismatch")
	}
}

func TestCreateFromCart_ChannelFieldRequirements(t *testing.T) {
	ctx := context.Background()
	menu, latteID, _ := testMenu()
	repos := newTestRepos(menu, &fakeOfferRepo{})
	svc := NewOrderService(repos, zap.NewNop())

	base := OrderSubmitRequest{
		Items:    []CartLine{{MenuItemID: latteID.String(), Quantity: 1}},
		Customer: CustomerInfo{Name: "Asha"},
		Totals:   CartTotals{Total: 210},
	}

	qr := base
	qr.Channel = string(domain.ChannelQR)
	if _, err := svc.CreateFromCart(ctx, qr); err == nil {
		t.Fatal("QR order without a table number must be rejected")
	}

	pre := base
	pre.Channel = string(domain.ChannelPreorder)
	if _, err := svc.CreateFromCart(ctx, pre); err == nil {
		t.Fatal("pre-order without a scheduled time must be rejected")
	}

	bad := base
	bad.Channel = "DRIVE_THRU"
	if _, err := svc.CreateFromCart(ctx, bad); err == nil {
		t.Fatal("unknown channel must be rejected")
	}
}

func TestCreateFromCart_UnavailableItemRejected(t *testing.T) {
	ctx := context.Background()
	menu, latteID, _ := testMenu()
	menu.items[latteID].IsAvailable = false
	repos := newTestRepos(menu, &fakeOfferRepo{})
	svc := NewOrderService(repos, zap.NewNop())

	req := OrderSubmitRequest{
		Channel:  string(domain.ChannelCounter),
		Items:    []CartLine{{MenuItemID: latteID.String(), Quantity: 1}},
		Customer: CustomerInfo{Name: "Asha"},
		Totals:   CartTotals{Total: 210},
	}
	if _, err := svc.CreateFromCart(ctx, req); err == nil {
		t.Fatal("unavailable menu item must be rejected")
	}
}

func TestUpdateStatus_Transitions(t *testing.T) {
	ctx := context.Background()
	menu, _, _ := testMenu()
	repos := newTestRepos(menu, &fakeOfferRepo{})
	svc := NewOrderService(repos, zap.NewNop())

	order := &domain.CafeOrder{Status: domain.OrderStatusPlaced}
	repos.Order.Create(ctx, order)

	if err := svc.UpdateStatus(ctx, order.ID, domain.OrderStatusPreparing, nil); err != nil {
		t.Fatalf("PLACED -> PREPARING should succeed: %v", err)
	}
	err := svc.UpdateStatus(ctx, order.ID, domain.OrderStatusCompleted, nil)
	if _, ok := err.(*errors.ErrInvalidStateTransition); !ok {
		t.Fatalf("PREPARING -> COMPLETED must fail with ErrInvalidStateTransition, got %v", err)
	}
}

func TestTaxConfig_FallsBackToDefaults(t *testing.T) {
	ctx := context.Background()
	menu, _, _ := testMenu()
	repos := newTestRepos(menu, &fakeOfferRepo{})
	svc := NewPricingService(repos, zap.NewNop())

	cfg := svc.TaxConfig(ctx)
	if !cfg.CGSTRate.Equal(dec("2.5")) || !cfg.SGSTRate.Equal(dec("2.5")) {
		t.Fatalf("missing settings must fall back to 2.5/2.5, got %s/%s", cfg.CGSTRate, cfg.SGSTRate)
	}
	if cfg.Base != domain.TaxBaseDiscountedSubtotal {
		t.Fatalf("missing settings must default to discounted-subtotal base, got %s", cfg.Base)
	}

	repos.Settings.UpsertBilling(ctx, &domain.BillingSettings{
		CGSTRate: dec("9"),
		SGSTRate: dec("9"),
		TaxBase:  domain.TaxBaseSubtotal,
	})
	cfg = svc.TaxConfig(ctx)
	if !cfg.CGSTRate.Equal(dec("9")) || cfg.Base != domain.TaxBaseSubtotal {
		t.Fatalf("stored settings must be used when present, got %+v", cfg)
	}
}
