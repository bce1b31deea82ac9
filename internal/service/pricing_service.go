package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/beanleaf/cafeapi/internal/domain"
	"github.com/beanleaf/cafeapi/internal/pricing"
	"github.com/beanleaf/cafeapi/internal/repository"
	"github.com/beanleaf/cafeapi/pkg/errors"
)

type pricingService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewPricingService creates a new pricing service. It is the single place
// where cart snapshots, the offer list and the tax configuration are
// assembled before the engine runs; all three ordering flows go through it.
func NewPricingService(repos *repository.Repositories, logger *zap.Logger) *pricingService {
	return &pricingService{
		repos:  repos,
		logger: logger,
	}
}

// HydrateCart resolves submitted cart lines against the menu catalog.
// Client-side prices are never trusted; unit prices, categories and prep
// times all come from the stored menu items.
func (s *pricingService) HydrateCart(ctx context.Context, lines []CartLine) ([]pricing.LineItem, error) {
	if len(lines) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		id, err := uuid.Parse(line.MenuItemID)
		if err != nil {
			return nil, &errors.ErrValidation{Field: "menu_item_id", Message: "invalid menu item ID " + line.MenuItemID}
		}
		ids = append(ids, id)
	}

	menuItems, err := s.repos.MenuItem.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]pricing.LineItem, 0, len(lines))
	for i, line := range lines {
		menuItem, ok := menuItems[ids[i]]
		if !ok {
			return nil, &errors.ErrNotFound{Resource: "menu item", ID: line.MenuItemID}
		}
		if !menuItem.IsAvailable {
			return nil, &errors.ErrValidation{Field: "items", Message: menuItem.Name + " is currently unavailable"}
		}
		items = append(items, pricing.LineItem{
			ItemID:          menuItem.ID,
			Name:            menuItem.Name,
			UnitPrice:       menuItem.Price,
			Quantity:        line.Quantity,
			Category:        menuItem.Category,
			PrepTimeMinutes: menuItem.PrepTimeMinutes,
		})
	}

	return items, nil
}

// TaxConfig loads the billing settings, falling back to the documented
// defaults when no settings row exists. A failed settings fetch must never
// block checkout.
func (s *pricingService) TaxConfig(ctx context.Context) pricing.TaxConfig {
	settings, err := s.repos.Settings.GetBilling(ctx)
	if err != nil {
		if _, ok := err.(*errors.ErrNotFound); !ok {
			s.logger.Warn("Failed to load billing settings, using defaults", zap.Error(err))
		}
		return pricing.DefaultTaxConfig()
	}
	return pricing.TaxConfig{
		CGSTRate: settings.CGSTRate,
		SGSTRate: settings.SGSTRate,
		Base:     settings.TaxBase,
	}
}

// PriceCart hydrates the cart, gathers candidate offers and runs the engine.
func (s *pricingService) PriceCart(ctx context.Context, lines []CartLine) ([]pricing.LineItem, pricing.Result, error) {
	items, err := s.HydrateCart(ctx, lines)
	if err != nil {
		return nil, pricing.Result{}, err
	}

	offerPtrs, err := s.repos.Offer.ListActive(ctx)
	if err != nil {
		// Offers are a bonus, not a requirement: price without them rather
		// than failing the customer.
		s.logger.Warn("Failed to load offers, pricing without them", zap.Error(err))
		offerPtrs = nil
	}
	offers := make([]domain.Offer, 0, len(offerPtrs))
	for _, offer := range offerPtrs {
		offers = append(offers, *offer)
	}

	result := pricing.Price(items, offers, s.TaxConfig(ctx))
	return items, result, nil
}
