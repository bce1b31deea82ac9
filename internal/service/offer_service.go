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

type offerService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewOfferService creates a new offer service
func NewOfferService(repos *repository.Repositories, logger *zap.Logger) *offerService {
	return &offerService{
		repos:  repos,
		logger: logger,
	}
}

// Create validates and stores a new offer
func (s *offerService) Create(ctx context.Context, req UpsertOfferRequest) (*domain.Offer, error) {
	offer, err := s.offerFromRequest(req)
	if err != nil {
		return nil, err
	}

	if err := s.repos.Offer.Create(ctx, offer); err != nil {
		return nil, err
	}
	return offer, nil
}

// Update validates and stores changes to an existing offer
func (s *offerService) Update(ctx context.Context, id uuid.UUID, req UpsertOfferRequest) (*domain.Offer, error) {
	existing, err := s.repos.Offer.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	offer, err := s.offerFromRequest(req)
	if err != nil {
		return nil, err
	}
	offer.ID = existing.ID
	offer.CreatedAt = existing.CreatedAt

	if err := s.repos.Offer.Update(ctx, offer); err != nil {
		return nil, err
	}
	return offer, nil
}

// Delete removes an offer
func (s *offerService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repos.Offer.Delete(ctx, id)
}

// offerFromRequest builds and validates a domain offer. Validation mirrors
// the engine's well-formedness rules so an admin can never save a rule the
// engine would silently skip.
func (s *offerService) offerFromRequest(req UpsertOfferRequest) (*domain.Offer, error) {
	offerType := domain.OfferType(req.OfferType)
	if !offerType.IsValid() {
		return nil, &errors.ErrValidation{Field: "offer_type", Message: "must be percentage or flat"}
	}
	if req.DiscountValue < 0 {
		return nil, &errors.ErrValidation{Field: "discount_value", Message: "must not be negative"}
	}
	if offerType == domain.OfferTypePercentage && req.DiscountValue > 100 {
		return nil, &errors.ErrValidation{Field: "discount_value", Message: "percentage must be between 0 and 100"}
	}
	if req.MaxDiscountAmount != nil && offerType != domain.OfferTypePercentage {
		return nil, &errors.ErrValidation{Field: "max_discount_amount", Message: "cap applies only to percentage offers"}
	}
	if req.MaxDiscountAmount != nil && *req.MaxDiscountAmount < 0 {
		return nil, &errors.ErrValidation{Field: "max_discount_amount", Message: "must not be negative"}
	}
	if req.MinOrderAmount != nil && *req.MinOrderAmount < 0 {
		return nil, &errors.ErrValidation{Field: "min_order_amount", Message: "must not be negative"}
	}

	items := make([]uuid.UUID, 0, len(req.ApplicableItems))
	for _, raw := range req.ApplicableItems {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, &errors.ErrValidation{Field: "applicable_items", Message: "invalid menu item ID " + raw}
		}
		items = append(items, id)
	}

	offer := &domain.Offer{
		Name:                 req.Name,
		Description:          req.Description,
		Type:                 offerType,
		DiscountValue:        decimal.NewFromFloat(req.DiscountValue),
		ApplicableCategories: req.ApplicableCategories,
		ApplicableItems:      items,
		Priority:             req.Priority,
		IsActive:             true,
	}
	if req.MaxDiscountAmount != nil {
		d := decimal.NewFromFloat(*req.MaxDiscountAmount)
		offer.MaxDiscountAmount = &d
	}
	if req.MinOrderAmount != nil {
		d := decimal.NewFromFloat(*req.MinOrderAmount)
		offer.MinOrderAmount = &d
	}
	if req.IsActive != nil {
		offer.IsActive = *req.IsActive
	}

	if !pricing.WellFormed(*offer) {
		return nil, &errors.ErrValidation{Field: "offer", Message: "offer would be ignored by the pricing engine"}
	}

	return offer, nil
}
