package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/beanleaf/cafeapi/internal/domain"
	"github.com/beanleaf/cafeapi/pkg/errors"
)

func TestOfferService_CreateValid(t *testing.T) {
	ctx := context.Background()
	menu, _, _ := testMenu()
	repos := newTestRepos(menu, &fakeOfferRepo{})
	svc := NewOfferService(repos, zap.NewNop())

	cap := 50.0
	minOrder := 200.0
	offer, err := svc.Create(ctx, UpsertOfferRequest{
		Name:              "weekday20",
		OfferType:         "percentage",
		DiscountValue:     20,
		MaxDiscountAmount: &cap,
		MinOrderAmount:    &minOrder,
		Priority:          2,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if offer.Type != domain.OfferTypePercentage || !offer.IsActive {
		t.Fatalf("unexpected stored offer %+v", offer)
	}
	if offer.MaxDiscountAmount == nil || offer.MinOrderAmount == nil {
		t.Fatal("cap and min order must be stored")
	}
}

func TestOfferService_CreateRejections(t *testing.T) {
	ctx := context.Background()
	menu, _, _ := testMenu()
	repos := newTestRepos(menu, &fakeOfferRepo{})
	svc := NewOfferService(repos, zap.NewNop())

	cap := 50.0
	cases := []struct {
		name string
		req  UpsertOfferRequest
	}{
		{"unknown type", UpsertOfferRequest{Name: "x", OfferType: "bogo", DiscountValue: 10}},
		{"percentage over 100", UpsertOfferRequest{Name: "x", OfferType: "percentage", DiscountValue: 150}},
		{"cap on flat offer", UpsertOfferRequest{Name: "x", OfferType: "flat", DiscountValue: 10, MaxDiscountAmount: &cap}},
		{"bad item id", UpsertOfferRequest{Name: "x", OfferType: "flat", DiscountValue: 10, ApplicableItems: []string{"not-a-uuid"}}},
	}
	for _, tc := range cases {
		if _, err := svc.Create(ctx, tc.req); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		} else if _, ok := err.(*errors.ErrValidation); !ok {
			t.Errorf("%s: expected ErrValidation, got %v", tc.name, err)
		}
	}
}

func TestOfferService_UpdateKeepsIdentity(t *testing.T) {
	ctx := context.Background()
	menu, _, _ := testMenu()
	offerRepo := &fakeOfferRepo{}
	repos := newTestRepos(menu, offerRepo)
	svc := NewOfferService(repos, zap.NewNop())

	created, err := svc.Create(ctx, UpsertOfferRequest{Name: "flat30", OfferType: "flat", DiscountValue: 30})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	inactive := false
	updated, err := svc.Update(ctx, created.ID, UpsertOfferRequest{
		Name:          "flat40",
		OfferType:     "flat",
		DiscountValue: 40,
		IsActive:      &inactive,
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.ID != created.ID {
		t.Fatal("update must keep the offer ID")
	}
	if updated.IsActive {
		t.Fatal("update must honour the is_active flag")
	}

	if _, err := svc.Update(ctx, uuid.New(), UpsertOfferRequest{Name: "x", OfferType: "flat", DiscountValue: 1}); err == nil {
		t.Fatal("updating a missing offer must fail")
	}
}
