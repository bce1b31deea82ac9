package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/beanleaf/cafeapi/internal/domain"
)

func TestPrice_CategoryRestrictedPercentage(t *testing.T) {
	tea := testItem("Tea", "100", 1)
	coffee := testItem("Coffee", "200", 1)
	items := []LineItem{tea, coffee}

	offer := domain.Offer{
		ID:                   uuid.New(),
		Name:                 "coffee10",
		Type:                 domain.OfferTypePercentage,
		DiscountValue:        dec("10"),
		ApplicableCategories: []string{"Coffee"},
	}

	result := Price(items, []domain.Offer{offer}, DefaultTaxConfig())

	if !result.Subtotal.Equal(dec("300")) {
		t.Fatalf("subtotal: want 300, got %s", result.Subtotal)
	}
	if result.AppliedOffer == nil || result.AppliedOffer.ID != offer.ID {
		t.Fatalf("expected offer to auto-apply, got %+v", result.AppliedOffer)
	}
	// 10% of the matched coffee line only.
	if !result.DiscountAmount.Equal(dec("20")) {
		t.Fatalf("discount: want 20, got %s", result.DiscountAmount)
	}
	if !result.DiscountedSubtotal.Equal(dec("280")) {
		t.Fatalf("discounted subtotal: want 280, got %s", result.DiscountedSubtotal)
	}
}

func TestPrice_TaxBaseModes(t *testing.T) {
	items := []LineItem{testItem("Coffee", "100", 1)}
	offer := domain.Offer{ID: uuid.New(), Type: domain.OfferTypeFlat, DiscountValue: dec("20")}

	cfg := TaxConfig{CGSTRate: dec("2.5"), SGSTRate: dec("2.5"), Base: domain.TaxBaseSubtotal}
	result := Price(items, []domain.Offer{offer}, cfg)
	if !result.TaxAmount.Equal(dec("5")) {
		t.Fatalf("tax on subtotal: want 5, got %s", result.TaxAmount)
	}
	if !result.Total.Equal(dec("85")) {
		t.Fatalf("total with tax on subtotal: want 85, got %s", result.Total)
	}

	cfg.Base = domain.TaxBaseDiscountedSubtotal
	result = Price(items, []domain.Offer{offer}, cfg)
	if !result.TaxAmount.Equal(dec("4")) {
		t.Fatalf("tax on discounted subtotal: want 4, got %s", result.TaxAmount)
	}
	if !result.Total.Equal(dec("84")) {
		t.Fatalf("total with tax on discounted subtotal: want 84, got %s", result.Total)
	}
	if !result.CGSTAmount.Equal(dec("2")) || !result.SGSTAmount.Equal(dec("2")) {
		t.Fatalf("expected symmetric 2/2 split, got %s/%s", result.CGSTAmount, result.SGSTAmount)
	}
}

func TestPrice_EmptyCart(t *testing.T) {
	offer := domain.Offer{ID: uuid.New(), Type: domain.OfferTypeFlat, DiscountValue: dec("10")}
	result := Price(nil, []domain.Offer{offer}, DefaultTaxConfig())

	if !result.Subtotal.IsZero() || !result.Total.IsZero() {
		t.Fatalf("empty cart must price to zero, got subtotal %s total %s", result.Subtotal, result.Total)
	}
	if result.AppliedOffer != nil {
		t.Fatalf("empty cart must not select an offer, got %+v", result.AppliedOffer)
	}
	if result.EstimatedPrepMinutes != 0 {
		t.Fatalf("empty cart prep time: want 0, got %d", result.EstimatedPrepMinutes)
	}
}

func TestPrice_Idempotent(t *testing.T) {
	items := []LineItem{testItem("Coffee", "129.50", 2), testItem("Sides", "80", 1)}
	offers := []domain.Offer{
		{ID: uuid.New(), Type: domain.OfferTypePercentage, DiscountValue: dec("15"), MaxDiscountAmount: decPtr("40"), Priority: 1},
		{ID: uuid.New(), Type: domain.OfferTypeFlat, DiscountValue: dec("30"), Priority: 2},
	}
	cfg := DefaultTaxConfig()

	first := Price(items, offers, cfg)
	second := Price(items, offers, cfg)

	if !first.Total.Equal(second.Total) ||
		!first.DiscountAmount.Equal(second.DiscountAmount) ||
		!first.TaxAmount.Equal(second.TaxAmount) {
		t.Fatalf("identical inputs must price identically: %+v vs %+v", first, second)
	}
	if first.AppliedOffer == nil || second.AppliedOffer == nil || first.AppliedOffer.ID != second.AppliedOffer.ID {
		t.Fatal("identical inputs must select the same offer")
	}
}

func TestPrice_NonNegativityAndDiscountBound(t *testing.T) {
	items := []LineItem{testItem("Tea", "50", 1)}
	// A flat discount far larger than the cart.
	offers := []domain.Offer{{ID: uuid.New(), Type: domain.OfferTypeFlat, DiscountValue: dec("9999")}}

	result := Price(items, offers, DefaultTaxConfig())

	if result.DiscountAmount.IsNegative() || result.DiscountedSubtotal.IsNegative() || result.Total.IsNegative() {
		t.Fatalf("monetary results must stay non-negative: %+v", result)
	}
	if result.DiscountAmount.GreaterThan(result.Subtotal) {
		t.Fatalf("discount %s must not exceed subtotal %s", result.DiscountAmount, result.Subtotal)
	}
	if !result.DiscountedSubtotal.IsZero() {
		t.Fatalf("fully discounted cart should net to zero, got %s", result.DiscountedSubtotal)
	}
}

func TestPrice_MalformedOfferNeverBlocksCheckout(t *testing.T) {
	items := []LineItem{testItem("Coffee", "100", 1)}
	valid := domain.Offer{ID: uuid.New(), Type: domain.OfferTypeFlat, DiscountValue: dec("10"), Priority: 0}
	broken := domain.Offer{ID: uuid.New(), Type: "mystery", DiscountValue: dec("99"), Priority: 100}

	result := Price(items, []domain.Offer{broken, valid}, DefaultTaxConfig())

	if result.AppliedOffer == nil || result.AppliedOffer.ID != valid.ID {
		t.Fatalf("broken offer must be skipped in favour of the valid one, got %+v", result.AppliedOffer)
	}
	if !result.DiscountAmount.Equal(dec("10")) {
		t.Fatalf("expected the valid offer's discount, got %s", result.DiscountAmount)
	}
}

func TestPrice_DefensiveLineItemGuards(t *testing.T) {
	items := []LineItem{
		{ItemID: uuid.New(), UnitPrice: dec("100"), Quantity: 0},
		{ItemID: uuid.New(), UnitPrice: dec("-10"), Quantity: 2},
		testItem("Coffee", "60", 1),
	}
	result := Price(items, nil, DefaultTaxConfig())
	if !result.Subtotal.Equal(dec("60")) {
		t.Fatalf("zero-quantity and negative-price lines must contribute nothing, got %s", result.Subtotal)
	}
}

func TestPrice_NegativeRatesFallBackToDefaults(t *testing.T) {
	items := []LineItem{testItem("Coffee", "100", 1)}
	cfg := TaxConfig{CGSTRate: dec("-1"), SGSTRate: dec("-1"), Base: "sideways"}

	result := Price(items, nil, cfg)
	// 2.5% + 2.5% on the discounted subtotal of 100.
	if !result.TaxAmount.Equal(dec("5")) {
		t.Fatalf("invalid tax config must fall back to defaults, got tax %s", result.TaxAmount)
	}
}

func TestPrice_RoundedAtBoundaryOnly(t *testing.T) {
	// 3 * 33.33 = 99.99; 10% discount = 9.999, kept unrounded internally.
	items := []LineItem{testItem("Coffee", "33.33", 3)}
	offers := []domain.Offer{{ID: uuid.New(), Type: domain.OfferTypePercentage, DiscountValue: dec("10")}}

	result := Price(items, offers, DefaultTaxConfig())
	if !result.DiscountAmount.Equal(dec("9.999")) {
		t.Fatalf("mid-calculation values must keep full precision, got %s", result.DiscountAmount)
	}

	rounded := result.Rounded()
	if !rounded.DiscountAmount.Equal(dec("10")) {
		t.Fatalf("rounded discount: want 10.00, got %s", rounded.DiscountAmount)
	}
	if rounded.Total.Exponent() < -2 {
		t.Fatalf("rounded total must have at most 2 decimal places, got %s", rounded.Total)
	}
}

func TestEstimatedPrepMinutes(t *testing.T) {
	espresso := testItem("Coffee", "120", 2)
	espresso.PrepTimeMinutes = 4
	shake := testItem("Shakes", "180", 2)
	shake.PrepTimeMinutes = 8
	untimed := testItem("Sides", "90", 1) // defaults to 5

	// max(4, 8, 5) + ceil(5/3) = 8 + 2
	if got := EstimatedPrepMinutes([]LineItem{espresso, shake, untimed}); got != 10 {
		t.Fatalf("prep estimate: want 10, got %d", got)
	}

	if got := EstimatedPrepMinutes(nil); got != 0 {
		t.Fatalf("empty cart prep estimate: want 0, got %d", got)
	}
}

func TestPrice_ResubmissionMatchesStoredTotals(t *testing.T) {
	// The totals persisted at submission must equal a fresh recomputation
	// from the same stored cart, offer and tax config.
	items := []LineItem{testItem("Coffee", "145", 2), testItem("Tea", "95", 1)}
	offers := []domain.Offer{{ID: uuid.New(), Type: domain.OfferTypePercentage, DiscountValue: dec("20"), MaxDiscountAmount: decPtr("60")}}
	cfg := TaxConfig{CGSTRate: dec("2.5"), SGSTRate: dec("2.5"), Base: domain.TaxBaseDiscountedSubtotal}

	stored := Price(items, offers, cfg).Rounded()
	recomputed := Price(items, offers, cfg).Rounded()

	if !stored.Total.Equal(recomputed.Total) {
		t.Fatalf("stored total %s must match recomputation %s", stored.Total, recomputed.Total)
	}
	if !stored.DiscountAmount.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("expected capped discount 60, got %s", stored.DiscountAmount)
	}
}
