package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/beanleaf/cafeapi/internal/domain"
)

// Result is the complete output of one pricing run. Monetary fields keep
// full precision; round only at the presentation or persistence boundary
// via Rounded.
type Result struct {
	Subtotal             decimal.Decimal
	AppliedOffer         *domain.Offer
	DiscountAmount       decimal.Decimal
	DiscountedSubtotal   decimal.Decimal
	CGSTAmount           decimal.Decimal
	SGSTAmount           decimal.Decimal
	TaxAmount            decimal.Decimal
	Total                decimal.Decimal
	EstimatedPrepMinutes int
}

// Price runs the full engine over a cart snapshot: offer selection, discount
// computation, tax derivation and totals assembly. It is idempotent and side
// effect free; identical inputs always produce identical results.
func Price(items []LineItem, offers []domain.Offer, cfg TaxConfig) Result {
	cfg = cfg.normalized()

	subtotal := Subtotal(items)
	applied := SelectBestOffer(items, offers)

	discount := decimal.Zero
	if applied != nil {
		discount = DiscountFor(*applied, MatchedSubtotal(*applied, items))
	}
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}

	discountedSubtotal := subtotal.Sub(discount)
	if discountedSubtotal.IsNegative() {
		discountedSubtotal = decimal.Zero
	}

	cgst, sgst := calculateTax(subtotal, discountedSubtotal, cfg)
	tax := cgst.Add(sgst)

	return Result{
		Subtotal:             subtotal,
		AppliedOffer:         applied,
		DiscountAmount:       discount,
		DiscountedSubtotal:   discountedSubtotal,
		CGSTAmount:           cgst,
		SGSTAmount:           sgst,
		TaxAmount:            tax,
		Total:                discountedSubtotal.Add(tax),
		EstimatedPrepMinutes: EstimatedPrepMinutes(items),
	}
}

// Rounded returns a copy with all monetary fields rounded to two decimal
// places, for rendering and for the totals persisted on order submission.
func (r Result) Rounded() Result {
	r.Subtotal = r.Subtotal.Round(2)
	r.DiscountAmount = r.DiscountAmount.Round(2)
	r.DiscountedSubtotal = r.DiscountedSubtotal.Round(2)
	r.CGSTAmount = r.CGSTAmount.Round(2)
	r.SGSTAmount = r.SGSTAmount.Round(2)
	r.TaxAmount = r.TaxAmount.Round(2)
	r.Total = r.Total.Round(2)
	return r
}
