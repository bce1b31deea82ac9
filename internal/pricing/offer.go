package pricing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/beanleaf/cafeapi/internal/domain"
)

var oneHundred = decimal.NewFromInt(100)

// WellFormed reports whether an offer record is structurally usable by the
// engine. A broken promotional rule must never block checkout, so malformed
// offers are simply excluded from selection instead of failing the
// computation.
func WellFormed(offer domain.Offer) bool {
	if !offer.Type.IsValid() {
		return false
	}
	if offer.DiscountValue.IsNegative() {
		return false
	}
	if offer.MaxDiscountAmount != nil && offer.MaxDiscountAmount.IsNegative() {
		return false
	}
	if offer.MinOrderAmount != nil && offer.MinOrderAmount.IsNegative() {
		return false
	}
	return true
}

// IsEligible decides whether an offer qualifies against a cart. The subtotal
// argument is the whole-cart pre-discount subtotal; it is passed in so the
// caller computes it once per pricing run.
//
// An item restriction takes precedence over a category restriction: once an
// item list is given, the category list is ignored.
func IsEligible(offer domain.Offer, items []LineItem, subtotal decimal.Decimal) bool {
	if !WellFormed(offer) {
		return false
	}
	if len(items) == 0 {
		return false
	}
	if offer.MinOrderAmount != nil && subtotal.LessThan(*offer.MinOrderAmount) {
		return false
	}
	if len(offer.ApplicableItems) > 0 {
		for _, li := range items {
			if containsID(offer.ApplicableItems, li.ItemID) {
				return true
			}
		}
		return false
	}
	if len(offer.ApplicableCategories) > 0 {
		for _, li := range items {
			if containsString(offer.ApplicableCategories, li.category()) {
				return true
			}
		}
		return false
	}
	return true
}

// MatchedItems returns the subset of line items an offer's discount applies
// to: the item list if one is set, else the category list, else the whole
// cart.
func MatchedItems(offer domain.Offer, items []LineItem) []LineItem {
	if len(offer.ApplicableItems) > 0 {
		matched := make([]LineItem, 0, len(items))
		for _, li := range items {
			if containsID(offer.ApplicableItems, li.ItemID) {
				matched = append(matched, li)
			}
		}
		return matched
	}
	if len(offer.ApplicableCategories) > 0 {
		matched := make([]LineItem, 0, len(items))
		for _, li := range items {
			if containsString(offer.ApplicableCategories, li.category()) {
				matched = append(matched, li)
			}
		}
		return matched
	}
	return items
}

// MatchedSubtotal sums the line totals of the items an offer applies to.
func MatchedSubtotal(offer domain.Offer, items []LineItem) decimal.Decimal {
	return Subtotal(MatchedItems(offer, items))
}

// DiscountFor computes the discount an offer produces against its matched
// subtotal. The result never exceeds the matched subtotal and is never
// negative.
func DiscountFor(offer domain.Offer, matchedSubtotal decimal.Decimal) decimal.Decimal {
	if !WellFormed(offer) || matchedSubtotal.Sign() <= 0 {
		return decimal.Zero
	}

	var discount decimal.Decimal
	switch offer.Type {
	case domain.OfferTypePercentage:
		discount = matchedSubtotal.Mul(offer.DiscountValue).Div(oneHundred)
		if offer.MaxDiscountAmount != nil && discount.GreaterThan(*offer.MaxDiscountAmount) {
			discount = *offer.MaxDiscountAmount
		}
	case domain.OfferTypeFlat:
		discount = offer.DiscountValue
	default:
		return decimal.Zero
	}

	if discount.GreaterThan(matchedSubtotal) {
		discount = matchedSubtotal
	}
	if discount.IsNegative() {
		return decimal.Zero
	}
	return discount
}

// SelectBestOffer deterministically picks at most one auto-applied offer:
// highest priority first, largest would-be discount on a priority tie, and
// first-in-input-order when both compare equal. An empty cart never selects
// an offer. The selection is recomputed from scratch on every call.
func SelectBestOffer(items []LineItem, offers []domain.Offer) *domain.Offer {
	if len(items) == 0 {
		return nil
	}
	subtotal := Subtotal(items)

	var best *domain.Offer
	var bestDiscount decimal.Decimal
	for i := range offers {
		offer := offers[i]
		if !IsEligible(offer, items, subtotal) {
			continue
		}
		discount := DiscountFor(offer, MatchedSubtotal(offer, items))
		if best == nil ||
			offer.Priority > best.Priority ||
			(offer.Priority == best.Priority && discount.GreaterThan(bestDiscount)) {
			picked := offer
			best = &picked
			bestDiscount = discount
		}
	}
	return best
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func containsString(values []string, value string) bool {
	for _, candidate := range values {
		if candidate == value {
			return true
		}
	}
	return false
}
