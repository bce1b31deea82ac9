// Package pricing implements the order pricing and promotional-offer engine
// shared by the counter, QR and pre-order flows. It is a pure computation
// over a cart snapshot, a set of candidate offers and a tax configuration:
// no I/O, no logging, no state between calls. Callers re-invoke it on every
// cart mutation and always receive a complete result.
package pricing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// DefaultCategory is assumed when a line item arrives without one.
	DefaultCategory = "Coffee"
	// DefaultPrepMinutes is assumed for items with no prep time attribute.
	DefaultPrepMinutes = 5
)

// LineItem is one priced entry in a cart snapshot. Duplicate lines are
// expected to have been merged upstream; the engine does not deduplicate.
type LineItem struct {
	ItemID          uuid.UUID
	Name            string
	UnitPrice       decimal.Decimal
	Quantity        int
	Category        string
	PrepTimeMinutes int
}

// lineTotal returns unitPrice * quantity. Zero or negative quantities and
// negative prices contribute nothing; such lines should never reach the
// engine, so this is a guard rather than a contract.
func (li LineItem) lineTotal() decimal.Decimal {
	if li.Quantity < 1 || li.UnitPrice.IsNegative() {
		return decimal.Zero
	}
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// category returns the item's category tag, defaulting when absent.
func (li LineItem) category() string {
	if li.Category == "" {
		return DefaultCategory
	}
	return li.Category
}

// Subtotal sums unitPrice * quantity over all line items.
func Subtotal(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, li := range items {
		total = total.Add(li.lineTotal())
	}
	return total
}

// EstimatedPrepMinutes derives an informational preparation estimate: the
// longest single-item prep time plus a batching penalty of one minute per
// three units. It does not affect pricing.
func EstimatedPrepMinutes(items []LineItem) int {
	if len(items) == 0 {
		return 0
	}
	maxPrep := 0
	totalQuantity := 0
	for _, li := range items {
		prep := li.PrepTimeMinutes
		if prep <= 0 {
			prep = DefaultPrepMinutes
		}
		if prep > maxPrep {
			maxPrep = prep
		}
		if li.Quantity > 0 {
			totalQuantity += li.Quantity
		}
	}
	return maxPrep + (totalQuantity+2)/3
}
