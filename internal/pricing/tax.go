package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/beanleaf/cafeapi/internal/domain"
)

var defaultTaxRate = decimal.RequireFromString("2.5")

// TaxConfig carries the two symmetric GST components and the base they are
// computed on. The zero value is not usable directly; use DefaultTaxConfig
// when the billing settings collaborator is unavailable.
type TaxConfig struct {
	CGSTRate decimal.Decimal
	SGSTRate decimal.Decimal
	Base     domain.TaxBaseMode
}

// DefaultTaxConfig returns the documented fallback: 2.5% CGST, 2.5% SGST,
// computed on the discounted subtotal.
func DefaultTaxConfig() TaxConfig {
	return TaxConfig{
		CGSTRate: defaultTaxRate,
		SGSTRate: defaultTaxRate,
		Base:     domain.TaxBaseDiscountedSubtotal,
	}
}

// normalized replaces negative rates and unknown base modes with the
// documented defaults so a bad settings fetch can never fail a checkout.
func (c TaxConfig) normalized() TaxConfig {
	if c.CGSTRate.IsNegative() {
		c.CGSTRate = defaultTaxRate
	}
	if c.SGSTRate.IsNegative() {
		c.SGSTRate = defaultTaxRate
	}
	if !c.Base.IsValid() {
		c.Base = domain.TaxBaseDiscountedSubtotal
	}
	return c
}

// calculateTax computes the CGST and SGST amounts on the configured base.
func calculateTax(subtotal, discountedSubtotal decimal.Decimal, cfg TaxConfig) (cgst, sgst decimal.Decimal) {
	base := discountedSubtotal
	if cfg.Base == domain.TaxBaseSubtotal {
		base = subtotal
	}
	cgst = base.Mul(cfg.CGSTRate).Div(oneHundred)
	sgst = base.Mul(cfg.SGSTRate).Div(oneHundred)
	return cgst, sgst
}
