// Package pricing computes the financial totals of a line-item document.
// It is pure: no state, no side effects, deterministic for a given input.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/retailcore/backoffice/internal/apperrors"
	"github.com/retailcore/backoffice/internal/core/domain"
)

var hundred = decimal.NewFromInt(100)

// ComputeTotals derives the totals for the given items and percentages.
//
// The pipeline is: subtotal -> discount -> taxable amount -> tax -> total,
// with the discount applied before tax. All intermediate values keep full
// decimal precision; rounding is left to display callers (see Round).
//
// Percentages outside [0,100] are rejected with apperrors.ErrValidation
// rather than clamped, so data-entry mistakes surface instead of being
// silently absorbed. An empty item list yields all-zero totals, not an error.
func ComputeTotals(items []domain.LineItem, discountPercent, taxPercent decimal.Decimal) (domain.DocumentTotals, error) {
	if err := validatePercent("discount", discountPercent); err != nil {
		return domain.DocumentTotals{}, err
	}
	if err := validatePercent("tax", taxPercent); err != nil {
		return domain.DocumentTotals{}, err
	}

	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Amount())
	}

	discountAmount := subtotal.Mul(discountPercent).Div(hundred)
	taxableAmount := subtotal.Sub(discountAmount)
	taxAmount := taxableAmount.Mul(taxPercent).Div(hundred)

	return domain.DocumentTotals{
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		TaxableAmount:  taxableAmount,
		TaxAmount:      taxAmount,
		TotalAmount:    taxableAmount.Add(taxAmount),
	}, nil
}

// Round returns a copy of the totals with every figure rounded half-up to the
// given number of fraction digits, for display purposes.
func Round(t domain.DocumentTotals, places int32) domain.DocumentTotals {
	return domain.DocumentTotals{
		Subtotal:       t.Subtotal.Round(places),
		DiscountAmount: t.DiscountAmount.Round(places),
		TaxableAmount:  t.TaxableAmount.Round(places),
		TaxAmount:      t.TaxAmount.Round(places),
		TotalAmount:    t.TotalAmount.Round(places),
	}
}

func validatePercent(name string, pct decimal.Decimal) error {
	if pct.IsNegative() || pct.GreaterThan(hundred) {
		return fmt.Errorf("%w: %s percent %s is outside [0,100]", apperrors.ErrValidation, name, pct.String())
	}
	return nil
}
