// Package money implements exact decimal arithmetic for French
// administrative documents: invoice line totals (HT/TVA/TTC), the
// kilometric reimbursement tariff and rental charge sums.
package money

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultTaxRate is the standard French VAT rate.
var DefaultTaxRate = decimal.NewFromFloat(0.20)

// Round2 rounds to 2 decimal places, half away from zero. Monetary values
// are never negative at the point of rounding, so this is round-half-up.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ItemTotals computes the totals of a single invoice or quote line.
//
// The cascade order matters: the HT total is rounded before the TVA is
// derived from it, and the TTC is the sum of the two rounded values.
// Rounding an unrounded HT*rate product instead changes results at the
// cent level (33.33 x 3 at 20% must give 99.99 / 20.00 / 119.99).
func ItemTotals(quantity, unitPrice, taxRate decimal.Decimal) (exclTax, taxAmount, inclTax decimal.Decimal) {
	exclTax = Round2(quantity.Mul(unitPrice))
	taxAmount = Round2(exclTax.Mul(taxRate))
	inclTax = exclTax.Add(taxAmount)
	return exclTax, taxAmount, inclTax
}

// ChargesTotal sums charge amounts exactly and rounds the result to
// 2 decimals. No tax applies to rental charges.
func ChargesTotal(amounts []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return Round2(total)
}

// FromInput converts any numeric-like value into an exact decimal.
//
// This is the single sanitization point for untrusted input: floats are
// converted through their shortest decimal representation so binary
// floating point never contaminates stored amounts.
func FromInput(v any) (decimal.Decimal, error) {
	switch value := v.(type) {
	case decimal.Decimal:
		return value, nil
	case string:
		d, err := decimal.NewFromString(value)
		if err != nil {
			return decimal.Zero, fmt.Errorf("invalid decimal %q", value)
		}
		return d, nil
	case json.Number:
		d, err := decimal.NewFromString(value.String())
		if err != nil {
			return decimal.Zero, fmt.Errorf("invalid decimal %q", value.String())
		}
		return d, nil
	case int:
		return decimal.NewFromInt(int64(value)), nil
	case int64:
		return decimal.NewFromInt(value), nil
	case float64:
		return decimal.NewFromFloat(value), nil
	case float32:
		return decimal.NewFromFloat32(value), nil
	default:
		return decimal.Zero, fmt.Errorf("unsupported numeric type %T", v)
	}
}
