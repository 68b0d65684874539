// Package pricing derives line item totals.
package pricing

import "github.com/shopspring/decimal"

// LineTotal returns quantity * unitPrice rounded to 2 fractional digits.
// It is applied on every detail write, so a stored price can never drift
// from the quantity and unit price it was derived from.
func LineTotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}
