package money

import "github.com/shopspring/decimal"

// Amounts are stored and computed as integer cents. Decimal values exist only
// at the serialization boundary: request payloads, response bodies, rendered
// reports.

// CentsFromDecimal converts a decimal currency amount into integer cents,
// rounding half away from zero.
func CentsFromDecimal(d decimal.Decimal) int64 {
	return d.Shift(2).Round(0).IntPart()
}

// DecimalFromCents renders integer cents as a two-place decimal amount.
func DecimalFromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// FormatCents renders cents as a fixed two-decimal string, e.g. "240.00".
func FormatCents(cents int64) string {
	return DecimalFromCents(cents).StringFixed(2)
}
