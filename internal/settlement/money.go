package settlement

import "github.com/shopspring/decimal"

// Places is the currency precision every amount is rounded to.
const Places = 2

// Tolerance is the rounding margin below which an amount counts as zero.
var Tolerance = decimal.New(1, -Places)

// Round rounds d to currency precision, half away from zero.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// WithinTolerance reports whether |a-b| <= Tolerance.
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(Tolerance)
}
