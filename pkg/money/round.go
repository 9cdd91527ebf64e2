// Package money holds the rounding rules shared by every calculator output.
// Amounts are kept as float64 during computation and rounded only at the edge.
package money

import "github.com/shopspring/decimal"

// Round rounds half away from zero to the given number of decimal places.
func Round(value float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(value).Round(places).Float64()
	return f
}

// Euros rounds an annual or total amount to whole currency units.
func Euros(value float64) float64 {
	return Round(value, 0)
}

// Cents rounds a monthly amount to two decimals.
func Cents(value float64) float64 {
	return Round(value, 2)
}

// Rate rounds a percentage to two decimals.
func Rate(value float64) float64 {
	return Round(value, 2)
}

// Percent returns part / whole × 100, or 0 when whole is not positive.
func Percent(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return part / whole * 100
}

// ClampFloat bounds value to [lo, hi].
func ClampFloat(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
