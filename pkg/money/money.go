// Package money converts between major currency units (stored, displayed)
// and minor units (gateway protocol).
package money

import "math"

// ToMinorUnits converts a major-unit amount to minor units (kobo/cents).
// Exact for amounts with at most two decimal places.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
