package money

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

// ErrOutOfRange is returned for amounts whose minor-unit value does not fit in int64.
var ErrOutOfRange = errors.New("money: amount out of range")

var (
	hundred  = decimal.NewFromInt(100)
	maxMinor = decimal.NewFromInt(math.MaxInt64)
	minMinor = decimal.NewFromInt(math.MinInt64)
)

// ToMinorUnits converts an amount in major units (e.g. 1000.50 PLN) into
// integer minor units (100050). Rounds half away from zero.
func ToMinorUnits(amount float64) (int64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, ErrOutOfRange
	}
	d := decimal.NewFromFloat(amount).Mul(hundred).Round(0)
	if d.GreaterThan(maxMinor) || d.LessThan(minMinor) {
		return 0, ErrOutOfRange
	}
	return d.IntPart(), nil
}

// ToMajorUnits converts integer minor units back into major units.
func ToMajorUnits(amount int64) float64 {
	return decimal.New(amount, -2).InexactFloat64()
}

// Format renders minor units as a fixed two-decimal string, e.g. "1000.00".
func Format(amount int64) string {
	return decimal.New(amount, -2).StringFixed(2)
}
