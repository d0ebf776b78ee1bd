package models

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

// ErrAmountOverflow is returned when a quantity or amount no longer fits the
// integer columns it is stored in.
var ErrAmountOverflow = errors.New("amount exceeds the supported range")

var (
	maxAmount   = decimal.NewFromInt(math.MaxInt64)
	maxQuantity = decimal.NewFromInt(int64(math.MaxInt))
)

// LineTotal returns price×quantity.
func LineTotal(price int64, quantity int) (int64, error) {
	total := decimal.NewFromInt(price).Mul(decimal.NewFromInt(int64(quantity)))
	if total.GreaterThan(maxAmount) || total.IsNegative() {
		return 0, ErrAmountOverflow
	}
	return total.IntPart(), nil
}

// SumAmounts adds non-negative amounts.
func SumAmounts(amounts ...int64) (int64, error) {
	sum := decimal.Zero
	for _, amount := range amounts {
		if amount < 0 {
			return 0, ErrAmountOverflow
		}
		sum = sum.Add(decimal.NewFromInt(amount))
	}
	if sum.GreaterThan(maxAmount) {
		return 0, ErrAmountOverflow
	}
	return sum.IntPart(), nil
}

// AddQuantity returns current+extra, or ErrAmountOverflow when the sum does
// not fit an int.
func AddQuantity(current, extra int) (int, error) {
	sum := decimal.NewFromInt(int64(current)).Add(decimal.NewFromInt(int64(extra)))
	if sum.GreaterThan(maxQuantity) {
		return 0, ErrAmountOverflow
	}
	return int(sum.IntPart()), nil
}
