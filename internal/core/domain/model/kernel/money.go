package kernel

import (
	"errors"
	"fmt"

	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// moneyScale is the number of fractional digits kept for every amount.
const moneyScale = 2

var ErrMoneyIsNotConstructed = errors.New("Money must be created via NewMoney or MoneyFromFloat")

// Money is a non-negative monetary amount. Arithmetic is exact: prices, line totals
// and order totals never go through binary floating point.
type Money struct {
	amount        decimal.Decimal
	isConstructed bool
}

// NewMoney validates and rounds an amount to two fractional digits.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", amount.String(), 0, "unbounded")
	}
	return Money{amount: amount.Round(moneyScale), isConstructed: true}, nil
}

// MoneyFromFloat converts a float literal such as 200.0.
func MoneyFromFloat(amount float64) (Money, error) {
	return NewMoney(decimal.NewFromFloat(amount))
}

// MustMoney is NewMoney for constants known to be valid.
func MustMoney(amount float64) Money {
	m, err := MoneyFromFloat(amount)
	if err != nil {
		panic(err)
	}
	return m
}

// ZeroMoney is the additive identity.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero, isConstructed: true}
}

// Amount returns the decimal value.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount), isConstructed: true}
}

// Multiply returns m × quantity. Quantity must not be negative.
func (m Money) Multiply(quantity int) (Money, error) {
	if quantity < 0 {
		return Money{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 0, "unbounded")
	}
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity))), isConstructed: true}, nil
}

// IsEqual compares amounts numerically, so 5 and 5.00 are equal.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// GreaterThan reports whether m > other.
func (m Money) GreaterThan(other Money) bool {
	return m.amount.GreaterThan(other.amount)
}

// Float64 returns the nearest float for JSON responses.
func (m Money) Float64() float64 {
	return m.amount.InexactFloat64()
}

func (m Money) String() string {
	return m.amount.StringFixed(moneyScale)
}

// Validate rejects zero values not produced by a constructor.
func (m Money) Validate() error {
	if !m.isConstructed {
		return ErrMoneyIsNotConstructed
	}
	if m.amount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%s is negative", m.amount))
	}
	return nil
}
