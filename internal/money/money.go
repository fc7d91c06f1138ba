package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Amounts are carried as int64 paise everywhere in the system. Rupee strings
// only appear at the request boundary and are converted here.

var ErrInvalidAmount = errors.New("invalid amount")

// ParseRupees parses a decimal rupee string into paise.
// "1500" -> 150000, "99.50" -> 9950.
func ParseRupees(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}

// FormatRupees renders paise as a rupee string with two decimal places.
func FormatRupees(paise int64) string {
	return decimal.NewFromInt(paise).Div(decimal.NewFromInt(100)).StringFixed(2)
}

// ValidatePositive rejects zero and negative amounts.
func ValidatePositive(paise int64) error {
	if paise <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidAmount)
	}

	return nil
}
