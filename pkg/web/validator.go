package web

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Money bounds accepted by the decimal tag.
const (
	MaxAmountScale  = 8
	MaxAmountExpTen = 15
)

var maxAmount = decimal.New(1, MaxAmountExpTen)

// ValidDecimal validates whether the field is a decimal number with at most MaxAmountScale
// fractional digits and an absolute value below 10^MaxAmountExpTen. The sign is checked by
// the account ledger so that rejected amounts are still recorded.
var ValidDecimal validator.Func = func(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return false
	}

	return AmountInRange(d)
}

// AmountInRange reports whether d fits the money bounds.
//
// The exponent is checked before any arithmetic: comparing values with far apart
// exponents rescales to a big.Int of 10^|exponent|.
func AmountInRange(d decimal.Decimal) bool {
	exp := d.Exponent()
	if exp < -MaxAmountScale || exp > MaxAmountExpTen {
		return false
	}

	return d.Abs().LessThan(maxAmount)
}
