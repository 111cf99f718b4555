package payment

import "github.com/shopspring/decimal"

const (
	// MaxAmountScale is the finest precision accepted, in decimal places.
	MaxAmountScale = 18
	// MaxAmountIntegerDigits bounds the integer part of an amount.
	MaxAmountIntegerDigits = 30
)

// InAmountRange reports whether d can be rendered as a plain decimal of
// bounded length. Values like 1e200000000 parse fine but expand to one digit
// per unit of exponent when formatted.
func InAmountRange(d decimal.Decimal) bool {
	exp := int64(d.Exponent())
	if exp < -MaxAmountScale {
		return false
	}
	return int64(d.NumDigits())+exp <= MaxAmountIntegerDigits
}
