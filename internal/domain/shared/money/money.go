package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is used whenever a record carries no currency of its own.
const DefaultCurrency = "CHF"

// Places is the number of decimal places every settled amount is rounded to.
const Places int32 = 2

// Money is a settled amount in a currency.
type Money struct {
	Amount   decimal.Decimal
	Currency string
}

// Of rounds amount to Places and normalizes the currency code.
func Of(amount decimal.Decimal, currency string) Money {
	return Money{Amount: Round2(amount), Currency: NormalizeCurrency(currency)}
}

// String renders the amount with exactly two places, e.g. "CHF 12.50".
func (m Money) String() string {
	return m.Currency + " " + m.Amount.StringFixed(Places)
}

// Fixed renders the bare amount with exactly two places.
func (m Money) Fixed() string {
	return m.Amount.StringFixed(Places)
}

// Round2 rounds half away from zero to two decimal places.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// ParseAmount reads a stored price. Missing or non-numeric input is treated as zero.
func ParseAmount(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// NormalizeCurrency upper-cases a currency code and falls back to DefaultCurrency.
func NormalizeCurrency(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return DefaultCurrency
	}
	return code
}
