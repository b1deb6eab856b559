package pricing

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"comerzio/internal/domain/shared/money"
)

// CurrencyFormatter renders amounts for line item descriptions only. The
// numeric contract of a breakdown never depends on it.
type CurrencyFormatter interface {
	Format(amount decimal.Decimal, currencyCode string) string
}

type textFormatter struct {
	printer *message.Printer
}

// NewCurrencyFormatter formats amounts the way the given locale expects.
func NewCurrencyFormatter(tag language.Tag) CurrencyFormatter {
	return textFormatter{printer: message.NewPrinter(tag)}
}

func (f textFormatter) Format(amount decimal.Decimal, currencyCode string) string {
	unit, err := currency.ParseISO(money.NormalizeCurrency(currencyCode))
	if err != nil {
		return money.NormalizeCurrency(currencyCode) + " " + amount.StringFixed(money.Places)
	}
	return f.printer.Sprint(currency.ISO(unit.Amount(money.Round2(amount).InexactFloat64())))
}
