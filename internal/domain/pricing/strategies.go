package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"comerzio/internal/domain/catalog"
)

const defaultBaseLabel = "Base Price"

// costResult is what a strategy hands to the assembler. Amounts are unrounded.
type costResult struct {
	method CalculationMethod
	items  []LineItem
}

// baseCost is the strategy cost surcharges are applied to.
func (r costResult) baseCost() decimal.Decimal {
	total := decimal.Zero
	for _, item := range r.items {
		total = total.Add(item.Total)
	}
	return total
}

func newLineItem(description string, quantity, unitPrice decimal.Decimal, typ LineItemType) LineItem {
	return LineItem{
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Total:       quantity.Mul(unitPrice),
		Type:        typ,
	}
}

func rateOrZero(rate *decimal.Decimal) decimal.Decimal {
	if rate == nil {
		return decimal.Zero
	}
	return *rate
}

// fixedCost bills the base price once, whatever the requested range. Only a
// one-time option names the line; every other fixed fallback is "Base Price".
func fixedCost(cfg ServicePricingConfig, option *catalog.PricingOption) costResult {
	label := defaultBaseLabel
	if option != nil && option.BillingInterval == catalog.IntervalOneTime && option.Label != "" {
		label = option.Label
	}
	price := rateOrZero(cfg.BasePrice)
	return costResult{
		method: MethodFixed,
		items:  []LineItem{newLineItem(label, decimal.NewFromInt(1), price, LineItemBase)},
	}
}

func (e *Engine) hourlyCost(cfg ServicePricingConfig, d Duration) costResult {
	rate := rateOrZero(cfg.HourlyRate)
	billable := decimal.Max(d.TotalHours, decimal.NewFromInt(int64(cfg.MinimumHours)))
	return costResult{
		method: MethodHourly,
		items:  []LineItem{e.hoursLine(billable, rate, cfg.Currency)},
	}
}

func (e *Engine) dailyCost(cfg ServicePricingConfig, d Duration) costResult {
	rate := rateOrZero(cfg.DailyRate)
	days := d.CeilDays()
	if minimum := int64(cfg.MinimumDays); days < minimum {
		days = minimum
	}
	return costResult{
		method: MethodDaily,
		items:  []LineItem{e.daysLine(days, rate, cfg.Currency)},
	}
}

func (e *Engine) hoursLine(hours, rate decimal.Decimal, currency string) LineItem {
	desc := fmt.Sprintf("%s %s × %s/hour", formatQuantity(hours), plural(hours, "hour", "hours"), e.formatter.Format(rate, currency))
	return newLineItem(desc, hours, rate, LineItemHourly)
}

func (e *Engine) daysLine(days int64, rate decimal.Decimal, currency string) LineItem {
	qty := decimal.NewFromInt(days)
	desc := fmt.Sprintf("%d %s × %s/day", days, plural(qty, "day", "days"), e.formatter.Format(rate, currency))
	return newLineItem(desc, qty, rate, LineItemDaily)
}

func formatQuantity(q decimal.Decimal) string {
	return q.Round(2).String()
}

func plural(q decimal.Decimal, one, many string) string {
	if q.Equal(decimal.NewFromInt(1)) {
		return one
	}
	return many
}
