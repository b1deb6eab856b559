package pricing

import (
	"github.com/shopspring/decimal"

	"comerzio/internal/domain/shared/money"
)

// assemble settles a strategy result into the final breakdown. This is the
// only place amounts are rounded; every total is summed from rounded line
// items, so subtotal always equals the sum of the line item totals.
func assemble(d Duration, cfg ServicePricingConfig, cost costResult, surcharges []SurchargeItem) PricingBreakdown {
	items := make([]LineItem, 0, len(cost.items)+len(surcharges))
	baseCost := decimal.Zero
	dailyCost := decimal.Zero
	hourlyCost := decimal.Zero
	for _, item := range cost.items {
		settled := settleLineItem(item)
		items = append(items, settled)
		baseCost = baseCost.Add(settled.Total)
		switch settled.Type {
		case LineItemDaily:
			dailyCost = dailyCost.Add(settled.Total)
		case LineItemHourly:
			hourlyCost = hourlyCost.Add(settled.Total)
		}
	}

	subtotal := baseCost
	for _, s := range surcharges {
		items = append(items, LineItem{
			Description: s.Description,
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   s.Amount,
			Total:       s.Amount,
			Type:        LineItemSurcharge,
		})
		subtotal = subtotal.Add(s.Amount)
	}

	fee := money.Round2(subtotal.Mul(PlatformFeeRate))
	currency := cfg.Currency
	if currency == "" {
		currency = money.DefaultCurrency
	}
	if surcharges == nil {
		surcharges = []SurchargeItem{}
	}

	return PricingBreakdown{
		TotalHours:        d.TotalHours,
		TotalDays:         d.TotalDays,
		FullDays:          d.FullDays(),
		ExtraHours:        d.ExtraHours(),
		BaseCost:          baseCost,
		DailyCost:         dailyCost,
		HourlyCost:        hourlyCost,
		Surcharges:        surcharges,
		Discount:          decimal.Zero,
		Subtotal:          subtotal,
		PlatformFee:       fee,
		Total:             subtotal.Add(fee),
		Currency:          currency,
		LineItems:         items,
		CalculationMethod: cost.method,
	}
}

// quantityPlaces keeps fractional hours precise enough that quantity times
// unit price still rounds to the line total.
const quantityPlaces int32 = 4

func settleLineItem(item LineItem) LineItem {
	return LineItem{
		Description: item.Description,
		Quantity:    item.Quantity.Round(quantityPlaces),
		UnitPrice:   money.Round2(item.UnitPrice),
		Total:       money.Round2(item.Total),
		Type:        item.Type,
	}
}
