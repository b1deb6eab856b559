package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type candidate struct {
	method CalculationMethod
	cost   decimal.Decimal
}

// mixedCost prices a range against both rates and keeps the cheapest of
// all-hourly, all-daily and full-days-plus-remainder. Candidates are compared
// with strict less-than in that order, so ties go to the earlier method.
func (e *Engine) mixedCost(cfg ServicePricingConfig, d Duration) costResult {
	hourlyRate := rateOrZero(cfg.HourlyRate)
	dailyRate := rateOrZero(cfg.DailyRate)

	fullDays := d.FullDays()
	extraHours := d.ExtraHours()
	ceilDays := d.CeilDays()

	extraCost := decimal.Zero
	if extraHours.IsPositive() {
		extraCost = decimal.Min(extraHours.Mul(hourlyRate), dailyRate)
	}

	candidates := []candidate{
		{method: MethodHourly, cost: d.TotalHours.Mul(hourlyRate)},
		{method: MethodDaily, cost: decimal.NewFromInt(ceilDays).Mul(dailyRate)},
		{method: MethodMixed, cost: decimal.NewFromInt(fullDays).Mul(dailyRate).Add(extraCost)},
	}
	best := cheapest(candidates)

	switch best.method {
	case MethodHourly:
		return costResult{
			method: MethodHourly,
			items:  []LineItem{e.hoursLine(d.TotalHours, hourlyRate, cfg.Currency)},
		}
	case MethodDaily:
		return costResult{
			method: MethodDaily,
			items:  []LineItem{e.daysLine(ceilDays, dailyRate, cfg.Currency)},
		}
	default:
		return costResult{
			method: MethodMixed,
			items:  e.mixedLines(fullDays, extraHours, hourlyRate, dailyRate, cfg.Currency),
		}
	}
}

func cheapest(candidates []candidate) candidate {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.cost.LessThan(best.cost) {
			best = c
		}
	}
	return best
}

func (e *Engine) mixedLines(fullDays int64, extraHours, hourlyRate, dailyRate decimal.Decimal, currency string) []LineItem {
	items := make([]LineItem, 0, 2)
	if fullDays > 0 {
		items = append(items, e.daysLine(fullDays, dailyRate, currency))
	}
	if !extraHours.IsPositive() {
		return items
	}
	if extraHours.Mul(hourlyRate).LessThan(dailyRate) {
		desc := fmt.Sprintf("%s extra %s × %s/hour", formatQuantity(extraHours), plural(extraHours, "hour", "hours"), e.formatter.Format(hourlyRate, currency))
		return append(items, newLineItem(desc, extraHours, hourlyRate, LineItemHourly))
	}
	desc := fmt.Sprintf("+1 day for %s remaining hours × %s/day", formatQuantity(extraHours), e.formatter.Format(dailyRate, currency))
	return append(items, newLineItem(desc, decimal.NewFromInt(1), dailyRate, LineItemDaily))
}
