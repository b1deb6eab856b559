package pricing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"comerzio/internal/domain/shared/daterange"
	"comerzio/internal/domain/shared/money"
)

var hundred = decimal.NewFromInt(100)

// SurchargeCalculator adds weekend and holiday charges in proportion to the
// share of calendar days in the range that fall on them.
type SurchargeCalculator struct {
	Holidays HolidayCalendar
}

func (c SurchargeCalculator) Calculate(base decimal.Decimal, rng daterange.DateTimeRange, cfg ServicePricingConfig) []SurchargeItem {
	if !cfg.WeekendSurchargePercent.IsPositive() && !cfg.HolidaySurchargePercent.IsPositive() {
		return nil
	}
	days := rng.CalendarDays()
	if len(days) == 0 {
		return nil
	}

	var weekendDays, holidayDays int64
	for _, day := range days {
		if isWeekend(day) {
			weekendDays++
		}
		if c.Holidays != nil && c.Holidays.IsHoliday(day) {
			holidayDays++
		}
	}

	totalDays := int64(len(days))
	var out []SurchargeItem
	if item, ok := proportionalSurcharge(SurchargeWeekend, "Weekend surcharge", base, cfg.WeekendSurchargePercent, weekendDays, totalDays); ok {
		out = append(out, item)
	}
	if item, ok := proportionalSurcharge(SurchargeHoliday, "Holiday surcharge", base, cfg.HolidaySurchargePercent, holidayDays, totalDays); ok {
		out = append(out, item)
	}
	return out
}

func isWeekend(day time.Time) bool {
	wd := day.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func proportionalSurcharge(typ SurchargeType, label string, base, percent decimal.Decimal, matching, total int64) (SurchargeItem, bool) {
	if !percent.IsPositive() || matching == 0 || total == 0 {
		return SurchargeItem{}, false
	}
	amount := money.Round2(
		base.Mul(percent).Mul(decimal.NewFromInt(matching)).
			Div(hundred.Mul(decimal.NewFromInt(total))),
	)
	if !amount.IsPositive() {
		return SurchargeItem{}, false
	}
	pct := percent
	return SurchargeItem{
		Type:        typ,
		Description: fmt.Sprintf("%s (%s%%)", label, percent.String()),
		Amount:      amount,
		Percentage:  &pct,
	}, true
}
