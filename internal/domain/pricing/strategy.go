package pricing

import "comerzio/internal/domain/catalog"

type strategyKind int

const (
	strategyFixed strategyKind = iota
	strategyHourly
	strategyDaily
	strategyMixed
)

func (k strategyKind) String() string {
	switch k {
	case strategyHourly:
		return "hourly"
	case strategyDaily:
		return "daily"
	case strategyMixed:
		return "mixed"
	default:
		return "fixed"
	}
}

// selectStrategy picks the billing algorithm. An explicit option always wins;
// without one the offered rates decide, and a lone base price is billed fixed.
func selectStrategy(cfg ServicePricingConfig, option *catalog.PricingOption) strategyKind {
	if option != nil {
		switch option.BillingInterval {
		case catalog.IntervalOneTime:
			return strategyFixed
		case catalog.IntervalHourly:
			return strategyHourly
		case catalog.IntervalDaily:
			return strategyDaily
		case catalog.IntervalWeekly, catalog.IntervalMonthly, catalog.IntervalYearly:
			return strategyFixed
		default:
			return strategyFixed
		}
	}

	hasHourly := cfg.HourlyRate != nil
	hasDaily := cfg.DailyRate != nil
	switch {
	case hasHourly && !hasDaily:
		return strategyHourly
	case hasDaily && !hasHourly:
		return strategyDaily
	case hasHourly && hasDaily:
		return strategyMixed
	default:
		return strategyFixed
	}
}
