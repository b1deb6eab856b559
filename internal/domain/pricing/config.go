package pricing

import (
	"github.com/shopspring/decimal"

	"comerzio/internal/domain/catalog"
	"comerzio/internal/domain/shared/money"
)

// ResolveConfig normalizes a service and an optional pricing option into the
// config the strategies consume.
//
// Surcharge percentages are always zero: no stored record carries them yet.
func ResolveConfig(service *catalog.Service, option *catalog.PricingOption) ServicePricingConfig {
	cfg := ServicePricingConfig{
		MinimumHours:            1,
		MinimumDays:             1,
		WeekendSurchargePercent: decimal.Zero,
		HolidaySurchargePercent: decimal.Zero,
	}
	var serviceCurrency string
	if service != nil {
		serviceCurrency = service.Currency
	}

	if option != nil {
		price := option.Price
		switch option.BillingInterval {
		case catalog.IntervalHourly:
			cfg.HourlyRate = &price
		case catalog.IntervalDaily:
			cfg.DailyRate = &price
		default:
			cfg.BasePrice = &price
		}
		cfg.Currency = firstCurrency(option.Currency, serviceCurrency)
		return cfg
	}

	cfg.Currency = firstCurrency(serviceCurrency)
	if service == nil {
		zero := decimal.Zero
		cfg.BasePrice = &zero
		return cfg
	}
	price := money.ParseAmount(service.Price)
	switch service.NormalizedPriceUnit() {
	case catalog.PriceUnitHour:
		cfg.HourlyRate = &price
		cfg.DailyRate = copyRate(service.RateCard.Daily)
	case catalog.PriceUnitDay:
		cfg.DailyRate = &price
		cfg.HourlyRate = copyRate(service.RateCard.Hourly)
	default:
		cfg.BasePrice = &price
	}
	return cfg
}

func copyRate(rate *decimal.Decimal) *decimal.Decimal {
	if rate == nil {
		return nil
	}
	v := *rate
	return &v
}

func firstCurrency(codes ...string) string {
	for _, code := range codes {
		if code != "" {
			return money.NormalizeCurrency(code)
		}
	}
	return money.DefaultCurrency
}
