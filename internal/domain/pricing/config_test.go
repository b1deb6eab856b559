package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comerzio/internal/domain/catalog"
)

func TestResolveConfig_WithOption(t *testing.T) {
	svc := &catalog.Service{ID: "svc", Price: "999", PriceUnit: "day", Currency: "chf"}
	tests := []struct {
		interval   catalog.BillingInterval
		wantHourly bool
		wantDaily  bool
		wantBase   bool
	}{
		{interval: catalog.IntervalHourly, wantHourly: true},
		{interval: catalog.IntervalDaily, wantDaily: true},
		{interval: catalog.IntervalOneTime, wantBase: true},
		{interval: catalog.IntervalWeekly, wantBase: true},
		{interval: catalog.IntervalYearly, wantBase: true},
	}
	for _, tt := range tests {
		t.Run(string(tt.interval), func(t *testing.T) {
			cfg := ResolveConfig(svc, &catalog.PricingOption{Price: dec("45"), BillingInterval: tt.interval})
			assert.Equal(t, tt.wantHourly, cfg.HourlyRate != nil)
			assert.Equal(t, tt.wantDaily, cfg.DailyRate != nil)
			assert.Equal(t, tt.wantBase, cfg.BasePrice != nil)
			assert.Equal(t, 1, cfg.MinimumHours)
			assert.Equal(t, 1, cfg.MinimumDays)
			assert.Equal(t, "CHF", cfg.Currency)
			assert.True(t, cfg.WeekendSurchargePercent.IsZero())
			assert.True(t, cfg.HolidaySurchargePercent.IsZero())
		})
	}
}

func TestResolveConfig_FromService(t *testing.T) {
	cfg := ResolveConfig(&catalog.Service{Price: "35.5", PriceUnit: "Hour"}, nil)
	require.NotNil(t, cfg.HourlyRate)
	assertDecimal(t, "35.5", *cfg.HourlyRate, "hourly rate")
	assert.Nil(t, cfg.DailyRate)
	assert.Nil(t, cfg.BasePrice)
	assert.Equal(t, "CHF", cfg.Currency)

	cfg = ResolveConfig(&catalog.Service{Price: "", PriceUnit: "day", Currency: "EUR"}, nil)
	require.NotNil(t, cfg.DailyRate)
	assert.True(t, cfg.DailyRate.IsZero())
	assert.Equal(t, "EUR", cfg.Currency)

	cfg = ResolveConfig(&catalog.Service{Price: "n/a", PriceUnit: "project"}, nil)
	require.NotNil(t, cfg.BasePrice)
	assert.True(t, cfg.BasePrice.IsZero())
}

func TestResolveConfig_RateCard(t *testing.T) {
	card := catalog.RateCard{Hourly: decPtr("12"), Daily: decPtr("90")}

	cfg := ResolveConfig(&catalog.Service{Price: "15", PriceUnit: "hour", RateCard: card}, nil)
	assertDecimal(t, "15", *cfg.HourlyRate, "primary price wins")
	assertDecimal(t, "90", *cfg.DailyRate, "daily from rate card")

	cfg = ResolveConfig(&catalog.Service{Price: "200", PriceUnit: "flat", RateCard: card}, nil)
	assert.Nil(t, cfg.HourlyRate)
	assert.Nil(t, cfg.DailyRate)

	cfg = ResolveConfig(&catalog.Service{Price: "15", PriceUnit: "hour", RateCard: card}, &catalog.PricingOption{Price: dec("5"), BillingInterval: catalog.IntervalHourly})
	assert.Nil(t, cfg.DailyRate, "explicit option ignores the rate card")
}

func TestSelectStrategy(t *testing.T) {
	rate := dec("10")
	tests := []struct {
		name   string
		cfg    ServicePricingConfig
		option *catalog.PricingOption
		want   strategyKind
	}{
		{name: "option one time", option: &catalog.PricingOption{BillingInterval: catalog.IntervalOneTime}, cfg: ServicePricingConfig{BasePrice: &rate}, want: strategyFixed},
		{name: "option hourly", option: &catalog.PricingOption{BillingInterval: catalog.IntervalHourly}, cfg: ServicePricingConfig{HourlyRate: &rate}, want: strategyHourly},
		{name: "option daily", option: &catalog.PricingOption{BillingInterval: catalog.IntervalDaily}, cfg: ServicePricingConfig{DailyRate: &rate}, want: strategyDaily},
		{name: "option monthly", option: &catalog.PricingOption{BillingInterval: catalog.IntervalMonthly}, cfg: ServicePricingConfig{BasePrice: &rate}, want: strategyFixed},
		{name: "option with both rates stays explicit", option: &catalog.PricingOption{BillingInterval: catalog.IntervalHourly}, cfg: ServicePricingConfig{HourlyRate: &rate, DailyRate: &rate}, want: strategyHourly},
		{name: "hourly only", cfg: ServicePricingConfig{HourlyRate: &rate}, want: strategyHourly},
		{name: "daily only", cfg: ServicePricingConfig{DailyRate: &rate}, want: strategyDaily},
		{name: "both rates", cfg: ServicePricingConfig{HourlyRate: &rate, DailyRate: &rate}, want: strategyMixed},
		{name: "base price", cfg: ServicePricingConfig{BasePrice: &rate}, want: strategyFixed},
		{name: "nothing", cfg: ServicePricingConfig{}, want: strategyFixed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, selectStrategy(tt.cfg, tt.option), tt.want.String())
		})
	}
}

func TestMeasureDuration(t *testing.T) {
	d, err := MeasureDuration(rangeOf(monday, 50*time.Hour+30*time.Minute))
	require.NoError(t, err)
	assertDecimal(t, "50.5", d.TotalHours, "total hours")
	assert.Equal(t, int64(2), d.FullDays())
	assert.Equal(t, int64(3), d.CeilDays())
	assertDecimal(t, "2.5", d.ExtraHours(), "extra hours")

	_, err = MeasureDuration(rangeOf(monday, 0))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestCurrencyFormatter(t *testing.T) {
	f := newTestEngine().formatter
	assert.Contains(t, f.Format(dec("12.5"), "CHF"), "CHF")
	assert.Contains(t, f.Format(dec("12.5"), "xx1"), "12.50")
}
