package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comerzio/internal/domain/catalog"
	"comerzio/internal/domain/shared/money"
)

// Monday 2025-03-03 09:00 UTC.
var monday = time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func newTestEngine() *Engine {
	return NewEngine(EngineDeps{Now: func() time.Time { return monday }})
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "%s = %s, want %s", field, got.String(), want)
}

func assertInvariants(t *testing.T, b PricingBreakdown) {
	t.Helper()
	sum := decimal.Zero
	for _, item := range b.LineItems {
		sum = sum.Add(item.Total)
		assert.True(t, item.Total.Equal(money.Round2(item.Total)), "line total must be settled to cents")
	}
	assert.True(t, b.Subtotal.Equal(sum), "subtotal %s != sum of line items %s", b.Subtotal, sum)
	assert.True(t, b.PlatformFee.Equal(money.Round2(b.Subtotal.Mul(dec("0.10")))), "platform fee %s", b.PlatformFee)
	assert.True(t, b.Total.Equal(b.Subtotal.Add(b.PlatformFee)), "total %s", b.Total)
	assert.True(t, b.TotalDays.Equal(b.TotalHours.Div(decimal.NewFromInt(24))), "total days %s", b.TotalDays)
}

func TestCalculate_MixedRatesTwoFullDays(t *testing.T) {
	e := newTestEngine()
	svc := &catalog.Service{ID: "svc", Price: "10", PriceUnit: "hour", RateCard: catalog.RateCard{Daily: decPtr("80")}}

	b, err := e.Calculate(QuoteRequest{Service: svc, Start: monday, End: monday.Add(48 * time.Hour)})
	require.NoError(t, err)

	assertInvariants(t, b)
	assert.Equal(t, MethodDaily, b.CalculationMethod)
	assertDecimal(t, "160", b.BaseCost, "base cost")
	assertDecimal(t, "160", b.Subtotal, "subtotal")
	assertDecimal(t, "16", b.PlatformFee, "platform fee")
	assertDecimal(t, "176", b.Total, "total")
	assertDecimal(t, "48", b.TotalHours, "total hours")
	assertDecimal(t, "2", b.TotalDays, "total days")
	assert.Equal(t, int64(2), b.FullDays)
	assert.Equal(t, "CHF", b.Currency)
}

func TestCalculate_HourlyOnly(t *testing.T) {
	e := newTestEngine()
	svc := &catalog.Service{ID: "svc", Price: "20", PriceUnit: "hour"}

	b, err := e.Calculate(QuoteRequest{Service: svc, Start: monday, End: monday.Add(6 * time.Hour)})
	require.NoError(t, err)

	assertInvariants(t, b)
	assert.Equal(t, MethodHourly, b.CalculationMethod)
	assertDecimal(t, "120", b.HourlyCost, "hourly cost")
	assertDecimal(t, "0", b.DailyCost, "daily cost")
	assertDecimal(t, "132", b.Total, "total")
	require.Len(t, b.LineItems, 1)
	assert.Equal(t, LineItemHourly, b.LineItems[0].Type)
	assertDecimal(t, "6", b.LineItems[0].Quantity, "quantity")
}

func TestCalculate_HourlyNeverRoundsUp(t *testing.T) {
	e := newTestEngine()
	svc := &catalog.Service{ID: "svc", Price: "10", PriceUnit: "hour"}

	b, err := e.Calculate(QuoteRequest{Service: svc, Start: monday, End: monday.Add(90 * time.Minute)})
	require.NoError(t, err)
	assertDecimal(t, "15", b.HourlyCost, "hourly cost")

	b, err = e.Calculate(QuoteRequest{Service: svc, Start: monday, End: monday.Add(20 * time.Minute)})
	require.NoError(t, err)
	assertDecimal(t, "10", b.HourlyCost, "minimum hours applied")
}

func TestCalculate_DailyAlwaysRoundsUp(t *testing.T) {
	e := newTestEngine()
	svc := &catalog.Service{ID: "svc", Price: "80", PriceUnit: "day"}

	tests := []struct {
		name  string
		span  time.Duration
		want  string
		nDays string
	}{
		{name: "one hour bills a day", span: time.Hour, want: "80", nDays: "1"},
		{name: "exact day", span: 24 * time.Hour, want: "80", nDays: "1"},
		{name: "one minute over", span: 24*time.Hour + time.Minute, want: "160", nDays: "2"},
		{name: "two and a half days", span: 60 * time.Hour, want: "240", nDays: "3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := e.Calculate(QuoteRequest{Service: svc, Start: monday, End: monday.Add(tt.span)})
			require.NoError(t, err)
			assertInvariants(t, b)
			assert.Equal(t, MethodDaily, b.CalculationMethod)
			assertDecimal(t, tt.want, b.DailyCost, "daily cost")
			assertDecimal(t, tt.nDays, b.LineItems[0].Quantity, "billable days")
		})
	}
}

func TestCalculate_FixedIgnoresRange(t *testing.T) {
	e := newTestEngine()
	svc := &catalog.Service{ID: "svc", Price: "250", PriceUnit: "job"}

	short, err := e.Calculate(QuoteRequest{Service: svc, Start: monday, End: monday.Add(time.Hour)})
	require.NoError(t, err)
	long, err := e.Calculate(QuoteRequest{Service: svc, Start: monday, End: monday.Add(200 * time.Hour)})
	require.NoError(t, err)

	assert.Equal(t, MethodFixed, short.CalculationMethod)
	assert.True(t, short.BaseCost.Equal(long.BaseCost))
	assertDecimal(t, "250", long.BaseCost, "base cost")
	assert.Equal(t, "Base Price", short.LineItems[0].Description)
	assert.Equal(t, LineItemBase, short.LineItems[0].Type)
}

func TestCalculate_ExplicitOption(t *testing.T) {
	e := newTestEngine()
	svc := &catalog.Service{ID: "svc", Price: "10", PriceUnit: "hour", Currency: "CHF"}

	oneTime := &catalog.PricingOption{ID: "opt", ServiceID: "svc", Label: "Deep Clean", Price: dec("199.90"), BillingInterval: catalog.IntervalOneTime}
	b, err := e.Calculate(QuoteRequest{Service: svc, PricingOption: oneTime, Start: monday, End: monday.Add(3 * time.Hour)})
	require.NoError(t, err)
	assert.Equal(t, MethodFixed, b.CalculationMethod)
	assert.Equal(t, "Deep Clean", b.LineItems[0].Description)
	assertDecimal(t, "199.9", b.Subtotal, "subtotal")
	assertDecimal(t, "19.99", b.PlatformFee, "fee")
	assertDecimal(t, "219.89", b.Total, "total")

	daily := &catalog.PricingOption{ID: "opt2", Label: "Full day", Price: dec("95"), Currency: "eur", BillingInterval: catalog.IntervalDaily}
	b, err = e.Calculate(QuoteRequest{Service: svc, PricingOption: daily, Start: monday, End: monday.Add(30 * time.Hour)})
	require.NoError(t, err)
	assert.Equal(t, MethodDaily, b.CalculationMethod)
	assertDecimal(t, "190", b.DailyCost, "daily cost")
	assert.Equal(t, "EUR", b.Currency)

	monthly := &catalog.PricingOption{ID: "opt3", Label: "Monthly care", Price: dec("400"), BillingInterval: catalog.IntervalMonthly}
	b, err = e.Calculate(QuoteRequest{Service: svc, PricingOption: monthly, Start: monday, End: monday.Add(time.Hour)})
	require.NoError(t, err)
	assert.Equal(t, MethodFixed, b.CalculationMethod)
	assert.Equal(t, "Base Price", b.LineItems[0].Description)
	assertDecimal(t, "400", b.Subtotal, "monthly subtotal")

	weekly := &catalog.PricingOption{ID: "opt4", Label: "Weekly visit", Price: dec("120"), BillingInterval: catalog.IntervalWeekly}
	b, err = e.Calculate(QuoteRequest{Service: svc, PricingOption: weekly, Start: monday, End: monday.Add(time.Hour)})
	require.NoError(t, err)
	assert.Equal(t, "Base Price", b.LineItems[0].Description)
}

func TestCalculate_MissingPriceDegradesToZero(t *testing.T) {
	e := newTestEngine()
	svc := &catalog.Service{ID: "svc", Price: "ask me", PriceUnit: "hour"}

	b, err := e.Calculate(QuoteRequest{Service: svc, Start: monday, End: monday.Add(2 * time.Hour)})
	require.NoError(t, err)
	assertInvariants(t, b)
	assert.True(t, b.Total.IsZero())
}

func TestCalculate_Errors(t *testing.T) {
	e := newTestEngine()
	svc := &catalog.Service{ID: "svc", Price: "10", PriceUnit: "hour"}

	_, err := e.Calculate(QuoteRequest{Service: svc, Start: monday, End: monday})
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = e.Calculate(QuoteRequest{Service: svc, Start: monday, End: monday.Add(-time.Hour)})
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = e.Calculate(QuoteRequest{Start: monday, End: monday.Add(time.Hour)})
	assert.ErrorIs(t, err, ErrServiceRequired)
}

func TestCalculate_Deterministic(t *testing.T) {
	e := newTestEngine()
	svc := &catalog.Service{ID: "svc", Price: "12.35", PriceUnit: "hour", RateCard: catalog.RateCard{Daily: decPtr("99.95")}}
	req := QuoteRequest{Service: svc, Start: monday, End: monday.Add(29*time.Hour + 20*time.Minute)}

	first, err := e.Calculate(req)
	require.NoError(t, err)
	second, err := e.Calculate(req)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCalculate_InvariantsAcrossRatesAndDurations(t *testing.T) {
	e := newTestEngine()
	rates := []struct{ hourly, daily string }{
		{"10", "80"}, {"12.35", "99.95"}, {"25", "150"}, {"7.5", "300"}, {"40", "100"}, {"0", "50"},
	}
	spans := []time.Duration{
		20 * time.Minute, time.Hour, 5*time.Hour + 15*time.Minute, 23 * time.Hour, 24 * time.Hour,
		26 * time.Hour, 47*time.Hour + 59*time.Minute, 72 * time.Hour, 100*time.Hour + 7*time.Minute,
	}
	for _, r := range rates {
		for _, span := range spans {
			hourly, daily := dec(r.hourly), dec(r.daily)
			cfg := ServicePricingConfig{HourlyRate: &hourly, DailyRate: &daily, Currency: "CHF", MinimumHours: 1, MinimumDays: 1}
			b, err := e.Price(cfg, nil, rangeOf(monday, span))
			require.NoError(t, err)
			assertInvariants(t, b)

			allHourly := money.Round2(b.TotalHours.Mul(hourly))
			allDaily := money.Round2(decimal.NewFromInt(ceilDays(span)).Mul(daily))
			assert.Truef(t, b.BaseCost.LessThanOrEqual(decimal.Min(allHourly, allDaily)),
				"rates %v span %s: chosen %s exceeds min(%s, %s)", r, span, b.BaseCost, allHourly, allDaily)
		}
	}
}

func ceilDays(span time.Duration) int64 {
	day := 24 * time.Hour
	return int64((span + day - 1) / day)
}

func TestQuickEstimate(t *testing.T) {
	e := newTestEngine()
	svc := &catalog.Service{ID: "svc", Price: "20", PriceUnit: "hour"}
	six := 6.0

	got := e.QuickEstimate(EstimateRequest{Service: svc, Hours: &six})
	assertDecimal(t, "132", got.Estimate, "estimate")
	assert.Equal(t, "CHF", got.Currency)
	assert.NotEqual(t, EstimateFailureNote, got.Note)

	oneHour := e.QuickEstimate(EstimateRequest{Service: svc})
	assertDecimal(t, "22", oneHour.Estimate, "default span")

	two := 2.0
	days := e.QuickEstimate(EstimateRequest{Service: &catalog.Service{ID: "d", Price: "80", PriceUnit: "day"}, Days: &two})
	assertDecimal(t, "176", days.Estimate, "two days")
}

func TestQuickEstimate_SoftFailure(t *testing.T) {
	e := newTestEngine()
	want := Estimate{Estimate: decimal.Zero, Currency: "CHF", Note: "Unable to calculate estimate"}

	got := e.QuickEstimate(EstimateRequest{})
	assert.True(t, got.Estimate.IsZero())
	assert.Equal(t, want.Currency, got.Currency)
	assert.Equal(t, want.Note, got.Note)

	negative := -3.0
	got = e.QuickEstimate(EstimateRequest{Service: &catalog.Service{ID: "svc", Price: "20", PriceUnit: "hour"}, Hours: &negative})
	assert.Equal(t, FailedEstimate().Note, got.Note)
	assert.True(t, got.Estimate.IsZero())
}

type panickingFormatter struct{}

func (panickingFormatter) Format(decimal.Decimal, string) string { panic("formatter exploded") }

func TestQuickEstimate_RecoversFromPanics(t *testing.T) {
	e := NewEngine(EngineDeps{Formatter: panickingFormatter{}, Now: func() time.Time { return monday }})
	svc := &catalog.Service{ID: "svc", Price: "20", PriceUnit: "hour"}

	got := e.QuickEstimate(EstimateRequest{Service: svc})
	assert.Equal(t, EstimateFailureNote, got.Note)
	assert.True(t, got.Estimate.IsZero())
}

func TestCalculate_RangeLongerThanDurationLimit(t *testing.T) {
	e := newTestEngine()
	svc := &catalog.Service{ID: "svc", Price: "1", PriceUnit: "hour"}
	start := time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2300, 1, 1, 0, 0, 0, 0, time.UTC)

	b, err := e.Calculate(QuoteRequest{Service: svc, Start: start, End: end})
	require.NoError(t, err)
	assertInvariants(t, b)
	assertDecimal(t, "3506328", b.TotalHours, "total hours")
	assertDecimal(t, "146097", b.TotalDays, "total days")
	assertDecimal(t, "3506328", b.Subtotal, "subtotal")
}

func TestCalculate_FractionalQuantityMatchesLineTotal(t *testing.T) {
	e := newTestEngine()
	svc := &catalog.Service{ID: "svc", Price: "30", PriceUnit: "hour"}

	b, err := e.Calculate(QuoteRequest{Service: svc, Start: monday, End: monday.Add(100 * time.Minute)})
	require.NoError(t, err)
	require.Len(t, b.LineItems, 1)
	item := b.LineItems[0]
	assertDecimal(t, "1.6667", item.Quantity, "quantity")
	assertDecimal(t, "50", item.Total, "line total")
	assertDecimal(t, item.Total.String(), money.Round2(item.Quantity.Mul(item.UnitPrice)), "quantity x unit price")
}
