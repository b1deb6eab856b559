package dto

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainpricing "comerzio/internal/domain/pricing"
)

func TestMapBreakdownRendersFixedPlaces(t *testing.T) {
	pct := decimal.NewFromInt(20)
	b := domainpricing.PricingBreakdown{
		TotalHours:  decimal.NewFromInt(6),
		TotalDays:   decimal.RequireFromString("0.25"),
		BaseCost:    decimal.NewFromInt(60),
		Subtotal:    decimal.NewFromInt(72),
		PlatformFee: decimal.RequireFromString("7.2"),
		Total:       decimal.RequireFromString("79.2"),
		Currency:    "CHF",
		Surcharges: []domainpricing.SurchargeItem{
			{Type: domainpricing.SurchargeWeekend, Description: "Weekend surcharge (20%)", Amount: decimal.NewFromInt(12), Percentage: &pct},
		},
		LineItems: []domainpricing.LineItem{
			{Description: "6 hours", Quantity: decimal.NewFromInt(6), UnitPrice: decimal.NewFromInt(10), Total: decimal.NewFromInt(60), Type: domainpricing.LineItemHourly},
		},
		CalculationMethod: domainpricing.MethodHourly,
	}

	got := MapBreakdown(b)
	assert.Equal(t, "72.00", got.Subtotal)
	assert.Equal(t, "7.20", got.PlatformFee)
	assert.Equal(t, "79.20", got.Total)
	assert.Equal(t, "0.00", got.Discount)
	assert.Equal(t, "0.25", got.TotalDays)
	require.Len(t, got.Surcharges, 1)
	assert.Equal(t, "20", *got.Surcharges[0].Percentage)
	assert.Equal(t, "60.00", got.LineItems[0].Total)
	assert.Equal(t, "hourly", got.CalculationMethod)

	first, err := json.Marshal(got)
	require.NoError(t, err)
	second, err := json.Marshal(MapBreakdown(b))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMapEstimate(t *testing.T) {
	got := MapEstimate(domainpricing.FailedEstimate())
	assert.Equal(t, Estimate{Estimate: "0.00", Currency: "CHF", Note: "Unable to calculate estimate"}, got)
}
