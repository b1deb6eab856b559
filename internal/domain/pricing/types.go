package pricing

import (
	"github.com/shopspring/decimal"
)

// PlatformFeeRate is the flat share added on top of every subtotal.
var PlatformFeeRate = decimal.RequireFromString("0.10")

// CalculationMethod names the cost strategy that produced a breakdown.
type CalculationMethod string

const (
	MethodHourly CalculationMethod = "hourly"
	MethodDaily  CalculationMethod = "daily"
	MethodMixed  CalculationMethod = "mixed"
	MethodFixed  CalculationMethod = "fixed"
)

type LineItemType string

const (
	LineItemBase      LineItemType = "base"
	LineItemHourly    LineItemType = "hourly"
	LineItemDaily     LineItemType = "daily"
	LineItemSurcharge LineItemType = "surcharge"
	LineItemDiscount  LineItemType = "discount"
)

type SurchargeType string

const (
	SurchargeWeekend SurchargeType = "weekend"
	SurchargeHoliday SurchargeType = "holiday"
	SurchargeRush    SurchargeType = "rush"
	SurchargeCustom  SurchargeType = "custom"
)

// LineItem is one itemized charge contributing to the subtotal.
type LineItem struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
	Type        LineItemType
}

type SurchargeItem struct {
	Type        SurchargeType
	Description string
	Amount      decimal.Decimal
	Percentage  *decimal.Decimal
}

// PricingBreakdown is the fully itemized, fee-inclusive cost of a booking.
// It is a value: computed per request and never mutated afterwards.
type PricingBreakdown struct {
	TotalHours        decimal.Decimal
	TotalDays         decimal.Decimal
	FullDays          int64
	ExtraHours        decimal.Decimal
	BaseCost          decimal.Decimal
	DailyCost         decimal.Decimal
	HourlyCost        decimal.Decimal
	Surcharges        []SurchargeItem
	Discount          decimal.Decimal
	Subtotal          decimal.Decimal
	PlatformFee       decimal.Decimal
	Total             decimal.Decimal
	Currency          string
	LineItems         []LineItem
	CalculationMethod CalculationMethod
}

// ServicePricingConfig is the normalized pricing input the strategies work on.
// A nil rate means the rate is not offered.
type ServicePricingConfig struct {
	HourlyRate              *decimal.Decimal
	DailyRate               *decimal.Decimal
	BasePrice               *decimal.Decimal
	Currency                string
	MinimumHours            int
	MinimumDays             int
	WeekendSurchargePercent decimal.Decimal
	HolidaySurchargePercent decimal.Decimal
}
