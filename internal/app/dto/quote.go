package dto

import (
	"time"

	"github.com/shopspring/decimal"

	domainpricing "comerzio/internal/domain/pricing"
	"comerzio/internal/domain/shared/money"
)

// Amounts are rendered with exactly two places so identical quotes serialise
// to identical bytes.

type LineItem struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Total       string `json:"total"`
	Type        string `json:"type"`
}

type Surcharge struct {
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Amount      string  `json:"amount"`
	Percentage  *string `json:"percentage,omitempty"`
}

type PricingBreakdown struct {
	TotalHours        string      `json:"total_hours"`
	TotalDays         string      `json:"total_days"`
	FullDays          int64       `json:"full_days"`
	ExtraHours        string      `json:"extra_hours"`
	BaseCost          string      `json:"base_cost"`
	DailyCost         string      `json:"daily_cost"`
	HourlyCost        string      `json:"hourly_cost"`
	Surcharges        []Surcharge `json:"surcharges"`
	Discount          string      `json:"discount"`
	Subtotal          string      `json:"subtotal"`
	PlatformFee       string      `json:"platform_fee"`
	Total             string      `json:"total"`
	Currency          string      `json:"currency"`
	LineItems         []LineItem  `json:"line_items"`
	CalculationMethod string      `json:"calculation_method"`
}

type Quote struct {
	ID              string           `json:"id"`
	ServiceID       string           `json:"service_id"`
	PricingOptionID string           `json:"pricing_option_id,omitempty"`
	Start           time.Time        `json:"start"`
	End             time.Time        `json:"end"`
	Breakdown       PricingBreakdown `json:"breakdown"`
}

type Estimate struct {
	Estimate string `json:"estimate"`
	Currency string `json:"currency"`
	Note     string `json:"note"`
}

func amount(d decimal.Decimal) string {
	return d.StringFixed(money.Places)
}

// MapBreakdown converts the domain breakdown into its wire form.
func MapBreakdown(b domainpricing.PricingBreakdown) PricingBreakdown {
	out := PricingBreakdown{
		TotalHours:        b.TotalHours.Round(4).String(),
		TotalDays:         b.TotalDays.Round(4).String(),
		FullDays:          b.FullDays,
		ExtraHours:        b.ExtraHours.Round(4).String(),
		BaseCost:          amount(b.BaseCost),
		DailyCost:         amount(b.DailyCost),
		HourlyCost:        amount(b.HourlyCost),
		Surcharges:        make([]Surcharge, 0, len(b.Surcharges)),
		Discount:          amount(b.Discount),
		Subtotal:          amount(b.Subtotal),
		PlatformFee:       amount(b.PlatformFee),
		Total:             amount(b.Total),
		Currency:          b.Currency,
		LineItems:         make([]LineItem, 0, len(b.LineItems)),
		CalculationMethod: string(b.CalculationMethod),
	}
	for _, s := range b.Surcharges {
		item := Surcharge{
			Type:        string(s.Type),
			Description: s.Description,
			Amount:      amount(s.Amount),
		}
		if s.Percentage != nil {
			pct := s.Percentage.String()
			item.Percentage = &pct
		}
		out.Surcharges = append(out.Surcharges, item)
	}
	for _, li := range b.LineItems {
		out.LineItems = append(out.LineItems, LineItem{
			Description: li.Description,
			Quantity:    li.Quantity.String(),
			UnitPrice:   amount(li.UnitPrice),
			Total:       amount(li.Total),
			Type:        string(li.Type),
		})
	}
	return out
}

func MapEstimate(e domainpricing.Estimate) Estimate {
	return Estimate{Estimate: amount(e.Estimate), Currency: e.Currency, Note: e.Note}
}
