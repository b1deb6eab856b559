package pricing

import (
	"time"

	"comerzio/internal/domain/shared/events"
	"comerzio/internal/domain/shared/money"
)

const EventQuoteCalculated = "pricing.quote_calculated"

// QuoteCalculated is published after a full quote so the order subsystem can
// snapshot the amounts it will persist.
type QuoteCalculated struct {
	events.BaseEvent
	QuoteID         string
	ServiceID       string
	PricingOptionID string
	Method          CalculationMethod
	Start           time.Time
	End             time.Time
	Subtotal        money.Money
	PlatformFee     money.Money
	Total           money.Money
}

func NewQuoteCalculated(quoteID, serviceID, optionID string, start, end time.Time, b PricingBreakdown, at time.Time) QuoteCalculated {
	return QuoteCalculated{
		BaseEvent:       events.BaseEvent{Name: EventQuoteCalculated, Aggregate: serviceID, Time: at.UTC()},
		QuoteID:         quoteID,
		ServiceID:       serviceID,
		PricingOptionID: optionID,
		Method:          b.CalculationMethod,
		Start:           start,
		End:             end,
		Subtotal:        money.Of(b.Subtotal, b.Currency),
		PlatformFee:     money.Of(b.PlatformFee, b.Currency),
		Total:           money.Of(b.Total, b.Currency),
	}
}
