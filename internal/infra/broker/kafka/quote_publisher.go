package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"comerzio/internal/app/policies"
	domainpricing "comerzio/internal/domain/pricing"
)

type publisher interface {
	Publish(ctx context.Context, topic string, key string, payload []byte, headers map[string]string) error
}

// QuotePublisher writes QuoteCalculated events to a topic keyed by service id.
type QuotePublisher struct {
	Producer publisher
	Topic    string
}

type quoteCalculatedMessage struct {
	QuoteID         string    `json:"quote_id"`
	ServiceID       string    `json:"service_id"`
	PricingOptionID string    `json:"pricing_option_id,omitempty"`
	Method          string    `json:"calculation_method"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	Subtotal        string    `json:"subtotal"`
	PlatformFee     string    `json:"platform_fee"`
	Total           string    `json:"total"`
	Currency        string    `json:"currency"`
	OccurredAt      time.Time `json:"occurred_at"`
}

func (p *QuotePublisher) PublishQuoteCalculated(ctx context.Context, event domainpricing.QuoteCalculated) error {
	payload, err := json.Marshal(quoteCalculatedMessage{
		QuoteID:         event.QuoteID,
		ServiceID:       event.ServiceID,
		PricingOptionID: event.PricingOptionID,
		Method:          string(event.Method),
		Start:           event.Start.UTC(),
		End:             event.End.UTC(),
		Subtotal:        event.Subtotal.Fixed(),
		PlatformFee:     event.PlatformFee.Fixed(),
		Total:           event.Total.Fixed(),
		Currency:        event.Total.Currency,
		OccurredAt:      event.OccurredAt(),
	})
	if err != nil {
		return fmt.Errorf("kafka: encode quote event: %w", err)
	}
	headers := map[string]string{
		"event_name": event.EventName(),
		"quote_id":   event.QuoteID,
	}
	if err := p.Producer.Publish(ctx, p.Topic, event.ServiceID, payload, headers); err != nil {
		return fmt.Errorf("kafka: publish quote event: %w", err)
	}
	return nil
}

var _ policies.QuoteEventsPort = (*QuotePublisher)(nil)
