package policies

import (
	"context"

	domainpricing "comerzio/internal/domain/pricing"
)

// QuoteEventsPort hands calculated quotes to downstream consumers such as the
// order subsystem.
type QuoteEventsPort interface {
	PublishQuoteCalculated(ctx context.Context, event domainpricing.QuoteCalculated) error
}

// NoopQuoteEvents drops every event; used when no broker is configured.
type NoopQuoteEvents struct{}

func (NoopQuoteEvents) PublishQuoteCalculated(context.Context, domainpricing.QuoteCalculated) error {
	return nil
}

var _ QuoteEventsPort = NoopQuoteEvents{}
