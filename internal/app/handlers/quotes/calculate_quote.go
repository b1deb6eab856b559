package quotes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"comerzio/internal/app/dto"
	"comerzio/internal/app/policies"
	"comerzio/internal/app/queries"
	domaincatalog "comerzio/internal/domain/catalog"
	domainpricing "comerzio/internal/domain/pricing"
)

const calculateQuoteKey = "quotes.calculate"

var (
	ErrServiceIDRequired = errors.New("quotes: service id is required")
	ErrEngineMissing     = errors.New("quotes: pricing engine missing")
)

// CalculateQuoteQuery prices a concrete booking range.
type CalculateQuoteQuery struct {
	ServiceID       string
	PricingOptionID string
	Start           time.Time
	End             time.Time
}

func (q CalculateQuoteQuery) Key() string { return calculateQuoteKey }

func (q CalculateQuoteQuery) Validate() error {
	if strings.TrimSpace(q.ServiceID) == "" {
		return ErrServiceIDRequired
	}
	return nil
}

// CalculateQuoteHandler resolves the service and option, runs the pricing
// engine and announces the result.
type CalculateQuoteHandler struct {
	Services domaincatalog.ServiceRepository
	Options  domaincatalog.PricingOptionRepository
	Engine   *domainpricing.Engine
	Events   policies.QuoteEventsPort
	Logger   *slog.Logger
	Now      func() time.Time
	NewID    func() string
}

func (h *CalculateQuoteHandler) Handle(ctx context.Context, q CalculateQuoteQuery) (dto.Quote, error) {
	if err := q.Validate(); err != nil {
		return dto.Quote{}, err
	}
	if h.Engine == nil {
		return dto.Quote{}, ErrEngineMissing
	}
	service, option, err := resolveRecords(ctx, h.Services, h.Options, q.ServiceID, q.PricingOptionID)
	if err != nil {
		return dto.Quote{}, err
	}

	breakdown, err := h.Engine.Calculate(domainpricing.QuoteRequest{
		Service:       service,
		PricingOption: option,
		Start:         q.Start,
		End:           q.End,
	})
	if err != nil {
		return dto.Quote{}, err
	}

	quote := dto.Quote{
		ID:              h.newID(),
		ServiceID:       string(service.ID),
		PricingOptionID: q.PricingOptionID,
		Start:           q.Start,
		End:             q.End,
		Breakdown:       dto.MapBreakdown(breakdown),
	}

	event := domainpricing.NewQuoteCalculated(quote.ID, quote.ServiceID, quote.PricingOptionID, q.Start, q.End, breakdown, h.now())
	if err := h.events().PublishQuoteCalculated(ctx, event); err != nil {
		h.logger().Warn("quote event publish failed", "quote_id", quote.ID, "service_id", quote.ServiceID, "error", err)
	}
	h.logger().Info("quote calculated",
		"quote_id", quote.ID,
		"service_id", quote.ServiceID,
		"method", breakdown.CalculationMethod,
		"total", event.Total.String(),
	)
	return quote, nil
}

// resolveRecords loads the service and, when requested, a pricing option that
// belongs to it.
func resolveRecords(ctx context.Context, services domaincatalog.ServiceRepository, options domaincatalog.PricingOptionRepository, serviceID, optionID string) (*domaincatalog.Service, *domaincatalog.PricingOption, error) {
	if services == nil {
		return nil, nil, errors.New("quotes: service repository missing")
	}
	service, err := services.ByID(ctx, domaincatalog.ServiceID(serviceID))
	if err != nil {
		return nil, nil, err
	}
	if strings.TrimSpace(optionID) == "" {
		return service, nil, nil
	}
	if options == nil {
		return nil, nil, fmt.Errorf("quotes: option %s requested without repository: %w", optionID, domaincatalog.ErrPricingOptionNotFound)
	}
	option, err := options.ByID(ctx, domaincatalog.PricingOptionID(optionID))
	if err != nil {
		return nil, nil, err
	}
	if err := domaincatalog.ValidateOptionOwnership(service, option); err != nil {
		return nil, nil, err
	}
	return service, option, nil
}

func (h *CalculateQuoteHandler) newID() string {
	if h.NewID != nil {
		return h.NewID()
	}
	return uuid.NewString()
}

func (h *CalculateQuoteHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *CalculateQuoteHandler) events() policies.QuoteEventsPort {
	if h.Events != nil {
		return h.Events
	}
	return policies.NoopQuoteEvents{}
}

func (h *CalculateQuoteHandler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.New(slog.DiscardHandler)
}

var _ queries.Handler[CalculateQuoteQuery, dto.Quote] = (*CalculateQuoteHandler)(nil)
