package quotes

import (
	"context"
	"log/slog"

	"comerzio/internal/app/dto"
	"comerzio/internal/app/queries"
	domaincatalog "comerzio/internal/domain/catalog"
	domainpricing "comerzio/internal/domain/pricing"
)

const quickEstimateKey = "quotes.quick_estimate"

// QuickEstimateQuery asks for a preview price over the next Hours/Days.
type QuickEstimateQuery struct {
	ServiceID       string
	PricingOptionID string
	Hours           *float64
	Days            *float64
}

func (q QuickEstimateQuery) Key() string { return quickEstimateKey }

// QuickEstimateHandler never returns an error: lookup failures are priced as
// a missing service, which the engine turns into the zero estimate.
type QuickEstimateHandler struct {
	Services domaincatalog.ServiceRepository
	Options  domaincatalog.PricingOptionRepository
	Engine   *domainpricing.Engine
	Logger   *slog.Logger
}

func (h *QuickEstimateHandler) Handle(ctx context.Context, q QuickEstimateQuery) (dto.Estimate, error) {
	service, option, err := resolveRecords(ctx, h.Services, h.Options, q.ServiceID, q.PricingOptionID)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Debug("estimate lookup failed", "service_id", q.ServiceID, "pricing_option_id", q.PricingOptionID, "error", err)
		}
		service, option = nil, nil
	}
	if h.Engine == nil {
		return dto.MapEstimate(domainpricing.FailedEstimate()), nil
	}
	est := h.Engine.QuickEstimate(domainpricing.EstimateRequest{
		Service:       service,
		PricingOption: option,
		Hours:         q.Hours,
		Days:          q.Days,
	})
	return dto.MapEstimate(est), nil
}

var _ queries.Handler[QuickEstimateQuery, dto.Estimate] = (*QuickEstimateHandler)(nil)
