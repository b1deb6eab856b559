package pricing

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	"comerzio/internal/domain/catalog"
	"comerzio/internal/domain/shared/daterange"
	"comerzio/internal/domain/shared/money"
)

var (
	// ErrInvalidRange is returned when the requested end is not after the start.
	ErrInvalidRange = daterange.ErrInvalidRange
	// ErrServiceRequired is returned when no resolved service is supplied.
	ErrServiceRequired = errors.New("pricing: service is required")
)

const (
	EstimateFailureNote = "Unable to calculate estimate"
	estimateNote        = "Estimate includes the 10% platform fee"
)

// Engine turns a requested time range plus a service's pricing into an
// itemized, fee-inclusive breakdown. It holds no mutable state and may be
// shared across goroutines.
type Engine struct {
	surcharges SurchargeCalculator
	formatter  CurrencyFormatter
	now        func() time.Time
	location   *time.Location
	logger     *slog.Logger
}

type EngineDeps struct {
	Holidays  HolidayCalendar
	Formatter CurrencyFormatter
	Now       func() time.Time
	// Location anchors the synthetic ranges built by QuickEstimate.
	Location *time.Location
	Logger   *slog.Logger
}

func NewEngine(deps EngineDeps) *Engine {
	holidays := deps.Holidays
	if holidays == nil {
		holidays = NoHolidays{}
	}
	formatter := deps.Formatter
	if formatter == nil {
		formatter = NewCurrencyFormatter(language.MustParse("de-CH"))
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	loc := deps.Location
	if loc == nil {
		loc = time.UTC
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{
		surcharges: SurchargeCalculator{Holidays: holidays},
		formatter:  formatter,
		now:        now,
		location:   loc,
		logger:     logger,
	}
}

// QuoteRequest carries pre-resolved records; the engine never reads storage.
type QuoteRequest struct {
	Service       *catalog.Service
	PricingOption *catalog.PricingOption
	Start         time.Time
	End           time.Time
}

// Calculate prices a booking. ErrInvalidRange is returned unchanged so callers
// can report it to the user.
func (e *Engine) Calculate(req QuoteRequest) (PricingBreakdown, error) {
	if req.Service == nil {
		return PricingBreakdown{}, ErrServiceRequired
	}
	rng, err := daterange.New(req.Start, req.End)
	if err != nil {
		return PricingBreakdown{}, err
	}
	d, err := MeasureDuration(rng)
	if err != nil {
		return PricingBreakdown{}, err
	}
	cfg := ResolveConfig(req.Service, req.PricingOption)
	return e.price(cfg, req.PricingOption, d), nil
}

// Price runs the pipeline on an already resolved config.
func (e *Engine) Price(cfg ServicePricingConfig, option *catalog.PricingOption, rng daterange.DateTimeRange) (PricingBreakdown, error) {
	d, err := MeasureDuration(rng)
	if err != nil {
		return PricingBreakdown{}, err
	}
	return e.price(cfg, option, d), nil
}

func (e *Engine) price(cfg ServicePricingConfig, option *catalog.PricingOption, d Duration) PricingBreakdown {
	var cost costResult
	switch selectStrategy(cfg, option) {
	case strategyHourly:
		cost = e.hourlyCost(cfg, d)
	case strategyDaily:
		cost = e.dailyCost(cfg, d)
	case strategyMixed:
		cost = e.mixedCost(cfg, d)
	case strategyFixed:
		cost = fixedCost(cfg, option)
	}
	surcharges := e.surcharges.Calculate(cost.baseCost(), d.Range, cfg)
	return assemble(d, cfg, cost, surcharges)
}

type EstimateRequest struct {
	Service       *catalog.Service
	PricingOption *catalog.PricingOption
	Hours         *float64
	Days          *float64
}

type Estimate struct {
	Estimate decimal.Decimal
	Currency string
	Note     string
}

// FailedEstimate is what QuickEstimate returns whenever pricing fails.
func FailedEstimate() Estimate {
	return Estimate{Estimate: decimal.Zero, Currency: money.DefaultCurrency, Note: EstimateFailureNote}
}

// QuickEstimate prices a range of the requested length starting now. It never
// fails: any error, or panic, yields FailedEstimate. Without hours or days a
// one hour range is assumed.
func (e *Engine) QuickEstimate(req EstimateRequest) (est Estimate) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("quick estimate panicked", "panic", fmt.Sprint(r))
			est = FailedEstimate()
		}
	}()

	start := e.now().In(e.location)
	breakdown, err := e.Calculate(QuoteRequest{
		Service:       req.Service,
		PricingOption: req.PricingOption,
		Start:         start,
		End:           start.Add(estimateSpan(req.Hours, req.Days)),
	})
	if err != nil {
		e.logger.Debug("quick estimate degraded", "error", err)
		return FailedEstimate()
	}
	return Estimate{Estimate: breakdown.Total, Currency: breakdown.Currency, Note: estimateNote}
}

func estimateSpan(hours, days *float64) time.Duration {
	if hours == nil && days == nil {
		return time.Hour
	}
	var span time.Duration
	if hours != nil {
		span += time.Duration(*hours * float64(time.Hour))
	}
	if days != nil {
		span += time.Duration(*days * float64(24*time.Hour))
	}
	return span
}
