package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/shopspring/decimal"

	domaincatalog "comerzio/internal/domain/catalog"
)

// ServiceRepository is an in-memory catalog used for local runs and tests.
type ServiceRepository struct {
	mu    sync.RWMutex
	items map[domaincatalog.ServiceID]domaincatalog.Service
}

func NewServiceRepository() *ServiceRepository {
	return &ServiceRepository{items: make(map[domaincatalog.ServiceID]domaincatalog.Service)}
}

// ByID returns a copy of the stored service or ErrServiceNotFound.
func (r *ServiceRepository) ByID(ctx context.Context, id domaincatalog.ServiceID) (*domaincatalog.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	svc, ok := r.items[id]
	if !ok {
		return nil, domaincatalog.ErrServiceNotFound
	}
	return &svc, nil
}

func (r *ServiceRepository) Save(ctx context.Context, svc domaincatalog.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[svc.ID] = svc
	return nil
}

type PricingOptionRepository struct {
	mu    sync.RWMutex
	items map[domaincatalog.PricingOptionID]domaincatalog.PricingOption
}

func NewPricingOptionRepository() *PricingOptionRepository {
	return &PricingOptionRepository{items: make(map[domaincatalog.PricingOptionID]domaincatalog.PricingOption)}
}

func (r *PricingOptionRepository) ByID(ctx context.Context, id domaincatalog.PricingOptionID) (*domaincatalog.PricingOption, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	opt, ok := r.items[id]
	if !ok {
		return nil, domaincatalog.ErrPricingOptionNotFound
	}
	return &opt, nil
}

func (r *PricingOptionRepository) Save(ctx context.Context, opt domaincatalog.PricingOption) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[opt.ID] = opt
	return nil
}

// Fixtures is the on-disk shape of a seeded catalog.
type Fixtures struct {
	Services       []ServiceFixture       `json:"services"`
	PricingOptions []PricingOptionFixture `json:"pricing_options"`
}

type ServiceFixture struct {
	ID         string           `json:"id"`
	Title      string           `json:"title"`
	Price      string           `json:"price"`
	PriceUnit  string           `json:"price_unit"`
	Currency   string           `json:"currency"`
	HourlyRate *decimal.Decimal `json:"hourly_rate,omitempty"`
	DailyRate  *decimal.Decimal `json:"daily_rate,omitempty"`
}

type PricingOptionFixture struct {
	ID              string          `json:"id"`
	ServiceID       string          `json:"service_id"`
	Label           string          `json:"label"`
	Price           decimal.Decimal `json:"price"`
	Currency        string          `json:"currency"`
	BillingInterval string          `json:"billing_interval"`
	DurationMinutes *int            `json:"duration_minutes,omitempty"`
}

// LoadFixtures reads a JSON catalog from path into the repositories.
func LoadFixtures(ctx context.Context, path string, services *ServiceRepository, options *PricingOptionRepository) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("memory: open fixtures: %w", err)
	}
	defer f.Close()
	return SeedFromReader(ctx, f, services, options)
}

func SeedFromReader(ctx context.Context, r io.Reader, services *ServiceRepository, options *PricingOptionRepository) error {
	var fx Fixtures
	if err := json.NewDecoder(r).Decode(&fx); err != nil {
		return fmt.Errorf("memory: decode fixtures: %w", err)
	}
	for _, s := range fx.Services {
		svc := domaincatalog.Service{
			ID:        domaincatalog.ServiceID(s.ID),
			Title:     s.Title,
			Price:     s.Price,
			PriceUnit: s.PriceUnit,
			Currency:  s.Currency,
			RateCard:  domaincatalog.RateCard{Hourly: s.HourlyRate, Daily: s.DailyRate},
		}
		if err := services.Save(ctx, svc); err != nil {
			return err
		}
	}
	for _, o := range fx.PricingOptions {
		interval, err := domaincatalog.ParseBillingInterval(o.BillingInterval)
		if err != nil {
			return fmt.Errorf("memory: option %s: %w", o.ID, err)
		}
		opt := domaincatalog.PricingOption{
			ID:              domaincatalog.PricingOptionID(o.ID),
			ServiceID:       domaincatalog.ServiceID(o.ServiceID),
			Label:           o.Label,
			Price:           o.Price,
			Currency:        o.Currency,
			BillingInterval: interval,
			DurationMinutes: o.DurationMinutes,
		}
		if err := options.Save(ctx, opt); err != nil {
			return err
		}
	}
	return nil
}
