package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	domaincatalog "comerzio/internal/domain/catalog"
)

// Expected schema:
//
//	services(id text primary key, title text, price text, price_unit text,
//	         currency text, hourly_rate text null, daily_rate text null)
//	pricing_options(id text primary key, service_id text, label text, price text,
//	                currency text, billing_interval text, duration_minutes int null)
type ServiceRepository struct {
	db *pgxpool.Pool
}

func NewServiceRepository(db *pgxpool.Pool) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func (r *ServiceRepository) ByID(ctx context.Context, id domaincatalog.ServiceID) (*domaincatalog.Service, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, title, COALESCE(price, ''), COALESCE(price_unit, ''), COALESCE(currency, ''),
		       hourly_rate, daily_rate
		FROM services
		WHERE id = $1`, string(id),
	)
	var (
		svc          domaincatalog.Service
		hourly, daily *string
	)
	err := row.Scan(&svc.ID, &svc.Title, &svc.Price, &svc.PriceUnit, &svc.Currency, &hourly, &daily)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domaincatalog.ErrServiceNotFound
	}
	if err != nil {
		return nil, err
	}
	svc.RateCard = domaincatalog.RateCard{Hourly: optionalDecimal(hourly), Daily: optionalDecimal(daily)}
	return &svc, nil
}

type PricingOptionRepository struct {
	db *pgxpool.Pool
}

func NewPricingOptionRepository(db *pgxpool.Pool) *PricingOptionRepository {
	return &PricingOptionRepository{db: db}
}

func (r *PricingOptionRepository) ByID(ctx context.Context, id domaincatalog.PricingOptionID) (*domaincatalog.PricingOption, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, service_id, label, price, currency, billing_interval, duration_minutes
		FROM pricing_options
		WHERE id = $1`, string(id),
	)
	var (
		opt      domaincatalog.PricingOption
		price    string
		interval string
	)
	err := row.Scan(&opt.ID, &opt.ServiceID, &opt.Label, &price, &opt.Currency, &interval, &opt.DurationMinutes)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domaincatalog.ErrPricingOptionNotFound
	}
	if err != nil {
		return nil, err
	}
	if opt.BillingInterval, err = domaincatalog.ParseBillingInterval(interval); err != nil {
		return nil, fmt.Errorf("postgres: pricing option %s: %w", opt.ID, err)
	}
	if opt.Price, err = decimal.NewFromString(price); err != nil {
		return nil, fmt.Errorf("postgres: pricing option %s price: %w", opt.ID, err)
	}
	return &opt, nil
}

func optionalDecimal(raw *string) *decimal.Decimal {
	if raw == nil {
		return nil
	}
	v, err := decimal.NewFromString(*raw)
	if err != nil {
		return nil
	}
	return &v
}
