package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrServiceNotFound       = errors.New("catalog: service not found")
	ErrPricingOptionNotFound = errors.New("catalog: pricing option not found")
	ErrUnknownInterval       = errors.New("catalog: unknown billing interval")
)

type ServiceID string
type PricingOptionID string

// Price units understood by the pricing engine. Anything else is a flat price.
const (
	PriceUnitHour = "hour"
	PriceUnitDay  = "day"
)

// Service is the pricing-relevant snapshot of a marketplace listing.
// Price is kept as stored; a missing or malformed value prices as zero.
type Service struct {
	ID        ServiceID
	Title     string
	Price     string
	PriceUnit string
	Currency  string
	RateCard  RateCard
}

// RateCard holds optional secondary rates published next to the primary price.
type RateCard struct {
	Hourly *decimal.Decimal
	Daily  *decimal.Decimal
}

// NormalizedPriceUnit lower-cases and trims the stored unit.
func (s Service) NormalizedPriceUnit() string {
	return strings.ToLower(strings.TrimSpace(s.PriceUnit))
}

type BillingInterval string

const (
	IntervalOneTime BillingInterval = "one_time"
	IntervalHourly  BillingInterval = "hourly"
	IntervalDaily   BillingInterval = "daily"
	IntervalWeekly  BillingInterval = "weekly"
	IntervalMonthly BillingInterval = "monthly"
	IntervalYearly  BillingInterval = "yearly"
)

func (b BillingInterval) Valid() bool {
	switch b {
	case IntervalOneTime, IntervalHourly, IntervalDaily, IntervalWeekly, IntervalMonthly, IntervalYearly:
		return true
	default:
		return false
	}
}

func ParseBillingInterval(raw string) (BillingInterval, error) {
	b := BillingInterval(strings.ToLower(strings.TrimSpace(raw)))
	if !b.Valid() {
		return "", ErrUnknownInterval
	}
	return b, nil
}

// PricingOption is an explicit, named price tier attached to a service.
type PricingOption struct {
	ID              PricingOptionID
	ServiceID       ServiceID
	Label           string
	Price           decimal.Decimal
	Currency        string
	BillingInterval BillingInterval
	DurationMinutes *int
}

type ServiceRepository interface {
	ByID(ctx context.Context, id ServiceID) (*Service, error)
}

type PricingOptionRepository interface {
	ByID(ctx context.Context, id PricingOptionID) (*PricingOption, error)
}

// ValidateOptionOwnership reports ErrPricingOptionNotFound when the option is
// attached to a different service. Options without an owner are accepted.
func ValidateOptionOwnership(service *Service, option *PricingOption) error {
	if service == nil || option == nil {
		return nil
	}
	if option.ServiceID != "" && option.ServiceID != service.ID {
		return ErrPricingOptionNotFound
	}
	return nil
}
