package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	domaincatalog "comerzio/internal/domain/catalog"
)

type ServiceRepository struct {
	col *mongo.Collection
}

func NewServiceRepository(db *mongo.Database) *ServiceRepository {
	return &ServiceRepository{col: db.Collection("services")}
}

func (r *ServiceRepository) ByID(ctx context.Context, id domaincatalog.ServiceID) (*domaincatalog.Service, error) {
	var doc serviceDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domaincatalog.ErrServiceNotFound
		}
		return nil, err
	}
	svc := doc.toDomain()
	return &svc, nil
}

type PricingOptionRepository struct {
	col *mongo.Collection
}

func NewPricingOptionRepository(db *mongo.Database) *PricingOptionRepository {
	return &PricingOptionRepository{col: db.Collection("pricing_options")}
}

func (r *PricingOptionRepository) ByID(ctx context.Context, id domaincatalog.PricingOptionID) (*domaincatalog.PricingOption, error) {
	var doc pricingOptionDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domaincatalog.ErrPricingOptionNotFound
		}
		return nil, err
	}
	return doc.toDomain()
}

// Prices are stored as decimal strings; rates are optional.
type serviceDocument struct {
	ID         string  `bson:"_id"`
	Title      string  `bson:"title"`
	Price      string  `bson:"price"`
	PriceUnit  string  `bson:"price_unit"`
	Currency   string  `bson:"currency"`
	HourlyRate *string `bson:"hourly_rate,omitempty"`
	DailyRate  *string `bson:"daily_rate,omitempty"`
}

func (d serviceDocument) toDomain() domaincatalog.Service {
	return domaincatalog.Service{
		ID:        domaincatalog.ServiceID(d.ID),
		Title:     d.Title,
		Price:     d.Price,
		PriceUnit: d.PriceUnit,
		Currency:  d.Currency,
		RateCard: domaincatalog.RateCard{
			Hourly: optionalDecimal(d.HourlyRate),
			Daily:  optionalDecimal(d.DailyRate),
		},
	}
}

type pricingOptionDocument struct {
	ID              string `bson:"_id"`
	ServiceID       string `bson:"service_id"`
	Label           string `bson:"label"`
	Price           string `bson:"price"`
	Currency        string `bson:"currency"`
	BillingInterval string `bson:"billing_interval"`
	DurationMinutes *int   `bson:"duration_minutes,omitempty"`
}

func (d pricingOptionDocument) toDomain() (*domaincatalog.PricingOption, error) {
	interval, err := domaincatalog.ParseBillingInterval(d.BillingInterval)
	if err != nil {
		return nil, fmt.Errorf("mongo: pricing option %s: %w", d.ID, err)
	}
	price, err := decimal.NewFromString(d.Price)
	if err != nil {
		return nil, fmt.Errorf("mongo: pricing option %s price: %w", d.ID, err)
	}
	return &domaincatalog.PricingOption{
		ID:              domaincatalog.PricingOptionID(d.ID),
		ServiceID:       domaincatalog.ServiceID(d.ServiceID),
		Label:           d.Label,
		Price:           price,
		Currency:        d.Currency,
		BillingInterval: interval,
		DurationMinutes: d.DurationMinutes,
	}, nil
}

// A malformed secondary rate is treated as unset.
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
