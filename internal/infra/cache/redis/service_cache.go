package redis

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	domaincatalog "comerzio/internal/domain/catalog"
)

const keyPrefix = "catalog:service:"

func NewClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}

// ServiceCache is a read-through cache in front of a ServiceRepository.
// Cache faults are logged and fall through to the backing repository.
type ServiceCache struct {
	Next   domaincatalog.ServiceRepository
	Client redis.Cmdable
	TTL    time.Duration
	Logger *slog.Logger
}

func (c *ServiceCache) ByID(ctx context.Context, id domaincatalog.ServiceID) (*domaincatalog.Service, error) {
	key := keyPrefix + string(id)
	raw, err := c.Client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var entry cachedService
		jsonErr := json.Unmarshal(raw, &entry)
		if jsonErr == nil {
			svc := entry.toDomain()
			return &svc, nil
		}
		c.warn("service cache decode failed", id, jsonErr)
	case !errors.Is(err, redis.Nil):
		c.warn("service cache read failed", id, err)
	}

	svc, err := c.Next.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(newCachedService(*svc))
	if err != nil {
		c.warn("service cache encode failed", id, err)
		return svc, nil
	}
	if err := c.Client.Set(ctx, key, payload, c.TTL).Err(); err != nil {
		c.warn("service cache write failed", id, err)
	}
	return svc, nil
}

func (c *ServiceCache) warn(msg string, id domaincatalog.ServiceID, err error) {
	if c.Logger == nil {
		return
	}
	c.Logger.Warn(msg, "service_id", string(id), "error", err)
}

type cachedService struct {
	ID         string           `json:"id"`
	Title      string           `json:"title"`
	Price      string           `json:"price"`
	PriceUnit  string           `json:"price_unit"`
	Currency   string           `json:"currency"`
	HourlyRate *decimal.Decimal `json:"hourly_rate,omitempty"`
	DailyRate  *decimal.Decimal `json:"daily_rate,omitempty"`
}

func newCachedService(s domaincatalog.Service) cachedService {
	return cachedService{
		ID:         string(s.ID),
		Title:      s.Title,
		Price:      s.Price,
		PriceUnit:  s.PriceUnit,
		Currency:   s.Currency,
		HourlyRate: s.RateCard.Hourly,
		DailyRate:  s.RateCard.Daily,
	}
}

func (c cachedService) toDomain() domaincatalog.Service {
	return domaincatalog.Service{
		ID:        domaincatalog.ServiceID(c.ID),
		Title:     c.Title,
		Price:     c.Price,
		PriceUnit: c.PriceUnit,
		Currency:  c.Currency,
		RateCard:  domaincatalog.RateCard{Hourly: c.HourlyRate, Daily: c.DailyRate},
	}
}
