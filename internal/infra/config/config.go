package config

import (
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"golang.org/x/text/language"
)

const (
	StoreMemory   = "memory"
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
)

const (
	HolidaysSwiss = "swiss"
	HolidaysNone  = "none"
)

// Config aggregates application configuration values loaded from environment variables.
type Config struct {
	Env             string
	HTTPAddr        string
	StoreDriver     string
	MongoURI        string
	MongoDB         string
	PostgresDSN     string
	RedisAddr       string
	RedisCacheTTL   time.Duration
	QueryTimeout    time.Duration
	KafkaBrokers    []string
	KafkaQuoteTopic string
	PricingLocale   string
	PricingTimezone *time.Location
	HolidayCalendar string
	CatalogFixtures string
}

// Load parses configuration from the current environment.
func Load() (Config, error) {
	cfg := Config{
		Env:             getEnv("APP_ENV", "dev"),
		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		StoreDriver:     strings.ToLower(getEnv("STORE_DRIVER", StoreMemory)),
		MongoURI:        os.Getenv("MONGO_URI"),
		MongoDB:         getEnv("MONGO_DB", "marketplace"),
		PostgresDSN:     os.Getenv("POSTGRES_DSN"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		KafkaQuoteTopic: getEnv("KAFKA_QUOTE_TOPIC", "pricing.quotes"),
		PricingLocale:   getEnv("PRICING_LOCALE", "de-CH"),
		HolidayCalendar: strings.ToLower(getEnv("HOLIDAY_CALENDAR", HolidaysSwiss)),
		CatalogFixtures: os.Getenv("CATALOG_FIXTURES"),
	}
	brokers := getEnv("KAFKA_BROKERS", "")
	for _, raw := range strings.Split(brokers, ",") {
		if b := strings.TrimSpace(raw); b != "" {
			cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
		}
	}

	ttl, err := parseDurationEnv("REDIS_CACHE_TTL", 5*time.Minute)
	if err != nil {
		return Config{}, err
	}
	cfg.RedisCacheTTL = ttl

	queryTimeout, err := parseDurationEnv("QUERY_TIMEOUT", 5*time.Second)
	if err != nil {
		return Config{}, err
	}
	cfg.QueryTimeout = queryTimeout

	tzName := getEnv("PRICING_TIMEZONE", "Europe/Zurich")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return Config{}, fmt.Errorf("invalid PRICING_TIMEZONE %q: %w", tzName, err)
	}
	cfg.PricingTimezone = loc

	if _, err := language.Parse(cfg.PricingLocale); err != nil {
		return Config{}, fmt.Errorf("invalid PRICING_LOCALE %q: %w", cfg.PricingLocale, err)
	}

	switch cfg.StoreDriver {
	case StoreMemory:
	case StoreMongo:
		if cfg.MongoURI == "" {
			return Config{}, fmt.Errorf("MONGO_URI is required for STORE_DRIVER=%s", cfg.StoreDriver)
		}
	case StorePostgres:
		if cfg.PostgresDSN == "" {
			return Config{}, fmt.Errorf("POSTGRES_DSN is required for STORE_DRIVER=%s", cfg.StoreDriver)
		}
	default:
		return Config{}, fmt.Errorf("invalid STORE_DRIVER %q", cfg.StoreDriver)
	}

	switch cfg.HolidayCalendar {
	case HolidaysSwiss, HolidaysNone:
	default:
		return Config{}, fmt.Errorf("invalid HOLIDAY_CALENDAR %q", cfg.HolidayCalendar)
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s duration: %w", key, err)
	}
	return d, nil
}
