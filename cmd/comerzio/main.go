package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"

	"comerzio/internal/app/dto"
	"comerzio/internal/app/handlers/quotes"
	"comerzio/internal/app/middleware"
	"comerzio/internal/app/policies"
	"comerzio/internal/app/queries"
	domaincatalog "comerzio/internal/domain/catalog"
	domainpricing "comerzio/internal/domain/pricing"
	"comerzio/internal/infra/broker/kafka"
	rediscache "comerzio/internal/infra/cache/redis"
	"comerzio/internal/infra/config"
	mongostore "comerzio/internal/infra/db/mongo"
	"comerzio/internal/infra/db/postgres"
	ginserver "comerzio/internal/infra/http/gin"
	"comerzio/internal/infra/obs"
	"comerzio/internal/infra/storage/memory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		obs.NewLogger(os.Getenv("APP_ENV")).Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Env)

	app, err := buildApplication(ctx, cfg, logger)
	if err != nil {
		logger.Error("application wiring failed", "error", err)
		os.Exit(1)
	}
	defer app.close(logger)

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{Probes: app.probes}, app.handlers)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "store", cfg.StoreDriver)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers ginserver.Handlers
	probes   map[string]obs.Probe
	closers  []func() error
}

func (a *application) close(logger *slog.Logger) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			logger.Warn("shutdown step failed", "error", err)
		}
	}
}

func buildApplication(ctx context.Context, cfg config.Config, logger *slog.Logger) (*application, error) {
	app := &application{probes: make(map[string]obs.Probe)}

	services, options, err := app.buildCatalog(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	if cfg.RedisAddr != "" {
		client := rediscache.NewClient(cfg.RedisAddr)
		app.closers = append(app.closers, client.Close)
		app.probes["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		services = &rediscache.ServiceCache{Next: services, Client: client, TTL: cfg.RedisCacheTTL, Logger: logger}
	}

	var quoteEvents policies.QuoteEventsPort = policies.NoopQuoteEvents{}
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
		if err != nil {
			return nil, fmt.Errorf("kafka producer: %w", err)
		}
		app.closers = append(app.closers, producer.Close)
		quoteEvents = &kafka.QuotePublisher{Producer: producer, Topic: cfg.KafkaQuoteTopic}
	}

	var holidays domainpricing.HolidayCalendar = domainpricing.NoHolidays{}
	if cfg.HolidayCalendar == config.HolidaysSwiss {
		holidays = domainpricing.SwissHolidays{}
	}
	engine := domainpricing.NewEngine(domainpricing.EngineDeps{
		Holidays:  holidays,
		Formatter: domainpricing.NewCurrencyFormatter(language.Make(cfg.PricingLocale)),
		Location:  cfg.PricingTimezone,
		Logger:    logger,
	})

	bus := queries.NewInMemoryBus(logger)
	queries.RegisterHandler[quotes.CalculateQuoteQuery, dto.Quote](bus, quotes.CalculateQuoteQuery{}.Key(), &quotes.CalculateQuoteHandler{
		Services: services,
		Options:  options,
		Engine:   engine,
		Events:   quoteEvents,
		Logger:   logger,
		NewID:    uuid.NewString,
	})
	queries.RegisterHandler[quotes.QuickEstimateQuery, dto.Estimate](bus, quotes.QuickEstimateQuery{}.Key(), &quotes.QuickEstimateHandler{
		Services: services,
		Options:  options,
		Engine:   engine,
		Logger:   logger,
	})

	pipeline := middleware.ChainQueries(bus,
		middleware.QueryValidation(middleware.SelfValidator{}),
		middleware.QueryTimeout(cfg.QueryTimeout),
	)
	app.handlers = ginserver.Handlers{Quote: ginserver.QuoteHandler{Queries: pipeline}}
	return app, nil
}

func (a *application) buildCatalog(ctx context.Context, cfg config.Config, logger *slog.Logger) (domaincatalog.ServiceRepository, domaincatalog.PricingOptionRepository, error) {
	switch cfg.StoreDriver {
	case config.StoreMongo:
		client, err := mongostore.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, nil, fmt.Errorf("mongo connect: %w", err)
		}
		a.closers = append(a.closers, func() error {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return client.Close(closeCtx)
		})
		a.probes["mongo"] = client.Ping
		return mongostore.NewServiceRepository(client.DB), mongostore.NewPricingOptionRepository(client.DB), nil
	case config.StorePostgres:
		pool, err := postgres.NewPool(cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres connect: %w", err)
		}
		a.closers = append(a.closers, func() error { pool.Close(); return nil })
		a.probes["postgres"] = pool.Ping
		return postgres.NewServiceRepository(pool), postgres.NewPricingOptionRepository(pool), nil
	default:
		services := memory.NewServiceRepository()
		options := memory.NewPricingOptionRepository()
		if cfg.CatalogFixtures != "" {
			if err := memory.LoadFixtures(ctx, cfg.CatalogFixtures, services, options); err != nil {
				if errors.Is(err, os.ErrNotExist) {
					logger.Info("catalog fixtures file not found, skipping", "path", cfg.CatalogFixtures)
				} else {
					return nil, nil, err
				}
			}
		}
		return services, options, nil
	}
}
