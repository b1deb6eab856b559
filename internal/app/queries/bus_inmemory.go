package queries

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

type queryHandler func(ctx context.Context, q Query) (any, error)

// InMemoryBus dispatches queries to handlers registered in process.
// Registration happens at wiring time; Ask is safe for concurrent use afterwards.
type InMemoryBus struct {
	handlers map[string]queryHandler
	logger   *slog.Logger
}

func NewInMemoryBus(logger *slog.Logger) *InMemoryBus {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &InMemoryBus{handlers: make(map[string]queryHandler), logger: logger}
}

func (b *InMemoryBus) RegisterRaw(key string, handler queryHandler) {
	if key == "" {
		panic("queries: empty key registration")
	}
	if _, dup := b.handlers[key]; dup {
		panic(fmt.Sprintf("queries: duplicate registration for %s", key))
	}
	b.handlers[key] = handler
}

func (b *InMemoryBus) Ask(ctx context.Context, query Query) (any, error) {
	h, ok := b.handlers[query.Key()]
	if !ok {
		return nil, ErrHandlerNotFound
	}
	start := time.Now()
	res, err := h(ctx, query)
	if err != nil {
		b.logger.Debug("query failed", "query", query.Key(), "duration", time.Since(start), "error", err)
		return nil, err
	}
	b.logger.Debug("query handled", "query", query.Key(), "duration", time.Since(start))
	return res, nil
}

func RegisterHandler[Q Query, R any](bus *InMemoryBus, key string, handler Handler[Q, R]) {
	if bus == nil {
		panic("queries: nil bus")
	}
	bus.RegisterRaw(key, func(ctx context.Context, raw Query) (any, error) {
		q, ok := any(raw).(Q)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrInvalidQuery, key)
		}
		return handler.Handle(ctx, q)
	})
}
