package middleware

import (
	"context"
	"time"

	"comerzio/internal/app/queries"
)

// QueryTimeout bounds every query with d; non-positive d disables it.
func QueryTimeout(d time.Duration) QueryMiddleware {
	return func(next queries.Bus) queries.Bus {
		if d <= 0 {
			return next
		}
		nextFn := wrapQuery(next)
		return queryFunc(func(ctx context.Context, q queries.Query) (any, error) {
			ctx, cancel := context.WithTimeout(ctx, d)
			defer cancel()
			return nextFn(ctx, q)
		})
	}
}
