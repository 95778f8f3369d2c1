package resolver

import (
	"context"
	"time"

	"unshortener/pkg/domain"
	"unshortener/pkg/metrics"
)

// Instrumented wraps next so every resolution is counted by outcome and timed.
func Instrumented(next Resolver, m *metrics.Resolver) Resolver {
	return Func(func(ctx context.Context, URL string) domain.Resolution {
		start := time.Now()
		res := next.Resolve(ctx, URL)
		m.Observe(res.Outcome, time.Since(start))

		return res
	})
}
