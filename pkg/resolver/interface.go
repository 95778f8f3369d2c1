// Package resolver defines the abstraction used to follow a shortened URL to
// its final destination, together with decorators that add an in-run cache
// and Prometheus instrumentation around any implementation.
package resolver

import (
	"context"

	"unshortener/pkg/domain"
)

// Resolver follows a URL to its final destination. Implementations never
// return errors: every failure is reported as a failed domain.Resolution so a
// single bad cell cannot interrupt a transformation run.
//
//go:generate mockgen -package mockresolver -source=interface.go -destination=mock/mockresolver.go *
type Resolver interface {
	// Resolve performs the lookup for URL and classifies the result.
	Resolve(ctx context.Context, URL string) domain.Resolution
}

// Func adapts an ordinary function to the Resolver interface.
type Func func(ctx context.Context, URL string) domain.Resolution

// Resolve calls f(ctx, URL).
func (f Func) Resolve(ctx context.Context, URL string) domain.Resolution { return f(ctx, URL) }
