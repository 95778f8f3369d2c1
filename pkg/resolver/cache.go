package resolver

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"unshortener/pkg/domain"
	"unshortener/pkg/logger"
)

// cached memoizes resolutions by the raw cell text. A cached resolver is meant
// to live for one transformation run only; nothing is persisted between runs.
type cached struct {
	next  Resolver
	cache *lru.Cache[string, domain.Resolution]
}

// Cached wraps next with an LRU cache holding up to size entries. A size of
// zero or less disables caching and returns next unchanged.
func Cached(next Resolver, size int) (Resolver, error) {
	if size <= 0 {
		return next, nil
	}

	c, err := lru.New[string, domain.Resolution](size)
	if err != nil {
		return nil, fmt.Errorf("could not create resolution cache: %w", err)
	}

	return &cached{next: next, cache: c}, nil
}

// Resolve returns the cached resolution for URL or delegates to the wrapped
// resolver. Results produced after ctx was canceled are not cached.
func (c *cached) Resolve(ctx context.Context, URL string) domain.Resolution {
	if res, ok := c.cache.Get(URL); ok {
		logger.Debug(ctx, "resolution served from cache", zap.String("URL", URL))

		return res
	}

	res := c.next.Resolve(ctx, URL)
	if ctx.Err() == nil {
		c.cache.Add(URL, res)
	}

	return res
}
