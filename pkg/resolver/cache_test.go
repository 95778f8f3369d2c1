package resolver_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"unshortener/pkg/domain"
	"unshortener/pkg/resolver"
	mockresolver "unshortener/pkg/resolver/mock"
)

func TestCached_DisabledReturnsNext(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mockresolver.NewMockResolver(ctrl)

	r, err := resolver.Cached(next, 0)
	require.NoError(t, err)
	require.Same(t, next, r)
}

func TestCached_ResolvesEachURLOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mockresolver.NewMockResolver(ctrl)

	next.EXPECT().Resolve(gomock.Any(), "https://bit.ly/a").Return(domain.Resolved("https://example.com/a")).Times(1)
	next.EXPECT().Resolve(gomock.Any(), "https://bit.ly/b").Return(domain.ShortenerFailure()).Times(1)

	r, err := resolver.Cached(next, 16)
	require.NoError(t, err)

	ctx := context.Background()
	for range 3 {
		require.Equal(t, "https://example.com/a", r.Resolve(ctx, "https://bit.ly/a").String())
		require.Equal(t, "Error: Still on shortener domain", r.Resolve(ctx, "https://bit.ly/b").String())
	}
}

func TestCached_EvictsLeastRecentlyUsed(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mockresolver.NewMockResolver(ctrl)

	next.EXPECT().Resolve(gomock.Any(), "a").Return(domain.Resolved("A")).Times(2)
	next.EXPECT().Resolve(gomock.Any(), "b").Return(domain.Resolved("B")).Times(1)

	r, err := resolver.Cached(next, 1)
	require.NoError(t, err)

	ctx := context.Background()
	r.Resolve(ctx, "a")
	r.Resolve(ctx, "b") // evicts a
	r.Resolve(ctx, "a")
}

func TestCached_SkipsCanceledResults(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mockresolver.NewMockResolver(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	next.EXPECT().Resolve(gomock.Any(), "a").Return(domain.NetworkFailure(context.Canceled)).Times(1)
	next.EXPECT().Resolve(gomock.Any(), "a").Return(domain.Resolved("A")).Times(1)

	r, err := resolver.Cached(next, 4)
	require.NoError(t, err)

	require.True(t, r.Resolve(ctx, "a").Failed())
	require.Equal(t, "A", r.Resolve(context.Background(), "a").String())
}
