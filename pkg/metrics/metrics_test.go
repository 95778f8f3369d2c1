package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"unshortener/pkg/domain"
	"unshortener/pkg/metrics"
)

func TestResolver_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := metrics.NewResolver(reg)
	require.NoError(t, err)

	m.Observe(domain.OutcomeResolved, 20*time.Millisecond)
	m.Observe(domain.OutcomeResolved, 30*time.Millisecond)
	m.Observe(domain.OutcomeShortenerLoop, time.Second)

	require.InDelta(t, 2, testutil.ToFloat64(m.Resolutions.WithLabelValues(string(domain.OutcomeResolved))), 0)
	require.InDelta(t, 1, testutil.ToFloat64(m.Resolutions.WithLabelValues(string(domain.OutcomeShortenerLoop))), 0)
	require.Equal(t, 2, testutil.CollectAndCount(m.Resolutions))
}

func TestNewResolver_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := metrics.NewResolver(reg)
	require.NoError(t, err)

	_, err = metrics.NewResolver(reg)
	require.Error(t, err)
}
