// Package metrics defines the Prometheus collectors exported by the service.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"unshortener/pkg/domain"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

const namespace = "unshortener"

// Resolver holds the collectors describing URL resolutions.
type Resolver struct {
	// Resolutions counts finished resolutions partitioned by outcome.
	Resolutions *prometheus.CounterVec
	// Duration observes how long each resolution took, including failures.
	Duration prometheus.Histogram
}

// NewResolver creates the resolver collectors and registers them with reg.
func NewResolver(reg prometheus.Registerer) (*Resolver, error) {
	m := &Resolver{
		Resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolutions_total",
			Help:      "Number of URL resolutions by outcome.",
		}, []string{"outcome"}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "resolution_duration_seconds",
			Help:      "Time spent resolving a single URL.",
			Buckets:   DefaultBuckets,
		}),
	}

	for _, c := range []prometheus.Collector{m.Resolutions, m.Duration} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("could not register collector: %w", err)
		}
	}

	return m, nil
}

// Observe records a single resolution.
func (m *Resolver) Observe(outcome domain.Outcome, took time.Duration) {
	m.Resolutions.WithLabelValues(string(outcome)).Inc()
	m.Duration.Observe(took.Seconds())
}
