// Package api configures and exposes the HTTP server, routes, metrics and
// related middleware for the unshortener service.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"unshortener/internal/api/handler/v1handler"
	"unshortener/internal/config"
	"unshortener/pkg/controller"
)

// Options holds configuration for the HTTP server and its dependencies.
// It is typically created from a config.Config via NewOptions.
type Options struct {
	// V1 configures the v1 endpoints.
	V1 v1handler.Options
	// Addr is the TCP address the server listens on, e.g. ":8080".
	Addr string
	// ReadTimeout is the maximum duration for reading the entire request, including the body.
	ReadTimeout time.Duration
	// ReadHeaderTimeout is the amount of time allowed to read request headers.
	ReadHeaderTimeout time.Duration
	// WriteTimeout is the maximum duration before timing out writes of the response.
	WriteTimeout time.Duration
	// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled.
	IdleTimeout time.Duration
	// RequestTimeout is the global timeout applied via http.TimeoutHandler for handling requests.
	RequestTimeout time.Duration
	// MaxHeaderBytes controls the maximum number of bytes the server
	// will read parsing the request header's keys and values, including the request line.
	MaxHeaderBytes int
	// MetricsPath is the HTTP path at which Prometheus metrics are served.
	MetricsPath string
}

// NewOptions constructs an Options value from the provided application configuration.
func NewOptions(cfg *config.Config) Options {
	return Options{
		V1:                v1handler.NewOptions(cfg),
		Addr:              cfg.HTTP.Addr,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		RequestTimeout:    cfg.HTTP.RequestTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
		MetricsPath:       cfg.HTTP.MetricsPath,
	}
}

type Deps struct {
	v1handler.Deps
	// Gatherer serves the metrics endpoint.
	Gatherer prometheus.Gatherer
}

// NewHandler builds the root router:
// - Prometheus metrics endpoint (MetricsPath)
// - v1 API routes under /v1
// - pprof endpoints for profiling
// All routes are wrapped with the access-log and CORS middlewares.
func NewHandler(deps Deps, opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(controller.WithLogger, controller.WithCORS)

	r.Handle(opts.MetricsPath, promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	r.Mount("/v1", v1handler.New(deps.Deps, opts.V1).Routes())
	r.Mount("/debug/pprof", controller.PprofMux())

	return r
}

// NewServer wires up and returns a configured *http.Server using the provided Options.
// The handler is wrapped with a request timeout.
func NewServer(deps Deps, opts Options) *http.Server {
	return &http.Server{
		Addr:              opts.Addr,
		Handler:           http.TimeoutHandler(NewHandler(deps, opts), opts.RequestTimeout, `{"error":"request timed out"}`),
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		WriteTimeout:      opts.WriteTimeout,
		IdleTimeout:       opts.IdleTimeout,
		MaxHeaderBytes:    opts.MaxHeaderBytes,
	}
}
