package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"unshortener/internal/api"
	"unshortener/internal/api/handler/v1handler"
	"unshortener/internal/config"
	"unshortener/internal/unshortener"
	"unshortener/pkg/logger"
	"unshortener/pkg/metrics"
	"unshortener/pkg/resolver"
)

func setupServer(ctx context.Context, cfg *config.Config) func(ctx context.Context) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	resolverMetrics, err := metrics.NewResolver(reg)
	if err != nil {
		logger.Fatal(ctx, "could not register metrics", zap.Error(err))
	}

	u := unshortener.New(resolver.Instrumented(newResolver(cfg), resolverMetrics), unshortener.NewOptions(cfg))
	server := api.NewServer(api.Deps{
		Deps:     v1handler.Deps{Unshortener: u},
		Gatherer: reg,
	}, api.NewOptions(cfg))

	go func() {
		logger.Info(ctx, "starting webserver...", zap.String("addr", cfg.HTTP.Addr))
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts the HTTP API for uploading CSV files",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			stopWebserver := setupServer(ctx, cfg)

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)
		},
	}

	return cmd
}
