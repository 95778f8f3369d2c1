// Package main provides the CLI entrypoint for the unshortener.
// It wires subcommands (unshorten, serve), loads configuration, and initializes logging.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"unshortener/internal/config"
	"unshortener/pkg/logger"
	"unshortener/pkg/resolver/headresolver"
)

// newResolver creates the HEAD resolver configured by cfg. Redirects are
// followed by the default http.Client policy.
func newResolver(cfg *config.Config) *headresolver.Client {
	return headresolver.New(&http.Client{}, headresolver.Options{
		Timeout:   cfg.Resolver.Timeout,
		UserAgent: cfg.Resolver.UserAgent,
	})
}

// newRootCommand sets up the root Cobra command. Configuration is loaded
// before any subcommand runs and shared through cfg.
func newRootCommand(cfg *config.Config) *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:          "unshortener",
		Short:        "Resolves shortened URLs found in a CSV column",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("could not load config: %w", err)
			}
			*cfg = *loaded

			if err := logger.Setup(cfg.Environment, cfg.LogLevel); err != nil {
				return fmt.Errorf("could not set up logger: %w", err)
			}

			return nil
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yml", "Config File Path")

	rootCmd.AddCommand(
		unshortenCommand(cfg),
		serveCommand(cfg),
	)

	return rootCmd
}

func main() {
	ctx := context.Background()

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			logger.Sync(ctx)

			panic(p)
		}
	}()

	err := newRootCommand(&config.Config{}).ExecuteContext(ctx)
	logger.Sync(ctx)
	if err != nil {
		os.Exit(1) //nolint: gocritic
	}
}
