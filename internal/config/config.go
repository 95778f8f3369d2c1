package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config represents the application configuration structure.
// It contains settings for the environment, URL resolution, CSV output,
// the HTTP server and graceful shutdown behavior.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`
	// LogLevel overrides the environment's default log level when set
	LogLevel string `env:"LOG_LEVEL" env-default:"" yaml:"logLevel"`

	// Resolver contains settings for following shortened URLs
	Resolver struct {
		// Timeout bounds a single resolution, including every redirect hop
		Timeout time.Duration `env:"RESOLVER_TIMEOUT" env-default:"10s" yaml:"timeout"`
		// UserAgent is sent with every HEAD request
		UserAgent string `env:"RESOLVER_USER_AGENT" env-default:"unshortener/1.0" yaml:"userAgent"`
		// Concurrency is the number of rows resolved at the same time; 1 keeps processing sequential
		Concurrency int `env:"RESOLVER_CONCURRENCY" env-default:"1" yaml:"concurrency"`
		// CacheSize is the number of resolutions remembered within one run; 0 disables the cache
		CacheSize int `env:"RESOLVER_CACHE_SIZE" env-default:"0" yaml:"cacheSize"`
	} `yaml:"resolver"`

	// CSV contains output formatting settings
	CSV struct {
		// UseCRLF terminates output records with \r\n instead of \n
		UseCRLF bool `env:"CSV_USE_CRLF" env-default:"true" yaml:"useCRLF"`
	} `yaml:"csv"`

	// HTTP contains all HTTP server related configurations
	HTTP struct {
		// Addr is the address and port the HTTP server will listen on
		Addr string `env:"HTTP_ADDR" env-default:":8080" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"30m" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// RequestTimeout is the maximum time allowed for processing a single request.
		// A file is resolved row by row, so this has to cover Resolver.Timeout times the row count.
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"30m" yaml:"requestTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MaxUploadBytes limits the size of an uploaded CSV file
		MaxUploadBytes int64 `env:"HTTP_MAX_UPLOAD_BYTES" env-default:"10485760" yaml:"maxUploadBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
	} `yaml:"http"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Validate rejects values the rest of the application cannot work with.
func (c *Config) Validate() error {
	if c.Resolver.Timeout <= 0 {
		return errors.New("resolver timeout must be positive")
	}
	if c.Resolver.Concurrency < 1 {
		return errors.New("resolver concurrency must be at least 1")
	}
	if c.Resolver.CacheSize < 0 {
		return errors.New("resolver cache size must not be negative")
	}
	if c.HTTP.MaxUploadBytes <= 0 {
		return errors.New("http max upload bytes must be positive")
	}

	return nil
}

// Load receives the path for yaml config file and returns a filled Config struct.
// Variables from a .env file in the working directory are exported first when
// the file exists. A missing config file is not an error: defaults and
// environment variables are used instead.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("could not read .env file: %w", err)
	}

	var cfg Config
	if _, err := os.Stat(configPath); err == nil {
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("could not read config: %w", err)
		}
	} else {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("could not stat config file: %w", err)
		}
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("could not read config from environment: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
