// Package config loads service configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	GRPCEnabled bool   `env:"GRPC_ENABLED" envDefault:"true"`
	GRPCPort    string `env:"GRPC_PORT" envDefault:"9090"`

	ServiceName string     `env:"SERVICE_NAME" envDefault:"vat-engine"`
	LogLevel    slog.Level `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string     `env:"LOG_FORMAT" envDefault:"json"`

	// OTelEndpoint enables OTLP/HTTP trace export when set.
	OTelEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"5s"`
	MaxBodySize     int           `env:"MAX_BODY_SIZE" envDefault:"65536"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	AggregateDiagnostics bool `env:"VALIDATION_AGGREGATE" envDefault:"false"`
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom reads the configuration from the given variables only.
func LoadFrom(environ map[string]string) (Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if err := validatePort("PORT", c.Port); err != nil {
		errs = append(errs, err)
	}
	if c.GRPCEnabled {
		if err := validatePort("GRPC_PORT", c.GRPCPort); err != nil {
			errs = append(errs, err)
		}
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.LogFormat))
	}
	if c.MaxBodySize <= 0 {
		errs = append(errs, fmt.Errorf("MAX_BODY_SIZE must be positive, got %d", c.MaxBodySize))
	}
	return errors.Join(errs...)
}

func validatePort(name, value string) error {
	p, err := strconv.Atoi(value)
	if err != nil || p < 1 || p > 65535 {
		return fmt.Errorf("%s must be a port number, got %q", name, value)
	}
	return nil
}

// HTTPAddr is the listen address of the HTTP server.
func (c Config) HTTPAddr() string {
	return ":" + c.Port
}

// GRPCAddr is the listen address of the gRPC server.
func (c Config) GRPCAddr() string {
	return ":" + c.GRPCPort
}
