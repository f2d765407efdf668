// Package config loads and validates the nicelist service configuration.
// Values come from three layers: built-in defaults, an optional YAML file,
// and environment variables, with the environment winning.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/santalabs/nicelist/pkg/telemetry"
)

// Config is the full service configuration.
type Config struct {
	// ListenAddr is the address the HTTP server binds to.
	ListenAddr string `yaml:"listen_addr" env:"NICELIST_LISTEN_ADDR" validate:"required"`

	// ServiceName identifies the service in telemetry resources.
	ServiceName string `yaml:"service_name" env:"NICELIST_SERVICE_NAME" validate:"required"`

	// ServiceVersion is the reported service version.
	ServiceVersion string `yaml:"service_version" env:"NICELIST_SERVICE_VERSION" validate:"required"`

	// Environment is the deployment environment.
	Environment string `yaml:"environment" env:"NICELIST_ENVIRONMENT" validate:"oneof=development staging production"`

	// MaxJitter, when positive, sleeps a random duration up to this bound
	// before classifying. Used to produce interesting latency histograms
	// in demos; off by default.
	MaxJitter time.Duration `yaml:"max_jitter" env:"NICELIST_MAX_JITTER" validate:"min=0"`

	// ShutdownTimeout bounds graceful HTTP server shutdown.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"NICELIST_SHUTDOWN_TIMEOUT" validate:"gt=0"`

	// Logging configures structured logging.
	Logging LoggingConfig `yaml:"logging" envPrefix:"NICELIST_LOG_"`

	// Metrics configures metric export.
	Metrics MetricsConfig `yaml:"metrics" envPrefix:"NICELIST_METRICS_"`

	// Tracing configures trace export.
	Tracing TracingConfig `yaml:"tracing" envPrefix:"NICELIST_TRACING_"`
}

// LoggingConfig configures the zerolog logger.
type LoggingConfig struct {
	Level  string `yaml:"level" env:"LEVEL" validate:"oneof=trace debug info warn error fatal"`
	Format string `yaml:"format" env:"FORMAT" validate:"oneof=console json"`
	Output string `yaml:"output" env:"OUTPUT" validate:"required"`
	Caller bool   `yaml:"caller" env:"CALLER"`
}

// MetricsConfig selects where metric samples are sent. The service itself
// never hard-codes a destination.
type MetricsConfig struct {
	Enabled        bool          `yaml:"enabled" env:"ENABLED"`
	Exporter       string        `yaml:"exporter" env:"EXPORTER" validate:"oneof=stdout otlp prometheus none"`
	Endpoint       string        `yaml:"endpoint" env:"ENDPOINT" validate:"required_if=Exporter otlp"`
	Insecure       bool          `yaml:"insecure" env:"INSECURE"`
	ExportInterval time.Duration `yaml:"export_interval" env:"EXPORT_INTERVAL" validate:"gt=0"`
	ListenAddress  string        `yaml:"listen_address" env:"LISTEN_ADDRESS" validate:"required_if=Exporter prometheus"`
	Path           string        `yaml:"path" env:"PATH"`
}

// TracingConfig selects where spans are sent.
type TracingConfig struct {
	Enabled      bool    `yaml:"enabled" env:"ENABLED"`
	Exporter     string  `yaml:"exporter" env:"EXPORTER" validate:"oneof=stdout otlp none"`
	Endpoint     string  `yaml:"endpoint" env:"ENDPOINT" validate:"required_if=Exporter otlp"`
	Insecure     bool    `yaml:"insecure" env:"INSECURE"`
	SamplingRate float64 `yaml:"sampling_rate" env:"SAMPLING_RATE" validate:"gte=0,lte=1"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ListenAddr:      ":8080",
		ServiceName:     "nicelist",
		ServiceVersion:  "dev",
		Environment:     "development",
		MaxJitter:       0,
		ShutdownTimeout: 10 * time.Second,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Output: "stdout",
			Caller: false,
		},
		Metrics: MetricsConfig{
			Enabled:        true,
			Exporter:       "stdout",
			Endpoint:       "localhost:4317",
			Insecure:       true,
			ExportInterval: 15 * time.Second,
			ListenAddress:  ":9090",
			Path:           "/metrics",
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "stdout",
			Endpoint:     "localhost:4317",
			Insecure:     true,
			SamplingRate: 1.0,
		},
	}
}

// Load builds the effective configuration: defaults, then the YAML file at
// path (if non-empty), then environment variables, then validation.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Telemetry converts the service configuration into the telemetry
// package's configuration.
func (c *Config) Telemetry() *telemetry.Config {
	tcfg := telemetry.DefaultConfig()
	tcfg.ServiceName = c.ServiceName
	tcfg.ServiceVersion = c.ServiceVersion
	tcfg.Environment = c.Environment
	tcfg.Logging.Level = c.Logging.Level
	tcfg.Logging.Format = c.Logging.Format
	tcfg.Logging.Output = c.Logging.Output
	tcfg.Logging.EnableCaller = c.Logging.Caller
	tcfg.Metrics.Enabled = c.Metrics.Enabled
	tcfg.Metrics.Exporter = c.Metrics.Exporter
	tcfg.Metrics.Endpoint = c.Metrics.Endpoint
	tcfg.Metrics.Insecure = c.Metrics.Insecure
	tcfg.Metrics.ExportInterval = c.Metrics.ExportInterval
	tcfg.Metrics.ListenAddress = c.Metrics.ListenAddress
	tcfg.Metrics.Path = c.Metrics.Path
	tcfg.Tracing.Enabled = c.Tracing.Enabled
	tcfg.Tracing.Exporter = c.Tracing.Exporter
	tcfg.Tracing.Endpoint = c.Tracing.Endpoint
	tcfg.Tracing.Insecure = c.Tracing.Insecure
	tcfg.Tracing.SamplingRate = c.Tracing.SamplingRate
	return tcfg
}
