// Package config reads process settings from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v10"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"minishop-pos"`
	Env         string `env:"ENV" envDefault:"dev"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"warn"`
	LogFile     string `env:"LOG_FILE"`

	POS       POS
	Telemetry Telemetry
}

// POS holds the settings of the sales terminal.
type POS struct {
	StoreName        string `env:"POS_STORE_NAME" envDefault:"Toy Universe"`
	MaxLineItems     int    `env:"POS_MAX_LINE_ITEMS" envDefault:"6"`
	ReorderThreshold int    `env:"POS_REORDER_THRESHOLD" envDefault:"1"`
}

type Telemetry struct {
	MetricsTextfile string  `env:"POS_METRICS_TEXTFILE"`
	MetricsAddr     string  `env:"POS_METRICS_ADDR"`
	OTLPEndpoint    string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	SampleRate      float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: LOG_LEVEL %q must be debug, info, warn or error", ErrInvalidConfig, c.LogLevel)
	}
	if strings.TrimSpace(c.ServiceName) == "" {
		return fmt.Errorf("%w: SERVICE_NAME is required", ErrInvalidConfig)
	}
	if c.POS.MaxLineItems <= 0 {
		return fmt.Errorf("%w: POS_MAX_LINE_ITEMS must be greater than zero", ErrInvalidConfig)
	}
	if c.POS.ReorderThreshold < 0 {
		return fmt.Errorf("%w: POS_REORDER_THRESHOLD must be zero or greater", ErrInvalidConfig)
	}
	if c.Telemetry.SampleRate < 0 || c.Telemetry.SampleRate > 1 {
		return fmt.Errorf("%w: OTEL_SAMPLE_RATE must be between 0.0 and 1.0", ErrInvalidConfig)
	}
	return nil
}
