// Package config provides configuration loading for countdown.
//
// Values come from built-in defaults, then an optional YAML file, then
// COUNTDOWN_* environment variables.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config holds the complete countdown configuration.
type Config struct {
	Solver    SolverConfig    `koanf:"solver"`
	Logging   LoggingConfig   `koanf:"logging"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Metrics   MetricsConfig   `koanf:"metrics"`
}

// SolverConfig holds enumeration defaults.
type SolverConfig struct {
	// BatchSize is how many terms the worker pulls per batch.
	BatchSize int `koanf:"batch_size"`
	// Limit caps printed solutions; 0 means all.
	Limit int `koanf:"limit"`
	// Workers bounds concurrent puzzles in batch mode.
	Workers int `koanf:"workers"`
	// RangeMin and RangeMax bound the targets covered by explore.
	RangeMin int `koanf:"range_min"`
	RangeMax int `koanf:"range_max"`
	// Timeout aborts a single solve; 0 disables it.
	Timeout Duration `koanf:"timeout"`
	// ProgressInterval throttles progress logging during long runs.
	ProgressInterval Duration `koanf:"progress_interval"`
}

// LoggingConfig selects log level and encoding.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	OTEL   bool   `koanf:"otel"`
}

// TelemetryConfig holds OpenTelemetry export settings.
type TelemetryConfig struct {
	Enabled      bool    `koanf:"enabled"`
	Endpoint     string  `koanf:"endpoint"`
	Protocol     string  `koanf:"protocol"`
	Insecure     bool    `koanf:"insecure"`
	SamplingRate float64 `koanf:"sampling_rate"`
}

// MetricsConfig controls the Prometheus textfile written after a command.
type MetricsConfig struct {
	Textfile string `koanf:"textfile"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Solver: SolverConfig{
			BatchSize:        1000,
			Limit:            0,
			Workers:          4,
			RangeMin:         100,
			RangeMax:         999,
			Timeout:          0,
			ProgressInterval: Duration(2 * time.Second),
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
		Telemetry: TelemetryConfig{
			Enabled:      false,
			Endpoint:     "localhost:4317",
			Protocol:     "grpc",
			Insecure:     true,
			SamplingRate: 1.0,
		},
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Solver.BatchSize < 1 {
		return fmt.Errorf("invalid solver.batch_size: %d (must be >= 1)", c.Solver.BatchSize)
	}
	if c.Solver.Limit < 0 {
		return fmt.Errorf("invalid solver.limit: %d (must be >= 0)", c.Solver.Limit)
	}
	if c.Solver.Workers < 1 {
		return fmt.Errorf("invalid solver.workers: %d (must be >= 1)", c.Solver.Workers)
	}
	if c.Solver.RangeMin < 1 || c.Solver.RangeMax < c.Solver.RangeMin {
		return fmt.Errorf("invalid solver range %d..%d", c.Solver.RangeMin, c.Solver.RangeMax)
	}
	if c.Solver.ProgressInterval.Duration() <= 0 {
		return errors.New("solver.progress_interval must be positive")
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid logging.format %q (json or console)", c.Logging.Format)
	}
	if c.Telemetry.Enabled {
		if c.Telemetry.Endpoint == "" {
			return errors.New("telemetry.endpoint required when telemetry is enabled")
		}
		switch c.Telemetry.Protocol {
		case "grpc", "http/protobuf":
		default:
			return fmt.Errorf("invalid telemetry.protocol %q (grpc or http/protobuf)", c.Telemetry.Protocol)
		}
		if c.Telemetry.SamplingRate < 0 || c.Telemetry.SamplingRate > 1 {
			return fmt.Errorf("telemetry.sampling_rate must be between 0 and 1, got %f", c.Telemetry.SamplingRate)
		}
	}
	return nil
}
