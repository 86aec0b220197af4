package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/countdown/internal/config"
	"github.com/fyrsmithlabs/countdown/internal/logging"
	"github.com/fyrsmithlabs/countdown/internal/solver"
	"github.com/fyrsmithlabs/countdown/internal/telemetry"
)

// app holds the services one command invocation needs.
type app struct {
	cfg    *config.Config
	logger *logging.Logger
	tel    *telemetry.Telemetry
	svc    solver.Service

	metricsFile string
}

// newApp loads configuration and wires logging, telemetry and the solver.
func newApp(ctx context.Context, opts *rootOptions, stderr io.Writer) (*app, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	if opts.logFormat != "" {
		cfg.Logging.Format = opts.logFormat
	}
	if opts.metricsFile != "" {
		cfg.Metrics.Textfile = opts.metricsFile
	}

	tel, err := telemetry.New(ctx, telemetry.FromConfig(cfg.Telemetry, version))
	if err != nil {
		return nil, err
	}

	logCfg := logging.NewDefaultConfig()
	if logCfg.Level, err = logging.LevelFromString(cfg.Logging.Level); err != nil {
		return nil, err
	}
	logCfg.Format = cfg.Logging.Format
	logCfg.Output.OTEL = cfg.Logging.OTEL
	if err := logCfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid logging config: %w", err)
	}
	logger, err := logging.NewLogger(logCfg, stderr, tel.LoggerProvider())
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	for _, problem := range tel.Problems() {
		logger.Warn(ctx, "telemetry degraded", zap.Error(problem))
	}

	svc, err := solver.NewService(&solver.Config{
		BatchSize:        cfg.Solver.BatchSize,
		ProgressInterval: cfg.Solver.ProgressInterval.Duration(),
	}, logger, tel)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:         cfg,
		logger:      logger,
		tel:         tel,
		svc:         svc,
		metricsFile: cfg.Metrics.Textfile,
	}, nil
}

// withTimeout applies the configured per-solve timeout, if any.
func (a *app) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if d := a.cfg.Solver.Timeout.Duration(); d > 0 {
		return context.WithTimeout(ctx, d)
	}
	return context.WithCancel(ctx)
}

// close exports metrics, flushes telemetry and syncs the logger. Each
// failure is logged before the logger is synced.
func (a *app) close(ctx context.Context) error {
	var errs []error

	if a.metricsFile != "" {
		if err := prometheus.WriteToTextfile(a.metricsFile, prometheus.DefaultGatherer); err != nil {
			errs = append(errs, fmt.Errorf("write metrics textfile: %w", err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := a.tel.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, err)
	}

	for _, err := range errs {
		a.logger.Error(ctx, "shutdown incomplete", zap.Error(err))
	}
	_ = a.logger.Sync() // best effort
	return errors.Join(errs...)
}

// runE adapts a command body that needs an app to cobra's RunE, closing
// the app afterwards. Failures other than invalid input are logged at
// error level before cobra prints them.
func runE(opts *rootOptions, fn func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		a, err := newApp(ctx, opts, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer a.close(ctx) //nolint:errcheck // logged by close

		ctx = logging.WithLogger(ctx, a.logger)
		err = fn(ctx, a, cmd, args)
		if err != nil && !errors.Is(err, solver.ErrInvalidInput) {
			a.logger.Error(ctx, "command failed",
				zap.String("command", cmd.CommandPath()),
				zap.Error(err),
			)
		}
		return err
	}
}
