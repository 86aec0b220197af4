package solver

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/countdown/internal/enumerate"
	"github.com/fyrsmithlabs/countdown/internal/logging"
	"github.com/fyrsmithlabs/countdown/internal/telemetry"
)

const instrumentationName = "github.com/fyrsmithlabs/countdown/internal/solver"

// Service answers questions about the calculations over a set of numbers.
type Service interface {
	// Solve returns every distinct rendered term whose value is in range.
	Solve(ctx context.Context, req *SolveRequest) (*SolveResult, error)

	// Explore returns one witness for each value in range that some term
	// reaches.
	Explore(ctx context.Context, req *ExploreRequest) (*ExploreResult, error)

	// Subsets returns the distinct non-empty sub-multisets of numbers.
	Subsets(ctx context.Context, numbers []int) ([][]int, error)
}

// Config configures the solver service.
type Config struct {
	// BatchSize is how many terms Explore pulls between progress checks.
	BatchSize int

	// ProgressInterval is the minimum gap between progress log lines.
	ProgressInterval time.Duration
}

// DefaultServiceConfig returns sensible defaults.
func DefaultServiceConfig() *Config {
	return &Config{
		BatchSize:        1000,
		ProgressInterval: 2 * time.Second,
	}
}

// SolveRequest asks for the terms whose value lies in Range.
type SolveRequest struct {
	Numbers []int
	Range   Range

	// Limit stops the run after this many solutions; 0 means all.
	Limit int

	// Closest reports the nearest reachable value when nothing is in range.
	Closest bool
}

// SolveResult holds solutions in the order they were found, which is
// shortest first.
type SolveResult struct {
	RunID     string
	Solutions []Witness

	// Closest is set when Closest was requested and nothing was in range.
	Closest *Witness

	// Limited is true when the run stopped at Limit.
	Limited bool

	Pulled  int
	Elapsed time.Duration
}

// ExploreRequest asks for one witness per value in Range.
type ExploreRequest struct {
	Numbers []int
	Range   Range
}

// ExploreResult holds witnesses ordered by value.
type ExploreResult struct {
	RunID     string
	Witnesses []Witness

	// Missing counts values of a bounded range with no witness; -1 when
	// the range is unbounded.
	Missing int

	Pulled  int
	Elapsed time.Duration
}

// service implements the Service interface.
type service struct {
	config *Config
	logger *logging.Logger
	tokens atomic.Uint64

	tracer       trace.Tracer
	meter        metric.Meter
	runCounter   metric.Int64Counter
	termCounter  metric.Int64Counter
	foundCounter metric.Int64Counter
}

// NewService creates a solver service. A nil tel uses the global OTel
// providers.
func NewService(cfg *Config, logger *logging.Logger, tel *telemetry.Telemetry) (Service, error) {
	if cfg == nil {
		cfg = DefaultServiceConfig()
	}
	if cfg.BatchSize < 1 {
		return nil, fmt.Errorf("batch size must be positive, got %d", cfg.BatchSize)
	}
	if cfg.ProgressInterval <= 0 {
		return nil, errors.New("progress interval must be positive")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	s := &service{
		config: cfg,
		logger: logger.Named("solver"),
		tracer: tel.Tracer(instrumentationName),
		meter:  tel.Meter(instrumentationName),
	}

	s.initMetrics()

	return s, nil
}

// initMetrics initializes OpenTelemetry metrics.
func (s *service) initMetrics() {
	var err error
	ctx := context.Background()

	s.runCounter, err = s.meter.Int64Counter(
		"countdown.solver.runs_total",
		metric.WithDescription("Total number of enumeration runs"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		s.logger.Warn(ctx, "failed to create run counter", zap.Error(err))
	}

	s.termCounter, err = s.meter.Int64Counter(
		"countdown.solver.terms_total",
		metric.WithDescription("Total number of terms pulled from the enumerator"),
		metric.WithUnit("{term}"),
	)
	if err != nil {
		s.logger.Warn(ctx, "failed to create term counter", zap.Error(err))
	}

	s.foundCounter, err = s.meter.Int64Counter(
		"countdown.solver.witnesses_total",
		metric.WithDescription("Total number of solutions or witnesses reported"),
		metric.WithUnit("{witness}"),
	)
	if err != nil {
		s.logger.Warn(ctx, "failed to create witness counter", zap.Error(err))
	}
}

// record publishes the outcome of one run to both metric pipelines.
func (s *service) record(ctx context.Context, op, result string, pulled, found int, elapsed time.Duration) {
	RunsTotal.WithLabelValues(op, result).Inc()
	TermsPulled.WithLabelValues(op).Add(float64(pulled))
	WitnessesFound.WithLabelValues(op).Add(float64(found))
	RunDuration.WithLabelValues(op).Observe(elapsed.Seconds())

	attrs := metric.WithAttributes(attribute.String("op", op))
	if s.runCounter != nil {
		s.runCounter.Add(ctx, 1, metric.WithAttributes(
			attribute.String("op", op),
			attribute.String("result", result),
		))
	}
	if s.termCounter != nil {
		s.termCounter.Add(ctx, int64(pulled), attrs)
	}
	if s.foundCounter != nil {
		s.foundCounter.Add(ctx, int64(found), attrs)
	}
}

// begin validates input, opens a run and annotates the span and context.
func (s *service) begin(ctx context.Context, span trace.Span, op string, numbers []int, rng Range) (context.Context, *Run, error) {
	if err := Validate(numbers); err != nil {
		return ctx, nil, s.reject(ctx, span, op, err)
	}
	if err := rng.Validate(); err != nil {
		return ctx, nil, s.reject(ctx, span, op, err)
	}

	run := NewRun(s.tokens.Add(1), numbers)
	ctx = logging.WithRun(ctx, run.ID, run.Token)
	span.SetAttributes(
		attribute.String("run.id", run.ID),
		attribute.IntSlice("numbers", run.Numbers),
		attribute.Int("range.min", rng.Min),
		attribute.Int("range.max", rng.Max),
	)
	s.logger.Debug(ctx, "run started",
		zap.String("op", op),
		zap.Ints("numbers", run.Numbers),
		zap.Stringer("range", rng),
	)
	return ctx, run, nil
}

func (s *service) reject(ctx context.Context, span trace.Span, op string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	s.record(ctx, op, resultInvalid, 0, 0, 0)
	return err
}

// Solve returns every distinct rendered term whose value is in range.
func (s *service) Solve(ctx context.Context, req *SolveRequest) (*SolveResult, error) {
	ctx, span := s.tracer.Start(ctx, "solver.Solve")
	defer span.End()

	if req == nil {
		return nil, s.reject(ctx, span, opSolve, fmt.Errorf("%w: nil request", ErrInvalidInput))
	}
	if req.Limit < 0 {
		return nil, s.reject(ctx, span, opSolve, fmt.Errorf("%w: negative limit %d", ErrInvalidInput, req.Limit))
	}

	ctx, run, err := s.begin(ctx, span, opSolve, req.Numbers, req.Range)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("limit", req.Limit), attribute.Bool("closest", req.Closest))

	start := time.Now()
	res := &SolveResult{RunID: run.ID}
	rendered := make(map[string]struct{})
	var best *Witness
	bestDistance := 0
	prog := newProgress(s.logger, s.config.ProgressInterval)

	for t := range run.Terms(ctx) {
		res.Pulled++
		prog.observe(ctx, res.Pulled, len(res.Solutions))

		if !req.Range.Contains(t.Value) {
			if req.Closest && len(res.Solutions) == 0 {
				if d := req.Range.Distance(t.Value); best == nil || d < bestDistance {
					best, bestDistance = &Witness{Value: t.Value, Term: t}, d
				}
			}
			continue
		}

		expr := t.String()
		if _, dup := rendered[expr]; dup {
			continue
		}
		rendered[expr] = struct{}{}
		res.Solutions = append(res.Solutions, Witness{Value: t.Value, Term: t})
		if req.Limit > 0 && len(res.Solutions) >= req.Limit {
			res.Limited = true
			break
		}
	}
	res.Elapsed = time.Since(start)

	if err := ctx.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "canceled")
		s.record(ctx, opSolve, resultCanceled, res.Pulled, len(res.Solutions), res.Elapsed)
		return nil, fmt.Errorf("solve canceled after %d terms: %w", res.Pulled, err)
	}

	result := resultOK
	if len(res.Solutions) == 0 {
		result = resultEmpty
		if req.Closest {
			res.Closest = best
		}
	}
	s.record(ctx, opSolve, result, res.Pulled, len(res.Solutions), res.Elapsed)

	span.SetAttributes(
		attribute.Int("terms", res.Pulled),
		attribute.Int("solutions", len(res.Solutions)),
	)
	s.logger.Info(ctx, "solve complete",
		zap.Int("terms", res.Pulled),
		zap.Int("solutions", len(res.Solutions)),
		zap.Bool("limited", res.Limited),
		zap.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}

// Explore returns one witness per value in range, the first found.
func (s *service) Explore(ctx context.Context, req *ExploreRequest) (*ExploreResult, error) {
	ctx, span := s.tracer.Start(ctx, "solver.Explore")
	defer span.End()

	if req == nil {
		return nil, s.reject(ctx, span, opExplore, fmt.Errorf("%w: nil request", ErrInvalidInput))
	}

	ctx, run, err := s.begin(ctx, span, opExplore, req.Numbers, req.Range)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	ex := NewExplorer(ctx, run, req.Range)
	defer ex.Close()

	res := &ExploreResult{RunID: run.ID}
	prog := newProgress(s.logger, s.config.ProgressInterval)
	for {
		found, exhausted := ex.Next(s.config.BatchSize)
		res.Witnesses = append(res.Witnesses, found...)
		s.logger.Trace(ctx, "batch pulled",
			zap.Int("found", len(found)),
			zap.Int("terms", ex.Pulled()),
		)
		prog.report(ctx, ex.Pulled(), len(res.Witnesses))
		if exhausted {
			break
		}
	}
	res.Pulled = ex.Pulled()
	res.Elapsed = time.Since(start)

	if err := ctx.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "canceled")
		s.record(ctx, opExplore, resultCanceled, res.Pulled, len(res.Witnesses), res.Elapsed)
		return nil, fmt.Errorf("explore canceled after %d terms: %w", res.Pulled, err)
	}

	slices.SortFunc(res.Witnesses, func(a, b Witness) int { return a.Value - b.Value })
	res.Missing = -1
	if req.Range.Bounded() {
		res.Missing = req.Range.Size() - len(res.Witnesses)
	}

	result := resultOK
	if len(res.Witnesses) == 0 {
		result = resultEmpty
	}
	s.record(ctx, opExplore, result, res.Pulled, len(res.Witnesses), res.Elapsed)

	span.SetAttributes(
		attribute.Int("terms", res.Pulled),
		attribute.Int("witnesses", len(res.Witnesses)),
	)
	s.logger.Info(ctx, "explore complete",
		zap.Int("terms", res.Pulled),
		zap.Int("witnesses", len(res.Witnesses)),
		zap.Int("missing", res.Missing),
		zap.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}

// Subsets returns the distinct non-empty sub-multisets of numbers,
// smallest first.
func (s *service) Subsets(ctx context.Context, numbers []int) ([][]int, error) {
	_, span := s.tracer.Start(ctx, "solver.Subsets")
	defer span.End()

	if err := Validate(numbers); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	subsets := enumerate.Subsets(numbers)
	span.SetAttributes(attribute.Int("subsets", len(subsets)))
	return subsets, nil
}
