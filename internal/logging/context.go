package logging

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// ContextFields extracts correlation data from context.
func ContextFields(ctx context.Context) []zap.Field {
	fields := make([]zap.Field, 0, 6)

	if span := trace.SpanFromContext(ctx); span.SpanContext().IsValid() {
		sc := span.SpanContext()
		fields = append(fields,
			zap.String("trace_id", sc.TraceID().String()),
			zap.String("span_id", sc.SpanID().String()),
		)
	}

	if run, ok := RunFromContext(ctx); ok {
		fields = append(fields,
			zap.String("run.id", run.ID),
			zap.Uint64("run.token", run.Token),
		)
	}

	if name := PuzzleFromContext(ctx); name != "" {
		fields = append(fields, zap.String("puzzle", name))
	}

	return fields
}

type runCtxKey struct{}
type puzzleCtxKey struct{}
type loggerCtxKey struct{}

// Run identifies one enumeration session in log output.
type Run struct {
	ID    string
	Token uint64
}

// WithRun adds the run identity to context.
func WithRun(ctx context.Context, id string, token uint64) context.Context {
	return context.WithValue(ctx, runCtxKey{}, Run{ID: id, Token: token})
}

// RunFromContext extracts the run identity from context.
func RunFromContext(ctx context.Context) (Run, bool) {
	r, ok := ctx.Value(runCtxKey{}).(Run)
	return r, ok
}

// WithPuzzle adds a puzzle name to context.
func WithPuzzle(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, puzzleCtxKey{}, name)
}

// PuzzleFromContext extracts the puzzle name from context.
func PuzzleFromContext(ctx context.Context) string {
	if s, ok := ctx.Value(puzzleCtxKey{}).(string); ok {
		return s
	}
	return ""
}

// WithLogger stores logger in context.
func WithLogger(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey{}, logger)
}

// FromContext retrieves logger from context.
// Returns a nop logger if not found.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(loggerCtxKey{}).(*Logger); ok {
		return l
	}
	return NewNop()
}
