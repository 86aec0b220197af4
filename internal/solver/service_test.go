package solver

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/fyrsmithlabs/countdown/internal/logging"
	"github.com/fyrsmithlabs/countdown/internal/telemetry"
)

var classic = []int{2, 7, 9, 10, 25, 50}

type testService struct {
	Service
	logger *logging.TestLogger
	tel    *telemetry.TestTelemetry
}

func newTestService(t *testing.T) *testService {
	t.Helper()
	logger := logging.NewTestLogger()
	tel := telemetry.NewTestTelemetry()
	svc, err := NewService(DefaultServiceConfig(), logger.Logger, tel.Telemetry)
	require.NoError(t, err)
	return &testService{Service: svc, logger: logger, tel: tel}
}

func exprs(ws []Witness) []string {
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.Expr()
	}
	return out
}

func TestNewService(t *testing.T) {
	svc, err := NewService(nil, nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, svc)

	_, err = NewService(&Config{BatchSize: 0, ProgressInterval: time.Second}, nil, nil)
	assert.Error(t, err)

	_, err = NewService(&Config{BatchSize: 10}, nil, nil)
	assert.Error(t, err)
}

func TestSolve_ClassicTarget(t *testing.T) {
	s := newTestService(t)
	before := testutil.ToFloat64(RunsTotal.WithLabelValues(opSolve, resultOK))

	res, err := s.Solve(context.Background(), &SolveRequest{Numbers: classic, Range: Exact(744)})
	require.NoError(t, err)

	require.Len(t, res.Solutions, 8)
	assert.Equal(t, "2*(7+50+9*(10+25))", res.Solutions[0].Expr())
	assert.Equal(t, "2*(10+9*(50-7)-25)", res.Solutions[1].Expr())
	assert.Equal(t, "9+7*(25+2*(50-10))", res.Solutions[2].Expr())
	for _, w := range res.Solutions {
		assert.Equal(t, 744, w.Value)
	}
	assert.Equal(t, 73307, res.Pulled)
	assert.False(t, res.Limited)
	assert.Nil(t, res.Closest)
	assert.NotEmpty(t, res.RunID)

	s.tel.AssertSpanExists(t, "solver.Solve")
	s.tel.AssertSpanAttribute(t, "solver.Solve", "solutions", int64(8))
	s.tel.AssertSpanAttribute(t, "solver.Solve", "range.min", int64(744))
	assert.Equal(t, int64(73307), s.tel.Int64Sum(t, "countdown.solver.terms_total"))
	assert.Equal(t, int64(1), s.tel.Int64Sum(t, "countdown.solver.runs_total"))

	s.logger.AssertField(t, "solve complete", "solutions", int64(8))
	s.logger.AssertField(t, "solve complete", "run.id", res.RunID)
	assert.Equal(t, before+1, testutil.ToFloat64(RunsTotal.WithLabelValues(opSolve, resultOK)))
}

func TestSolve_Limit(t *testing.T) {
	s := newTestService(t)

	res, err := s.Solve(context.Background(), &SolveRequest{Numbers: classic, Range: Exact(744), Limit: 3})
	require.NoError(t, err)

	assert.Len(t, res.Solutions, 3)
	assert.True(t, res.Limited)
	assert.Less(t, res.Pulled, 73307)
}

func TestSolve_DeduplicatesRenderings(t *testing.T) {
	s := newTestService(t)

	res, err := s.Solve(context.Background(), &SolveRequest{Numbers: []int{1, 1}, Range: Exact(2)})
	require.NoError(t, err)
	assert.Equal(t, []string{"1+1"}, exprs(res.Solutions))
	assert.Equal(t, 3, res.Pulled)
}

func TestSolve_Range(t *testing.T) {
	s := newTestService(t)

	res, err := s.Solve(context.Background(), &SolveRequest{Numbers: []int{3, 2, 1}, Range: Range{Min: 8, Max: 9}})
	require.NoError(t, err)
	assert.Equal(t, []string{"2*(1+3)", "(1+2)*3", "3*(1+2)"}, exprs(res.Solutions))
}

func TestSolve_Closest(t *testing.T) {
	s := newTestService(t)

	res, err := s.Solve(context.Background(), &SolveRequest{Numbers: []int{100, 75}, Range: Exact(200), Closest: true})
	require.NoError(t, err)

	assert.Empty(t, res.Solutions)
	require.NotNil(t, res.Closest)
	assert.Equal(t, 175, res.Closest.Value)
	assert.Equal(t, "75+100", res.Closest.Expr())

	res, err = s.Solve(context.Background(), &SolveRequest{Numbers: []int{100, 75}, Range: Exact(200)})
	require.NoError(t, err)
	assert.Nil(t, res.Closest)
}

func TestSolve_ClosestIgnoredWhenSolved(t *testing.T) {
	s := newTestService(t)

	res, err := s.Solve(context.Background(), &SolveRequest{Numbers: []int{100, 75}, Range: Exact(25), Closest: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"100-75"}, exprs(res.Solutions))
	assert.Nil(t, res.Closest)
}

func TestSolve_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		req  *SolveRequest
	}{
		{"nil request", nil},
		{"no numbers", &SolveRequest{Range: Exact(10)}},
		{"zero", &SolveRequest{Numbers: []int{0, 5}, Range: Exact(10)}},
		{"inverted range", &SolveRequest{Numbers: []int{1, 2}, Range: Range{Min: 5, Max: 1}}},
		{"zero target", &SolveRequest{Numbers: []int{1, 2}, Range: Exact(0)}},
		{"negative limit", &SolveRequest{Numbers: []int{1, 2}, Range: Exact(3), Limit: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestService(t)
			_, err := s.Solve(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			s.tel.AssertSpanExists(t, "solver.Solve")
		})
	}
}

func TestSolve_Canceled(t *testing.T) {
	s := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Solve(ctx, &SolveRequest{Numbers: classic, Range: Exact(744)})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExplore_ClassicRange(t *testing.T) {
	s := newTestService(t)

	res, err := s.Explore(context.Background(), &ExploreRequest{Numbers: classic, Range: Range{Min: 100, Max: 999}})
	require.NoError(t, err)

	require.Len(t, res.Witnesses, 900)
	assert.Zero(t, res.Missing)
	assert.Equal(t, 64027, res.Pulled)
	for i, w := range res.Witnesses {
		require.Equal(t, 100+i, w.Value)
	}
	assert.Equal(t, "2*(7+50+9*(10+25))", res.Witnesses[644].Expr())

	s.tel.AssertSpanAttribute(t, "solver.Explore", "witnesses", int64(900))
	s.logger.AssertLogged(t, zapcore.InfoLevel, "explore complete")
}

func TestExplore_Unbounded(t *testing.T) {
	s := newTestService(t)

	res, err := s.Explore(context.Background(), &ExploreRequest{Numbers: []int{1, 2, 3}, Range: Range{Min: 1}})
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9}, values(res.Witnesses))
	assert.Equal(t, -1, res.Missing)
	assert.Equal(t, 22, res.Pulled)
}

func TestExplore_ReportsMissing(t *testing.T) {
	s := newTestService(t)

	res, err := s.Explore(context.Background(), &ExploreRequest{Numbers: []int{1, 2, 3}, Range: Range{Min: 5, Max: 14}})
	require.NoError(t, err)
	assert.Equal(t, []int{5, 6, 7, 8, 9}, values(res.Witnesses))
	assert.Equal(t, 5, res.Missing)
}

func TestExplore_InvalidInput(t *testing.T) {
	s := newTestService(t)

	_, err := s.Explore(context.Background(), &ExploreRequest{Numbers: []int{1, 2}, Range: Range{Min: -1}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.Explore(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSubsets(t *testing.T) {
	s := newTestService(t)

	got, err := s.Subsets(context.Background(), []int{5, 5})
	require.NoError(t, err)
	assert.Equal(t, [][]int{{5}, {5, 5}}, got)

	_, err = s.Subsets(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
	s.tel.AssertSpanExists(t, "solver.Subsets")
}
