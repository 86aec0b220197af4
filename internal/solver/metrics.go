package solver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RunsTotal counts enumeration runs.
	// Labels: op (solve, explore, worker), result (ok, empty, canceled, invalid)
	RunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "countdown",
			Subsystem: "solver",
			Name:      "runs_total",
			Help:      "Total number of enumeration runs by operation and result",
		},
		[]string{"op", "result"},
	)

	// TermsPulled counts terms pulled from the enumerator.
	// Labels: op (solve, explore, worker)
	TermsPulled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "countdown",
			Subsystem: "solver",
			Name:      "terms_pulled_total",
			Help:      "Total number of terms pulled from the enumerator",
		},
		[]string{"op"},
	)

	// WitnessesFound counts solutions or per-value witnesses reported.
	// Labels: op (solve, explore, worker)
	WitnessesFound = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "countdown",
			Subsystem: "solver",
			Name:      "witnesses_total",
			Help:      "Total number of solutions or witnesses reported",
		},
		[]string{"op"},
	)

	// RunDuration tracks wall time per run.
	RunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "countdown",
			Subsystem: "solver",
			Name:      "run_duration_seconds",
			Help:      "Duration of enumeration runs in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 9),
		},
		[]string{"op"},
	)

	// WorkerBatches counts batches sent by workers.
	WorkerBatches = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "countdown",
			Subsystem: "solver",
			Name:      "worker_batches_total",
			Help:      "Total number of batches sent by workers",
		},
	)

	// StaleMessages counts continuations ignored because their token was
	// superseded.
	StaleMessages = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "countdown",
			Subsystem: "solver",
			Name:      "worker_stale_messages_total",
			Help:      "Total number of continuation messages ignored for a stale token",
		},
	)
)

const (
	opSolve   = "solve"
	opExplore = "explore"
	opWorker  = "worker"

	resultOK       = "ok"
	resultEmpty    = "empty"
	resultCanceled = "canceled"
	resultInvalid  = "invalid"
)
