package solver

import (
	"context"
	"iter"

	"github.com/fyrsmithlabs/countdown/internal/term"
)

// Explorer pulls terms from a run in batches and keeps the first term
// found for each in-range value. It is not safe for concurrent use.
type Explorer struct {
	run  *Run
	rng  Range
	next func() (*term.Term, bool)
	stop func()

	seen   map[int]struct{}
	pulled int
	done   bool
}

// NewExplorer starts pulling from run. Close must be called to release
// the underlying iterator.
func NewExplorer(ctx context.Context, run *Run, rng Range) *Explorer {
	next, stop := iter.Pull(run.Terms(ctx))
	return &Explorer{
		run:  run,
		rng:  rng,
		next: next,
		stop: stop,
		seen: make(map[int]struct{}),
	}
}

// Next pulls at most k terms and returns witnesses for values not seen
// before. exhausted is true once the run has no more terms or every value
// in a bounded range is covered.
func (e *Explorer) Next(k int) (found []Witness, exhausted bool) {
	for i := 0; i < k && !e.done; i++ {
		t, ok := e.next()
		if !ok {
			e.finish()
			break
		}
		e.pulled++
		if !e.rng.Contains(t.Value) {
			continue
		}
		if _, dup := e.seen[t.Value]; dup {
			continue
		}
		e.seen[t.Value] = struct{}{}
		found = append(found, Witness{Value: t.Value, Term: t})
		if e.Covered() {
			e.finish()
		}
	}
	return found, e.done
}

// Covered reports whether every value of a bounded range has a witness.
func (e *Explorer) Covered() bool {
	return e.rng.Bounded() && len(e.seen) >= e.rng.Size()
}

// Pulled returns the number of terms pulled so far.
func (e *Explorer) Pulled() int {
	return e.pulled
}

// Run returns the run being explored.
func (e *Explorer) Run() *Run {
	return e.run
}

// Close releases the iterator. It is safe to call more than once.
func (e *Explorer) Close() {
	e.finish()
}

func (e *Explorer) finish() {
	e.done = true
	e.stop()
}
