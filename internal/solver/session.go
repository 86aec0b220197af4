package solver

import (
	"context"
	"maps"
	"slices"
	"sync/atomic"
)

// Session is the consuming side of the Worker protocol. It tags every run
// with a fresh token, drops batches for superseded tokens, and keeps the
// first witness reported for each value.
//
// Start and Collect must be called from one goroutine; Cancel may be
// called from any.
type Session struct {
	in  chan<- Message
	out <-chan Batch
	rng Range

	token  atomic.Uint64
	active atomic.Bool

	found  map[int]Witness
	pulled int
}

// NewSession returns a session talking to a worker over in and out.
func NewSession(in chan<- Message, out <-chan Batch, rng Range) *Session {
	return &Session{
		in:    in,
		out:   out,
		rng:   rng,
		found: make(map[int]Witness),
	}
}

// Start begins a new run over numbers, superseding any previous one.
func (s *Session) Start(ctx context.Context, numbers []int) error {
	token := s.token.Add(1)
	s.active.Store(true)
	s.found = make(map[int]Witness)
	s.pulled = 0
	return s.send(ctx, Message{Token: token, Start: true, Numbers: slices.Clone(numbers)})
}

// Cancel abandons the current run. Batches already in flight are dropped.
func (s *Session) Cancel() {
	s.token.Add(1)
	s.active.Store(false)
}

// Token returns the current run token.
func (s *Session) Token() uint64 {
	return s.token.Load()
}

// Pulled returns the number of terms the worker consumed for the current
// run.
func (s *Session) Pulled() int {
	return s.pulled
}

// Collect drains batches for the current run and returns its witnesses
// ordered by value. It returns once the worker reports the run exhausted
// or every value of a bounded range is covered. After Cancel it returns
// ErrCanceled with whatever was collected.
func (s *Session) Collect(ctx context.Context) ([]Witness, error) {
	for {
		select {
		case <-ctx.Done():
			return s.witnesses(), ctx.Err()
		case b, ok := <-s.out:
			if !ok {
				return s.witnesses(), ErrWorkerClosed
			}
			if b.Token != s.token.Load() {
				if !s.active.Load() {
					return s.witnesses(), ErrCanceled
				}
				continue
			}
			if b.Err != nil {
				s.active.Store(false)
				return nil, b.Err
			}

			s.pulled += b.Pulled
			for _, w := range b.Witnesses {
				if _, ok := s.found[w.Value]; !ok {
					s.found[w.Value] = w
				}
			}

			if b.Exhausted || s.covered() {
				s.active.Store(false)
				return s.witnesses(), nil
			}
			if err := s.send(ctx, Message{Token: b.Token}); err != nil {
				return s.witnesses(), err
			}
		}
	}
}

func (s *Session) covered() bool {
	return s.rng.Bounded() && len(s.found) >= s.rng.Size()
}

func (s *Session) witnesses() []Witness {
	out := make([]Witness, 0, len(s.found))
	for _, v := range slices.Sorted(maps.Keys(s.found)) {
		out = append(out, s.found[v])
	}
	return out
}

// send delivers msg to the worker. A worker blocked on a reply for a
// superseded token is drained so it can receive.
func (s *Session) send(ctx context.Context, msg Message) error {
	for {
		select {
		case s.in <- msg:
			return nil
		case _, ok := <-s.out:
			// The worker replies once per message, so anything pending
			// here answers a superseded token.
			if !ok {
				return ErrWorkerClosed
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
