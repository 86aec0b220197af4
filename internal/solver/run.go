package solver

import (
	"context"
	"fmt"
	"iter"
	"slices"

	"github.com/google/uuid"

	"github.com/fyrsmithlabs/countdown/internal/enumerate"
	"github.com/fyrsmithlabs/countdown/internal/term"
)

// ctxCheckInterval is how many terms pass between context checks. Must
// be a power of two.
const ctxCheckInterval = 256

// Run is one enumeration session.
type Run struct {
	ID      string
	Token   uint64
	Numbers []int
}

// NewRun returns a run over a sorted copy of numbers.
func NewRun(token uint64, numbers []int) *Run {
	sorted := slices.Clone(numbers)
	slices.Sort(sorted)
	return &Run{
		ID:      uuid.New().String(),
		Token:   token,
		Numbers: sorted,
	}
}

// Terms lazily yields every calculation over the run's numbers. The
// sequence ends early once ctx is done.
func (r *Run) Terms(ctx context.Context) iter.Seq[*term.Term] {
	return func(yield func(*term.Term) bool) {
		n := 0
		for t := range enumerate.Calculations(r.Numbers) {
			if n&(ctxCheckInterval-1) == 0 && ctx.Err() != nil {
				return
			}
			n++
			if !yield(t) {
				return
			}
		}
	}
}

// Witness is a term chosen to represent its value.
type Witness struct {
	Value int
	Term  *term.Term
}

// Expr renders the witness term.
func (w Witness) Expr() string {
	return w.Term.String()
}

func (w Witness) String() string {
	return fmt.Sprintf("%d = %s", w.Value, w.Term)
}
