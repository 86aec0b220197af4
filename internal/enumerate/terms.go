package enumerate

import (
	"iter"

	"github.com/fyrsmithlabs/countdown/internal/selection"
	"github.com/fyrsmithlabs/countdown/internal/term"
)

// Terms yields every expression whose leaves are exactly numbers, in the
// given order, each used once. numbers must be sorted ascending.
func Terms(numbers []int) iter.Seq[*term.Term] {
	return func(yield func(*term.Term) bool) {
		terms(numbers, yield)
	}
}

// terms reports false once yield has asked to stop.
func terms(numbers []int, yield func(*term.Term) bool) bool {
	switch len(numbers) {
	case 0:
		return true
	case 1:
		return yield(term.NewLeaf(numbers[0]))
	}
	for sel := range selection.Vectors(len(numbers)) {
		ls, rs := selection.Partition(numbers, sel)
		for l := range Terms(ls) {
			for r := range Terms(rs) {
				if !combine(l, r, yield) {
					return false
				}
			}
		}
	}
	return true
}

// combine yields the sum, product, difference and quotient of l and r that
// survive de-duplication, in that order.
func combine(l, r *term.Term, yield func(*term.Term) bool) bool {
	// (a-b)+c is already reachable as (a+c)-b; sums grow on the right only.
	if l.Op != term.Add && l.Op != term.Sub && r.Op != term.Sub {
		if t := chain(term.Add, l, r, l.Value+r.Value); t != nil && !yield(t) {
			return false
		}
	}
	// (a/b)*c is already reachable as (a*c)/b; multiplying by 1 adds nothing.
	if l.Op != term.Mul && l.Op != term.Div && r.Op != term.Div && l.Value != 1 && r.Value != 1 {
		if t := chain(term.Mul, l, r, l.Value*r.Value); t != nil && !yield(t) {
			return false
		}
	}
	// a-b-c is reachable as a-(b+c).
	if l.Op != term.Sub && r.Op != term.Sub {
		if v := l.Value - r.Value; v > 0 && v != r.Value {
			if !yield(&term.Term{Op: term.Sub, Args: []*term.Term{l, r}, Value: v}) {
				return false
			}
		}
	}
	// a/b/c is reachable as a/(b*c).
	if l.Op != term.Div && r.Op != term.Div && r.Value > 1 && l.Value%r.Value == 0 {
		if v := l.Value / r.Value; v != r.Value {
			if !yield(&term.Term{Op: term.Div, Args: []*term.Term{l, r}, Value: v}) {
				return false
			}
		}
	}
	return true
}

// chain builds the n-ary sum or product of l and r, flattening r into the
// result when it already is one. Operands stay in ascending order of
// value; nil means the combination is not canonical.
func chain(op term.Op, l, r *term.Term, value int) *term.Term {
	if r.Op == op {
		if l.Value > r.Args[0].Value {
			return nil
		}
		args := make([]*term.Term, 0, len(r.Args)+1)
		args = append(args, l)
		args = append(args, r.Args...)
		return &term.Term{Op: op, Args: args, Value: value}
	}
	if l.Value > r.Value {
		return nil
	}
	return &term.Term{Op: op, Args: []*term.Term{l, r}, Value: value}
}
