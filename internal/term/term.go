// Package term defines the arithmetic expression trees produced by the
// enumerator and renders them as infix strings.
package term

import (
	"errors"
	"fmt"
)

// Op tags a Term node.
type Op uint8

const (
	Leaf Op = iota
	Add
	Sub
	Mul
	Div
)

// Precedence tiers. A leaf binds tighter than any operator.
const (
	precLow  = 1
	precHigh = 2
	precAtom = 3
)

// Symbol returns the infix operator symbol ("" for a leaf).
func (o Op) Symbol() string {
	switch o {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	default:
		return ""
	}
}

func (o Op) String() string {
	switch o {
	case Leaf:
		return "leaf"
	case Add:
		return "add"
	case Sub:
		return "sub"
	case Mul:
		return "mul"
	case Div:
		return "div"
	default:
		return fmt.Sprintf("op(%d)", uint8(o))
	}
}

// Precedence returns the binding tier of the operator.
func (o Op) Precedence() int {
	switch o {
	case Add, Sub:
		return precLow
	case Mul, Div:
		return precHigh
	default:
		return precAtom
	}
}

// Commutative reports whether operand order leaves the value unchanged.
func (o Op) Commutative() bool {
	return o == Add || o == Mul
}

// Term is a node of an expression tree: either a leaf holding one source
// number or an operation over two or more children. Add and Mul nodes may
// hold any number of children (flattened chains); Sub and Div are binary.
//
// Value caches the evaluated result. Terms are never modified after they
// are built, so subtrees are freely shared between parents.
type Term struct {
	Op    Op
	Args  []*Term
	Value int
}

// NewLeaf returns a leaf term for n.
func NewLeaf(n int) *Term {
	return &Term{Op: Leaf, Value: n}
}

// IsLeaf reports whether t is a single source number.
func (t *Term) IsLeaf() bool {
	return t.Op == Leaf
}

// Leaves returns the number of source numbers used by t.
func (t *Term) Leaves() int {
	if t.IsLeaf() {
		return 1
	}
	n := 0
	for _, a := range t.Args {
		n += a.Leaves()
	}
	return n
}

// Numbers returns the leaf values of t from left to right.
func (t *Term) Numbers() []int {
	return t.appendNumbers(make([]int, 0, 8))
}

func (t *Term) appendNumbers(out []int) []int {
	if t.IsLeaf() {
		return append(out, t.Value)
	}
	for _, a := range t.Args {
		out = a.appendNumbers(out)
	}
	return out
}

// Evaluation errors.
var (
	ErrArity       = errors.New("invalid operand count")
	ErrNonPositive = errors.New("non-positive intermediate value")
	ErrInexact     = errors.New("inexact division")
	ErrValue       = errors.New("cached value mismatch")
)

// Eval recomputes the value of t from its leaves, applying each operator
// left to right over its children. It fails if an intermediate result is
// not a positive integer or a cached Value disagrees with the recomputed
// one.
func Eval(t *Term) (int, error) {
	if t.IsLeaf() {
		if t.Value <= 0 {
			return 0, fmt.Errorf("leaf %d: %w", t.Value, ErrNonPositive)
		}
		return t.Value, nil
	}
	if len(t.Args) < 2 || (!t.Op.Commutative() && len(t.Args) != 2) {
		return 0, fmt.Errorf("%s with %d operands: %w", t.Op, len(t.Args), ErrArity)
	}

	acc, err := Eval(t.Args[0])
	if err != nil {
		return 0, err
	}
	for _, a := range t.Args[1:] {
		v, err := Eval(a)
		if err != nil {
			return 0, err
		}
		switch t.Op {
		case Add:
			acc += v
		case Sub:
			acc -= v
		case Mul:
			acc *= v
		case Div:
			if acc%v != 0 {
				return 0, fmt.Errorf("%d/%d: %w", acc, v, ErrInexact)
			}
			acc /= v
		default:
			return 0, fmt.Errorf("%s: %w", t.Op, ErrArity)
		}
		if acc <= 0 {
			return 0, fmt.Errorf("%s: %w", t.Op, ErrNonPositive)
		}
	}
	if acc != t.Value {
		return 0, fmt.Errorf("%s: got %d, cached %d: %w", Render(t), acc, t.Value, ErrValue)
	}
	return acc, nil
}
