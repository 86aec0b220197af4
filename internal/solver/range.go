package solver

import "fmt"

// Range selects the term values a caller is interested in. Both bounds
// are inclusive; Max == 0 leaves the range open above.
type Range struct {
	Min int
	Max int
}

// Exact returns the range holding only target.
func Exact(target int) Range {
	return Range{Min: target, Max: target}
}

// Contains reports whether v lies in the range.
func (r Range) Contains(v int) bool {
	return v >= r.Min && (r.Max == 0 || v <= r.Max)
}

// Bounded reports whether the range has an upper bound.
func (r Range) Bounded() bool {
	return r.Max != 0
}

// Size returns how many term values the range can hold, or -1 when it is
// unbounded. Term values are always positive.
func (r Range) Size() int {
	if !r.Bounded() {
		return -1
	}
	lo := max(r.Min, 1)
	if r.Max < lo {
		return 0
	}
	return r.Max - lo + 1
}

// Distance returns how far v lies outside the range; 0 when inside.
func (r Range) Distance(v int) int {
	switch {
	case v < r.Min:
		return r.Min - v
	case r.Bounded() && v > r.Max:
		return v - r.Max
	default:
		return 0
	}
}

// Validate rejects negative or inverted bounds and the zero Range, which
// Exact(0) also produces and which would otherwise match every term.
func (r Range) Validate() error {
	if r == (Range{}) {
		return fmt.Errorf("%w: no target or range given", ErrInvalidInput)
	}
	if r.Min < 0 || r.Max < 0 {
		return fmt.Errorf("%w: negative range bound in %s", ErrInvalidInput, r)
	}
	if r.Bounded() && r.Max < r.Min {
		return fmt.Errorf("%w: empty range %s", ErrInvalidInput, r)
	}
	return nil
}

func (r Range) String() string {
	if !r.Bounded() {
		return fmt.Sprintf("[%d..]", r.Min)
	}
	if r.Min == r.Max {
		return fmt.Sprintf("[%d]", r.Min)
	}
	return fmt.Sprintf("[%d..%d]", r.Min, r.Max)
}
