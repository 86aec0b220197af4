package selection

import "iter"

// Count returns the number of vectors Vectors(n) yields.
func Count(n int) int {
	if n <= 1 {
		return 0
	}
	return 1<<n - 2
}

// Vectors yields every boolean vector of length n except all-false and
// all-true. Index 0 is the least significant position of the counter.
//
// The same backing slice is yielded on every iteration and is mutated
// once the loop body returns; clone it to keep it.
func Vectors(n int) iter.Seq[[]bool] {
	return func(yield func([]bool) bool) {
		fs := make([]bool, n)
		for range Count(n) {
			// increment: flip bits from the bottom until one goes 0 -> 1
			for j := 0; j < n; j++ {
				fs[j] = !fs[j]
				if fs[j] {
					break
				}
			}
			if !yield(fs) {
				return
			}
		}
	}
}

// Partition splits xs into the elements selected by sel and the rest,
// keeping their relative order. len(sel) must equal len(xs).
func Partition[T any](xs []T, sel []bool) (ls, rs []T) {
	ls = make([]T, 0, len(xs))
	rs = make([]T, 0, len(xs))
	for i, x := range xs {
		if sel[i] {
			ls = append(ls, x)
		} else {
			rs = append(rs, x)
		}
	}
	return ls, rs
}
