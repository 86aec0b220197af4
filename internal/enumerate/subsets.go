package enumerate

import (
	"encoding/binary"
	"iter"
	"slices"

	"github.com/fyrsmithlabs/countdown/internal/selection"
	"github.com/fyrsmithlabs/countdown/internal/term"
)

// Subsets returns every distinct non-empty sub-multiset of numbers, each
// sorted ascending, ordered by size. Selections that pick the same values
// from repeated numbers collapse into one entry. numbers is not modified.
func Subsets(numbers []int) [][]int {
	sorted := slices.Clone(numbers)
	slices.Sort(sorted)

	seen := make(map[string]struct{})
	var out [][]int
	add := func(subset []int) {
		k := key(subset)
		if _, ok := seen[k]; ok {
			return
		}
		seen[k] = struct{}{}
		out = append(out, subset)
	}

	for sel := range selection.Vectors(len(sorted)) {
		ls, _ := selection.Partition(sorted, sel)
		add(ls)
	}
	if len(sorted) > 0 {
		add(sorted)
	}

	slices.SortStableFunc(out, func(a, b []int) int {
		return len(a) - len(b)
	})
	return out
}

// key encodes a sorted subset with one fixed-width word per element, so two
// keys are equal exactly when the subsets are.
func key(subset []int) string {
	buf := make([]byte, 0, 8*len(subset))
	for _, v := range subset {
		buf = binary.BigEndian.AppendUint64(buf, uint64(v))
	}
	return string(buf)
}

// Calculations yields the terms of every sub-multiset of numbers, smallest
// sub-multisets first.
func Calculations(numbers []int) iter.Seq[*term.Term] {
	return func(yield func(*term.Term) bool) {
		for _, subset := range Subsets(numbers) {
			if !terms(subset, yield) {
				return
			}
		}
	}
}
