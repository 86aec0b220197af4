// Package selection enumerates the binary partitions of a sequence.
//
// A partition is driven by a selection vector: element i goes to the left
// side when sel[i] is true and to the right side otherwise. Vectors visits
// every vector except the two degenerate ones (nothing selected, everything
// selected) in binary-counter order, so a sequence of length n has
// 2^n - 2 non-trivial splits.
//
//	for sel := range selection.Vectors(len(xs)) {
//	    ls, rs := selection.Partition(xs, sel)
//	    ...
//	}
package selection
