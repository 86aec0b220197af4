// Package enumerate lazily generates the arithmetic expressions that can be
// built from a multiset of numbers.
//
// Terms produces every non-redundant expression that uses each of the
// given numbers exactly once. Calculations does the same for every distinct
// sub-multiset, shortest first, so that simple solutions surface before
// long ones.
//
// Both return iter.Seq values. Nothing is computed until the sequence is
// ranged over, and breaking out of the loop abandons the remaining search:
//
//	for t := range enumerate.Calculations([]int{2, 7, 9, 10, 25, 50}) {
//	    if t.Value == 744 {
//	        fmt.Println(t)
//	        break
//	    }
//	}
//
// De-duplication keeps sums and products in ascending, right-flattened
// form, never puts a difference inside a sum or a quotient inside a
// product, and drops steps that cannot produce a new value (x*1, x/1,
// a-b=b, a/b=b). Some duplicates still get through: (x*a*y)/a,
// (x+a+y)-a, and terms built from a number that occurs more than once in
// the input. Consumers that need unique output de-duplicate by rendering.
package enumerate
