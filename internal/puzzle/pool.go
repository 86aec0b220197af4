package puzzle

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/fyrsmithlabs/countdown/internal/solver"
)

// Pool is the standard set of number cards: two of each small number and
// one of each large.
var Pool = []int{1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6, 7, 7, 8, 8, 9, 9, 10, 10, 25, 50, 75, 100}

// DrawSize is how many cards a standard puzzle uses.
const DrawSize = 6

// Draw picks n distinct cards from Pool using r and returns their numbers
// in ascending order.
func Draw(r *rand.Rand, n int) ([]int, error) {
	if n < 1 || n > len(Pool) {
		return nil, fmt.Errorf("%w: cannot draw %d of %d cards", solver.ErrInvalidInput, n, len(Pool))
	}
	picked := make([]int, 0, n)
	for _, i := range r.Perm(len(Pool))[:n] {
		picked = append(picked, Pool[i])
	}
	slices.Sort(picked)
	return picked, nil
}
