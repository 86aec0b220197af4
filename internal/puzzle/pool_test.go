package puzzle

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/countdown/internal/solver"
)

func TestDraw(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))

	for range 50 {
		got, err := Draw(r, DrawSize)
		require.NoError(t, err)
		require.Len(t, got, DrawSize)
		assert.True(t, slices.IsSorted(got))

		// No card is used more often than the pool holds it.
		counts := map[int]int{}
		for _, n := range Pool {
			counts[n]++
		}
		for _, n := range got {
			counts[n]--
			assert.GreaterOrEqual(t, counts[n], 0, "card %d overdrawn in %v", n, got)
		}
	}
}

func TestDraw_Deterministic(t *testing.T) {
	a, err := Draw(rand.New(rand.NewPCG(7, 7)), DrawSize)
	require.NoError(t, err)
	b, err := Draw(rand.New(rand.NewPCG(7, 7)), DrawSize)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestDraw_WholePool(t *testing.T) {
	got, err := Draw(rand.New(rand.NewPCG(3, 4)), len(Pool))
	require.NoError(t, err)
	assert.Equal(t, Pool, got)
}

func TestDraw_InvalidSize(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 1))
	for _, n := range []int{0, -1, len(Pool) + 1} {
		_, err := Draw(r, n)
		assert.ErrorIs(t, err, solver.ErrInvalidInput)
	}
}
