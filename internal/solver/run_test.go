package solver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/countdown/internal/term"
)

func TestNewRun(t *testing.T) {
	numbers := []int{50, 2, 25}
	run := NewRun(3, numbers)

	assert.Equal(t, []int{2, 25, 50}, run.Numbers)
	assert.Equal(t, []int{50, 2, 25}, numbers, "input must not be reordered")
	assert.Equal(t, uint64(3), run.Token)
	assert.Len(t, run.ID, 36)
	assert.NotEqual(t, run.ID, NewRun(3, numbers).ID)
}

func TestRun_Terms(t *testing.T) {
	tests := []struct {
		numbers []int
		want    int
	}{
		{[]int{1, 2, 3}, 22},
		{[]int{1, 2, 3, 4}, 193},
		{[]int{1, 1}, 3},
	}
	for _, tt := range tests {
		n := 0
		for range NewRun(1, tt.numbers).Terms(context.Background()) {
			n++
		}
		assert.Equal(t, tt.want, n, "numbers %v", tt.numbers)
	}
}

func TestRun_TermsStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	run := NewRun(1, []int{2, 7, 9, 10, 25, 50})

	n := 0
	for range run.Terms(ctx) {
		n++
		if n == 10 {
			cancel()
		}
	}
	assert.Less(t, n, 10+ctxCheckInterval+1)
}

func TestRun_TermsCanceledUpFront(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for range NewRun(1, []int{1, 2, 3}).Terms(ctx) {
		t.Fatal("no terms expected after cancel")
	}
}

func TestWitness(t *testing.T) {
	tm := &term.Term{Op: term.Add, Args: []*term.Term{term.NewLeaf(1), term.NewLeaf(2)}, Value: 3}
	w := Witness{Value: 3, Term: tm}

	require.Equal(t, "1+2", w.Expr())
	assert.Equal(t, "3 = 1+2", w.String())
}
