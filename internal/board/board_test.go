package board

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fyrsmithlabs/countdown/internal/solver"
	"github.com/fyrsmithlabs/countdown/internal/term"
)

func leaf(n int) *term.Term { return term.NewLeaf(n) }

func witnesses() []solver.Witness {
	sum := &term.Term{Op: term.Add, Args: []*term.Term{leaf(1), leaf(2)}, Value: 3}
	prod := &term.Term{Op: term.Mul, Args: []*term.Term{sum, leaf(3)}, Value: 9}
	return []solver.Witness{
		{Value: 1, Term: leaf(1)},
		{Value: 3, Term: sum},
		{Value: 9, Term: prod},
		{Value: 2, Term: leaf(2)},
	}
}

func newBoard() *Board {
	// A buffer is not a terminal, so no escape sequences are emitted.
	return New(&bytes.Buffer{})
}

func TestGrid(t *testing.T) {
	out := newBoard().Grid(witnesses(), Options{Columns: 3})
	lines := strings.Split(out, "\n")

	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "1 1")
	assert.Contains(t, lines[0], "3 1+2")
	assert.Contains(t, lines[0], "9 (1+2)*3")
	assert.Contains(t, lines[1], "2 2")
	assert.NotContains(t, out, "\x1b[")
}

func TestGrid_TitleAndDefaults(t *testing.T) {
	out := newBoard().Grid(witnesses(), Options{Title: "1 2 3"})
	lines := strings.Split(out, "\n")

	assert.Contains(t, lines[0], "1 2 3")
	assert.Len(t, lines, 3, "title plus two rows at %d columns", DefaultColumns)
}

func TestGrid_Empty(t *testing.T) {
	assert.Equal(t, "no values reached", newBoard().Grid(nil, Options{}))
}

func TestSolutions(t *testing.T) {
	out := newBoard().Solutions(witnesses()[1:3])
	assert.Equal(t, "3 = 1+2\n9 = (1+2)*3", out)
}

func TestCards(t *testing.T) {
	out := newBoard().Cards([]int{25, 50})
	assert.Contains(t, out, "25")
	assert.Contains(t, out, "50")
	assert.Len(t, strings.Split(out, "\n"), 3, "rounded border adds a line above and below")
}

func TestSummary(t *testing.T) {
	out := newBoard().Summary(Stats{
		Numbers: []int{2, 7, 9, 10, 25, 50},
		Range:   solver.Range{Min: 100, Max: 999},
		Terms:   64027,
		Found:   900,
		Elapsed: 2 * time.Second,
	})

	assert.Contains(t, out, "2 7 9 10 25 50")
	assert.Contains(t, out, "[100..999]")
	assert.Contains(t, out, "64,027")
	assert.Contains(t, out, "100.0%")
	assert.Contains(t, out, "32,013 terms/s")
}

func TestSummary_UnboundedHasNoCoverage(t *testing.T) {
	out := newBoard().Summary(Stats{Numbers: []int{1}, Range: solver.Range{Min: 1}, Terms: 1, Found: 1})
	assert.NotContains(t, out, "coverage")
	assert.Contains(t, out, "- terms/s")
}

func TestFormatCount(t *testing.T) {
	tests := []struct {
		n        int
		expected string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{73307, "73,307"},
		{1234567, "1,234,567"},
		{-4500, "-4,500"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatCount(tt.n))
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		d        time.Duration
		expected string
	}{
		{"zero", 0, "0.0ms"},
		{"milliseconds", 12300 * time.Microsecond, "12.3ms"},
		{"seconds", 1234 * time.Millisecond, "1.2s"},
		{"minutes", 125 * time.Second, "2m 5s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDuration(tt.d))
		})
	}
}

func TestFormatRate(t *testing.T) {
	assert.Equal(t, "1,000 terms/s", FormatRate(500, 500*time.Millisecond))
	assert.Equal(t, "- terms/s", FormatRate(10, 0))
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "50.0%", FormatPercentage(0.5))
	assert.Equal(t, "0.0%", FormatPercentage(0))
}
