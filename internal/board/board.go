// Package board renders solver results for a terminal.
package board

import (
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fyrsmithlabs/countdown/internal/solver"
)

// DefaultColumns is the grid width used when Options.Columns is unset.
const DefaultColumns = 3

// Board holds styles bound to one output. Colors are dropped when the
// output is not a terminal.
type Board struct {
	r *lipgloss.Renderer

	title lipgloss.Style
	card  lipgloss.Style
	value lipgloss.Style
	expr  lipgloss.Style
	label lipgloss.Style
	dim   lipgloss.Style
	box   lipgloss.Style
}

// Options controls grid layout.
type Options struct {
	Title   string
	Columns int
}

// New returns a board rendering for w.
func New(w io.Writer) *Board {
	r := lipgloss.NewRenderer(w)
	return &Board{
		r: r,
		title: r.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("51")).
			Bold(true).
			Padding(0, 1),
		card: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Foreground(lipgloss.Color("231")).
			Bold(true).
			Padding(0, 1),
		value: r.NewStyle().
			Foreground(lipgloss.Color("51")).
			Bold(true),
		expr: r.NewStyle().
			Foreground(lipgloss.Color("231")),
		label: r.NewStyle().
			Foreground(lipgloss.Color("45")),
		dim: r.NewStyle().
			Foreground(lipgloss.Color("245")),
		box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1),
	}
}

// Cards renders the chosen numbers side by side.
func (b *Board) Cards(numbers []int) string {
	cards := make([]string, len(numbers))
	for i, n := range numbers {
		cards[i] = b.card.Render(strconv.Itoa(n))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

// Grid lays out one cell per witness, row by row, in the given order.
func (b *Board) Grid(ws []solver.Witness, opts Options) string {
	columns := opts.Columns
	if columns < 1 {
		columns = DefaultColumns
	}

	var sb strings.Builder
	if opts.Title != "" {
		sb.WriteString(b.title.Render(opts.Title))
		sb.WriteString("\n")
	}
	if len(ws) == 0 {
		sb.WriteString(b.dim.Render("no values reached"))
		return sb.String()
	}

	valueWidth, exprWidth := 0, 0
	for _, w := range ws {
		valueWidth = max(valueWidth, len(strconv.Itoa(w.Value)))
		exprWidth = max(exprWidth, len(w.Expr()))
	}
	cellWidth := valueWidth + 1 + exprWidth + 3

	cell := b.r.NewStyle().Width(cellWidth)
	rows := make([]string, 0, (len(ws)+columns-1)/columns)
	for start := 0; start < len(ws); start += columns {
		end := min(start+columns, len(ws))
		cells := make([]string, 0, end-start)
		for _, w := range ws[start:end] {
			v := strconv.Itoa(w.Value)
			text := strings.Repeat(" ", valueWidth-len(v)) + b.value.Render(v) + " " + b.expr.Render(w.Expr())
			cells = append(cells, cell.Render(text))
		}
		rows = append(rows, strings.TrimRight(lipgloss.JoinHorizontal(lipgloss.Top, cells...), " "))
	}
	sb.WriteString(strings.Join(rows, "\n"))
	return sb.String()
}

// Solutions renders one "value = expr" line per witness, the format of the
// solve command.
func (b *Board) Solutions(ws []solver.Witness) string {
	lines := make([]string, len(ws))
	for i, w := range ws {
		lines[i] = b.value.Render(strconv.Itoa(w.Value)) + b.dim.Render(" = ") + b.expr.Render(w.Expr())
	}
	return strings.Join(lines, "\n")
}
