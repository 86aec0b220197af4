package board

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/fyrsmithlabs/countdown/internal/solver"
)

// Stats describes one finished run.
type Stats struct {
	Numbers []int
	Range   solver.Range
	Terms   int
	Found   int
	Elapsed time.Duration
}

// Summary renders a boxed key/value summary of a run.
func (b *Board) Summary(s Stats) string {
	numbers := make([]string, len(s.Numbers))
	for i, n := range s.Numbers {
		numbers[i] = strconv.Itoa(n)
	}

	rows := [][2]string{
		{"numbers", strings.Join(numbers, " ")},
		{"range", s.Range.String()},
		{"terms", FormatCount(s.Terms)},
		{"found", FormatCount(s.Found)},
	}
	if size := s.Range.Size(); size > 0 {
		rows = append(rows, [2]string{"coverage", FormatPercentage(float64(s.Found) / float64(size))})
	}
	rows = append(rows,
		[2]string{"elapsed", FormatDuration(s.Elapsed)},
		[2]string{"rate", FormatRate(s.Terms, s.Elapsed)},
	)

	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = b.label.Render(fmt.Sprintf("%-9s", row[0])) + row[1]
	}
	return b.box.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// FormatCount formats n with thousands separators.
func FormatCount(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var sb strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}
	if neg {
		return "-" + sb.String()
	}
	return sb.String()
}

// FormatDuration formats d as "X.Xms", "X.Xs" or "Xm Ys".
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%.1fms", float64(d)/float64(time.Millisecond))
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
	}
}

// FormatRate formats terms per second.
func FormatRate(terms int, d time.Duration) string {
	if d <= 0 {
		return "- terms/s"
	}
	return FormatCount(int(float64(terms)/d.Seconds())) + " terms/s"
}

// FormatPercentage formats a ratio (0-1) as percentage.
func FormatPercentage(ratio float64) string {
	return fmt.Sprintf("%.1f%%", ratio*100)
}
