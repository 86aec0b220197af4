package term

import (
	"strconv"
	"strings"
)

// Render returns the infix form of t. Parentheses appear only where the
// standard precedence of + - * / would otherwise change the meaning; the
// whole expression is never wrapped.
func Render(t *Term) string {
	var sb strings.Builder
	render(&sb, t, precLow)
	return sb.String()
}

// String implements fmt.Stringer.
func (t *Term) String() string {
	return Render(t)
}

// render writes t, wrapping it when its precedence is below need.
func render(sb *strings.Builder, t *Term, need int) {
	if t.IsLeaf() {
		sb.WriteString(strconv.Itoa(t.Value))
		return
	}
	prec := t.Op.Precedence()
	wrap := prec < need
	if wrap {
		sb.WriteByte('(')
	}
	for i, a := range t.Args {
		if i > 0 {
			sb.WriteString(t.Op.Symbol())
		}
		// right operand of - and / must bind tighter than the operator
		childNeed := prec
		if i > 0 && !t.Op.Commutative() {
			childNeed = prec + 1
		}
		render(sb, a, childNeed)
	}
	if wrap {
		sb.WriteByte(')')
	}
}
