package term

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func op(o Op, args ...*Term) *Term {
	t := &Term{Op: o, Args: args}
	v := args[0].Value
	for _, a := range args[1:] {
		switch o {
		case Add:
			v += a.Value
		case Sub:
			v -= a.Value
		case Mul:
			v *= a.Value
		case Div:
			v /= a.Value
		}
	}
	t.Value = v
	return t
}

func n(v int) *Term { return NewLeaf(v) }

// evalInfix evaluates an infix string with Go's operator precedence,
// which matches standard arithmetic for + - * / on integers.
func evalInfix(t *testing.T, s string) int {
	t.Helper()
	expr, err := parser.ParseExpr(s)
	require.NoError(t, err, "parse %q", s)
	return evalAST(t, expr)
}

func evalAST(t *testing.T, e ast.Expr) int {
	t.Helper()
	switch x := e.(type) {
	case *ast.BasicLit:
		v, err := strconv.Atoi(x.Value)
		require.NoError(t, err)
		return v
	case *ast.ParenExpr:
		return evalAST(t, x.X)
	case *ast.BinaryExpr:
		l, r := evalAST(t, x.X), evalAST(t, x.Y)
		switch x.Op {
		case token.ADD:
			return l + r
		case token.SUB:
			return l - r
		case token.MUL:
			return l * r
		case token.QUO:
			require.NotZero(t, r)
			require.Zero(t, l%r, "inexact %d/%d", l, r)
			return l / r
		}
	}
	t.Fatalf("unexpected node %T", e)
	return 0
}

func TestOp(t *testing.T) {
	assert.Equal(t, "+", Add.Symbol())
	assert.Equal(t, "/", Div.Symbol())
	assert.Equal(t, "", Leaf.Symbol())
	assert.Equal(t, "mul", Mul.String())
	assert.Equal(t, "leaf", Leaf.String())
	assert.Less(t, Sub.Precedence(), Mul.Precedence())
	assert.Equal(t, Add.Precedence(), Sub.Precedence())
	assert.Less(t, Div.Precedence(), Leaf.Precedence())
	assert.True(t, Add.Commutative())
	assert.False(t, Div.Commutative())
}

func TestLeaf(t *testing.T) {
	l := NewLeaf(25)
	assert.True(t, l.IsLeaf())
	assert.Equal(t, 25, l.Value)
	assert.Equal(t, 1, l.Leaves())
	assert.Equal(t, []int{25}, l.Numbers())
	assert.Equal(t, "25", l.String())
}

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		term *Term
		want string
	}{
		{"leaf", n(7), "7"},
		{"n-ary sum", op(Add, n(2), n(3), n(4)), "2+3+4"},
		{"n-ary product", op(Mul, n(2), n(3), n(4)), "2*3*4"},
		{"product of sums", op(Mul, op(Add, n(1), n(2)), op(Add, n(3), n(4))), "(1+2)*(3+4)"},
		{"sum of products", op(Add, op(Mul, n(2), n(3)), op(Mul, n(4), n(5))), "2*3+4*5"},
		{"subtract sum", op(Sub, n(10), op(Add, n(2), n(3))), "10-(2+3)"},
		{"sum minus", op(Sub, op(Add, n(7), n(8)), n(3)), "7+8-3"},
		{"divide product", op(Div, n(100), op(Mul, n(2), n(5))), "100/(2*5)"},
		{"product over", op(Div, op(Mul, n(6), n(4)), n(3)), "6*4/3"},
		{"difference over", op(Div, op(Sub, n(10), n(4)), n(3)), "(10-4)/3"},
		{"over difference", op(Div, n(12), op(Sub, n(7), n(4))), "12/(7-4)"},
		{"quotient in sum", op(Add, n(1), op(Div, n(8), n(2))), "1+8/2"},
		{"subtract quotient", op(Sub, n(9), op(Div, n(8), n(2))), "9-8/2"},
		{"subtract product", op(Sub, n(50), op(Mul, n(2), n(7))), "50-2*7"},
		{"nested", op(Mul, n(2), op(Sub, op(Mul, n(7), op(Add, n(9), n(50))), n(25))), "2*(7*(9+50)-25)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(tt.term)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.term.Value, evalInfix(t, got), "rendering changed meaning")
		})
	}
}

func TestNumbersAndLeaves(t *testing.T) {
	tm := op(Sub, op(Mul, n(7), op(Add, n(9), n(50))), n(25))
	assert.Equal(t, []int{7, 9, 50, 25}, tm.Numbers())
	assert.Equal(t, 4, tm.Leaves())
}

func TestEval(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		tm := op(Div, op(Mul, n(6), n(4)), n(3))
		v, err := Eval(tm)
		require.NoError(t, err)
		assert.Equal(t, 8, v)
	})

	tests := []struct {
		name string
		term *Term
		want error
	}{
		{"non-positive", &Term{Op: Sub, Args: []*Term{n(3), n(5)}, Value: -2}, ErrNonPositive},
		{"zero", &Term{Op: Sub, Args: []*Term{n(3), n(3)}, Value: 0}, ErrNonPositive},
		{"inexact", &Term{Op: Div, Args: []*Term{n(7), n(2)}, Value: 3}, ErrInexact},
		{"ternary sub", &Term{Op: Sub, Args: []*Term{n(9), n(2), n(3)}, Value: 4}, ErrArity},
		{"unary add", &Term{Op: Add, Args: []*Term{n(9)}, Value: 9}, ErrArity},
		{"stale value", &Term{Op: Add, Args: []*Term{n(1), n(2)}, Value: 4}, ErrValue},
		{"zero leaf", n(0), ErrNonPositive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Eval(tt.term)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func ExampleRender() {
	sum := &Term{Op: Add, Args: []*Term{NewLeaf(9), NewLeaf(50)}, Value: 59}
	prod := &Term{Op: Mul, Args: []*Term{NewLeaf(7), sum}, Value: 413}
	fmt.Println(Render(prod))
	// Output: 7*(9+50)
}
