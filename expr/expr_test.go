package expr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Axion/builtin"
	"Axion/expr"
	"Axion/parser"
)

func TestString_Leaves(t *testing.T) {
	assert.Equal(t, "2", expr.Number{Value: 2}.String())
	assert.Equal(t, "2.5", expr.Number{Value: 2.5}.String())
	assert.Equal(t, "π", expr.Constant{Glyph: 'π'}.String())
	assert.Equal(t, "", expr.EmptyExpression{}.String())
	assert.Equal(t, "inf", expr.Infinity{}.String())
	assert.Equal(t, "-inf", expr.Infinity{Negative: true}.String())
	assert.Equal(t, "undef", expr.UndefinedExpr{}.String())
	assert.Equal(t, "x", expr.Symbol{Name: "x"}.String())
}

func TestString_Composite(t *testing.T) {
	a := expr.Addition{Left: expr.Number{Value: 1}, Right: expr.Number{Value: 2}}
	assert.Equal(t, "1+2", a.String())

	m := expr.Multiplication{Left: expr.Number{Value: 2}, Right: expr.Symbol{Name: "x"}}
	assert.Equal(t, "2*x", m.String())

	p := expr.Power{Left: expr.Symbol{Name: "a"}, Right: expr.Symbol{Name: "b"}}
	assert.Equal(t, "a^b", p.String())

	f := expr.Function{Name: "square", Arg: expr.Symbol{Name: "x"}}
	assert.Equal(t, "square(x)", f.String())

	s := expr.Store{Value: expr.Number{Value: 10}, Target: expr.Symbol{Name: "x"}}
	assert.Equal(t, "10→x", s.String())

	l := expr.Logarithm{Argument: expr.Number{Value: 8}, Base: expr.Number{Value: 2}}
	assert.Equal(t, "log_{2}(8)", l.String())

	b := expr.BuiltinCall{Name: "pow", Args: []expr.Expression{expr.Number{Value: 2}, expr.Number{Value: 3}}}
	assert.Equal(t, "pow(2,3)", b.String())

	mat := expr.Matrix{Rows: 2, Cols: 2, Children: []expr.Expression{
		expr.Number{Value: 1}, expr.Number{Value: 2}, expr.Number{Value: 3}, expr.Number{Value: 4},
	}}
	assert.Equal(t, "[[1,2][3,4]]", mat.String())
}

func TestEqual_DistinguishesVariantsAndFields(t *testing.T) {
	assert.True(t, expr.Number{Value: 2}.Equal(expr.Number{Value: 2}))
	assert.False(t, expr.Number{Value: 2}.Equal(expr.Number{Value: 3}))
	assert.False(t, expr.Number{Value: 2}.Equal(expr.Symbol{Name: "2"}))

	assert.True(t, expr.Symbol{Name: "x"}.Equal(expr.Symbol{Name: "x"}))
	assert.False(t, expr.Symbol{Name: "x"}.Equal(expr.Symbol{Name: "y"}))

	a1 := expr.Addition{Left: expr.Number{Value: 1}, Right: expr.Number{Value: 2}}
	a2 := expr.Addition{Left: expr.Number{Value: 1}, Right: expr.Number{Value: 2}}
	a3 := expr.Addition{Left: expr.Number{Value: 1}, Right: expr.Number{Value: 3}}
	assert.True(t, a1.Equal(a2))
	assert.False(t, a1.Equal(a3))

	// Addition vs Subtraction with identical children are not equal.
	sub := expr.Subtraction{Left: expr.Number{Value: 1}, Right: expr.Number{Value: 2}}
	assert.False(t, a1.Equal(sub))

	m1 := expr.Matrix{Rows: 1, Cols: 2, Children: []expr.Expression{expr.Number{Value: 1}, expr.Number{Value: 2}}}
	m2 := expr.Matrix{Rows: 1, Cols: 2, Children: []expr.Expression{expr.Number{Value: 1}, expr.Number{Value: 2}}}
	m3 := expr.Matrix{Rows: 2, Cols: 1, Children: []expr.Expression{expr.Number{Value: 1}, expr.Number{Value: 2}}}
	assert.True(t, m1.Equal(m2))
	assert.False(t, m1.Equal(m3), "same children, different shape must differ")

	b1 := expr.BuiltinCall{Name: "max", Args: []expr.Expression{expr.Number{Value: 1}, expr.Number{Value: 2}}}
	b2 := expr.BuiltinCall{Name: "min", Args: []expr.Expression{expr.Number{Value: 1}, expr.Number{Value: 2}}}
	assert.False(t, b1.Equal(b2), "same args, different name must differ")
}

// TestRoundTrip drives spec.md §8 Invariant 10 (parse(String(e)) ≡ e)
// through the actual parser: parse src, print the tree, reparse the
// printed text, and assert the two trees are structurally Equal.
func TestRoundTrip(t *testing.T) {
	reg := builtin.New()

	cases := []string{
		"2+3*4",
		"-2^2",
		"a^b^c",
		"(1+2)*3",
		"x+1→g",
		"square(x)→f(x)",
		"log_{2}(8)",
		"pow(2,3)",
		"sin(30)",
		"[[1,2][3,4]]",
		"5!",
		"a-b-c",
	}

	for _, src := range cases {
		t.Run(src, func(t *testing.T) {
			first, status, err := parser.Parse(src, reg)
			require.NoError(t, err)
			require.Equal(t, parser.Success, status)

			printed := first.String()
			second, status, err := parser.Parse(printed, reg)
			require.NoErrorf(t, err, "reparsing printed form %q", printed)
			require.Equal(t, parser.Success, status)

			assert.Truef(t, first.Equal(second),
				"parse(String(e)) != e: src=%q printed=%q first=%q second=%q",
				src, printed, first.String(), second.String())
		})
	}
}
