package bf

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// To each expression, associate the expected string representation.
var exprToFormula = map[string]string{
	"foo":                      "foo",
	"  foo  ":                  "foo",
	"(foo)":                    "foo",
	"((foo))":                  "foo",
	"(!foo)":                   "(!foo)",
	"(!(!foo))":                "(!(!foo))",
	"(a -> b)":                 "(a -> b)",
	"(a->b)":                   "(a -> b)",
	"(a | b)":                  "(a | b)",
	"(a & b)":                  "(a & b)",
	"(a ^ b)":                  "(a ^ b)",
	"(a <-> b)":                "(a <-> b)",
	"((!x1) -> (x2 -> (!x3)))": "((!x1) -> (x2 -> (!x3)))",
	"(A -> (!(!A)))":           "(A -> (!(!A)))",
	"((a & (b | c)) <-> _d)":   "((a & (b | c)) <-> _d)",
	"(((A -> B) -> A) -> A)":   "(((A -> B) -> A) -> A)",
}

func TestParse(t *testing.T) {
	for expr, expected := range exprToFormula {
		f, err := ParseString(NewScope(), expr)
		if assert.NoError(t, err, "could not parse expression %q", expr) {
			assert.Equal(t, expected, f.String(), "for expression %q", expr)
		}
	}
}

var invalidExprs = []string{
	"",
	"(",
	"()",
	"a b",
	"(a -> b",
	"a -> b",
	"(a - > b)",
	"(a < -> b)",
	"(a => b)",
	"(a -> b))",
	"!a",
	"(!a b)",
	"1a",
	"(a -> 2)",
	"(é -> a)",
	"(a -> b -> c)",
}

func TestParseErrors(t *testing.T) {
	for _, expr := range invalidExprs {
		_, err := ParseString(NewScope(), expr)
		var perr *ParseError
		if assert.Error(t, err, "expression %q should not parse", expr) {
			assert.True(t, errors.As(err, &perr), "expected a *ParseError for %q, got %T", expr, err)
		}
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := ParseString(NewScope(), "(a -> b) c")
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 9, perr.Offset)
	assert.Equal(t, "c", perr.Token)
}

func TestParseInterning(t *testing.T) {
	s := NewScope()
	f, err := ParseString(s, "(x -> (y -> x))")
	require.NoError(t, err)
	assert.Same(t, s.Var("x"), f.Left().Var())
	assert.Same(t, f.Left(), f.Right().Right())
	assert.Equal(t, 2, s.Len())
}

func TestRoundTrip(t *testing.T) {
	s := NewScope()
	a, b, c := s.Lit("a"), s.Lit("b"), s.Lit("c")
	forms := []*Formula{
		a,
		Not(Not(a)),
		Implies(Implies(a, b), Implies(Not(b), Not(a))),
		Eq(Xor(a, b), Or(And(a, Not(b)), And(Not(a), b))),
		Implies(Or(a, c), Not(Eq(b, c))),
	}
	for _, f := range forms {
		g, err := ParseString(NewScope(), f.String())
		require.NoError(t, err)
		assert.True(t, f.Equal(g), "round trip of %s gave %s", f, g)
	}
}

func ExampleParse() {
	expr := "((a & (!b)) -> (a | b))"
	f, err := Parse(NewScope(), strings.NewReader(expr))
	if err != nil {
		fmt.Printf("Could not parse expression %q: %v", expr, err)
	} else {
		fmt.Printf("%s has %d variables and %d connectives, tautology: %t", f, len(f.Vars()), f.Ops(), f.IsTautology())
	}
	// Output:
	// ((a & (!b)) -> (a | b)) has 2 variables and 4 connectives, tautology: true
}
