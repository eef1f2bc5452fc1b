package bf

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeInterning(t *testing.T) {
	s := NewScope()
	a1 := s.Var("a")
	a2 := s.Var("a")
	require.Same(t, a1, a2)
	assert.Same(t, a1.Formula(), s.Lit("a"))
	assert.NotSame(t, a1, s.Var("A"), "names are case-sensitive")
	assert.Equal(t, 2, s.Len())
	assert.Panics(t, func() { s.Var("1a") })
	assert.Panics(t, func() { s.Var("") })
}

func TestIsIdentifier(t *testing.T) {
	for name, expected := range map[string]bool{
		"x":        true,
		"x1":       true,
		"_new_var": true,
		"Foo_42":   true,
		"":         false,
		"1x":       false,
		"a-b":      false,
		"été":      false,
	} {
		assert.Equal(t, expected, IsIdentifier(name), "IsIdentifier(%q)", name)
	}
}

func TestString(t *testing.T) {
	s := NewScope()
	a, b, c := s.Lit("a"), s.Lit("b"), s.Lit("c")
	f := And(Or(a, Not(b)), Implies(Not(c), Eq(a, Xor(b, c))))
	const expected = "((a | (!b)) & ((!c) -> (a <-> (b ^ c))))"
	assert.Equal(t, expected, f.String())
	assert.Equal(t, "a", a.String())
}

func TestNew(t *testing.T) {
	s := NewScope()
	a, b := s.Lit("a"), s.Lit("b")

	f, err := New(OpImplies, a, b)
	require.NoError(t, err)
	assert.True(t, f.Equal(Implies(a, b)))

	_, err = New(Connective(42), a, b)
	assert.ErrorIs(t, err, ErrInvalidConnective)
	_, err = New(OpPass, a)
	assert.ErrorIs(t, err, ErrInvalidConnective)
	_, err = New(OpNot, a, b)
	assert.ErrorIs(t, err, ErrArityMismatch)
	_, err = New(OpAnd, a)
	assert.ErrorIs(t, err, ErrArityMismatch)
	_, err = New(OpOr, a, nil)
	assert.ErrorIs(t, err, ErrArityMismatch)
}

func TestEval(t *testing.T) {
	s := NewScope()
	a, b := s.Lit("a"), s.Lit("b")
	tests := []struct {
		op    Connective
		table [4]bool // Values for ab = 00, 01, 10, 11
	}{
		{OpImplies, [4]bool{true, true, false, true}},
		{OpOr, [4]bool{false, true, true, true}},
		{OpAnd, [4]bool{false, false, false, true}},
		{OpXor, [4]bool{false, true, true, false}},
		{OpEq, [4]bool{true, false, false, true}},
	}
	vars := []*Var{a.Var(), b.Var()}
	for _, test := range tests {
		t.Run(test.op.String(), func(t *testing.T) {
			f, err := New(test.op, a, b)
			require.NoError(t, err)
			for mask := uint64(0); mask < 4; mask++ {
				model := ModelOf(vars, mask)
				assert.Equal(t, test.table[mask], f.Eval(model), "model %s", BitString(vars, model))
			}
		})
	}
	assert.True(t, Not(a).Eval(Model{"a": false}))
	assert.Panics(t, func() { a.Eval(Model{"b": true}) })
}

func TestEqual(t *testing.T) {
	s1, s2 := NewScope(), NewScope()
	f1 := Implies(s1.Lit("a"), Not(s1.Lit("b")))
	f2 := Implies(s2.Lit("a"), Not(s2.Lit("b")))
	assert.True(t, f1.Equal(f2))
	assert.Equal(t, f1.Hash(), f2.Hash())
	assert.False(t, f1.Equal(Implies(s1.Lit("b"), Not(s1.Lit("a")))))
	assert.False(t, f1.Equal(Or(s1.Lit("a"), Not(s1.Lit("b")))))
	assert.False(t, f1.Equal(nil))

	v := s1.Var("a")
	assert.True(t, v.Formula().Equal(s2.Lit("a")), "a variable equals the formula made of it")
}

func TestVarsAndOps(t *testing.T) {
	s := NewScope()
	a, b, c := s.Lit("a"), s.Lit("b"), s.Lit("c")
	f := Implies(Implies(b, a), Not(Implies(a, c)))
	names := make([]string, 0, 3)
	for _, v := range f.Vars() {
		names = append(names, v.Name())
	}
	assert.Equal(t, []string{"b", "a", "c"}, names)
	assert.Equal(t, 4, f.Ops())
	assert.Equal(t, 0, a.Ops())
	assert.Len(t, Implies(a, a).Vars(), 1)
}

func TestTautology(t *testing.T) {
	s := NewScope()
	a, b := s.Lit("A"), s.Lit("B")
	assert.True(t, Implies(a, Implies(b, a)).IsTautology())
	assert.False(t, Implies(a, b).IsTautology())
	assert.True(t, Or(a, Not(a)).IsTautology())
	assert.False(t, And(a, Not(a)).IsTautology())
	peirce := Implies(Implies(Implies(a, b), a), a)
	assert.True(t, peirce.IsTautology())
}

func TestTautologyMemoized(t *testing.T) {
	s := NewScope()
	a, b, c := s.Lit("a"), s.Lit("b"), s.Lit("c")
	f := Implies(Implies(a, b), Implies(Implies(b, c), Implies(a, c)))
	require.True(t, f.IsTautology())
	assert.EqualValues(t, 8, f.Evaluations())
	require.True(t, f.IsTautology())
	assert.EqualValues(t, 8, f.Evaluations(), "second call must not evaluate the formula again")

	g := Implies(a, b)
	require.False(t, g.IsTautology())
	n := g.Evaluations()
	assert.Less(t, n, int64(4), "enumeration stops on the first falsifying model")
	require.False(t, g.IsTautology())
	assert.Equal(t, n, g.Evaluations())
}

// conjunction returns (x0 & (x1 & ... x{n-1})).
func conjunction(n int) string {
	expr := fmt.Sprintf("x%d", n-1)
	for i := n - 2; i >= 0; i-- {
		expr = fmt.Sprintf("(x%d & %s)", i, expr)
	}
	return expr
}

func TestTautologyTooManyVariables(t *testing.T) {
	f, err := ParseString(NewScope(), conjunction(MaxModelVariables+1))
	require.NoError(t, err)
	require.Len(t, f.Vars(), 64)
	_, err = f.Tautology(context.Background())
	assert.ErrorIs(t, err, ErrTooManyVariables)
	assert.Panics(t, func() { f.IsTautology() })
	assert.Zero(t, f.Evaluations())

	g, err := ParseString(NewScope(), conjunction(MaxModelVariables))
	require.NoError(t, err)
	taut, err := g.Tautology(context.Background())
	require.NoError(t, err)
	assert.False(t, taut, "every variable is false in the first model")
	assert.EqualValues(t, 1, g.Evaluations())
}

func TestTautologyContext(t *testing.T) {
	f, err := ParseString(NewScope(), fmt.Sprintf("(%s -> x0)", conjunction(40)))
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	start := time.Now()
	_, err = f.Tautology(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)

	s := NewScope()
	a := s.Lit("a")
	g := Implies(a, a)
	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = g.Tautology(canceled)
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, g.IsTautology(), "interrupted enumerations are not cached")
}

func TestModelOf(t *testing.T) {
	s := NewScope()
	vars := []*Var{s.Var("x"), s.Var("y"), s.Var("z")}
	model := ModelOf(vars, 0b110)
	assert.Equal(t, Model{"x": true, "y": true, "z": false}, model)
	assert.Equal(t, "110", BitString(vars, model))
	lits := Literals(vars, model)
	require.Len(t, lits, 3)
	assert.Equal(t, "x", lits[0].String())
	assert.Equal(t, "(!z)", lits[2].String())
}

func TestSigned(t *testing.T) {
	s := NewScope()
	f := Implies(s.Lit("a"), s.Lit("b"))
	assert.Same(t, f, f.Signed(Model{"a": false, "b": false}))
	assert.Equal(t, "(!(a -> b))", f.Signed(Model{"a": true, "b": false}).String())
}

func TestPrimitive(t *testing.T) {
	s := NewScope()
	a, b, c := s.Lit("a"), s.Lit("b"), s.Lit("c")
	forms := []*Formula{
		Or(a, b),
		And(a, Not(b)),
		Eq(a, b),
		Xor(a, b),
		Implies(Xor(a, And(b, c)), Not(Eq(c, Or(a, b)))),
	}
	for _, f := range forms {
		t.Run(f.String(), func(t *testing.T) {
			p := Primitive(f)
			assert.True(t, IsPrimitive(p))
			vars := f.Vars()
			for mask := uint64(0); mask < 1<<uint(len(vars)); mask++ {
				model := ModelOf(vars, mask)
				assert.Equal(t, f.Eval(model), p.Eval(model), "model %s", BitString(vars, model))
			}
		})
	}
	prim := Implies(Not(a), Implies(b, a))
	assert.Same(t, prim, Primitive(prim))
	assert.Equal(t, "((!a) -> b)", Primitive(Or(a, b)).String())
	assert.Equal(t, "(!(a -> (!b)))", Primitive(And(a, b)).String())
}

func ExampleFormula_IsTautology() {
	s := NewScope()
	a, b := s.Lit("a"), s.Lit("b")
	contraposition := Implies(Implies(a, b), Implies(Not(b), Not(a)))
	fmt.Printf("%s: %t\n", contraposition, contraposition.IsTautology())
	converse := Implies(Implies(a, b), Implies(b, a))
	fmt.Printf("%s: %t\n", converse, converse.IsTautology())
	// Output:
	// ((a -> b) -> ((!b) -> (!a))): true
	// ((a -> b) -> (b -> a)): false
}
