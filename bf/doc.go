// Package bf offers facilities to build, evaluate and parse propositional formulas.
//
// Formulas are immutable trees made of named variables and the usual connectives:
// negation, implication, disjunction, conjunction, exclusive or and equivalence.
// Variables are interned by a Scope, so that two references to the same name in
// the same scope share the same handle.
//
// Formulas are evaluated against an explicit Model, associating each variable name
// with its binding. Nothing is stored on the variables themselves, so a formula can
// safely be evaluated under several models concurrently.
//
// For example, the following formula:
//
// ((a -> b) -> ((!b) -> (!a)))
//
// Will be defined with the following code:
//
//	s := NewScope()
//	a, b := s.Lit("a"), s.Lit("b")
//	f := Implies(Implies(a, b), Implies(Not(b), Not(a)))
//
// and f.IsTautology() returns true.
//
// The same formula can be read from its textual form with Parse. The grammar is
// fully parenthesized:
//
//	formula := identifier | '(' formula op formula ')' | '(' '!' formula ')' | '(' formula ')'
//	op      := '->' | '&' | '|' | '^' | '<->'
//
// Implication and negation form the primitive basis used by proof construction.
// Primitive rewrites the other binary connectives in terms of that basis.
package bf
