package proof

import (
	"fmt"

	"github.com/crillab/gopherproof/bf"
)

// Every theorem below returns a ledger without hypotheses whose last step is the theorem.
// They only rely on axioms, modus ponens, Deduce and the theorems and rules defined before them.

// TheoremL proves f -> f.
func TheoremL(f *bf.Formula) *Ledger {
	ff := bf.Implies(f, f)
	l := New()
	a2 := l.Axiom(SchemeA2, f, ff, f) // (f -> ((f -> f) -> f)) -> ((f -> (f -> f)) -> (f -> f))
	a1 := l.Axiom(SchemeA1, f, ff)    // f -> ((f -> f) -> f)
	m := l.mustMP(a1, a2)             // (f -> (f -> f)) -> (f -> f)
	a1b := l.Axiom(SchemeA1, f, f)    // f -> (f -> f)
	l.mustMP(a1b, m)
	return l
}

// RuleS1 derives F -> H from the hypotheses fg (F -> G) and gh (G -> H).
func RuleS1(fg, gh *bf.Formula) (*Ledger, error) {
	if !fg.IsImplication() || !gh.IsImplication() || !fg.Right().Equal(gh.Left()) {
		return nil, fmt.Errorf("%w: cannot apply S1 to %s and %s", ErrRuleMismatch, fg, gh)
	}
	f := fg.Left()
	l := New()
	hf := l.Hypothesis(f)
	hfg := l.Hypothesis(fg)
	hgh := l.Hypothesis(gh)
	g := l.mustMP(hf, hfg)
	l.mustMP(g, hgh)
	return Deduce([]*bf.Formula{fg, gh}, f, l)
}

// RuleS2 derives F -> H from the hypotheses fgh (F -> (G -> H)) and g (G).
func RuleS2(fgh, g *bf.Formula) (*Ledger, error) {
	if !fgh.IsImplication() || !fgh.Right().IsImplication() || !fgh.Right().Left().Equal(g) {
		return nil, fmt.Errorf("%w: cannot apply S2 to %s and %s", ErrRuleMismatch, fgh, g)
	}
	f := fgh.Left()
	l := New()
	hf := l.Hypothesis(f)
	hg := l.Hypothesis(g)
	hfgh := l.Hypothesis(fgh)
	gh := l.mustMP(hf, hfgh)
	l.mustMP(hg, gh)
	return Deduce([]*bf.Formula{fgh, g}, f, l)
}

// T1 proves (!(!f)) -> f.
func T1(f *bf.Formula) *Ledger {
	nf := bf.Not(f)
	nnf := bf.Not(nf)
	l := New()
	a3 := l.Axiom(SchemeA3, nf, f)   // ((!f) -> (!!f)) -> (((!f) -> (!f)) -> f)
	lf := l.Include(TheoremL(nf))    // (!f) -> (!f)
	s2 := l.mustS2(a3, lf)           // ((!f) -> (!!f)) -> f
	a1 := l.Axiom(SchemeA1, nnf, nf) // (!!f) -> ((!f) -> (!!f))
	l.mustS1(a1, s2)
	return l
}

// T2 proves f -> (!(!f)).
func T2(f *bf.Formula) *Ledger {
	nf := bf.Not(f)
	nnf := bf.Not(nf)
	l := New()
	a3 := l.Axiom(SchemeA3, f, nnf)         // ((!!!f) -> (!f)) -> (((!!!f) -> f) -> (!!f))
	t1 := l.Include(T1(nf))                 // (!!!f) -> (!f)
	m := l.mustMP(t1, a3)                   // ((!!!f) -> f) -> (!!f)
	a1 := l.Axiom(SchemeA1, f, bf.Not(nnf)) // f -> ((!!!f) -> f)
	l.mustS1(a1, m)
	return l
}

// T3 proves (!f) -> (f -> g): anything follows from a contradiction.
func T3(f, g *bf.Formula) *Ledger {
	nf, ng := bf.Not(f), bf.Not(g)
	l := New()
	hnf := l.Hypothesis(nf)
	hf := l.Hypothesis(f)
	a1 := l.Axiom(SchemeA1, f, ng)   // f -> ((!g) -> f)
	m1 := l.mustMP(hf, a1)           // (!g) -> f
	a1b := l.Axiom(SchemeA1, nf, ng) // (!f) -> ((!g) -> (!f))
	m2 := l.mustMP(hnf, a1b)         // (!g) -> (!f)
	a3 := l.Axiom(SchemeA3, f, g)    // ((!g) -> (!f)) -> (((!g) -> f) -> g)
	m3 := l.mustMP(m2, a3)           // ((!g) -> f) -> g
	l.mustMP(m1, m3)
	d := mustDeduce([]*bf.Formula{nf}, f, l)
	return mustDeduce(nil, nf, d)
}

// T4 proves ((!g) -> (!f)) -> (f -> g).
func T4(f, g *bf.Formula) *Ledger {
	ngnf := bf.Implies(bf.Not(g), bf.Not(f))
	l := New()
	a3 := l.Axiom(SchemeA3, f, g)         // ((!g) -> (!f)) -> (((!g) -> f) -> g)
	h := l.Hypothesis(ngnf)               // (!g) -> (!f)
	m := l.mustMP(h, a3)                  // ((!g) -> f) -> g
	a1 := l.Axiom(SchemeA1, f, bf.Not(g)) // f -> ((!g) -> f)
	l.mustS1(a1, m)
	return mustDeduce(nil, ngnf, l)
}

// T5 proves (f -> g) -> ((!g) -> (!f)).
func T5(f, g *bf.Formula) *Ledger {
	fg := bf.Implies(f, g)
	nf, ng := bf.Not(f), bf.Not(g)
	nnf := bf.Not(nf)
	l := New()
	a3 := l.Axiom(SchemeA3, ng, nf) // ((!!f) -> (!!g)) -> (((!!f) -> (!g)) -> (!f))
	h := l.Hypothesis(fg)
	t2 := l.Include(T2(g))           // g -> (!!g)
	s := l.mustS1(h, t2)             // f -> (!!g)
	t1 := l.Include(T1(f))           // (!!f) -> f
	s2 := l.mustS1(t1, s)            // (!!f) -> (!!g)
	m := l.mustMP(s2, a3)            // ((!!f) -> (!g)) -> (!f)
	a1 := l.Axiom(SchemeA1, ng, nnf) // (!g) -> ((!!f) -> (!g))
	l.mustS1(a1, m)
	return mustDeduce(nil, fg, l)
}

// T6 proves f -> ((!g) -> (!(f -> g))).
func T6(f, g *bf.Formula) *Ledger {
	fg := bf.Implies(f, g)
	l := New()
	l.Hypothesis(f)
	t5 := l.Include(T5(fg, g)) // ((f -> g) -> g) -> ((!g) -> (!(f -> g)))
	inner := New()
	hf := inner.Hypothesis(f)
	hfg := inner.Hypothesis(fg)
	inner.mustMP(hf, hfg)
	d := l.Include(mustDeduce([]*bf.Formula{f}, fg, inner)) // (f -> g) -> g
	l.mustMP(d, t5)
	return mustDeduce(nil, f, l)
}

// T7 proves (f -> g) -> (((!f) -> g) -> g): g holds in both cases.
func T7(f, g *bf.Formula) *Ledger {
	fg := bf.Implies(f, g)
	l := New()
	h := l.Hypothesis(fg)
	t5 := l.Include(T5(f, g))                  // (f -> g) -> ((!g) -> (!f))
	a3 := l.Axiom(SchemeA3, f, g)              // ((!g) -> (!f)) -> (((!g) -> f) -> g)
	s := l.mustS1(t5, a3)                      // (f -> g) -> (((!g) -> f) -> g)
	m := l.mustMP(h, s)                        // ((!g) -> f) -> g
	t4 := l.Include(T4(bf.Not(g), f))          // ((!f) -> (!!g)) -> ((!g) -> f)
	lm := l.Include(doubleNegationLemma(f, g)) // ((!f) -> g) -> ((!f) -> (!!g))
	s2 := l.mustS1(lm, t4)                     // ((!f) -> g) -> ((!g) -> f)
	l.mustS1(s2, m)
	return mustDeduce(nil, fg, l)
}

// doubleNegationLemma proves ((!f) -> g) -> ((!f) -> (!(!g))).
func doubleNegationLemma(f, g *bf.Formula) *Ledger {
	nf := bf.Not(f)
	nfg := bf.Implies(nf, g)
	l := New()
	h1 := l.Hypothesis(nf)
	h2 := l.Hypothesis(nfg)
	hg := l.mustMP(h1, h2) // g
	t2 := l.Include(T2(g)) // g -> (!!g)
	l.mustMP(hg, t2)
	d := mustDeduce([]*bf.Formula{nfg}, nf, l)
	return mustDeduce(nil, nfg, d)
}

func mustDeduce(gamma []*bf.Formula, f *bf.Formula, l *Ledger) *Ledger {
	res, err := Deduce(gamma, f, l)
	if err != nil {
		panic(fmt.Errorf("invalid derivation: %w", err))
	}
	return res
}
