package adequacy

import (
	"fmt"

	"github.com/crillab/gopherproof/bf"
	"github.com/crillab/gopherproof/proof"
)

// Kalmar returns a proof of f.Signed(model) whose only hypotheses are literals of model.
// Formulas using other connectives than negation and implication are first rewritten
// with bf.Primitive: the last step then proves the signed primitive form of f.
func Kalmar(f *bf.Formula, model bf.Model) (*proof.Ledger, error) {
	for _, v := range f.Vars() {
		if _, ok := model[v.Name()]; !ok {
			return nil, fmt.Errorf("no value for variable %s in model", v.Name())
		}
	}
	l := proof.New()
	k := kalmar{l: l, model: model}
	if i := k.prove(bf.Primitive(f)); i != l.Len()-1 {
		// The proof ended on a step proved earlier: repeat it so that it comes last.
		l.Append(l.Step(i))
	}
	return l, nil
}

type kalmar struct {
	l     *proof.Ledger
	model bf.Model
}

// prove appends a proof of f.Signed(k.model) to k.l and returns its index.
// f must be primitive.
func (k *kalmar) prove(f *bf.Formula) int {
	l := k.l
	switch f.Op() {
	case bf.OpPass:
		lit := f.Signed(k.model)
		if i, ok := l.Find(lit); ok {
			return i
		}
		return l.Hypothesis(lit)
	case bf.OpNot:
		g := f.Operand()
		i := k.prove(g)
		if !g.Eval(k.model) {
			// signed(!g) is !g, i.e. signed(g).
			return i
		}
		t2 := l.Include(proof.T2(g)) // g -> (!!g)
		return mustMP(l, i, t2)
	case bf.OpImplies:
		g, h := f.Left(), f.Right()
		switch {
		case !g.Eval(k.model):
			i := k.prove(g)                 // !g
			t3 := l.Include(proof.T3(g, h)) // (!g) -> (g -> h)
			return mustMP(l, i, t3)
		case h.Eval(k.model):
			i := k.prove(h)                     // h
			a1 := l.Axiom(proof.SchemeA1, h, g) // h -> (g -> h)
			return mustMP(l, i, a1)
		default:
			i := k.prove(g)                 // g
			j := k.prove(h)                 // !h
			t6 := l.Include(proof.T6(g, h)) // g -> ((!h) -> (!(g -> h)))
			m := mustMP(l, i, t6)
			return mustMP(l, j, m)
		}
	default:
		panic(fmt.Errorf("%s is not primitive", f))
	}
}

func mustMP(l *proof.Ledger, ante, impl int) int {
	i, err := l.MP(ante, impl)
	if err != nil {
		panic(fmt.Errorf("invalid derivation: %w", err))
	}
	return i
}
