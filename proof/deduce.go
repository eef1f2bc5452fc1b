package proof

import (
	"fmt"

	"github.com/crillab/gopherproof/bf"
)

// Deduce implements the deduction theorem.
// Given a ledger proving G from gamma ∪ {f}, it returns a ledger proving f -> G from gamma.
//
// Each step Fi of in is transformed, in order, into a proof of f -> Fi:
//
//   - if Fi is an axiom or belongs to gamma: Fi, A1(Fi, f) and modus ponens,
//   - if Fi equals f: the proof of f -> f given by TheoremL,
//   - if Fi was obtained by modus ponens from Fr and Fr -> Fi: A2(f, Fr, Fi) and two
//     modus ponens with the already transformed f -> (Fr -> Fi) and f -> Fr.
//
// Fi itself is written again in the first case, so that every step of the result refers
// to steps of the result: an axiom thus gives three steps, not two. A hypothesis of gamma
// already written is referred to instead of being repeated.
//
// Any other step makes the ledger malformed and an error is returned.
func Deduce(gamma []*bf.Formula, f *bf.Formula, in *Ledger) (*Ledger, error) {
	if in.Len() == 0 {
		return nil, fmt.Errorf("%w: nothing to deduce from an empty ledger", ErrMalformedLedger)
	}
	hyps := newFormulaSet(gamma)
	out := New()
	image := make([]int, in.Len()) // Index in out of f -> Fi
	for i, s := range in.steps {
		fi := s.Formula
		switch {
		case s.Rule == Axiom || hyps.has(fi):
			var j int
			if s.Rule == Axiom {
				j = out.Append(s)
			} else if k, ok := out.Find(fi); ok {
				j = k
			} else {
				j = out.Hypothesis(fi)
			}
			a1 := out.Axiom(SchemeA1, fi, f)
			image[i] = out.mustMP(j, a1)
		case fi.Equal(f):
			image[i] = out.Include(TheoremL(f))
		case s.Rule == Inferred:
			r, ri := s.Premises[0], s.Premises[1]
			if r >= i || ri >= i || r < 0 || ri < 0 {
				return nil, fmt.Errorf("%w: step %d (%s) uses premises %d and %d", ErrMalformedLedger, i, fi, r, ri)
			}
			a2 := out.Axiom(SchemeA2, f, in.steps[r].Formula, fi)
			m, err := out.MP(image[ri], a2)
			if err != nil {
				return nil, fmt.Errorf("%w: step %d (%s): %v", ErrMalformedLedger, i, fi, err)
			}
			if image[i], err = out.MP(image[r], m); err != nil {
				return nil, fmt.Errorf("%w: step %d (%s): %v", ErrMalformedLedger, i, fi, err)
			}
		default:
			return nil, fmt.Errorf("%w: step %d (%s) is an undeclared %s", ErrMalformedLedger, i, fi, s.Rule)
		}
	}
	return out, nil
}

// formulaSet is a set of formulas, compared structurally.
type formulaSet map[uint64][]*bf.Formula

func newFormulaSet(forms []*bf.Formula) formulaSet {
	set := make(formulaSet, len(forms))
	for _, f := range forms {
		set.add(f)
	}
	return set
}

func (set formulaSet) add(f *bf.Formula) {
	if !set.has(f) {
		set[f.Hash()] = append(set[f.Hash()], f)
	}
}

func (set formulaSet) has(f *bf.Formula) bool {
	for _, g := range set[f.Hash()] {
		if g.Equal(f) {
			return true
		}
	}
	return false
}
