package proof

import (
	"fmt"

	"github.com/crillab/gopherproof/bf"
)

// Verify checks that every step of l is justified:
// axioms must be instances of their scheme, hypotheses must belong to hyps
// and modus ponens must refer to earlier steps of the right shape.
// The returned error, if any, wraps ErrMalformedLedger.
func Verify(l *Ledger, hyps ...*bf.Formula) error {
	allowed := newFormulaSet(hyps)
	for i, s := range l.steps {
		if s.Formula == nil {
			return fmt.Errorf("%w: step %d has no formula", ErrMalformedLedger, i)
		}
		switch s.Rule {
		case Hypothesis:
			if !allowed.has(s.Formula) {
				return fmt.Errorf("%w: step %d: undeclared hypothesis %s", ErrMalformedLedger, i, s.Formula)
			}
		case Axiom:
			inst, err := s.Scheme.Instance(s.Args...)
			if err != nil {
				return fmt.Errorf("%w: step %d: %v", ErrMalformedLedger, i, err)
			}
			if !inst.Equal(s.Formula) {
				return fmt.Errorf("%w: step %d: %s is not the %s instance %s", ErrMalformedLedger, i, s.Formula, s.Scheme, inst)
			}
		case Inferred:
			ante, impl := s.Premises[0], s.Premises[1]
			if ante < 0 || ante >= i || impl < 0 || impl >= i {
				return fmt.Errorf("%w: step %d uses premises %d and %d", ErrMalformedLedger, i, ante, impl)
			}
			g, err := ModusPonens(l.steps[ante].Formula, l.steps[impl].Formula)
			if err != nil {
				return fmt.Errorf("%w: step %d: %v", ErrMalformedLedger, i, err)
			}
			if !g.Equal(s.Formula) {
				return fmt.Errorf("%w: step %d: modus ponens yields %s, not %s", ErrMalformedLedger, i, g, s.Formula)
			}
		default:
			return fmt.Errorf("%w: step %d has an unknown rule %s", ErrMalformedLedger, i, s.Rule)
		}
	}
	return nil
}

// Proves returns true iff l is a valid proof of f from hyps.
func Proves(l *Ledger, f *bf.Formula, hyps ...*bf.Formula) bool {
	if l.Len() == 0 || !l.Last().Equal(f) {
		return false
	}
	return Verify(l, hyps...) == nil
}
