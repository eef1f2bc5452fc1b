package proof

import (
	"errors"
	"fmt"

	"github.com/crillab/gopherproof/bf"
)

var (
	// ErrModusPonensMismatch is returned when modus ponens is applied to formulas of the wrong shape.
	ErrModusPonensMismatch = errors.New("modus ponens mismatch")
	// ErrRuleMismatch is returned when a derived rule is applied to formulas of the wrong shape.
	ErrRuleMismatch = errors.New("rule mismatch")
	// ErrMalformedLedger is returned when a ledger contains an unjustified step.
	ErrMalformedLedger = errors.New("malformed ledger")
)

// A Scheme is one of the three axiom schemes.
type Scheme uint8

const (
	SchemeA1 Scheme = iota + 1
	SchemeA2
	SchemeA3
)

func (s Scheme) String() string {
	switch s {
	case SchemeA1:
		return "A1"
	case SchemeA2:
		return "A2"
	case SchemeA3:
		return "A3"
	default:
		return fmt.Sprintf("Scheme(%d)", uint8(s))
	}
}

// Arity returns the number of formulas the scheme is instantiated with.
func (s Scheme) Arity() int {
	switch s {
	case SchemeA1, SchemeA3:
		return 2
	case SchemeA2:
		return 3
	default:
		return 0
	}
}

// Instance returns the axiom obtained by instantiating s with args.
func (s Scheme) Instance(args ...*bf.Formula) (*bf.Formula, error) {
	if s.Arity() == 0 {
		return nil, fmt.Errorf("unknown axiom scheme %d", uint8(s))
	}
	if len(args) != s.Arity() {
		return nil, fmt.Errorf("axiom %s expects %d formulas, got %d", s, s.Arity(), len(args))
	}
	for i, arg := range args {
		if arg == nil {
			return nil, fmt.Errorf("axiom %s: formula %d is nil", s, i)
		}
	}
	switch s {
	case SchemeA1:
		return A1(args[0], args[1]), nil
	case SchemeA2:
		return A2(args[0], args[1], args[2]), nil
	default:
		return A3(args[0], args[1]), nil
	}
}

// A1 returns f -> (g -> f).
func A1(f, g *bf.Formula) *bf.Formula {
	return bf.Implies(f, bf.Implies(g, f))
}

// A2 returns (f -> (g -> h)) -> ((f -> g) -> (f -> h)).
func A2(f, g, h *bf.Formula) *bf.Formula {
	return bf.Implies(
		bf.Implies(f, bf.Implies(g, h)),
		bf.Implies(bf.Implies(f, g), bf.Implies(f, h)),
	)
}

// A3 returns ((!g) -> (!f)) -> (((!g) -> f) -> g).
func A3(f, g *bf.Formula) *bf.Formula {
	ng := bf.Not(g)
	return bf.Implies(
		bf.Implies(ng, bf.Not(f)),
		bf.Implies(bf.Implies(ng, f), g),
	)
}

// ModusPonens returns g, given f and f -> g.
func ModusPonens(f, fg *bf.Formula) (*bf.Formula, error) {
	if !fg.IsImplication() {
		return nil, fmt.Errorf("%w: %s is not an implication", ErrModusPonensMismatch, fg)
	}
	if !fg.Left().Equal(f) {
		return nil, fmt.Errorf("%w: %s is not the antecedent of %s", ErrModusPonensMismatch, f, fg)
	}
	return fg.Right(), nil
}
