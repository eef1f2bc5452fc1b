package proof

import (
	"fmt"

	"github.com/crillab/gopherproof/bf"
)

// A Rule is the justification of a step.
type Rule uint8

const (
	Hypothesis Rule = iota + 1
	Axiom
	Inferred // By modus ponens
)

func (r Rule) String() string {
	switch r {
	case Hypothesis:
		return "hypothesis"
	case Axiom:
		return "axiom"
	case Inferred:
		return "modus ponens"
	default:
		return fmt.Sprintf("Rule(%d)", uint8(r))
	}
}

// A Step is a justified formula of a ledger.
type Step struct {
	Formula *bf.Formula
	Rule    Rule
	// Scheme and Args are set for axioms: Formula is Scheme instantiated with Args.
	Scheme Scheme
	Args   []*bf.Formula
	// Premises are set for modus ponens: the indices, in the same ledger,
	// of the antecedent F and of the implication F -> Formula.
	Premises [2]int
}

// A Ledger is an ordered, append-only sequence of justified steps.
// The zero value is not usable; use New.
type Ledger struct {
	steps []Step
	index map[uint64][]int // Step indices by formula hash
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{index: make(map[uint64][]int)}
}

// Len returns the number of steps in l.
func (l *Ledger) Len() int { return len(l.steps) }

// Step returns the i-th step of l.
func (l *Ledger) Step(i int) Step { return l.steps[i] }

// Formula returns the formula of the i-th step of l.
func (l *Ledger) Formula(i int) *bf.Formula { return l.steps[i].Formula }

// Last returns the formula of the last step of l, or nil if l is empty.
func (l *Ledger) Last() *bf.Formula {
	if len(l.steps) == 0 {
		return nil
	}
	return l.steps[len(l.steps)-1].Formula
}

// Hypotheses returns the distinct formulas introduced as hypotheses in l.
func (l *Ledger) Hypotheses() []*bf.Formula {
	var res []*bf.Formula
	for _, s := range l.steps {
		if s.Rule != Hypothesis {
			continue
		}
		dup := false
		for _, h := range res {
			if h.Equal(s.Formula) {
				dup = true
				break
			}
		}
		if !dup {
			res = append(res, s.Formula)
		}
	}
	return res
}

// Append adds s to l as is and returns its index.
// No check is done; use Verify to validate a ledger built this way.
func (l *Ledger) Append(s Step) int {
	i := len(l.steps)
	l.steps = append(l.steps, s)
	h := s.Formula.Hash()
	l.index[h] = append(l.index[h], i)
	return i
}

// Find returns the index of the last step proving a formula equal to f.
func (l *Ledger) Find(f *bf.Formula) (int, bool) {
	idx := l.index[f.Hash()]
	for i := len(idx) - 1; i >= 0; i-- {
		if l.steps[idx[i]].Formula.Equal(f) {
			return idx[i], true
		}
	}
	return -1, false
}

// Hypothesis adds f as a hypothesis and returns its index.
func (l *Ledger) Hypothesis(f *bf.Formula) int {
	return l.Append(Step{Formula: f, Rule: Hypothesis})
}

// Axiom adds the instance of s with the given args and returns its index.
// It panics if the number of args does not match the scheme.
func (l *Ledger) Axiom(s Scheme, args ...*bf.Formula) int {
	f, err := s.Instance(args...)
	if err != nil {
		panic(err)
	}
	return l.Append(Step{Formula: f, Rule: Axiom, Scheme: s, Args: args})
}

// MP applies modus ponens to the steps ante (F) and impl (F -> G) and returns the index of G.
func (l *Ledger) MP(ante, impl int) (int, error) {
	if ante < 0 || ante >= len(l.steps) || impl < 0 || impl >= len(l.steps) {
		return -1, fmt.Errorf("%w: steps %d and %d out of range [0, %d)", ErrModusPonensMismatch, ante, impl, len(l.steps))
	}
	g, err := ModusPonens(l.steps[ante].Formula, l.steps[impl].Formula)
	if err != nil {
		return -1, err
	}
	return l.Append(Step{Formula: g, Rule: Inferred, Premises: [2]int{ante, impl}}), nil
}

// mustMP is MP for derivations whose shapes are known to match.
func (l *Ledger) mustMP(ante, impl int) int {
	i, err := l.MP(ante, impl)
	if err != nil {
		panic(fmt.Errorf("invalid derivation: %w", err))
	}
	return i
}

// Include appends the steps of sub to l and returns the index, in l, of the last step of sub.
// Hypotheses of sub that are already proved in l are not appended: steps depending on them
// refer to the existing proof instead. Other hypotheses are appended and remain open.
// If sub is empty, Include returns l.Len()-1.
func (l *Ledger) Include(sub *Ledger) int {
	remap := make([]int, len(sub.steps))
	last := len(l.steps) - 1
	for i, s := range sub.steps {
		switch s.Rule {
		case Hypothesis:
			if j, ok := l.Find(s.Formula); ok {
				remap[i] = j
			} else {
				remap[i] = l.Append(s)
			}
		case Inferred:
			s.Premises = [2]int{remap[s.Premises[0]], remap[s.Premises[1]]}
			remap[i] = l.Append(s)
		default:
			remap[i] = l.Append(s)
		}
		last = remap[i]
	}
	return last
}

// S1 applies the syllogism rule to the steps fg (F -> G) and gh (G -> H):
// it includes a derivation of F -> H in l and returns its index.
func (l *Ledger) S1(fg, gh int) (int, error) {
	sub, err := RuleS1(l.Formula(fg), l.Formula(gh))
	if err != nil {
		return -1, err
	}
	return l.Include(sub), nil
}

// S2 applies the second syllogism rule to the steps fgh (F -> (G -> H)) and g (G):
// it includes a derivation of F -> H in l and returns its index.
func (l *Ledger) S2(fgh, g int) (int, error) {
	sub, err := RuleS2(l.Formula(fgh), l.Formula(g))
	if err != nil {
		return -1, err
	}
	return l.Include(sub), nil
}

func (l *Ledger) mustS1(fg, gh int) int {
	i, err := l.S1(fg, gh)
	if err != nil {
		panic(fmt.Errorf("invalid derivation: %w", err))
	}
	return i
}

func (l *Ledger) mustS2(fgh, g int) int {
	i, err := l.S2(fgh, g)
	if err != nil {
		panic(fmt.Errorf("invalid derivation: %w", err))
	}
	return i
}
