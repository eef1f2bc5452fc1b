package bf

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"strings"
	"sync"
	"sync/atomic"
)

var (
	// ErrInvalidConnective is returned when a formula is built with an unknown connective.
	ErrInvalidConnective = errors.New("invalid connective")
	// ErrArityMismatch is returned when the number of subformulas does not match the connective.
	ErrArityMismatch = errors.New("arity mismatch")
	// ErrTooManyVariables is returned when the models of a formula are too many to be enumerated.
	ErrTooManyVariables = errors.New("too many variables")
)

// MaxModelVariables is the maximum number of variables of a formula whose models can be enumerated.
const MaxModelVariables = 63

// A Connective is the main operator of a formula.
type Connective uint8

const (
	// OpPass is the identity connective, wrapping a single variable.
	OpPass Connective = iota
	OpNot
	OpImplies
	OpOr
	OpAnd
	OpXor
	OpEq
	nbConnectives
)

// Arity returns the number of subformulas the connective expects.
func (op Connective) Arity() int {
	switch op {
	case OpPass, OpNot:
		return 1
	case OpImplies, OpOr, OpAnd, OpXor, OpEq:
		return 2
	default:
		return -1
	}
}

// Binary returns true iff op is a binary connective.
func (op Connective) Binary() bool {
	return op.Arity() == 2
}

func (op Connective) String() string {
	switch op {
	case OpPass:
		return ""
	case OpNot:
		return "!"
	case OpImplies:
		return "->"
	case OpOr:
		return "|"
	case OpAnd:
		return "&"
	case OpXor:
		return "^"
	case OpEq:
		return "<->"
	default:
		return "?"
	}
}

func (op Connective) apply(a, b bool) bool {
	switch op {
	case OpPass:
		return a
	case OpNot:
		return !a
	case OpImplies:
		return !a || b
	case OpOr:
		return a || b
	case OpAnd:
		return a && b
	case OpXor:
		return a != b
	case OpEq:
		return a == b
	default:
		panic("invalid connective")
	}
}

// A Var is a named boolean variable.
// Vars are only created by a Scope; there is at most one Var per name in a given scope.
type Var struct {
	name string
	leaf *Formula
}

// Name returns the name of the variable.
func (v *Var) Name() string { return v.name }

// Formula returns the formula made of the sole variable v.
func (v *Var) Formula() *Formula { return v.leaf }

func (v *Var) String() string { return v.name }

// A Scope interns variables by name.
// It is safe for concurrent use.
type Scope struct {
	mu   sync.Mutex
	vars map[string]*Var
}

// NewScope returns an empty scope.
func NewScope() *Scope {
	return &Scope{vars: make(map[string]*Var)}
}

// Var returns the variable with the given name, creating it on first reference.
// It panics if name is not a valid identifier.
func (s *Scope) Var(name string) *Var {
	if !IsIdentifier(name) {
		panic(fmt.Errorf("invalid variable name %q", name))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.vars[name]; ok {
		return v
	}
	v := &Var{name: name}
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	v.leaf = &Formula{op: OpPass, v: v, vars: []*Var{v}, hash: h.Sum64()}
	s.vars[name] = v
	return v
}

// Lit is a shortcut for s.Var(name).Formula().
func (s *Scope) Lit(name string) *Formula {
	return s.Var(name).Formula()
}

// Len returns the number of variables interned so far.
func (s *Scope) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.vars)
}

// IsIdentifier returns true iff name matches [A-Za-z_][A-Za-z0-9_]*.
func IsIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if !isIdentRune(r, i) {
			return false
		}
	}
	return true
}

func isIdentRune(r rune, i int) bool {
	switch {
	case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return i > 0
	default:
		return false
	}
}

// A Model associates variable names with their binding.
type Model map[string]bool

// A Formula is an immutable propositional formula.
// Subformulas are shared, never copied, between formulas that reuse them.
type Formula struct {
	op   Connective
	v    *Var // Only for OpPass
	subs [2]*Formula
	vars []*Var // In order of first appearance, left to right
	ops  int
	hash uint64

	taut  atomic.Int32 // tautUnknown, tautTrue or tautFalse
	evals atomic.Int64
}

// New builds a formula with the given connective and subformulas.
// Variables are introduced through Scope.Var, so OpPass is not accepted here.
func New(op Connective, subs ...*Formula) (*Formula, error) {
	if op >= nbConnectives || op == OpPass {
		return nil, fmt.Errorf("%w: %d", ErrInvalidConnective, op)
	}
	if len(subs) != op.Arity() {
		return nil, fmt.Errorf("%w: %q expects %d subformulas, got %d", ErrArityMismatch, op, op.Arity(), len(subs))
	}
	for i, sub := range subs {
		if sub == nil {
			return nil, fmt.Errorf("%w: subformula %d of %q is nil", ErrArityMismatch, i, op)
		}
	}
	return build(op, subs...), nil
}

func build(op Connective, subs ...*Formula) *Formula {
	f := &Formula{op: op}
	h := uint64(op) + 1
	for i, sub := range subs {
		f.subs[i] = sub
		f.ops += sub.ops
		h = mix(h, sub.hash)
	}
	f.ops++
	f.hash = h
	if len(subs) == 1 {
		f.vars = subs[0].vars
	} else {
		f.vars = unionVars(subs[0].vars, subs[1].vars)
	}
	return f
}

func mix(h, x uint64) uint64 {
	h ^= x + 0x9e3779b97f4a7c15 + (h << 6) + (h >> 2)
	return h * 0x100000001b3
}

func unionVars(v1, v2 []*Var) []*Var {
	if len(v2) == 0 {
		return v1
	}
	res := make([]*Var, len(v1), len(v1)+len(v2))
	copy(res, v1)
	for _, v := range v2 {
		found := false
		for _, w := range v1 {
			if w.name == v.name {
				found = true
				break
			}
		}
		if !found {
			res = append(res, v)
		}
	}
	if len(res) == len(v1) {
		return v1
	}
	return res
}

// Not represents a negation. It negates the given subformula.
func Not(f *Formula) *Formula { return build(OpNot, f) }

// Implies indicates a subformula implies another one.
func Implies(f1, f2 *Formula) *Formula { return build(OpImplies, f1, f2) }

// Or generates the disjunction of two subformulas.
func Or(f1, f2 *Formula) *Formula { return build(OpOr, f1, f2) }

// And generates the conjunction of two subformulas.
func And(f1, f2 *Formula) *Formula { return build(OpAnd, f1, f2) }

// Xor indicates exactly one of the two given subformulas is true.
func Xor(f1, f2 *Formula) *Formula { return build(OpXor, f1, f2) }

// Eq indicates a subformula is equivalent to another one.
func Eq(f1, f2 *Formula) *Formula { return build(OpEq, f1, f2) }

// Op returns the main connective of f.
func (f *Formula) Op() Connective { return f.op }

// IsLeaf returns true iff f is a bare variable.
func (f *Formula) IsLeaf() bool { return f.op == OpPass }

// Var returns the variable of a leaf formula, or nil.
func (f *Formula) Var() *Var { return f.v }

// Operand returns the subformula of a negation.
func (f *Formula) Operand() *Formula { return f.subs[0] }

// Left returns the first subformula of a binary formula, i.e the antecedent of an implication.
func (f *Formula) Left() *Formula { return f.subs[0] }

// Right returns the second subformula of a binary formula, i.e the consequent of an implication.
func (f *Formula) Right() *Formula { return f.subs[1] }

// Vars returns the variables of f, in order of first appearance.
func (f *Formula) Vars() []*Var {
	res := make([]*Var, len(f.vars))
	copy(res, f.vars)
	return res
}

// Ops returns the number of connectives in f. It is 0 for a bare variable.
func (f *Formula) Ops() int { return f.ops }

// Hash returns a structural hash of f: equal formulas have equal hashes.
func (f *Formula) Hash() uint64 { return f.hash }

// Equal returns true iff f and g are structurally equal.
func (f *Formula) Equal(g *Formula) bool {
	if f == g {
		return true
	}
	if f == nil || g == nil || f.hash != g.hash || f.op != g.op || f.ops != g.ops {
		return false
	}
	if f.op == OpPass {
		return f.v.name == g.v.name
	}
	for i := 0; i < f.op.Arity(); i++ {
		if !f.subs[i].Equal(g.subs[i]) {
			return false
		}
	}
	return true
}

// IsImplication returns true iff f is an implication.
func (f *Formula) IsImplication() bool { return f.op == OpImplies }

func (f *Formula) String() string {
	var sb strings.Builder
	f.write(&sb)
	return sb.String()
}

func (f *Formula) write(sb *strings.Builder) {
	switch {
	case f.op == OpPass:
		sb.WriteString(f.v.name)
	case f.op == OpNot:
		sb.WriteString("(!")
		f.subs[0].write(sb)
		sb.WriteByte(')')
	default:
		sb.WriteByte('(')
		f.subs[0].write(sb)
		sb.WriteByte(' ')
		sb.WriteString(f.op.String())
		sb.WriteByte(' ')
		f.subs[1].write(sb)
		sb.WriteByte(')')
	}
}

// Eval evaluates f under the given model.
// It panics if the model lacks a binding for one of the variables of f.
func (f *Formula) Eval(model Model) bool {
	switch f.op {
	case OpPass:
		b, ok := model[f.v.name]
		if !ok {
			panic(fmt.Errorf("model lacks binding for variable %s", f.v.name))
		}
		return b
	case OpNot:
		return !f.subs[0].Eval(model)
	default:
		return f.op.apply(f.subs[0].Eval(model), f.subs[1].Eval(model))
	}
}

// Signed returns f if f is true under model, and !f else.
func (f *Formula) Signed(model Model) *Formula {
	if f.Eval(model) {
		return f
	}
	return Not(f)
}

const (
	tautUnknown int32 = iota
	tautTrue
	tautFalse
)

// ctxCheckPeriod is the number of models evaluated between two checks of the context.
const ctxCheckPeriod = 1 << 12

// IsTautology returns true iff f is true under every model of its variables.
// The result is computed once, enumerating all the models and stopping on the
// first falsifying one, and then cached.
// It panics if f has more than MaxModelVariables variables; Tautology returns an error instead.
func (f *Formula) IsTautology() bool {
	taut, err := f.Tautology(context.Background())
	if err != nil {
		panic(err)
	}
	return taut
}

// Tautology is like IsTautology, but stops the enumeration when ctx is done.
// It returns ErrTooManyVariables, without evaluating f, if f has more than
// MaxModelVariables variables. Interrupted enumerations are not cached.
func (f *Formula) Tautology(ctx context.Context) (bool, error) {
	switch f.taut.Load() {
	case tautTrue:
		return true, nil
	case tautFalse:
		return false, nil
	}
	if n := len(f.vars); n > MaxModelVariables {
		return false, fmt.Errorf("%w: %d variables, at most %d can be enumerated", ErrTooManyVariables, n, MaxModelVariables)
	}
	taut, err := f.checkTautology(ctx)
	if err != nil {
		return false, err
	}
	if taut {
		f.taut.Store(tautTrue)
	} else {
		f.taut.Store(tautFalse)
	}
	return taut, nil
}

// Evaluations returns the number of models IsTautology and Tautology evaluated f against.
func (f *Formula) Evaluations() int64 {
	return f.evals.Load()
}

func (f *Formula) checkTautology(ctx context.Context) (bool, error) {
	n := len(f.vars)
	model := make(Model, n)
	end := uint64(1) << uint(n)
	for mask := uint64(0); mask < end; mask++ {
		if mask%ctxCheckPeriod == 0 {
			if err := ctx.Err(); err != nil {
				return false, err
			}
		}
		bind(model, f.vars, mask)
		f.evals.Add(1)
		if !f.Eval(model) {
			return false, nil
		}
	}
	return true, nil
}

// ModelOf returns the model where vars[i] is bound to the bit n-1-i of mask,
// n being the number of vars. Reading the mask as a bit string thus gives
// the bindings in the order of vars.
func ModelOf(vars []*Var, mask uint64) Model {
	model := make(Model, len(vars))
	bind(model, vars, mask)
	return model
}

func bind(model Model, vars []*Var, mask uint64) {
	n := len(vars)
	for i, v := range vars {
		model[v.name] = mask&(1<<uint(n-1-i)) != 0
	}
}

// BitString returns the bindings of vars in model as a string of '0' and '1'.
func BitString(vars []*Var, model Model) string {
	var sb strings.Builder
	for _, v := range vars {
		if model[v.name] {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// Literals returns, for each variable in vars, the variable itself if it is true
// in model, or its negation else.
func Literals(vars []*Var, model Model) []*Formula {
	res := make([]*Formula, len(vars))
	for i, v := range vars {
		res[i] = v.leaf.Signed(model)
	}
	return res
}
