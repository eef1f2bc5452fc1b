package adequacy

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/crillab/gopherproof/bf"
	"github.com/crillab/gopherproof/proof"
)

var (
	// ErrNotATautology is returned when asked to prove a formula that is false in some model.
	ErrNotATautology = errors.New("not a tautology")
	// ErrTooManyVariables is returned when a formula has more variables than a Prover accepts.
	ErrTooManyVariables = errors.New("too many variables")
)

// DefaultMaxVariables is the default number of variables a Prover accepts.
const DefaultMaxVariables = 3

// A Prover builds proofs of tautologies.
// It is safe for concurrent use.
type Prover struct {
	logger  *zap.Logger
	workers int
	maxVars int
}

// An Option configures a Prover.
type Option func(*Prover)

// WithLogger sets the logger of the prover. By default, nothing is logged.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Prover) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithWorkers sets the number of goroutines used to build a proof.
// Values lower than 1 mean runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(p *Prover) {
		if n >= 1 {
			p.workers = n
		}
	}
}

// WithMaxVariables sets the maximum number of variables of the formulas the prover accepts.
// It cannot exceed bf.MaxModelVariables.
func WithMaxVariables(n int) Option {
	return func(p *Prover) {
		if n >= 1 {
			p.maxVars = min(n, bf.MaxModelVariables)
		}
	}
}

// New returns a prover.
func New(opts ...Option) *Prover {
	p := &Prover{
		logger:  zap.NewNop(),
		workers: runtime.GOMAXPROCS(0),
		maxVars: DefaultMaxVariables,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// MaxVariables returns the maximum number of variables of the formulas p accepts.
func (p *Prover) MaxVariables() int { return p.maxVars }

// Prove is a shortcut for New().Prove(ctx, f).
func Prove(ctx context.Context, f *bf.Formula) (*proof.Ledger, error) {
	return New().Prove(ctx, f)
}

// Prove returns a proof without hypotheses of f, which must be a tautology.
// If f uses other connectives than negation and implication, the proof is the proof
// of bf.Primitive(f).
//
// A proof of f, or of its negation, is first built with Kalmar for each of the 2^n models
// of the n variables of f. Then, from the last variable x to the first one, the proofs
// for each pair of models only differing on x are merged: x is discharged from the first
// one and (!x) from the second one with the deduction theorem, and T7 proves f from
// x -> f and (!x) -> f. The single proof left at the end has no hypothesis.
func (p *Prover) Prove(ctx context.Context, f *bf.Formula) (*proof.Ledger, error) {
	start := time.Now()
	vars := f.Vars()
	n := len(vars)
	if n > p.maxVars {
		proofs.WithLabelValues(resultTooManyVariables).Inc()
		return nil, fmt.Errorf("%w: %s has %d variables, at most %d are accepted", ErrTooManyVariables, f, n, p.maxVars)
	}
	logger := p.logger.With(zap.String("proof_id", uuid.NewString()), zap.Stringer("formula", f))
	taut, err := f.Tautology(ctx)
	if err != nil {
		return nil, p.failed(logger, err)
	}
	if !taut {
		proofs.WithLabelValues(resultNotTautology).Inc()
		return nil, fmt.Errorf("%w: %s", ErrNotATautology, f)
	}
	target := bf.Primitive(f)

	ledgers := make([]*proof.Ledger, 1<<uint(n))
	err = p.parallel(ctx, len(ledgers), func(mask int) error {
		l, err := Kalmar(target, bf.ModelOf(vars, uint64(mask)))
		if err != nil {
			return err
		}
		ledgers[mask] = l
		kalmarLedgers.Inc()
		return nil
	})
	if err != nil {
		return nil, p.failed(logger, err)
	}
	logger.Debug("kalmar proofs built", zap.Int("models", len(ledgers)))

	for k := n - 1; k >= 0; k-- {
		x := vars[k].Formula()
		prefix := vars[:k]
		t7 := proof.T7(x, target) // Only read by merge.
		next := make([]*proof.Ledger, 1<<uint(k))
		err := p.parallel(ctx, len(next), func(mask int) error {
			hyps := bf.Literals(prefix, bf.ModelOf(prefix, uint64(mask)))
			l, err := merge(hyps, x, t7, ledgers[mask<<1|1], ledgers[mask<<1])
			if err != nil {
				return fmt.Errorf("could not eliminate %s under %v: %w", x, hyps, err)
			}
			next[mask] = l
			return nil
		})
		if err != nil {
			return nil, p.failed(logger, err)
		}
		ledgers = next
		logger.Debug("variable eliminated",
			zap.String("variable", vars[k].Name()),
			zap.Int("remaining", k),
			zap.Int("steps", ledgers[0].Len()),
		)
	}

	res := ledgers[0]
	elapsed := time.Since(start)
	proofs.WithLabelValues(resultProved).Inc()
	proofSteps.Observe(float64(res.Len()))
	proofDuration.Observe(elapsed.Seconds())
	logger.Info("tautology proved",
		zap.Int("variables", n),
		zap.Int("models", 1<<uint(n)),
		zap.Int("steps", res.Len()),
		zap.Duration("elapsed", elapsed),
	)
	return res, nil
}

func (p *Prover) failed(logger *zap.Logger, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		proofs.WithLabelValues(resultCanceled).Inc()
		logger.Warn("proof canceled", zap.Error(err))
	} else {
		logger.Error("proof failed", zap.Error(err))
	}
	return err
}

// parallel calls fn(0), ..., fn(n-1) on at most p.workers goroutines.
// It stops launching calls as soon as one fails or ctx is done.
func (p *Prover) parallel(ctx context.Context, n int, fn func(i int) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(i)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// merge returns a proof of the last formula F of t7 from hyps, given a proof pos of F
// from hyps and x, and a proof neg of F from hyps and (!x).
func merge(hyps []*bf.Formula, x *bf.Formula, t7, pos, neg *proof.Ledger) (*proof.Ledger, error) {
	dpos, err := proof.Deduce(hyps, x, pos)
	if err != nil {
		return nil, err
	}
	dneg, err := proof.Deduce(hyps, bf.Not(x), neg)
	if err != nil {
		return nil, err
	}
	deductions.Add(2)
	l := proof.New()
	i := l.Include(dpos) // x -> F
	j := l.Include(dneg) // (!x) -> F
	t := l.Include(t7)   // (x -> F) -> (((!x) -> F) -> F)
	m, err := l.MP(i, t) // ((!x) -> F) -> F
	if err != nil {
		return nil, err
	}
	if _, err := l.MP(j, m); err != nil {
		return nil, err
	}
	return l, nil
}
