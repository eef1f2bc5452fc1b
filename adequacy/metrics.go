package adequacy

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// kalmarLedgers counts the proofs built by Kalmar's lemma, one per model.
	kalmarLedgers = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gopherproof",
		Subsystem: "adequacy",
		Name:      "kalmar_ledgers_total",
		Help:      "Total proofs built with Kalmar's lemma",
	})

	// deductions counts the applications of the deduction theorem while eliminating variables.
	deductions = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gopherproof",
		Subsystem: "adequacy",
		Name:      "deductions_total",
		Help:      "Total applications of the deduction theorem",
	})

	// proofs counts calls to Prove.
	// Labels: result (proved, not_tautology, too_many_variables, canceled)
	proofs = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gopherproof",
		Subsystem: "adequacy",
		Name:      "proofs_total",
		Help:      "Total proof requests by result",
	}, []string{"result"})

	proofSteps = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "gopherproof",
		Subsystem: "adequacy",
		Name:      "proof_steps",
		Help:      "Number of steps of the proofs built",
		Buckets:   prometheus.ExponentialBuckets(16, 4, 10),
	})

	proofDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "gopherproof",
		Subsystem: "adequacy",
		Name:      "duration_seconds",
		Help:      "Time spent building a proof",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
	})
)

const (
	resultProved           = "proved"
	resultNotTautology     = "not_tautology"
	resultTooManyVariables = "too_many_variables"
	resultCanceled         = "canceled"
)
