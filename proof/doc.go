// Package proof builds Hilbert-style proofs in propositional logic.
//
// The system has three axiom schemes:
//
//	A1: F -> (G -> F)
//	A2: (F -> (G -> H)) -> ((F -> G) -> (F -> H))
//	A3: ((!G) -> (!F)) -> (((!G) -> F) -> G)
//
// and a single inference rule, modus ponens: from F and F -> G, infer G.
//
// A proof is a Ledger: an ordered sequence of steps, each of them being either an
// axiom instance, a hypothesis, or the result of modus ponens on two earlier steps
// of the same ledger. Ledgers are composed with Include, which appends a ledger to
// another one and resolves its hypotheses against formulas that were already proved.
//
// Deduce implements the deduction theorem: it turns a proof of G from Γ ∪ {F} into
// a proof of F -> G from Γ. The derived theorems (L, T1 to T7) and the syllogism
// rules (S1, S2) are built from the axioms, modus ponens and Deduce only.
//
// Verify checks any ledger independently of the procedure that built it.
package proof
