// Package adequacy constructively proves tautologies in the Hilbert system of package proof.
//
// Kalmar builds, for a formula and a model of its variables, a proof of the formula
// (or of its negation, if it is false in that model) from the literals of the model.
// A Prover then eliminates the hypotheses one variable at a time, using the deduction
// theorem and T7, until a proof without any hypothesis remains.
//
// The number of models, and thus the size of the final proof, grows exponentially
// with the number of variables: provers refuse formulas with too many of them.
package adequacy
