// Command gopherproof checks propositional formulas and builds Hilbert-style proofs of tautologies.
//
// Usage:
//
//	gopherproof check [formula...]
//	gopherproof prove [-o file] [--start n] [--verify] formula
//	gopherproof serve
//
// Formulas are fully parenthesized: (a -> b), (!a), (a & (b | c)), (a ^ b), (a <-> b).
// Without arguments, check reads one formula per line on its standard input.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
