package proof

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/crillab/gopherproof/bf"
)

// A Line is the rendered form of a ledger step.
type Line struct {
	Name    string `json:"name"`
	Formula string `json:"formula"`
	Basis   string `json:"basis"`
}

func (line Line) String() string {
	return fmt.Sprintf("%s = %s     basis: %s", line.Name, line.Formula, line.Basis)
}

// StepName returns the name of the i-th step of a ledger whose numbering begins at start.
func StepName(start, i int) string {
	return fmt.Sprintf("F_%d", start+i)
}

// Lines renders every step of l, naming them F_start, F_start+1, etc.
func (l *Ledger) Lines(start int) []Line {
	res := make([]Line, len(l.steps))
	for i, s := range l.steps {
		res[i] = Line{
			Name:    StepName(start, i),
			Formula: s.Formula.String(),
			Basis:   basis(s, start),
		}
	}
	return res
}

func basis(s Step, start int) string {
	switch s.Rule {
	case Hypothesis:
		return "from hypothesis"
	case Axiom:
		return fmt.Sprintf("Axiom %s for %s", s.Scheme, enumerate(s.Args))
	case Inferred:
		return fmt.Sprintf("(MP) for %s and %s", StepName(start, s.Premises[0]), StepName(start, s.Premises[1]))
	default:
		return s.Rule.String()
	}
}

// enumerate returns "a", "a and b", "a, b and c", etc.
func enumerate(forms []*bf.Formula) string {
	strs := make([]string, len(forms))
	for i, f := range forms {
		strs[i] = f.String()
	}
	if len(strs) < 2 {
		return strings.Join(strs, "")
	}
	return strings.Join(strs[:len(strs)-1], ", ") + " and " + strs[len(strs)-1]
}

// Render writes the lines of l to w, one per line.
func Render(w io.Writer, l *Ledger, start int) error {
	bw := bufio.NewWriter(w)
	for _, line := range l.Lines(start) {
		if _, err := fmt.Fprintln(bw, line); err != nil {
			return fmt.Errorf("could not render ledger: %w", err)
		}
	}
	return bw.Flush()
}

// Write writes a report of l to w: a header naming the last proved formula, then the rendered lines.
func Write(w io.Writer, l *Ledger, start int) error {
	if l.Len() == 0 {
		return fmt.Errorf("%w: nothing to write", ErrMalformedLedger)
	}
	if _, err := fmt.Fprintf(w, "last formula: %s\n\n\n", l.Last()); err != nil {
		return fmt.Errorf("could not write ledger header: %w", err)
	}
	return Render(w, l, start)
}
