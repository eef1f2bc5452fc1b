package bf

import (
	"fmt"
	"io"
	"strings"
	"text/scanner"
)

// A ParseError is returned when a formula cannot be parsed.
type ParseError struct {
	Offset int    // Byte offset of the offending token
	Token  string // Offending token, empty at EOF
	Msg    string
}

func (e *ParseError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("parse error at offset %d: %s", e.Offset, e.Msg)
	}
	return fmt.Sprintf("parse error at offset %d, near %q: %s", e.Offset, e.Token, e.Msg)
}

type parser struct {
	s     scanner.Scanner
	scope *Scope
	eof   bool   // Have we reached eof yet?
	tok   rune   // Last token read
	text  string // Text of the last token read
	off   int    // Offset of the last token read
	err   *ParseError
}

// Parse parses the formula from the given input Reader.
// Variables are interned in scope.
// Formulas are fully parenthesized:
//
// - a variable is an identifier such as "x1" or "_a",
// - a negation is written "(!f)",
// - a binary formula is written "(f op g)", op being one of "->", "|", "&", "^", "<->",
// - any formula can be surrounded by an extra pair of parentheses.
//
// Any text left after the formula is an error.
func Parse(scope *Scope, r io.Reader) (*Formula, error) {
	p := parser{scope: scope}
	p.s.Init(r)
	p.s.Mode = scanner.ScanIdents
	p.s.IsIdentRune = isIdentRune
	p.s.Error = func(s *scanner.Scanner, msg string) {
		p.fail(msg)
	}
	p.scan()
	f := p.parseFormula()
	if p.err == nil && !p.eof {
		p.fail("unexpected trailing text")
	}
	if p.err != nil {
		return nil, p.err
	}
	return f, nil
}

// ParseString parses the formula written in s.
func ParseString(scope *Scope, s string) (*Formula, error) {
	return Parse(scope, strings.NewReader(s))
}

func (p *parser) scan() {
	if p.eof {
		return
	}
	p.tok = p.s.Scan()
	p.eof = p.tok == scanner.EOF
	p.text = p.s.TokenText()
	p.off = p.s.Position.Offset
	if p.eof {
		p.text = ""
		p.off = p.s.Pos().Offset
	}
}

// fail records the first error met. Further errors are ignored.
func (p *parser) fail(msg string) {
	if p.err == nil {
		p.err = &ParseError{Offset: p.off, Token: p.text, Msg: msg}
	}
}

func (p *parser) parseFormula() *Formula {
	if p.err != nil {
		return nil
	}
	if p.eof {
		p.fail("expected formula, found EOF")
		return nil
	}
	if p.tok == scanner.Ident {
		defer p.scan()
		return p.scope.Var(p.text).Formula()
	}
	if p.text != "(" {
		p.fail("expected variable or opening parenthesis")
		return nil
	}
	p.scan()
	if p.text == "!" {
		p.scan()
		f := p.parseFormula()
		if !p.expect(")") {
			return nil
		}
		return Not(f)
	}
	left := p.parseFormula()
	if p.err != nil {
		return nil
	}
	if p.text == ")" {
		p.scan()
		return left
	}
	op, ok := p.parseOperator()
	if !ok {
		return nil
	}
	right := p.parseFormula()
	if !p.expect(")") {
		return nil
	}
	return build(op, left, right)
}

// expect consumes the given token, or records an error.
func (p *parser) expect(tok string) bool {
	if p.err != nil {
		return false
	}
	if p.eof {
		p.fail(fmt.Sprintf("expected %q, found EOF", tok))
		return false
	}
	if p.text != tok {
		p.fail(fmt.Sprintf("expected %q", tok))
		return false
	}
	p.scan()
	return true
}

func (p *parser) parseOperator() (Connective, bool) {
	switch p.text {
	case "|":
		p.scan()
		return OpOr, true
	case "&":
		p.scan()
		return OpAnd, true
	case "^":
		p.scan()
		return OpXor, true
	case "-":
		if p.glued("-", ">") {
			return OpImplies, true
		}
	case "<":
		if p.glued("<", "-", ">") {
			return OpEq, true
		}
	}
	p.fail("expected binary operator")
	return 0, false
}

// glued consumes the given single-char tokens if they are all adjacent.
func (p *parser) glued(toks ...string) bool {
	start := p.off
	for i, tok := range toks {
		if p.eof || p.text != tok || p.off != start+i {
			p.fail(fmt.Sprintf("invalid operator, expected %q", strings.Join(toks, "")))
			return false
		}
		p.scan()
	}
	return true
}
