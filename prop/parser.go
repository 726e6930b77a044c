package prop

import (
	"fmt"
	"strings"
	"text/scanner"
	"unicode"
)

type parser struct {
	s     scanner.Scanner
	eof   bool   // Have we reached eof yet?
	token string // Last token read
}

func newParser(input string) *parser {
	p := &parser{}
	p.s.Init(strings.NewReader(input))
	p.s.Mode = scanner.ScanIdents
	p.s.IsIdentRune = func(ch rune, i int) bool {
		return ch == '_' || unicode.IsLetter(ch) || unicode.IsDigit(ch)
	}
	p.s.Error = func(*scanner.Scanner, string) {}
	p.scan()
	return p
}

// Parse parses a formula written in canonical form.
// Variables are letters between 'p' and 'z' optionally followed by digits, constants are T and F,
// negation is written "~" and binary connectives "&", "|" and "->" must be surrounded by parentheses,
// e.g "((p&q)->~r1)".
func Parse(input string) (*Formula, error) {
	p := newParser(input)
	f, err := p.parseFormula()
	if err != nil {
		return nil, err
	}
	if !p.eof {
		return nil, fmt.Errorf("unexpected token %q at %s", p.token, p.s.Position)
	}
	return f, nil
}

// MustParse is like Parse but panics if the input is not a valid formula.
func MustParse(input string) *Formula {
	f, err := Parse(input)
	if err != nil {
		panic(fmt.Errorf("could not parse %q: %v", input, err))
	}
	return f
}

func (p *parser) scan() {
	if p.eof {
		return
	}
	p.eof = (p.s.Scan() == scanner.EOF)
	p.token = p.s.TokenText()
}

func (p *parser) parseFormula() (*Formula, error) {
	if p.eof {
		return nil, fmt.Errorf("expected formula, found EOF")
	}
	switch {
	case p.token == OpNot:
		p.scan()
		f, err := p.parseFormula()
		if err != nil {
			return nil, err
		}
		return Not(f), nil
	case p.token == "(":
		p.scan()
		f1, err := p.parseFormula()
		if err != nil {
			return nil, err
		}
		op, err := p.parseOperator()
		if err != nil {
			return nil, err
		}
		f2, err := p.parseFormula()
		if err != nil {
			return nil, err
		}
		if p.eof {
			return nil, fmt.Errorf("expected closing parenthesis, found EOF")
		}
		if p.token != ")" {
			return nil, fmt.Errorf("expected closing parenthesis, found %q at %s", p.token, p.s.Position)
		}
		p.scan()
		return Binary(op, f1, f2), nil
	case IsVariable(p.token) || IsConstant(p.token):
		defer p.scan()
		if IsConstant(p.token) {
			return &Formula{Root: p.token}, nil
		}
		return Var(p.token), nil
	default:
		return nil, fmt.Errorf("unexpected token %q at %s", p.token, p.s.Position)
	}
}

func (p *parser) parseOperator() (string, error) {
	if p.eof {
		return "", fmt.Errorf("expected binary operator, found EOF")
	}
	switch p.token {
	case OpAnd, OpOr:
		op := p.token
		p.scan()
		return op, nil
	case "-":
		p.scan()
		if p.eof || p.token != ">" {
			return "", fmt.Errorf("invalid token %q at %s", "-"+p.token, p.s.Position)
		}
		p.scan()
		return OpImplies, nil
	default:
		return "", fmt.Errorf("expected binary operator, found %q at %s", p.token, p.s.Position)
	}
}
