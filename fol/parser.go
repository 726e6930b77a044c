package fol

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

// ParseTerm parses a term written in canonical form, e.g "plus(x,f(0,c))".
func ParseTerm(input string) (*Term, error) {
	p := newParser(input)
	t, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	if !p.eof {
		return nil, fmt.Errorf("unexpected token %q at %s", p.token, p.s.Position)
	}
	return t, nil
}

// MustParseTerm is like ParseTerm but panics if the input is not a valid term.
func MustParseTerm(input string) *Term {
	t, err := ParseTerm(input)
	if err != nil {
		panic(fmt.Errorf("could not parse term %q: %v", input, err))
	}
	return t
}

// Parse parses a formula written in canonical form.
// Binary connectives are surrounded by parentheses, quantifications are written
// "Ax[...]" and "Ex[...]", relation invocations "R(t1,...,tn)", including nullary ones "Q()",
// and equalities "t1=t2". For instance:
//
//	Ax[(Man(x)->(Mortal(x)&~x=plus(c,y)))]
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
		panic(fmt.Errorf("could not parse formula %q: %v", input, err))
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

func (p *parser) expect(token string) error {
	if p.eof {
		return fmt.Errorf("expected %q, found EOF", token)
	}
	if p.token != token {
		return fmt.Errorf("expected %q, found %q at %s", token, p.token, p.s.Position)
	}
	p.scan()
	return nil
}

func (p *parser) parseTerm() (*Term, error) {
	if p.eof {
		return nil, fmt.Errorf("expected term, found EOF")
	}
	root := p.token
	switch {
	case IsConstant(root), IsVariable(root):
		p.scan()
		return &Term{Root: root}, nil
	case IsFunction(root):
		p.scan()
		args, err := p.parseArguments()
		if err != nil {
			return nil, err
		}
		if len(args) == 0 {
			return nil, fmt.Errorf("function %s needs arguments", root)
		}
		return &Term{Root: root, Arguments: args}, nil
	default:
		return nil, fmt.Errorf("unexpected token %q at %s", p.token, p.s.Position)
	}
}

// parseArguments parses a parenthesized, comma-separated, possibly empty list of terms.
func (p *parser) parseArguments() ([]*Term, error) {
	if err := p.expect("("); err != nil {
		return nil, err
	}
	args := []*Term{}
	if !p.eof && p.token == ")" {
		p.scan()
		return args, nil
	}
	for {
		t, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		args = append(args, t)
		if p.eof {
			return nil, fmt.Errorf("expected closing parenthesis, found EOF")
		}
		switch p.token {
		case ",":
			p.scan()
		case ")":
			p.scan()
			return args, nil
		default:
			return nil, fmt.Errorf("expected closing parenthesis, found %q at %s", p.token, p.s.Position)
		}
	}
}

func (p *parser) parseFormula() (*Formula, error) {
	if p.eof {
		return nil, fmt.Errorf("expected formula, found EOF")
	}
	tok := p.token
	switch {
	case tok == OpNot:
		p.scan()
		f, err := p.parseFormula()
		if err != nil {
			return nil, err
		}
		return Not(f), nil
	case tok == "(":
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
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return Binary(op, f1, f2), nil
	case len(tok) > 1 && IsQuantifier(tok[:1]) && IsVariable(tok[1:]):
		p.scan()
		if err := p.expect("["); err != nil {
			return nil, err
		}
		f, err := p.parseFormula()
		if err != nil {
			return nil, err
		}
		if err := p.expect("]"); err != nil {
			return nil, err
		}
		return Quantified(tok[:1], tok[1:], f), nil
	case IsRelation(tok):
		p.scan()
		args, err := p.parseArguments()
		if err != nil {
			return nil, err
		}
		return &Formula{Root: tok, Arguments: args}, nil
	default:
		t1, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if err := p.expect(OpEquality); err != nil {
			return nil, err
		}
		t2, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		return Equality(t1, t2), nil
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
