// Package prover builds first-order proofs line by line, from a set of assumptions
// and six fixed axiom schemas, with composite steps for common derivation patterns.
package prover

import (
	"fmt"
	"log/slog"

	"github.com/hilbert-prover/hilbert/fol"
	"github.com/hilbert-prover/hilbert/proofs"
)

// The six axiom schemas every prover may use.
var (
	// Universal instantiation.
	UI = proofs.MustParseSchema("(Ax[R(x)]->R(c))", "R", "x", "c")
	// Existential introduction.
	EI = proofs.MustParseSchema("(R(c)->Ex[R(x)])", "R", "x", "c")
	// Universal simplification.
	US = proofs.MustParseSchema("(Ax[(Q()->R(x))]->(Q()->Ax[R(x)]))", "Q", "R", "x")
	// Existential simplification.
	ES = proofs.MustParseSchema("((Ax[(R(x)->Q())]&Ex[R(x)])->Q())", "Q", "R", "x")
	// Reflexivity.
	RX = proofs.MustParseSchema("c=c", "c")
	// Meaning of equality.
	ME = proofs.MustParseSchema("(c=d->(R(c)->R(d)))", "R", "c", "d")
)

// Axioms holds the six axiom schemas.
var Axioms = []*proofs.Schema{UI, EI, US, ES, RX, ME}

// A Prover gradually builds a proof. Each appended line is checked immediately:
// appending a line that is not validly justified is a programming error and panics.
// A Prover is not safe for concurrent use.
type Prover struct {
	assumptions []*proofs.Schema
	lines       []proofs.Line
	logger      *slog.Logger
}

// An Option configures a Prover.
type Option func(*Prover)

// WithLogger makes the prover log each line at debug level as it is appended.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Prover) {
		p.logger = logger
	}
}

// New returns a prover whose proofs may use the axioms and the given assumptions.
func New(assumptions []*proofs.Schema, opts ...Option) *Prover {
	all := append(append([]*proofs.Schema{}, Axioms...), assumptions...)
	p := &Prover{assumptions: all}
	for _, opt := range opts {
		opt(p)
	}
	p.assumptions = proofs.UniqueSchemas(p.assumptions)
	if p.logger != nil {
		for _, a := range assumptions {
			p.logger.Debug("assumption", "schema", a.String())
		}
	}
	return p
}

// NewFromStrings returns a prover whose assumptions are the unique instances of the given formulas.
func NewFromStrings(assumptions ...string) *Prover {
	schemas := make([]*proofs.Schema, len(assumptions))
	for i, a := range assumptions {
		schemas[i] = proofs.MustParseSchema(a)
	}
	return New(schemas)
}

// Assumptions returns the schemas the prover's proof may use, axioms included.
func (p *Prover) Assumptions() []*proofs.Schema {
	return append([]*proofs.Schema{}, p.assumptions...)
}

// Len returns the number of lines appended so far.
func (p *Prover) Len() int {
	return len(p.lines)
}

// Line returns the formula of the given line.
func (p *Prover) Line(n int) *fol.Formula {
	p.checkLine(n)
	return p.lines[n].Conclusion()
}

// Qed returns the proof, whose conclusion is the formula of the last line.
// It panics if no line was appended.
func (p *Prover) Qed() *proofs.Proof {
	if len(p.lines) == 0 {
		panic("cannot conclude an empty proof")
	}
	conclusion := p.lines[len(p.lines)-1].Conclusion()
	if p.logger != nil {
		p.logger.Debug("qed", "conclusion", conclusion.String(), "lines", len(p.lines))
	}
	return &proofs.Proof{
		Assumptions: p.Assumptions(),
		Conclusion:  conclusion,
		Lines:       append([]proofs.Line{}, p.lines...),
	}
}

func (p *Prover) addLine(l proofs.Line) int {
	n := len(p.lines)
	p.lines = append(p.lines, l)
	if !l.IsValid(p.assumptions, p.lines, n) {
		panic(fmt.Sprintf("invalid line %d: %s", n, l))
	}
	if p.logger != nil {
		p.logger.Debug("line", "n", n, "formula", l.Conclusion().String())
	}
	return n
}

func (p *Prover) checkLine(n int) {
	if n < 0 || n >= len(p.lines) {
		panic(fmt.Sprintf("line %d does not exist", n))
	}
}

// AddInstantiatedAssumption appends the given instance of one of the prover's assumptions.
func (p *Prover) AddInstantiatedAssumption(instance *fol.Formula, assumption *proofs.Schema, m proofs.InstantiationMap) int {
	return p.addLine(&proofs.AssumptionLine{Formula: instance, Schema: assumption, Map: m})
}

// AddAssumption appends the unique instance of one of the prover's assumptions.
func (p *Prover) AddAssumption(instance *fol.Formula) int {
	return p.AddInstantiatedAssumption(instance, proofs.NewSchema(instance), proofs.InstantiationMap{})
}

// AddTautology appends the given tautology.
func (p *Prover) AddTautology(tautology *fol.Formula) int {
	return p.addLine(&proofs.TautologyLine{Formula: tautology})
}

// AddMP appends consequent, justified by modus ponens from the given lines.
func (p *Prover) AddMP(consequent *fol.Formula, antecedent, conditional int) int {
	return p.addLine(&proofs.MPLine{Formula: consequent, Antecedent: antecedent, Conditional: conditional})
}

// AddUG appends quantified, justified by universal generalization of the given line.
func (p *Prover) AddUG(quantified *fol.Formula, predicate int) int {
	return p.addLine(&proofs.UGLine{Formula: quantified, Predicate: predicate})
}

// AddProof inlines the lines of proof, a valid proof of conclusion from a subset of the
// prover's assumptions, and returns the line number of conclusion.
func (p *Prover) AddProof(conclusion *fol.Formula, proof *proofs.Proof) int {
	if !proof.Conclusion.Equal(conclusion) {
		panic(fmt.Sprintf("the proof concludes %s, not %s", proof.Conclusion, conclusion))
	}
	known := make(map[string]struct{}, len(p.assumptions))
	for _, a := range p.assumptions {
		known[a.Key()] = struct{}{}
	}
	for _, a := range proof.Assumptions {
		if _, ok := known[a.Key()]; !ok {
			panic(fmt.Sprintf("assumption %s is not available to the prover", a))
		}
	}
	shift := len(p.lines)
	for _, l := range proof.Lines {
		switch l := l.(type) {
		case *proofs.AssumptionLine, *proofs.TautologyLine:
			p.addLine(l)
		case *proofs.MPLine:
			p.AddMP(l.Formula, l.Antecedent+shift, l.Conditional+shift)
		case *proofs.UGLine:
			p.AddUG(l.Formula, l.Predicate+shift)
		default:
			panic(fmt.Sprintf("unknown line type %T", l))
		}
	}
	n := len(p.lines) - 1
	if n < shift || !p.lines[n].Conclusion().Equal(conclusion) {
		panic(fmt.Sprintf("the inlined proof does not end with %s", conclusion))
	}
	return n
}
