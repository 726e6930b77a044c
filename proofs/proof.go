package proofs

import (
	"fmt"
	"strings"

	"github.com/hilbert-prover/hilbert/fol"
	"github.com/hilbert-prover/hilbert/prop"
)

// A Line is a line of a proof: a formula along with its justification.
// Lines are one of *AssumptionLine, *MPLine, *UGLine or *TautologyLine.
type Line interface {
	// Conclusion is the formula the line proves.
	Conclusion() *fol.Formula
	// IsValid returns true iff the line, which must be lines[index], is correctly justified
	// given the assumptions and the lines preceding it.
	IsValid(assumptions []*Schema, lines []Line, index int) bool
	String() string
	isLine()
}

func checkIndex(l Line, lines []Line, index int) {
	if index < 0 || index >= len(lines) || lines[index] != l {
		panic(fmt.Sprintf("line %d of the proof is not %s", index, l))
	}
}

// earlier returns true iff ref is a line preceding current. It panics if ref is not a line of the proof.
func earlier(lines []Line, ref, current int) bool {
	if ref < 0 || ref >= len(lines) {
		panic(fmt.Sprintf("line %d references line %d, which does not exist", current, ref))
	}
	return ref < current
}

// An AssumptionLine is justified by the instantiation of an assumption schema.
type AssumptionLine struct {
	Formula *fol.Formula
	Schema  *Schema
	Map     InstantiationMap
}

func (l *AssumptionLine) Conclusion() *fol.Formula { return l.Formula }

// IsValid returns true iff instantiating the line's schema with its map yields the line's formula,
// and some assumption schema, instantiated with the same map, also yields it.
func (l *AssumptionLine) IsValid(assumptions []*Schema, lines []Line, index int) bool {
	checkIndex(l, lines, index)
	f, ok := l.Schema.Instantiate(l.Map)
	if !ok || !f.Equal(l.Formula) {
		return false
	}
	for _, a := range assumptions {
		if g, ok := a.Instantiate(l.Map); ok && g.Equal(l.Formula) {
			return true
		}
	}
	return false
}

func (l *AssumptionLine) String() string {
	return fmt.Sprintf("%s    (Assumption %s instantiated with %s)", l.Formula, l.Schema, l.Map)
}

func (*AssumptionLine) isLine() {}

// An MPLine is justified by modus ponens from two previous lines: an antecedent
// and a conditional whose premise is the antecedent and whose conclusion is the line's formula.
type MPLine struct {
	Formula     *fol.Formula
	Antecedent  int
	Conditional int
}

func (l *MPLine) Conclusion() *fol.Formula { return l.Formula }

func (l *MPLine) IsValid(assumptions []*Schema, lines []Line, index int) bool {
	checkIndex(l, lines, index)
	if !earlier(lines, l.Antecedent, index) || !earlier(lines, l.Conditional, index) {
		return false
	}
	cond := lines[l.Conditional].Conclusion()
	return cond.Root == fol.OpImplies &&
		cond.First.Equal(lines[l.Antecedent].Conclusion()) &&
		cond.Second.Equal(l.Formula)
}

func (l *MPLine) String() string {
	return fmt.Sprintf("%s    (MP from lines %d and %d)", l.Formula, l.Antecedent, l.Conditional)
}

func (*MPLine) isLine() {}

// A UGLine is justified by universal generalization of a previous line.
type UGLine struct {
	Formula   *fol.Formula
	Predicate int
}

func (l *UGLine) Conclusion() *fol.Formula { return l.Formula }

func (l *UGLine) IsValid(assumptions []*Schema, lines []Line, index int) bool {
	checkIndex(l, lines, index)
	if !earlier(lines, l.Predicate, index) {
		return false
	}
	return l.Formula.Root == fol.ForAllQ && l.Formula.Predicate.Equal(lines[l.Predicate].Conclusion())
}

func (l *UGLine) String() string {
	return fmt.Sprintf("%s    (UG of line %d)", l.Formula, l.Predicate)
}

func (*UGLine) isLine() {}

// A TautologyLine is justified by its formula being a tautology, i.e. by its propositional
// skeleton being a propositional tautology.
type TautologyLine struct {
	Formula *fol.Formula
}

func (l *TautologyLine) Conclusion() *fol.Formula { return l.Formula }

func (l *TautologyLine) IsValid(assumptions []*Schema, lines []Line, index int) bool {
	checkIndex(l, lines, index)
	skeleton, _ := l.Formula.PropositionalSkeleton()
	return prop.IsTautology(skeleton)
}

func (l *TautologyLine) String() string {
	return fmt.Sprintf("%s    (Tautology)", l.Formula)
}

func (*TautologyLine) isLine() {}

// A Proof is a proof of a conclusion from a set of assumption schemas.
// It is valid iff each of its lines is and the last one is the conclusion.
type Proof struct {
	Assumptions []*Schema
	Conclusion  *fol.Formula
	Lines       []Line
}

// NewProof returns a proof of conclusion from the given lines.
// Assumptions are a set: duplicates are removed, the first occurrence is kept.
func NewProof(assumptions []*Schema, conclusion *fol.Formula, lines []Line) *Proof {
	return &Proof{Assumptions: UniqueSchemas(assumptions), Conclusion: conclusion, Lines: lines}
}

// UniqueSchemas returns schemas without duplicates (per Key), keeping the first occurrence of each.
func UniqueSchemas(schemas []*Schema) []*Schema {
	seen := make(map[string]struct{}, len(schemas))
	res := make([]*Schema, 0, len(schemas))
	for _, s := range schemas {
		if _, ok := seen[s.Key()]; ok {
			continue
		}
		seen[s.Key()] = struct{}{}
		res = append(res, s)
	}
	return res
}

// IsLineValid returns true iff line number i of p is valid.
func (p *Proof) IsLineValid(i int) bool {
	return p.Lines[i].IsValid(p.Assumptions, p.Lines, i)
}

// IsValid returns true iff p has at least one line, its last line is its conclusion and all its lines are valid.
func (p *Proof) IsValid() bool {
	if len(p.Lines) == 0 || !p.Lines[len(p.Lines)-1].Conclusion().Equal(p.Conclusion) {
		return false
	}
	for i := range p.Lines {
		if !p.IsLineValid(i) {
			return false
		}
	}
	return true
}

func (p *Proof) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Proof of %s from assumptions/axioms:\n", p.Conclusion)
	for _, a := range p.Assumptions {
		fmt.Fprintf(&sb, "  %s\n", a)
	}
	sb.WriteString("Lines:\n")
	for i, l := range p.Lines {
		fmt.Fprintf(&sb, "%3d) %s\n", i, l)
	}
	sb.WriteString("QED\n")
	return sb.String()
}
