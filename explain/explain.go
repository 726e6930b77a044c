// Package explain provides facilities to understand why a proof is valid or not.
// Each line of a proof gets a Diagnostic stating whether it is correctly justified and, if not,
// why. Failed tautology lines come with a counterexample, i.e. an assignment of their
// propositional skeleton that falsifies them.
package explain

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/hilbert-prover/hilbert/fol"
	"github.com/hilbert-prover/hilbert/proofs"
	"github.com/hilbert-prover/hilbert/prop"
)

// A Kind is the kind of justification a diagnostic is about.
type Kind string

// Possible kinds. KindProof is for diagnostics about the proof as a whole.
const (
	KindAssumption Kind = "assumption"
	KindMP         Kind = "mp"
	KindUG         Kind = "ug"
	KindTautology  Kind = "tautology"
	KindProof      Kind = "proof"
)

// NoLine is the line number of proof-level diagnostics.
const NoLine = -1

// A Diagnostic tells whether a line of a proof, or the proof itself, is valid.
type Diagnostic struct {
	Line           int
	Kind           Kind
	Valid          bool
	Reason         string          // Empty for valid lines.
	Counterexample *Counterexample // Only for invalid tautology lines.
}

func (d Diagnostic) String() string {
	var sb strings.Builder
	if d.Line == NoLine {
		sb.WriteString("proof")
	} else {
		fmt.Fprintf(&sb, "line %d (%s)", d.Line, d.Kind)
	}
	if d.Valid {
		sb.WriteString(": ok")
		return sb.String()
	}
	fmt.Fprintf(&sb, ": %s", d.Reason)
	if d.Counterexample != nil {
		fmt.Fprintf(&sb, "; counterexample: %s", d.Counterexample)
	}
	return sb.String()
}

// A Counterexample is a propositional model falsifying the skeleton of a formula.
// Atoms associates each variable of the skeleton with the first-order subformula it stands for.
type Counterexample struct {
	Values prop.Model
	Atoms  map[string]*fol.Formula
}

func (c *Counterexample) String() string {
	names := lo.Keys(c.Values)
	sort.Strings(names)
	parts := lo.Map(names, func(name string, _ int) string {
		if atom, ok := c.Atoms[name]; ok {
			return fmt.Sprintf("%s=%t", atom, c.Values[name])
		}
		return fmt.Sprintf("%s=%t", name, c.Values[name])
	})
	return strings.Join(parts, ", ")
}

// FindCounterexample returns a counterexample for f if f is not a tautology.
func FindCounterexample(f *fol.Formula) (*Counterexample, bool) {
	skeleton, atoms := f.PropositionalSkeleton()
	m, ok := prop.Counterexample(skeleton)
	if !ok {
		return nil, false
	}
	return &Counterexample{Values: m, Atoms: atoms}, true
}

// Explain returns one diagnostic per line of p, in order, followed by a proof-level diagnostic if p
// is empty or its last line is not its conclusion.
// p is valid iff every returned diagnostic is.
func Explain(p *proofs.Proof) []Diagnostic {
	res, _ := ExplainContext(context.Background(), p)
	return res
}

// ExplainContext is like Explain, but stops checking lines once ctx is done,
// in which case it returns the diagnostics computed so far and the context's error.
func ExplainContext(ctx context.Context, p *proofs.Proof) ([]Diagnostic, error) {
	res := make([]Diagnostic, 0, len(p.Lines)+1)
	for i, l := range p.Lines {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		res = append(res, explainLine(p, i, l))
	}
	switch {
	case len(p.Lines) == 0:
		res = append(res, Diagnostic{Line: NoLine, Kind: KindProof, Reason: "proof has no line"})
	case !p.Lines[len(p.Lines)-1].Conclusion().Equal(p.Conclusion):
		res = append(res, Diagnostic{
			Line:   NoLine,
			Kind:   KindProof,
			Reason: fmt.Sprintf("last line proves %s, not %s", p.Lines[len(p.Lines)-1].Conclusion(), p.Conclusion),
		})
	}
	return res, nil
}

// Valid returns true iff all diagnostics are valid.
func Valid(diagnostics []Diagnostic) bool {
	return lo.EveryBy(diagnostics, func(d Diagnostic) bool { return d.Valid })
}

// Invalid returns the invalid diagnostics.
func Invalid(diagnostics []Diagnostic) []Diagnostic {
	return lo.Reject(diagnostics, func(d Diagnostic, _ int) bool { return d.Valid })
}

func explainLine(p *proofs.Proof, i int, l proofs.Line) Diagnostic {
	switch l := l.(type) {
	case *proofs.AssumptionLine:
		return explainAssumption(p, i, l)
	case *proofs.MPLine:
		return explainMP(p, i, l)
	case *proofs.UGLine:
		return explainUG(p, i, l)
	case *proofs.TautologyLine:
		return explainTautology(i, l)
	default:
		panic("invalid line type")
	}
}

func invalid(i int, kind Kind, format string, args ...interface{}) Diagnostic {
	return Diagnostic{Line: i, Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

// reference returns a non-empty reason if ref cannot be used as a justification of line i.
func reference(p *proofs.Proof, i, ref int) string {
	switch {
	case ref < 0 || ref >= len(p.Lines):
		return fmt.Sprintf("line %d does not exist", ref)
	case ref >= i:
		return fmt.Sprintf("line %d is not before line %d", ref, i)
	default:
		return ""
	}
}

func explainAssumption(p *proofs.Proof, i int, l *proofs.AssumptionLine) Diagnostic {
	if l.Schema == nil {
		return invalid(i, KindAssumption, "no schema")
	}
	f, ok := l.Schema.Instantiate(l.Map)
	if !ok {
		return invalid(i, KindAssumption, "%s cannot be instantiated with %s", l.Schema, l.Map)
	}
	if !f.Equal(l.Formula) {
		return invalid(i, KindAssumption, "instantiating %s with %s yields %s, not %s", l.Schema, l.Map, f, l.Formula)
	}
	if !l.IsValid(p.Assumptions, p.Lines, i) {
		return invalid(i, KindAssumption, "no assumption instantiated with %s yields %s", l.Map, l.Formula)
	}
	return Diagnostic{Line: i, Kind: KindAssumption, Valid: true}
}

func explainMP(p *proofs.Proof, i int, l *proofs.MPLine) Diagnostic {
	for _, ref := range []int{l.Antecedent, l.Conditional} {
		if reason := reference(p, i, ref); reason != "" {
			return invalid(i, KindMP, "%s", reason)
		}
	}
	cond := p.Lines[l.Conditional].Conclusion()
	antecedent := p.Lines[l.Antecedent].Conclusion()
	switch {
	case cond.Root != fol.OpImplies:
		return invalid(i, KindMP, "line %d is not an implication: %s", l.Conditional, cond)
	case !cond.First.Equal(antecedent):
		return invalid(i, KindMP, "premise of line %d is %s, but line %d is %s", l.Conditional, cond.First, l.Antecedent, antecedent)
	case !cond.Second.Equal(l.Formula):
		return invalid(i, KindMP, "line %d concludes %s, not %s", l.Conditional, cond.Second, l.Formula)
	}
	return Diagnostic{Line: i, Kind: KindMP, Valid: true}
}

func explainUG(p *proofs.Proof, i int, l *proofs.UGLine) Diagnostic {
	if reason := reference(p, i, l.Predicate); reason != "" {
		return invalid(i, KindUG, "%s", reason)
	}
	if l.Formula.Root != fol.ForAllQ {
		return invalid(i, KindUG, "%s is not a universal quantification", l.Formula)
	}
	if pred := p.Lines[l.Predicate].Conclusion(); !l.Formula.Predicate.Equal(pred) {
		return invalid(i, KindUG, "quantified formula is %s, but line %d is %s", l.Formula.Predicate, l.Predicate, pred)
	}
	return Diagnostic{Line: i, Kind: KindUG, Valid: true}
}

func explainTautology(i int, l *proofs.TautologyLine) Diagnostic {
	c, ok := FindCounterexample(l.Formula)
	if !ok {
		return Diagnostic{Line: i, Kind: KindTautology, Valid: true}
	}
	d := invalid(i, KindTautology, "%s is not a tautology", l.Formula)
	d.Counterexample = c
	return d
}
