package proofs

import (
	"fmt"
	"strings"

	"github.com/hilbert-prover/hilbert/fol"
	"github.com/hilbert-prover/hilbert/prop"
)

// First-order schema equivalents of the propositional axioms.
var (
	I0Schema  = MustParseSchema("(P()->P())", "P")
	I1Schema  = MustParseSchema("(Q()->(P()->Q()))", "P", "Q")
	DSchema   = MustParseSchema("((P()->(Q()->R()))->((P()->Q())->(P()->R())))", "P", "Q", "R")
	I2Schema  = MustParseSchema("(~P()->(P()->Q()))", "P", "Q")
	NSchema   = MustParseSchema("((~Q()->~P())->(P()->Q()))", "P", "Q")
	NISchema  = MustParseSchema("(P()->(~Q()->~(P()->Q())))", "P", "Q")
	NNSchema  = MustParseSchema("(P()->~~P())", "P")
	RSchema   = MustParseSchema("((Q()->P())->((~Q()->P())->P()))", "P", "Q")
	ASchema   = MustParseSchema("(P()->(Q()->(P()&Q())))", "P", "Q")
	NA1Schema = MustParseSchema("(~Q()->~(P()&Q()))", "P", "Q")
	NA2Schema = MustParseSchema("(~P()->~(P()&Q()))", "P", "Q")
	O1Schema  = MustParseSchema("(Q()->(P()|Q()))", "P", "Q")
	O2Schema  = MustParseSchema("(P()->(P()|Q()))", "P", "Q")
	NOSchema  = MustParseSchema("(~P()->(~Q()->~(P()|Q())))", "P", "Q")
)

// PropositionalAxiomaticSystemSchemas are the schemas of the axioms for implication and negation.
var PropositionalAxiomaticSystemSchemas = []*Schema{
	I0Schema, I1Schema, DSchema, I2Schema, NSchema, NISchema, NNSchema, RSchema,
}

// PropositionalAxiomaticSystemFullSchemas extend PropositionalAxiomaticSystemSchemas to conjunction and disjunction.
var PropositionalAxiomaticSystemFullSchemas = append(append([]*Schema{}, PropositionalAxiomaticSystemSchemas...),
	ASchema, NA1Schema, NA2Schema, O1Schema, O2Schema, NOSchema)

var axiomSchemas = map[string]*Schema{
	prop.I0.String(): I0Schema, prop.I1.String(): I1Schema, prop.D.String(): DSchema,
	prop.I2.String(): I2Schema, prop.N.String(): NSchema, prop.NI.String(): NISchema,
	prop.NN.String(): NNSchema, prop.R.String(): RSchema, prop.A.String(): ASchema,
	prop.NA1.String(): NA1Schema, prop.NA2.String(): NA2Schema, prop.O1.String(): O1Schema,
	prop.O2.String(): O2Schema, prop.NO.String(): NOSchema,
}

// AxiomSchema returns the schema equivalent to the given propositional axiom, if any.
func AxiomSchema(axiom prop.InferenceRule) (*Schema, bool) {
	s, ok := axiomSchemas[axiom.String()]
	return s, ok
}

// AxiomSpecializationMapToSchemaInstantiationMap converts the specialization map of a propositional
// axiom into the instantiation map of its schema equivalent: each propositional variable is mapped
// to the nullary template relation with the same, capitalized, name, and each propositional
// formula is mapped back to first-order through substitution.
func AxiomSpecializationMapToSchemaInstantiationMap(m prop.SpecializationMap, substitution map[string]*fol.Formula) InstantiationMap {
	res := InstantiationMap{Relations: make(map[string]*fol.Formula, len(m))}
	for k, f := range m {
		if !prop.IsVariable(k) || len(k) != 1 {
			panic(fmt.Sprintf("%q is not an axiom variable", k))
		}
		res.Relations[strings.ToUpper(k)] = fol.FromPropositionalSkeleton(f, substitution)
	}
	return res
}

// ProveFromSkeletonProof converts a proof of the propositional skeleton of f, built with
// substitution, into a proof of f. The skeleton proof must have no assumption and use only
// modus ponens and axioms having a schema equivalent.
// The returned proof only has assumption and modus ponens lines.
func ProveFromSkeletonProof(f *fol.Formula, skeletonProof *prop.Proof, substitution map[string]*fol.Formula) *Proof {
	if len(skeletonProof.Statement.Assumptions) > 0 {
		panic("the skeleton proof must have no assumptions")
	}
	schemas := PropositionalAxiomaticSystemSchemas
	lines := make([]Line, len(skeletonProof.Lines))
	for i, l := range skeletonProof.Lines {
		formula := fol.FromPropositionalSkeleton(l.Formula, substitution)
		switch {
		case l.IsAssumption():
			panic(fmt.Sprintf("line %d of the skeleton proof is an assumption", i))
		case len(l.Rule.Assumptions) == 0:
			schema, ok := AxiomSchema(*l.Rule)
			if !ok {
				panic(fmt.Sprintf("axiom %s has no first-order equivalent", prop.AxiomName(*l.Rule)))
			}
			if !containsSchema(schemas, schema) {
				schemas = PropositionalAxiomaticSystemFullSchemas
			}
			spec := l.Rule.SpecializationMap(prop.InferenceRule{Conclusion: l.Formula})
			lines[i] = &AssumptionLine{Formula: formula, Schema: schema, Map: AxiomSpecializationMapToSchemaInstantiationMap(spec, substitution)}
		default:
			lines[i] = &MPLine{Formula: formula, Antecedent: l.Assumptions[0], Conditional: l.Assumptions[1]}
		}
	}
	return NewProof(schemas, f, lines)
}

func containsSchema(schemas []*Schema, s *Schema) bool {
	for _, t := range schemas {
		if t == s {
			return true
		}
	}
	return false
}

// ProveTautology returns a proof of tautology from the propositional axiom schemas, with only
// assumption and modus ponens lines. It panics if tautology is not a tautology.
func ProveTautology(tautology *fol.Formula) *Proof {
	skeleton, substitution := tautology.PropositionalSkeleton()
	return ProveFromSkeletonProof(tautology, prop.ProveTautology(skeleton, prop.Model{}), substitution)
}
