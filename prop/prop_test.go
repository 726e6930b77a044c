package prop

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	for _, s := range []string{
		"p", "z12", "T", "~F", "~~q", "(p&q)", "((p|~q)->r)", "(~(p->q)&(T|x3))",
	} {
		f, err := Parse(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, f.String())
		assert.True(t, f.Equal(MustParse(f.String())))
	}
}

func TestParseErrors(t *testing.T) {
	for _, s := range []string{
		"", "a", "(p)", "(p&q", "(p-q)", "p&q", "(p&q))", "~", "P",
	} {
		_, err := Parse(s)
		assert.Error(t, err, "%q should not be parsed", s)
	}
}

func TestVariablesAndOperators(t *testing.T) {
	f := MustParse("((p1|~q)->(p1&T))")
	assert.Equal(t, []string{"p1", "q"}, f.Variables())
	assert.Equal(t, []string{"&", "->", "T", "|", "~"}, f.Operators())
}

func TestAllModels(t *testing.T) {
	models := AllModels([]string{"p", "q"})
	require.Len(t, models, 4)
	assert.Equal(t, Model{"p": false, "q": false}, models[0])
	assert.Equal(t, Model{"p": false, "q": true}, models[1])
	assert.Equal(t, Model{"p": true, "q": false}, models[2])
	assert.Equal(t, []bool{false, true, true, true}, TruthValues(MustParse("(p|q)"), models))
}

var formulas = []string{
	"p", "T", "F", "~T", "(p->p)", "(p|~p)", "(p&~p)", "((p->q)->(~q->~p))",
	"((p&q)->(q|r))", "(((p->q)&(q->r))->(p->r))", "((p|q)->p)", "~(p->(q->p))",
	"((p&(q|r))->((p&q)|(p&r)))", "(((p|q)&(~p|r))->(q|r))", "((p->(q&r))->((p->q)&(p->r)))",
	"((~(p&q)&(p|q))&(~(q&r)&(q|r)))", "(((p->q)->p)->p)", "(x&(y|(z&(~x|~y))))",
}

func TestSATAgreesWithEnumeration(t *testing.T) {
	for _, s := range formulas {
		f := MustParse(s)
		assert.Equal(t, IsTautologyByEnumeration(f), IsTautology(f), "tautology check for %s", s)
		m, ok := Satisfiable(f)
		sat := false
		for _, model := range AllModels(f.Variables()) {
			if Evaluate(f, model) {
				sat = true
			}
		}
		require.Equal(t, sat, ok, "satisfiability of %s", s)
		if ok {
			assert.True(t, Evaluate(f, m), "model %v does not satisfy %s", m, s)
		}
	}
}

func TestCounterexample(t *testing.T) {
	f := MustParse("((p|q)->p)")
	m, ok := Counterexample(f)
	require.True(t, ok)
	assert.False(t, Evaluate(f, m))
	assert.Equal(t, Model{"p": false, "q": true}, m)
	_, ok = Counterexample(MustParse("(p->(q->p))"))
	assert.False(t, ok)
}

func TestSpecializationMap(t *testing.T) {
	m := FormulaSpecializationMap(MustParse("(p->(q->p))"), MustParse("(~r->((x&y)->~r))"))
	require.NotNil(t, m)
	assert.Equal(t, "~r", m["p"].String())
	assert.Equal(t, "(x&y)", m["q"].String())
	assert.Nil(t, FormulaSpecializationMap(MustParse("(p->(q->p))"), MustParse("(~r->((x&y)->r))")))
	assert.Nil(t, FormulaSpecializationMap(MustParse("(p&q)"), MustParse("(p|q)")))
	assert.True(t, NewRule([]string{"x", "(x->~y)"}, "~y").IsSpecializationOf(MP))
	assert.False(t, NewRule([]string{"x", "(y->~y)"}, "~y").IsSpecializationOf(MP))
	assert.Equal(t, "[(x|y), ((x|y)->q)] ==> q", MP.Specialize(SpecializationMap{"p": MustParse("(x|y)")}).String())
}

func TestProofValidity(t *testing.T) {
	statement := NewRule([]string{"p", "(p->q)", "(q->r)"}, "r")
	proof := &Proof{
		Statement: statement,
		Rules:     []InferenceRule{MP},
		Lines: []Line{
			AssumptionLine(MustParse("p")),
			AssumptionLine(MustParse("(p->q)")),
			RuleLine(MustParse("q"), MP, 0, 1),
			AssumptionLine(MustParse("(q->r)")),
			RuleLine(MustParse("r"), MP, 2, 3),
		},
	}
	assert.True(t, proof.IsValid())
	proof.Lines[2] = RuleLine(MustParse("q"), MP, 0, 3)
	assert.False(t, proof.IsLineValid(2), "forward reference")
	proof.Lines[2] = RuleLine(MustParse("q"), I1, 0, 1)
	assert.False(t, proof.IsLineValid(2), "rule not allowed")
	proof.Lines[2] = AssumptionLine(MustParse("q"))
	assert.False(t, proof.IsLineValid(2), "not an assumption")
}

func TestRemoveAssumption(t *testing.T) {
	proof := &Proof{
		Statement: NewRule([]string{"(p->q)", "p"}, "q"),
		Rules:     []InferenceRule{MP, I1},
		Lines: []Line{
			AssumptionLine(MustParse("p")),
			AssumptionLine(MustParse("(p->q)")),
			RuleLine(MustParse("q"), MP, 0, 1),
		},
	}
	require.True(t, proof.IsValid())
	removed := RemoveAssumption(proof)
	assert.True(t, removed.IsValid())
	assert.Equal(t, "[(p->q)] ==> (p->q)", removed.Statement.String())
}

func TestProveByContradiction(t *testing.T) {
	rule := NewRule([]string{"(~q->~p)", "p", "~q"}, "~(p->p)")
	proof := ProveSoundInference(rule)
	require.True(t, proof.IsValid())
	res := ProveByContradiction(proof)
	assert.True(t, res.IsValid())
	assert.Equal(t, "q", res.Statement.Conclusion.String())
}

func TestProveTautology(t *testing.T) {
	for _, s := range formulas {
		f := MustParse(s)
		proof, m := ProofOrCounterexample(f)
		if !IsTautologyByEnumeration(f) {
			require.Nil(t, proof)
			assert.False(t, Evaluate(f, m))
			continue
		}
		require.NotNil(t, proof, s)
		assert.Empty(t, proof.Statement.Assumptions)
		assert.True(t, proof.Statement.Conclusion.Equal(f))
		assert.True(t, proof.IsValid(), "proof of %s is invalid", s)
	}
}

func TestProveTautologyImplicationOnly(t *testing.T) {
	proof := ProveTautology(MustParse("((~q->~p)->(p->q))"), Model{})
	require.True(t, proof.IsValid())
	for _, l := range proof.Lines {
		require.False(t, l.IsAssumption())
		assert.True(t, containsRule(AxiomaticSystem, *l.Rule), "unexpected rule %s", l.Rule)
	}
}

func TestProveInModel(t *testing.T) {
	f := MustParse("(p->(q&~r))")
	proof := ProveInModel(f, Model{"p": true, "q": true, "r": true})
	assert.True(t, proof.IsValid())
	assert.Equal(t, "~(p->(q&~r))", proof.Statement.Conclusion.String())
	assert.Equal(t, "[p, q, r] ==> ~(p->(q&~r))", proof.Statement.String())
}

func TestModelOrInconsistency(t *testing.T) {
	m, proof := ModelOrInconsistency([]*Formula{MustParse("(p|q)"), MustParse("~p")})
	require.Nil(t, proof)
	assert.Equal(t, Model{"p": false, "q": true}, m)
	m, proof = ModelOrInconsistency([]*Formula{MustParse("(p|q)"), MustParse("~p"), MustParse("~q")})
	require.Nil(t, m)
	assert.True(t, proof.IsValid())
}

func TestInlineProof(t *testing.T) {
	lemma := ProveSoundInference(NewRule([]string{"p", "q"}, "(p&q)"))
	require.True(t, lemma.IsValid())
	mainProof := &Proof{
		Statement: NewRule([]string{"x", "y"}, "(y&x)"),
		Rules:     []InferenceRule{MP, lemma.Statement},
		Lines: []Line{
			AssumptionLine(MustParse("y")),
			AssumptionLine(MustParse("x")),
			RuleLine(MustParse("(y&x)"), lemma.Statement, 0, 1),
		},
	}
	require.True(t, mainProof.IsValid())
	inlined := InlineProof(mainProof, lemma)
	assert.True(t, inlined.IsValid())
	assert.False(t, inlined.HasRule(lemma.Statement))
}

func ExampleIsTautology() {
	for _, s := range []string{"(((p->q)->p)->p)", "((p->q)->p)"} {
		f := MustParse(s)
		if IsTautology(f) {
			fmt.Printf("%s is a tautology\n", f)
		} else {
			m, _ := Counterexample(f)
			fmt.Printf("%s is false when p=%t\n", f, m["p"])
		}
	}
	// Output:
	// (((p->q)->p)->p) is a tautology
	// ((p->q)->p) is false when p=false
}
