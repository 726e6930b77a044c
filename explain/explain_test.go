package explain

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hilbert-prover/hilbert/fol"
	"github.com/hilbert-prover/hilbert/proofs"
	"github.com/hilbert-prover/hilbert/prover"
	"github.com/hilbert-prover/hilbert/theorems"
)

var f = fol.MustParse

func TestExplainValidProofs(t *testing.T) {
	for _, p := range []*proofs.Proof{theorems.Syllogism(), theorems.Lovers(), theorems.UniqueZero()} {
		ds := Explain(p)
		assert.Len(t, ds, len(p.Lines))
		assert.True(t, Valid(ds))
		assert.Empty(t, Invalid(ds))
	}
}

func brokenProof() *proofs.Proof {
	return &proofs.Proof{
		Assumptions: []*proofs.Schema{proofs.MustParseSchema("R(c)")},
		Conclusion:  f("R(c)"),
		Lines: []proofs.Line{
			&proofs.AssumptionLine{Formula: f("R(c)"), Schema: proofs.MustParseSchema("R(c)")},
			&proofs.TautologyLine{Formula: f("(R(c)->Q(c))")},
			&proofs.MPLine{Formula: f("Q(c)"), Antecedent: 0, Conditional: 1},
			&proofs.MPLine{Formula: f("Q(c)"), Antecedent: 0, Conditional: 9},
			&proofs.UGLine{Formula: f("Ax[Q(c)]"), Predicate: 4},
			&proofs.UGLine{Formula: f("Q(c)"), Predicate: 2},
			&proofs.AssumptionLine{Formula: f("Q(c)"), Schema: proofs.MustParseSchema("Q(c)")},
			&proofs.AssumptionLine{Formula: f("R(d)"), Schema: proofs.MustParseSchema("R(c)", "c"),
				Map: proofs.MustParseInstantiationMap(map[string]string{"c": "b"})},
			&proofs.MPLine{Formula: f("Q(c)"), Antecedent: 2, Conditional: 1},
		},
	}
}

func TestExplainInvalidProof(t *testing.T) {
	fol.FreshNames.Reset()
	p := brokenProof()
	ds := Explain(p)
	require.Len(t, ds, len(p.Lines)+1)
	assert.False(t, Valid(ds))
	for i, d := range ds[:len(p.Lines)] {
		assert.Equal(t, i, d.Line)
		if i != 3 { // IsLineValid panics on references out of range
			assert.Equal(t, p.IsLineValid(i), d.Valid, "line %d", i)
		}
	}

	assert.True(t, ds[0].Valid)
	assert.Equal(t, KindTautology, ds[1].Kind)
	assert.False(t, ds[1].Valid)
	require.NotNil(t, ds[1].Counterexample)
	assert.Equal(t, "R(c)=true, Q(c)=false", ds[1].Counterexample.String())
	assert.True(t, ds[2].Valid)
	assert.Equal(t, "line 9 does not exist", ds[3].Reason)
	assert.Equal(t, "line 4 is not before line 4", ds[4].Reason)
	assert.Equal(t, "Q(c) is not a universal quantification", ds[5].Reason)
	assert.Equal(t, "no assumption instantiated with {} yields Q(c)", ds[6].Reason)
	assert.Equal(t, "instantiating Schema: R(c) [templates: c] with {c: b} yields R(b), not R(d)", ds[7].Reason)
	assert.Equal(t, "premise of line 1 is R(c), but line 2 is Q(c)", ds[8].Reason)

	last := ds[len(ds)-1]
	assert.Equal(t, NoLine, last.Line)
	assert.Equal(t, KindProof, last.Kind)
	assert.Equal(t, "last line proves Q(c), not R(c)", last.Reason)
	assert.Equal(t, "proof: last line proves Q(c), not R(c)", last.String())
	assert.Equal(t, "line 0 (assumption): ok", ds[0].String())
	assert.Equal(t, "line 1 (tautology): (R(c)->Q(c)) is not a tautology; counterexample: R(c)=true, Q(c)=false", ds[1].String())
}

func TestExplainEmptyProof(t *testing.T) {
	ds := Explain(&proofs.Proof{Conclusion: f("R(c)")})
	require.Len(t, ds, 1)
	assert.Equal(t, "proof has no line", ds[0].Reason)
}

func TestFindCounterexample(t *testing.T) {
	_, ok := FindCounterexample(f("(Ax[R(x)]|~Ax[R(x)])"))
	assert.False(t, ok)
	c, ok := FindCounterexample(f("(Ax[R(x)]->R(c))"))
	require.True(t, ok)
	assert.Len(t, c.Values, 2)
	assert.Len(t, c.Atoms, 2)
}

func TestFindCore(t *testing.T) {
	p := prover.NewFromStrings("R(c)", "Q(c)")
	l0 := p.AddAssumption(f("R(c)"))
	p.AddAssumption(f("Q(c)"))
	l2 := p.AddTautology(f("(R(c)->(R(c)|Q(c)))"))
	p.AddMP(f("(R(c)|Q(c))"), l0, l2)
	core := FindCore(p.Qed())
	assert.Equal(t, []int{0, 2, 3}, core.Lines)
	require.Len(t, core.Assumptions, 1)
	assert.Equal(t, "Schema: R(c) [templates: none]", core.Assumptions[0].String())

	assert.Empty(t, FindCore(&proofs.Proof{}).Lines)
}

func TestFindCoreUsesAxioms(t *testing.T) {
	core := FindCore(theorems.Syllogism())
	assert.Len(t, core.Lines, 5)
	var names []string
	for _, a := range core.Assumptions {
		names = append(names, a.Formula.String())
	}
	assert.Contains(t, names, prover.UI.Formula.String())
	assert.NotContains(t, names, prover.ME.Formula.String())
}

func ExampleExplain() {
	p := &proofs.Proof{
		Assumptions: []*proofs.Schema{proofs.MustParseSchema("R(c)")},
		Conclusion:  fol.MustParse("Ax[R(c)]"),
		Lines: []proofs.Line{
			&proofs.AssumptionLine{Formula: fol.MustParse("R(c)"), Schema: proofs.MustParseSchema("R(c)")},
			&proofs.UGLine{Formula: fol.MustParse("Ax[R(d)]"), Predicate: 0},
		},
	}
	for _, d := range Explain(p) {
		fmt.Println(d)
	}
	// Output:
	// line 0 (assumption): ok
	// line 1 (ug): quantified formula is R(d), but line 0 is R(c)
	// proof: last line proves Ax[R(d)], not Ax[R(c)]
}

func TestExplainContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ds, err := ExplainContext(ctx, theorems.Syllogism())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, ds)
}
