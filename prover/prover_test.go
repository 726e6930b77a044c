package prover

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hilbert-prover/hilbert/fol"
	"github.com/hilbert-prover/hilbert/proofs"
)

var f = fol.MustParse

func TestAxiomsAreWellFormed(t *testing.T) {
	assert.Len(t, Axioms, 6)
	assert.Equal(t, "Schema: (Ax[R(x)]->R(c)) [templates: R, c, x]", UI.String())
	assert.Equal(t, "Schema: (c=d->(R(c)->R(d))) [templates: R, c, d]", ME.String())
}

func TestNewDeduplicatesAssumptions(t *testing.T) {
	p := New([]*proofs.Schema{UI, proofs.MustParseSchema("R(c)"), proofs.MustParseSchema("R(c)")})
	assert.Len(t, p.Assumptions(), len(Axioms)+1)
	assert.Same(t, UI, p.Assumptions()[0])
}

func TestUniversalInstantiationSyllogism(t *testing.T) {
	p := NewFromStrings("Ay[(Man(y)->Mortal(y))]", "Man(aristotle)")
	l1 := p.AddAssumption(f("Ay[(Man(y)->Mortal(y))]"))
	l2 := p.AddUniversalInstantiation(f("(Man(aristotle)->Mortal(aristotle))"), l1, fol.MustParseTerm("aristotle"))
	l3 := p.AddAssumption(f("Man(aristotle)"))
	p.AddMP(f("Mortal(aristotle)"), l3, l2)
	proof := p.Qed()
	assert.True(t, proof.IsValid())
	assert.Equal(t, "Mortal(aristotle)", proof.Conclusion.String())
}

func TestUniversalInstantiationNested(t *testing.T) {
	p := NewFromStrings("Ay[Az[f(x,y)=g(z,y)]]")
	l := p.AddAssumption(f("Ay[Az[f(x,y)=g(z,y)]]"))
	n := p.AddUniversalInstantiation(f("Az[f(x,h(w))=g(z,h(w))]"), l, fol.MustParseTerm("h(w)"))
	assert.Equal(t, "Az[f(x,h(w))=g(z,h(w))]", p.Line(n).String())
	assert.True(t, p.Qed().IsValid())

	assert.Panics(t, func() { p.AddUniversalInstantiation(f("Az[f(x,w)=g(z,w)]"), l, fol.MustParseTerm("h(w)")) })
	assert.Panics(t, func() { p.AddUniversalInstantiation(f("Az[f(x,z)=g(z,z)]"), l, fol.MustParseTerm("z")) })
}

func TestExistentialDerivation(t *testing.T) {
	p := NewFromStrings("Ax[(Man(x)->Mortal(x))]", "Ex[Man(x)]")
	l1 := p.AddAssumption(f("Ax[(Man(x)->Mortal(x))]"))
	l2 := p.AddAssumption(f("Ex[Man(x)]"))
	l3 := p.AddUniversalInstantiation(f("(Man(x)->Mortal(x))"), l1, fol.MustParseTerm("x"))
	l4 := p.AddInstantiatedAssumption(f("(Mortal(x)->Ex[Mortal(x)])"), EI,
		proofs.MustParseInstantiationMap(map[string]string{"R": "Mortal(_)", "c": "x"}))
	l5 := p.AddTautologicalImplication(f("(Man(x)->Ex[Mortal(x)])"), l3, l4)
	p.AddExistentialDerivation(f("Ex[Mortal(x)]"), l2, l5)
	proof := p.Qed()
	assert.True(t, proof.IsValid())
	assert.Equal(t, "Ex[Mortal(x)]", proof.Conclusion.String())
}

func TestExistentialDerivationPreconditions(t *testing.T) {
	p := NewFromStrings("Ex[R(x)]", "(R(x)->Q(x))")
	l1 := p.AddAssumption(f("Ex[R(x)]"))
	l2 := p.AddAssumption(f("(R(x)->Q(x))"))
	assert.Panics(t, func() { p.AddExistentialDerivation(f("Q(x)"), l1, l2) })
	assert.Panics(t, func() { p.AddExistentialDerivation(f("Q(x)"), l2, l1) })
}

func TestTautologicalImplication(t *testing.T) {
	p := NewFromStrings("(R(c)|Q(c))", "~R(c)")
	l1 := p.AddAssumption(f("(R(c)|Q(c))"))
	l2 := p.AddAssumption(f("~R(c)"))
	n := p.AddTautologicalImplication(f("Q(c)"), l1, l2)
	assert.Equal(t, "Q(c)", p.Line(n).String())
	proof := p.Qed()
	assert.True(t, proof.IsValid())
	assert.Equal(t, "((R(c)|Q(c))->(~R(c)->Q(c)))", proof.Lines[2].Conclusion().String())

	assert.Panics(t, func() { p.AddTautologicalImplication(f("R(c)"), l1) })
}

func TestFlippedEquality(t *testing.T) {
	p := NewFromStrings("f(x)=c")
	l := p.AddAssumption(f("f(x)=c"))
	n := p.AddFlippedEquality(f("c=f(x)"), l)
	assert.Equal(t, "c=f(x)", p.Line(n).String())
	assert.True(t, p.Qed().IsValid())
	assert.Panics(t, func() { p.AddFlippedEquality(f("f(x)=c"), l) })
}

func TestSubstitutedEquality(t *testing.T) {
	p := NewFromStrings("g(x)=h(y)")
	l := p.AddAssumption(f("g(x)=h(y)"))
	n := p.AddSubstitutedEquality(f("plus(g(x),7)=plus(h(y),7)"), l, fol.MustParseTerm("plus(_,7)"))
	assert.Equal(t, "plus(g(x),7)=plus(h(y),7)", p.Line(n).String())
	n = p.AddSubstitutedEquality(f("s(s(g(x)))=s(s(h(y)))"), l, fol.MustParseTerm("s(s(_))"))
	assert.Equal(t, "s(s(g(x)))=s(s(h(y)))", p.Line(n).String())
	assert.True(t, p.Qed().IsValid())
}

func TestChainedEquality(t *testing.T) {
	p := NewFromStrings("a=b", "b=f(b)", "f(b)=c", "c=d")
	l1 := p.AddAssumption(f("a=b"))
	l2 := p.AddAssumption(f("b=f(b)"))
	l3 := p.AddAssumption(f("f(b)=c"))
	l4 := p.AddAssumption(f("c=d"))
	n := p.AddChainingOfTwoEqualities(l1, l2)
	assert.Equal(t, "a=f(b)", p.Line(n).String())
	n = p.AddChainedEquality(f("a=d"), l1, l2, l3, l4)
	assert.Equal(t, "a=d", p.Line(n).String())
	assert.True(t, p.Qed().IsValid())

	assert.Panics(t, func() { p.AddChainedEquality(f("a=b"), l1) })
	assert.Panics(t, func() { p.AddChainedEquality(f("a=d"), l1, l3) })
	assert.Panics(t, func() { p.AddChainingOfTwoEqualities(l2, l1) })
}

func TestFreeInstantiation(t *testing.T) {
	p := NewFromStrings("(R(x,y)->Aw[S(x,w)])")
	l := p.AddAssumption(f("(R(x,y)->Aw[S(x,w)])"))
	n := p.AddFreeInstantiation(f("(R(y,f(x))->Aw[S(y,w)])"), l, map[string]*fol.Term{
		"x": fol.MustParseTerm("y"),
		"y": fol.MustParseTerm("f(x)"),
	})
	assert.Equal(t, "(R(y,f(x))->Aw[S(y,w)])", p.Line(n).String())
	assert.True(t, p.Qed().IsValid())

	assert.Panics(t, func() {
		p.AddFreeInstantiation(f("(R(w,y)->Aw[S(w,w)])"), l, map[string]*fol.Term{"x": fol.MustParseTerm("w")})
	})
}

func TestAddProof(t *testing.T) {
	lemma := NewFromStrings("Ax[R(x)]")
	l := lemma.AddAssumption(f("Ax[R(x)]"))
	n := lemma.AddUniversalInstantiation(f("R(c)"), l, fol.MustParseTerm("c"))
	lemma.AddUG(f("Ay[R(c)]"), n)
	sub := lemma.Qed()

	p := NewFromStrings("(R(c)->Q(c))", "Ax[R(x)]")
	p.AddAssumption(f("(R(c)->Q(c))"))
	n = p.AddProof(f("Ay[R(c)]"), sub)
	assert.Equal(t, 1+len(sub.Lines)-1, n)
	assert.True(t, p.Qed().IsValid())

	assert.Panics(t, func() { p.AddProof(f("R(c)"), sub) })
	assert.Panics(t, func() { NewFromStrings().AddProof(f("Ay[R(c)]"), sub) })
}

func TestAddTautologyProof(t *testing.T) {
	tautology := f("(R(c)->R(c))")
	proof := proofs.ProveTautology(tautology)
	require.True(t, proof.IsValid())

	p := New(proofs.PropositionalAxiomaticSystemSchemas)
	n := p.AddProof(tautology, proof)
	assert.Equal(t, tautology.String(), p.Line(n).String())
	assert.True(t, p.Qed().IsValid())
}

func TestInvalidLinesPanic(t *testing.T) {
	p := NewFromStrings("R(c)")
	l := p.AddAssumption(f("R(c)"))
	assert.Panics(t, func() { p.AddAssumption(f("Q(c)")) })
	q := NewFromStrings("R(c)")
	q.AddAssumption(f("R(c)"))
	assert.Panics(t, func() { q.AddMP(f("Q(c)"), l, l) })
	assert.Panics(t, func() { NewFromStrings().AddTautology(f("(R(c)->Q(c))")) })
	assert.Panics(t, func() { NewFromStrings().Qed() })
	assert.Panics(t, func() { p.Line(5) })
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	p := New([]*proofs.Schema{proofs.MustParseSchema("R(c)")}, WithLogger(logger))
	p.AddAssumption(f("R(c)"))
	p.Qed()
	assert.Contains(t, buf.String(), "formula=R(c)")
	assert.Contains(t, buf.String(), "msg=qed")
}

func ExampleProver_AddFlippedEquality() {
	p := NewFromStrings("a=f(b)")
	l := p.AddAssumption(fol.MustParse("a=f(b)"))
	p.AddFlippedEquality(fol.MustParse("f(b)=a"), l)
	proof := p.Qed()
	for i, line := range proof.Lines {
		fmt.Println(i, line.Conclusion())
	}
	fmt.Println(proof.IsValid())
	// Output:
	// 0 a=f(b)
	// 1 a=a
	// 2 (a=f(b)->(a=a->f(b)=a))
	// 3 (a=a->f(b)=a)
	// 4 f(b)=a
	// true
}
