package theorems

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hilbert-prover/hilbert/proofs"
	"github.com/hilbert-prover/hilbert/prover"
)

func hasAssumptions(t *testing.T, p *proofs.Proof, formulas ...string) {
	t.Helper()
	expected := append([]*proofs.Schema{}, prover.Axioms...)
	for _, s := range formulas {
		expected = append(expected, proofs.MustParseSchema(s))
	}
	var got, want []string
	for _, s := range p.Assumptions {
		got = append(got, s.Key())
	}
	for _, s := range expected {
		want = append(want, s.Key())
	}
	assert.ElementsMatch(t, want, got)
}

func containsLine(p *proofs.Proof, formula string) bool {
	for _, l := range p.Lines {
		if l.Conclusion().String() == formula {
			return true
		}
	}
	return false
}

func TestSyllogisms(t *testing.T) {
	tests := []struct {
		name        string
		proof       func(...prover.Option) *proofs.Proof
		assumptions []string
		conclusion  string
	}{
		{"syllogism", Syllogism, []string{"Ax[(Man(x)->Mortal(x))]", "Man(aristotle)"}, "Mortal(aristotle)"},
		{"syllogism with UI", SyllogismWithUniversalInstantiation, []string{"Ax[(Man(x)->Mortal(x))]", "Man(aristotle)"}, "Mortal(aristotle)"},
		{"all all", SyllogismAllAll, []string{"Ax[(Greek(x)->Human(x))]", "Ax[(Human(x)->Mortal(x))]"}, "Ax[(Greek(x)->Mortal(x))]"},
		{"all all with tautological implication", SyllogismAllAllWithTautologicalImplication,
			[]string{"Ax[(Greek(x)->Human(x))]", "Ax[(Human(x)->Mortal(x))]"}, "Ax[(Greek(x)->Mortal(x))]"},
		{"all exists", SyllogismAllExists, []string{"Ax[(Man(x)->Mortal(x))]", "Ex[Man(x)]"}, "Ex[Mortal(x)]"},
		{"all exists with existential derivation", SyllogismAllExistsWithExistentialDerivation,
			[]string{"Ax[(Man(x)->Mortal(x))]", "Ex[Man(x)]"}, "Ex[Mortal(x)]"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			p := test.proof()
			assert.Equal(t, test.conclusion, p.Conclusion.String())
			hasAssumptions(t, p, test.assumptions...)
			assert.True(t, p.IsValid())
		})
	}
}

func TestLovers(t *testing.T) {
	p := Lovers()
	hasAssumptions(t, p, "Ax[Ey[Loves(x,y)]]", "Ax[Az[Ay[(Loves(x,y)->Loves(z,x))]]]")
	assert.Equal(t, "Ax[Az[Loves(z,x)]]", p.Conclusion.String())
	assert.True(t, p.IsValid())
}

func TestHomework(t *testing.T) {
	p := Homework()
	hasAssumptions(t, p, "~Ex[(Homework(x)&Fun(x))]", "Ex[(Homework(x)&Reading(x))]")
	assert.Equal(t, "Ex[(Reading(x)&~Fun(x))]", p.Conclusion.String())
	assert.True(t, p.IsValid())
}

func TestUniqueZero(t *testing.T) {
	p := UniqueZero()
	hasAssumptions(t, p, append(append([]string{}, GroupAxioms...), "plus(a,c)=a")...)
	assert.Equal(t, "c=0", p.Conclusion.String())
	assert.True(t, p.IsValid())
}

func TestRightNeutral(t *testing.T) {
	tests := []struct {
		stop       Stage
		conclusion string
		lines      []string
	}{
		{BeforeFreeInstantiation, "plus(x,plus(y,z))=plus(plus(x,y),z)", []string{
			"x=plus(0,x)",
			"0=plus(minus(x),x)",
		}},
		{BeforeSubstitutedEquality, "plus(0,plus(x,0))=plus(plus(0,x),0)", []string{
			"0=plus(minus(minus(x)),minus(x))",
			"plus(plus(minus(minus(x)),minus(x)),x)=plus(minus(minus(x)),plus(minus(x),x))",
			"plus(0,0)=0",
			"plus(x,0)=plus(0,plus(x,0))",
		}},
		{BeforeChainedEquality, "plus(plus(minus(minus(x)),minus(x)),x)=plus(0,x)", []string{
			"plus(plus(0,x),0)=plus(plus(plus(minus(minus(x)),minus(x)),x),0)",
			"plus(plus(plus(minus(minus(x)),minus(x)),x),0)=plus(plus(minus(minus(x)),plus(minus(x),x)),0)",
			"plus(plus(minus(minus(x)),plus(minus(x),x)),0)=plus(plus(minus(minus(x)),0),0)",
			"plus(minus(minus(x)),plus(0,0))=plus(minus(minus(x)),0)",
			"plus(minus(minus(x)),0)=plus(minus(minus(x)),plus(minus(x),x))",
		}},
		{Complete, "plus(x,0)=x", nil},
	}
	for _, test := range tests {
		t.Run(test.stop.String(), func(t *testing.T) {
			p := RightNeutral(test.stop)
			hasAssumptions(t, p, GroupAxioms...)
			assert.Equal(t, test.conclusion, p.Conclusion.String())
			assert.True(t, p.IsValid())
			for _, l := range test.lines {
				assert.True(t, containsLine(p, l), l)
			}
		})
	}
}

func ExampleLovers() {
	p := Lovers()
	fmt.Println(p.Conclusion, p.IsValid())
	// Output: Ax[Az[Loves(z,x)]] true
}
