package theorems

import (
	"github.com/hilbert-prover/hilbert/fol"
	"github.com/hilbert-prover/hilbert/proofs"
	"github.com/hilbert-prover/hilbert/prover"
)

// GroupAxioms are the axioms of a group: left neutral, left inverse and associativity.
var GroupAxioms = []string{
	"plus(0,x)=x",
	"plus(minus(x),x)=0",
	"plus(plus(x,y),z)=plus(x,plus(y,z))",
}

// A Stage tells RightNeutral where to stop.
type Stage int

// Stages of RightNeutral, in the order they are reached.
const (
	BeforeFlippedEquality Stage = iota
	BeforeFreeInstantiation
	BeforeSubstitutedEquality
	BeforeChainedEquality
	Complete
)

func (s Stage) String() string {
	switch s {
	case BeforeFlippedEquality:
		return "before-flipped-equality"
	case BeforeFreeInstantiation:
		return "before-free-instantiation"
	case BeforeSubstitutedEquality:
		return "before-substituted-equality"
	case BeforeChainedEquality:
		return "before-chained-equality"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}

// RightNeutral proves plus(x,0)=x from GroupAxioms. The proof stops at the given stage,
// in which case it concludes with the last line derived so far.
func RightNeutral(stop Stage, opts ...prover.Option) *proofs.Proof {
	p := newProver(opts, GroupAxioms...)
	zero := p.AddAssumption(f("plus(0,x)=x"))
	negation := p.AddAssumption(f("plus(minus(x),x)=0"))
	associativity := p.AddAssumption(f("plus(plus(x,y),z)=plus(x,plus(y,z))"))
	if stop == BeforeFlippedEquality {
		return p.Qed()
	}
	flippedZero := p.AddFlippedEquality(f("x=plus(0,x)"), zero)
	flippedNegation := p.AddFlippedEquality(f("0=plus(minus(x),x)"), negation)
	flippedAssociativity := p.AddFlippedEquality(f("plus(x,plus(y,z))=plus(plus(x,y),z)"), associativity)
	if stop == BeforeFreeInstantiation {
		return p.Qed()
	}
	l7 := p.AddFreeInstantiation(f("0=plus(minus(minus(x)),minus(x))"), flippedNegation,
		terms(map[string]string{"x": "minus(x)"}))
	l8 := p.AddFlippedEquality(f("plus(minus(minus(x)),minus(x))=0"), l7)
	l9 := p.AddFreeInstantiation(f("plus(plus(minus(minus(x)),minus(x)),x)=plus(minus(minus(x)),plus(minus(x),x))"), associativity,
		terms(map[string]string{"x": "minus(minus(x))", "y": "minus(x)", "z": "x"}))
	l10 := p.AddFreeInstantiation(f("plus(0,0)=0"), zero, terms(map[string]string{"x": "0"}))
	l11 := p.AddFreeInstantiation(f("plus(x,0)=plus(0,plus(x,0))"), flippedZero,
		terms(map[string]string{"x": "plus(x,0)"}))
	l12 := p.AddFreeInstantiation(f("plus(0,plus(x,0))=plus(plus(0,x),0)"), flippedAssociativity,
		terms(map[string]string{"x": "0", "y": "x", "z": "0"}))
	if stop == BeforeSubstitutedEquality {
		return p.Qed()
	}
	l13 := p.AddSubstitutedEquality(f("plus(plus(0,x),0)=plus(plus(plus(minus(minus(x)),minus(x)),x),0)"), l7,
		t("plus(plus(_,x),0)"))
	l14 := p.AddSubstitutedEquality(f("plus(plus(plus(minus(minus(x)),minus(x)),x),0)=plus(plus(minus(minus(x)),plus(minus(x),x)),0)"), l9,
		t("plus(_,0)"))
	l15 := p.AddSubstitutedEquality(f("plus(plus(minus(minus(x)),plus(minus(x),x)),0)=plus(plus(minus(minus(x)),0),0)"), negation,
		t("plus(plus(minus(minus(x)),_),0)"))
	l16 := p.AddFreeInstantiation(f("plus(plus(minus(minus(x)),0),0)=plus(minus(minus(x)),plus(0,0))"), associativity,
		terms(map[string]string{"x": "minus(minus(x))", "y": "0", "z": "0"}))
	l17 := p.AddSubstitutedEquality(f("plus(minus(minus(x)),plus(0,0))=plus(minus(minus(x)),0)"), l10,
		t("plus(minus(minus(x)),_)"))
	l18 := p.AddSubstitutedEquality(f("plus(minus(minus(x)),0)=plus(minus(minus(x)),plus(minus(x),x))"), flippedNegation,
		t("plus(minus(minus(x)),_)"))
	l19 := p.AddFreeInstantiation(f("plus(minus(minus(x)),plus(minus(x),x))=plus(plus(minus(minus(x)),minus(x)),x)"), flippedAssociativity,
		terms(map[string]string{"x": "minus(minus(x))", "y": "minus(x)", "z": "x"}))
	l20 := p.AddSubstitutedEquality(f("plus(plus(minus(minus(x)),minus(x)),x)=plus(0,x)"), l8, t("plus(_,x)"))
	if stop == BeforeChainedEquality {
		return p.Qed()
	}
	p.AddChainedEquality(f("plus(x,0)=x"), l11, l12, l13, l14, l15, l16, l17, l18, l19, l20, zero)
	return p.Qed()
}

// UniqueZero proves c=0 from GroupAxioms and plus(a,c)=a.
func UniqueZero(opts ...prover.Option) *proofs.Proof {
	p := newProver(opts, append(append([]string{}, GroupAxioms...), "plus(a,c)=a")...)
	zero := p.AddAssumption(f("plus(0,x)=x"))
	negation := p.AddAssumption(f("plus(minus(x),x)=0"))
	associativity := p.AddAssumption(f("plus(plus(x,y),z)=plus(x,plus(y,z))"))
	given := p.AddAssumption(f("plus(a,c)=a"))
	l5 := p.AddSubstitutedEquality(f("plus(minus(a),plus(a,c))=plus(minus(a),a)"), given, t("plus(minus(a),_)"))
	l6 := p.AddFreeInstantiation(f("plus(minus(a),a)=0"), negation, terms(map[string]string{"x": "a"}))
	l7 := p.AddFreeInstantiation(f("plus(plus(minus(a),a),c)=plus(minus(a),plus(a,c))"), associativity,
		terms(map[string]string{"x": "minus(a)", "y": "a", "z": "c"}))
	l8 := p.AddSubstitutedEquality(f("plus(plus(minus(a),a),c)=plus(0,c)"), l6, t("plus(_,c)"))
	l9 := p.AddFlippedEquality(f("plus(0,c)=plus(plus(minus(a),a),c)"), l8)
	l10 := p.AddFreeInstantiation(f("plus(0,c)=c"), zero, terms(map[string]string{"x": "c"}))
	l11 := p.AddFlippedEquality(f("c=plus(0,c)"), l10)
	p.AddChainedEquality(f("c=0"), l11, l9, l7, l5, l6)
	return p.Qed()
}

func terms(m map[string]string) map[string]*fol.Term {
	res := make(map[string]*fol.Term, len(m))
	for k, v := range m {
		res[k] = t(v)
	}
	return res
}
