// Package theorems holds ready-made first-order proofs, built with the prover.
// Each function returns a valid proof; options are passed on to the prover.
package theorems

import (
	"github.com/hilbert-prover/hilbert/fol"
	"github.com/hilbert-prover/hilbert/proofs"
	"github.com/hilbert-prover/hilbert/prover"
)

var (
	f = fol.MustParse
	t = fol.MustParseTerm
	m = proofs.MustParseInstantiationMap
)

func newProver(opts []prover.Option, assumptions ...string) *prover.Prover {
	schemas := make([]*proofs.Schema, len(assumptions))
	for i, a := range assumptions {
		schemas[i] = proofs.MustParseSchema(a)
	}
	return prover.New(schemas, opts...)
}

// Syllogism proves Mortal(aristotle) from Ax[(Man(x)->Mortal(x))] and Man(aristotle),
// instantiating UI by hand.
func Syllogism(opts ...prover.Option) *proofs.Proof {
	p := newProver(opts, "Ax[(Man(x)->Mortal(x))]", "Man(aristotle)")
	l1 := p.AddAssumption(f("Ax[(Man(x)->Mortal(x))]"))
	l2 := p.AddInstantiatedAssumption(f("(Ax[(Man(x)->Mortal(x))]->(Man(aristotle)->Mortal(aristotle)))"), prover.UI,
		m(map[string]string{"R": "(Man(_)->Mortal(_))", "c": "aristotle"}))
	l3 := p.AddMP(f("(Man(aristotle)->Mortal(aristotle))"), l1, l2)
	l4 := p.AddAssumption(f("Man(aristotle)"))
	p.AddMP(f("Mortal(aristotle)"), l4, l3)
	return p.Qed()
}

// SyllogismWithUniversalInstantiation is Syllogism, using AddUniversalInstantiation.
func SyllogismWithUniversalInstantiation(opts ...prover.Option) *proofs.Proof {
	p := newProver(opts, "Ax[(Man(x)->Mortal(x))]", "Man(aristotle)")
	l1 := p.AddAssumption(f("Ax[(Man(x)->Mortal(x))]"))
	l2 := p.AddUniversalInstantiation(f("(Man(aristotle)->Mortal(aristotle))"), l1, t("aristotle"))
	l3 := p.AddAssumption(f("Man(aristotle)"))
	p.AddMP(f("Mortal(aristotle)"), l3, l2)
	return p.Qed()
}

// SyllogismAllAll proves Ax[(Greek(x)->Mortal(x))] from Ax[(Greek(x)->Human(x))] and
// Ax[(Human(x)->Mortal(x))].
func SyllogismAllAll(opts ...prover.Option) *proofs.Proof {
	p := newProver(opts, "Ax[(Greek(x)->Human(x))]", "Ax[(Human(x)->Mortal(x))]")
	l1 := p.AddAssumption(f("Ax[(Greek(x)->Human(x))]"))
	l2 := p.AddUniversalInstantiation(f("(Greek(x)->Human(x))"), l1, t("x"))
	l3 := p.AddAssumption(f("Ax[(Human(x)->Mortal(x))]"))
	l4 := p.AddUniversalInstantiation(f("(Human(x)->Mortal(x))"), l3, t("x"))
	l5 := p.AddTautology(f("((Greek(x)->Human(x))->((Human(x)->Mortal(x))->(Greek(x)->Mortal(x))))"))
	l6 := p.AddMP(f("((Human(x)->Mortal(x))->(Greek(x)->Mortal(x)))"), l2, l5)
	l7 := p.AddMP(f("(Greek(x)->Mortal(x))"), l4, l6)
	p.AddUG(f("Ax[(Greek(x)->Mortal(x))]"), l7)
	return p.Qed()
}

// SyllogismAllAllWithTautologicalImplication is SyllogismAllAll, using AddTautologicalImplication.
func SyllogismAllAllWithTautologicalImplication(opts ...prover.Option) *proofs.Proof {
	p := newProver(opts, "Ax[(Greek(x)->Human(x))]", "Ax[(Human(x)->Mortal(x))]")
	l1 := p.AddAssumption(f("Ax[(Greek(x)->Human(x))]"))
	l2 := p.AddUniversalInstantiation(f("(Greek(x)->Human(x))"), l1, t("x"))
	l3 := p.AddAssumption(f("Ax[(Human(x)->Mortal(x))]"))
	l4 := p.AddUniversalInstantiation(f("(Human(x)->Mortal(x))"), l3, t("x"))
	l5 := p.AddTautologicalImplication(f("(Greek(x)->Mortal(x))"), l2, l4)
	p.AddUG(f("Ax[(Greek(x)->Mortal(x))]"), l5)
	return p.Qed()
}

// SyllogismAllExists proves Ex[Mortal(x)] from Ax[(Man(x)->Mortal(x))] and Ex[Man(x)],
// instantiating ES by hand.
func SyllogismAllExists(opts ...prover.Option) *proofs.Proof {
	p := newProver(opts, "Ax[(Man(x)->Mortal(x))]", "Ex[Man(x)]")
	l1 := p.AddAssumption(f("Ax[(Man(x)->Mortal(x))]"))
	l2 := p.AddAssumption(f("Ex[Man(x)]"))
	l3 := p.AddUniversalInstantiation(f("(Man(x)->Mortal(x))"), l1, t("x"))
	l4 := p.AddInstantiatedAssumption(f("(Mortal(x)->Ex[Mortal(x)])"), prover.EI,
		m(map[string]string{"R": "Mortal(_)", "c": "x"}))
	l5 := p.AddTautologicalImplication(f("(Man(x)->Ex[Mortal(x)])"), l3, l4)
	l6 := p.AddUG(f("Ax[(Man(x)->Ex[Mortal(x)])]"), l5)
	l7 := p.AddInstantiatedAssumption(f("((Ax[(Man(x)->Ex[Mortal(x)])]&Ex[Man(x)])->Ex[Mortal(x)])"), prover.ES,
		m(map[string]string{"R": "Man(_)", "Q": "Ex[Mortal(x)]"}))
	p.AddTautologicalImplication(f("Ex[Mortal(x)]"), l2, l6, l7)
	return p.Qed()
}

// SyllogismAllExistsWithExistentialDerivation is SyllogismAllExists, using AddExistentialDerivation.
func SyllogismAllExistsWithExistentialDerivation(opts ...prover.Option) *proofs.Proof {
	p := newProver(opts, "Ax[(Man(x)->Mortal(x))]", "Ex[Man(x)]")
	l1 := p.AddAssumption(f("Ax[(Man(x)->Mortal(x))]"))
	l2 := p.AddAssumption(f("Ex[Man(x)]"))
	l3 := p.AddUniversalInstantiation(f("(Man(x)->Mortal(x))"), l1, t("x"))
	l4 := p.AddInstantiatedAssumption(f("(Mortal(x)->Ex[Mortal(x)])"), prover.EI,
		m(map[string]string{"R": "Mortal(_)", "c": "x"}))
	l5 := p.AddTautologicalImplication(f("(Man(x)->Ex[Mortal(x)])"), l3, l4)
	p.AddExistentialDerivation(f("Ex[Mortal(x)]"), l2, l5)
	return p.Qed()
}

// Lovers proves that everybody is loved by everybody, Ax[Az[Loves(z,x)]], from
// "everybody loves somebody" and "everybody loves a lover".
func Lovers(opts ...prover.Option) *proofs.Proof {
	p := newProver(opts, "Ax[Ey[Loves(x,y)]]", "Ax[Az[Ay[(Loves(x,y)->Loves(z,x))]]]")
	l1 := p.AddAssumption(f("Ax[Ey[Loves(x,y)]]"))
	l2 := p.AddUniversalInstantiation(f("Ey[Loves(x,y)]"), l1, t("x"))
	l3 := p.AddAssumption(f("Ax[Az[Ay[(Loves(x,y)->Loves(z,x))]]]"))
	l4 := p.AddUniversalInstantiation(f("Az[Ay[(Loves(x,y)->Loves(z,x))]]"), l3, t("x"))
	l5 := p.AddUniversalInstantiation(f("Ay[(Loves(x,y)->Loves(z,x))]"), l4, t("z"))
	l6 := p.AddUniversalInstantiation(f("(Loves(x,y)->Loves(z,x))"), l5, t("y"))
	l7 := p.AddExistentialDerivation(f("Loves(z,x)"), l2, l6)
	l8 := p.AddUG(f("Az[Loves(z,x)]"), l7)
	p.AddUG(f("Ax[Az[Loves(z,x)]]"), l8)
	return p.Qed()
}

// Homework proves that some reading is not fun, Ex[(Reading(x)&~Fun(x))], from
// "no homework is fun" and "some reading is homework".
func Homework(opts ...prover.Option) *proofs.Proof {
	p := newProver(opts, "~Ex[(Homework(x)&Fun(x))]", "Ex[(Homework(x)&Reading(x))]")
	l1 := p.AddAssumption(f("~Ex[(Homework(x)&Fun(x))]"))
	l2 := p.AddAssumption(f("Ex[(Homework(x)&Reading(x))]"))
	l3 := p.AddInstantiatedAssumption(f("((Homework(x)&Fun(x))->Ex[(Homework(x)&Fun(x))])"), prover.EI,
		m(map[string]string{"R": "(Homework(_)&Fun(_))", "c": "x"}))
	l4 := p.AddTautologicalImplication(f("(Homework(x)->~Fun(x))"), l1, l3)
	l5 := p.AddInstantiatedAssumption(f("((Reading(x)&~Fun(x))->Ex[(Reading(x)&~Fun(x))])"), prover.EI,
		m(map[string]string{"R": "(Reading(_)&~Fun(_))", "c": "x"}))
	l6 := p.AddTautologicalImplication(f("((Homework(x)&Reading(x))->Ex[(Reading(x)&~Fun(x))])"), l4, l5)
	p.AddExistentialDerivation(f("Ex[(Reading(x)&~Fun(x))]"), l2, l6)
	return p.Qed()
}
