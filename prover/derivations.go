package prover

import (
	"fmt"

	"github.com/hilbert-prover/hilbert/fol"
	"github.com/hilbert-prover/hilbert/proofs"
)

var placeholder = &fol.Term{Root: fol.Placeholder}

func mustSubstitute(f *fol.Formula, m map[string]*fol.Term) *fol.Formula {
	res, err := f.Substitute(m, nil)
	if err != nil {
		panic(fmt.Sprintf("could not substitute in %s: %v", f, err))
	}
	return res
}

func mustSubstituteTerm(t *fol.Term, m map[string]*fol.Term) *fol.Term {
	res, err := t.Substitute(m, nil)
	if err != nil {
		panic(fmt.Sprintf("could not substitute in %s: %v", t, err))
	}
	return res
}

func (p *Prover) equality(n int) *fol.Formula {
	f := p.Line(n)
	if !fol.IsEquality(f.Root) {
		panic(fmt.Sprintf("line %d is not an equality: %s", n, f))
	}
	return f
}

// AddUniversalInstantiation appends instantiation, obtained by substituting term for the
// quantified variable x of the formula Ax[predicate] of the given line.
//
// If the line is Ay[Az[f(x,y)=g(z,y)]] and term is h(w), instantiation must be
// Az[f(x,h(w))=g(z,h(w))].
func (p *Prover) AddUniversalInstantiation(instantiation *fol.Formula, line int, term *fol.Term) int {
	quantified := p.Line(line)
	if quantified.Root != fol.ForAllQ {
		panic(fmt.Sprintf("line %d is not universally quantified: %s", line, quantified))
	}
	x := quantified.Variable
	if expected := mustSubstitute(quantified.Predicate, map[string]*fol.Term{x: term}); !expected.Equal(instantiation) {
		panic(fmt.Sprintf("%s is not the instantiation of %s with %s", instantiation, quantified, term))
	}
	m := proofs.InstantiationMap{
		Constants: map[string]*fol.Term{"c": term},
		Variables: map[string]string{"x": x},
		Relations: map[string]*fol.Formula{"R": mustSubstitute(quantified.Predicate, map[string]*fol.Term{x: placeholder})},
	}
	conditional := p.AddInstantiatedAssumption(fol.Implies(quantified, instantiation), UI, m)
	return p.AddMP(instantiation, line, conditional)
}

// AddTautologicalImplication appends implication, which must be a tautological consequence
// of the formulas of the given lines.
func (p *Prover) AddTautologicalImplication(implication *fol.Formula, lines ...int) int {
	conditional := implication
	for i := len(lines) - 1; i >= 0; i-- {
		conditional = fol.Implies(p.Line(lines[i]), conditional)
	}
	n := p.AddTautology(conditional)
	for _, l := range lines {
		conditional = conditional.Second
		n = p.AddMP(conditional, l, n)
	}
	return n
}

// AddExistentialDerivation appends consequent, given a line Ex[antecedent] and a line
// (antecedent->consequent), where x has no free occurrence in consequent.
func (p *Prover) AddExistentialDerivation(consequent *fol.Formula, line1, line2 int) int {
	quantified := p.Line(line1)
	if quantified.Root != fol.ExistsQ {
		panic(fmt.Sprintf("line %d is not existentially quantified: %s", line1, quantified))
	}
	x := quantified.Variable
	if consequent.FreeVariables().Has(x) {
		panic(fmt.Sprintf("%s is free in %s", x, consequent))
	}
	conditional := p.Line(line2)
	if !conditional.Equal(fol.Implies(quantified.Predicate, consequent)) {
		panic(fmt.Sprintf("line %d is not (%s->%s)", line2, quantified.Predicate, consequent))
	}
	generalized := p.AddUG(fol.ForAll(x, conditional), line2)
	m := proofs.InstantiationMap{
		Variables: map[string]string{"x": x},
		Relations: map[string]*fol.Formula{
			"R": mustSubstitute(quantified.Predicate, map[string]*fol.Term{x: placeholder}),
			"Q": consequent,
		},
	}
	es := p.AddInstantiatedAssumption(fol.Implies(fol.And(p.Line(generalized), quantified), consequent), ES, m)
	return p.AddTautologicalImplication(consequent, line1, generalized, es)
}

// AddFlippedEquality appends flipped, the equality of the given line with its sides exchanged.
func (p *Prover) AddFlippedEquality(flipped *fol.Formula, line int) int {
	equality := p.equality(line)
	s, t := equality.Arguments[0], equality.Arguments[1]
	if !flipped.Equal(fol.Equality(t, s)) {
		panic(fmt.Sprintf("%s is not %s flipped", flipped, equality))
	}
	reflexivity := p.AddInstantiatedAssumption(fol.Equality(s, s), RX,
		proofs.InstantiationMap{Constants: map[string]*fol.Term{"c": s}})
	m := proofs.InstantiationMap{
		Constants: map[string]*fol.Term{"c": s, "d": t},
		Relations: map[string]*fol.Formula{"R": fol.Equality(placeholder, s)},
	}
	step := fol.Implies(fol.Equality(s, s), flipped)
	meaning := p.AddInstantiatedAssumption(fol.Implies(equality, step), ME, m)
	n := p.AddMP(step, line, meaning)
	return p.AddMP(flipped, reflexivity, n)
}

// AddFreeInstantiation appends instantiation, obtained by simultaneously substituting, in the
// formula of the given line, each free variable that is a key of m with its image.
// Names minted by fol.FreshNames must not be used by the formula nor by the images.
//
// If the line is Ay[Az[f(x,y)=g(z,y)]] and m is {x: h(w)}, instantiation must be
// Ay[Az[f(h(w),y)=g(z,y)]].
func (p *Prover) AddFreeInstantiation(instantiation *fol.Formula, line int, m map[string]*fol.Term) int {
	f := p.Line(line)
	for v := range m {
		if !fol.IsVariable(v) {
			panic(fmt.Sprintf("%q is not a variable name", v))
		}
	}
	if expected := mustSubstitute(f, m); !expected.Equal(instantiation) {
		panic(fmt.Sprintf("%s is not the instantiation of %s with %v", instantiation, f, m))
	}
	used := f.Variables()
	for _, t := range m {
		for v := range t.Variables() {
			used.Add(v)
		}
	}
	vars := fol.NewSet()
	for v := range m {
		vars.Add(v)
	}
	// Renaming to fresh variables first keeps images from being substituted again.
	fresh := make(map[string]string, len(m))
	n := line
	for _, v := range vars.Sorted() {
		z := fol.FreshNames.Next()
		for used.Has(z) {
			z = fol.FreshNames.Next()
		}
		used.Add(z)
		fresh[v] = z
		current := p.Line(n)
		n = p.AddUG(fol.ForAll(v, current), n)
		n = p.AddUniversalInstantiation(mustSubstitute(current, map[string]*fol.Term{v: {Root: z}}), n, &fol.Term{Root: z})
	}
	for _, v := range vars.Sorted() {
		z := fresh[v]
		current := p.Line(n)
		n = p.AddUG(fol.ForAll(z, current), n)
		n = p.AddUniversalInstantiation(mustSubstitute(current, map[string]*fol.Term{z: m[v]}), n, m[v])
	}
	return n
}

// AddSubstitutedEquality appends substituted, obtained by substituting each side of the equality
// of the given line into the term parametrized by the placeholder "_".
//
// If the line is g(x)=h(y) and parametrized is plus(_,7), substituted must be plus(g(x),7)=plus(h(y),7).
func (p *Prover) AddSubstitutedEquality(substituted *fol.Formula, line int, parametrized *fol.Term) int {
	equality := p.equality(line)
	s, t := equality.Arguments[0], equality.Arguments[1]
	left := mustSubstituteTerm(parametrized, map[string]*fol.Term{fol.Placeholder: s})
	right := mustSubstituteTerm(parametrized, map[string]*fol.Term{fol.Placeholder: t})
	if !substituted.Equal(fol.Equality(left, right)) {
		panic(fmt.Sprintf("%s is not %s substituted in %s", substituted, equality, parametrized))
	}
	reflexivity := p.AddInstantiatedAssumption(fol.Equality(left, left), RX,
		proofs.InstantiationMap{Constants: map[string]*fol.Term{"c": left}})
	m := proofs.InstantiationMap{
		Constants: map[string]*fol.Term{"c": s, "d": t},
		Relations: map[string]*fol.Formula{"R": fol.Equality(left, parametrized)},
	}
	step := fol.Implies(fol.Equality(left, left), substituted)
	meaning := p.AddInstantiatedAssumption(fol.Implies(equality, step), ME, m)
	n := p.AddMP(step, line, meaning)
	return p.AddMP(substituted, reflexivity, n)
}

// AddChainingOfTwoEqualities appends first=third, given a line first=second and a line second=third.
//
// If the lines are a=b and b=f(b), the appended line is a=f(b).
func (p *Prover) AddChainingOfTwoEqualities(line1, line2 int) int {
	eq1, eq2 := p.equality(line1), p.equality(line2)
	first, second, third := eq1.Arguments[0], eq1.Arguments[1], eq2.Arguments[1]
	if !second.Equal(eq2.Arguments[0]) {
		panic(fmt.Sprintf("cannot chain %s and %s", eq1, eq2))
	}
	flipped := p.AddFlippedEquality(fol.Equality(second, first), line1)
	m := proofs.InstantiationMap{
		Constants: map[string]*fol.Term{"c": second, "d": first},
		Relations: map[string]*fol.Formula{"R": fol.Equality(placeholder, third)},
	}
	chained := fol.Equality(first, third)
	step := fol.Implies(eq2, chained)
	meaning := p.AddInstantiatedAssumption(fol.Implies(p.Line(flipped), step), ME, m)
	n := p.AddMP(step, flipped, meaning)
	return p.AddMP(chained, line2, n)
}

// AddChainedEquality appends chained, which must be t1=tn given lines t1=t2, t2=t3, ..., t(n-1)=tn,
// in this order. At least two lines must be given.
//
// If the lines are a=b, b=f(b) and f(b)=c, chained must be a=c.
func (p *Prover) AddChainedEquality(chained *fol.Formula, lines ...int) int {
	if len(lines) < 2 {
		panic("at least two equalities are needed to chain")
	}
	first, last := p.equality(lines[0]), p.equality(lines[len(lines)-1])
	if !chained.Equal(fol.Equality(first.Arguments[0], last.Arguments[1])) {
		panic(fmt.Sprintf("%s is not the chaining of lines %v", chained, lines))
	}
	n := lines[0]
	for _, l := range lines[1:] {
		n = p.AddChainingOfTwoEqualities(n, l)
	}
	return n
}
