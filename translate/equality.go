package translate

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/hilbert-prover/hilbert/fol"
	"github.com/hilbert-prover/hilbert/semantics"
)

// Same is the relation name standing for equality once it has been eliminated.
const Same = "SAME"

func same(t1, t2 *fol.Term) *fol.Formula {
	return fol.Relation(Same, t1, t2)
}

// ReplaceEqualityWithSameInFormula returns f with every equality t1=t2 replaced with SAME(t1,t2).
func ReplaceEqualityWithSameInFormula(f *fol.Formula) *fol.Formula {
	switch {
	case fol.IsEquality(f.Root):
		return same(f.Arguments[0], f.Arguments[1])
	case fol.IsUnary(f.Root):
		return fol.Not(ReplaceEqualityWithSameInFormula(f.First))
	case fol.IsBinary(f.Root):
		return fol.Binary(f.Root, ReplaceEqualityWithSameInFormula(f.First), ReplaceEqualityWithSameInFormula(f.Second))
	case fol.IsQuantifier(f.Root):
		return fol.Quantified(f.Root, f.Variable, ReplaceEqualityWithSameInFormula(f.Predicate))
	default:
		return f
	}
}

// ReplaceEqualityWithSameInFormulas translates each formula with ReplaceEqualityWithSameInFormula
// and adds the formulas stating that SAME is reflexive, symmetric and transitive, and that it
// respects every relation of positive arity used in the formulas. The formulas must contain no
// function and must not use the relation SAME.
func ReplaceEqualityWithSameInFormulas(formulas []*fol.Formula) []*fol.Formula {
	relations := make(fol.Symbols)
	for _, f := range formulas {
		if fs := f.Functions(); len(fs) != 0 {
			panic(fmt.Sprintf("%s contains functions", f))
		}
		for sym := range f.Relations() {
			if sym.Name == Same {
				panic(fmt.Sprintf("%s already uses relation %s", f, Same))
			}
			relations[sym] = struct{}{}
		}
	}
	res := lo.Map(formulas, func(f *fol.Formula, _ int) *fol.Formula { return ReplaceEqualityWithSameInFormula(f) })
	x, y, z := &fol.Term{Root: "x"}, &fol.Term{Root: "y"}, &fol.Term{Root: "z"}
	res = append(res,
		fol.ForAll("x", same(x, x)),
		fol.ForAll("x", fol.ForAll("y", fol.Implies(same(x, y), same(y, x)))),
		fol.ForAll("x", fol.ForAll("y", fol.ForAll("z", fol.Implies(fol.And(same(x, y), same(y, z)), same(x, z))))),
	)
	for _, sym := range relations.Sorted() {
		if sym.Arity > 0 {
			res = append(res, respectsSame(sym.Name, sym.Arity))
		}
	}
	return res
}

// respectsSame returns Ax1[...Ax2n[((SAME(x1,x2)&...&SAME(x2n-1,x2n))->(R(x1,x3,...)->R(x2,x4,...)))]].
func respectsSame(relation string, arity int) *fol.Formula {
	xs := numbered("x", 2*arity)
	args := vars(xs...)
	left := make([]*fol.Term, arity)
	right := make([]*fol.Term, arity)
	var premise *fol.Formula
	for i := 0; i < arity; i++ {
		left[i], right[i] = args[2*i], args[2*i+1]
		if premise == nil {
			premise = same(left[i], right[i])
		} else {
			premise = fol.And(premise, same(left[i], right[i]))
		}
	}
	return forAll(xs, fol.Implies(premise, fol.Implies(fol.Relation(relation, left...), fol.Relation(relation, right...))))
}

// AddSameAsEqualityInModel returns m with the relation SAME interpreted as equality.
func AddSameAsEqualityInModel(m *semantics.Model) (*semantics.Model, error) {
	if _, ok := m.RelationMeanings[Same]; ok {
		return nil, fmt.Errorf("relation %s already has a meaning", Same)
	}
	relations := lo.Assign(m.RelationMeanings, map[string][]semantics.Tuple{
		Same: lo.Map(m.Universe, func(e string, _ int) semantics.Tuple { return semantics.Tuple{e, e} }),
	})
	return semantics.NewModel(m.Universe, m.ConstantMeanings, relations, m.FunctionMeanings)
}

// MakeEqualityAsSameInModel returns the quotient of m by the meaning of SAME, which must be an
// equivalence relation respected by every other relation: each class is represented by its
// smallest element, and the relation SAME is dropped. m must not interpret any function.
func MakeEqualityAsSameInModel(m *semantics.Model) (*semantics.Model, error) {
	if len(m.FunctionMeanings) != 0 {
		return nil, fmt.Errorf("model interprets functions")
	}
	sameTuples, ok := m.RelationMeanings[Same]
	if !ok {
		return nil, fmt.Errorf("relation %s has no meaning", Same)
	}
	classes := make(map[string][]string, len(m.Universe))
	for _, t := range sameTuples {
		if len(t) != 2 {
			return nil, fmt.Errorf("relation %s is not binary", Same)
		}
		classes[t[0]] = append(classes[t[0]], t[1])
	}
	representative := make(map[string]string, len(m.Universe))
	for _, e := range m.Universe { // sorted by NewModel
		if _, ok := representative[e]; ok {
			continue
		}
		representative[e] = e
		for _, other := range classes[e] {
			if _, ok := representative[other]; !ok {
				representative[other] = e
			}
		}
	}
	universe := lo.Uniq(lo.Map(m.Universe, func(e string, _ int) string { return representative[e] }))
	constants := lo.MapValues(m.ConstantMeanings, func(e string, _ string) string { return representative[e] })
	relations := make(map[string][]semantics.Tuple, len(m.RelationMeanings))
	for name, tuples := range m.RelationMeanings {
		if name == Same {
			continue
		}
		mapped := lo.Map(tuples, func(t semantics.Tuple, _ int) semantics.Tuple {
			return lo.Map(t, func(e string, _ int) string { return representative[e] })
		})
		relations[name] = lo.UniqBy(mapped, func(t semantics.Tuple) string { return strings.Join(t, ",") })
	}
	return semantics.NewModel(universe, constants, relations, nil)
}
