// Package translate eliminates function symbols and equality from models and formulas,
// replacing functions with relations and equality with the SAME relation.
package translate

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/hilbert-prover/hilbert/fol"
	"github.com/hilbert-prover/hilbert/semantics"
)

// FunctionNameToRelationName returns the relation name standing for the given function name.
func FunctionNameToRelationName(function string) string {
	if !fol.IsFunction(function) {
		panic(fmt.Sprintf("%q is not a function name", function))
	}
	return strings.ToUpper(function[:1]) + function[1:]
}

// RelationNameToFunctionName is the inverse of FunctionNameToRelationName.
func RelationNameToFunctionName(relation string) string {
	if !fol.IsRelation(relation) {
		panic(fmt.Sprintf("%q is not a relation name", relation))
	}
	return strings.ToLower(relation[:1]) + relation[1:]
}

// ReplaceFunctionsWithRelationsInModel returns a model with no function meanings, in which each
// function f of arity n is replaced with a relation F of arity n+1, holding for (f(a1,...,an),a1,...,an).
func ReplaceFunctionsWithRelationsInModel(m *semantics.Model) (*semantics.Model, error) {
	relations := make(map[string][]semantics.Tuple, len(m.RelationMeanings)+len(m.FunctionMeanings))
	for name, tuples := range m.RelationMeanings {
		relations[name] = tuples
	}
	for name, mappings := range m.FunctionMeanings {
		relation := FunctionNameToRelationName(name)
		if _, ok := m.RelationMeanings[relation]; ok {
			return nil, fmt.Errorf("cannot replace function %s: relation %s already has a meaning", name, relation)
		}
		relations[relation] = lo.Map(mappings, func(mp semantics.Mapping, _ int) semantics.Tuple {
			return append(semantics.Tuple{mp.Value}, mp.Args...)
		})
	}
	return semantics.NewModel(m.Universe, m.ConstantMeanings, relations, nil)
}

// ReplaceRelationsWithFunctionsInModel is the inverse of ReplaceFunctionsWithRelationsInModel for
// the given function names. It returns false if the meaning of the relation standing for one of
// these functions is not the graph of a total function.
func ReplaceRelationsWithFunctionsInModel(m *semantics.Model, originalFunctions []string) (*semantics.Model, bool) {
	functions := make(map[string][]semantics.Mapping, len(m.FunctionMeanings)+len(originalFunctions))
	for name, mappings := range m.FunctionMeanings {
		functions[name] = mappings
	}
	relations := make(map[string][]semantics.Tuple, len(m.RelationMeanings))
	for name, tuples := range m.RelationMeanings {
		relations[name] = tuples
	}
	for _, name := range originalFunctions {
		if _, ok := m.FunctionMeanings[name]; ok {
			panic(fmt.Sprintf("function %s already has a meaning", name))
		}
		relation := FunctionNameToRelationName(name)
		tuples, ok := m.RelationMeanings[relation]
		if !ok {
			panic(fmt.Sprintf("relation %s has no meaning", relation))
		}
		if len(tuples) == 0 || len(tuples[0]) < 2 {
			return nil, false
		}
		mappings := make([]semantics.Mapping, 0, len(tuples))
		seen := make(map[string]struct{}, len(tuples))
		for _, t := range tuples {
			key := strings.Join(t[1:], ",")
			if _, dup := seen[key]; dup {
				return nil, false
			}
			seen[key] = struct{}{}
			mappings = append(mappings, semantics.Mapping{Args: t[1:], Value: t[0]})
		}
		functions[name] = mappings
		delete(relations, relation)
	}
	res, err := semantics.NewModel(m.Universe, m.ConstantMeanings, relations, functions)
	if err != nil {
		return nil, false
	}
	return res, true
}

// CompileTerm returns the steps computing t, whose root must be a function: each step is
// z=f(a1,...,an) where z is a fresh variable and each ai is a constant or a variable,
// either original or the fresh variable of an earlier step. The fresh variable of the last step
// holds the value of t.
func CompileTerm(t *fol.Term) []*fol.Formula {
	if !fol.IsFunction(t.Root) {
		panic(fmt.Sprintf("%s is not a function invocation", t))
	}
	args, steps := compileArguments(t.Arguments)
	z := &fol.Term{Root: fol.FreshNames.Next()}
	return append(steps, fol.Equality(z, &fol.Term{Root: t.Root, Arguments: args}))
}

func compileArguments(terms []*fol.Term) ([]*fol.Term, []*fol.Formula) {
	args := make([]*fol.Term, len(terms))
	var steps []*fol.Formula
	for i, t := range terms {
		if !fol.IsFunction(t.Root) {
			args[i] = t
			continue
		}
		compiled := CompileTerm(t)
		steps = append(steps, compiled...)
		args[i] = compiled[len(compiled)-1].Arguments[0]
	}
	return args, steps
}

func checkTranslatable(formulas []*fol.Formula) {
	relations := fol.NewSet()
	for _, f := range formulas {
		for sym := range f.Relations() {
			relations.Add(sym.Name)
		}
	}
	for _, f := range formulas {
		for sym := range f.Functions() {
			if relations.Has(FunctionNameToRelationName(sym.Name)) {
				panic(fmt.Sprintf("function %s clashes with relation %s", sym.Name, FunctionNameToRelationName(sym.Name)))
			}
		}
		for v := range f.Variables() {
			if strings.HasPrefix(v, "z") {
				panic(fmt.Sprintf("variable %s is reserved for fresh names", v))
			}
		}
	}
}

// ReplaceFunctionsWithRelationsInFormula returns a formula equivalent to f, with each function f
// replaced with the relation F. An atomic formula R(f(x)) becomes Az1[(F(z1,x)->R(z1))].
// f must not use variables starting with z, nor relation names standing for its functions.
func ReplaceFunctionsWithRelationsInFormula(f *fol.Formula) *fol.Formula {
	checkTranslatable([]*fol.Formula{f})
	return replaceFunctions(f)
}

func replaceFunctions(f *fol.Formula) *fol.Formula {
	switch {
	case fol.IsUnary(f.Root):
		return fol.Not(replaceFunctions(f.First))
	case fol.IsBinary(f.Root):
		return fol.Binary(f.Root, replaceFunctions(f.First), replaceFunctions(f.Second))
	case fol.IsQuantifier(f.Root):
		return fol.Quantified(f.Root, f.Variable, replaceFunctions(f.Predicate))
	}
	args, steps := compileArguments(f.Arguments)
	res := &fol.Formula{Root: f.Root, Arguments: args}
	for i := len(steps) - 1; i >= 0; i-- {
		z, invocation := steps[i].Arguments[0], steps[i].Arguments[1]
		graph := fol.Relation(FunctionNameToRelationName(invocation.Root), append([]*fol.Term{z}, invocation.Arguments...)...)
		res = fol.ForAll(z.Root, fol.Implies(graph, res))
	}
	return res
}

// ReplaceFunctionsWithRelationsInFormulas translates each formula with
// ReplaceFunctionsWithRelationsInFormula, and adds, for each function f of arity n, a formula
// stating that F is the graph of a function:
//
//	(Ax1[...Axn[Ez[F(z,x1,...,xn)]]]&Ax1[...Axn[Az1[Az2[((F(z1,x1,...,xn)&F(z2,x1,...,xn))->z1=z2)]]]])
//
// so that the returned formulas have a model iff the given ones do.
func ReplaceFunctionsWithRelationsInFormulas(formulas []*fol.Formula) []*fol.Formula {
	checkTranslatable(formulas)
	res := lo.Map(formulas, func(f *fol.Formula, _ int) *fol.Formula { return replaceFunctions(f) })
	functions := make(fol.Symbols)
	for _, f := range formulas {
		for sym := range f.Functions() {
			functions[sym] = struct{}{}
		}
	}
	for _, sym := range functions.Sorted() {
		res = append(res, functionGraph(FunctionNameToRelationName(sym.Name), sym.Arity))
	}
	return res
}

func vars(names ...string) []*fol.Term {
	return lo.Map(names, func(n string, _ int) *fol.Term { return &fol.Term{Root: n} })
}

func numbered(prefix string, n int) []string {
	return lo.Times(n, func(i int) string { return fmt.Sprintf("%s%d", prefix, i+1) })
}

// forAll quantifies f universally over names, the first name being the outermost quantifier.
func forAll(names []string, f *fol.Formula) *fol.Formula {
	for i := len(names) - 1; i >= 0; i-- {
		f = fol.ForAll(names[i], f)
	}
	return f
}

func functionGraph(relation string, arity int) *fol.Formula {
	xs := numbered("x", arity)
	args := vars(xs...)
	total := forAll(xs, fol.Exists("z", fol.Relation(relation, append(vars("z"), args...)...)))
	unique := forAll(append(xs, "z1", "z2"), fol.Implies(
		fol.And(
			fol.Relation(relation, append(vars("z1"), args...)...),
			fol.Relation(relation, append(vars("z2"), args...)...)),
		fol.Equality(&fol.Term{Root: "z1"}, &fol.Term{Root: "z2"})))
	return fol.And(total, unique)
}
