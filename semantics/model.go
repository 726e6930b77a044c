// Package semantics evaluates first-order terms and formulas in finite models.
package semantics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hilbert-prover/hilbert/fol"
)

// A Tuple is an ordered list of elements of a universe.
type Tuple []string

func (t Tuple) key() string {
	return strings.Join(t, "\x1f")
}

func (t Tuple) String() string {
	return "(" + strings.Join(t, ",") + ")"
}

// A Mapping is one entry of the meaning of a function: it maps Args to Value.
type Mapping struct {
	Args  Tuple
	Value string
}

// A Model interprets constant, relation and function names over a finite universe.
// Models are built with NewModel and must not be modified afterwards.
type Model struct {
	Universe         []string
	ConstantMeanings map[string]string
	RelationMeanings map[string][]Tuple
	FunctionMeanings map[string][]Mapping

	relations map[string]map[string]struct{}
	functions map[string]map[string]string
	arities   map[string]int // -1 for relations with an empty meaning
}

// NewModel validates and indexes the given meanings.
// Every function must be total over the universe, every element of every tuple and every
// constant meaning must belong to the universe, and all tuples of a relation must have the same length.
// A relation with no tuple is considered to have any arity.
func NewModel(universe []string, constants map[string]string, relations map[string][]Tuple, functions map[string][]Mapping) (*Model, error) {
	if len(universe) == 0 {
		return nil, fmt.Errorf("universe cannot be empty")
	}
	m := &Model{
		Universe:         append([]string{}, universe...),
		ConstantMeanings: constants,
		RelationMeanings: relations,
		FunctionMeanings: functions,
		relations:        make(map[string]map[string]struct{}, len(relations)),
		functions:        make(map[string]map[string]string, len(functions)),
		arities:          make(map[string]int),
	}
	sort.Strings(m.Universe)
	elements := fol.NewSet(m.Universe...)
	inUniverse := func(elems ...string) error {
		for _, e := range elems {
			if !elements.Has(e) {
				return fmt.Errorf("%s is not in the universe", e)
			}
		}
		return nil
	}
	for name, value := range constants {
		if !fol.IsConstant(name) {
			return nil, fmt.Errorf("%q is not a constant name", name)
		}
		if err := inUniverse(value); err != nil {
			return nil, fmt.Errorf("invalid meaning for constant %s: %w", name, err)
		}
	}
	for name, tuples := range relations {
		if !fol.IsRelation(name) {
			return nil, fmt.Errorf("%q is not a relation name", name)
		}
		set := make(map[string]struct{}, len(tuples))
		arity := -1
		for _, t := range tuples {
			if arity != -1 && len(t) != arity {
				return nil, fmt.Errorf("relation %s has tuples of different arities", name)
			}
			arity = len(t)
			if err := inUniverse(t...); err != nil {
				return nil, fmt.Errorf("invalid meaning for relation %s: %w", name, err)
			}
			set[t.key()] = struct{}{}
		}
		m.relations[name] = set
		m.arities[name] = arity
	}
	for name, mappings := range functions {
		if !fol.IsFunction(name) {
			return nil, fmt.Errorf("%q is not a function name", name)
		}
		if len(mappings) == 0 {
			return nil, fmt.Errorf("function %s has no meaning", name)
		}
		arity := len(mappings[0].Args)
		if arity == 0 {
			return nil, fmt.Errorf("function %s must have arguments", name)
		}
		index := make(map[string]string, len(mappings))
		for _, mp := range mappings {
			if len(mp.Args) != arity {
				return nil, fmt.Errorf("function %s has mappings of different arities", name)
			}
			if err := inUniverse(append(append(Tuple{}, mp.Args...), mp.Value)...); err != nil {
				return nil, fmt.Errorf("invalid meaning for function %s: %w", name, err)
			}
			if prev, ok := index[mp.Args.key()]; ok && prev != mp.Value {
				return nil, fmt.Errorf("function %s maps %s to both %s and %s", name, mp.Args, prev, mp.Value)
			}
			index[mp.Args.key()] = mp.Value
		}
		if expected := pow(len(m.Universe), arity); len(index) != expected {
			return nil, fmt.Errorf("function %s is not total: %d mappings instead of %d", name, len(index), expected)
		}
		m.functions[name] = index
		m.arities[name] = arity
	}
	return m, nil
}

// MustNewModel is like NewModel but panics on invalid meanings.
func MustNewModel(universe []string, constants map[string]string, relations map[string][]Tuple, functions map[string][]Mapping) *Model {
	m, err := NewModel(universe, constants, relations, functions)
	if err != nil {
		panic(err)
	}
	return m
}

func pow(base, exp int) int {
	res := 1
	for i := 0; i < exp; i++ {
		res *= base
	}
	return res
}

// An Assignment associates variable names with elements of the universe.
type Assignment map[string]string

// Arity returns the arity of the given relation or function name, or -1 if it is a relation with an empty meaning.
func (m *Model) Arity(name string) (int, bool) {
	a, ok := m.arities[name]
	return a, ok
}

// EvaluateTerm returns the element of the universe t denotes in m under the given assignment.
// It panics if t uses a name m does not interpret or a variable that is not assigned.
func (m *Model) EvaluateTerm(t *fol.Term, assignment Assignment) string {
	switch {
	case fol.IsConstant(t.Root):
		v, ok := m.ConstantMeanings[t.Root]
		if !ok {
			panic(fmt.Sprintf("constant %s has no meaning", t.Root))
		}
		return v
	case fol.IsVariable(t.Root):
		v, ok := assignment[t.Root]
		if !ok {
			panic(fmt.Sprintf("variable %s is not assigned", t.Root))
		}
		return v
	default:
		index, ok := m.functions[t.Root]
		if !ok {
			panic(fmt.Sprintf("function %s has no meaning", t.Root))
		}
		if m.arities[t.Root] != len(t.Arguments) {
			panic(fmt.Sprintf("function %s is used with arity %d", t.Root, len(t.Arguments)))
		}
		return index[m.evaluateArguments(t.Arguments, assignment).key()]
	}
}

func (m *Model) evaluateArguments(args []*fol.Term, assignment Assignment) Tuple {
	res := make(Tuple, len(args))
	for i, a := range args {
		res[i] = m.EvaluateTerm(a, assignment)
	}
	return res
}

// EvaluateFormula returns the truth value of f in m under the given assignment,
// which must assign every free variable of f.
func (m *Model) EvaluateFormula(f *fol.Formula, assignment Assignment) bool {
	switch {
	case fol.IsEquality(f.Root):
		return m.EvaluateTerm(f.Arguments[0], assignment) == m.EvaluateTerm(f.Arguments[1], assignment)
	case fol.IsRelation(f.Root):
		set, ok := m.relations[f.Root]
		if !ok {
			panic(fmt.Sprintf("relation %s has no meaning", f.Root))
		}
		if a := m.arities[f.Root]; a != -1 && a != len(f.Arguments) {
			panic(fmt.Sprintf("relation %s is used with arity %d", f.Root, len(f.Arguments)))
		}
		_, in := set[m.evaluateArguments(f.Arguments, assignment).key()]
		return in
	case fol.IsUnary(f.Root):
		return !m.EvaluateFormula(f.First, assignment)
	case f.Root == fol.OpAnd:
		return m.EvaluateFormula(f.First, assignment) && m.EvaluateFormula(f.Second, assignment)
	case f.Root == fol.OpOr:
		return m.EvaluateFormula(f.First, assignment) || m.EvaluateFormula(f.Second, assignment)
	case f.Root == fol.OpImplies:
		return !m.EvaluateFormula(f.First, assignment) || m.EvaluateFormula(f.Second, assignment)
	default:
		inner := make(Assignment, len(assignment)+1)
		for k, v := range assignment {
			inner[k] = v
		}
		universal := f.Root == fol.ForAllQ
		for _, e := range m.Universe {
			inner[f.Variable] = e
			if m.EvaluateFormula(f.Predicate, inner) != universal {
				return !universal
			}
		}
		return universal
	}
}

// IsModelOf returns true iff every formula holds in m under every assignment of its free variables.
func (m *Model) IsModelOf(formulas []*fol.Formula) bool {
	for _, f := range formulas {
		vars := f.FreeVariables().Sorted()
		for _, a := range m.assignments(vars) {
			if !m.EvaluateFormula(f, a) {
				return false
			}
		}
	}
	return true
}

// assignments enumerates every assignment of vars.
func (m *Model) assignments(vars []string) []Assignment {
	res := []Assignment{{}}
	for _, v := range vars {
		var next []Assignment
		for _, a := range res {
			for _, e := range m.Universe {
				b := make(Assignment, len(a)+1)
				for k, val := range a {
					b[k] = val
				}
				b[v] = e
				next = append(next, b)
			}
		}
		res = next
	}
	return res
}

// Relation returns the tuples of the meaning of name, sorted.
func (m *Model) Relation(name string) []Tuple {
	res := append([]Tuple{}, m.RelationMeanings[name]...)
	sort.Slice(res, func(i, j int) bool { return res[i].key() < res[j].key() })
	return res
}
