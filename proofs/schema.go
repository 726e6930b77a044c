package proofs

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hilbert-prover/hilbert/fol"
)

// A Schema is a formula some of whose constant, variable and relation names are templates
// that may be instantiated.
// A template relation always appears in the formula with the same arity, which is either 0 or 1.
type Schema struct {
	Formula   *fol.Formula
	Templates fol.Set
}

// NewSchema returns the schema of f with the given templates.
// It panics if a template is not a constant, variable or relation name, or if a template
// relation does not appear in f with the single arity 0 or 1.
func NewSchema(f *fol.Formula, templates ...string) *Schema {
	if err := checkTemplates(f, templates); err != nil {
		panic(err.Error())
	}
	return &Schema{Formula: f, Templates: fol.NewSet(templates...)}
}

func checkTemplates(f *fol.Formula, templates []string) error {
	for _, t := range templates {
		switch {
		case fol.IsConstant(t), fol.IsVariable(t):
		case fol.IsRelation(t):
			arities := make(map[int]struct{})
			for sym := range f.Relations() {
				if sym.Name == t {
					arities[sym.Arity] = struct{}{}
				}
			}
			_, nullary := arities[0]
			_, unary := arities[1]
			if len(arities) != 1 || !(nullary || unary) {
				return fmt.Errorf("template relation %s must appear in %s with a single arity of 0 or 1", t, f)
			}
		default:
			return fmt.Errorf("invalid template %q", t)
		}
	}
	return nil
}

// ParseSchema parses formula and returns its schema with the given templates.
func ParseSchema(formula string, templates ...string) (*Schema, error) {
	f, err := fol.Parse(formula)
	if err != nil {
		return nil, err
	}
	if err := checkTemplates(f, templates); err != nil {
		return nil, err
	}
	return &Schema{Formula: f, Templates: fol.NewSet(templates...)}, nil
}

// MustParseSchema is like ParseSchema but panics on error.
func MustParseSchema(formula string, templates ...string) *Schema {
	return NewSchema(fol.MustParse(formula), templates...)
}

func (s *Schema) String() string {
	templates := "none"
	if len(s.Templates) > 0 {
		templates = strings.Join(s.Templates.Sorted(), ", ")
	}
	return "Schema: " + s.Formula.String() + " [templates: " + templates + "]"
}

// Equal returns true iff both schemas have the same formula and the same templates.
func (s *Schema) Equal(other *Schema) bool {
	if len(s.Templates) != len(other.Templates) || !s.Formula.Equal(other.Formula) {
		return false
	}
	for t := range s.Templates {
		if !other.Templates.Has(t) {
			return false
		}
	}
	return true
}

// Key returns a string uniquely identifying s.
func (s *Schema) Key() string {
	return s.String()
}

// An InstantiationMap maps the templates of a schema to what they are instantiated into.
// Template constants are mapped to terms, template variables to variable names,
// and template relations to formulas. Formulas for unary relations are parametrized by
// the placeholder constant "_", which stands for the argument of each invocation.
type InstantiationMap struct {
	Constants map[string]*fol.Term
	Variables map[string]string
	Relations map[string]*fol.Formula
}

// ParseInstantiationMap builds an instantiation map from its string representation.
// Each key is routed according to its kind: constants are mapped to parsed terms,
// variables to variable names and relations to parsed formulas.
func ParseInstantiationMap(m map[string]string) (InstantiationMap, error) {
	var res InstantiationMap
	for k, v := range m {
		switch {
		case fol.IsConstant(k):
			t, err := fol.ParseTerm(v)
			if err != nil {
				return InstantiationMap{}, fmt.Errorf("invalid term for %s: %w", k, err)
			}
			if res.Constants == nil {
				res.Constants = make(map[string]*fol.Term)
			}
			res.Constants[k] = t
		case fol.IsVariable(k):
			if !fol.IsVariable(v) {
				return InstantiationMap{}, fmt.Errorf("%s must be mapped to a variable name, not %q", k, v)
			}
			if res.Variables == nil {
				res.Variables = make(map[string]string)
			}
			res.Variables[k] = v
		case fol.IsRelation(k):
			f, err := fol.Parse(v)
			if err != nil {
				return InstantiationMap{}, fmt.Errorf("invalid formula for %s: %w", k, err)
			}
			if res.Relations == nil {
				res.Relations = make(map[string]*fol.Formula)
			}
			res.Relations[k] = f
		default:
			return InstantiationMap{}, fmt.Errorf("%q cannot be a template", k)
		}
	}
	return res, nil
}

// MustParseInstantiationMap is like ParseInstantiationMap but panics on error.
func MustParseInstantiationMap(m map[string]string) InstantiationMap {
	res, err := ParseInstantiationMap(m)
	if err != nil {
		panic(err)
	}
	return res
}

// Strings returns the string representation of m, the inverse of ParseInstantiationMap.
func (m InstantiationMap) Strings() map[string]string {
	res := make(map[string]string, m.Len())
	for k, t := range m.Constants {
		res[k] = t.String()
	}
	for k, v := range m.Variables {
		res[k] = v
	}
	for k, f := range m.Relations {
		res[k] = f.String()
	}
	return res
}

// Len returns the number of keys of m.
func (m InstantiationMap) Len() int {
	return len(m.Constants) + len(m.Variables) + len(m.Relations)
}

func (m InstantiationMap) String() string {
	strs := m.Strings()
	keys := make([]string, 0, len(strs))
	for k := range strs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for i, k := range keys {
		keys[i] = k + ": " + strs[k]
	}
	return "{" + strings.Join(keys, ", ") + "}"
}

// A BoundVariableError is returned when instantiating a template relation would make one of
// its variables bound.
type BoundVariableError struct {
	Variable string
	Relation string
}

func (e *BoundVariableError) Error() string {
	return fmt.Sprintf("variable %s would become bound when instantiating relation %s", e.Variable, e.Relation)
}

// Instantiate returns the formula obtained by instantiating the templates of s according to m.
// Templates absent from m are left untouched.
// It returns false if a key of m is not a template of s, or if the instantiation would capture
// a variable: either a free variable of the formula of a template relation would become bound by
// a quantification of s, or a variable of the argument of a unary template relation would become
// bound by a quantification of the formula it is mapped to.
func (s *Schema) Instantiate(m InstantiationMap) (*fol.Formula, bool) {
	terms := make(map[string]*fol.Term, len(m.Constants)+len(m.Variables))
	for k, t := range m.Constants {
		if !fol.IsConstant(k) {
			panic(fmt.Sprintf("%q is not a constant name", k))
		}
		if !s.Templates.Has(k) {
			return nil, false
		}
		terms[k] = t
	}
	for k, v := range m.Variables {
		if !fol.IsVariable(k) || !fol.IsVariable(v) {
			panic(fmt.Sprintf("%q must be a variable name mapped to a variable name", k))
		}
		if !s.Templates.Has(k) {
			return nil, false
		}
		terms[k] = &fol.Term{Root: v}
	}
	for k := range m.Relations {
		if !fol.IsRelation(k) {
			panic(fmt.Sprintf("%q is not a relation name", k))
		}
		if !s.Templates.Has(k) {
			return nil, false
		}
	}
	f, err := InstantiateFormula(s.Formula, terms, m.Relations, nil)
	if err != nil {
		return nil, false
	}
	return f, true
}

// InstantiateFormula substitutes, in f, the constants and variables that are keys of terms
// (variables must be mapped to variables), and the invocations of the relations that are keys of
// relations. The argument of a unary invocation is instantiated first, then substituted for
// the placeholder "_" in the formula the relation is mapped to.
// Only names originating in f are substituted. Variables of bound are considered bound by
// an enclosing quantification.
//
// A *BoundVariableError is returned if a free variable of a relation's formula is bound at the
// place of the invocation, or if a variable of the instantiated argument of a unary invocation
// gets bound inside the relation's formula.
func InstantiateFormula(f *fol.Formula, terms map[string]*fol.Term, relations map[string]*fol.Formula, bound fol.Set) (*fol.Formula, error) {
	switch {
	case fol.IsEquality(f.Root), fol.IsRelation(f.Root) && relations[f.Root] == nil:
		res, err := f.Substitute(terms, nil)
		if err != nil {
			return nil, boundVariableError(err, f.Root)
		}
		return res, nil
	case fol.IsUnary(f.Root):
		first, err := InstantiateFormula(f.First, terms, relations, bound)
		if err != nil {
			return nil, err
		}
		return fol.Not(first), nil
	case fol.IsBinary(f.Root):
		first, err := InstantiateFormula(f.First, terms, relations, bound)
		if err != nil {
			return nil, err
		}
		second, err := InstantiateFormula(f.Second, terms, relations, bound)
		if err != nil {
			return nil, err
		}
		return fol.Binary(f.Root, first, second), nil
	case fol.IsRelation(f.Root):
		args := make([]*fol.Term, len(f.Arguments))
		for i, a := range f.Arguments {
			arg, err := a.Substitute(terms, nil)
			if err != nil {
				return nil, boundVariableError(err, f.Root)
			}
			args[i] = arg
		}
		replacement := relations[f.Root]
		for _, v := range replacement.FreeVariables().Sorted() {
			if bound.Has(v) {
				return nil, &BoundVariableError{Variable: v, Relation: f.Root}
			}
		}
		if len(args) == 0 {
			return replacement, nil
		}
		res, err := replacement.Substitute(map[string]*fol.Term{fol.Placeholder: args[0]}, nil)
		if err != nil {
			return nil, boundVariableError(err, f.Root)
		}
		return res, nil
	default:
		v := f.Variable
		if t, ok := terms[v]; ok {
			v = t.Root
		}
		pred, err := InstantiateFormula(f.Predicate, terms, relations, bound.With(v))
		if err != nil {
			return nil, err
		}
		return fol.Quantified(f.Root, v, pred), nil
	}
}

func boundVariableError(err error, relation string) error {
	if fve, ok := err.(*fol.ForbiddenVariableError); ok {
		return &BoundVariableError{Variable: fve.Variable, Relation: relation}
	}
	return err
}
