package fol

import "fmt"

// A ForbiddenVariableError is returned when a substitution would introduce a forbidden variable.
type ForbiddenVariableError struct {
	Variable string
}

func (e *ForbiddenVariableError) Error() string {
	return fmt.Sprintf("variable %s is forbidden in the substitution context", e.Variable)
}

func checkSubstitution(m map[string]*Term, forbidden Set) {
	for name := range m {
		if !IsConstant(name) && !IsVariable(name) {
			panic(fmt.Sprintf("cannot substitute %q: not a constant nor a variable", name))
		}
	}
	for v := range forbidden {
		if !IsVariable(v) {
			panic(fmt.Sprintf("forbidden name %q is not a variable", v))
		}
	}
}

// Substitute replaces each constant or variable of t that is a key of m with its image.
// Only names originating in t are replaced: images are not substituted again.
// If an image contains a variable from forbidden, a *ForbiddenVariableError is returned.
func (t *Term) Substitute(m map[string]*Term, forbidden Set) (*Term, error) {
	checkSubstitution(m, forbidden)
	return t.substitute(m, forbidden)
}

func (t *Term) substitute(m map[string]*Term, forbidden Set) (*Term, error) {
	if IsFunction(t.Root) {
		args := make([]*Term, len(t.Arguments))
		for i, a := range t.Arguments {
			arg, err := a.substitute(m, forbidden)
			if err != nil {
				return nil, err
			}
			args[i] = arg
		}
		return &Term{Root: t.Root, Arguments: args}, nil
	}
	image, ok := m[t.Root]
	if !ok {
		return t, nil
	}
	for _, v := range image.Variables().Sorted() {
		if forbidden.Has(v) {
			return nil, &ForbiddenVariableError{Variable: v}
		}
	}
	return image, nil
}

// Substitute replaces each constant, and each free occurrence of a variable, of f that is a key of m
// with its image. Only names originating in f are replaced.
// Under a quantification Qv[...], v is not substituted and becomes forbidden: if an image
// would get one of its variables bound, or contains a variable from forbidden,
// a *ForbiddenVariableError is returned.
func (f *Formula) Substitute(m map[string]*Term, forbidden Set) (*Formula, error) {
	checkSubstitution(m, forbidden)
	if forbidden == nil {
		forbidden = NewSet()
	}
	return f.substitute(m, forbidden)
}

func (f *Formula) substitute(m map[string]*Term, forbidden Set) (*Formula, error) {
	switch {
	case f.IsAtomic():
		args := make([]*Term, len(f.Arguments))
		for i, a := range f.Arguments {
			arg, err := a.substitute(m, forbidden)
			if err != nil {
				return nil, err
			}
			args[i] = arg
		}
		return &Formula{Root: f.Root, Arguments: args}, nil
	case IsUnary(f.Root):
		first, err := f.First.substitute(m, forbidden)
		if err != nil {
			return nil, err
		}
		return Not(first), nil
	case IsBinary(f.Root):
		first, err := f.First.substitute(m, forbidden)
		if err != nil {
			return nil, err
		}
		second, err := f.Second.substitute(m, forbidden)
		if err != nil {
			return nil, err
		}
		return Binary(f.Root, first, second), nil
	default:
		inner := m
		if _, ok := m[f.Variable]; ok {
			inner = make(map[string]*Term, len(m)-1)
			for k, v := range m {
				if k != f.Variable {
					inner[k] = v
				}
			}
		}
		pred, err := f.Predicate.substitute(inner, forbidden.With(f.Variable))
		if err != nil {
			return nil, err
		}
		return Quantified(f.Root, f.Variable, pred), nil
	}
}
