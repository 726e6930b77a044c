package fol

import (
	"sort"

	"github.com/samber/lo"
)

// A Set is a set of names.
type Set map[string]struct{}

// NewSet returns a set containing the given names.
func NewSet(names ...string) Set {
	s := make(Set, len(names))
	s.Add(names...)
	return s
}

// Add adds names to s.
func (s Set) Add(names ...string) {
	for _, n := range names {
		s[n] = struct{}{}
	}
}

// Has returns true iff name is in s.
func (s Set) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// With returns a copy of s to which names were added. s is not modified.
func (s Set) With(names ...string) Set {
	res := make(Set, len(s)+len(names))
	for n := range s {
		res[n] = struct{}{}
	}
	res.Add(names...)
	return res
}

// Sorted returns the elements of s in increasing order.
func (s Set) Sorted() []string {
	res := lo.Keys(s)
	sort.Strings(res)
	return res
}

// A Symbol is a function or relation name along with its arity.
type Symbol struct {
	Name  string
	Arity int
}

// Symbols is a set of symbols.
type Symbols map[Symbol]struct{}

// Has returns true iff sym is in s.
func (s Symbols) Has(sym Symbol) bool {
	_, ok := s[sym]
	return ok
}

// Sorted returns the symbols of s sorted by name, then arity.
func (s Symbols) Sorted() []Symbol {
	res := lo.Keys(s)
	sort.Slice(res, func(i, j int) bool {
		if res[i].Name != res[j].Name {
			return res[i].Name < res[j].Name
		}
		return res[i].Arity < res[j].Arity
	})
	return res
}

// Constants returns the constant names used in t.
func (t *Term) Constants() Set {
	s := NewSet()
	t.walk(func(u *Term) {
		if IsConstant(u.Root) {
			s.Add(u.Root)
		}
	})
	return s
}

// Variables returns the variable names used in t.
func (t *Term) Variables() Set {
	s := NewSet()
	t.walk(func(u *Term) {
		if IsVariable(u.Root) {
			s.Add(u.Root)
		}
	})
	return s
}

// Functions returns the function names used in t, with their arities.
func (t *Term) Functions() Symbols {
	s := make(Symbols)
	t.walk(func(u *Term) {
		if IsFunction(u.Root) {
			s[Symbol{u.Root, len(u.Arguments)}] = struct{}{}
		}
	})
	return s
}

func (t *Term) walk(fn func(*Term)) {
	fn(t)
	for _, a := range t.Arguments {
		a.walk(fn)
	}
}

// walk calls fn on every subformula of f, f included.
func (f *Formula) walk(fn func(*Formula)) {
	fn(f)
	switch {
	case IsUnary(f.Root):
		f.First.walk(fn)
	case IsBinary(f.Root):
		f.First.walk(fn)
		f.Second.walk(fn)
	case IsQuantifier(f.Root):
		f.Predicate.walk(fn)
	}
}

// walkTerms calls fn on every term that is an argument of an atomic subformula of f.
func (f *Formula) walkTerms(fn func(*Term)) {
	f.walk(func(g *Formula) {
		if g.IsAtomic() {
			for _, a := range g.Arguments {
				a.walk(fn)
			}
		}
	})
}

// Constants returns the constant names used in f.
func (f *Formula) Constants() Set {
	s := NewSet()
	f.walkTerms(func(t *Term) {
		if IsConstant(t.Root) {
			s.Add(t.Root)
		}
	})
	return s
}

// Variables returns the variable names used in f, free or bound, including quantified ones.
func (f *Formula) Variables() Set {
	s := NewSet()
	f.walk(func(g *Formula) {
		if IsQuantifier(g.Root) {
			s.Add(g.Variable)
		}
	})
	f.walkTerms(func(t *Term) {
		if IsVariable(t.Root) {
			s.Add(t.Root)
		}
	})
	return s
}

// FreeVariables returns the variable names having free occurrences in f.
func (f *Formula) FreeVariables() Set {
	switch {
	case f.IsAtomic():
		s := NewSet()
		for _, a := range f.Arguments {
			for v := range a.Variables() {
				s.Add(v)
			}
		}
		return s
	case IsUnary(f.Root):
		return f.First.FreeVariables()
	case IsBinary(f.Root):
		s := f.First.FreeVariables()
		for v := range f.Second.FreeVariables() {
			s.Add(v)
		}
		return s
	default:
		s := f.Predicate.FreeVariables()
		delete(s, f.Variable)
		return s
	}
}

// Functions returns the function names used in f, with their arities.
func (f *Formula) Functions() Symbols {
	s := make(Symbols)
	f.walkTerms(func(t *Term) {
		if IsFunction(t.Root) {
			s[Symbol{t.Root, len(t.Arguments)}] = struct{}{}
		}
	})
	return s
}

// Relations returns the relation names used in f, with their arities.
// Equality is not a relation name.
func (f *Formula) Relations() Symbols {
	s := make(Symbols)
	f.walk(func(g *Formula) {
		if IsRelation(g.Root) {
			s[Symbol{g.Root, len(g.Arguments)}] = struct{}{}
		}
	})
	return s
}
