package prop

import (
	"sort"
	"strings"
)

// Binary connectives.
const (
	OpAnd     = "&"
	OpOr      = "|"
	OpImplies = "->"
)

// OpNot is the only unary connective.
const OpNot = "~"

// Names of the two constants.
const (
	ConstTrue  = "T"
	ConstFalse = "F"
)

// A Formula is an immutable propositional formula.
// Root is either a variable name, a constant, "~" or one of the binary connectives.
// First is set for unary and binary formulas, Second for binary ones only.
type Formula struct {
	Root   string
	First  *Formula
	Second *Formula
}

// IsVariable returns true iff name is a propositional variable name,
// i.e a letter between 'p' and 'z', optionally followed by digits.
func IsVariable(name string) bool {
	if len(name) == 0 || name[0] < 'p' || name[0] > 'z' {
		return false
	}
	for i := 1; i < len(name); i++ {
		if name[i] < '0' || name[i] > '9' {
			return false
		}
	}
	return true
}

// IsConstant returns true iff name is T or F.
func IsConstant(name string) bool {
	return name == ConstTrue || name == ConstFalse
}

// IsUnary returns true iff op is the negation operator.
func IsUnary(op string) bool {
	return op == OpNot
}

// IsBinary returns true iff op is a binary connective.
func IsBinary(op string) bool {
	return op == OpAnd || op == OpOr || op == OpImplies
}

// Var generates a variable. It panics if name is not a valid variable name.
func Var(name string) *Formula {
	if !IsVariable(name) {
		panic("invalid propositional variable name " + name)
	}
	return &Formula{Root: name}
}

// True is the constant denoting a tautology.
var True = &Formula{Root: ConstTrue}

// False is the constant denoting a contradiction.
var False = &Formula{Root: ConstFalse}

// Not negates the given subformula.
func Not(f *Formula) *Formula {
	return &Formula{Root: OpNot, First: f}
}

// Binary builds a formula whose root is the binary connective op.
func Binary(op string, f1, f2 *Formula) *Formula {
	if !IsBinary(op) {
		panic("invalid binary operator " + op)
	}
	return &Formula{Root: op, First: f1, Second: f2}
}

// And generates a conjunction.
func And(f1, f2 *Formula) *Formula { return Binary(OpAnd, f1, f2) }

// Or generates a disjunction.
func Or(f1, f2 *Formula) *Formula { return Binary(OpOr, f1, f2) }

// Implies indicates f1 implies f2.
func Implies(f1, f2 *Formula) *Formula { return Binary(OpImplies, f1, f2) }

// String returns the canonical representation of f: every binary
// connective is surrounded by parentheses, nothing else is.
func (f *Formula) String() string {
	var b strings.Builder
	f.write(&b)
	return b.String()
}

func (f *Formula) write(b *strings.Builder) {
	switch {
	case IsUnary(f.Root):
		b.WriteString(OpNot)
		f.First.write(b)
	case IsBinary(f.Root):
		b.WriteByte('(')
		f.First.write(b)
		b.WriteString(f.Root)
		f.Second.write(b)
		b.WriteByte(')')
	default:
		b.WriteString(f.Root)
	}
}

// Equal returns true iff f and other are structurally identical.
func (f *Formula) Equal(other *Formula) bool {
	if f == other {
		return true
	}
	if f == nil || other == nil || f.Root != other.Root {
		return false
	}
	switch {
	case IsUnary(f.Root):
		return f.First.Equal(other.First)
	case IsBinary(f.Root):
		return f.First.Equal(other.First) && f.Second.Equal(other.Second)
	default:
		return true
	}
}

// Variables returns the sorted list of variable names appearing in f.
func (f *Formula) Variables() []string {
	seen := make(map[string]struct{})
	f.collect(seen, func(g *Formula) bool { return IsVariable(g.Root) })
	return sortedKeys(seen)
}

// Operators returns the sorted list of connectives and constants used in f.
func (f *Formula) Operators() []string {
	seen := make(map[string]struct{})
	f.collect(seen, func(g *Formula) bool { return !IsVariable(g.Root) })
	return sortedKeys(seen)
}

func (f *Formula) collect(seen map[string]struct{}, keep func(*Formula) bool) {
	if keep(f) {
		seen[f.Root] = struct{}{}
	}
	if f.First != nil {
		f.First.collect(seen, keep)
	}
	if f.Second != nil {
		f.Second.collect(seen, keep)
	}
}

// SubstituteVariables replaces every variable of f that is a key of m with its image.
func (f *Formula) SubstituteVariables(m map[string]*Formula) *Formula {
	switch {
	case IsVariable(f.Root):
		if g, ok := m[f.Root]; ok {
			return g
		}
		return f
	case IsUnary(f.Root):
		return Not(f.First.SubstituteVariables(m))
	case IsBinary(f.Root):
		return Binary(f.Root, f.First.SubstituteVariables(m), f.Second.SubstituteVariables(m))
	default:
		return f
	}
}

func sortedKeys(m map[string]struct{}) []string {
	res := make([]string, 0, len(m))
	for k := range m {
		res = append(res, k)
	}
	sort.Strings(res)
	return res
}
