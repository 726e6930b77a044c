package fol

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Placeholder is the constant name standing for the argument of a parametrized formula or term.
const Placeholder = "_"

// Operators and quantifiers.
const (
	OpEquality = "="
	OpNot      = "~"
	OpAnd      = "&"
	OpOr       = "|"
	OpImplies  = "->"
	ForAllQ    = "A"
	ExistsQ    = "E"
)

func isAlnum(s string) bool {
	for _, c := range s {
		if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9') {
			return false
		}
	}
	return true
}

// IsConstant returns true iff s is a constant name: alphanumeric, starting with a digit or
// a letter between 'a' and 'd', or the placeholder "_".
func IsConstant(s string) bool {
	if s == Placeholder {
		return true
	}
	return len(s) > 0 && ('0' <= s[0] && s[0] <= '9' || 'a' <= s[0] && s[0] <= 'd') && isAlnum(s)
}

// IsVariable returns true iff s is a variable name: alphanumeric, starting with a letter between 'u' and 'z'.
func IsVariable(s string) bool {
	return len(s) > 0 && 'u' <= s[0] && s[0] <= 'z' && isAlnum(s)
}

// IsFunction returns true iff s is a function name: alphanumeric, starting with a letter between 'f' and 't'.
func IsFunction(s string) bool {
	return len(s) > 0 && 'f' <= s[0] && s[0] <= 't' && isAlnum(s)
}

// IsRelation returns true iff s is a relation name: alphanumeric, starting with a letter between 'F' and 'T'.
func IsRelation(s string) bool {
	return len(s) > 0 && 'F' <= s[0] && s[0] <= 'T' && isAlnum(s)
}

// IsEquality returns true iff s is the equality relation.
func IsEquality(s string) bool { return s == OpEquality }

// IsUnary returns true iff s is the negation operator.
func IsUnary(s string) bool { return s == OpNot }

// IsBinary returns true iff s is a binary connective.
func IsBinary(s string) bool { return s == OpAnd || s == OpOr || s == OpImplies }

// IsQuantifier returns true iff s is a quantifier.
func IsQuantifier(s string) bool { return s == ForAllQ || s == ExistsQ }

// A Term is an immutable first-order term: a constant, a variable or a function application.
type Term struct {
	Root      string
	Arguments []*Term
}

// NewTerm returns the term with the given root and arguments.
// It panics if root is a constant or a variable and args is not empty, or if root is a function
// and args is empty.
func NewTerm(root string, args ...*Term) *Term {
	switch {
	case IsConstant(root), IsVariable(root):
		if len(args) != 0 {
			panic(fmt.Sprintf("%s cannot have arguments", root))
		}
	case IsFunction(root):
		if len(args) == 0 {
			panic(fmt.Sprintf("function %s needs arguments", root))
		}
	default:
		panic(fmt.Sprintf("invalid term root %q", root))
	}
	return &Term{Root: root, Arguments: args}
}

func (t *Term) String() string {
	if len(t.Arguments) == 0 {
		return t.Root
	}
	return t.Root + "(" + joinTerms(t.Arguments) + ")"
}

func joinTerms(ts []*Term) string {
	return strings.Join(lo.Map(ts, func(t *Term, _ int) string { return t.String() }), ",")
}

// Equal returns true iff t and other are structurally identical.
func (t *Term) Equal(other *Term) bool {
	if t == other {
		return true
	}
	if t == nil || other == nil || t.Root != other.Root {
		return false
	}
	return equalTerms(t.Arguments, other.Arguments)
}

func equalTerms(ts1, ts2 []*Term) bool {
	if len(ts1) != len(ts2) {
		return false
	}
	for i := range ts1 {
		if !ts1[i].Equal(ts2[i]) {
			return false
		}
	}
	return true
}

// A Formula is an immutable first-order formula.
// Depending on Root, only some fields are meaningful:
// Arguments for relations and equalities, First for negations, First and Second for
// binary connectives, Variable and Predicate for quantifications.
type Formula struct {
	Root      string
	Arguments []*Term
	First     *Formula
	Second    *Formula
	Variable  string
	Predicate *Formula
}

// Equality returns the formula t1=t2.
func Equality(t1, t2 *Term) *Formula {
	return &Formula{Root: OpEquality, Arguments: []*Term{t1, t2}}
}

// Relation returns the invocation of the relation name on the given arguments.
func Relation(name string, args ...*Term) *Formula {
	if !IsRelation(name) {
		panic(fmt.Sprintf("invalid relation name %q", name))
	}
	return &Formula{Root: name, Arguments: args}
}

// Not negates f.
func Not(f *Formula) *Formula {
	return &Formula{Root: OpNot, First: f}
}

// Binary returns the formula whose root is the binary connective op.
func Binary(op string, f1, f2 *Formula) *Formula {
	if !IsBinary(op) {
		panic(fmt.Sprintf("invalid binary operator %q", op))
	}
	return &Formula{Root: op, First: f1, Second: f2}
}

// And returns (f1&f2).
func And(f1, f2 *Formula) *Formula { return Binary(OpAnd, f1, f2) }

// Or returns (f1|f2).
func Or(f1, f2 *Formula) *Formula { return Binary(OpOr, f1, f2) }

// Implies returns (f1->f2).
func Implies(f1, f2 *Formula) *Formula { return Binary(OpImplies, f1, f2) }

// Quantified returns the quantification of predicate over variable.
func Quantified(quantifier, variable string, predicate *Formula) *Formula {
	if !IsQuantifier(quantifier) {
		panic(fmt.Sprintf("invalid quantifier %q", quantifier))
	}
	if !IsVariable(variable) {
		panic(fmt.Sprintf("invalid quantified variable %q", variable))
	}
	return &Formula{Root: quantifier, Variable: variable, Predicate: predicate}
}

// ForAll returns Av[predicate].
func ForAll(variable string, predicate *Formula) *Formula {
	return Quantified(ForAllQ, variable, predicate)
}

// Exists returns Ev[predicate].
func Exists(variable string, predicate *Formula) *Formula {
	return Quantified(ExistsQ, variable, predicate)
}

// IsAtomic returns true iff f is a relation invocation or an equality.
func (f *Formula) IsAtomic() bool {
	return IsRelation(f.Root) || IsEquality(f.Root)
}

func (f *Formula) String() string {
	var b strings.Builder
	f.write(&b)
	return b.String()
}

func (f *Formula) write(b *strings.Builder) {
	switch {
	case IsEquality(f.Root):
		b.WriteString(f.Arguments[0].String())
		b.WriteString(OpEquality)
		b.WriteString(f.Arguments[1].String())
	case IsRelation(f.Root):
		b.WriteString(f.Root)
		b.WriteByte('(')
		b.WriteString(joinTerms(f.Arguments))
		b.WriteByte(')')
	case IsUnary(f.Root):
		b.WriteString(OpNot)
		f.First.write(b)
	case IsBinary(f.Root):
		b.WriteByte('(')
		f.First.write(b)
		b.WriteString(f.Root)
		f.Second.write(b)
		b.WriteByte(')')
	case IsQuantifier(f.Root):
		b.WriteString(f.Root)
		b.WriteString(f.Variable)
		b.WriteByte('[')
		f.Predicate.write(b)
		b.WriteByte(']')
	default:
		panic("invalid formula type")
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
	case IsQuantifier(f.Root):
		return f.Variable == other.Variable && f.Predicate.Equal(other.Predicate)
	default:
		return equalTerms(f.Arguments, other.Arguments)
	}
}

// Key returns a string uniquely identifying f, suitable as a map key.
// Two formulas have the same key iff they are equal.
func (f *Formula) Key() string {
	return f.String()
}
