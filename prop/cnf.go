package prop

import (
	"fmt"

	"github.com/crillab/gophersat/solver"
)

// IsTautology returns true iff f is true in every model.
// f is a tautology iff its negation is unsatisfiable, which is checked by gophersat.
func IsTautology(f *Formula) bool {
	_, ok := Counterexample(f)
	return !ok
}

// Counterexample returns a model in which f is false, if any.
// The model binds every variable of f.
func Counterexample(f *Formula) (Model, bool) {
	return Satisfiable(Not(f))
}

// Satisfiable returns a model of f, if any.
// The model binds every variable of f; variables that do not matter are bound to false.
func Satisfiable(f *Formula) (Model, bool) {
	m := asCnf(f).solve()
	if m == nil {
		return nil, false
	}
	for _, v := range f.Variables() {
		if _, ok := m[v]; !ok {
			m[v] = false
		}
	}
	return m, true
}

// A formula in negation normal form.
// Only literals are negated, "and"s and "or"s are flattened and constants only appear at the top level.
type nnf interface {
	isNNF()
}

type lit struct {
	name   string
	signed bool
}

type and []nnf

type or []nnf

type trueConst struct{}

type falseConst struct{}

func (lit) isNNF()        {}
func (and) isNNF()        {}
func (or) isNNF()         {}
func (trueConst) isNNF()  {}
func (falseConst) isNNF() {}

// toNNF pushes negations down to the variables of f.
// If neg is true, the NNF of ~f is returned.
func toNNF(f *Formula, neg bool) nnf {
	switch {
	case f.Root == ConstTrue, f.Root == ConstFalse:
		if (f.Root == ConstTrue) != neg {
			return trueConst{}
		}
		return falseConst{}
	case IsVariable(f.Root):
		return lit{name: f.Root, signed: neg}
	case f.Root == OpNot:
		return toNNF(f.First, !neg)
	case f.Root == OpAnd && !neg, f.Root == OpOr && neg:
		return mkAnd(toNNF(f.First, neg), toNNF(f.Second, neg))
	case f.Root == OpOr && !neg, f.Root == OpAnd && neg:
		return mkOr(toNNF(f.First, neg), toNNF(f.Second, neg))
	case f.Root == OpImplies && !neg:
		return mkOr(toNNF(f.First, true), toNNF(f.Second, false))
	case f.Root == OpImplies && neg:
		return mkAnd(toNNF(f.First, false), toNNF(f.Second, true))
	default:
		panic("invalid formula type")
	}
}

func mkAnd(subs ...nnf) nnf {
	var res and
	for _, s := range subs {
		switch s := s.(type) {
		case and: // Simplify: "and"s in the "and" get to the higher level
			res = append(res, s...)
		case trueConst: // True is ignored
		case falseConst:
			return falseConst{}
		default:
			res = append(res, s)
		}
	}
	if len(res) == 1 {
		return res[0]
	}
	if len(res) == 0 {
		return trueConst{}
	}
	return res
}

func mkOr(subs ...nnf) nnf {
	var res or
	for _, s := range subs {
		switch s := s.(type) {
		case or: // Simplify: "or"s in the "or" get to the higher level
			res = append(res, s...)
		case falseConst: // False is ignored
		case trueConst:
			return trueConst{}
		default:
			res = append(res, s)
		}
	}
	if len(res) == 1 {
		return res[0]
	}
	if len(res) == 0 {
		return falseConst{}
	}
	return res
}

// vars associate variable names with numeric indices.
type vars struct {
	nb int            // number of vars, including those created when converting the formula
	pb map[string]int // Only the vars that appeared originally in the formula
}

// litValue returns the int value associated with the given literal.
// If the var was not referenced yet, it is created first.
func (vars *vars) litValue(l lit) int {
	val, ok := vars.pb[l.name]
	if !ok {
		vars.nb++
		val = vars.nb
		vars.pb[l.name] = val
	}
	if l.signed {
		return -val
	}
	return val
}

// dummy creates a dummy variable and returns its associated index.
func (vars *vars) dummy() int {
	vars.nb++
	return vars.nb
}

// A cnf is the representation of a boolean formula as a conjunction of disjunctions.
type cnf struct {
	vars    vars
	clauses [][]int
}

// solve gives cnf to gophersat.
// If it is satisfiable, the function returns a model, associating each variable name with its binding.
// Else, the function returns nil.
func (cnf *cnf) solve() Model {
	clauses := simplify(cnf.clauses)
	if len(clauses) == 0 {
		return Model{}
	}
	pb := solver.ParseSlice(clauses)
	s := solver.New(pb)
	if s.Solve() != solver.Sat {
		return nil
	}
	m := s.Model()
	res := make(Model, len(cnf.vars.pb))
	for name, idx := range cnf.vars.pb {
		res[name] = idx <= len(m) && m[idx-1]
	}
	return res
}

// simplify removes duplicate literals from clauses and drops the clauses that contain
// both a literal and its negation.
func simplify(clauses [][]int) [][]int {
	res := make([][]int, 0, len(clauses))
outer:
	for _, clause := range clauses {
		seen := make(map[int]struct{}, len(clause))
		simplified := make([]int, 0, len(clause))
		for _, l := range clause {
			if _, ok := seen[-l]; ok {
				continue outer
			}
			if _, ok := seen[l]; !ok {
				seen[l] = struct{}{}
				simplified = append(simplified, l)
			}
		}
		res = append(res, simplified)
	}
	return res
}

// asCnf returns an equisatisfiable CNF representation of the given formula.
func asCnf(f *Formula) *cnf {
	vars := vars{pb: make(map[string]int)}
	clauses := cnfRec(toNNF(f, false), &vars)
	return &cnf{vars: vars, clauses: clauses}
}

// cnfRec transforms the f NNF formula into a set of clauses.
// Each "and" nested in an "or" is replaced by a dummy variable d, and each clause
// of its translation is weakened by ~d.
func cnfRec(f nnf, vars *vars) [][]int {
	switch f := f.(type) {
	case lit:
		return [][]int{{vars.litValue(f)}}
	case and:
		var res [][]int
		for _, sub := range f {
			res = append(res, cnfRec(sub, vars)...)
		}
		return res
	case or:
		var res [][]int
		var lits []int
		for _, sub := range f {
			switch sub := sub.(type) {
			case lit:
				lits = append(lits, vars.litValue(sub))
			case and:
				d := vars.dummy()
				lits = append(lits, d)
				for _, sub2 := range sub {
					for _, clause := range cnfRec(sub2, vars) {
						res = append(res, append(clause, -d))
					}
				}
			default:
				panic(fmt.Sprintf("unexpected %T in or", sub))
			}
		}
		res = append(res, lits)
		return res
	case trueConst: // True clauses are ignored
		return [][]int{}
	case falseConst:
		return [][]int{{}}
	default:
		panic("invalid NNF formula")
	}
}
