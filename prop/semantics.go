package prop

import "fmt"

// A Model associates each variable name with its truth value.
type Model map[string]bool

// Evaluate returns the truth value of f in m.
// It panics if m lacks a binding for one of the variables of f.
func Evaluate(f *Formula, m Model) bool {
	switch {
	case f.Root == ConstTrue:
		return true
	case f.Root == ConstFalse:
		return false
	case IsVariable(f.Root):
		b, ok := m[f.Root]
		if !ok {
			panic(fmt.Errorf("model lacks binding for variable %s", f.Root))
		}
		return b
	case f.Root == OpNot:
		return !Evaluate(f.First, m)
	case f.Root == OpAnd:
		return Evaluate(f.First, m) && Evaluate(f.Second, m)
	case f.Root == OpOr:
		return Evaluate(f.First, m) || Evaluate(f.Second, m)
	case f.Root == OpImplies:
		return !Evaluate(f.First, m) || Evaluate(f.Second, m)
	default:
		panic("invalid formula type")
	}
}

// AllModels returns every model over vars.
// The first variable is the most significant one, false comes before true.
func AllModels(vars []string) []Model {
	n := len(vars)
	res := make([]Model, 0, 1<<uint(n))
	for i := 0; i < 1<<uint(n); i++ {
		m := make(Model, n)
		for j, v := range vars {
			m[v] = i&(1<<uint(n-1-j)) != 0
		}
		res = append(res, m)
	}
	return res
}

// TruthValues evaluates f in each of the given models.
func TruthValues(f *Formula, models []Model) []bool {
	res := make([]bool, len(models))
	for i, m := range models {
		res[i] = Evaluate(f, m)
	}
	return res
}

// IsTautologyByEnumeration checks f is true in every model, by enumerating all of them.
// It is exponential in the number of variables of f; IsTautology should usually be preferred.
func IsTautologyByEnumeration(f *Formula) bool {
	for _, m := range AllModels(f.Variables()) {
		if !Evaluate(f, m) {
			return false
		}
	}
	return true
}

// IsContradiction returns true iff f is false in every model.
func IsContradiction(f *Formula) bool {
	return IsTautology(Not(f))
}

// IsSatisfiable returns true iff f is true in at least one model.
func IsSatisfiable(f *Formula) bool {
	_, ok := Satisfiable(f)
	return ok
}

// IsSoundInference returns true iff every model of the assumptions of rule is a model of its conclusion.
func IsSoundInference(rule InferenceRule) bool {
	return IsTautology(EncodeAsFormula(rule))
}
