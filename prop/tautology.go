package prop

import "fmt"

// FormulasCapturingModel returns, for each variable of m in sorted order,
// the variable itself if it is true in m, or its negation otherwise.
func FormulasCapturingModel(m Model) []*Formula {
	names := make(map[string]struct{}, len(m))
	for v := range m {
		names[v] = struct{}{}
	}
	var res []*Formula
	for _, v := range sortedKeys(names) {
		if m[v] {
			res = append(res, Var(v))
		} else {
			res = append(res, Not(Var(v)))
		}
	}
	return res
}

// ProveInModel proves f, if it is true in m, or ~f otherwise, from the formulas capturing m.
// m must bind every variable of f.
func ProveInModel(f *Formula, m Model) *Proof {
	assumptions := FormulasCapturingModel(m)
	var conclusion *Formula
	if Evaluate(f, m) {
		conclusion = f
	} else {
		conclusion = Not(f)
	}
	proof := proveInModel(f, m, assumptions)
	if !proof.Statement.Conclusion.Equal(conclusion) {
		panic("unexpected conclusion " + proof.Statement.Conclusion.String())
	}
	return proof
}

func proveInModel(f *Formula, m Model, assumptions []*Formula) *Proof {
	axiom := func(conclusion *Formula, rule InferenceRule) *Proof {
		return &Proof{
			Statement: InferenceRule{Assumptions: assumptions, Conclusion: conclusion},
			Rules:     AxiomaticSystemFull,
			Lines:     []Line{RuleLine(conclusion, rule)},
		}
	}
	value := Evaluate(f, m)
	switch {
	case IsVariable(f.Root):
		conclusion := f
		if !value {
			conclusion = Not(f)
		}
		return &Proof{
			Statement: InferenceRule{Assumptions: assumptions, Conclusion: conclusion},
			Rules:     AxiomaticSystemFull,
			Lines:     []Line{AssumptionLine(conclusion)},
		}
	case f.Root == ConstTrue:
		return axiom(f, T)
	case f.Root == ConstFalse:
		return axiom(Not(f), NF)
	case f.Root == OpNot:
		if value {
			// ~g where g is false: the proof of ~g is what we want.
			return proveInModel(f.First, m, assumptions)
		}
		return ProveCorollary(proveInModel(f.First, m, assumptions), Not(f), NN)
	}
	left, right := f.First, f.Second
	leftValue, rightValue := Evaluate(left, m), Evaluate(right, m)
	switch f.Root {
	case OpImplies:
		switch {
		case rightValue:
			return ProveCorollary(proveInModel(right, m, assumptions), f, I1)
		case !leftValue:
			return ProveCorollary(proveInModel(left, m, assumptions), f, I2)
		default:
			return CombineProofs(proveInModel(left, m, assumptions), proveInModel(right, m, assumptions), Not(f), NI)
		}
	case OpAnd:
		switch {
		case value:
			return CombineProofs(proveInModel(left, m, assumptions), proveInModel(right, m, assumptions), f, A)
		case !rightValue:
			return ProveCorollary(proveInModel(right, m, assumptions), Not(f), NA1)
		default:
			return ProveCorollary(proveInModel(left, m, assumptions), Not(f), NA2)
		}
	case OpOr:
		switch {
		case rightValue:
			return ProveCorollary(proveInModel(right, m, assumptions), f, O1)
		case leftValue:
			return ProveCorollary(proveInModel(left, m, assumptions), f, O2)
		default:
			return CombineProofs(proveInModel(left, m, assumptions), proveInModel(right, m, assumptions), Not(f), NO)
		}
	default:
		panic("invalid formula type")
	}
}

// ReduceAssumption combines proofs of the same conclusion from assumptions ending with p and ~p
// respectively into a proof of that conclusion without this last assumption.
func ReduceAssumption(affirmation, negation *Proof) *Proof {
	a1, a2 := affirmation.Statement.Assumptions, negation.Statement.Assumptions
	if len(a1) == 0 || len(a1) != len(a2) || !sameFormulas(a1[:len(a1)-1], a2[:len(a2)-1]) ||
		!Not(a1[len(a1)-1]).Equal(a2[len(a2)-1]) {
		panic("assumptions must only differ by the negation of the last one")
	}
	if !affirmation.Statement.Conclusion.Equal(negation.Statement.Conclusion) {
		panic("proofs must have the same conclusion")
	}
	return CombineProofs(RemoveAssumption(affirmation), RemoveAssumption(negation), affirmation.Statement.Conclusion, R)
}

// ProveTautology proves tautology from the formulas capturing the partial model m.
// With an empty model, the returned proof has no assumptions.
// It panics if tautology is not a tautology, or if m binds variables of tautology that are not
// the first ones in sorted order.
func ProveTautology(tautology *Formula, m Model) *Proof {
	vars := tautology.Variables()
	for i := 0; i < len(m); i++ {
		if i >= len(vars) {
			panic("model binds variables that are not in the formula")
		}
		if _, ok := m[vars[i]]; !ok {
			panic(fmt.Sprintf("model does not bind %s", vars[i]))
		}
	}
	if len(m) == len(vars) {
		proof := ProveInModel(tautology, m)
		if !proof.Statement.Conclusion.Equal(tautology) {
			panic(tautology.String() + " is not a tautology")
		}
		return proof
	}
	v := vars[len(m)]
	pos, neg := make(Model, len(m)+1), make(Model, len(m)+1)
	for k, b := range m {
		pos[k], neg[k] = b, b
	}
	pos[v], neg[v] = true, false
	return ReduceAssumption(ProveTautology(tautology, pos), ProveTautology(tautology, neg))
}

// ProofOrCounterexample returns either a proof of f from no assumptions, or a model in which f is false.
// Whether f is a tautology is first decided by the SAT solver.
func ProofOrCounterexample(f *Formula) (*Proof, Model) {
	if m, ok := Counterexample(f); ok {
		return nil, m
	}
	return ProveTautology(f, Model{}), nil
}

// EncodeAsFormula encodes rule as the formula (a1->(a2->...->conclusion)).
func EncodeAsFormula(rule InferenceRule) *Formula {
	res := rule.Conclusion
	for i := len(rule.Assumptions) - 1; i >= 0; i-- {
		res = Implies(rule.Assumptions[i], res)
	}
	return res
}

// ProveSoundInference returns a proof of the sound rule, from its assumptions.
func ProveSoundInference(rule InferenceRule) *Proof {
	if !IsSoundInference(rule) {
		panic(rule.String() + " is not sound")
	}
	encoded := ProveTautology(EncodeAsFormula(rule), Model{})
	lines := append([]Line{}, encoded.Lines...)
	last := len(lines) - 1
	f := encoded.Statement.Conclusion
	for _, a := range rule.Assumptions {
		lines = append(lines, AssumptionLine(a))
		lines = append(lines, RuleLine(f.Second, MP, len(lines)-1, last))
		last = len(lines) - 1
		f = f.Second
	}
	return &Proof{Statement: rule, Rules: unionRules(encoded.Rules, []InferenceRule{MP}), Lines: lines}
}

// ModelOrInconsistency returns either a model of formulas, or a proof of ~(p->p) from them.
func ModelOrInconsistency(formulas []*Formula) (Model, *Proof) {
	conj := True
	for i := len(formulas) - 1; i >= 0; i-- {
		conj = And(formulas[i], conj)
	}
	if m, ok := Satisfiable(conj); ok {
		return m, nil
	}
	return nil, ProveSoundInference(InferenceRule{Assumptions: formulas, Conclusion: MustParse("~(p->p)")})
}
