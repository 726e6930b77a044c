package prop

// Modus ponens / implication elimination.
var MP = NewRule([]string{"p", "(p->q)"}, "q")

// Axioms for implication and negation.
var (
	// Self implication.
	I0 = NewRule(nil, "(p->p)")
	// Implication introduction (right).
	I1 = NewRule(nil, "(q->(p->q))")
	// Self-distribution of implication.
	D = NewRule(nil, "((p->(q->r))->((p->q)->(p->r)))")
	// Implication introduction (left).
	I2 = NewRule(nil, "(~p->(p->q))")
	// Converse contraposition.
	N = NewRule(nil, "((~q->~p)->(p->q))")
	// Negative-implication introduction.
	NI = NewRule(nil, "(p->(~q->~(p->q)))")
	// Double-negation introduction.
	NN = NewRule(nil, "(p->~~p)")
	// Resolution.
	R = NewRule(nil, "((q->p)->((~q->p)->p))")
)

// Axioms for conjunction, disjunction and the constants.
var (
	A   = NewRule(nil, "(p->(q->(p&q)))")
	NA1 = NewRule(nil, "(~q->~(p&q))")
	NA2 = NewRule(nil, "(~p->~(p&q))")
	O1  = NewRule(nil, "(q->(p|q))")
	O2  = NewRule(nil, "(p->(p|q))")
	NO  = NewRule(nil, "(~p->(~q->~(p|q)))")
	T   = NewRule(nil, "T")
	NF  = NewRule(nil, "~F")
)

// AxiomaticSystem is the axiomatic system for implication and negation.
var AxiomaticSystem = []InferenceRule{MP, I0, I1, D, I2, N, NI, NN, R}

// AxiomaticSystemFull extends AxiomaticSystem to every connective and constant.
var AxiomaticSystemFull = []InferenceRule{MP, I0, I1, D, I2, N, NI, NN, R, A, NA1, NA2, O1, O2, NO, T, NF}

// axiomNames is used to print axioms in a readable way.
var axiomNames = map[string]string{
	MP.String(): "MP", I0.String(): "I0", I1.String(): "I1", D.String(): "D",
	I2.String(): "I2", N.String(): "N", NI.String(): "NI", NN.String(): "NN", R.String(): "R",
	A.String(): "A", NA1.String(): "NA1", NA2.String(): "NA2", O1.String(): "O1",
	O2.String(): "O2", NO.String(): "NO", T.String(): "T", NF.String(): "NF",
}

// AxiomName returns the short name of rule, if it is one of the known axioms, or its full representation.
func AxiomName(rule InferenceRule) string {
	s := rule.String()
	if name, ok := axiomNames[s]; ok {
		return name
	}
	return s
}
