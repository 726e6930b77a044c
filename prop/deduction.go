package prop

import "fmt"

// ProveCorollary extends proof, whose conclusion is some p, into a proof of consequent,
// given an axiom conditional that specializes into (p->consequent).
func ProveCorollary(proof *Proof, consequent *Formula, conditional InferenceRule) *Proof {
	implication := Implies(proof.Statement.Conclusion, consequent)
	if !(InferenceRule{Conclusion: implication}).IsSpecializationOf(conditional) {
		panic(fmt.Sprintf("%s is not a specialization of %s", implication, conditional))
	}
	lines := append([]Line{}, proof.Lines...)
	lines = append(lines,
		RuleLine(implication, conditional),
		RuleLine(consequent, MP, len(proof.Lines)-1, len(proof.Lines)))
	return &Proof{
		Statement: InferenceRule{Assumptions: proof.Statement.Assumptions, Conclusion: consequent},
		Rules:     unionRules(proof.Rules, []InferenceRule{MP, conditional}),
		Lines:     lines,
	}
}

// CombineProofs combines proofs of p and q, from the same assumptions, into a proof of consequent,
// given an axiom doubleConditional that specializes into (p->(q->consequent)).
func CombineProofs(proof1, proof2 *Proof, consequent *Formula, doubleConditional InferenceRule) *Proof {
	if !sameFormulas(proof1.Statement.Assumptions, proof2.Statement.Assumptions) {
		panic("proofs must have the same assumptions")
	}
	c1, c2 := proof1.Statement.Conclusion, proof2.Statement.Conclusion
	implication := Implies(c1, Implies(c2, consequent))
	if !(InferenceRule{Conclusion: implication}).IsSpecializationOf(doubleConditional) {
		panic(fmt.Sprintf("%s is not a specialization of %s", implication, doubleConditional))
	}
	lines := append([]Line{}, proof1.Lines...)
	offset := len(lines)
	for _, l := range proof2.Lines {
		lines = append(lines, shiftLine(l, offset))
	}
	last1, last2 := offset-1, len(lines)-1
	lines = append(lines,
		RuleLine(implication, doubleConditional),
		RuleLine(Implies(c2, consequent), MP, last1, len(lines)),
		RuleLine(consequent, MP, last2, len(lines)+1))
	return &Proof{
		Statement: InferenceRule{Assumptions: proof1.Statement.Assumptions, Conclusion: consequent},
		Rules:     unionRules(proof1.Rules, proof2.Rules, []InferenceRule{MP, doubleConditional}),
		Lines:     lines,
	}
}

func shiftLine(l Line, offset int) Line {
	if l.IsAssumption() {
		return l
	}
	res := Line{Formula: l.Formula, Rule: l.Rule, Assumptions: make([]int, len(l.Assumptions))}
	for i, a := range l.Assumptions {
		res.Assumptions[i] = a + offset
	}
	return res
}

func sameFormulas(fs1, fs2 []*Formula) bool {
	if len(fs1) != len(fs2) {
		return false
	}
	for i := range fs1 {
		if !fs1[i].Equal(fs2[i]) {
			return false
		}
	}
	return true
}

// RemoveAssumption applies the deduction theorem: given a proof of q from assumptions ending with p,
// it returns a proof of (p->q) from the other assumptions.
// Besides MP, the proof may only use rules without assumptions.
func RemoveAssumption(proof *Proof) *Proof {
	assumptions := proof.Statement.Assumptions
	if len(assumptions) == 0 {
		panic("proof has no assumption to remove")
	}
	for _, r := range proof.Rules {
		if len(r.Assumptions) != 0 && !r.Equal(MP) {
			panic(fmt.Sprintf("rule %s cannot be handled", r))
		}
	}
	phi := assumptions[len(assumptions)-1]
	var lines []Line
	// moved[i] is the index of the line proving (phi->f), where f is the formula of line i.
	moved := make([]int, len(proof.Lines))
	for i, l := range proof.Lines {
		f := l.Formula
		target := Implies(phi, f)
		switch {
		case f.Equal(phi):
			lines = append(lines, RuleLine(target, I0))
		case l.IsAssumption() || len(l.Rule.Assumptions) == 0:
			lines = append(lines,
				Line{Formula: f, Rule: l.Rule},
				RuleLine(Implies(f, target), I1),
				RuleLine(target, MP, len(lines), len(lines)+1))
		default:
			ante, cond := moved[l.Assumptions[0]], moved[l.Assumptions[1]]
			p := proof.Lines[l.Assumptions[0]].Formula
			// (phi->(p->f)) -> ((phi->p) -> (phi->f))
			distributed := Implies(Implies(phi, p), target)
			lines = append(lines,
				RuleLine(Implies(lines[cond].Formula, distributed), D),
				RuleLine(distributed, MP, cond, len(lines)),
				RuleLine(target, MP, ante, len(lines)+1))
		}
		moved[i] = len(lines) - 1
	}
	return &Proof{
		Statement: InferenceRule{Assumptions: assumptions[:len(assumptions)-1], Conclusion: Implies(phi, proof.Statement.Conclusion)},
		Rules:     unionRules(proof.Rules, []InferenceRule{MP, I0, I1, D}),
		Lines:     lines,
	}
}

// ProofFromInconsistency returns a proof of conclusion, given proofs of some p and ~p from the same assumptions.
func ProofFromInconsistency(affirmation, negation *Proof, conclusion *Formula) *Proof {
	if !Not(affirmation.Statement.Conclusion).Equal(negation.Statement.Conclusion) {
		panic("conclusions are not contradictory")
	}
	return CombineProofs(negation, affirmation, conclusion, I2)
}

// ProveByContradiction returns a proof of phi, given a proof of ~(p->p) from assumptions ending with ~phi.
func ProveByContradiction(proof *Proof) *Proof {
	if !proof.Statement.Conclusion.Equal(MustParse("~(p->p)")) {
		panic("conclusion must be ~(p->p)")
	}
	assumptions := proof.Statement.Assumptions
	last := assumptions[len(assumptions)-1]
	if last.Root != OpNot {
		panic("last assumption must be a negation")
	}
	phi := last.First
	removed := RemoveAssumption(proof)
	lines := append([]Line{}, removed.Lines...)
	n := len(lines)
	pp := MustParse("(p->p)")
	lines = append(lines,
		// (~phi->~(p->p)) -> ((p->p)->phi)
		RuleLine(Implies(removed.Statement.Conclusion, Implies(pp, phi)), N),
		RuleLine(Implies(pp, phi), MP, n-1, n),
		RuleLine(pp, I0),
		RuleLine(phi, MP, n+2, n+1))
	return &Proof{
		Statement: InferenceRule{Assumptions: removed.Statement.Assumptions, Conclusion: phi},
		Rules:     unionRules(removed.Rules, []InferenceRule{MP, I0, N}),
		Lines:     lines,
	}
}
