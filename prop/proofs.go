package prop

import (
	"fmt"
	"strings"
)

// A SpecializationMap maps variable names to the formulas they are specialized into.
type SpecializationMap map[string]*Formula

// An InferenceRule states that its conclusion follows from its assumptions.
// A rule with no assumptions is an axiom.
type InferenceRule struct {
	Assumptions []*Formula
	Conclusion  *Formula
}

// NewRule returns a rule built from its string representation.
// It panics if one of the formulas cannot be parsed.
func NewRule(assumptions []string, conclusion string) InferenceRule {
	rule := InferenceRule{Conclusion: MustParse(conclusion)}
	for _, a := range assumptions {
		rule.Assumptions = append(rule.Assumptions, MustParse(a))
	}
	return rule
}

func (r InferenceRule) String() string {
	strs := make([]string, len(r.Assumptions))
	for i, a := range r.Assumptions {
		strs[i] = a.String()
	}
	return "[" + strings.Join(strs, ", ") + "] ==> " + r.Conclusion.String()
}

// Equal returns true iff both rules have the same assumptions, in the same order, and the same conclusion.
func (r InferenceRule) Equal(other InferenceRule) bool {
	if len(r.Assumptions) != len(other.Assumptions) || !r.Conclusion.Equal(other.Conclusion) {
		return false
	}
	for i := range r.Assumptions {
		if !r.Assumptions[i].Equal(other.Assumptions[i]) {
			return false
		}
	}
	return true
}

// Variables returns the sorted list of variables used by the rule.
func (r InferenceRule) Variables() []string {
	seen := make(map[string]struct{})
	for _, a := range r.Assumptions {
		for _, v := range a.Variables() {
			seen[v] = struct{}{}
		}
	}
	for _, v := range r.Conclusion.Variables() {
		seen[v] = struct{}{}
	}
	return sortedKeys(seen)
}

// Specialize returns the rule obtained by substituting the variables of r according to m.
func (r InferenceRule) Specialize(m SpecializationMap) InferenceRule {
	for v := range m {
		if !IsVariable(v) {
			panic("invalid specialization map key " + v)
		}
	}
	res := InferenceRule{Conclusion: r.Conclusion.SubstituteVariables(m)}
	for _, a := range r.Assumptions {
		res.Assumptions = append(res.Assumptions, a.SubstituteVariables(m))
	}
	return res
}

// MergeSpecializationMaps returns the union of m1 and m2.
// It returns nil if one of them is nil or if they disagree on a variable.
func MergeSpecializationMaps(m1, m2 SpecializationMap) SpecializationMap {
	if m1 == nil || m2 == nil {
		return nil
	}
	res := make(SpecializationMap, len(m1)+len(m2))
	for k, v := range m1 {
		res[k] = v
	}
	for k, v := range m2 {
		if prev, ok := res[k]; ok && !prev.Equal(v) {
			return nil
		}
		res[k] = v
	}
	return res
}

// FormulaSpecializationMap returns the map turning general into specialization,
// or nil if specialization is not a specialization of general.
func FormulaSpecializationMap(general, specialization *Formula) SpecializationMap {
	switch {
	case IsVariable(general.Root):
		return SpecializationMap{general.Root: specialization}
	case IsConstant(general.Root):
		if general.Root != specialization.Root {
			return nil
		}
		return SpecializationMap{}
	case IsUnary(general.Root):
		if specialization.Root != general.Root {
			return nil
		}
		return FormulaSpecializationMap(general.First, specialization.First)
	default:
		if specialization.Root != general.Root {
			return nil
		}
		return MergeSpecializationMaps(
			FormulaSpecializationMap(general.First, specialization.First),
			FormulaSpecializationMap(general.Second, specialization.Second))
	}
}

// SpecializationMap returns the map turning r into specialization, or nil if there is none.
func (r InferenceRule) SpecializationMap(specialization InferenceRule) SpecializationMap {
	if len(r.Assumptions) != len(specialization.Assumptions) {
		return nil
	}
	m := FormulaSpecializationMap(r.Conclusion, specialization.Conclusion)
	for i := range r.Assumptions {
		m = MergeSpecializationMaps(m, FormulaSpecializationMap(r.Assumptions[i], specialization.Assumptions[i]))
	}
	return m
}

// IsSpecializationOf returns true iff r is a specialization of general.
func (r InferenceRule) IsSpecializationOf(general InferenceRule) bool {
	return general.SpecializationMap(r) != nil
}

// A Line of a Proof justifies its formula either as an assumption of the proof (Rule is nil)
// or as the conclusion of a specialization of Rule, whose assumptions are the formulas
// of the lines indexed by Assumptions.
type Line struct {
	Formula     *Formula
	Rule        *InferenceRule
	Assumptions []int
}

// AssumptionLine returns a line justified as an assumption of the proof.
func AssumptionLine(f *Formula) Line {
	return Line{Formula: f}
}

// RuleLine returns a line justified by the given rule applied on previous lines.
func RuleLine(f *Formula, rule InferenceRule, assumptions ...int) Line {
	return Line{Formula: f, Rule: &rule, Assumptions: assumptions}
}

// IsAssumption returns true iff l is justified as an assumption of the proof.
func (l Line) IsAssumption() bool {
	return l.Rule == nil
}

func (l Line) String() string {
	if l.IsAssumption() {
		return l.Formula.String()
	}
	res := l.Formula.String() + " Inference Rule " + l.Rule.String()
	if len(l.Assumptions) > 0 {
		res += fmt.Sprintf(" on %v", l.Assumptions)
	}
	return res
}

// A Proof proves its Statement through the given lines, using only the given Rules.
type Proof struct {
	Statement InferenceRule
	Rules     []InferenceRule
	Lines     []Line
}

func (p *Proof) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Proof for %s via inference rules:\n", p.Statement)
	for _, r := range p.Rules {
		fmt.Fprintf(&b, "  %s\n", r)
	}
	b.WriteString("Lines:\n")
	for i, l := range p.Lines {
		fmt.Fprintf(&b, "%3d) %s\n", i, l)
	}
	return b.String()
}

// HasRule returns true iff rule is one of the rules the proof may use.
func (p *Proof) HasRule(rule InferenceRule) bool {
	return containsRule(p.Rules, rule)
}

func containsRule(rules []InferenceRule, rule InferenceRule) bool {
	for _, r := range rules {
		if r.Equal(rule) {
			return true
		}
	}
	return false
}

// unionRules returns the rules of rs, without duplicates, in order of first appearance.
func unionRules(rs ...[]InferenceRule) []InferenceRule {
	var res []InferenceRule
	for _, rules := range rs {
		for _, r := range rules {
			if !containsRule(res, r) {
				res = append(res, r)
			}
		}
	}
	return res
}

// RuleForLine returns the rule whose assumptions are the formulas of the lines the given line relies on,
// and whose conclusion is the formula of the line.
// It returns nil if the line is justified as an assumption.
func (p *Proof) RuleForLine(index int) *InferenceRule {
	if index < 0 || index >= len(p.Lines) {
		panic(fmt.Sprintf("line index %d out of range", index))
	}
	l := p.Lines[index]
	if l.IsAssumption() {
		return nil
	}
	rule := InferenceRule{Conclusion: l.Formula}
	for _, i := range l.Assumptions {
		rule.Assumptions = append(rule.Assumptions, p.Lines[i].Formula)
	}
	return &rule
}

// IsLineValid returns true iff the line at index is an assumption of the statement
// or is the conclusion of a specialization of an allowed rule applied on previous lines.
func (p *Proof) IsLineValid(index int) bool {
	if index < 0 || index >= len(p.Lines) {
		panic(fmt.Sprintf("line index %d out of range", index))
	}
	l := p.Lines[index]
	if l.IsAssumption() {
		for _, a := range p.Statement.Assumptions {
			if a.Equal(l.Formula) {
				return true
			}
		}
		return false
	}
	if !p.HasRule(*l.Rule) {
		return false
	}
	for _, i := range l.Assumptions {
		if i < 0 || i >= index {
			return false
		}
	}
	return p.RuleForLine(index).IsSpecializationOf(*l.Rule)
}

// IsValid returns true iff every line is valid and the last one is the conclusion of the statement.
func (p *Proof) IsValid() bool {
	if len(p.Lines) == 0 || !p.Lines[len(p.Lines)-1].Formula.Equal(p.Statement.Conclusion) {
		return false
	}
	for i := range p.Lines {
		if !p.IsLineValid(i) {
			return false
		}
	}
	return true
}

// ProveSpecialization returns a proof of specialization, given a proof of a more general statement.
func ProveSpecialization(proof *Proof, specialization InferenceRule) *Proof {
	if !specialization.IsSpecializationOf(proof.Statement) {
		panic("not a specialization of the proven statement")
	}
	m := proof.Statement.SpecializationMap(specialization)
	lines := make([]Line, len(proof.Lines))
	for i, l := range proof.Lines {
		lines[i] = Line{Formula: l.Formula.SubstituteVariables(m), Rule: l.Rule, Assumptions: l.Assumptions}
	}
	return &Proof{Statement: specialization, Rules: proof.Rules, Lines: lines}
}

// InlineProof replaces every use of lemma in mainProof by the lines of lemmaProof.
// The rules of the resulting proof are those of both proofs, except lemma itself.
func InlineProof(mainProof, lemmaProof *Proof) *Proof {
	lemma := lemmaProof.Statement
	var rules []InferenceRule
	for _, r := range unionRules(mainProof.Rules, lemmaProof.Rules) {
		if !r.Equal(lemma) {
			rules = append(rules, r)
		}
	}
	var lines []Line
	shift := make([]int, len(mainProof.Lines))
	for i, l := range mainProof.Lines {
		if l.IsAssumption() || !l.Rule.Equal(lemma) {
			shifted := Line{Formula: l.Formula, Rule: l.Rule}
			for _, a := range l.Assumptions {
				shifted.Assumptions = append(shifted.Assumptions, shift[a])
			}
			lines = append(lines, shifted)
			shift[i] = len(lines) - 1
			continue
		}
		instance := *mainProof.RuleForLine(i)
		sub := ProveSpecialization(lemmaProof, instance)
		offset := len(lines)
		for _, sl := range sub.Lines {
			if sl.IsAssumption() {
				// Lemma assumptions are the formulas of the lines the rule was applied on:
				// their justification is repeated.
				idx := assumptionIndex(instance.Assumptions, sl.Formula)
				src := lines[shift[l.Assumptions[idx]]]
				lines = append(lines, Line{Formula: sl.Formula, Rule: src.Rule, Assumptions: src.Assumptions})
				continue
			}
			moved := Line{Formula: sl.Formula, Rule: sl.Rule}
			for _, a := range sl.Assumptions {
				moved.Assumptions = append(moved.Assumptions, a+offset)
			}
			lines = append(lines, moved)
		}
		shift[i] = len(lines) - 1
	}
	return &Proof{Statement: mainProof.Statement, Rules: rules, Lines: lines}
}

func assumptionIndex(assumptions []*Formula, f *Formula) int {
	for i, a := range assumptions {
		if a.Equal(f) {
			return i
		}
	}
	panic("formula is not an assumption of the lemma")
}
