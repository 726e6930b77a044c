package explain

import (
	"sort"

	"github.com/hilbert-prover/hilbert/proofs"
)

// A Core is the part of a proof its conclusion actually depends on.
// Lines are sorted; Assumptions are in the order of the proof's assumptions.
type Core struct {
	Lines       []int
	Assumptions []*proofs.Schema
}

// FindCore walks back the justifications of the last line of p and returns the lines and
// assumptions it depends on. Lines that are not used by the conclusion, and assumptions that do
// not justify any used line, are left out. References to lines that do not precede the line
// using them are ignored.
// An empty proof has an empty core.
func FindCore(p *proofs.Proof) Core {
	if len(p.Lines) == 0 {
		return Core{}
	}
	used := make(map[int]bool)
	usedAssumptions := make(map[string]bool)
	todo := []int{len(p.Lines) - 1}
	for len(todo) > 0 {
		i := todo[len(todo)-1]
		todo = todo[:len(todo)-1]
		if used[i] {
			continue
		}
		used[i] = true
		var refs []int
		switch l := p.Lines[i].(type) {
		case *proofs.MPLine:
			refs = []int{l.Antecedent, l.Conditional}
		case *proofs.UGLine:
			refs = []int{l.Predicate}
		case *proofs.AssumptionLine:
			if a := justifyingAssumption(p.Assumptions, l); a != nil {
				usedAssumptions[a.Key()] = true
			}
		}
		for _, ref := range refs {
			if ref >= 0 && ref < i {
				todo = append(todo, ref)
			}
		}
	}
	var res Core
	for i := range used {
		res.Lines = append(res.Lines, i)
	}
	sort.Ints(res.Lines)
	for _, a := range p.Assumptions {
		if usedAssumptions[a.Key()] {
			res.Assumptions = append(res.Assumptions, a)
		}
	}
	return res
}

// justifyingAssumption returns the first assumption that instantiates to the formula of l with its map.
func justifyingAssumption(assumptions []*proofs.Schema, l *proofs.AssumptionLine) *proofs.Schema {
	for _, a := range assumptions {
		if f, ok := a.Instantiate(l.Map); ok && f.Equal(l.Formula) {
			return a
		}
	}
	return nil
}
