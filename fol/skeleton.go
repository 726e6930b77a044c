package fol

import (
	"fmt"

	"github.com/hilbert-prover/hilbert/prop"
)

// PropositionalSkeleton returns the propositional formula obtained from f by replacing, from left
// to right, every outermost relation invocation, equality or quantification with a fresh propositional
// variable taken from FreshNames. Equal subformulas are replaced with the same variable.
// The returned map associates each of these variables with the subformula it replaced.
func (f *Formula) PropositionalSkeleton() (*prop.Formula, map[string]*Formula) {
	sk := skeletonizer{atoms: make(map[string]*Formula), byKey: make(map[string]string)}
	return sk.skeleton(f), sk.atoms
}

type skeletonizer struct {
	atoms map[string]*Formula // propositional variable -> subformula
	byKey map[string]string   // subformula key -> propositional variable
}

func (sk *skeletonizer) skeleton(f *Formula) *prop.Formula {
	switch {
	case IsUnary(f.Root):
		return prop.Not(sk.skeleton(f.First))
	case IsBinary(f.Root):
		first := sk.skeleton(f.First)
		return prop.Binary(f.Root, first, sk.skeleton(f.Second))
	default:
		key := f.Key()
		if name, ok := sk.byKey[key]; ok {
			return prop.Var(name)
		}
		name := FreshNames.Next()
		sk.byKey[key] = name
		sk.atoms[name] = f
		return prop.Var(name)
	}
}

// FromPropositionalSkeleton returns the formula obtained from skeleton by replacing each of its
// variables with its image in m. It panics if a variable has no image, or if skeleton uses a constant.
func FromPropositionalSkeleton(skeleton *prop.Formula, m map[string]*Formula) *Formula {
	switch {
	case prop.IsVariable(skeleton.Root):
		f, ok := m[skeleton.Root]
		if !ok {
			panic(fmt.Sprintf("no formula for propositional variable %s", skeleton.Root))
		}
		return f
	case prop.IsUnary(skeleton.Root):
		return Not(FromPropositionalSkeleton(skeleton.First, m))
	case prop.IsBinary(skeleton.Root):
		return Binary(skeleton.Root,
			FromPropositionalSkeleton(skeleton.First, m),
			FromPropositionalSkeleton(skeleton.Second, m))
	default:
		panic(fmt.Sprintf("%s has no first-order counterpart", skeleton.Root))
	}
}
