package fol

import (
	"strconv"
	"sync/atomic"
)

// A NameGenerator mints names made of a fixed prefix followed by an increasing counter.
// It is safe for concurrent use.
type NameGenerator struct {
	prefix string
	n      atomic.Uint64
}

// NewNameGenerator returns a generator whose first name is prefix followed by 1.
func NewNameGenerator(prefix string) *NameGenerator {
	return &NameGenerator{prefix: prefix}
}

// Next returns a name that was never returned since the last reset.
func (g *NameGenerator) Next() string {
	return g.prefix + strconv.FormatUint(g.n.Add(1), 10)
}

// Reset restarts the sequence. Only meant for tests that need reproducible names.
func (g *NameGenerator) Reset() {
	g.n.Store(0)
}

// FreshNames is the process-wide source of temporary names: z1, z2, ...
// These names are both valid variable names and valid propositional variable names.
// Callers relying on fresh names must not use names of this shape themselves.
var FreshNames = NewNameGenerator("z")
