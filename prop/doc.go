// Package prop deals with propositional logic: formulas, their semantics and their proofs.
//
// Formulas are written in a fully parenthesized canonical form. Variables are letters between
// 'p' and 'z', optionally followed by digits, constants are T and F, and the connectives are
// "~", "&", "|" and "->". For instance:
//
//	((p&q)->~(r1|F))
//
// Whether a formula is a tautology is decided by translating its negation to CNF and giving
// it to the gophersat SAT solver: the formula is a tautology iff its negation is UNSAT.
//
// Beyond deciding, the package can also build proofs. A Proof is a list of lines, each one
// being either an assumption or the conclusion of a specialization of an inference rule
// applied on previous lines. ProveTautology builds, for any tautology, a proof from no
// assumptions using only the axioms of AxiomaticSystemFull. When the formula only uses
// implication and negation, only the axioms of AxiomaticSystem appear in the proof.
package prop
