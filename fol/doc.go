// Package fol provides first-order terms and formulas.
//
// The kind of a name is given by its first character: constants start with a digit or a letter
// between 'a' and 'd' (the placeholder "_" is also a constant), variables start with a letter
// between 'u' and 'z', functions with a letter between 'f' and 't' and relations with a letter
// between 'F' and 'T'. Formulas are printed and parsed in a canonical form where every binary
// connective is parenthesized, so that Parse(f.String()) is always equal to f.
//
// Terms and formulas are never modified once built: substitutions return new values.
package fol
