// Package stability implements the blocking-pair classifier and the
// weak/strong/super stability predicates of spec.md §4.4.
//
// All checks run against the original (unreduced) preference lists
// supplied at construction — stability is a property of a matching
// relative to what agents actually want, not relative to any
// GS-reduction performed along the way to finding one.
package stability
