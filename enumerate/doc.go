// Package enumerate implements the Matching Enumerator of spec.md §4.8:
// every antichain of a rotation poset, and the super-stable matching each
// antichain's down-closure reconstructs from a base matching.
package enumerate
