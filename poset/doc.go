// Package poset builds the rotation poset of spec.md §4.7: a DAG whose
// nodes are rotations (by discovery order) and whose edges record that one
// rotation must be eliminated before another can expose. Antichains of
// this DAG correspond one-to-one with super-stable matchings (§4.8).
package poset
