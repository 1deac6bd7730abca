// Package extreme computes the two extreme points of the super-stable
// lattice: the left-optimal and right-optimal super-stable matchings,
// together with the fully reduced ("GS") preference lists both sides
// share from then on (spec.md §4.3).
//
// Running gsreduce.Reduce once with the left side proposing and once with
// the right side proposing yields two candidate reductions. Feasibility of
// the instance requires both to succeed; the GS-lists used downstream by
// rotation finding and the rotation poset (stability checks use the
// original lists instead) are the tier-wise intersection of the two
// reductions, per
// spec.md's Design Notes on reconciling the two runs.
package extreme
