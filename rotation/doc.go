// Package rotation implements the Rotation Finder and Rotation Applier of
// spec.md §4.5 and §4.6: the combinatorial core that walks from the
// left-optimal super-stable matching to the right-optimal one, exposing
// and eliminating rotations along the way via two auxiliary directed
// graphs (Gd, tracking currently relevant edges; Gc, tracking rotation
// candidates) and a frontier of not-yet-classified edges (E').
//
// FindRotations owns both graphs and the frontier for the duration of a
// single call; nothing survives past the returned rotation list (spec.md
// §3: "Rotation-finding graphs: scoped to the rotation-finding call").
package rotation
