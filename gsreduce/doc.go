// Package gsreduce implements the extended Gale–Shapley procedure with
// ties (Manlove's SUPER2), adapted to incomplete lists: the GS-List
// Engine of spec.md §4.2.
//
// Reduce runs proposer-optimal reduction: proposers propose to their
// entire top tier at once (a tie is one proposal event), cascading
// rejections remove dominated pairs from both lists, and any proposee
// engaged to two or more proposers simultaneously has all of those
// engagements broken and her least-preferred remaining tier discarded.
// The result is the reduced ("GS") lists for both sides; when a
// super-stable matching exists, the proposers' reduced top tiers hold
// their partners in the proposer-optimal one (extreme.Compute reads it
// off from there).
//
// Infeasibility — some proposee who was proposed to at least once ends
// the run unmatched — is reported as data (Result.Feasible == false), not
// as an error; spec.md §7 treats it as the only expected failure mode.
package gsreduce
