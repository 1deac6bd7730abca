// Package prefs defines the immutable-by-contract preference model shared
// by every stage of the super-stable-matching core: ranked tiers (to allow
// indifference) over a possibly-incomplete set of acceptable partners.
//
// A List is caller-provided at construction and never mutated in place by
// callers; algorithms that need to shrink a list (the GS-list engine)
// operate on a Clone. Duplicate entries, empty tiers and out-of-range ids
// are programmer error and panic — see Validate.
//
// Ranking of an agent b in a's list is the index of the tier containing b,
// or -1 ("absent") if a finds b unacceptable.
package prefs
