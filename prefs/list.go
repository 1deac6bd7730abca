package prefs

import "fmt"

// Tier is a non-empty, unordered set of agents tied at the same preference
// level. Tier 0 (the first tier of a List) is most preferred.
type Tier []Agent

// contains reports whether a is present in the tier.
func (t Tier) contains(a Agent) bool {
	for _, x := range t {
		if x == a {
			return true
		}
	}
	return false
}

// List is one agent's ranked-with-ties preference list: an ordered
// sequence of tiers, best first. Agents absent from every tier are
// unacceptable.
type List struct {
	tiers []Tier
}

// NewList builds a List from tiers in preference order. Tiers are copied
// defensively; the caller's slices may be reused afterward.
func NewList(tiers ...Tier) *List {
	l := &List{tiers: make([]Tier, len(tiers))}
	for i, t := range tiers {
		cp := make(Tier, len(t))
		copy(cp, t)
		l.tiers[i] = cp
	}
	return l
}

// Tiers returns the tiers in preference order. The returned slices must
// not be mutated by the caller; use Clone to obtain a mutable copy.
func (l *List) Tiers() []Tier {
	return l.tiers
}

// Empty reports whether the list has no remaining tiers.
func (l *List) Empty() bool {
	return len(l.tiers) == 0
}

// Top returns the most-preferred tier, or nil if the list is empty.
func (l *List) Top() Tier {
	if len(l.tiers) == 0 {
		return nil
	}
	return l.tiers[0]
}

// Rank returns the index of the tier containing a, or -1 if a is absent
// from the list. Complexity: O(list size).
func (l *List) Rank(a Agent) int {
	if a == Unmatched {
		return -1
	}
	for i, t := range l.tiers {
		if t.contains(a) {
			return i
		}
	}
	return -1
}

// Remove drops a from the list, collapsing the tier if it becomes empty.
// Reports whether a was present. Used only on mutable clones during GS
// reduction — caller-owned original Lists are never mutated.
func (l *List) Remove(a Agent) bool {
	for i, t := range l.tiers {
		for j, x := range t {
			if x != a {
				continue
			}
			l.tiers[i] = append(t[:j], t[j+1:]...)
			if len(l.tiers[i]) == 0 {
				l.tiers = append(l.tiers[:i], l.tiers[i+1:]...)
			}
			return true
		}
	}
	return false
}

// DropTier removes the tier at index idx entirely; an out-of-range idx is
// a no-op.
func (l *List) DropTier(idx int) {
	if idx < 0 || idx >= len(l.tiers) {
		return
	}
	l.tiers = append(l.tiers[:idx], l.tiers[idx+1:]...)
}

// Clone returns a deep, independently mutable copy.
func (l *List) Clone() *List {
	cp := &List{tiers: make([]Tier, len(l.tiers))}
	for i, t := range l.tiers {
		tt := make(Tier, len(t))
		copy(tt, t)
		cp.tiers[i] = tt
	}
	return cp
}

// IndexInTier returns the position of a within the tier at rank, or -1 if
// absent (or if rank is out of range).
func (l *List) IndexInTier(rank int, a Agent) int {
	if rank < 0 || rank >= len(l.tiers) {
		return -1
	}
	for i, x := range l.tiers[rank] {
		if x == a {
			return i
		}
	}
	return -1
}

// Validate checks one agent's list against the constraints spec.md §4.1
// calls out: no agent listed more than once (within a tier or across
// tiers; both report ErrDuplicateInTier), no empty tier, no out-of-range
// id. n is the number of agents on the *opposite* side (the
// universe this List may reference). Validate panics on violation —
// malformed input is a programmer error, not a recoverable condition
// (spec.md §7).
func Validate(side Side, self Agent, l *List, n int) {
	seen := make(map[Agent]bool)
	for _, tier := range l.tiers {
		if len(tier) == 0 {
			panic(fmt.Errorf("%s agent %d: %w", side, self, ErrEmptyTier))
		}
		for _, a := range tier {
			if a < 0 || int(a) >= n {
				panic(fmt.Errorf("%s agent %d references %d: %w", side, self, a, ErrOutOfRange))
			}
			if seen[a] {
				panic(fmt.Errorf("%s agent %d: %w (agent %d)", side, self, ErrDuplicateInTier, a))
			}
			seen[a] = true
		}
	}
}
