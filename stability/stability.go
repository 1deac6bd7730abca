package stability

import "github.com/qhughes22/superstable/prefs"

// BlockingStatus encodes how badly a pair (l,r) blocks a matching
// (spec.md §4.4).
type BlockingStatus int

const (
	NotBlocking  BlockingStatus = -1
	BlocksSuper  BlockingStatus = 0
	BlocksStrong BlockingStatus = 1
	BlocksWeak   BlockingStatus = 2
)

// Invert builds the R-indexed partner array from an L-indexed matching.
// rightN is the number of right agents.
func Invert(matching []int, rightN int) []int {
	inverse := make([]int, rightN)
	for i := range inverse {
		inverse[i] = -1
	}
	for l, r := range matching {
		if r != -1 {
			inverse[r] = l
		}
	}
	return inverse
}

// Status classifies the pair (l,r) against matching. r absent from l's
// list is never blocking. Otherwise each side's opinion is scored +1
// (strictly prefers the candidate), 0 (indifferent), or -1 (strictly
// prefers its current partner); the sum determines severity.
func Status(leftPrefs, rightPrefs []*prefs.List, matching []int, l, r prefs.Agent) BlockingStatus {
	inverse := Invert(matching, len(rightPrefs))
	return status(leftPrefs, rightPrefs, matching, inverse, l, r)
}

func status(leftPrefs, rightPrefs []*prefs.List, matching, inverse []int, l, r prefs.Agent) BlockingStatus {
	rRank := leftPrefs[l].Rank(r)
	if rRank == -1 {
		return NotBlocking
	}
	lRank := rightPrefs[r].Rank(l)
	if lRank == -1 {
		return NotBlocking
	}

	opL := opinion(leftPrefs[l], matching[l], rRank)
	opR := opinion(rightPrefs[r], inverse[r], lRank)
	s := opL + opR

	switch {
	case s == 2:
		return BlocksWeak
	case s == 1:
		return BlocksStrong
	case opL == 0 && opR == 0:
		return BlocksSuper
	default:
		return NotBlocking
	}
}

// opinion scores how an agent with the given list and current partner (-1
// if unmatched) feels about a candidate ranked at candidateRank.
func opinion(list *prefs.List, currentPartner int, candidateRank int) int {
	if currentPartner == -1 {
		return 1
	}
	currentRank := list.Rank(prefs.Agent(currentPartner))
	switch {
	case candidateRank < currentRank:
		return 1
	case candidateRank == currentRank:
		return 0
	default:
		return -1
	}
}

// IsSuperStable reports whether matching has no pair with blocking status
// >= BlocksSuper.
func IsSuperStable(leftPrefs, rightPrefs []*prefs.List, matching []int) bool {
	return !anyBlockingAtLeast(leftPrefs, rightPrefs, matching, BlocksSuper)
}

// IsStronglyStable reports whether matching has no pair with blocking
// status >= BlocksStrong.
func IsStronglyStable(leftPrefs, rightPrefs []*prefs.List, matching []int) bool {
	return !anyBlockingAtLeast(leftPrefs, rightPrefs, matching, BlocksStrong)
}

// IsWeaklyStable reports whether matching has no pair with blocking
// status >= BlocksWeak.
func IsWeaklyStable(leftPrefs, rightPrefs []*prefs.List, matching []int) bool {
	return !anyBlockingAtLeast(leftPrefs, rightPrefs, matching, BlocksWeak)
}

// anyBlockingAtLeast scans, for every left agent, every right candidate up
// to and including the current partner's tier (the full list if
// unmatched) — the only range that can ever produce a status at or above
// any threshold, since tiers worse than the current partner's score -1 on
// the left and so can never sum to a blocking status.
func anyBlockingAtLeast(leftPrefs, rightPrefs []*prefs.List, matching []int, threshold BlockingStatus) bool {
	inverse := Invert(matching, len(rightPrefs))

	for l := range leftPrefs {
		partner := matching[l]
		tiers := leftPrefs[l].Tiers()
		limit := len(tiers)
		if partner != -1 {
			if pr := leftPrefs[l].Rank(prefs.Agent(partner)); pr != -1 {
				limit = pr + 1
			}
		}

		for t := 0; t < limit; t++ {
			for _, r := range tiers[t] {
				if partner != -1 && r == prefs.Agent(partner) {
					continue
				}
				st := status(leftPrefs, rightPrefs, matching, inverse, prefs.Agent(l), r)
				if st != NotBlocking && st >= threshold {
					return true
				}
			}
		}
	}
	return false
}
