package extreme

import (
	"github.com/qhughes22/superstable/gsreduce"
	"github.com/qhughes22/superstable/prefs"
)

// Extremes holds the symmetric GS-lists and the two extreme super-stable
// matchings derived from them (spec.md §4.3). Feasible is false iff either
// orientation of GS reduction failed; in that case the remaining fields
// are zero-valued and must not be used.
type Extremes struct {
	Feasible bool

	LeftGS  []*prefs.List // symmetric reduced lists, indexed by left agent
	RightGS []*prefs.List // symmetric reduced lists, indexed by right agent

	LeftOptimal  []int // left-optimal matching, L-indexed, -1 = unmatched
	RightOptimal []int // right-optimal matching, L-indexed, -1 = unmatched
}

// Compute runs GS reduction in both orientations and intersects the
// results tier-wise to produce the canonical GS-lists used by rotation
// finding and the rotation poset.
func Compute(leftPrefs, rightPrefs []*prefs.List) Extremes {
	leftRun := gsreduce.Reduce(leftPrefs, rightPrefs)
	if !leftRun.Feasible {
		return Extremes{}
	}
	rightRun := gsreduce.Reduce(rightPrefs, leftPrefs)
	if !rightRun.Feasible {
		return Extremes{}
	}

	leftGS := intersectLists(leftRun.ProposerLists, rightRun.ProposeeLists)
	rightGS := intersectLists(leftRun.ProposeeLists, rightRun.ProposerLists)

	leftOptimal := topOf(leftRun.ProposerLists)

	rightOptimalInverse := topOf(rightRun.ProposerLists) // R-indexed: r -> l
	rightOptimal := make([]int, len(leftPrefs))
	for i := range rightOptimal {
		rightOptimal[i] = -1
	}
	for r, l := range rightOptimalInverse {
		if l != -1 {
			rightOptimal[l] = r
		}
	}

	return Extremes{
		Feasible:     true,
		LeftGS:       leftGS,
		RightGS:      rightGS,
		LeftOptimal:  leftOptimal,
		RightOptimal: rightOptimal,
	}
}

// topOf reads off the unique partner at the top of each agent's reduced
// list, matching spec.md §4.3: "top(GS-list)". A reduced list may retain a
// tied top tier with more than one member when the tie was never resolved
// against the opposite side's reduction; the first member in the tier's
// stored order (prefs.List keeps the order its tiers were given in) is
// taken as the representative.
func topOf(lists []*prefs.List) []int {
	out := make([]int, len(lists))
	for i, l := range lists {
		top := l.Top()
		if len(top) == 0 {
			out[i] = -1
			continue
		}
		out[i] = int(top[0])
	}
	return out
}

// intersectLists keeps, tier by tier, only the entries each agent's P-optimal
// reduction shares with the corresponding entry of the Q-optimal reduction
// (spec.md §4.3). Tier order is taken from a; membership is checked in b.
func intersectLists(a, b []*prefs.List) []*prefs.List {
	out := make([]*prefs.List, len(a))
	for i := range a {
		var tiers []prefs.Tier
		for _, tier := range a[i].Tiers() {
			var kept prefs.Tier
			for _, agent := range tier {
				if b[i].Rank(agent) != -1 {
					kept = append(kept, agent)
				}
			}
			if len(kept) > 0 {
				tiers = append(tiers, kept)
			}
		}
		out[i] = prefs.NewList(tiers...)
	}
	return out
}
