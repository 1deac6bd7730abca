package gsreduce

import (
	"sort"

	"github.com/qhughes22/superstable/prefs"
)

// Result holds the outcome of one run of the extended Gale–Shapley
// procedure: the reduced lists for both sides (from the proposer's
// perspective), which agents ended unmatched, and whether a super-stable
// matching exists at all.
//
// When Feasible is false, ProposerLists/ProposeeLists/Unmatched* are all
// nil — spec.md §4.2: "infeasible" is a distinguished result, not a
// partial answer.
type Result struct {
	ProposerLists      []*prefs.List
	ProposeeLists      []*prefs.List
	UnmatchedProposers []prefs.Agent
	UnmatchedProposees []prefs.Agent
	Feasible           bool
}

// Reduce runs SUPER2 (spec.md §4.2) with proposer as the proposing side
// and proposee as the non-proposing side. Both inputs are cloned; the
// caller's Lists are left untouched.
func Reduce(proposerPrefs, proposeePrefs []*prefs.List) Result {
	n := len(proposerPrefs)
	m := len(proposeePrefs)

	proposerLists := make([]*prefs.List, n)
	for i, l := range proposerPrefs {
		proposerLists[i] = l.Clone()
	}
	proposeeLists := make([]*prefs.List, m)
	for i, l := range proposeePrefs {
		proposeeLists[i] = l.Clone()
	}

	engaged := make([][]prefs.Agent, n) // per proposer, current tentative engagement set
	everProposed := make([]bool, m)     // per proposee, has she ever received a proposal

	free := make([]prefs.Agent, 0, n)
	for i := range proposerLists {
		if !proposerLists[i].Empty() {
			free = append(free, prefs.Agent(i))
		}
	}

	for len(free) > 0 {
		// Deterministic tie-break: always serve the smallest-id free proposer
		// (spec.md Design Notes: any stable tie-break yields the same result).
		sort.Slice(free, func(i, j int) bool { return free[i] < free[j] })
		p := free[0]

		topTier := proposerLists[p].Top()
		members := make([]prefs.Agent, len(topTier))
		copy(members, topTier)
		sort.Slice(members, func(i, j int) bool { return members[i] < members[j] })

		for _, q := range members {
			everProposed[q] = true
			rankOfP := proposeeLists[q].Rank(p)
			if rankOfP == -1 {
				continue // p already absent from q's list; nothing to do
			}

			// Every proposer q ranks strictly below p is removed from q's
			// list, and symmetrically q is removed from those proposers'
			// lists (and their engagement sets).
			tiers := proposeeLists[q].Tiers()
			var worse []prefs.Agent
			for t := rankOfP + 1; t < len(tiers); t++ {
				worse = append(worse, tiers[t]...)
			}
			for _, r := range worse {
				proposerLists[r].Remove(q)
				proposeeLists[q].Remove(r)
				engaged[r] = removeAgent(engaged[r], q)
			}

			engaged[p] = appendUnique(engaged[p], q)
		}

		// Multiple-engagement pruning: any proposee engaged to two or more
		// proposers loses all of those engagements and her bottom tier.
		counts := make(map[prefs.Agent]int)
		for _, qs := range engaged {
			for _, q := range qs {
				counts[q]++
			}
		}
		var multi []prefs.Agent
		for q, c := range counts {
			if c >= 2 {
				multi = append(multi, q)
			}
		}
		sort.Slice(multi, func(i, j int) bool { return multi[i] < multi[j] })

		for _, q := range multi {
			for r := range engaged {
				engaged[r] = removeAgent(engaged[r], q)
			}
			tiers := proposeeLists[q].Tiers()
			if len(tiers) == 0 {
				continue
			}
			bottom := append(prefs.Tier(nil), tiers[len(tiers)-1]...)
			for _, r2 := range bottom {
				proposerLists[r2].Remove(q)
				proposeeLists[q].Remove(r2)
			}
		}

		// Cleanup: rebuild the free set from scratch.
		free = free[:0]
		for i := range proposerLists {
			if proposerLists[i].Empty() {
				continue
			}
			if len(engaged[i]) == 0 {
				free = append(free, prefs.Agent(i))
			}
		}
	}

	matchedProposees := make([]bool, m)
	for _, qs := range engaged {
		for _, q := range qs {
			matchedProposees[q] = true
		}
	}
	for q := 0; q < m; q++ {
		if everProposed[q] && !matchedProposees[q] {
			return Result{Feasible: false}
		}
	}

	var unmatchedProposers, unmatchedProposees []prefs.Agent
	for i, l := range proposerLists {
		if l.Empty() {
			unmatchedProposers = append(unmatchedProposers, prefs.Agent(i))
		}
	}
	for q := 0; q < m; q++ {
		if !matchedProposees[q] {
			unmatchedProposees = append(unmatchedProposees, prefs.Agent(q))
		}
	}

	return Result{
		ProposerLists:      proposerLists,
		ProposeeLists:      proposeeLists,
		UnmatchedProposers: unmatchedProposers,
		UnmatchedProposees: unmatchedProposees,
		Feasible:           true,
	}
}

func removeAgent(s []prefs.Agent, a prefs.Agent) []prefs.Agent {
	for i, x := range s {
		if x == a {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}

func appendUnique(s []prefs.Agent, a prefs.Agent) []prefs.Agent {
	for _, x := range s {
		if x == a {
			return s
		}
	}
	return append(s, a)
}
