package rotation

import (
	"fmt"
	"sort"

	"github.com/qhughes22/superstable/prefs"
)

// Rotation is an ordered list of pre-rotation pairs, possibly spanning
// several disjoint cycles (spec.md §3/§4.5.d). CycleStarts holds the index
// into Pairs where each new cycle begins.
type Rotation struct {
	Pairs       []Pair
	CycleStarts []int
}

// FindRotations walks from the left-optimal matching to the right-optimal
// one, exposing and eliminating rotations in discovery order (spec.md
// §4.5). leftGS/rightGS are the symmetric GS-lists; leftOptimal and
// rightOptimal are L-indexed matchings with -1 for unmatched.
func FindRotations(leftGS, rightGS []*prefs.List, leftOptimal, rightOptimal []int) []Rotation {
	n := len(leftGS)
	M := append([]int(nil), leftOptimal...)
	Mz := rightOptimal

	ranks := make(map[Pair]rank)
	var E []Pair
	for l, list := range leftGS {
		for _, tier := range list.Tiers() {
			for _, r := range tier {
				p := Pair{Left: prefs.Agent(l), Right: r}
				E = append(E, p)
				ranks[p] = rank{
					leftRank:  list.Rank(r),
					rightRank: rightGS[r].Rank(prefs.Agent(l)),
				}
			}
		}
	}

	gd := newDigraph()
	gc := newDigraph()
	for l := 0; l < n; l++ {
		if leftOptimal[l] != -1 {
			gd.addNode(left(prefs.Agent(l)))
			gd.addNode(right(prefs.Agent(leftOptimal[l])))
			gc.addNode(left(prefs.Agent(l)))
			gc.addNode(right(prefs.Agent(leftOptimal[l])))
		}
	}

	Ed := make(map[Pair]bool)
	for l := 0; l < n; l++ {
		if M[l] != -1 {
			p := Pair{Left: prefs.Agent(l), Right: prefs.Agent(M[l])}
			Ed[p] = true
			gd.addEdge(right(p.Right), left(p.Left))
		}
	}

	Eprime := make(map[Pair]bool)
	for _, e := range E {
		if !Ed[e] {
			Eprime[e] = true
		}
	}

	Ec := make(map[Pair]bool)
	for l := 0; l < n; l++ {
		if leftOptimal[l] != -1 && leftOptimal[l] == rightOptimal[l] {
			p := Pair{Left: prefs.Agent(l), Right: prefs.Agent(leftOptimal[l])}
			Ec[p] = true
			gc.addEdge(left(p.Left), right(p.Right))
		}
	}

	var rotations []Rotation

	for !matchingsEqual(M, Mz) {
		removeDominatedNonBlockingEdges(M, leftGS, rightGS, Eprime)
		growGdGc(gd, gc, Eprime, Ed, Ec, ranks, M)
		multipleEngagementPruning(gd, gc, Eprime, Ec, ranks)

		for {
			components := gd.sccs()
			var valid []map[Node]bool
			for _, c := range components {
				if gd.componentOutDegree(c) == 0 {
					valid = append(valid, c)
				}
			}
			sortComponents(valid)

			var chosen map[Node]bool
			for _, c := range valid {
				if gc.isPerfectMatching(c) {
					chosen = c
					break
				}
			}
			if chosen == nil {
				break
			}

			componentEdges := gc.subgraphEdges(chosen)
			rot, newM := extractRotation(componentEdges, M)
			rotations = append(rotations, rot)
			M = newM

			inComponent := func(p Pair) bool {
				return chosen[left(p.Left)] && chosen[right(p.Right)]
			}
			for p := range Ec {
				if inComponent(p) {
					if !(M[p.Left] == Mz[p.Left] && M[p.Left] == int(p.Right)) {
						delete(Ec, p)
						gc.removeEdge(left(p.Left), right(p.Right))
					}
				}
			}

			touchesComponent := func(p Pair) bool {
				return chosen[left(p.Left)] || chosen[right(p.Right)]
			}
			var snapshot []Pair
			for p := range Ed {
				snapshot = append(snapshot, p)
			}
			for _, p := range snapshot {
				if !touchesComponent(p) {
					continue
				}
				if gd.hasEdge(left(p.Left), right(p.Right)) {
					gd.removeEdge(left(p.Left), right(p.Right))
					if M[p.Left] == int(p.Right) {
						gd.addEdge(right(p.Right), left(p.Left))
					} else {
						delete(Ed, p)
					}
				} else if gd.hasEdge(right(p.Right), left(p.Left)) {
					if M[p.Left] != int(p.Right) {
						gd.removeEdge(right(p.Right), left(p.Left))
						delete(Ed, p)
					}
				}
			}
		}
	}

	return rotations
}

func matchingsEqual(a, b []int) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sortComponents(cs []map[Node]bool) {
	sort.Slice(cs, func(i, j int) bool {
		return minNode(cs[i]) < minNode(cs[j])
	})
}

// minNode gives components a deterministic ordering key: the smallest
// (side, agent) pair they contain.
func minNode(c map[Node]bool) int64 {
	best := int64(1) << 62
	for n := range c {
		key := int64(n.Agent)*2 + int64(n.Side)
		if key < best {
			best = key
		}
	}
	return best
}

// removeDominatedNonBlockingEdges implements spec.md §4.5(a), consistently
// against the GS-lists on both sides — spec.md §9 flags the source's use
// of the original (non-reduced) list here as an unresolved inconsistency;
// this implementation follows the GS list throughout, per the guidance to
// validate against (S1).
func removeDominatedNonBlockingEdges(M []int, leftGS, rightGS []*prefs.List, Eprime map[Pair]bool) {
	for l, r := range M {
		if r == -1 {
			continue
		}
		currentRank := leftGS[l].Rank(prefs.Agent(r))
		for r2 := 0; r2 < len(rightGS); r2++ {
			if rk := leftGS[l].Rank(prefs.Agent(r2)); rk != -1 && rk <= currentRank {
				delete(Eprime, Pair{Left: prefs.Agent(l), Right: prefs.Agent(r2)})
			}
		}
		currentRankR := rightGS[r].Rank(prefs.Agent(l))
		for l2 := 0; l2 < len(leftGS); l2++ {
			if rk := rightGS[r].Rank(prefs.Agent(l2)); rk != -1 && rk > currentRankR {
				delete(Eprime, Pair{Left: prefs.Agent(l2), Right: prefs.Agent(r)})
			}
		}
	}
}

// growGdGc implements spec.md §4.5(b): repeatedly pick an L-agent with
// zero Gc-degree sitting in a zero-outdegree Gd component, add its
// best remaining E' edges, and promote qualifying edges into Ec/Gc.
func growGdGc(gd, gc *digraph, Eprime, Ed, Ec map[Pair]bool, ranks map[Pair]rank, M []int) {
	for {
		var zeroDegL []prefs.Agent
		for _, n := range gc.nodeList() {
			if n.Side == prefs.Left && gc.degree(n) == 0 {
				zeroDegL = append(zeroDegL, n.Agent)
			}
		}
		if len(zeroDegL) == 0 {
			return
		}

		components := gd.sccs()
		compOf := func(n Node) map[Node]bool {
			for _, c := range components {
				if c[n] {
					return c
				}
			}
			return nil
		}

		var m prefs.Agent
		found := false
		for _, l := range zeroDegL {
			if c := compOf(left(l)); c != nil && gd.componentOutDegree(c) == 0 {
				m = l
				found = true
				break
			}
		}
		if !found {
			return
		}

		var mEdges []Pair
		lowestRank := -1
		for p := range Eprime {
			if p.Left == m {
				mEdges = append(mEdges, p)
				if lowestRank == -1 || ranks[p].leftRank < lowestRank {
					lowestRank = ranks[p].leftRank
				}
			}
		}
		if len(mEdges) == 0 {
			return
		}
		var best []Pair
		for _, p := range mEdges {
			if ranks[p].leftRank == lowestRank {
				best = append(best, p)
			}
		}
		sortPairs(best)

		for _, p := range best {
			gd.addEdge(left(p.Left), right(p.Right))
			Ed[p] = true
		}

		components = gd.sccs()
		comp := compOf(left(m))

		if comp != nil && gd.componentOutDegree(comp) == 0 {
			for _, p := range best {
				r := p.Right
				wPartner, ok := holderOf(M, r)
				mPartner := prefs.Agent(M[m])
				if !ok || mPartner == prefs.Unmatched {
					continue
				}
				wPartnerEdge := Pair{Left: wPartner, Right: r}
				mPartnerEdge := Pair{Left: m, Right: mPartner}
				edgeRank := ranks[p]

				if edgeRank.rightRank < ranks[wPartnerEdge].rightRank && edgeRank.leftRank > ranks[mPartnerEdge].leftRank {
					in := gc.inNeighbors(right(r))
					admit := len(in) == 0
					if !admit {
						rep := Pair{Left: in[0].Agent, Right: r}
						admit = ranks[rep].rightRank > edgeRank.rightRank
					}
					if admit {
						Ec[p] = true
						gc.addEdge(left(p.Left), right(r))
						for p2 := range Ec {
							if p2.Right == r && p2 != p && ranks[p2].rightRank > edgeRank.rightRank {
								delete(Ec, p2)
								gc.removeEdge(left(p2.Left), right(r))
							}
						}
					}
				}
			}
		}

		for _, p := range best {
			delete(Eprime, p)
		}
	}
}

func holderOf(M []int, r prefs.Agent) (prefs.Agent, bool) {
	for l, partner := range M {
		if partner == int(r) {
			return prefs.Agent(l), true
		}
	}
	return prefs.Unmatched, false
}

// multipleEngagementPruning implements spec.md §4.5(c).
func multipleEngagementPruning(gd, gc *digraph, Eprime, Ec map[Pair]bool, ranks map[Pair]rank) {
	type lowest struct {
		rank  int
		count int
	}
	byRight := make(map[prefs.Agent]lowest)
	consider := func(p Pair) {
		cur, seen := byRight[p.Right]
		rr := ranks[p].rightRank
		switch {
		case !seen:
			byRight[p.Right] = lowest{rank: rr, count: 1}
		case rr < cur.rank:
			byRight[p.Right] = lowest{rank: rr, count: 1}
		case rr == cur.rank:
			byRight[p.Right] = lowest{rank: rr, count: cur.count + 1}
		}
	}
	for p := range Eprime {
		consider(p)
	}
	for p := range Ec {
		consider(p)
	}

	multiplyEngaged := make(map[prefs.Agent]bool)
	for r, l := range byRight {
		if l.count > 1 {
			multiplyEngaged[r] = true
		}
	}
	if len(multiplyEngaged) <= 1 {
		return
	}

	components := gd.sccs()
	compOf := func(n Node) map[Node]bool {
		for _, c := range components {
			if c[n] {
				return c
			}
		}
		return nil
	}
	outdegZero := make(map[prefs.Agent]bool)
	for _, n := range gd.nodeList() {
		if n.Side != prefs.Left {
			continue
		}
		if c := compOf(n); c != nil && gd.componentOutDegree(c) == 0 {
			outdegZero[n.Agent] = true
		}
	}

	type lowestEdges struct {
		rank  int
		edges []Pair
	}
	byLeft := make(map[prefs.Agent]lowestEdges)
	considerL := func(p Pair) {
		if !outdegZero[p.Left] {
			return
		}
		cur, seen := byLeft[p.Left]
		lr := ranks[p].leftRank
		switch {
		case !seen:
			byLeft[p.Left] = lowestEdges{rank: lr, edges: []Pair{p}}
		case lr < cur.rank:
			byLeft[p.Left] = lowestEdges{rank: lr, edges: []Pair{p}}
		case lr == cur.rank:
			cur.edges = append(cur.edges, p)
			byLeft[p.Left] = cur
		}
	}
	for p := range Eprime {
		considerL(p)
	}
	for p := range Ec {
		considerL(p)
	}

	var toRemove []Pair
	for _, le := range byLeft {
		for _, p := range le.edges {
			if multiplyEngaged[p.Right] {
				toRemove = append(toRemove, p)
			}
		}
	}
	for _, p := range toRemove {
		if Ec[p] {
			delete(Ec, p)
			gc.removeEdge(left(p.Left), right(p.Right))
		} else {
			delete(Eprime, p)
		}
	}
}

// extractRotation walks the Gc-subgraph restricted to an exposed
// component, which by construction decomposes into disjoint cycles
// (spec.md §4.5.d.ii), and produces the ordered pre-rotation pairs
// together with the matching that results from applying them.
func extractRotation(edges []Pair, M []int) (Rotation, []int) {
	target := make(map[prefs.Agent]prefs.Agent)
	for _, e := range edges {
		target[e.Left] = e.Right
	}
	remaining := make(map[prefs.Agent]bool, len(target))
	var starters []prefs.Agent
	for l := range target {
		remaining[l] = true
		starters = append(starters, l)
	}
	sort.Slice(starters, func(i, j int) bool { return starters[i] < starters[j] })

	holder := make(map[int]prefs.Agent)
	for l, r := range M {
		if r != -1 {
			holder[r] = prefs.Agent(l)
		}
	}

	newM := append([]int(nil), M...)
	var pairs []Pair
	var cycleStarts []int

	for _, start := range starters {
		if !remaining[start] {
			continue
		}
		cycleStarts = append(cycleStarts, len(pairs))
		firstMan := start
		cur := firstMan
		for {
			pairs = append(pairs, Pair{Left: cur, Right: prefs.Agent(M[cur])})
			delete(remaining, cur)
			next := target[cur]
			newM[cur] = int(next)
			nextMan, ok := holder[int(next)]
			if !ok || nextMan == firstMan {
				break
			}
			cur = nextMan
		}
	}

	return Rotation{Pairs: pairs, CycleStarts: cycleStarts}, newM
}

// Eliminate applies a previously discovered rotation to an arbitrary
// matching (spec.md §4.6): partition Pairs into cycles using CycleStarts,
// and within each cycle of length k set M[l_i] <- r_{(i+1) mod k}.
//
// Unlike the naive slicing this replaces, the last cycle runs to the end
// of Pairs rather than wrapping to a negative index — a multi-cycle
// rotation whose final cycle is length > 1 would otherwise lose its last
// pair.
func Eliminate(M []int, rot Rotation) []int {
	out := append([]int(nil), M...)

	bounds := append(append([]int(nil), rot.CycleStarts...), len(rot.Pairs))
	for c := 0; c < len(rot.CycleStarts); c++ {
		cycle := rot.Pairs[bounds[c]:bounds[c+1]]
		k := len(cycle)
		for _, pair := range cycle {
			if out[pair.Left] != int(pair.Right) {
				panic(fmt.Errorf("rotation not exposed: agent %d expected partner %d, matching has %d",
					pair.Left, pair.Right, out[pair.Left]))
			}
		}
		for i, pair := range cycle {
			next := cycle[(i+1)%k]
			out[pair.Left] = int(next.Right)
		}
	}
	return out
}

func sortPairs(ps []Pair) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].Left != ps[j].Left {
			return ps[i].Left < ps[j].Left
		}
		return ps[i].Right < ps[j].Right
	})
}
