package poset

import (
	"github.com/qhughes22/superstable/prefs"
	"github.com/qhughes22/superstable/rotation"
)

// EdgeType distinguishes the two ways one rotation can force another to
// precede it (spec.md §4.7).
type EdgeType int

const (
	// Type1 records that a rotation removes an edge another rotation needs.
	Type1 EdgeType = 1
	// Type2 records that a rotation moves an agent past another rotation's pair.
	Type2 EdgeType = 2
)

// Edge is a directed precedence constraint From -> To between two
// rotation indices: From must be eliminated before To can expose.
type Edge struct {
	From, To int
	Type     EdgeType
}

// DAG is the rotation poset: nodes {0, ..., N-1}, one per discovered
// rotation, with edges deduplicated ignoring type.
type DAG struct {
	n     int
	edges []Edge
	out   map[int][]int
	in    map[int][]int
}

// N returns the number of rotations (nodes) in the poset.
func (d *DAG) N() int { return d.n }

// Edges returns the deduplicated edge list.
func (d *DAG) Edges() []Edge { return d.edges }

// Successors returns the rotations that p must precede.
func (d *DAG) Successors(p int) []int { return d.out[p] }

// Predecessors returns the rotations that must precede p.
func (d *DAG) Predecessors(p int) []int { return d.in[p] }

// Ancestors returns p together with every rotation reachable by walking
// predecessors (spec.md §4.8's down-closure of a single rotation).
func (d *DAG) Ancestors(p int) map[int]bool {
	seen := make(map[int]bool)
	var walk func(int)
	walk = func(x int) {
		if seen[x] {
			return
		}
		seen[x] = true
		for _, parent := range d.in[x] {
			walk(parent)
		}
	}
	walk(p)
	return seen
}

// Build constructs the rotation poset from the rotations discovered by
// rotation.FindRotations, using the same symmetric GS-lists.
//
// For each rotation p and each pair (l, r) in rotation p: a Type-1 label p
// is placed at position (l's list, r) — the rotation "happens" where r
// sits on l's list. A Type-2 label p is placed, for every L-agent
// strictly ranked between r's new and old partner within a single cycle
// of rotation p, at position (that agent's list, r): that agent's pair
// with r is skipped over by the rotation's shift.
//
// Edges are read off each L-agent's list scanned best-to-worst: a Type-1
// label p with a prior label p* != p emits p* -> p (Type-1 edge); a
// Type-2 label p2 with a prior label p* != p2 emits p2 -> p* (Type-2
// edge). Edges are deduplicated ignoring type.
func Build(rotations []rotation.Rotation, leftGS, rightGS []*prefs.List) *DAG {
	n := len(rotations)

	type1 := make([]map[prefs.Agent]int, len(leftGS))
	type2 := make([]map[prefs.Agent]int, len(leftGS))
	for i := range leftGS {
		type1[i] = make(map[prefs.Agent]int)
		type2[i] = make(map[prefs.Agent]int)
	}

	for p, rot := range rotations {
		for _, pair := range rot.Pairs {
			type1[pair.Left][pair.Right] = p
		}

		bounds := append(append([]int(nil), rot.CycleStarts...), len(rot.Pairs))
		for c := 0; c < len(rot.CycleStarts); c++ {
			cycle := rot.Pairs[bounds[c]:bounds[c+1]]
			k := len(cycle)
			for j, pair := range cycle {
				woman := pair.Right
				oldMan := pair.Left
				newMan := cycle[(j-1+k)%k].Left

				oldRank := rightGS[woman].Rank(oldMan)
				newRank := rightGS[woman].Rank(newMan)
				if oldRank == -1 || newRank == -1 {
					continue
				}
				tiers := rightGS[woman].Tiers()
				for t := newRank + 1; t < oldRank; t++ {
					for _, man := range tiers[t] {
						type2[man][woman] = p
					}
				}
			}
		}
	}

	const none = -1
	seen := make(map[[2]int]bool)
	var edges []Edge
	addEdge := func(from, to int, typ EdgeType) {
		key := [2]int{from, to}
		if seen[key] {
			return
		}
		seen[key] = true
		edges = append(edges, Edge{From: from, To: to, Type: typ})
	}

	for l, list := range leftGS {
		pStar := none
		for _, tier := range list.Tiers() {
			for _, r := range tier {
				if p, ok := type1[l][r]; ok {
					if pStar != none && p != pStar {
						addEdge(pStar, p, Type1)
					}
					pStar = p
				}
				if p2, ok := type2[l][r]; ok {
					if pStar != none && p2 != pStar {
						addEdge(p2, pStar, Type2)
					}
				}
			}
		}
	}

	d := &DAG{n: n, edges: edges, out: make(map[int][]int), in: make(map[int][]int)}
	for _, e := range edges {
		d.out[e.From] = append(d.out[e.From], e.To)
		d.in[e.To] = append(d.in[e.To], e.From)
	}
	return d
}
