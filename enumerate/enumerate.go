package enumerate

import (
	"sort"

	"github.com/qhughes22/superstable/poset"
	"github.com/qhughes22/superstable/rotation"
)

// AllAntichains returns every antichain of dag, including the empty one,
// as sorted slices of rotation indices (spec.md §4.8). The source's
// choice of algorithm is free (§9 Design Notes); this enumerates subsets
// in index order and prunes a branch as soon as it would add a rotation
// comparable to one already chosen,
// which is adequate for the poset sizes this core targets.
func AllAntichains(dag *poset.DAG) [][]int {
	n := dag.N()
	reach := reachability(dag)

	var result [][]int
	var cur []int

	var rec func(i int)
	rec = func(i int) {
		if i == n {
			out := append([]int(nil), cur...)
			result = append(result, out)
			return
		}
		rec(i + 1)

		compatible := true
		for _, j := range cur {
			if reach[i][j] || reach[j][i] {
				compatible = false
				break
			}
		}
		if compatible {
			cur = append(cur, i)
			rec(i + 1)
			cur = cur[:len(cur)-1]
		}
	}
	rec(0)

	sort.Slice(result, func(a, b int) bool {
		return lessAntichain(result[a], result[b])
	})
	return result
}

// CountAntichains counts the antichains of dag without materializing
// matchings (spec.md §6, `count_matchings`).
func CountAntichains(dag *poset.DAG) int {
	return len(AllAntichains(dag))
}

// ApplyAntichain reconstructs the matching an antichain represents: the
// down-closure of antichain (every ancestor plus the antichain itself),
// applied to base in a topological order (spec.md §4.8). Rotations
// commute when unordered by the poset, so any topological order of the
// closure is safe; this one is deterministic (smallest eligible index
// first) so the same antichain always reconstructs the same matching via
// the same sequence of Eliminate calls.
func ApplyAntichain(base []int, rotations []rotation.Rotation, dag *poset.DAG, antichain []int) []int {
	closure := make(map[int]bool)
	for _, a := range antichain {
		for p := range dag.Ancestors(a) {
			closure[p] = true
		}
	}

	M := append([]int(nil), base...)
	for _, p := range topoOrder(closure, dag) {
		M = rotation.Eliminate(M, rotations[p])
	}
	return M
}

func topoOrder(closure map[int]bool, dag *poset.DAG) []int {
	indeg := make(map[int]int, len(closure))
	for p := range closure {
		count := 0
		for _, parent := range dag.Predecessors(p) {
			if closure[parent] {
				count++
			}
		}
		indeg[p] = count
	}

	var ready []int
	for p := range closure {
		if indeg[p] == 0 {
			ready = append(ready, p)
		}
	}
	sort.Ints(ready)

	var order []int
	for len(ready) > 0 {
		p := ready[0]
		ready = ready[1:]
		order = append(order, p)

		for _, s := range dag.Successors(p) {
			if !closure[s] {
				continue
			}
			indeg[s]--
			if indeg[s] == 0 {
				ready = insertSorted(ready, s)
			}
		}
	}
	return order
}

func insertSorted(xs []int, v int) []int {
	i := sort.SearchInts(xs, v)
	xs = append(xs, 0)
	copy(xs[i+1:], xs[i:])
	xs[i] = v
	return xs
}

// reachability computes, for every pair (i, j), whether i can reach j by
// following successor edges.
func reachability(dag *poset.DAG) [][]bool {
	n := dag.N()
	reach := make([][]bool, n)
	for i := range reach {
		reach[i] = make([]bool, n)
	}
	for i := 0; i < n; i++ {
		visited := make([]bool, n)
		var dfs func(x int)
		dfs = func(x int) {
			for _, s := range dag.Successors(x) {
				if !visited[s] {
					visited[s] = true
					reach[i][s] = true
					dfs(s)
				}
			}
		}
		dfs(i)
	}
	return reach
}

func lessAntichain(a, b []int) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
