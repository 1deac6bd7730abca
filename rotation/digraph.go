package rotation

import "sort"

// digraph is a small directed-multigraph-free adjacency structure over
// Node, written in the teacher's adjacency-list style but without a mutex:
// rotation finding is single-threaded per spec.md §5, and the graphs never
// escape one FindRotations call.
type digraph struct {
	nodes map[Node]bool
	out   map[Node]map[Node]bool
	in    map[Node]map[Node]bool
}

func newDigraph() *digraph {
	return &digraph{
		nodes: make(map[Node]bool),
		out:   make(map[Node]map[Node]bool),
		in:    make(map[Node]map[Node]bool),
	}
}

func (g *digraph) addNode(n Node) {
	if g.nodes[n] {
		return
	}
	g.nodes[n] = true
	g.out[n] = make(map[Node]bool)
	g.in[n] = make(map[Node]bool)
}

func (g *digraph) addEdge(from, to Node) {
	g.addNode(from)
	g.addNode(to)
	g.out[from][to] = true
	g.in[to][from] = true
}

func (g *digraph) removeEdge(from, to Node) {
	delete(g.out[from], to)
	delete(g.in[to], from)
}

func (g *digraph) hasEdge(from, to Node) bool {
	return g.out[from][to]
}

// degree is the total in- plus out-degree, matching networkx's semantics
// for an undirected "zero-degree" check on a directed graph.
func (g *digraph) degree(n Node) int {
	return len(g.out[n]) + len(g.in[n])
}

func (g *digraph) outNeighbors(n Node) []Node {
	var out []Node
	for to := range g.out[n] {
		out = append(out, to)
	}
	sortNodes(out)
	return out
}

func (g *digraph) inNeighbors(n Node) []Node {
	var in []Node
	for from := range g.in[n] {
		in = append(in, from)
	}
	sortNodes(in)
	return in
}

func (g *digraph) nodeList() []Node {
	var out []Node
	for n := range g.nodes {
		out = append(out, n)
	}
	sortNodes(out)
	return out
}

func sortNodes(ns []Node) {
	sort.Slice(ns, func(i, j int) bool {
		if ns[i].Side != ns[j].Side {
			return ns[i].Side < ns[j].Side
		}
		return ns[i].Agent < ns[j].Agent
	})
}

// sccs returns the strongly connected components of g (Tarjan's
// algorithm), each as a set of nodes.
func (g *digraph) sccs() []map[Node]bool {
	t := &tarjan{
		g:       g,
		index:   make(map[Node]int),
		lowlink: make(map[Node]int),
		onStack: make(map[Node]bool),
	}
	for _, n := range g.nodeList() {
		if _, seen := t.index[n]; !seen {
			t.strongConnect(n)
		}
	}
	return t.components
}

type tarjan struct {
	g          *digraph
	index      map[Node]int
	lowlink    map[Node]int
	onStack    map[Node]bool
	stack      []Node
	next       int
	components []map[Node]bool
}

func (t *tarjan) strongConnect(v Node) {
	t.index[v] = t.next
	t.lowlink[v] = t.next
	t.next++
	t.stack = append(t.stack, v)
	t.onStack[v] = true

	for _, w := range t.g.outNeighbors(v) {
		if _, seen := t.index[w]; !seen {
			t.strongConnect(w)
			if t.lowlink[w] < t.lowlink[v] {
				t.lowlink[v] = t.lowlink[w]
			}
		} else if t.onStack[w] {
			if t.index[w] < t.lowlink[v] {
				t.lowlink[v] = t.index[w]
			}
		}
	}

	if t.lowlink[v] == t.index[v] {
		comp := make(map[Node]bool)
		for {
			n := len(t.stack) - 1
			w := t.stack[n]
			t.stack = t.stack[:n]
			t.onStack[w] = false
			comp[w] = true
			if w == v {
				break
			}
		}
		t.components = append(t.components, comp)
	}
}

// componentOutDegree counts edges leaving component to a node outside it.
func (g *digraph) componentOutDegree(component map[Node]bool) int {
	count := 0
	for n := range component {
		for to := range g.out[n] {
			if !component[to] {
				count++
			}
		}
	}
	return count
}

// isPerfectMatching reports whether, restricted to component, every node
// of g incident to the induced subgraph has exactly one outgoing and one
// incoming edge within the component.
func (g *digraph) isPerfectMatching(component map[Node]bool) bool {
	outCount := make(map[Node]int)
	inCount := make(map[Node]int)
	for n := range component {
		for to := range g.out[n] {
			if component[to] {
				outCount[n]++
				inCount[to]++
			}
		}
	}
	for n := range component {
		if outCount[n] != 1 || inCount[n] != 1 {
			return false
		}
	}
	return true
}

// subgraphEdges returns the edges of g with both endpoints in component.
func (g *digraph) subgraphEdges(component map[Node]bool) []Pair {
	var edges []Pair
	for n := range component {
		if n.Side != 0 { // only enumerate from the left side to avoid duplicates
			continue
		}
		for to := range g.out[n] {
			if component[to] {
				edges = append(edges, Pair{Left: n.Agent, Right: to.Agent})
			}
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Left != edges[j].Left {
			return edges[i].Left < edges[j].Left
		}
		return edges[i].Right < edges[j].Right
	})
	return edges
}
