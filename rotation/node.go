package rotation

import "github.com/qhughes22/superstable/prefs"

// Node identifies an agent on a side within the rotation-finding graphs.
// spec.md §9 calls out the source's string-prefixed keys ('m0', 'w3') as
// an anti-pattern; Node replaces them with a small tagged value.
type Node struct {
	Side  prefs.Side
	Agent prefs.Agent
}

func left(a prefs.Agent) Node  { return Node{prefs.Left, a} }
func right(a prefs.Agent) Node { return Node{prefs.Right, a} }

// Pair is an acceptable (l, r) edge, independent of any graph.
type Pair struct {
	Left  prefs.Agent
	Right prefs.Agent
}

// rank holds both endpoints' opinion of an edge: how l ranks r on l's
// list, and how r ranks l on r's list.
type rank struct {
	leftRank  int
	rightRank int
}
