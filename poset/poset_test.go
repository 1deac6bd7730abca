package poset_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qhughes22/superstable/extreme"
	"github.com/qhughes22/superstable/poset"
	"github.com/qhughes22/superstable/prefs"
	"github.com/qhughes22/superstable/rotation"
)

func hasEdge(edges []poset.Edge, from, to int) bool {
	for _, e := range edges {
		if e.From == from && e.To == to {
			return true
		}
	}
	return false
}

// TestBuild_Type1Edge constructs two synthetic rotations whose Type-1
// labels land on left agent 0's list in preference order 0, then 1,
// producing a single Type-1 edge 0 -> 1.
func TestBuild_Type1Edge(t *testing.T) {
	leftGS := []*prefs.List{
		prefs.NewList(prefs.Tier{0}, prefs.Tier{1}),
		prefs.NewList(prefs.Tier{1}, prefs.Tier{0}),
	}
	rightGS := []*prefs.List{
		prefs.NewList(prefs.Tier{0}),
		prefs.NewList(prefs.Tier{0}),
	}

	rotations := []rotation.Rotation{
		{
			Pairs:       []rotation.Pair{{Left: 0, Right: 0}, {Left: 1, Right: 1}},
			CycleStarts: []int{0},
		},
		{
			Pairs:       []rotation.Pair{{Left: 0, Right: 1}, {Left: 1, Right: 0}},
			CycleStarts: []int{0},
		},
	}

	dag := poset.Build(rotations, leftGS, rightGS)
	require.Equal(t, 2, dag.N())
	require.True(t, hasEdge(dag.Edges(), 0, 1), "edges = %+v", dag.Edges())
	require.False(t, hasEdge(dag.Edges(), 1, 0), "must not contain the reverse edge; edges = %+v", dag.Edges())
}

// TestBuild_Type2Edge constructs two synthetic rotations where rotation 0's
// shift on right-agent 0 skips over left-agent 0, and left-agent 0's own
// list places a Type-1 label from rotation 1 earlier in preference order —
// producing a single Type-2 edge 0 -> 1.
func TestBuild_Type2Edge(t *testing.T) {
	leftGS := []*prefs.List{
		prefs.NewList(prefs.Tier{3}, prefs.Tier{0}),
		prefs.NewList(prefs.Tier{0}, prefs.Tier{5}),
		prefs.NewList(prefs.Tier{4}),
	}
	rightGS := []*prefs.List{
		prefs.NewList(prefs.Tier{2}, prefs.Tier{0}, prefs.Tier{1}), // right0: new_man=2, skipped=0, old_man=1
		prefs.NewList(prefs.Tier{0}),                               // right1: filler
		prefs.NewList(prefs.Tier{0}),                               // right2: filler
		prefs.NewList(prefs.Tier{1}, prefs.Tier{0}),                // right3
		prefs.NewList(prefs.Tier{1}, prefs.Tier{2}),                // right4
		prefs.NewList(prefs.Tier{0}, prefs.Tier{1}),                // right5
	}

	rotations := []rotation.Rotation{
		{ // rotation 0: shifts right0 from left1 to left2, skipping left0
			Pairs:       []rotation.Pair{{Left: 1, Right: 0}, {Left: 2, Right: 4}},
			CycleStarts: []int{0},
		},
		{ // rotation 1: places a Type-1 label on left0's list at right3
			Pairs:       []rotation.Pair{{Left: 0, Right: 3}, {Left: 1, Right: 5}},
			CycleStarts: []int{0},
		},
	}

	dag := poset.Build(rotations, leftGS, rightGS)
	require.True(t, hasEdge(dag.Edges(), 0, 1), "rotation 0 must precede rotation 1; edges = %+v", dag.Edges())
	require.False(t, hasEdge(dag.Edges(), 1, 0), "must not contain the reverse edge; edges = %+v", dag.Edges())
}

// TestBuild_IndependentRotations_NoEdges exercises the full pipeline on
// spec.md's scenario 6 (two disjoint copies of the classic swap): the two
// rotations are independent, so the poset has no edges.
func TestBuild_IndependentRotations_NoEdges(t *testing.T) {
	left := []*prefs.List{
		prefs.NewList(prefs.Tier{0}, prefs.Tier{1}),
		prefs.NewList(prefs.Tier{1}, prefs.Tier{0}),
		prefs.NewList(prefs.Tier{2}, prefs.Tier{3}),
		prefs.NewList(prefs.Tier{3}, prefs.Tier{2}),
	}
	right := []*prefs.List{
		prefs.NewList(prefs.Tier{1}, prefs.Tier{0}),
		prefs.NewList(prefs.Tier{0}, prefs.Tier{1}),
		prefs.NewList(prefs.Tier{3}, prefs.Tier{2}),
		prefs.NewList(prefs.Tier{2}, prefs.Tier{3}),
	}

	ext := extreme.Compute(left, right)
	require.True(t, ext.Feasible)
	rotations := rotation.FindRotations(ext.LeftGS, ext.RightGS, ext.LeftOptimal, ext.RightOptimal)
	require.Len(t, rotations, 2)

	dag := poset.Build(rotations, ext.LeftGS, ext.RightGS)
	require.Empty(t, dag.Edges())
}

func TestDAG_Ancestors(t *testing.T) {
	leftGS := []*prefs.List{
		prefs.NewList(prefs.Tier{0}, prefs.Tier{1}),
		prefs.NewList(prefs.Tier{1}, prefs.Tier{0}),
	}
	rightGS := []*prefs.List{
		prefs.NewList(prefs.Tier{0}),
		prefs.NewList(prefs.Tier{0}),
	}
	rotations := []rotation.Rotation{
		{Pairs: []rotation.Pair{{Left: 0, Right: 0}, {Left: 1, Right: 1}}, CycleStarts: []int{0}},
		{Pairs: []rotation.Pair{{Left: 0, Right: 1}, {Left: 1, Right: 0}}, CycleStarts: []int{0}},
	}
	dag := poset.Build(rotations, leftGS, rightGS)

	require.Equal(t, map[int]bool{0: true, 1: true}, dag.Ancestors(1))
	require.Equal(t, map[int]bool{0: true}, dag.Ancestors(0))
}
