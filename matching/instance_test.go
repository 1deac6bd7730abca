package matching_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qhughes22/superstable/matching"
)

// raw builds one agent's nested-tier preference list from the wire shape
// matching.Build expects: a sequence of tiers, each tier a set of agent ids.
func raw(tiers ...[]int) [][]int {
	return tiers
}

func TestBuild_PanicsOnMalformedInput(t *testing.T) {
	left := [][][]int{raw([]int{5})}
	right := [][][]int{raw([]int{0})}
	require.Panics(t, func() { matching.Build(left, right) })
}

func TestBuild_PanicsOnEmptyTier(t *testing.T) {
	left := [][][]int{{{}}}
	right := [][][]int{raw([]int{0})}
	require.Panics(t, func() { matching.Build(left, right) })
}

func TestBuild_PanicsOnDuplicateInTier(t *testing.T) {
	left := [][][]int{raw([]int{0, 0})}
	right := [][][]int{raw([]int{0})}
	require.Panics(t, func() { matching.Build(left, right) })
}

func TestInstance_InfeasibleAccessorsReturnZeroValues(t *testing.T) {
	// Scenario 4's asymmetric tie case: both L-agents indifferent between
	// the same two R-agents, both of whom strictly prefer one L-agent.
	left := [][][]int{
		raw([]int{0, 1}),
		raw([]int{0, 1}),
	}
	right := [][][]int{
		raw([]int{0}, []int{1}),
		raw([]int{0}, []int{1}),
	}

	in := matching.Build(left, right)
	require.False(t, in.Feasible())
	require.Nil(t, in.LeftOptimal())
	require.Nil(t, in.RightOptimal())
	require.Nil(t, in.Rotations())
	require.Nil(t, in.RotationPoset())
	require.Nil(t, in.AllMatchings())
	require.Equal(t, 0, in.CountMatchings())
}

// TestInstance_LazyAccessorsMemoize calls each lazy accessor twice and
// checks the second call returns the identical slice/pointer rather than
// recomputing — the classic swap instance (one rotation) is small enough
// that a bug here wouldn't be caught by a value-equality check alone.
func TestInstance_LazyAccessorsMemoize(t *testing.T) {
	left := [][][]int{
		raw([]int{0}, []int{1}),
		raw([]int{1}, []int{0}),
	}
	right := [][][]int{
		raw([]int{1}, []int{0}),
		raw([]int{0}, []int{1}),
	}
	in := matching.Build(left, right)

	r1 := in.Rotations()
	r2 := in.Rotations()
	require.Same(t, &r1[0], &r2[0], "Rotations must memoize, not recompute")

	d1 := in.RotationPoset()
	d2 := in.RotationPoset()
	require.Same(t, d1, d2, "RotationPoset must memoize, not recompute")

	m1 := in.AllMatchings()
	m2 := in.AllMatchings()
	require.Same(t, &m1[0], &m2[0], "AllMatchings must memoize, not recompute")
}

func TestWithTrace_WritesOneLinePerStage(t *testing.T) {
	left := [][][]int{
		raw([]int{0}, []int{1}),
		raw([]int{1}, []int{0}),
	}
	right := [][][]int{
		raw([]int{1}, []int{0}),
		raw([]int{0}, []int{1}),
	}

	var buf bytes.Buffer
	in := matching.Build(left, right, matching.WithTrace(&buf))
	in.Rotations()
	in.RotationPoset()
	in.AllMatchings()

	out := buf.String()
	require.Contains(t, out, "build: feasible=true")
	require.Contains(t, out, "rotations: found 1")
	require.Contains(t, out, "rotation poset: 0 edges")
	require.Contains(t, out, "all matchings: 2")
	require.Equal(t, 4, strings.Count(out, "\n"))
}

func TestBlockingStatus_DeterministicAcrossCalls(t *testing.T) {
	left := [][][]int{
		raw([]int{0}, []int{1}),
		raw([]int{1}, []int{0}),
	}
	right := [][][]int{
		raw([]int{1}, []int{0}),
		raw([]int{0}, []int{1}),
	}
	in := matching.Build(left, right)
	m := in.LeftOptimal()

	first := in.BlockingStatus(m, 0, 1)
	second := in.BlockingStatus(m, 0, 1)
	require.Equal(t, first, second)
}
