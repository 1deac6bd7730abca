package matching

import (
	"fmt"
	"io"

	"github.com/qhughes22/superstable/enumerate"
	"github.com/qhughes22/superstable/extreme"
	"github.com/qhughes22/superstable/poset"
	"github.com/qhughes22/superstable/prefs"
	"github.com/qhughes22/superstable/rotation"
	"github.com/qhughes22/superstable/stability"
)

// Matching is an L-indexed array of partners; prefs.Unmatched (-1) marks
// an unmatched L-agent.
type Matching []int

// Option configures an Instance at construction time.
type Option func(*Instance)

// WithTrace directs Build and the lazy accessors to write one summary
// line per stage to w as it completes. This mirrors the teacher's bare
// fmt.Fprintf verbose gate (there is no I/O in this core to structure a
// report around, so a structured logger would have nothing to log about
// beyond these same lines).
func WithTrace(w io.Writer) Option {
	return func(in *Instance) { in.trace = w }
}

// Instance is a built matching-market instance. The extreme matchings are
// computed eagerly at Build time; rotations, the rotation poset, and the
// full matching set are computed lazily on first use and memoized.
type Instance struct {
	leftPrefs, rightPrefs []*prefs.List
	ext                   extreme.Extremes
	trace                 io.Writer

	rotations     []rotation.Rotation
	rotationsDone bool

	dag     *poset.DAG
	dagDone bool

	matchings     []Matching
	matchingsDone bool
}

// Build converts leftPrefs/rightPrefs from the wire shape spec.md §6 names
// ("preferences are provided as nested ordered collections of integer
// agent ids") into preference lists and runs GS reduction (spec.md
// §4.1-4.3). Panics if any list references an out-of-range, duplicate, or
// empty tier — malformed input is a programmer error, not a recoverable
// condition (spec.md §7).
func Build(leftPrefs, rightPrefs [][][]int, opts ...Option) *Instance {
	in := &Instance{
		leftPrefs:  prefs.BuildProfile(prefs.Left, leftPrefs, len(rightPrefs)),
		rightPrefs: prefs.BuildProfile(prefs.Right, rightPrefs, len(leftPrefs)),
	}
	for _, opt := range opts {
		opt(in)
	}

	in.ext = extreme.Compute(in.leftPrefs, in.rightPrefs)
	if in.trace != nil {
		fmt.Fprintf(in.trace, "build: feasible=%v\n", in.ext.Feasible)
	}
	return in
}

// Feasible reports whether any super-stable matching exists.
func (in *Instance) Feasible() bool { return in.ext.Feasible }

// LeftOptimal returns the L-optimal super-stable matching, or nil if the
// instance is infeasible.
func (in *Instance) LeftOptimal() Matching {
	if !in.ext.Feasible {
		return nil
	}
	return append(Matching(nil), in.ext.LeftOptimal...)
}

// RightOptimal returns the R-optimal super-stable matching, or nil if the
// instance is infeasible.
func (in *Instance) RightOptimal() Matching {
	if !in.ext.Feasible {
		return nil
	}
	return append(Matching(nil), in.ext.RightOptimal...)
}

// Rotations lazily computes and memoizes the instance's rotation set
// (spec.md §6 `rotations`). Returns nil if the instance is infeasible.
func (in *Instance) Rotations() []rotation.Rotation {
	if !in.ext.Feasible {
		return nil
	}
	if !in.rotationsDone {
		in.rotations = rotation.FindRotations(in.ext.LeftGS, in.ext.RightGS, in.ext.LeftOptimal, in.ext.RightOptimal)
		in.rotationsDone = true
		if in.trace != nil {
			fmt.Fprintf(in.trace, "rotations: found %d\n", len(in.rotations))
		}
	}
	return in.rotations
}

// RotationPoset lazily computes and memoizes the rotation poset (spec.md
// §6 `rotation_poset`). Returns nil if the instance is infeasible.
func (in *Instance) RotationPoset() *poset.DAG {
	if !in.ext.Feasible {
		return nil
	}
	if !in.dagDone {
		in.dag = poset.Build(in.Rotations(), in.ext.LeftGS, in.ext.RightGS)
		in.dagDone = true
		if in.trace != nil {
			fmt.Fprintf(in.trace, "rotation poset: %d edges\n", len(in.dag.Edges()))
		}
	}
	return in.dag
}

// AllMatchings lazily computes and memoizes every super-stable matching
// (spec.md §6 `all_matchings`). Returns nil if the instance is infeasible.
func (in *Instance) AllMatchings() []Matching {
	if !in.ext.Feasible {
		return nil
	}
	if !in.matchingsDone {
		dag := in.RotationPoset()
		rotations := in.Rotations()
		antichains := enumerate.AllAntichains(dag)
		matchings := make([]Matching, len(antichains))
		for i, a := range antichains {
			matchings[i] = enumerate.ApplyAntichain(in.ext.LeftOptimal, rotations, dag, a)
		}
		in.matchings = matchings
		in.matchingsDone = true
		if in.trace != nil {
			fmt.Fprintf(in.trace, "all matchings: %d\n", len(in.matchings))
		}
	}
	return in.matchings
}

// CountMatchings returns the number of super-stable matchings without
// materializing them (spec.md §6 `count_matchings`).
func (in *Instance) CountMatchings() int {
	if !in.ext.Feasible {
		return 0
	}
	return enumerate.CountAntichains(in.RotationPoset())
}

// IsSuperStable reports whether m has no pair blocking at the super level
// (spec.md §4.4), evaluated against the instance's original preferences.
func (in *Instance) IsSuperStable(m Matching) bool {
	return stability.IsSuperStable(in.leftPrefs, in.rightPrefs, m)
}

// IsStronglyStable reports whether m has no pair blocking at the strong
// level or above.
func (in *Instance) IsStronglyStable(m Matching) bool {
	return stability.IsStronglyStable(in.leftPrefs, in.rightPrefs, m)
}

// IsWeaklyStable reports whether m has no pair blocking at the weak level.
func (in *Instance) IsWeaklyStable(m Matching) bool {
	return stability.IsWeaklyStable(in.leftPrefs, in.rightPrefs, m)
}

// BlockingStatus classifies the pair (l, r) against m (spec.md §6
// `blocking_status`).
func (in *Instance) BlockingStatus(m Matching, l, r int) stability.BlockingStatus {
	return stability.Status(in.leftPrefs, in.rightPrefs, m, prefs.Agent(l), prefs.Agent(r))
}
