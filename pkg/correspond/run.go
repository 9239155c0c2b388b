package correspond

import (
	"github.com/therealutkarshpriyadarshi/pointmesh/pkg/frame"
	"github.com/therealutkarshpriyadarshi/pointmesh/pkg/kdtree"
	"github.com/therealutkarshpriyadarshi/pointmesh/pkg/point"
)

// Result bundles everything one Run produces: the averaged output frame,
// the reference snapshot as left by the chosen policy and the marker, and
// the marker's coverage report. The delta sequences are not part of
// Result: Run writes them onto the current frame's own delta fields.
type Result struct {
	Output   *frame.Frame
	Snapshot []point.Point
	Report   frame.Report
}

// Run chains correspondence, delta, and marking in the source's own order
// — Correspond, then Delta, then Mark — mirroring
// Points::average_points_recovery /
// Points::closest_with_ratio_average_points_recovery, which perform all
// three as one method (see SPEC_FULL.md §C). It is the entry point a
// caller driving one frame-to-frame update would actually use; the three
// stages remain separately callable for callers that need to interleave
// other work between them.
func Run(cfg Config, reference *frame.Frame, current *frame.Frame) (Result, error) {
	tree := kdtree.Build(reference.Points)
	snapshot := frame.Snapshot(reference)

	output, err := Correspond(cfg, tree, snapshot, current)
	if err != nil {
		return Result{}, err
	}

	if err := current.Delta(output, snapshot); err != nil {
		return Result{}, err
	}

	report := frame.Mark(snapshot)

	return Result{Output: output, Snapshot: snapshot, Report: report}, nil
}
