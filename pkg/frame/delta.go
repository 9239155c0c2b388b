package frame

import "github.com/therealutkarshpriyadarshi/pointmesh/pkg/point"

// Delta computes, for every ordinal position k, the positional and color
// difference between output[k] and snapshot[k] — not between output[k]
// and whatever reference point it was matched to (spec.md §4.F, §9). The
// results are appended to f's own delta fields, where f is the frame that
// owns this correspondence run (normally the current frame).
//
// An empty output (the empty-current-frame case, spec.md §4.D) is never a
// mismatch: Delta sets both sequences to empty and returns nil regardless
// of the reference snapshot's length, since there is nothing to compare.
// Otherwise output and snapshot must have equal length; any other
// combination is a caller error and returns ErrLengthMismatch without
// touching f (spec.md §4.F — see DESIGN.md for why the empty case is
// carved out separately from the general length check).
func (f *Frame) Delta(output *Frame, snapshot []point.Point) error {
	if len(output.Points) == 0 {
		f.DeltaPos = []point.Coord{}
		f.DeltaColor = []point.Coord{}
		return nil
	}
	if len(output.Points) != len(snapshot) {
		return ErrLengthMismatch
	}

	n := len(snapshot)
	deltaPos := make([]point.Coord, n)
	deltaColor := make([]point.Coord, n)

	for k := 0; k < n; k++ {
		deltaPos[k] = output.Points[k].Coord.Sub(snapshot[k].Coord)
		deltaColor[k] = output.Points[k].Color.Delta(snapshot[k].Color)
	}

	f.DeltaPos = deltaPos
	f.DeltaColor = deltaColor
	return nil
}
