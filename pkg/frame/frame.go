// Package frame defines the ordered point sequence that flows through the
// correspondence pipeline (spec.md §3), plus the two remaining pipeline
// stages that operate on a whole frame rather than a single point: the
// frame-delta producer (§4.F) and the mapping marker (§4.G).
package frame

import "github.com/therealutkarshpriyadarshi/pointmesh/pkg/point"

// Frame is an ordered sequence of points, plus the two parallel delta
// sequences a delta operation appends once it has run (spec.md §3).
// A Frame owns its Points exclusively; a reference snapshot used during
// correspondence is a separate, independently-owned []point.Point (see
// Snapshot) rather than a field of Frame, so that one Frame can be used
// as a reference by many independent correspondence calls each with their
// own snapshot (spec.md §5).
type Frame struct {
	Points     []point.Point
	DeltaPos   []point.Coord
	DeltaColor []point.Coord
}

// New builds a Frame from points in arrival order, assigning each point's
// Index to its position (spec.md invariant 1: point[i].index == i). The
// input slice is copied; the caller's slice is left untouched.
func New(points []point.Point) *Frame {
	pts := make([]point.Point, len(points))
	for i, p := range points {
		p.Index = uint32(i)
		pts[i] = p
	}
	return &Frame{Points: pts}
}

// Len returns the number of points in the frame.
func (f *Frame) Len() int {
	return len(f.Points)
}

// Snapshot takes an independent, mutable copy of a reference frame's
// points, suitable for passing into a correspondence operation. Each
// correspondence call should take its own Snapshot of a shared reference
// Frame; the snapshot's mapping counters are mutated by correspondence,
// the source Frame's points never are (spec.md §5).
func Snapshot(reference *Frame) []point.Point {
	snap := make([]point.Point, len(reference.Points))
	copy(snap, reference.Points)
	return snap
}

// Loader is the contract an external point source (e.g. a file reader)
// must satisfy to hand points to this package without the core needing to
// know the wire format (spec.md §6). SetProperty is called once per
// recognized field; an adapter that encounters a field it cannot map to
// Point must return ErrUnexpectedAttribute rather than silently dropping
// it (spec.md §7 error kind 4).
type Loader interface {
	// SetProperty assigns a single named field (e.g. "x", "red") onto the
	// point under construction. It returns ErrUnexpectedAttribute for any
	// key it does not recognize.
	SetProperty(p *point.Point, key string, value float64) error
}
