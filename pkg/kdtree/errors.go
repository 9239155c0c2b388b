package kdtree

import "errors"

// Sentinel errors returned by the spatial index. Callers that need to
// distinguish error kinds (spec.md §7) should compare against these with
// errors.Is rather than matching on message text.
var (
	// ErrEmptyTree indicates a query was issued against a tree built over
	// zero points. This is spec.md error kind 1 (EmptyReference) as seen
	// from the spatial index's side of the boundary.
	ErrEmptyTree = errors.New("kdtree: tree is empty")

	// ErrOutOfRangeAxis indicates an internal request for axis k >= 3.
	// This must never happen in practice; its presence here is a
	// programmer-error guard, not a condition callers should expect to
	// handle (spec.md §7 error kind 3).
	ErrOutOfRangeAxis = errors.New("kdtree: axis out of range")
)
