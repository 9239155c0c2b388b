package frame

import "errors"

// Sentinel errors for frame-level operations (spec.md §7).
var (
	// ErrEmptyReference indicates correspondence was requested against a
	// reference frame of size zero. Spec.md error kind 1.
	ErrEmptyReference = errors.New("frame: reference frame is empty")

	// ErrLengthMismatch indicates a delta was requested between an output
	// frame and a reference snapshot of different lengths. Spec.md error
	// kind 2.
	ErrLengthMismatch = errors.New("frame: output and reference lengths differ")

	// ErrUnexpectedAttribute is raised by a loader adapter (spec.md §6)
	// when it encounters a field it does not know how to map onto Point.
	// It is fatal: the core never recovers from it, it only surfaces it.
	// Spec.md error kind 4.
	ErrUnexpectedAttribute = errors.New("frame: unexpected point attribute")
)
