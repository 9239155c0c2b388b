// Package kdtree implements a static 3-D k-d tree over a frame's points
// (spec.md §4.B). The tree is read-only once built: nearest-neighbor
// queries never mutate it, so a single Index may be shared read-only
// across goroutines and across correspondence operations run against the
// same reference frame (spec.md §5).
//
// The package shape — a thread-safe Index wrapping an immutable
// structure, built once via Build, queried through
// small typed methods — follows the teacher's pkg/hnsw.Index; the split
// algorithm itself (median-of-widest-axis, exact nearest/k-nearest) is new,
// since spec.md calls for an exact index rather than an approximate graph.
package kdtree

import (
	"sync"

	"github.com/therealutkarshpriyadarshi/pointmesh/pkg/point"
)

// Index is a static 3-D k-d tree built once over a sequence of points.
type Index struct {
	mu   sync.RWMutex // guards nothing but root/size today; kept for the
	root *node        // same reason the teacher guards its read path: so a
	size int          // future mutable extension doesn't silently drop it.
}

// Build constructs a k-d tree over pts. pts is copied before partitioning,
// so the caller's slice (and its ordering) is left untouched — this
// matters because the reference frame's own slice must keep its original
// insertion order for index bookkeeping elsewhere.
func Build(pts []point.Point) *Index {
	cp := make([]point.Point, len(pts))
	copy(cp, pts)

	return &Index{
		root: buildNode(cp),
		size: len(cp),
	}
}

// Len returns the number of points the tree was built over.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.size
}

// Empty reports whether the tree holds no points.
func (idx *Index) Empty() bool {
	return idx.Len() == 0
}
