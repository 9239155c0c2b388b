package kdtree

import (
	"sort"

	"github.com/therealutkarshpriyadarshi/pointmesh/pkg/point"
)

// node is one split of the k-d tree. axis is the coordinate axis (0=x,
// 1=y, 2=z) this node partitions on; left holds points whose value on
// axis is <= the node's own value, right holds the rest.
type node struct {
	point       point.Point
	axis        int
	left, right *node
}

// axisValue returns c's coordinate along axis k (0=x, 1=y, 2=z),
// translating the package's internal panic-on-bad-axis convention
// (point.Coord.At) into the sentinel error spec.md §7 requires for this
// condition (error kind 3, OutOfRangeAxis). Every access to a *stored*
// axis — node.axis, propagated from widestAxis into sortByAxis and the
// search walk in search.go — routes through this or mustAxisValue rather
// than calling Coord.At directly, so a corrupted axis surfaces as this
// package's own sentinel instead of point's generic panic message.
func axisValue(c point.Coord, k int) (float32, error) {
	if k < 0 || k > 2 {
		return 0, ErrOutOfRangeAxis
	}
	return c.At(k), nil
}

// mustAxisValue is axisValue for call sites with no error return to
// propagate through (sort.Slice's Less, the recursive search walk). An
// out-of-range axis here means a node's own axis field was corrupted —
// spec.md §7 calls this a programmer error that must halt, never recover
// from, so this panics with ErrOutOfRangeAxis rather than returning it.
func mustAxisValue(c point.Coord, k int) float32 {
	v, err := axisValue(c, k)
	if err != nil {
		panic(err)
	}
	return v
}

// buildNode recursively partitions pts into a balanced k-d subtree. At each
// level it splits on the axis of greatest coordinate spread among the
// current subset (spec.md §4.B), sorts by that axis, and recurses on the
// two halves around the median. pts is consumed (sorted in place) by this
// call; callers pass a private slice.
func buildNode(pts []point.Point) *node {
	if len(pts) == 0 {
		return nil
	}

	axis := widestAxis(pts)
	sortByAxis(pts, axis)

	mid := len(pts) / 2
	n := &node{point: pts[mid], axis: axis}
	n.left = buildNode(pts[:mid])
	n.right = buildNode(pts[mid+1:])
	return n
}

// widestAxis returns the coordinate axis (0, 1, or 2) with the greatest
// min-max spread across pts.
func widestAxis(pts []point.Point) int {
	var minV, maxV [3]float32
	for i := 0; i < 3; i++ {
		minV[i] = pts[0].Coord.At(i)
		maxV[i] = pts[0].Coord.At(i)
	}
	for _, p := range pts[1:] {
		for i := 0; i < 3; i++ {
			v := p.Coord.At(i)
			if v < minV[i] {
				minV[i] = v
			}
			if v > maxV[i] {
				maxV[i] = v
			}
		}
	}

	best, bestSpread := 0, maxV[0]-minV[0]
	for i := 1; i < 3; i++ {
		spread := maxV[i] - minV[i]
		if spread > bestSpread {
			best, bestSpread = i, spread
		}
	}
	return best
}

// sortByAxis sorts pts in place by their coordinate on the given axis,
// breaking ties by index for a deterministic, reproducible tree shape
// (spec.md §8 S6: two runs over identical input must agree).
func sortByAxis(pts []point.Point, axis int) {
	sort.Slice(pts, func(i, j int) bool {
		av, bv := mustAxisValue(pts[i].Coord, axis), mustAxisValue(pts[j].Coord, axis)
		if av != bv {
			return av < bv
		}
		return pts[i].Index < pts[j].Index
	})
}
