package kdtree

import (
	"container/heap"

	"github.com/therealutkarshpriyadarshi/pointmesh/pkg/point"
)

// Nearest returns the exact nearest point to q by Euclidean distance on
// (x, y, z), breaking ties by lower index (spec.md §4.B). It fails only
// when the tree is empty.
func (idx *Index) Nearest(q point.Coord) (point.Point, error) {
	idx.mu.RLock()
	root := idx.root
	idx.mu.RUnlock()

	if root == nil {
		return point.Point{}, ErrEmptyTree
	}

	best := root.point
	bestDist := q.DistSq(root.point.Coord)
	searchNearest(root, q, &best, &bestDist)
	return best, nil
}

// searchNearest walks n's subtree, updating best/bestDist whenever a
// closer (or equally close but lower-index) point is found, and prunes
// any subtree whose splitting hyperplane is already farther than the
// current best.
func searchNearest(n *node, q point.Coord, best *point.Point, bestDist *float64) {
	if n == nil {
		return
	}

	d := q.DistSq(n.point.Coord)
	if d < *bestDist || (d == *bestDist && n.point.Index < best.Index) {
		*best = n.point
		*bestDist = d
	}

	qAxis := mustAxisValue(q, n.axis)
	nAxis := mustAxisValue(n.point.Coord, n.axis)

	near, far := n.left, n.right
	if qAxis > nAxis {
		near, far = n.right, n.left
	}

	searchNearest(near, q, best, bestDist)

	// Only descend into the far side if its hyperplane could hold a
	// closer point than what we already have.
	planeDist := float64(qAxis - nAxis)
	if planeDist*planeDist < *bestDist {
		searchNearest(far, q, best, bestDist)
	}
}

// candidate pairs a point with its squared distance from the query, used
// by the bounded max-heap that collects k-nearest results.
type candidate struct {
	p      point.Point
	distSq float64
}

// candidateHeap is a max-heap of candidate ordered by descending distance
// (so the farthest of the current top-k sits at the root and can be
// evicted in O(log k) when a closer point is found). Ties broken by
// higher index at the root, so that among equal distances the lower
// index survives — matching Nearest's tie-break rule.
type candidateHeap []candidate

func (h candidateHeap) Len() int { return len(h) }
func (h candidateHeap) Less(i, j int) bool {
	if h[i].distSq != h[j].distSq {
		return h[i].distSq > h[j].distSq
	}
	return h[i].p.Index > h[j].p.Index
}
func (h candidateHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *candidateHeap) Push(x interface{}) {
	*h = append(*h, x.(candidate))
}
func (h *candidateHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// KNearest returns the k exact nearest points to q in ascending-distance
// order. If fewer than k points exist in the tree, it returns all of them.
// It fails only when the tree is empty, whatever k is; on a non-empty tree
// a k <= 0 returns an empty result.
func (idx *Index) KNearest(q point.Coord, k int) ([]point.Point, error) {
	idx.mu.RLock()
	root := idx.root
	idx.mu.RUnlock()

	if root == nil {
		return nil, ErrEmptyTree
	}
	if k <= 0 {
		return nil, nil
	}

	h := &candidateHeap{}
	heap.Init(h)
	searchKNearest(root, q, k, h)

	out := make([]point.Point, h.Len())
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(h).(candidate).p
	}
	return out, nil
}

// searchKNearest walks n's subtree, maintaining h as the k closest points
// seen so far (a bounded max-heap), pruning subtrees whose hyperplane is
// already farther than the current k-th best once h is full.
func searchKNearest(n *node, q point.Coord, k int, h *candidateHeap) {
	if n == nil {
		return
	}

	d := q.DistSq(n.point.Coord)
	cand := candidate{p: n.point, distSq: d}

	if h.Len() < k {
		heap.Push(h, cand)
	} else if d < (*h)[0].distSq || (d == (*h)[0].distSq && n.point.Index < (*h)[0].p.Index) {
		heap.Pop(h)
		heap.Push(h, cand)
	}

	qAxis := mustAxisValue(q, n.axis)
	nAxis := mustAxisValue(n.point.Coord, n.axis)

	near, far := n.left, n.right
	if qAxis > nAxis {
		near, far = n.right, n.left
	}

	searchKNearest(near, q, k, h)

	planeDist := float64(qAxis - nAxis)
	if h.Len() < k || planeDist*planeDist < (*h)[0].distSq {
		searchKNearest(far, q, k, h)
	}
}
