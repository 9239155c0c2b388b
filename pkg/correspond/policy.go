package correspond

import (
	"math"

	"github.com/therealutkarshpriyadarshi/pointmesh/pkg/cost"
	"github.com/therealutkarshpriyadarshi/pointmesh/pkg/frame"
	"github.com/therealutkarshpriyadarshi/pointmesh/pkg/kdtree"
	"github.com/therealutkarshpriyadarshi/pointmesh/pkg/point"
)

// Correspond runs cfg.Policy over every point of current, against tree
// (built once over the reference frame's points) and snapshot (that same
// reference frame's mutable, per-call working copy — see frame.Snapshot).
// It returns a new output frame whose point at position k is the average
// of current.Points[k] and whichever reference point k was matched to
// (spec.md §4.E); snapshot's Mapping counters are updated in place as a
// side effect (spec.md §4.D).
//
// An empty reference (len(snapshot) == 0) is a usage error: it returns
// ErrEmptyReference and touches nothing else. An empty current frame is
// not an error; Correspond returns an empty output frame (spec.md §4.D,
// "Failure semantics").
//
// Iteration over current.Points runs in frame order and that order is
// observable: under Ratio, a point's mapping penalty depends on exactly
// which earlier current points already picked it (spec.md §5).
func Correspond(cfg Config, tree *kdtree.Index, snapshot []point.Point, current *frame.Frame) (*frame.Frame, error) {
	if len(snapshot) == 0 {
		return nil, frame.ErrEmptyReference
	}

	out := make([]point.Point, current.Len())
	for i, p := range current.Points {
		var c point.Point
		switch cfg.Policy {
		case Ratio:
			c = pickRatio(cfg, tree, snapshot, p)
		default:
			c = pickNearest(tree, snapshot, p)
		}
		out[i] = p.Average(c)
		out[i].Index = uint32(i)
	}

	return frame.New(out), nil
}

// pickNearest implements Policy 1 (spec.md §4.D, "Policy 1 — nearest-only
// recovery"): the exact nearest reference point, found via the index, with
// its mapping counter incremented exactly once per current point.
func pickNearest(tree *kdtree.Index, snapshot []point.Point, p point.Point) point.Point {
	c, err := tree.Nearest(p.Coord)
	if err != nil {
		// tree was built from the same points as snapshot, so an empty
		// tree here would mean the caller already violated the
		// len(snapshot) == 0 check in Correspond.
		panic("correspond: nearest query against an empty index")
	}
	snapshot[c.Index].Mapping++
	return snapshot[c.Index]
}

// pickRatio implements Policy 2 (spec.md §4.D, "Policy 2 — closest-with-
// ratio recovery"): scan the K nearest candidates in ascending distance
// order, tracking a running-best under cost.Evaluate (which folds in each
// candidate's live mapping count as a penalty). Every time a new candidate
// beats the running best, its mapping counter is bumped immediately — so a
// later candidate in the same scan sees that bump as part of its own
// penalty — and after the scan settles, the final winner's counter is
// bumped once more. This double counting (provisional bump on every new
// best, plus a final bump on the winner) is the source's own behavior and
// is preserved exactly (spec.md §4.D point 3, §9).
func pickRatio(cfg Config, tree *kdtree.Index, snapshot []point.Point, p point.Point) point.Point {
	cands, err := tree.KNearest(p.Coord, cfg.resolvedK())
	if err != nil {
		panic("correspond: k-nearest query against an empty index")
	}

	bestCost := math.MaxFloat64
	var best point.Point
	for _, c := range cands {
		live := snapshot[c.Index]
		curCost := cost.Evaluate(cfg.Weights, p, live, live.Mapping)
		if curCost < bestCost {
			bestCost = curCost
			best = live
			snapshot[c.Index].Mapping++
		}
	}
	snapshot[best.Index].Mapping++
	return snapshot[best.Index]
}
