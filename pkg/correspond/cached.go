package correspond

import (
	"github.com/therealutkarshpriyadarshi/pointmesh/pkg/frame"
	"github.com/therealutkarshpriyadarshi/pointmesh/pkg/kdtree"
	"github.com/therealutkarshpriyadarshi/pointmesh/pkg/observability"
	"github.com/therealutkarshpriyadarshi/pointmesh/pkg/point"
	"github.com/therealutkarshpriyadarshi/pointmesh/pkg/querycache"
)

// RunCached behaves exactly like Run, except that Policy 1 (Nearest)
// queries are served from cache when a current point falls in a grid cell
// this cache has already answered for the same reference tree. This is
// useful when a caller drives many successive current frames against one
// long-lived reference rig (spec.md §5): geometry rarely repeats exactly,
// but streaming captures frequently revisit the same few grid cells.
//
// The cache stores the tree's own static result (keyed on quantized query
// coordinate), never the live snapshot point, so a hit is always resolved
// back through the caller's snapshot before its mapping counter is bumped
// — cached entries never go stale with respect to mapping bookkeeping,
// only with respect to geometry, which does not change within one Run
// since the tree is rebuilt fresh from reference.Points every call.
//
// Ratio-policy queries are never cached: a candidate's cost depends on its
// live mapping count, which a cache keyed purely on geometry cannot track
// across the K candidates it would need to invalidate per hit.
func RunCached(cfg Config, reference, current *frame.Frame, cache *querycache.NearestCache, metrics *observability.Metrics) (Result, error) {
	tree := kdtree.Build(reference.Points)
	snapshot := frame.Snapshot(reference)

	output, err := correspondCached(cfg, tree, snapshot, current, cache, metrics)
	if err != nil {
		return Result{}, err
	}

	if err := current.Delta(output, snapshot); err != nil {
		return Result{}, err
	}

	report := frame.Mark(snapshot)
	return Result{Output: output, Snapshot: snapshot, Report: report}, nil
}

func correspondCached(cfg Config, tree *kdtree.Index, snapshot []point.Point, current *frame.Frame, cache *querycache.NearestCache, metrics *observability.Metrics) (*frame.Frame, error) {
	if len(snapshot) == 0 {
		return nil, frame.ErrEmptyReference
	}

	out := make([]point.Point, current.Len())
	for i, p := range current.Points {
		var c point.Point
		if cfg.Policy == Ratio {
			c = pickRatio(cfg, tree, snapshot, p)
		} else {
			c = pickNearestCached(tree, snapshot, p, cache, metrics)
		}
		out[i] = p.Average(c)
		out[i].Index = uint32(i)
	}

	return frame.New(out), nil
}

func pickNearestCached(tree *kdtree.Index, snapshot []point.Point, p point.Point, cache *querycache.NearestCache, metrics *observability.Metrics) point.Point {
	key := querycache.QueryKey(p.Coord, 1)

	if hit, ok := cache.GetNearest(key); ok {
		if metrics != nil {
			metrics.RecordCacheHit()
		}
		snapshot[hit.Index].Mapping++
		return snapshot[hit.Index]
	}

	if metrics != nil {
		metrics.RecordCacheMiss()
	}

	c, err := tree.Nearest(p.Coord)
	if err != nil {
		panic("correspond: nearest query against an empty index")
	}
	cache.PutNearest(key, c)

	snapshot[c.Index].Mapping++
	return snapshot[c.Index]
}
