package correspond

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/therealutkarshpriyadarshi/pointmesh/pkg/frame"
	"github.com/therealutkarshpriyadarshi/pointmesh/pkg/framestore"
	"github.com/therealutkarshpriyadarshi/pointmesh/pkg/observability"
	"github.com/therealutkarshpriyadarshi/pointmesh/pkg/point"
	"github.com/therealutkarshpriyadarshi/pointmesh/pkg/querycache"
)

func TestRunCachedMatchesRunUncached(t *testing.T) {
	reference := frame.New([]point.Point{
		mkPoint(0, 0, 0, 255, 0),
		mkPoint(10, 10, 10, 0, 1),
	})
	current := frame.New([]point.Point{
		mkPoint(1, 1, 1, 255, 0),
		mkPoint(1, 1, 1, 255, 1), // repeats the first query exactly: should hit cache.
	})

	cache := querycache.NewNearestCache(16, 0)
	metrics := observability.NewMetrics(prometheus.NewRegistry())

	cached, err := RunCached(DefaultConfig(), reference, current, cache, metrics)
	if err != nil {
		t.Fatalf("RunCached: %v", err)
	}

	plain, err := Run(DefaultConfig(), reference, current)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	for i := range plain.Output.Points {
		if plain.Output.Points[i].Coord != cached.Output.Points[i].Coord {
			t.Errorf("output[%d] coord differs: cached=%+v plain=%+v",
				i, cached.Output.Points[i].Coord, plain.Output.Points[i].Coord)
		}
	}
	if cache.Stats().Hits == 0 {
		t.Error("expected the repeated query to register a cache hit")
	}
}

func TestRunCachedRespectsTTLExpiry(t *testing.T) {
	reference := frame.New([]point.Point{mkPoint(0, 0, 0, 1, 0)})
	current := frame.New([]point.Point{mkPoint(0, 0, 0, 1, 0)})

	cache := querycache.NewNearestCache(16, time.Millisecond)
	metrics := observability.NewMetrics(prometheus.NewRegistry())

	if _, err := RunCached(DefaultConfig(), reference, current, cache, metrics); err != nil {
		t.Fatalf("RunCached: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, err := RunCached(DefaultConfig(), reference, current, cache, metrics); err != nil {
		t.Fatalf("RunCached (after expiry): %v", err)
	}
	if cache.Stats().Misses < 2 {
		t.Errorf("Stats().Misses = %d, want at least 2 (both queries should have missed)", cache.Stats().Misses)
	}
}

// TestRunCachedViaFramestore exercises the framestore registry as
// the source of the reference frame passed into RunCached, the combination
// a long-running correspondence service would actually use: a named rig
// registered once, then queried repeatedly against many current frames.
func TestRunCachedViaFramestore(t *testing.T) {
	manager := framestore.NewManager()
	entry, err := manager.Register("rig-a", frame.New([]point.Point{
		mkPoint(0, 0, 0, 1, 0),
		mkPoint(5, 5, 5, 1, 1),
	}), framestore.DefaultQuota())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	current := frame.New([]point.Point{mkPoint(0.1, 0, 0, 1, 0)})
	cache := querycache.NewNearestCache(16, 0)
	metrics := observability.NewMetrics(prometheus.NewRegistry())

	res, err := RunCached(DefaultConfig(), entry.Frame, current, cache, metrics)
	if err != nil {
		t.Fatalf("RunCached against framestore entry: %v", err)
	}
	if res.Output.Len() != 1 {
		t.Errorf("Output.Len() = %d, want 1", res.Output.Len())
	}
}
