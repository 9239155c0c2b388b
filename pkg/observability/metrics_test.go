package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// TestMetrics exercises every metric through one shared Metrics instance,
// matching the teacher's own TestMetrics: a single NewMetrics call backed
// by a private registry, with one subtest per concern, so the package's
// test binary never registers the same metric name twice against the
// same registry (promauto panics on that).
func TestMetrics(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	t.Run("NewMetrics", func(t *testing.T) {
		if m.RunsTotal == nil || m.RunDuration == nil || m.RunErrors == nil {
			t.Error("run metrics not initialized")
		}
		if m.PointsMatched == nil || m.MappingCoverage == nil {
			t.Error("match/coverage metrics not initialized")
		}
		if m.TreeBuildDuration == nil || m.TreeSize == nil {
			t.Error("tree metrics not initialized")
		}
		if m.CacheHits == nil || m.CacheMisses == nil || m.CacheSize == nil {
			t.Error("cache metrics not initialized")
		}
		if m.FramesStored == nil || m.FrameStoreRejected == nil {
			t.Error("frame store metrics not initialized")
		}
	})

	t.Run("RecordRun", func(t *testing.T) {
		m.RecordRun("nearest", "success", 10*time.Millisecond)
		m.RecordRun("ratio", "error", 25*time.Millisecond)
		m.RecordRunError("empty_reference")
	})

	t.Run("RecordMatchAndCoverage", func(t *testing.T) {
		m.RecordMatch(42)
		m.UpdateMappingCoverage(7, 10)
		m.UpdateMappingCoverage(0, 0) // must not divide by zero
	})

	t.Run("RecordTreeBuild", func(t *testing.T) {
		m.RecordTreeBuild(2*time.Millisecond, 1000)
	})

	t.Run("CacheMetrics", func(t *testing.T) {
		m.RecordCacheHit()
		m.RecordCacheMiss()
		m.UpdateCacheSize(5)
	})

	t.Run("FrameStoreMetrics", func(t *testing.T) {
		m.UpdateFramesStored(3)
		m.RecordFrameStoreRejection("quota_exceeded")
	})
}

// TestNewMetricsDistinctRegistries confirms a second Metrics instance
// against its own registry never collides with the first — the pattern
// every other caller of NewMetrics in this module (correspond.RunCached,
// correspond.RunInstrumented's tests) relies on.
func TestNewMetricsDistinctRegistries(t *testing.T) {
	NewMetrics(prometheus.NewRegistry())
	NewMetrics(prometheus.NewRegistry())
}
