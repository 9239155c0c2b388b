package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the correspondence engine and
// its supporting stores.
type Metrics struct {
	// Correspondence run metrics
	RunsTotal       *prometheus.CounterVec
	RunDuration     *prometheus.HistogramVec
	RunErrors       *prometheus.CounterVec
	PointsMatched   prometheus.Counter
	MappingCoverage prometheus.Gauge

	// K-d tree build/query metrics
	TreeBuildDuration prometheus.Histogram
	TreeSize          prometheus.Gauge

	// Cache metrics
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter
	CacheSize   prometheus.Gauge

	// Frame store metrics
	FramesStored       prometheus.Gauge
	FrameStoreRejected *prometheus.CounterVec
}

// NewMetrics creates and registers all Prometheus metrics against reg. A
// process wiring this module for real passes prometheus.DefaultRegisterer
// (the teacher's own choice); anything that constructs more than one
// Metrics in the same registry — notably this package's own tests, run
// as several Test* functions in one binary — must pass a fresh
// prometheus.NewRegistry() per call, since promauto panics on a second
// registration of the same metric name against the same registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pointmesh_runs_total",
				Help: "Total number of correspondence runs by policy and outcome",
			},
			[]string{"policy", "outcome"},
		),
		RunDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pointmesh_run_duration_seconds",
				Help:    "Correspondence run duration in seconds by policy",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"policy"},
		),
		RunErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pointmesh_run_errors_total",
				Help: "Total number of failed correspondence runs by error kind",
			},
			[]string{"error_kind"},
		),
		PointsMatched: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "pointmesh_points_matched_total",
				Help: "Total number of current points matched to a reference counterpart",
			},
		),
		MappingCoverage: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "pointmesh_mapping_coverage_ratio",
				Help: "Fraction of the last run's reference points that were mapped",
			},
		),
		TreeBuildDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "pointmesh_tree_build_duration_seconds",
				Help:    "k-d tree build duration in seconds",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
			},
		),
		TreeSize: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "pointmesh_tree_size",
				Help: "Number of points in the most recently built k-d tree",
			},
		),
		CacheHits: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "pointmesh_cache_hits_total",
				Help: "Total number of nearest-neighbor query cache hits",
			},
		),
		CacheMisses: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "pointmesh_cache_misses_total",
				Help: "Total number of nearest-neighbor query cache misses",
			},
		),
		CacheSize: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "pointmesh_cache_size",
				Help: "Current number of entries in the nearest-neighbor query cache",
			},
		),
		FramesStored: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "pointmesh_frames_stored",
				Help: "Current number of reference frames held by the frame store",
			},
		),
		FrameStoreRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pointmesh_frame_store_rejected_total",
				Help: "Total number of reference frames rejected by the store by reason",
			},
			[]string{"reason"},
		),
	}
}

// RecordRun records one correspondence run's policy, outcome, and duration.
func (m *Metrics) RecordRun(policy, outcome string, duration time.Duration) {
	m.RunsTotal.WithLabelValues(policy, outcome).Inc()
	m.RunDuration.WithLabelValues(policy).Observe(duration.Seconds())
}

// RecordRunError records a failed run by error kind.
func (m *Metrics) RecordRunError(errorKind string) {
	m.RunErrors.WithLabelValues(errorKind).Inc()
}

// RecordMatch records that n current points were matched in one run.
func (m *Metrics) RecordMatch(n int) {
	m.PointsMatched.Add(float64(n))
}

// UpdateMappingCoverage sets the last run's mapped/total ratio.
func (m *Metrics) UpdateMappingCoverage(mapped, total int) {
	if total == 0 {
		m.MappingCoverage.Set(0)
		return
	}
	m.MappingCoverage.Set(float64(mapped) / float64(total))
}

// RecordTreeBuild records a k-d tree build's duration and resulting size.
func (m *Metrics) RecordTreeBuild(duration time.Duration, size int) {
	m.TreeBuildDuration.Observe(duration.Seconds())
	m.TreeSize.Set(float64(size))
}

// RecordCacheHit records a cache hit.
func (m *Metrics) RecordCacheHit() {
	m.CacheHits.Inc()
}

// RecordCacheMiss records a cache miss.
func (m *Metrics) RecordCacheMiss() {
	m.CacheMisses.Inc()
}

// UpdateCacheSize sets the current cache size.
func (m *Metrics) UpdateCacheSize(size int) {
	m.CacheSize.Set(float64(size))
}

// UpdateFramesStored sets the current number of stored reference frames.
func (m *Metrics) UpdateFramesStored(count int) {
	m.FramesStored.Set(float64(count))
}

// RecordFrameStoreRejection records a reference frame rejected by the
// store (e.g. over quota) by reason.
func (m *Metrics) RecordFrameStoreRejection(reason string) {
	m.FrameStoreRejected.WithLabelValues(reason).Inc()
}
