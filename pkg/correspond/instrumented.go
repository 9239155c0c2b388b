package correspond

import (
	"errors"
	"time"

	"github.com/therealutkarshpriyadarshi/pointmesh/pkg/frame"
	"github.com/therealutkarshpriyadarshi/pointmesh/pkg/observability"
)

func policyName(p Policy) string {
	if p == Ratio {
		return "ratio"
	}
	return "nearest"
}

// RunInstrumented wraps Run with the logging and metrics a production
// caller would want: it times the run through logger.LogOperation and
// records policy, outcome, duration, matched-point count, and mapping
// coverage on metrics (spec.md's mapping-marker report, surfaced as a
// gauge rather than only a returned string).
func RunInstrumented(cfg Config, reference, current *frame.Frame, logger *observability.Logger, metrics *observability.Metrics) (Result, error) {
	var res Result
	start := time.Now()

	err := logger.LogOperation("correspond.Run", func() error {
		var innerErr error
		res, innerErr = Run(cfg, reference, current)
		return innerErr
	})

	duration := time.Since(start)
	policy := policyName(cfg.Policy)

	if err != nil {
		metrics.RecordRun(policy, "error", duration)
		metrics.RecordRunError(errorKind(err))
		return Result{}, err
	}

	metrics.RecordRun(policy, "success", duration)
	metrics.RecordMatch(current.Len())
	metrics.UpdateMappingCoverage(res.Report.Mapped, res.Report.Total)
	logger.LogCorrespondenceRun(policy, current.Len(), res.Report, duration)

	return res, nil
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, frame.ErrEmptyReference):
		return "empty_reference"
	case errors.Is(err, frame.ErrLengthMismatch):
		return "length_mismatch"
	default:
		return "unknown"
	}
}
