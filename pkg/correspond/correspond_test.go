package correspond

import (
	"errors"
	"testing"

	"github.com/therealutkarshpriyadarshi/pointmesh/pkg/cost"
	"github.com/therealutkarshpriyadarshi/pointmesh/pkg/frame"
	"github.com/therealutkarshpriyadarshi/pointmesh/pkg/kdtree"
	"github.com/therealutkarshpriyadarshi/pointmesh/pkg/point"
)

func mkPoint(x, y, z float32, c uint8, idx int) point.Point {
	return point.New(point.Coord{X: x, Y: y, Z: z}, point.Color{R: c, G: c, B: c}, uint32(idx))
}

// S1 — trivial nearest.
func TestRunNearestTrivial(t *testing.T) {
	reference := frame.New([]point.Point{
		mkPoint(0, 0, 0, 255, 0),
		mkPoint(10, 10, 10, 0, 1),
	})
	current := frame.New([]point.Point{mkPoint(1, 1, 1, 255, 0)})

	res, err := Run(DefaultConfig(), reference, current)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := res.Output.Points[0].Coord; got != (point.Coord{X: 0.5, Y: 0.5, Z: 0.5}) {
		t.Errorf("output coord = %+v, want {0.5 0.5 0.5}", got)
	}
	if res.Output.Points[0].Index != 0 {
		t.Errorf("output index = %d, want 0", res.Output.Points[0].Index)
	}
	if res.Snapshot[0].Mapping != 1 || res.Snapshot[1].Mapping != 0 {
		t.Errorf("snapshot mappings = [%d %d], want [1 0]",
			res.Snapshot[0].Mapping, res.Snapshot[1].Mapping)
	}
	if res.Snapshot[1].Color != frame.Unmapped {
		t.Errorf("snapshot[1].Color = %+v, want Unmapped", res.Snapshot[1].Color)
	}
	if got, want := res.Report.String(), "mapped points: 1; total points: 2"; got != want {
		t.Errorf("report = %q, want %q", got, want)
	}
}

// S2 — empty current.
func TestRunEmptyCurrentIsNotAnError(t *testing.T) {
	reference := frame.New([]point.Point{mkPoint(0, 0, 0, 1, 0)})
	current := frame.New(nil)

	res, err := Run(DefaultConfig(), reference, current)
	if err != nil {
		t.Fatalf("Run with empty current: %v", err)
	}
	if res.Output.Len() != 0 {
		t.Errorf("output length = %d, want 0", res.Output.Len())
	}
	if len(current.DeltaPos) != 0 || len(current.DeltaColor) != 0 {
		t.Errorf("delta sequences not empty: %v %v", current.DeltaPos, current.DeltaColor)
	}
	if res.Report.Mapped != 0 || res.Report.Total != 1 {
		t.Errorf("report = %+v, want {Mapped:0 Total:1}", res.Report)
	}
}

// S3 — penalty redistributes a tie under Policy 2.
func TestRunRatioPenaltyRedistributesTies(t *testing.T) {
	reference := frame.New([]point.Point{
		mkPoint(0, 0, 0, 0, 0),
		mkPoint(0.1, 0, 0, 0, 1),
	})
	current := frame.New([]point.Point{
		mkPoint(0, 0, 0, 0, 0),
		mkPoint(0, 0, 0, 0, 1),
	})

	cfg := Config{
		Policy:      Ratio,
		Weights:     cost.Weights{Coord: 1, Color: 0, Mapping: 1000},
		KCandidates: 2,
	}

	res, err := Run(cfg, reference, current)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// First current point should have picked A (index 0): its output
	// coord averages with A, landing exactly at the origin.
	if res.Output.Points[0].Coord != (point.Coord{}) {
		t.Errorf("output[0].Coord = %+v, want origin (picked A)", res.Output.Points[0].Coord)
	}
	// Second current point should have picked B (index 1), since A's
	// mapping penalty now dominates the tie.
	if res.Output.Points[1].Coord == (point.Coord{}) {
		t.Errorf("output[1].Coord = origin, want averaged with B (picked A instead)")
	}
	if res.Snapshot[0].Mapping == 0 || res.Snapshot[1].Mapping == 0 {
		t.Errorf("snapshot mappings = [%d %d], want both >= 1",
			res.Snapshot[0].Mapping, res.Snapshot[1].Mapping)
	}
}

// S4 — output/snapshot length mismatch at the delta step is a caller error.
func TestDeltaLengthMismatchSurfaces(t *testing.T) {
	reference := frame.New([]point.Point{
		mkPoint(0, 0, 0, 1, 0),
		mkPoint(10, 10, 10, 1, 1),
	})
	current := frame.New([]point.Point{mkPoint(1, 1, 1, 1, 0)})

	cfg := DefaultConfig()
	tree := kdtree.Build(reference.Points)
	snapshot := frame.Snapshot(reference)

	output, err := Correspond(cfg, tree, snapshot, current)
	if err != nil {
		t.Fatalf("Correspond: %v", err)
	}

	// output has length 1 (one current point); the full snapshot has
	// length 2 — asking for a delta against the whole snapshot rather
	// than a same-length slice must raise ErrLengthMismatch.
	err = current.Delta(output, snapshot)
	if !errors.Is(err, frame.ErrLengthMismatch) {
		t.Errorf("Delta across mismatched lengths = %v, want ErrLengthMismatch", err)
	}
}

// S5 — K larger than the reference frame.
func TestRunRatioKLargerThanReference(t *testing.T) {
	reference := frame.New([]point.Point{
		mkPoint(0, 0, 0, 1, 0),
		mkPoint(1, 0, 0, 1, 1),
		mkPoint(2, 0, 0, 1, 2),
	})
	current := frame.New([]point.Point{mkPoint(0.5, 0, 0, 1, 0)})

	cfg := Config{Policy: Ratio, Weights: cost.DefaultWeights(), KCandidates: DefaultKCandidates}

	res, err := Run(cfg, reference, current)
	if err != nil {
		t.Fatalf("Run with K > len(reference): %v", err)
	}
	if res.Output.Len() != 1 {
		t.Errorf("output length = %d, want 1", res.Output.Len())
	}
}

// S6 — ordering determinism: two runs over identical inputs agree exactly.
func TestRunRatioIsDeterministic(t *testing.T) {
	buildReference := func() *frame.Frame {
		return frame.New([]point.Point{
			mkPoint(0, 0, 0, 10, 0),
			mkPoint(1, 1, 1, 20, 1),
			mkPoint(2, 0, 2, 30, 2),
			mkPoint(-1, -1, 0, 40, 3),
		})
	}
	buildCurrent := func() *frame.Frame {
		return frame.New([]point.Point{
			mkPoint(0.2, 0.1, 0, 10, 0),
			mkPoint(1.1, 0.9, 1, 20, 1),
			mkPoint(-0.8, -1, 0, 40, 2),
		})
	}

	cfg := Config{Policy: Ratio, Weights: cost.Weights{Coord: 1, Color: 1, Mapping: 1}, KCandidates: 4}

	first, err := Run(cfg, buildReference(), buildCurrent())
	if err != nil {
		t.Fatalf("Run (first): %v", err)
	}
	second, err := Run(cfg, buildReference(), buildCurrent())
	if err != nil {
		t.Fatalf("Run (second): %v", err)
	}

	for i := range first.Output.Points {
		if first.Output.Points[i] != second.Output.Points[i] {
			t.Fatalf("output[%d] differs between runs: %+v vs %+v",
				i, first.Output.Points[i], second.Output.Points[i])
		}
	}
	for i := range first.Snapshot {
		if first.Snapshot[i].Mapping != second.Snapshot[i].Mapping {
			t.Fatalf("snapshot[%d].Mapping differs between runs: %d vs %d",
				i, first.Snapshot[i].Mapping, second.Snapshot[i].Mapping)
		}
	}
}

func TestCorrespondEmptyReferenceErrors(t *testing.T) {
	tree := kdtree.Build(nil)
	current := frame.New([]point.Point{mkPoint(0, 0, 0, 1, 0)})

	_, err := Correspond(DefaultConfig(), tree, nil, current)
	if !errors.Is(err, frame.ErrEmptyReference) {
		t.Errorf("Correspond against empty reference = %v, want ErrEmptyReference", err)
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, want nil", err)
	}
	bad := Config{Policy: Policy(99)}
	if err := bad.Validate(); err == nil {
		t.Error("Validate accepted an unknown policy")
	}
}
