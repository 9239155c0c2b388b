package kdtree

import (
	"errors"
	"sort"
	"testing"

	"github.com/therealutkarshpriyadarshi/pointmesh/pkg/point"
)

func mkPoint(x, y, z float32, idx int) point.Point {
	return point.New(point.Coord{X: x, Y: y, Z: z}, point.Color{}, uint32(idx))
}

func TestBuildEmptyIsEmpty(t *testing.T) {
	idx := Build(nil)
	if !idx.Empty() {
		t.Fatal("Build(nil) should be Empty")
	}
	if _, err := idx.Nearest(point.Coord{}); !errors.Is(err, ErrEmptyTree) {
		t.Errorf("Nearest on empty tree = %v, want ErrEmptyTree", err)
	}
	if _, err := idx.KNearest(point.Coord{}, 3); !errors.Is(err, ErrEmptyTree) {
		t.Errorf("KNearest on empty tree = %v, want ErrEmptyTree", err)
	}
}

func TestNearestFindsExactClosest(t *testing.T) {
	pts := []point.Point{
		mkPoint(0, 0, 0, 0),
		mkPoint(10, 0, 0, 1),
		mkPoint(3, 4, 0, 2),
		mkPoint(-5, -5, -5, 3),
	}
	idx := Build(pts)

	got, err := idx.Nearest(point.Coord{X: 1, Y: 1, Z: 0})
	if err != nil {
		t.Fatalf("Nearest: %v", err)
	}
	if got.Index != 0 {
		t.Errorf("Nearest({1,1,0}) = index %d, want 0", got.Index)
	}
}

func TestNearestBreaksTiesByLowerIndex(t *testing.T) {
	pts := []point.Point{
		mkPoint(1, 0, 0, 5),
		mkPoint(-1, 0, 0, 2),
	}
	idx := Build(pts)

	got, err := idx.Nearest(point.Coord{})
	if err != nil {
		t.Fatalf("Nearest: %v", err)
	}
	if got.Index != 2 {
		t.Errorf("Nearest tie = index %d, want 2 (lower index)", got.Index)
	}
}

func TestKNearestIsAscendingAndCorrect(t *testing.T) {
	var pts []point.Point
	for i := 0; i < 20; i++ {
		pts = append(pts, mkPoint(float32(i), 0, 0, i))
	}
	idx := Build(pts)

	got, err := idx.KNearest(point.Coord{X: 9.4, Y: 0, Z: 0}, 5)
	if err != nil {
		t.Fatalf("KNearest: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("len(KNearest) = %d, want 5", len(got))
	}

	wantOrder := []uint32{9, 10, 8, 11, 7}
	for i, w := range wantOrder {
		if got[i].Index != w {
			t.Errorf("KNearest[%d].Index = %d, want %d", i, got[i].Index, w)
		}
	}

	query := point.Coord{X: 9.4}
	sorted := sort.SliceIsSorted(got, func(i, j int) bool {
		return query.DistSq(got[i].Coord) <= query.DistSq(got[j].Coord)
	})
	if !sorted {
		t.Error("KNearest result not in ascending distance order")
	}
}

func TestKNearestCappedByTreeSize(t *testing.T) {
	pts := []point.Point{mkPoint(0, 0, 0, 0), mkPoint(1, 0, 0, 1)}
	idx := Build(pts)

	got, err := idx.KNearest(point.Coord{}, 10)
	if err != nil {
		t.Fatalf("KNearest: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("len(KNearest) = %d, want 2", len(got))
	}
}

func TestAxisValueRejectsOutOfRangeAxis(t *testing.T) {
	c := point.Coord{X: 1, Y: 2, Z: 3}

	if _, err := axisValue(c, 3); !errors.Is(err, ErrOutOfRangeAxis) {
		t.Errorf("axisValue(c, 3) = %v, want ErrOutOfRangeAxis", err)
	}
	if _, err := axisValue(c, -1); !errors.Is(err, ErrOutOfRangeAxis) {
		t.Errorf("axisValue(c, -1) = %v, want ErrOutOfRangeAxis", err)
	}
	if v, err := axisValue(c, 1); err != nil || v != 2 {
		t.Errorf("axisValue(c, 1) = (%v, %v), want (2, nil)", v, err)
	}
}

// TestSearchHaltsOnCorruptedNodeAxis exercises the "must never occur"
// programmer-error path (spec.md §7 error kind 3): a node whose axis
// field is out of range, reached only by a tree built with a corrupted
// internal node rather than through Build/buildNode. mustAxisValue must
// halt via ErrOutOfRangeAxis rather than point.Coord.At's generic panic.
func TestSearchHaltsOnCorruptedNodeAxis(t *testing.T) {
	corrupt := &node{point: mkPoint(0, 0, 0, 0), axis: 3}
	idx := &Index{root: corrupt, size: 1}

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic from a corrupted node axis")
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrOutOfRangeAxis) {
			t.Errorf("recovered panic = %v, want ErrOutOfRangeAxis", r)
		}
	}()

	idx.Nearest(point.Coord{X: 1, Y: 1, Z: 1})
}

func TestNearestIsLowerBoundAmongAllPoints(t *testing.T) {
	pts := []point.Point{
		mkPoint(2, 3, -1, 0),
		mkPoint(-7, 1, 4, 1),
		mkPoint(0, 0, 0, 2),
		mkPoint(9, 9, 9, 3),
		mkPoint(-3, -3, 3, 4),
	}
	idx := Build(pts)
	q := point.Coord{X: 1, Y: 1, Z: 1}

	got, err := idx.Nearest(q)
	if err != nil {
		t.Fatalf("Nearest: %v", err)
	}

	gotDist := q.DistSq(got.Coord)
	for _, p := range pts {
		if d := q.DistSq(p.Coord); d < gotDist {
			t.Fatalf("Nearest returned index %d at distSq %v, but index %d is closer at %v",
				got.Index, gotDist, p.Index, d)
		}
	}
}
