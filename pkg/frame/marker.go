package frame

import (
	"fmt"

	"github.com/therealutkarshpriyadarshi/pointmesh/pkg/point"
)

// Unmapped is the color the marker paints over reference points that were
// never selected as a correspondence counterpart: pure green.
var Unmapped = point.Color{R: 0, G: 255, B: 0}

// Report summarizes marker coverage over a reference snapshot.
type Report struct {
	Mapped int
	Total  int
}

// String renders the report exactly as the source's coverage line:
// "mapped points: <M>; total points: <T>" (spec.md §4.G).
func (r Report) String() string {
	return fmt.Sprintf("mapped points: %d; total points: %d", r.Mapped, r.Total)
}

// Mark walks snapshot in order, recoloring every point whose mapping
// count is still zero to Unmapped, and returns a coverage Report (spec.md
// §4.G). It mutates snapshot in place and touches nothing else; running
// it twice on the same snapshot is idempotent (spec.md §8) because a
// point already recolored to Unmapped still has mapping == 0 and is
// simply recolored to the same value again.
func Mark(snapshot []point.Point) Report {
	mapped := 0
	for i := range snapshot {
		if snapshot[i].Mapping == 0 {
			snapshot[i].Color = Unmapped
		} else {
			mapped++
		}
	}

	return Report{Mapped: mapped, Total: len(snapshot)}
}
