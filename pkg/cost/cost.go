// Package cost implements the weighted correspondence cost function used
// by the ratio-recovery policy (spec.md §4.C): a blend of geometric
// distance, color distance, and a usage penalty. Weights are plain data,
// not globals or closures, per spec.md §9.
package cost

import "github.com/therealutkarshpriyadarshi/pointmesh/pkg/point"

// Weights configures the relative contribution of each cost term. No
// normalization is applied; callers choose weights with units in mind
// (spec.md §4.C).
type Weights struct {
	Coord   float32 // w_coord: weight on Euclidean coordinate distance.
	Color   float32 // w_color: weight on Euclidean color distance.
	Mapping float32 // w_map: weight per prior use of the candidate.
}

// DefaultWeights returns a configuration that weighs geometric distance
// only, with no color or usage penalty — a neutral starting point for
// callers that haven't tuned their own weights yet.
func DefaultWeights() Weights {
	return Weights{Coord: 1, Color: 0, Mapping: 0}
}

// Evaluate computes cost(p, c, m) = w_coord*||p.coord-c.coord|| +
// w_color*||p.color-c.color|| + w_map*m, where m is the candidate's
// mapping count read at the moment of evaluation (spec.md §4.C).
func Evaluate(w Weights, p, c point.Point, m uint16) float64 {
	coordDist := p.Coord.Dist(c.Coord)
	colorDist := point.ColorDist(p.Color, c.Color)

	return float64(w.Coord)*coordDist +
		float64(w.Color)*colorDist +
		float64(w.Mapping)*float64(m)
}
