// Package point defines the composite point type shared by every stage of
// the temporal correspondence pipeline: a 3-D coordinate, an 8-bit RGB
// color sample, a mutable usage counter, and a stable frame-local index.
package point

import "math"

// Coord is a 3-D position in 32-bit float components.
type Coord struct {
	X, Y, Z float32
}

// Sub returns the componentwise difference c - other.
func (c Coord) Sub(other Coord) Coord {
	return Coord{X: c.X - other.X, Y: c.Y - other.Y, Z: c.Z - other.Z}
}

// Add returns the componentwise sum c + other.
func (c Coord) Add(other Coord) Coord {
	return Coord{X: c.X + other.X, Y: c.Y + other.Y, Z: c.Z + other.Z}
}

// Average returns the componentwise arithmetic mean of c and other.
func (c Coord) Average(other Coord) Coord {
	return Coord{
		X: (c.X + other.X) / 2,
		Y: (c.Y + other.Y) / 2,
		Z: (c.Z + other.Z) / 2,
	}
}

// At returns the coordinate's value along axis k (0=x, 1=y, 2=z). It panics
// on any other axis; callers within this module route through the
// ErrOutOfRangeAxis sentinel instead of calling At directly with an
// unchecked index (see kdtree.axisValue).
func (c Coord) At(k int) float32 {
	switch k {
	case 0:
		return c.X
	case 1:
		return c.Y
	case 2:
		return c.Z
	default:
		panic("point: axis out of range")
	}
}

// DistSq returns the squared Euclidean distance between c and other.
// Squared distance avoids a sqrt on the hot comparison path; callers that
// need a true metric (e.g. the cost function) take the sqrt themselves.
func (c Coord) DistSq(other Coord) float64 {
	dx := float64(c.X - other.X)
	dy := float64(c.Y - other.Y)
	dz := float64(c.Z - other.Z)
	return dx*dx + dy*dy + dz*dz
}

// Dist returns the Euclidean distance between c and other.
func (c Coord) Dist(other Coord) float64 {
	return math.Sqrt(c.DistSq(other))
}

// Color is an 8-bit RGB sample.
type Color struct {
	R, G, B uint8
}

// Average returns the componentwise mean of c and other, truncated back to
// 8 bits (half-up rounding, matching the source's integer truncation within
// the tolerance spec.md §8 allows).
func (c Color) Average(other Color) Color {
	return Color{
		R: avgChannel(c.R, other.R),
		G: avgChannel(c.G, other.G),
		B: avgChannel(c.B, other.B),
	}
}

func avgChannel(a, b uint8) uint8 {
	return uint8((uint16(a) + uint16(b) + 1) / 2)
}

// Delta returns c - other as a signed float32 triple, each channel promoted
// to float32 before subtracting (spec.md §4.F). The result reuses Coord as
// a plain float32 triple; it is not itself a spatial position.
func (c Color) Delta(other Color) Coord {
	return Coord{
		X: float32(c.R) - float32(other.R),
		Y: float32(c.G) - float32(other.G),
		Z: float32(c.B) - float32(other.B),
	}
}

// ColorDist returns the Euclidean distance between two colors, treating
// each channel as a float (spec.md §4.C).
func ColorDist(a, b Color) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// Point is a value with four attributes: a 3-D coordinate, an RGB color, a
// 16-bit mapping counter, and a stable frame-local index. Equality of two
// points (Equal) considers only coord and color; mapping and index are
// bookkeeping.
type Point struct {
	Coord   Coord
	Color   Color
	Mapping uint16
	Index   uint32
}

// New constructs a Point from its geometric and photometric attributes.
// Mapping starts at zero; Index is assigned by the caller (normally by
// frame.New, which assigns indices in arrival order).
func New(coord Coord, color Color, index uint32) Point {
	return Point{Coord: coord, Color: color, Index: index}
}

// Zero is the default all-zero point.
var Zero = Point{}

// Equal reports whether p and other have the same coordinate and color.
// Mapping and index are excluded, matching the source's PartialEq impl.
func (p Point) Equal(other Point) bool {
	return p.Coord == other.Coord && p.Color == other.Color
}

// Average returns a new point whose coord and color are the componentwise
// means of p and other, with mapping reset to zero and index taken from p
// (spec.md §4.E: the current point's index is preserved into the output).
func (p Point) Average(other Point) Point {
	return Point{
		Coord: p.Coord.Average(other.Coord),
		Color: p.Color.Average(other.Color),
		Index: p.Index,
	}
}

// DistFromOrigin returns the Euclidean distance of p.Coord from the origin.
// Used only by Less, which provides a deterministic total ordering some
// callers may want; the correspondence engine never calls it.
func (p Point) DistFromOrigin() float64 {
	return p.Coord.Dist(Coord{})
}

// Less orders points by distance from the origin, breaking ties as equal.
// This mirrors the source's unused Point::partial_cmp: present for callers
// that need a deterministic ordering, not used by kdtree or correspond.
func Less(a, b Point) bool {
	return a.DistFromOrigin() < b.DistFromOrigin()
}
