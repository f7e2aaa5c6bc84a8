// Package geometry provides basic geometric types used throughout the application.
package geometry

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Point2D represents a 2D point with floating-point coordinates.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance returns the Euclidean distance to another point.
func (p Point2D) Distance(other Point2D) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// PointInt represents a 2D point with integer coordinates.
// X is the column and Y is the row.
type PointInt struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Pt is shorthand for PointInt{X: x, Y: y}.
func Pt(x, y int) PointInt {
	return PointInt{X: x, Y: y}
}

// ToFloat converts to Point2D.
func (p PointInt) ToFloat() Point2D {
	return Point2D{X: float64(p.X), Y: float64(p.Y)}
}

func (p PointInt) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Quadrangle holds four corners of a detected grid.
// Canonical order is upper-left, upper-right, lower-right, lower-left.
type Quadrangle struct {
	UpperLeft  PointInt `json:"upper_left"`
	UpperRight PointInt `json:"upper_right"`
	LowerRight PointInt `json:"lower_right"`
	LowerLeft  PointInt `json:"lower_left"`
}

// Points returns the corners in canonical order.
func (q Quadrangle) Points() [4]PointInt {
	return [4]PointInt{q.UpperLeft, q.UpperRight, q.LowerRight, q.LowerLeft}
}

// SideLengths returns the lengths of UL-UR, UR-LR, LR-LL and LL-UL.
func (q Quadrangle) SideLengths() [4]float64 {
	pts := q.Points()
	var sides [4]float64
	for i := range pts {
		sides[i] = pts[i].ToFloat().Distance(pts[(i+1)%4].ToFloat())
	}
	return sides
}

// Polygon returns the corners as floating-point polygon vertices.
func (q Quadrangle) Polygon() []Point2D {
	pts := q.Points()
	poly := make([]Point2D, len(pts))
	for i, p := range pts {
		poly[i] = p.ToFloat()
	}
	return poly
}

func (q Quadrangle) String() string {
	return fmt.Sprintf("UL%s UR%s LR%s LL%s", q.UpperLeft, q.UpperRight, q.LowerRight, q.LowerLeft)
}

// Homography represents a 3x3 projective transformation matrix.
// [h00 h01 h02]
// [h10 h11 h12]
// [h20 h21 h22]
type Homography [3][3]float64

// Apply maps a point through the transform. The second result is false
// when the point maps to infinity.
func (h Homography) Apply(p Point2D) (Point2D, bool) {
	w := h[2][0]*p.X + h[2][1]*p.Y + h[2][2]
	if math.Abs(w) < 1e-12 {
		return Point2D{}, false
	}
	return Point2D{
		X: (h[0][0]*p.X + h[0][1]*p.Y + h[0][2]) / w,
		Y: (h[1][0]*p.X + h[1][1]*p.Y + h[1][2]) / w,
	}, true
}

// Inverse returns the inverse transform, if it exists.
func (h Homography) Inverse() (Homography, bool) {
	m := mat.NewDense(3, 3, []float64{
		h[0][0], h[0][1], h[0][2],
		h[1][0], h[1][1], h[1][2],
		h[2][0], h[2][1], h[2][2],
	})
	if math.Abs(mat.Det(m)) < 1e-12 {
		return Homography{}, false
	}

	var inv mat.Dense
	if err := inv.Inverse(m); err != nil {
		return Homography{}, false
	}

	var out Homography
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out[r][c] = inv.At(r, c)
		}
	}
	return out, true
}
