package geometry

import "math"

// IsConvex returns true if the polygon vertices form a convex polygon.
// The polygon is assumed to be simple (non-self-intersecting).
func IsConvex(polygon []Point2D) bool {
	if len(polygon) < 3 {
		return false
	}

	n := len(polygon)
	var sign int

	for i := 0; i < n; i++ {
		cross := crossProduct(
			polygon[i],
			polygon[(i+1)%n],
			polygon[(i+2)%n],
		)

		if cross != 0 {
			currentSign := 1
			if cross < 0 {
				currentSign = -1
			}

			if sign == 0 {
				sign = currentSign
			} else if currentSign != sign {
				return false
			}
		}
	}

	return sign != 0
}

// Area returns the unsigned area of a simple polygon (shoelace formula).
func Area(polygon []Point2D) float64 {
	n := len(polygon)
	if n < 3 {
		return 0
	}

	var sum float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += polygon[i].X*polygon[j].Y - polygon[j].X*polygon[i].Y
	}
	return math.Abs(sum) / 2
}

// Collinear reports whether all points lie on a single line.
func Collinear(points []Point2D) bool {
	if len(points) < 3 {
		return true
	}

	// Anchor on the first point distinct from points[0]
	o := points[0]
	var a Point2D
	found := false
	for _, p := range points[1:] {
		if distSq(o, p) > 1e-18 {
			a = p
			found = true
			break
		}
	}
	if !found {
		return true
	}

	for _, p := range points[1:] {
		if math.Abs(crossProduct(o, a, p)) > 1e-9 {
			return false
		}
	}
	return true
}

// IsDegenerate reports whether the quadrangle cannot bound a grid: a side
// has zero length or all four corners are collinear.
func (q Quadrangle) IsDegenerate() bool {
	for _, side := range q.SideLengths() {
		if side == 0 {
			return true
		}
	}
	return Collinear(q.Polygon())
}

// crossProduct computes the cross product of vectors OA and OB.
func crossProduct(o, a, b Point2D) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

// distSq computes the squared distance between two points.
func distSq(a, b Point2D) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return dx*dx + dy*dy
}
