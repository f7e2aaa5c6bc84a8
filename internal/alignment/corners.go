package alignment

import (
	"errors"

	"sudoku-reader/pkg/geometry"

	"gocv.io/x/gocv"
)

// ErrNoContourFound is returned when a binary image has no external contour.
var ErrNoContourFound = errors.New("no external contour found")

// LocateCorners finds the largest external contour in a binary image and
// returns its four extremal corners.
func LocateCorners(binary gocv.Mat) (geometry.Quadrangle, error) {
	contour, err := LargestContour(binary)
	if err != nil {
		return geometry.Quadrangle{}, err
	}
	return ExtremalCorners(contour)
}

// LargestContour returns the points of the external contour enclosing the
// largest area. Ties keep the first contour found.
func LargestContour(binary gocv.Mat) ([]geometry.PointInt, error) {
	contours := gocv.FindContours(binary, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	if contours.Size() == 0 {
		return nil, ErrNoContourFound
	}

	best := 0
	bestArea := gocv.ContourArea(contours.At(0))
	for i := 1; i < contours.Size(); i++ {
		area := gocv.ContourArea(contours.At(i))
		if area > bestArea {
			bestArea = area
			best = i
		}
	}

	pts := contours.At(best).ToPoints()
	points := make([]geometry.PointInt, len(pts))
	for i, p := range pts {
		points[i] = geometry.Pt(p.X, p.Y)
	}
	return points, nil
}

// ExtremalCorners picks the corners of a quadrangle-like contour:
//
//	upper-left  minimizes x+y
//	lower-right maximizes x+y
//	upper-right maximizes x-y
//	lower-left  maximizes y-x
//
// The first point wins on ties.
func ExtremalCorners(points []geometry.PointInt) (geometry.Quadrangle, error) {
	if len(points) == 0 {
		return geometry.Quadrangle{}, ErrNoContourFound
	}

	ul, lr, ur, ll := points[0], points[0], points[0], points[0]
	for _, p := range points[1:] {
		if p.X+p.Y < ul.X+ul.Y {
			ul = p
		}
		if p.X+p.Y > lr.X+lr.Y {
			lr = p
		}
		if p.X-p.Y > ur.X-ur.Y {
			ur = p
		}
		if p.Y-p.X > ll.Y-ll.X {
			ll = p
		}
	}

	return geometry.Quadrangle{
		UpperLeft:  ul,
		UpperRight: ur,
		LowerRight: lr,
		LowerLeft:  ll,
	}, nil
}
