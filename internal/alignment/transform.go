package alignment

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	imgutil "sudoku-reader/internal/image"
	"sudoku-reader/pkg/geometry"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ErrDegenerateQuadrangle is returned when corners cannot define a homography:
// a side has zero length or the corners are collinear.
var ErrDegenerateQuadrangle = errors.New("degenerate quadrangle")

// SquareSide returns the side of the square a quadrangle is rectified into:
// the ceiling of its shortest side.
func SquareSide(q geometry.Quadrangle) int {
	sides := q.SideLengths()
	shortest := sides[0]
	for _, s := range sides[1:] {
		shortest = math.Min(shortest, s)
	}
	return int(math.Ceil(shortest))
}

// SideSpread returns the coefficient of variation of the quadrangle's side
// lengths: 0 for a square seen head-on, growing with perspective.
func SideSpread(q geometry.Quadrangle) float64 {
	sides := q.SideLengths()
	mean, std := stat.PopMeanStdDev(sides[:], nil)
	if mean == 0 {
		return 0
	}
	return std / mean
}

// ComputeHomography computes the projective transform mapping each src point
// onto the dst point with the same index. Exactly four correspondences give
// an 8x8 linear system with h22 fixed to 1.
func ComputeHomography(src, dst [4]geometry.Point2D) (geometry.Homography, error) {
	A := mat.NewDense(8, 8, nil)
	B := mat.NewVecDense(8, nil)

	for i := 0; i < 4; i++ {
		x, y := src[i].X, src[i].Y
		xp, yp := dst[i].X, dst[i].Y

		// x' = (h00*x + h01*y + h02) / (h20*x + h21*y + 1)
		A.Set(i*2, 0, x)
		A.Set(i*2, 1, y)
		A.Set(i*2, 2, 1)
		A.Set(i*2, 6, -x*xp)
		A.Set(i*2, 7, -y*xp)
		B.SetVec(i*2, xp)

		// y' = (h10*x + h11*y + h12) / (h20*x + h21*y + 1)
		A.Set(i*2+1, 3, x)
		A.Set(i*2+1, 4, y)
		A.Set(i*2+1, 5, 1)
		A.Set(i*2+1, 6, -x*yp)
		A.Set(i*2+1, 7, -y*yp)
		B.SetVec(i*2+1, yp)
	}

	var params mat.VecDense
	if err := params.SolveVec(A, B); err != nil {
		return geometry.Homography{}, fmt.Errorf("%w: %v", ErrDegenerateQuadrangle, err)
	}

	return geometry.Homography{
		{params.AtVec(0), params.AtVec(1), params.AtVec(2)},
		{params.AtVec(3), params.AtVec(4), params.AtVec(5)},
		{params.AtVec(6), params.AtVec(7), 1},
	}, nil
}

// Rectify warps the quadrangle q of a single-channel 8-bit Mat into a square
// whose side is the ceiling of the shortest side of q. Pixels are sampled
// with linear interpolation; samples outside src read as zero.
func Rectify(src gocv.Mat, q geometry.Quadrangle) (*image.Gray, error) {
	if q.IsDegenerate() {
		return nil, fmt.Errorf("%w: %s", ErrDegenerateQuadrangle, q)
	}

	side := SquareSide(q)
	s := float64(side)
	from := q.Polygon()
	to := [4]geometry.Point2D{{X: 0, Y: 0}, {X: s, Y: 0}, {X: s, Y: s}, {X: 0, Y: s}}

	h, err := ComputeHomography([4]geometry.Point2D{from[0], from[1], from[2], from[3]}, to)
	if err != nil {
		return nil, err
	}
	if _, ok := h.Inverse(); !ok {
		return nil, fmt.Errorf("%w: homography not invertible", ErrDegenerateQuadrangle)
	}

	warped := WarpPerspective(src, h, side, side)
	defer warped.Close()

	return imgutil.GrayFromMat(warped)
}

// WarpPerspective applies a projective transform to an image.
// h maps source coordinates to destination coordinates.
// The caller owns the returned Mat.
func WarpPerspective(src gocv.Mat, h geometry.Homography, width, height int) gocv.Mat {
	// Create transform matrix for GoCV
	transformMat := gocv.NewMatWithSize(3, 3, gocv.MatTypeCV64F)
	defer transformMat.Close()
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			transformMat.SetDoubleAt(r, c, h[r][c])
		}
	}

	dst := gocv.NewMat()
	gocv.WarpPerspectiveWithParams(src, &dst, transformMat, image.Pt(width, height),
		gocv.InterpolationLinear, gocv.BorderConstant, color.RGBA{R: 0, G: 0, B: 0, A: 0})

	return dst
}
