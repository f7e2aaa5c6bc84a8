package alignment

import (
	"image"
	"testing"

	imgutil "sudoku-reader/internal/image"
	"sudoku-reader/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeHomographyMapsCorners(t *testing.T) {
	src := [4]geometry.Point2D{{X: 12, Y: 8}, {X: 180, Y: 20}, {X: 170, Y: 160}, {X: 5, Y: 150}}
	dst := [4]geometry.Point2D{{X: 0, Y: 0}, {X: 140, Y: 0}, {X: 140, Y: 140}, {X: 0, Y: 140}}

	h, err := ComputeHomography(src, dst)
	require.NoError(t, err)

	for i := range src {
		p, ok := h.Apply(src[i])
		require.True(t, ok)
		assert.InDelta(t, dst[i].X, p.X, 1e-6)
		assert.InDelta(t, dst[i].Y, p.Y, 1e-6)
	}
}

func TestRectifyAxisAlignedSquareIsIdentity(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 101, 101))
	for i := range src.Pix {
		src.Pix[i] = uint8((i * 7) % 251)
	}

	q := geometry.Quadrangle{
		UpperLeft:  geometry.Pt(0, 0),
		UpperRight: geometry.Pt(100, 0),
		LowerRight: geometry.Pt(100, 100),
		LowerLeft:  geometry.Pt(0, 100),
	}

	m, err := imgutil.MatFromGray(src)
	require.NoError(t, err)
	defer m.Close()

	out, err := Rectify(m, q)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 100, 100), out.Bounds())

	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			require.Equal(t, src.GrayAt(x, y).Y, out.GrayAt(x, y).Y, "pixel (%d,%d)", x, y)
		}
	}
}

func TestRectifyTranslatedSquare(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 80, 90))
	for i := range src.Pix {
		src.Pix[i] = uint8((i * 13) % 241)
	}
	m, err := imgutil.MatFromGray(src)
	require.NoError(t, err)
	defer m.Close()

	q := geometry.Quadrangle{
		UpperLeft:  geometry.Pt(10, 20),
		UpperRight: geometry.Pt(60, 20),
		LowerRight: geometry.Pt(60, 70),
		LowerLeft:  geometry.Pt(10, 70),
	}
	out, err := Rectify(m, q)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 50, 50), out.Bounds())

	for y := 0; y < 50; y++ {
		for x := 0; x < 50; x++ {
			require.Equal(t, src.GrayAt(x+10, y+20).Y, out.GrayAt(x, y).Y, "pixel (%d,%d)", x, y)
		}
	}
}

func TestSquareSideUsesCeilingOfShortestSide(t *testing.T) {
	q := geometry.Quadrangle{
		UpperLeft:  geometry.Pt(0, 0),
		UpperRight: geometry.Pt(50, 1),
		LowerRight: geometry.Pt(52, 60),
		LowerLeft:  geometry.Pt(0, 60),
	}
	// shortest side is UL-UR = sqrt(2501) ~ 50.01
	assert.Equal(t, 51, SquareSide(q))
}

func TestRectifyDegenerate(t *testing.T) {
	src, err := imgutil.MatFromGray(image.NewGray(image.Rect(0, 0, 20, 20)))
	require.NoError(t, err)
	defer src.Close()

	zeroSide := geometry.Quadrangle{
		UpperLeft:  geometry.Pt(0, 0),
		UpperRight: geometry.Pt(0, 0),
		LowerRight: geometry.Pt(10, 10),
		LowerLeft:  geometry.Pt(0, 10),
	}
	_, err = Rectify(src, zeroSide)
	assert.ErrorIs(t, err, ErrDegenerateQuadrangle)

	collinear := geometry.Quadrangle{
		UpperLeft:  geometry.Pt(0, 0),
		UpperRight: geometry.Pt(5, 5),
		LowerRight: geometry.Pt(10, 10),
		LowerLeft:  geometry.Pt(15, 15),
	}
	_, err = Rectify(src, collinear)
	assert.ErrorIs(t, err, ErrDegenerateQuadrangle)
}

func TestSideSpread(t *testing.T) {
	square := geometry.Quadrangle{
		UpperLeft:  geometry.Pt(0, 0),
		UpperRight: geometry.Pt(10, 0),
		LowerRight: geometry.Pt(10, 10),
		LowerLeft:  geometry.Pt(0, 10),
	}
	assert.InDelta(t, 0, SideSpread(square), 1e-12)

	// sides 20, 10, 20, 10: mean 15, population std dev 5
	rect := geometry.Quadrangle{
		UpperLeft:  geometry.Pt(0, 0),
		UpperRight: geometry.Pt(20, 0),
		LowerRight: geometry.Pt(20, 10),
		LowerLeft:  geometry.Pt(0, 10),
	}
	assert.InDelta(t, 1.0/3, SideSpread(rect), 1e-12)

	assert.Zero(t, SideSpread(geometry.Quadrangle{}))
}
