package colorutil

import (
	"image"
	"image/color"
	"testing"

	"sudoku-reader/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isColor(img *image.NRGBA, x, y int, c color.RGBA) bool {
	r, g, b, a := img.At(x, y).RGBA()
	cr, cg, cb, ca := c.RGBA()
	return r == cr && g == cg && b == cb && a == ca
}

func TestCanvasCopiesGray(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 4, 3))
	g.Pix[g.PixOffset(1, 1)] = 200

	c := Canvas(g)
	require.Equal(t, g.Bounds(), c.Bounds())
	assert.Equal(t, color.NRGBA{R: 200, G: 200, B: 200, A: 255}, c.NRGBAAt(1, 1))
}

func TestDrawLineEndpointsAndDiagonal(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	DrawLine(img, image.Pt(1, 1), image.Pt(8, 8), Red, 1)

	for i := 1; i <= 8; i++ {
		assert.True(t, isColor(img, i, i, Red), "pixel %d", i)
	}
	assert.False(t, isColor(img, 0, 0, Red))
	assert.False(t, isColor(img, 2, 1, Red))
}

func TestDrawLineClipsToBounds(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 5, 5))
	assert.NotPanics(t, func() {
		DrawLine(img, image.Pt(-10, 2), image.Pt(20, 2), Green, 3)
	})
	for x := 0; x < 5; x++ {
		assert.True(t, isColor(img, x, 1, Green))
		assert.True(t, isColor(img, x, 3, Green))
	}
}

func TestDrawRectOutline(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	DrawRect(img, image.Rect(2, 2, 7, 6), Cyan, 1)

	assert.True(t, isColor(img, 2, 2, Cyan))
	assert.True(t, isColor(img, 6, 5, Cyan))
	assert.True(t, isColor(img, 4, 2, Cyan))
	assert.False(t, isColor(img, 4, 4, Cyan))
	assert.False(t, isColor(img, 7, 6, Cyan))
}

func TestDrawQuadrangleMarksCorners(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 40, 40))
	q := geometry.Quadrangle{
		UpperLeft:  geometry.Pt(5, 5),
		UpperRight: geometry.Pt(34, 6),
		LowerRight: geometry.Pt(33, 33),
		LowerLeft:  geometry.Pt(6, 34),
	}
	DrawQuadrangle(img, q, Green, Red, 1)

	for _, p := range q.Points() {
		assert.True(t, isColor(img, p.X, p.Y, Red))
	}
	assert.True(t, isColor(img, 20, 5, Green) || isColor(img, 20, 6, Green))
	assert.False(t, isColor(img, 20, 20, Green))
}
