package digit

import (
	"image"
	"testing"

	"sudoku-reader/internal/features"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setInk(g *image.Gray, x, y int) {
	g.Pix[g.PixOffset(x, y)] = 255
}

func fill(g *image.Gray, r image.Rectangle) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			setInk(g, x, y)
		}
	}
}

func TestIsNumberNeedsCenterInk(t *testing.T) {
	// 30x30 splits into 10x10 blocks; the middle block is [10,20)
	g := image.NewGray(image.Rect(0, 0, 30, 30))
	for i := 0; i < 4; i++ {
		setInk(g, 10+i, 10)
	}
	for i := 0; i < 22; i++ {
		setInk(g, i, 0)
	}
	require.Equal(t, 26, countInk(g, g.Bounds()))
	assert.False(t, IsNumber(g))
}

func TestIsNumberBothConditions(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 30, 30))
	for i := 0; i < 6; i++ {
		setInk(g, 12+i, 15)
	}
	for i := 0; i < 24; i++ {
		setInk(g, i, 29)
	}
	require.Equal(t, 30, countInk(g, g.Bounds()))
	assert.True(t, IsNumber(g))
}

func TestIsNumberNeedsTotalInk(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 30, 30))
	fill(g, image.Rect(12, 12, 16, 16))
	assert.False(t, IsNumber(g))
}

func TestCenterPlacesSmallSymbolUnscaled(t *testing.T) {
	feature := image.NewGray(image.Rect(0, 0, 33, 31))
	fill(feature, image.Rect(3, 5, 13, 19)) // 10 wide, 14 tall

	canvas := Center(feature, CanvasDim)
	require.Equal(t, image.Rect(0, 0, 28, 28), canvas.Bounds())

	// squared to 14x14 (2 columns of padding each side), placed at (7,7)
	box, ok := inkBounds(canvas)
	require.True(t, ok)
	assert.Equal(t, image.Rect(9, 7, 19, 21), box)
}

func TestCenterWideSymbolKeepsInk(t *testing.T) {
	feature := image.NewGray(image.Rect(0, 0, 30, 30))
	fill(feature, image.Rect(10, 10, 16, 13)) // 6 wide, 3 tall

	canvas := Center(feature, CanvasDim)

	// pad (6-3)/2 = 1 row above, placed at (11,11)
	box, ok := inkBounds(canvas)
	require.True(t, ok)
	assert.Equal(t, image.Rect(11, 12, 17, 15), box)
}

func TestCenterDownscalesLargeSymbol(t *testing.T) {
	feature := image.NewGray(image.Rect(0, 0, 40, 40))
	fill(feature, image.Rect(5, 5, 35, 35))

	canvas := Center(feature, CanvasDim)

	for y := 0; y < CanvasSize; y++ {
		for x := 0; x < CanvasSize; x++ {
			inside := x >= Margin && x < CanvasSize-Margin && y >= Margin && y < CanvasSize-Margin
			if !inside {
				require.Zero(t, canvas.GrayAt(x, y).Y, "margin pixel (%d,%d)", x, y)
			}
		}
	}
	assert.Greater(t, canvas.GrayAt(14, 14).Y, uint8(200))
}

func TestCenterIsIdempotent(t *testing.T) {
	feature := image.NewGray(image.Rect(0, 0, 36, 36))
	fill(feature, image.Rect(4, 8, 12, 25))
	fill(feature, image.Rect(12, 8, 16, 11))

	once := Center(feature, CanvasDim)
	twice := Center(once, CanvasDim)
	assert.Equal(t, once.Pix, twice.Pix)
}

func TestCenterBlankFeature(t *testing.T) {
	canvas := Center(image.NewGray(image.Rect(0, 0, 30, 30)), CanvasDim)
	assert.Equal(t, make([]uint8, CanvasSize*CanvasSize), canvas.Pix)
}

func TestCenterInkUsesThirds(t *testing.T) {
	// column 9 is inside a ninths split [9,18) but outside [10,20)
	g := image.NewGray(image.Rect(0, 0, 30, 30))
	fill(g, image.Rect(9, 9, 10, 19))
	assert.Zero(t, centerInk(g))

	fill(g, image.Rect(18, 12, 20, 13))
	assert.Equal(t, 2, centerInk(g))
}

func TestCenterIsIdempotentAfterDownscale(t *testing.T) {
	feature := image.NewGray(image.Rect(0, 0, 40, 40))
	fill(feature, image.Rect(5, 5, 35, 35))

	once := Center(feature, CanvasDim)
	box, ok := inkBounds(once)
	require.True(t, ok)
	require.Equal(t, image.Rect(Margin, Margin, CanvasSize-Margin, CanvasSize-Margin), box)

	twice := Center(once, CanvasDim)
	assert.Equal(t, once.Pix, twice.Pix)
}

// inkValues collects the ink intensities of img in row-major order.
func inkValues(img *image.Gray) []uint8 {
	var vals []uint8
	for _, v := range img.Pix {
		if features.IsInk(v) {
			vals = append(vals, v)
		}
	}
	return vals
}

func TestCenterRecenteringDownscaledGlyphKeepsInk(t *testing.T) {
	// an L shape: the resized square has anti-aliased fringes
	feature := image.NewGray(image.Rect(0, 0, 40, 40))
	fill(feature, image.Rect(8, 5, 14, 36))
	fill(feature, image.Rect(8, 30, 34, 36))

	once := Center(feature, CanvasDim)
	box, ok := inkBounds(once)
	require.True(t, ok)
	require.True(t, box.In(image.Rect(Margin, Margin, CanvasSize-Margin, CanvasSize-Margin)))

	// the second pass never resizes, so every ink pixel survives unchanged;
	// only sub-threshold fringe outside the ink box may be dropped
	twice := Center(once, CanvasDim)
	assert.Equal(t, inkValues(once), inkValues(twice))
}
