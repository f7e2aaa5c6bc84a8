package image

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToGrayResetsOrigin(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 20, 14, 23))
	src.Set(10, 20, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	g := ToGray(src)
	assert.Equal(t, image.Rect(0, 0, 4, 3), g.Bounds())
	assert.Equal(t, uint8(255), g.GrayAt(0, 0).Y)
	assert.Equal(t, uint8(0), g.GrayAt(1, 0).Y)
}

func TestCropCopiesRegion(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 6, 6))
	for i := range src.Pix {
		src.Pix[i] = uint8(i)
	}

	c := Crop(src, image.Rect(2, 3, 5, 6))
	require.Equal(t, image.Rect(0, 0, 3, 3), c.Bounds())
	assert.Equal(t, src.GrayAt(2, 3), c.GrayAt(0, 0))
	assert.Equal(t, src.GrayAt(4, 5), c.GrayAt(2, 2))

	// no aliasing with the source
	c.Pix[0] = 0
	assert.Equal(t, uint8(3*6+2), src.GrayAt(2, 3).Y)
}

func TestCropClipsToBounds(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 4, 4))
	c := Crop(src, image.Rect(2, 2, 10, 10))
	assert.Equal(t, image.Rect(0, 0, 2, 2), c.Bounds())
}

func TestSavePNGRoundTrip(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 3, 2))
	g.SetGray(1, 1, color.Gray{Y: 200})

	path := filepath.Join(t.TempDir(), "out", "cell.png")
	require.NoError(t, SavePNG(path, g))

	loaded, err := LoadGray(path)
	require.NoError(t, err)
	assert.Equal(t, g.Pix, loaded.Pix)
}

func TestIsSupportedFormat(t *testing.T) {
	assert.True(t, IsSupportedFormat("board.JPG"))
	assert.True(t, IsSupportedFormat("scan.tif"))
	assert.False(t, IsSupportedFormat("notes.txt"))
}
