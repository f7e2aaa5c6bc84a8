package digit

import (
	"image"
	"image/draw"

	"sudoku-reader/internal/features"
	imgutil "sudoku-reader/internal/image"

	"github.com/disintegration/imaging"
)

const (
	// CanvasSize is the side of the canvas handed to the classifier.
	CanvasSize = 28

	// Margin is the zero border kept around a downscaled symbol.
	Margin = 4
)

// CanvasDim is the default CanvasSize x CanvasSize output dimension.
var CanvasDim = image.Pt(CanvasSize, CanvasSize)

// Center crops the feature to the bounding box of its ink, pads the crop to
// a square, and places it in the middle of a dim-sized canvas.
//
// A square larger than the canvas minus two margins (20 pixels on a 28
// canvas) is downscaled to exactly that size with an anti-aliasing filter,
// which leaves a Margin-wide zero border. Smaller squares are copied
// unscaled. A feature without ink yields a blank canvas.
func Center(feature *image.Gray, dim image.Point) *image.Gray {
	canvas := image.NewGray(image.Rect(0, 0, dim.X, dim.Y))

	box, ok := inkBounds(feature)
	if !ok {
		return canvas
	}

	square := squareCrop(feature, box)
	side := square.Bounds().Dx()

	fit := max(min(dim.X, dim.Y)-2*Margin, 1)
	if side > fit {
		resized := imgutil.ToGray(imaging.Resize(square, fit, fit, imaging.Lanczos))
		place(canvas, resized)
		return canvas
	}

	place(canvas, square)
	return canvas
}

// inkBounds returns the tight bounding box of the ink pixels.
func inkBounds(img *image.Gray) (image.Rectangle, bool) {
	b := img.Bounds()
	box := image.Rectangle{Min: b.Max, Max: b.Min}
	found := false
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if !features.IsInk(img.Pix[img.PixOffset(x, y)]) {
				continue
			}
			found = true
			box.Min.X = min(box.Min.X, x)
			box.Min.Y = min(box.Min.Y, y)
			box.Max.X = max(box.Max.X, x+1)
			box.Max.Y = max(box.Max.Y, y+1)
		}
	}
	return box, found
}

// squareCrop copies box out of img onto a zero square whose side is the
// longer side of box. The shorter dimension is padded on both sides; odd
// differences put the extra row or column after the symbol.
func squareCrop(img *image.Gray, box image.Rectangle) *image.Gray {
	w, h := box.Dx(), box.Dy()
	side := max(w, h)
	square := image.NewGray(image.Rect(0, 0, side, side))

	offset := image.Pt((side-w)/2, (side-h)/2)
	draw.Draw(square, image.Rectangle{Min: offset, Max: offset.Add(box.Size())}, img, box.Min, draw.Src)
	return square
}

// place copies src into the middle of canvas using integer-division offsets.
func place(canvas, src *image.Gray) {
	cb, sb := canvas.Bounds(), src.Bounds()
	offset := image.Pt((cb.Dx()-sb.Dx())/2, (cb.Dy()-sb.Dy())/2)
	draw.Draw(canvas, sb.Sub(sb.Min).Add(offset), src, sb.Min, draw.Src)
}
