// Package digit decides whether an extracted cell feature is a printed
// symbol and normalizes it onto a fixed-size canvas.
package digit

import (
	"image"

	"sudoku-reader/internal/features"
)

const (
	// MinCenterInk is the ink needed inside the middle block of a 3x3 split.
	MinCenterInk = 5

	// MinTotalInk is the ink needed over the whole feature.
	MinTotalInk = 25
)

// IsNumber reports whether a feature looks like a symbol: the middle block of
// a 3x3 split holds at least MinCenterInk ink pixels and the whole feature at
// least MinTotalInk.
func IsNumber(feature *image.Gray) bool {
	return centerInk(feature) >= MinCenterInk && countInk(feature, feature.Bounds()) >= MinTotalInk
}

// centerInk counts ink in the middle block [w/3, 2w/3) x [h/3, 2h/3).
// Block sides use integer division, so remainders fall into the last row and
// column of blocks. This is not the ninths split 3*(w/9) .. 6*(w/9): on a
// 30 pixel side the block is [10,20), not [9,18).
func centerInk(feature *image.Gray) int {
	b := feature.Bounds()
	bw, bh := b.Dx()/3, b.Dy()/3
	block := image.Rect(b.Min.X+bw, b.Min.Y+bh, b.Min.X+2*bw, b.Min.Y+2*bh)
	return countInk(feature, block)
}

func countInk(img *image.Gray, r image.Rectangle) int {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := img.Pix[img.PixOffset(r.Min.X, y):]
		for x := 0; x < r.Dx(); x++ {
			if features.IsInk(row[x]) {
				n++
			}
		}
	}
	return n
}
