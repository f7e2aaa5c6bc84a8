package features

import (
	"fmt"
	"image"
)

// spiral legs: right, down, left, up
var spiralDirections = [4]image.Point{{X: 1}, {Y: 1}, {X: -1}, {Y: -1}}

// CenterGroup returns the id of the ink group nearest the cell center.
//
// The center pixel (height/2, width/2) is tested first. Otherwise square
// rings k = 1, 2, ... are walked clockwise from their upper-left corner,
// each as four legs of 2k pixels, and the first ink pixel met decides.
// Rings stop before they would leave the cell. NoFeature is returned when
// no ink is reached.
func CenterGroup(cell *image.Gray, labels *LabelMap) (int, error) {
	if !labels.Matches(cell) {
		b := cell.Bounds()
		return NoFeature, fmt.Errorf("%w: cell %dx%d, labels %dx%d",
			ErrShapeMismatch, b.Dx(), b.Dy(), labels.Width, labels.Height)
	}

	w, h := labels.Width, labels.Height
	if w == 0 || h == 0 {
		return NoFeature, nil
	}

	cx, cy := w/2, h/2
	if g := labels.At(cx, cy); g != Background {
		return g, nil
	}

	rings := min(cx, cy, w-1-cx, h-1-cy)
	for k := 1; k <= rings; k++ {
		x, y := cx-k, cy-k
		for _, d := range spiralDirections {
			for i := 0; i < 2*k; i++ {
				if g := labels.At(x, y); g != Background {
					return g, nil
				}
				x += d.X
				y += d.Y
			}
		}
	}

	return NoFeature, nil
}
