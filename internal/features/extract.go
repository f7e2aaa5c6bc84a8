package features

import (
	"fmt"
	"image"
)

// Extract returns a copy of cell keeping only the pixels labelled group.
// Every other pixel is zero; NoFeature yields an all-zero image.
func Extract(cell *image.Gray, labels *LabelMap, group int) (*image.Gray, error) {
	if !labels.Matches(cell) {
		b := cell.Bounds()
		return nil, fmt.Errorf("%w: cell %dx%d, labels %dx%d",
			ErrShapeMismatch, b.Dx(), b.Dy(), labels.Width, labels.Height)
	}

	b := cell.Bounds()
	w, h := labels.Width, labels.Height
	feature := image.NewGray(image.Rect(0, 0, w, h))
	if group < 0 {
		return feature, nil
	}

	for y := 0; y < h; y++ {
		src := cell.Pix[cell.PixOffset(b.Min.X, b.Min.Y+y):]
		dst := feature.Pix[y*feature.Stride:]
		for x := 0; x < w; x++ {
			if labels.At(x, y) == group {
				dst[x] = src[x]
			}
		}
	}
	return feature, nil
}
