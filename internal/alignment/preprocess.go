// Package alignment locates the puzzle grid inside a photo and rectifies it
// into an axis-aligned square.
package alignment

import (
	"image"

	"gocv.io/x/gocv"
)

// NormalizeParams controls the ink/no-ink normalization of a grayscale photo.
type NormalizeParams struct {
	BlurKernel     int     // Gaussian kernel side, odd
	ThresholdBlock int     // adaptive threshold neighbourhood, odd
	ThresholdC     float32 // constant subtracted from the weighted mean
	LineThickness  int     // dilation kernel side
}

// DefaultNormalizeParams returns the normalization used for grid photos with
// the given dilation thickness.
func DefaultNormalizeParams(lineThickness int) NormalizeParams {
	return NormalizeParams{
		BlurKernel:     9,
		ThresholdBlock: 11,
		ThresholdC:     4,
		LineThickness:  lineThickness,
	}
}

// Normalize blurs, adaptively thresholds, inverts and dilates a grayscale
// image so that ink becomes bright on a dark background.
// The caller owns the returned Mat.
func Normalize(src gocv.Mat, p NormalizeParams) gocv.Mat {
	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(src, &blurred, image.Pt(p.BlurKernel, p.BlurKernel), 0, 0, gocv.BorderDefault)

	binary := gocv.NewMat()
	defer binary.Close()
	gocv.AdaptiveThreshold(blurred, &binary, 255, gocv.AdaptiveThresholdGaussian,
		gocv.ThresholdBinary, p.ThresholdBlock, p.ThresholdC)

	// Ink becomes foreground
	gocv.BitwiseNot(binary, &binary)

	thickness := p.LineThickness
	if thickness < 1 {
		thickness = 1
	}
	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(thickness, thickness))
	defer kernel.Close()

	dst := gocv.NewMat()
	gocv.Dilate(binary, &dst, kernel)
	return dst
}
