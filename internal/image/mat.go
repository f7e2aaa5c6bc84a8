package image

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// MatFromGray copies a grayscale image into a single-channel 8-bit Mat.
func MatFromGray(g *image.Gray) (gocv.Mat, error) {
	b := g.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return gocv.NewMat(), fmt.Errorf("invalid image dimensions: %dx%d", w, h)
	}

	data := make([]byte, w*h)
	for y := 0; y < h; y++ {
		off := g.PixOffset(b.Min.X, b.Min.Y+y)
		copy(data[y*w:(y+1)*w], g.Pix[off:off+w])
	}

	m, err := gocv.NewMatFromBytes(h, w, gocv.MatTypeCV8UC1, data)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("failed to create mat: %w", err)
	}
	return m, nil
}

// GrayFromMat copies a single-channel 8-bit Mat into a new grayscale image.
func GrayFromMat(m gocv.Mat) (*image.Gray, error) {
	if m.Empty() {
		return nil, fmt.Errorf("empty mat")
	}
	if m.Type() != gocv.MatTypeCV8UC1 {
		return nil, fmt.Errorf("unsupported mat type %v, want CV_8UC1", m.Type())
	}

	src := m
	if !m.IsContinuous() {
		src = m.Clone()
		defer src.Close()
	}

	w, h := src.Cols(), src.Rows()
	g := image.NewGray(image.Rect(0, 0, w, h))
	copy(g.Pix, src.ToBytes())
	return g, nil
}

// ResizeToWorking scales src to the working resolution with area
// interpolation. The caller owns the returned Mat.
func ResizeToWorking(src gocv.Mat, width, height int) gocv.Mat {
	dst := gocv.NewMat()
	gocv.Resize(src, &dst, image.Pt(width, height), 0, 0, gocv.InterpolationArea)
	return dst
}
