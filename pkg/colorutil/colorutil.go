// Package colorutil draws debug overlays on top of puzzle images.
package colorutil

import (
	"image"
	"image/color"
	"image/draw"

	"sudoku-reader/pkg/geometry"

	"github.com/disintegration/imaging"
)

// Overlay colors.
var (
	Black   = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Red     = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	Green   = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	Cyan    = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	Magenta = color.RGBA{R: 255, G: 0, B: 255, A: 255}
)

// Canvas returns a color copy of img, suitable for drawing on.
func Canvas(img image.Image) *image.NRGBA {
	return imaging.Clone(img)
}

// DrawLine draws a line between two points using Bresenham's algorithm.
// Pixels outside dst are skipped.
func DrawLine(dst draw.Image, from, to image.Point, col color.Color, thickness int) {
	bounds := dst.Bounds()
	x1, y1, x2, y2 := from.X, from.Y, to.X, to.Y

	dx := x2 - x1
	dy := y2 - y1
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	half := thickness / 2

	for {
		for t := -half; t <= half; t++ {
			for s := -half; s <= half; s++ {
				p := image.Pt(x1+s, y1+t)
				if p.In(bounds) {
					dst.Set(p.X, p.Y, col)
				}
			}
		}

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawRect outlines r. Max is exclusive, as everywhere in image.
func DrawRect(dst draw.Image, r image.Rectangle, col color.Color, thickness int) {
	if r.Empty() {
		return
	}
	ul := r.Min
	lr := r.Max.Sub(image.Pt(1, 1))
	DrawPolygon(dst, []image.Point{ul, {lr.X, ul.Y}, lr, {ul.X, lr.Y}}, col, thickness)
}

// DrawPolygon outlines a closed polygon.
func DrawPolygon(dst draw.Image, pts []image.Point, col color.Color, thickness int) {
	for i := range pts {
		DrawLine(dst, pts[i], pts[(i+1)%len(pts)], col, thickness)
	}
}

// DrawMarker fills a disc of the given radius around center.
func DrawMarker(dst draw.Image, center image.Point, radius int, col color.Color) {
	r := image.Rect(center.X-radius, center.Y-radius, center.X+radius+1, center.Y+radius+1).Intersect(dst.Bounds())
	r2 := radius * radius
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			dx, dy := x-center.X, y-center.Y
			if dx*dx+dy*dy <= r2 {
				dst.Set(x, y, col)
			}
		}
	}
}

// DrawQuadrangle outlines q and marks its corners.
func DrawQuadrangle(dst draw.Image, q geometry.Quadrangle, outline, corner color.Color, thickness int) {
	var pts []image.Point
	for _, p := range q.Points() {
		pts = append(pts, image.Pt(p.X, p.Y))
	}
	DrawPolygon(dst, pts, outline, thickness)
	for _, p := range pts {
		DrawMarker(dst, p, 2*thickness+1, corner)
	}
}
