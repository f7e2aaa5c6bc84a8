package main

import (
	"fmt"
	"image"
	"path/filepath"

	"sudoku-reader/internal/board"
	"sudoku-reader/internal/extract"
	imgutil "sudoku-reader/internal/image"
	"sudoku-reader/pkg/colorutil"
)

// dumpExtraction writes the intermediate images of one run into dir:
// corners.png (working photo with the located grid), grid.png (rectified
// grid with cell bounds) and one cell_R_C.png per canvas.
func dumpExtraction(dir string, photo *image.Gray, x *extract.Extraction, expandRatio float64) error {
	overlay := colorutil.Canvas(photo)
	colorutil.DrawQuadrangle(overlay, x.Corners, colorutil.Green, colorutil.Red, 3)
	if err := imgutil.SavePNG(filepath.Join(dir, "corners.png"), overlay); err != nil {
		return err
	}

	grid := colorutil.Canvas(x.Rectified)
	b := x.Rectified.Bounds()
	regions, err := board.Layout(b.Dx(), b.Dy(), expandRatio)
	if err != nil {
		return err
	}
	for _, r := range regions {
		colorutil.DrawRect(grid, r.Bounds, colorutil.Cyan, 1)
		colorutil.DrawMarker(grid, r.Core.Min, 1, colorutil.Magenta)
	}
	if err := imgutil.SavePNG(filepath.Join(dir, "grid.png"), grid); err != nil {
		return err
	}

	for _, r := range x.Results {
		name := filepath.Join(dir, fmt.Sprintf("cell_%d_%d.png", r.Row, r.Col))
		if err := imgutil.SavePNG(name, r.Canvas); err != nil {
			return err
		}
	}
	return nil
}
