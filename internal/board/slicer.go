// Package board splits a rectified puzzle grid into its 81 cells.
package board

import (
	"errors"
	"fmt"
	"image"

	imgutil "sudoku-reader/internal/image"
)

const (
	// GridSize is the number of rows and columns of the puzzle.
	GridSize = 9

	// CellCount is the number of cells in the puzzle.
	CellCount = GridSize * GridSize

	// DefaultExpandRatio grows interior cell edges toward their neighbours so
	// a symbol straddling a grid line is not cut in half.
	DefaultExpandRatio = 1.05
)

var (
	// ErrGridTooSmall is returned when the grid is narrower than GridSize pixels.
	ErrGridTooSmall = errors.New("grid smaller than one pixel per cell")

	// ErrInvalidExpandRatio is returned for expansion ratios not above 1.
	ErrInvalidExpandRatio = errors.New("expand ratio must be greater than 1")
)

// Region locates one cell in grid coordinates.
type Region struct {
	Row, Col int             // 0-based position in the puzzle
	Core     image.Rectangle // unexpanded area; cores tile the grid exactly
	Bounds   image.Rectangle // area after expansion
}

// Index returns the row-major position of the cell.
func (r Region) Index() int {
	return r.Row*GridSize + r.Col
}

// Cell is a region together with a private copy of its pixels.
type Cell struct {
	Region
	Image *image.Gray
}

// Layout computes the 81 cell regions, in row-major order, for a
// width x height grid.
//
// The base cell side is floor(min(width, height) / 9). Edges only expand
// toward the interior of the grid: the top edge of the first and last rows,
// the bottom edge of the last row, the left edge of the first column and the
// right edge of the last column stay put. Rows and columns are not symmetric:
// the last column still expands its left edge while the last row keeps its
// top edge. The last row and column end exactly at the image edge.
func Layout(width, height int, expandRatio float64) ([]Region, error) {
	if expandRatio <= 1 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExpandRatio, expandRatio)
	}

	size := min(width, height) / GridSize
	if size == 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrGridTooSmall, width, height)
	}

	shrink := int(float64(size)/expandRatio) - size
	grow := int(float64(size)*expandRatio) - size
	last := GridSize - 1

	regions := make([]Region, 0, CellCount)
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			core := image.Rect(col*size, row*size, (col+1)*size, (row+1)*size)
			if row == last {
				core.Max.Y = height
			}
			if col == last {
				core.Max.X = width
			}

			bounds := core
			if row != 0 && row != last {
				bounds.Min.Y += shrink
			}
			if row != last {
				bounds.Max.Y += grow
			}
			if col != 0 {
				bounds.Min.X += shrink
			}
			if col != last {
				bounds.Max.X += grow
			}

			regions = append(regions, Region{
				Row:    row,
				Col:    col,
				Core:   core,
				Bounds: bounds.Intersect(image.Rect(0, 0, width, height)),
			})
		}
	}

	return regions, nil
}

// Slice cuts a rectified grid into 81 overlapping cells in row-major order.
// Each cell owns a copy of its pixels.
func Slice(grid *image.Gray, expandRatio float64) ([]Cell, error) {
	b := grid.Bounds()
	regions, err := Layout(b.Dx(), b.Dy(), expandRatio)
	if err != nil {
		return nil, err
	}

	cells := make([]Cell, len(regions))
	for i, r := range regions {
		cells[i] = Cell{
			Region: r,
			Image:  imgutil.Crop(grid, r.Bounds.Add(b.Min)),
		}
	}
	return cells, nil
}
