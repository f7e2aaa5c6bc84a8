// Package extract turns a photo of a puzzle into 81 normalized cell canvases.
package extract

import (
	"fmt"
	"image"

	"sudoku-reader/internal/digit"
	"sudoku-reader/internal/features"
)

// CellState tracks how far a cell has progressed through per-cell processing.
// States only move forward; Centered and Blank are terminal.
type CellState int

const (
	StateRaw CellState = iota
	StateGrouped
	StateCenterSelected
	StateExtracted
	StateValidated
	StateCentered // symbol found and placed on the canvas
	StateBlank    // no symbol; canvas is all zero
)

func (s CellState) String() string {
	switch s {
	case StateRaw:
		return "raw"
	case StateGrouped:
		return "grouped"
	case StateCenterSelected:
		return "center-selected"
	case StateExtracted:
		return "extracted"
	case StateValidated:
		return "validated"
	case StateCentered:
		return "centered"
	case StateBlank:
		return "blank"
	default:
		return "unknown"
	}
}

// Result is the outcome for one cell.
type Result struct {
	Index    int // row-major position, Row*9 + Col
	Row, Col int
	Canvas   *image.Gray
	IsSymbol bool
	State    CellState
}

// ProcessCell isolates the ink group nearest the center of a cell, decides
// whether it is a symbol and, if so, centers it on a dim-sized canvas.
// Non-symbol cells get an all-zero canvas. Index, Row and Col are left for
// the caller to fill.
func ProcessCell(cell *image.Gray, dim image.Point) (Result, error) {
	res := Result{State: StateRaw}

	labels := features.Group(cell)
	res.State = StateGrouped

	group, err := features.CenterGroup(cell, labels)
	if err != nil {
		return res, fmt.Errorf("select center group: %w", err)
	}
	res.State = StateCenterSelected

	feature, err := features.Extract(cell, labels, group)
	if err != nil {
		return res, fmt.Errorf("extract feature: %w", err)
	}
	res.State = StateExtracted

	res.IsSymbol = digit.IsNumber(feature)
	res.State = StateValidated

	if res.IsSymbol {
		res.Canvas = digit.Center(feature, dim)
		res.State = StateCentered
	} else {
		res.Canvas = image.NewGray(image.Rect(0, 0, dim.X, dim.Y))
		res.State = StateBlank
	}
	return res, nil
}
