package ocr

import (
	"fmt"

	"sudoku-reader/internal/extract"
	"sudoku-reader/internal/solver"
)

// ReadBoard classifies every symbol cell and assembles the puzzle. Cells
// without a symbol stay blank.
func ReadBoard(results []extract.Result, c Classifier) (solver.Board, error) {
	var b solver.Board
	if len(results) != solver.Size*solver.Size {
		return b, fmt.Errorf("expected %d cells, got %d", solver.Size*solver.Size, len(results))
	}

	for _, r := range results {
		if !r.IsSymbol {
			continue
		}
		v, err := c.Classify(r.Canvas)
		if err != nil {
			return b, fmt.Errorf("cell %d,%d: %w", r.Row, r.Col, err)
		}
		b[r.Row][r.Col] = v
	}
	return b, nil
}
