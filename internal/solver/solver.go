// Package solver validates and solves 9x9 puzzles by backtracking.
package solver

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// Size is the number of rows and columns.
	Size = 9

	// Blank marks an unfilled cell.
	Blank = 0

	box = 3
)

var (
	// ErrInvalidBoard is returned when the givens break a row, column or box rule.
	ErrInvalidBoard = errors.New("invalid board")

	// ErrUnsolvable is returned when no assignment completes the board.
	ErrUnsolvable = errors.New("board has no solution")
)

// Board is a puzzle grid indexed [row][col]. Values are 1..9 or Blank.
type Board [Size][Size]int

// Validate checks that every value is in range and that no digit repeats
// in a row, column or 3x3 box.
func (b Board) Validate() error {
	var rows, cols, boxes [Size][Size + 1]bool
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			v := b[r][c]
			if v == Blank {
				continue
			}
			if v < 1 || v > Size {
				return fmt.Errorf("%w: value %d at %d,%d", ErrInvalidBoard, v, r, c)
			}
			bx := (r/box)*box + c/box
			if rows[r][v] || cols[c][v] || boxes[bx][v] {
				return fmt.Errorf("%w: %d repeats at %d,%d", ErrInvalidBoard, v, r, c)
			}
			rows[r][v], cols[c][v], boxes[bx][v] = true, true, true
		}
	}
	return nil
}

// Solve fills the blanks of b. It returns the completed board and true, or
// b unchanged and false when b is invalid or has no solution.
func Solve(b Board) (Board, bool) {
	if b.Validate() != nil {
		return b, false
	}
	solved := b
	if !solved.fill(0) {
		return b, false
	}
	return solved, true
}

// SolveErr is Solve with the failure reason as an error.
func SolveErr(b Board) (Board, error) {
	if err := b.Validate(); err != nil {
		return b, err
	}
	solved, ok := Solve(b)
	if !ok {
		return b, ErrUnsolvable
	}
	return solved, nil
}

// fill assigns blanks from position pos onward in row-major order.
func (b *Board) fill(pos int) bool {
	for pos < Size*Size && b[pos/Size][pos%Size] != Blank {
		pos++
	}
	if pos == Size*Size {
		return true
	}

	r, c := pos/Size, pos%Size
	for v := 1; v <= Size; v++ {
		if !b.allows(r, c, v) {
			continue
		}
		b[r][c] = v
		if b.fill(pos + 1) {
			return true
		}
	}
	b[r][c] = Blank
	return false
}

// allows reports whether v can go at r,c without repeating.
func (b *Board) allows(r, c, v int) bool {
	for i := 0; i < Size; i++ {
		if b[r][i] == v || b[i][c] == v {
			return false
		}
	}
	br, bc := (r/box)*box, (c/box)*box
	for i := br; i < br+box; i++ {
		for j := bc; j < bc+box; j++ {
			if b[i][j] == v {
				return false
			}
		}
	}
	return true
}

// Blanks returns the number of unfilled cells.
func (b Board) Blanks() int {
	n := 0
	for r := range b {
		for c := range b[r] {
			if b[r][c] == Blank {
				n++
			}
		}
	}
	return n
}

// String renders the board with box separators; blanks print as '.'.
func (b Board) String() string {
	var sb strings.Builder
	for r := 0; r < Size; r++ {
		if r > 0 && r%box == 0 {
			sb.WriteString("------+-------+------\n")
		}
		for c := 0; c < Size; c++ {
			if c > 0 && c%box == 0 {
				sb.WriteString("| ")
			}
			if b[r][c] == Blank {
				sb.WriteByte('.')
			} else {
				sb.WriteByte(byte('0' + b[r][c]))
			}
			if c < Size-1 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Parse reads a board from 9 lines of 9 characters; '.', '0' and '_' are blank.
// Whitespace and '|' are ignored and lines made only of '-' and '+' are skipped.
func Parse(s string) (Board, error) {
	var b Board
	r := 0
	for _, line := range strings.Split(s, "\n") {
		line = strings.Map(func(c rune) rune {
			if c == ' ' || c == '\t' || c == '|' || c == '\r' {
				return -1
			}
			return c
		}, line)
		if line == "" || strings.Trim(line, "-+") == "" {
			continue
		}
		if r == Size {
			return b, fmt.Errorf("more than %d rows", Size)
		}
		if len(line) != Size {
			return b, fmt.Errorf("row %d: want %d cells, got %d", r, Size, len(line))
		}
		for c, ch := range line {
			switch {
			case ch == '.' || ch == '0' || ch == '_':
				b[r][c] = Blank
			case ch >= '1' && ch <= '9':
				b[r][c] = int(ch - '0')
			default:
				return b, fmt.Errorf("row %d col %d: unexpected %q", r, c, ch)
			}
		}
		r++
	}
	if r != Size {
		return b, fmt.Errorf("want %d rows, got %d", Size, r)
	}
	return b, nil
}
