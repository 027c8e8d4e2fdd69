// Package sudoku implements 9x9 sudoku as a search space.
//
// Each action fills one empty cell. Actions only offer values that keep the
// board valid, and they always target the empty cell with the fewest such
// values, so the branching factor stays small and every reachable board is a
// valid partial solution.
package sudoku

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

// ErrInvalidBoard indicates malformed puzzle text or conflicting givens.
var ErrInvalidBoard = errors.New("invalid sudoku board")

// Board is a 9x9 grid indexed [row][col]; 0 marks an empty cell.
type Board [9][9]uint8

// Set places Value in the cell at Row, Col (all zero-based except Value).
type Set struct {
	Row, Col int
	Value    uint8
}

func (s Set) String() string {
	return fmt.Sprintf("r%dc%d=%d", s.Row+1, s.Col+1, s.Value)
}

// allValues has bits 1 through 9 set.
const allValues uint16 = 0x3FE

// Parse reads a board from text: 81 cells in row-major order, where '1'-'9'
// are givens and '.', '0' or '_' are empty. Whitespace and the separators
// '|', '-' and '+' are ignored, so both a single 81-character line and a
// drawn 9-line grid are accepted.
func Parse(s string) (Board, error) {
	var b Board
	n := 0
	for _, ch := range s {
		var v uint8
		switch {
		case ch >= '1' && ch <= '9':
			v = uint8(ch - '0')
		case ch == '.' || ch == '0' || ch == '_':
			v = 0
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '|' || ch == '-' || ch == '+':
			continue
		default:
			return Board{}, fmt.Errorf("%w: unexpected character %q", ErrInvalidBoard, ch)
		}
		if n == 81 {
			return Board{}, fmt.Errorf("%w: more than 81 cells", ErrInvalidBoard)
		}
		b[n/9][n%9] = v
		n++
	}
	if n != 81 {
		return Board{}, fmt.Errorf("%w: got %d cells, want 81", ErrInvalidBoard, n)
	}
	if !b.Valid() {
		return Board{}, fmt.Errorf("%w: givens repeat a value in a row, column or box", ErrInvalidBoard)
	}
	return b, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Board {
	b, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return b
}

func box(row, col int) int {
	return (row/3)*3 + col/3
}

// Valid reports whether no value repeats within a row, column or box.
// Empty cells are ignored.
func (b Board) Valid() bool {
	var rows, cols, boxes [9]uint16
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			v := b[r][c]
			if v == 0 {
				continue
			}
			if v > 9 {
				return false
			}
			m := uint16(1) << v
			bx := box(r, c)
			if rows[r]&m != 0 || cols[c]&m != 0 || boxes[bx]&m != 0 {
				return false
			}
			rows[r] |= m
			cols[c] |= m
			boxes[bx] |= m
		}
	}
	return true
}

// Full reports whether every cell holds a value.
func (b Board) Full() bool {
	for r := range b {
		for _, v := range b[r] {
			if v == 0 {
				return false
			}
		}
	}
	return true
}

// Candidates returns the bit mask of values (bit v for value v) that can be
// placed at row, col without a conflict. It is 0 for a filled cell.
func (b Board) Candidates(row, col int) uint16 {
	if b[row][col] != 0 {
		return 0
	}
	used := uint16(0)
	for i := 0; i < 9; i++ {
		used |= 1<<b[row][i] | 1<<b[i][col]
	}
	r0, c0 := (row/3)*3, (col/3)*3
	for r := r0; r < r0+3; r++ {
		for c := c0; c < c0+3; c++ {
			used |= 1 << b[r][c]
		}
	}
	return allValues &^ used
}

// Actions returns one Set per candidate value of the most constrained empty
// cell, in ascending value order. It returns nil when the board is full or
// when some empty cell has no candidate left.
func (b Board) Actions() []Set {
	bestRow, bestCol := -1, -1
	var bestMask uint16
	bestCount := 10

	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			if b[r][c] != 0 {
				continue
			}
			mask := b.Candidates(r, c)
			count := bits.OnesCount16(mask)
			if count == 0 {
				return nil
			}
			if count < bestCount {
				bestRow, bestCol, bestMask, bestCount = r, c, mask, count
			}
		}
	}
	if bestRow < 0 {
		return nil
	}

	actions := make([]Set, 0, bestCount)
	for v := uint8(1); v <= 9; v++ {
		if bestMask&(1<<v) != 0 {
			actions = append(actions, Set{Row: bestRow, Col: bestCol, Value: v})
		}
	}
	return actions
}

// Apply returns the board with s placed. It panics if the cell is outside the
// grid or already filled, or if the value is not 1..9.
func (b Board) Apply(s Set) Board {
	if s.Row < 0 || s.Row > 8 || s.Col < 0 || s.Col > 8 {
		panic(fmt.Sprintf("sudoku: cell %d,%d is outside the grid", s.Row, s.Col))
	}
	if s.Value < 1 || s.Value > 9 {
		panic(fmt.Sprintf("sudoku: value %d is not 1..9", s.Value))
	}
	if b[s.Row][s.Col] != 0 {
		panic(fmt.Sprintf("sudoku: %v targets a filled cell", s))
	}
	b[s.Row][s.Col] = s.Value
	return b
}

// Empty returns the number of empty cells.
func (b Board) Empty() int {
	n := 0
	for r := range b {
		for _, v := range b[r] {
			if v == 0 {
				n++
			}
		}
	}
	return n
}

// String renders b as 81 characters, '.' for empty cells.
func (b Board) String() string {
	var sb strings.Builder
	sb.Grow(81)
	for r := range b {
		for _, v := range b[r] {
			if v == 0 {
				sb.WriteByte('.')
			} else {
				sb.WriteByte('0' + v)
			}
		}
	}
	return sb.String()
}

// Grid renders b as nine lines with box separators.
func (b Board) Grid() string {
	var sb strings.Builder
	for r := range b {
		if r == 3 || r == 6 {
			sb.WriteString("------+-------+------\n")
		}
		for c, v := range b[r] {
			if c == 3 || c == 6 {
				sb.WriteString("| ")
			}
			if v == 0 {
				sb.WriteByte('.')
			} else {
				sb.WriteByte('0' + v)
			}
			if c < 8 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Space is a sudoku instance. A goal is a full, valid board.
type Space struct {
	puzzle Board
}

// NewSpace returns the space that completes puzzle.
func NewSpace(puzzle Board) Space {
	return Space{puzzle: puzzle}
}

// InitialState implements search.Space.
func (s Space) InitialState() Board {
	return s.puzzle
}

// IsGoal implements search.Space.
func (s Space) IsGoal(b Board) bool {
	return b.Full() && b.Valid()
}
