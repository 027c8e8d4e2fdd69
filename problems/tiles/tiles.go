// Package tiles implements the 3x3 sliding tile puzzle (the 8-puzzle) as a
// search space.
//
// A Board holds the tiles 1 through 8 and one empty cell, stored as 0. A Move
// names the direction the empty cell travels; the tile on that side slides
// into the gap.
package tiles

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidBoard indicates a board that is not a permutation of 0..8.
var ErrInvalidBoard = errors.New("invalid tile board")

// Board is a 3x3 grid indexed [row][col]. Boards are values and compare with ==.
type Board [3][3]uint8

// Solved is the goal configuration:
//
//	1 2 3
//	4 5 6
//	7 8 _
var Solved = Board{{1, 2, 3}, {4, 5, 6}, {7, 8, 0}}

// Move is a direction for the empty cell.
type Move int

const (
	Left Move = iota
	Right
	Up
	Down
)

var moveNames = [...]string{"Left", "Right", "Up", "Down"}

func (m Move) String() string {
	if m < Left || m > Down {
		return fmt.Sprintf("Move(%d)", int(m))
	}
	return moveNames[m]
}

// offset returns the column and row delta of m.
func (m Move) offset() (dx, dy int) {
	switch m {
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	}
	panic(fmt.Sprintf("tiles: unknown move %d", int(m)))
}

// NewBoard validates cells and returns them as a Board. Exactly one cell must
// be 0 and the others must hold 1..8 once each.
func NewBoard(cells [3][3]uint8) (Board, error) {
	var seen [9]bool
	for r := range cells {
		for c, v := range cells[r] {
			if v > 8 {
				return Board{}, fmt.Errorf("%w: tile %d at row %d col %d is out of range", ErrInvalidBoard, v, r, c)
			}
			if seen[v] {
				if v == 0 {
					return Board{}, fmt.Errorf("%w: more than one empty cell", ErrInvalidBoard)
				}
				return Board{}, fmt.Errorf("%w: tile %d appears twice", ErrInvalidBoard, v)
			}
			seen[v] = true
		}
	}
	return Board(cells), nil
}

// ParseBoard reads a board written as three rows of three digits separated by
// '/', e.g. "123/456/708". The empty cell may be written as '0' or '_'.
// Whitespace is ignored.
func ParseBoard(s string) (Board, error) {
	compact := strings.Join(strings.Fields(s), "")
	rows := strings.Split(compact, "/")
	if len(rows) != 3 {
		return Board{}, fmt.Errorf("%w: want 3 rows separated by '/', got %q", ErrInvalidBoard, s)
	}

	var cells [3][3]uint8
	for r, row := range rows {
		if len(row) != 3 {
			return Board{}, fmt.Errorf("%w: row %d has %d cells, want 3", ErrInvalidBoard, r, len(row))
		}
		for c := 0; c < 3; c++ {
			switch ch := row[c]; {
			case ch == '_':
				cells[r][c] = 0
			case ch >= '0' && ch <= '8':
				cells[r][c] = ch - '0'
			default:
				return Board{}, fmt.Errorf("%w: unexpected character %q", ErrInvalidBoard, ch)
			}
		}
	}
	return NewBoard(cells)
}

// MustBoard is like ParseBoard but panics on error. Intended for tests and
// literals.
func MustBoard(s string) Board {
	b, err := ParseBoard(s)
	if err != nil {
		panic(err)
	}
	return b
}

// empty returns the column and row of the empty cell.
func (b Board) empty() (x, y int) {
	for r := range b {
		for c, v := range b[r] {
			if v == 0 {
				return c, r
			}
		}
	}
	panic("tiles: board has no empty cell")
}

// Actions returns the legal moves in the order Left, Right, Up, Down.
func (b Board) Actions() []Move {
	x, y := b.empty()
	moves := make([]Move, 0, 4)
	if x > 0 {
		moves = append(moves, Left)
	}
	if x < 2 {
		moves = append(moves, Right)
	}
	if y > 0 {
		moves = append(moves, Up)
	}
	if y < 2 {
		moves = append(moves, Down)
	}
	return moves
}

// Apply returns the board after moving the empty cell in direction m.
// It panics if the move would leave the grid.
func (b Board) Apply(m Move) Board {
	x, y := b.empty()
	dx, dy := m.offset()
	nx, ny := x+dx, y+dy
	if nx < 0 || nx > 2 || ny < 0 || ny > 2 {
		panic(fmt.Sprintf("tiles: move %v is illegal with the empty cell at row %d col %d", m, y, x))
	}
	b[y][x], b[ny][nx] = b[ny][nx], 0
	return b
}

// Solvable reports whether Solved is reachable from b. On a 3x3 grid that
// holds exactly when the tiles, read row by row, have an even number of
// inversions.
func (b Board) Solvable() bool {
	var flat []uint8
	for r := range b {
		for _, v := range b[r] {
			if v != 0 {
				flat = append(flat, v)
			}
		}
	}
	inversions := 0
	for i := range flat {
		for j := i + 1; j < len(flat); j++ {
			if flat[i] > flat[j] {
				inversions++
			}
		}
	}
	return inversions%2 == 0
}

// String renders b in the ParseBoard format, e.g. "123/456/780".
func (b Board) String() string {
	var sb strings.Builder
	for r := range b {
		if r > 0 {
			sb.WriteByte('/')
		}
		for _, v := range b[r] {
			sb.WriteByte('0' + v)
		}
	}
	return sb.String()
}

// Grid renders b as three lines with the empty cell left blank.
func (b Board) Grid() string {
	var sb strings.Builder
	for r := range b {
		for c, v := range b[r] {
			if c > 0 {
				sb.WriteByte(' ')
			}
			if v == 0 {
				sb.WriteByte(' ')
			} else {
				sb.WriteByte('0' + v)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Space is a tile puzzle instance: a start board and the Solved goal.
type Space struct {
	start Board
}

// NewSpace returns the space that searches from start to Solved.
func NewSpace(start Board) Space {
	return Space{start: start}
}

// InitialState implements search.Space.
func (s Space) InitialState() Board {
	return s.start
}

// IsGoal implements search.Space.
func (s Space) IsGoal(b Board) bool {
	return b == Solved
}
