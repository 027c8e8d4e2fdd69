package sudoku

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dshills/statesearch/search"
	"github.com/dshills/statesearch/search/emit"
)

const puzzle = `
53..7....
6..195...
.98....6.
8...6...3
4..8.3..1
7...2...6
.6....28.
...419..5
....8..79
`

const solution = "534678912672195348198342567859761423426853791713924856961537284287419635345286179"

func TestParse(t *testing.T) {
	b, err := Parse(puzzle)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if b[0][0] != 5 || b[0][2] != 0 || b[8][8] != 9 {
		t.Errorf("Parse placed cells wrong: %v", b)
	}
	if got := b.Empty(); got != 51 {
		t.Errorf("Empty() = %d, want 51", got)
	}

	grid, err := Parse(b.Grid())
	if err != nil {
		t.Fatalf("Parse(Grid()) failed: %v", err)
	}
	if grid != b {
		t.Error("Parse(Grid()) does not reproduce the board")
	}
	if single := MustParse(b.String()); single != b {
		t.Error("Parse(String()) does not reproduce the board")
	}

	for name, in := range map[string]string{
		"too short":      "53..7",
		"too long":       solution + "1",
		"bad character":  strings.Replace(solution, "5", "x", 1),
		"repeated given": "55" + strings.Repeat(".", 79),
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse(in); !errors.Is(err, ErrInvalidBoard) {
				t.Errorf("Parse error = %v, want ErrInvalidBoard", err)
			}
		})
	}
}

func TestBoard_Actions(t *testing.T) {
	full := MustParse(solution)
	if got := full.Actions(); got != nil {
		t.Errorf("Actions() on a full board = %v, want nil", got)
	}

	// Blank one cell: exactly one value fits.
	one := full
	one[4][4] = 0
	actions := one.Actions()
	if len(actions) != 1 || actions[0] != (Set{Row: 4, Col: 4, Value: 5}) {
		t.Errorf("Actions() = %v, want [r5c5=5]", actions)
	}

	// Row 0 holds 1..8 and the cell below its gap holds 9: the gap has no
	// candidate, so the board is a dead end.
	var dead Board
	for c := 0; c < 8; c++ {
		dead[0][c] = uint8(c + 1)
	}
	dead[1][8] = 9
	if !dead.Valid() {
		t.Fatal("dead-end board should still be valid")
	}
	if got := dead.Actions(); got != nil {
		t.Errorf("Actions() on a dead end = %v, want nil", got)
	}
	if result := search.DFS[Board, Set](NewSpace(dead)); result != nil {
		t.Errorf("DFS on a dead end = %v, want nil", result)
	}
}

func TestBoard_ActionsPickMostConstrainedCell(t *testing.T) {
	b := MustParse(puzzle)
	actions := b.Actions()
	if len(actions) == 0 {
		t.Fatal("Actions() returned nothing for an open puzzle")
	}

	cell := actions[0]
	want := b.Candidates(cell.Row, cell.Col)
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			if b[r][c] == 0 && popcount(b.Candidates(r, c)) < popcount(want) {
				t.Errorf("cell r%dc%d has fewer candidates than chosen %v", r+1, c+1, cell)
			}
		}
	}
	for _, a := range actions {
		if a.Row != cell.Row || a.Col != cell.Col {
			t.Errorf("actions target more than one cell: %v", actions)
		}
		if !b.Apply(a).Valid() {
			t.Errorf("action %v yields an invalid board", a)
		}
	}
}

func popcount(m uint16) int {
	n := 0
	for ; m != 0; m &= m - 1 {
		n++
	}
	return n
}

func TestBoard_ApplyPanics(t *testing.T) {
	b := MustParse(puzzle)
	for name, s := range map[string]Set{
		"filled cell":   {Row: 0, Col: 0, Value: 1},
		"outside grid":  {Row: 9, Col: 0, Value: 1},
		"value too big": {Row: 0, Col: 2, Value: 10},
		"zero value":    {Row: 0, Col: 2, Value: 0},
	} {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("Apply(%v) did not panic", s)
				}
			}()
			b.Apply(s)
		})
	}
}

func TestSolve(t *testing.T) {
	want := MustParse(solution)

	for _, strategy := range []search.Strategy{search.DepthFirst, search.BreadthFirst, search.ParallelDepthFirst} {
		t.Run(strategy.String(), func(t *testing.T) {
			events := emit.NewBufferedEmitter()
			engine, err := search.New[Board, Set](NewSpace(MustParse(puzzle)),
				search.WithStrategy(strategy),
				search.WithRunID("sudoku"),
				search.WithEmitter(events),
			)
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}

			result, err := engine.Run(context.Background())
			if err != nil {
				t.Fatalf("Run failed: %v", err)
			}
			if result == nil {
				t.Fatal("no solution found")
			}
			if result.EndState != want {
				t.Errorf("EndState =\n%s\nwant\n%s", result.EndState.Grid(), want.Grid())
			}
			if len(result.Path) != 51 {
				t.Errorf("len(Path) = %d, want 51 (one per empty cell)", len(result.Path))
			}

			// Every expanded board is a valid partial solution.
			expanded := events.GetHistoryWithFilter("sudoku", emit.HistoryFilter{Msg: emit.MsgNodeExpanded})
			for _, ev := range expanded {
				b, ok := ev.Meta["state"].(Board)
				if !ok {
					t.Fatalf("state meta has type %T, want Board", ev.Meta["state"])
				}
				if !b.Valid() {
					t.Errorf("expanded an invalid board at depth %d", ev.Depth)
				}
			}
		})
	}
}

func TestSolve_NearlyComplete(t *testing.T) {
	b := MustParse(solution)
	b[0][0], b[4][4], b[8][8] = 0, 0, 0

	result := search.BFS[Board, Set](NewSpace(b))
	if result == nil {
		t.Fatal("no solution found")
	}
	if len(result.Path) != 3 {
		t.Errorf("len(Path) = %d, want 3", len(result.Path))
	}
	if result.EndState != MustParse(solution) {
		t.Errorf("EndState = %v, want the solution", result.EndState)
	}
	if err := result.Verify(b); err != nil {
		t.Errorf("Verify failed: %v", err)
	}
}
