package tiles

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/dshills/statesearch/search"
)

func TestParseBoard(t *testing.T) {
	tests := []struct {
		in      string
		want    Board
		wantErr bool
	}{
		{in: "123/456/708", want: Board{{1, 2, 3}, {4, 5, 6}, {7, 0, 8}}},
		{in: "123/456/78_", want: Solved},
		{in: " 123 / 456 / 780 ", want: Solved},
		{in: "123/456", wantErr: true},
		{in: "1234/56/780", wantErr: true},
		{in: "123/456/789", wantErr: true},
		{in: "123/406/780", wantErr: true},
		{in: "113/456/780", wantErr: true},
		{in: "12x/456/780", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBoard(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidBoard) {
					t.Errorf("ParseBoard(%q) error = %v, want ErrInvalidBoard", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseBoard(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseBoard(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMustBoard_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustBoard of an invalid board did not panic")
		}
	}()
	MustBoard("000/000/000")
}

func TestBoard_ActionsAndApply(t *testing.T) {
	b := MustBoard("123/456/708")

	if got := b.Actions(); !reflect.DeepEqual(got, []Move{Left, Right, Up}) {
		t.Errorf("Actions() = %v, want [Left Right Up]", got)
	}

	if got := b.Apply(Right); got != Solved {
		t.Errorf("Apply(Right) = %v, want %v", got, Solved)
	}
	if got := b.Apply(Left); got != MustBoard("123/456/078") {
		t.Errorf("Apply(Left) = %v, want 123/456/078", got)
	}
	if got := b.Apply(Up); got != MustBoard("123/406/758") {
		t.Errorf("Apply(Up) = %v, want 123/406/758", got)
	}
	if b != MustBoard("123/456/708") {
		t.Error("Apply modified the receiver")
	}

	if got := MustBoard("012/345/678").Actions(); !reflect.DeepEqual(got, []Move{Right, Down}) {
		t.Errorf("corner Actions() = %v, want [Right Down]", got)
	}
}

func TestBoard_ApplyPanics(t *testing.T) {
	t.Run("illegal move", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("Apply(Down) from the bottom row did not panic")
			}
		}()
		MustBoard("123/456/708").Apply(Down)
	})

	t.Run("no empty cell", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("Actions on a board without an empty cell did not panic")
			}
		}()
		Board{{1, 2, 3}, {4, 5, 6}, {7, 8, 8}}.Actions()
	})
}

func TestBoard_Render(t *testing.T) {
	b := MustBoard("123/456/708")
	if got := b.String(); got != "123/456/708" {
		t.Errorf("String() = %q, want 123/456/708", got)
	}
	if got, want := b.Grid(), "1 2 3\n4 5 6\n7   8\n"; got != want {
		t.Errorf("Grid() = %q, want %q", got, want)
	}
	if got := Down.String(); got != "Down" {
		t.Errorf("Down.String() = %q", got)
	}
}

func TestBoard_Solvable(t *testing.T) {
	if !MustBoard("123/456/708").Solvable() {
		t.Error("one move from solved reported unsolvable")
	}
	if MustBoard("213/456/780").Solvable() {
		t.Error("swapped tiles reported solvable")
	}
}

func TestSearch_BFS(t *testing.T) {
	tests := []struct {
		board string
		want  []Move
	}{
		{"123/456/780", []Move{}},
		{"123/456/708", []Move{Right}},
		{"123/405/786", []Move{Right, Down}},
	}

	for _, tt := range tests {
		t.Run(tt.board, func(t *testing.T) {
			space := NewSpace(MustBoard(tt.board))
			result := search.BFS[Board, Move](space)
			if result == nil {
				t.Fatal("BFS returned nil, want a solution")
			}
			if !reflect.DeepEqual(result.Path, tt.want) {
				t.Errorf("Path = %v, want %v", result.Path, tt.want)
			}
			if !space.IsGoal(result.EndState) {
				t.Errorf("EndState %v is not solved", result.EndState)
			}
			if len(tt.want) > 0 && result.Generated <= result.Expanded {
				t.Errorf("Generated %d <= Expanded %d", result.Generated, result.Expanded)
			}
		})
	}
}

func TestSearch_DFS(t *testing.T) {
	start := MustBoard("123/456/708")
	space := NewSpace(start)

	result := search.DFS[Board, Move](space)
	if result == nil {
		t.Fatal("DFS returned nil, want a solution")
	}
	if !space.IsGoal(result.EndState) {
		t.Errorf("EndState %v is not solved", result.EndState)
	}
	// DFS dives into Up first and reaches the goal by a detour.
	if len(result.Path) <= 1 {
		t.Errorf("len(Path) = %d, want > 1", len(result.Path))
	}
	if result.Generated <= result.Expanded {
		t.Errorf("Generated %d <= Expanded %d", result.Generated, result.Expanded)
	}
	if got := search.Replay(start, result.Path); got != Solved {
		t.Errorf("Replay(Path) = %v, want %v", got, Solved)
	}

	parallel := search.ParallelDFS[Board, Move](space, 4)
	if parallel == nil {
		t.Fatal("ParallelDFS returned nil, want a solution")
	}
	if !reflect.DeepEqual(parallel.Path, result.Path) {
		t.Errorf("ParallelDFS path differs from DFS (len %d vs %d)", len(parallel.Path), len(result.Path))
	}
	if parallel.Expanded != result.Expanded || parallel.Generated != result.Generated {
		t.Errorf("ParallelDFS counters %d/%d, want %d/%d",
			parallel.Generated, parallel.Expanded, result.Generated, result.Expanded)
	}
}

// TestSearch_Unsolvable explores the whole half of the state space reachable
// from a board with odd parity.
func TestSearch_Unsolvable(t *testing.T) {
	if testing.Short() {
		t.Skip("exhaustive search skipped in short mode")
	}

	engine, err := search.New[Board, Move](NewSpace(MustBoard("213/456/780")),
		search.WithStrategy(search.BreadthFirst))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	result, err := engine.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result != nil {
		t.Fatalf("result = %v, want nil", result)
	}
}
