package bot

import (
	"errors"
	"math/rand/v2"
	"testing"

	"calder/tictactoe-arena/internal/game"
)

func testRNG() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestSelectMoveWinNow(t *testing.T) {
	tests := []struct {
		name    string
		board   game.Board
		aiMark  game.Mark
		wantRow int
		wantCol int
	}{
		{
			name: "completes first row at (0,0)",
			board: game.Board{
				{game.None, game.PlayerO, game.PlayerO},
				{game.None, game.PlayerX, game.None},
				{game.PlayerX, game.None, game.None},
			},
			aiMark:  game.PlayerO,
			wantRow: 0, wantCol: 0,
		},
		{
			name: "completes a column",
			board: game.Board{
				{game.PlayerX, game.PlayerO, game.None},
				{game.PlayerX, game.PlayerO, game.None},
				{game.None, game.None, game.None},
			},
			aiMark:  game.PlayerX,
			wantRow: 2, wantCol: 0,
		},
		{
			name: "first winning cell row-major when two wins exist",
			board: game.Board{
				{game.PlayerX, game.PlayerX, game.None},
				{game.PlayerX, game.PlayerO, game.None},
				{game.None, game.PlayerO, game.None},
			},
			// (0,2) completes the top row, (2,0) the left column; the
			// row-major scan must find (0,2) first.
			aiMark:  game.PlayerX,
			wantRow: 0, wantCol: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, col, err := SelectMove(tt.board, tt.aiMark, game.Opponent(tt.aiMark), testRNG())
			if err != nil {
				t.Fatalf("SelectMove() unexpected error: %v", err)
			}
			if row != tt.wantRow || col != tt.wantCol {
				t.Errorf("SelectMove() = (%d,%d), want (%d,%d)", row, col, tt.wantRow, tt.wantCol)
			}
		})
	}
}

func TestSelectMoveBlocks(t *testing.T) {
	// X threatens the main diagonal; O has no win of its own and must
	// answer at (2,2) even with the center taken.
	board := game.Board{
		{game.PlayerX, game.None, game.None},
		{game.PlayerO, game.PlayerX, game.None},
		{game.None, game.None, game.None},
	}

	row, col, err := SelectMove(board, game.PlayerO, game.PlayerX, testRNG())
	if err != nil {
		t.Fatalf("SelectMove() unexpected error: %v", err)
	}
	if row != 2 || col != 2 {
		t.Errorf("SelectMove() = (%d,%d), want block at (2,2)", row, col)
	}
}

func TestSelectMoveWinBeatsBlock(t *testing.T) {
	// Both sides have a winning cell; the bot must take its own win at
	// (0,0) instead of blocking X.
	board := game.Board{
		{game.None, game.PlayerO, game.PlayerO},
		{game.None, game.PlayerX, game.None},
		{game.None, game.None, game.PlayerX},
	}

	row, col, err := SelectMove(board, game.PlayerO, game.PlayerX, testRNG())
	if err != nil {
		t.Fatalf("SelectMove() unexpected error: %v", err)
	}
	if row != 0 || col != 0 {
		t.Errorf("SelectMove() = (%d,%d), want winning move (0,0)", row, col)
	}
}

func TestSelectMovePrefersCenter(t *testing.T) {
	// X opened at a corner; with no win or block available the bot takes
	// the center.
	board := game.Board{
		{game.PlayerX, game.None, game.None},
		{game.None, game.None, game.None},
		{game.None, game.None, game.None},
	}

	row, col, err := SelectMove(board, game.PlayerO, game.PlayerX, testRNG())
	if err != nil {
		t.Fatalf("SelectMove() unexpected error: %v", err)
	}
	if row != 1 || col != 1 {
		t.Errorf("SelectMove() = (%d,%d), want center (1,1)", row, col)
	}
}

func TestSelectMoveRandomFallback(t *testing.T) {
	// Center taken and no tactical move; the fallback must land on an
	// empty cell, and identically seeded sources must agree.
	board := game.Board{
		{game.PlayerX, game.None, game.None},
		{game.None, game.PlayerO, game.None},
		{game.None, game.None, game.None},
	}

	r1, c1, err := SelectMove(board, game.PlayerO, game.PlayerX, rand.New(rand.NewPCG(7, 7)))
	if err != nil {
		t.Fatalf("SelectMove() unexpected error: %v", err)
	}
	if board[r1][c1] != game.None {
		t.Fatalf("SelectMove() picked occupied cell (%d,%d)", r1, c1)
	}

	r2, c2, err := SelectMove(board, game.PlayerO, game.PlayerX, rand.New(rand.NewPCG(7, 7)))
	if err != nil {
		t.Fatalf("SelectMove() unexpected error: %v", err)
	}
	if r1 != r2 || c1 != c2 {
		t.Errorf("SelectMove() with equal seeds diverged: (%d,%d) vs (%d,%d)", r1, c1, r2, c2)
	}
}

func TestSelectMoveNoMoves(t *testing.T) {
	tests := []struct {
		name  string
		board game.Board
	}{
		{
			name: "full board",
			board: game.Board{
				{game.PlayerX, game.PlayerO, game.PlayerX},
				{game.PlayerX, game.PlayerO, game.PlayerO},
				{game.PlayerO, game.PlayerX, game.PlayerX},
			},
		},
		{
			name: "already won board",
			board: game.Board{
				{game.PlayerX, game.PlayerX, game.PlayerX},
				{game.PlayerO, game.PlayerO, game.None},
				{game.None, game.None, game.None},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := SelectMove(tt.board, game.PlayerO, game.PlayerX, testRNG())
			if !errors.Is(err, ErrNoMovesAvailable) {
				t.Errorf("SelectMove() error = %v, want ErrNoMovesAvailable", err)
			}
		})
	}
}

func TestSelectMoveSecondMoveTakesCenter(t *testing.T) {
	// Concrete opening: X plays (0,0), O answers; the center must be the
	// reply.
	board, err := game.Apply(game.NewBoard(), 0, 0, game.PlayerX)
	if err != nil {
		t.Fatalf("Apply() unexpected error: %v", err)
	}

	row, col, err := SelectMove(board, game.PlayerO, game.PlayerX, testRNG())
	if err != nil {
		t.Fatalf("SelectMove() unexpected error: %v", err)
	}
	if row != 1 || col != 1 {
		t.Errorf("SelectMove() = (%d,%d), want (1,1)", row, col)
	}
}

func TestCalculateNextMove(t *testing.T) {
	winnable := game.Board{
		{game.PlayerO, game.PlayerO, game.None},
		{game.PlayerX, game.PlayerX, game.None},
		{game.None, game.None, game.None},
	}

	tests := []struct {
		name       string
		difficulty string
		wantRow    int
		wantCol    int
	}{
		{name: "hard finishes its row", difficulty: DifficultyHard, wantRow: 0, wantCol: 2},
		{name: "medium finishes its row", difficulty: DifficultyMedium, wantRow: 0, wantCol: 2},
		{name: "unknown difficulty falls back to hard", difficulty: "nightmare", wantRow: 0, wantCol: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, col := CalculateNextMove(winnable, game.PlayerO, tt.difficulty, testRNG())
			if row != tt.wantRow || col != tt.wantCol {
				t.Errorf("CalculateNextMove(%s) = (%d,%d), want (%d,%d)", tt.difficulty, row, col, tt.wantRow, tt.wantCol)
			}
		})
	}

	t.Run("easy ignores tactics but stays legal", func(t *testing.T) {
		row, col := CalculateNextMove(winnable, game.PlayerO, DifficultyEasy, testRNG())
		if row == -1 || winnable[row][col] != game.None {
			t.Errorf("CalculateNextMove(easy) = (%d,%d), want any empty cell", row, col)
		}
	})

	t.Run("full board yields no move", func(t *testing.T) {
		full := game.Board{
			{game.PlayerX, game.PlayerO, game.PlayerX},
			{game.PlayerX, game.PlayerO, game.PlayerO},
			{game.PlayerO, game.PlayerX, game.PlayerX},
		}
		row, col := CalculateNextMove(full, game.PlayerO, DifficultyHard, testRNG())
		if row != -1 || col != -1 {
			t.Errorf("CalculateNextMove() on full board = (%d,%d), want (-1,-1)", row, col)
		}
	})
}
