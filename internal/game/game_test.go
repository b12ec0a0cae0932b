package game

import (
	"errors"
	"testing"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name       string
		board      Board
		wantStatus Status
		wantWinner Mark
		wantLine   Line
	}{
		{
			name:       "empty board is in progress",
			board:      NewBoard(),
			wantStatus: InProgress,
		},
		{
			name: "partial board is in progress",
			board: Board{
				{PlayerX, None, None},
				{None, PlayerO, None},
				{None, None, None},
			},
			wantStatus: InProgress,
		},
		{
			name: "X wins first row",
			board: Board{
				{PlayerX, PlayerX, PlayerX},
				{None, PlayerO, None},
				{None, None, PlayerO},
			},
			wantStatus: Won,
			wantWinner: PlayerX,
			wantLine:   Line{{0, 0}, {0, 1}, {0, 2}},
		},
		{
			name: "O wins second column",
			board: Board{
				{PlayerX, PlayerO, None},
				{PlayerX, PlayerO, None},
				{None, PlayerO, None},
			},
			wantStatus: Won,
			wantWinner: PlayerO,
			wantLine:   Line{{0, 1}, {1, 1}, {2, 1}},
		},
		{
			name: "X wins main diagonal",
			board: Board{
				{PlayerX, PlayerO, None},
				{None, PlayerX, PlayerO},
				{None, None, PlayerX},
			},
			wantStatus: Won,
			wantWinner: PlayerX,
			wantLine:   Line{{0, 0}, {1, 1}, {2, 2}},
		},
		{
			name: "O wins anti-diagonal",
			board: Board{
				{PlayerX, None, PlayerO},
				{None, PlayerO, PlayerX},
				{PlayerO, None, None},
			},
			wantStatus: Won,
			wantWinner: PlayerO,
			wantLine:   Line{{0, 2}, {1, 1}, {2, 0}},
		},
		{
			name: "full board without winner is a draw",
			board: Board{
				{PlayerX, PlayerO, PlayerX},
				{PlayerX, PlayerO, PlayerO},
				{PlayerO, PlayerX, PlayerX},
			},
			wantStatus: Draw,
		},
		{
			name: "two complete lines reports the first in enumeration order",
			board: Board{
				{PlayerX, PlayerX, PlayerX},
				{PlayerO, PlayerO, None},
				{PlayerX, PlayerX, PlayerX},
			},
			wantStatus: Won,
			wantWinner: PlayerX,
			wantLine:   Line{{0, 0}, {0, 1}, {0, 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.board)
			if got.Status != tt.wantStatus {
				t.Fatalf("Evaluate() status = %v, want %v", got.Status, tt.wantStatus)
			}
			if got.Status != Won {
				return
			}
			if got.Winner != tt.wantWinner {
				t.Errorf("Evaluate() winner = %v, want %v", got.Winner, tt.wantWinner)
			}
			if got.Line != tt.wantLine {
				t.Errorf("Evaluate() line = %v, want %v", got.Line, tt.wantLine)
			}
		})
	}
}

func TestEvaluateIsPure(t *testing.T) {
	board := Board{
		{PlayerX, None, None},
		{None, PlayerO, None},
		{None, None, None},
	}
	if Evaluate(board) != Evaluate(board) {
		t.Error("Evaluate() is not idempotent for the same board value")
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name    string
		board   Board
		row     int
		col     int
		mark    Mark
		wantErr error
	}{
		{
			name:  "move on empty board",
			board: NewBoard(),
			row:   0, col: 0,
			mark: PlayerX,
		},
		{
			name: "move on occupied cell",
			board: Board{
				{PlayerX, None, None},
				{None, None, None},
				{None, None, None},
			},
			row: 0, col: 0,
			mark:    PlayerO,
			wantErr: ErrCellOccupied,
		},
		{
			name:  "row out of range",
			board: NewBoard(),
			row:   3, col: 0,
			mark:    PlayerX,
			wantErr: ErrOutOfRange,
		},
		{
			name:  "negative column",
			board: NewBoard(),
			row:   0, col: -1,
			mark:    PlayerX,
			wantErr: ErrOutOfRange,
		},
		{
			name:  "empty mark rejected",
			board: NewBoard(),
			row:   0, col: 0,
			mark:    None,
			wantErr: ErrNoMark,
		},
		{
			name: "move after win rejected",
			board: Board{
				{PlayerX, PlayerX, PlayerX},
				{PlayerO, PlayerO, None},
				{None, None, None},
			},
			row: 2, col: 2,
			mark:    PlayerO,
			wantErr: ErrGameFinished,
		},
		{
			name: "move on drawn board rejected",
			board: Board{
				{PlayerX, PlayerO, PlayerX},
				{PlayerX, PlayerO, PlayerO},
				{PlayerO, PlayerX, PlayerX},
			},
			row: 1, col: 1,
			mark:    PlayerX,
			wantErr: ErrGameFinished,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(tt.board, tt.row, tt.col, tt.mark)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Apply() error = %v, want %v", err, tt.wantErr)
				}
				if !errors.Is(err, ErrInvalidMove) {
					t.Errorf("Apply() error %v does not wrap ErrInvalidMove", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Apply() unexpected error: %v", err)
			}
			if got[tt.row][tt.col] != tt.mark {
				t.Errorf("Apply() did not set cell (%d,%d)", tt.row, tt.col)
			}
		})
	}
}

func TestApplyDoesNotAliasInput(t *testing.T) {
	before := NewBoard()
	after, err := Apply(before, 1, 1, PlayerX)
	if err != nil {
		t.Fatalf("Apply() unexpected error: %v", err)
	}
	if before != NewBoard() {
		t.Error("Apply() modified its input board")
	}
	if after[1][1] != PlayerX {
		t.Error("Apply() result is missing the placed mark")
	}
	if after == before {
		t.Error("Apply() returned a board equal to its unmodified input")
	}
}

func TestBoardSliceRoundTrip(t *testing.T) {
	board := Board{
		{PlayerX, None, PlayerO},
		{None, PlayerX, None},
		{PlayerO, None, None},
	}
	if got := BoardFromSlices(board.AsSlices()); got != board {
		t.Errorf("BoardFromSlices(AsSlices()) = %v, want %v", got, board)
	}
}

func TestRandomlyChooseFirstPlayer(t *testing.T) {
	seenX := false
	seenO := false
	for i := 0; i < 100; i++ {
		mark := RandomlyChooseFirstPlayer()
		if mark != PlayerX && mark != PlayerO {
			t.Fatalf("RandomlyChooseFirstPlayer() returned invalid mark: %q", mark)
		}
		if mark == PlayerX {
			seenX = true
		} else {
			seenO = true
		}
	}
	if !seenX || !seenO {
		t.Errorf("RandomlyChooseFirstPlayer() never returned both marks over 100 runs (X: %v, O: %v)", seenX, seenO)
	}
}
