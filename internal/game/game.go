package game

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// Mark represents the mark of a player (X, O) or an empty cell.
type Mark string

const (
	None    Mark = ""
	PlayerX Mark = "X"
	PlayerO Mark = "O"
)

// Board boundaries.
const (
	BorderMin = 0
	BorderMax = 2
)

var (
	// ErrInvalidMove is the parent of every move rejection; callers match it
	// with errors.Is without caring about the exact cause.
	ErrInvalidMove = errors.New("invalid move")

	ErrOutOfRange   = fmt.Errorf("%w: cell out of range", ErrInvalidMove)
	ErrCellOccupied = fmt.Errorf("%w: cell already occupied", ErrInvalidMove)
	ErrGameFinished = fmt.Errorf("%w: game already finished", ErrInvalidMove)
	ErrNoMark       = fmt.Errorf("%w: no mark given", ErrInvalidMove)
)

// Board is a 3x3 grid of marks. It is a plain array value: assignment copies
// it, and Apply returns a new Board instead of mutating its argument.
type Board [3][3]Mark

// NewBoard returns a board with every cell empty.
func NewBoard() Board {
	return Board{}
}

// IsFull reports whether every cell holds a mark.
func (b Board) IsFull() bool {
	for r := range b {
		for c := range b[r] {
			if b[r][c] == None {
				return false
			}
		}
	}
	return true
}

// AsSlices converts the board to a dynamic slice of slices, the shape the
// websocket protocol serializes.
func (b Board) AsSlices() [][]Mark {
	out := make([][]Mark, len(b))
	for r := range b {
		out[r] = make([]Mark, len(b[r]))
		copy(out[r], b[r][:])
	}
	return out
}

// BoardFromSlices is the inverse of AsSlices. Missing cells stay empty.
func BoardFromSlices(rows [][]Mark) Board {
	var b Board
	for r := 0; r < len(b) && r < len(rows); r++ {
		for c := 0; c < len(b[r]) && c < len(rows[r]); c++ {
			b[r][c] = rows[r][c]
		}
	}
	return b
}

// Apply places mark at (row, col) and returns the resulting board. The input
// board is never modified; on any rejection the zero Board is returned
// alongside an error wrapping ErrInvalidMove.
func Apply(b Board, row, col int, mark Mark) (Board, error) {
	if mark != PlayerX && mark != PlayerO {
		return Board{}, ErrNoMark
	}
	if row < BorderMin || row > BorderMax || col < BorderMin || col > BorderMax {
		return Board{}, ErrOutOfRange
	}
	if Evaluate(b).Status != InProgress {
		return Board{}, ErrGameFinished
	}
	if b[row][col] != None {
		return Board{}, ErrCellOccupied
	}

	b[row][col] = mark // b is already a copy
	return b, nil
}

// Opponent returns the other player's mark.
func Opponent(mark Mark) Mark {
	if mark == PlayerX {
		return PlayerO
	}
	return PlayerX
}

// RandomlyChooseFirstPlayer picks which mark a player gets when marks are
// assigned at match creation. X still always moves first.
func RandomlyChooseFirstPlayer() Mark {
	if rand.IntN(2) == 0 {
		return PlayerX
	}
	return PlayerO
}
