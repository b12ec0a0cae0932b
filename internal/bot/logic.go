package bot

import (
	"errors"
	"math/rand/v2"

	"calder/tictactoe-arena/internal/game"
)

// ErrNoMovesAvailable is returned when a move is requested on a full or
// already decided board.
var ErrNoMovesAvailable = errors.New("no moves available")

// Difficulty levels. Hard is the default.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// MoveCalculator implements the room.MoveCalculator interface.
type MoveCalculator struct {
	rng *rand.Rand
}

// NewMoveCalculator creates a calculator with its own random source. Pass a
// seeded source in tests to make the fallback move deterministic.
func NewMoveCalculator(rng *rand.Rand) *MoveCalculator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &MoveCalculator{rng: rng}
}

// CalculateNextMove calls the package-level function with the calculator's
// random source.
func (c *MoveCalculator) CalculateNextMove(board game.Board, mark game.Mark, difficulty string) (row, col int) {
	return CalculateNextMove(board, mark, difficulty, c.rng)
}

// CalculateNextMove determines the bot's next move based on the requested
// difficulty. It returns (-1, -1) when no move is possible.
func CalculateNextMove(board game.Board, botMark game.Mark, difficulty string, rng *rand.Rand) (row, col int) {
	var err error
	switch difficulty {
	case DifficultyEasy:
		row, col, err = randomMove(board, rng)
	case DifficultyMedium:
		row, col, err = mediumMove(board, botMark, rng)
	default:
		row, col, err = SelectMove(board, botMark, game.Opponent(botMark), rng)
	}
	if err != nil {
		return -1, -1
	}
	return row, col
}

// SelectMove picks a cell for aiMark using fixed priority rules: finish a
// winning line, block the opponent's winning line, take the center, then a
// uniformly random empty cell. The win and block scans run row-major, so the
// first qualifying cell in that order is chosen. This is a heuristic, not a
// perfect player; it can lose to optimal play.
func SelectMove(board game.Board, aiMark, oppMark game.Mark, rng *rand.Rand) (row, col int, err error) {
	if game.Evaluate(board).Terminal() {
		return -1, -1, ErrNoMovesAvailable
	}

	if r, c, ok := winningCell(board, aiMark); ok {
		return r, c, nil
	}
	if r, c, ok := winningCell(board, oppMark); ok {
		return r, c, nil
	}
	if board[1][1] == game.None {
		return 1, 1, nil
	}
	return randomMove(board, rng)
}

// winningCell scans empty cells row-major, hypothetically placing mark and
// evaluating the result. Apply returns a fresh board, so the probe never
// touches the caller's value.
func winningCell(board game.Board, mark game.Mark) (row, col int, ok bool) {
	for r := game.BorderMin; r <= game.BorderMax; r++ {
		for c := game.BorderMin; c <= game.BorderMax; c++ {
			if board[r][c] != game.None {
				continue
			}
			trial, err := game.Apply(board, r, c, mark)
			if err != nil {
				continue
			}
			if out := game.Evaluate(trial); out.Status == game.Won && out.Winner == mark {
				return r, c, true
			}
		}
	}
	return -1, -1, false
}

// mediumMove wins if it can, blocks if it must, otherwise moves randomly.
func mediumMove(board game.Board, botMark game.Mark, rng *rand.Rand) (row, col int, err error) {
	if game.Evaluate(board).Terminal() {
		return -1, -1, ErrNoMovesAvailable
	}
	if r, c, ok := winningCell(board, botMark); ok {
		return r, c, nil
	}
	if r, c, ok := winningCell(board, game.Opponent(botMark)); ok {
		return r, c, nil
	}
	return randomMove(board, rng)
}

// randomMove picks uniformly among the empty cells.
func randomMove(board game.Board, rng *rand.Rand) (row, col int, err error) {
	var available [][2]int
	for r := range board {
		for c := range board[r] {
			if board[r][c] == game.None {
				available = append(available, [2]int{r, c})
			}
		}
	}
	if len(available) == 0 || game.Evaluate(board).Terminal() {
		return -1, -1, ErrNoMovesAvailable
	}

	n := len(available)
	var pick [2]int
	if rng != nil {
		pick = available[rng.IntN(n)]
	} else {
		pick = available[rand.IntN(n)]
	}
	return pick[0], pick[1], nil
}
