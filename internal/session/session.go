package session

import (
	"errors"
	"fmt"

	"calder/tictactoe-arena/internal/game"
)

// Mode selects who sits on the other side of the board.
type Mode string

const (
	ModeLocal Mode = "local" // two players sharing one client
	ModeBot   Mode = "bot"
)

// State is the lifecycle phase of a session.
type State string

const (
	StateSetup      State = "setup"
	StateInProgress State = "in_progress"
	StateTerminal   State = "terminal"
)

var (
	ErrNotStarted     = errors.New("game is not started")
	ErrAlreadyStarted = errors.New("game is already started")
	ErrNotOver        = errors.New("game is not over")
	ErrUnknownMode    = errors.New("unknown game mode")
)

// Session drives one game from mode selection to a terminal outcome. It owns
// turn alternation and keeps the engine pure: every move goes through
// game.Apply and the stored board is replaced by the returned value.
//
// Session is not safe for concurrent use; callers serialize access.
type Session struct {
	mode    Mode
	state   State
	board   game.Board
	turn    game.Mark
	outcome game.Outcome
}

// New returns a session in the Setup state, waiting for a mode.
func New() *Session {
	return &Session{state: StateSetup}
}

// Start moves Setup -> InProgress with a fresh board. X always opens.
func (s *Session) Start(mode Mode) error {
	if s.state != StateSetup {
		return ErrAlreadyStarted
	}
	if mode != ModeLocal && mode != ModeBot {
		return fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	s.mode = mode
	s.board = game.NewBoard()
	s.turn = game.PlayerX
	s.outcome = game.Outcome{Status: game.InProgress}
	s.state = StateInProgress
	return nil
}

// Move places the current player's mark and advances the state machine. On a
// terminal evaluation the session freezes until Restart or Reset.
func (s *Session) Move(row, col int) (game.Outcome, error) {
	switch s.state {
	case StateSetup:
		return game.Outcome{}, ErrNotStarted
	case StateTerminal:
		return game.Outcome{}, game.ErrGameFinished
	}

	next, err := game.Apply(s.board, row, col, s.turn)
	if err != nil {
		return game.Outcome{}, err
	}

	s.board = next
	s.outcome = game.Evaluate(next)
	if s.outcome.Terminal() {
		s.state = StateTerminal
	} else {
		s.turn = game.Opponent(s.turn)
	}
	return s.outcome, nil
}

// Restart moves Terminal -> InProgress with a new board, keeping the mode.
func (s *Session) Restart() error {
	if s.state != StateTerminal {
		return ErrNotOver
	}

	s.board = game.NewBoard()
	s.turn = game.PlayerX
	s.outcome = game.Outcome{Status: game.InProgress}
	s.state = StateInProgress
	return nil
}

// Reset clears everything back to Setup, dropping the mode.
func (s *Session) Reset() {
	*s = Session{state: StateSetup}
}

func (s *Session) Mode() Mode            { return s.mode }
func (s *Session) State() State          { return s.state }
func (s *Session) Board() game.Board     { return s.board }
func (s *Session) Turn() game.Mark       { return s.turn }
func (s *Session) Outcome() game.Outcome { return s.outcome }
