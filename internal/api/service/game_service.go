package service

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"calder/tictactoe-arena/internal/api/models"
	"calder/tictactoe-arena/internal/bot"
	"calder/tictactoe-arena/internal/game"
	"calder/tictactoe-arena/internal/session"
)

var ErrGameSessionNotFound = errors.New("game session not found")

// LocalGameService manages single-client game sessions: hot-seat games where
// two players share a device, and games against the bot. Sessions live in
// memory only; multiplayer games go through the hub instead.
type LocalGameService interface {
	Create(ctx context.Context, req *models.CreateLocalGameRequest) (*models.LocalGameState, error)
	Get(ctx context.Context, id string) (*models.LocalGameState, error)
	Move(ctx context.Context, id string, req *models.MoveRequest) (*models.LocalGameState, error)
	Restart(ctx context.Context, id string) (*models.LocalGameState, error)
	Delete(ctx context.Context, id string) error
}

type localGame struct {
	mu         sync.Mutex
	session    *session.Session
	difficulty string
}

type localGameService struct {
	mu         sync.RWMutex
	games      map[string]*localGame
	calculator *bot.MoveCalculator
}

// NewLocalGameService creates a new LocalGameService.
func NewLocalGameService(calculator *bot.MoveCalculator) LocalGameService {
	if calculator == nil {
		calculator = bot.NewMoveCalculator(nil)
	}
	return &localGameService{
		games:      make(map[string]*localGame),
		calculator: calculator,
	}
}

// Create starts a new session. In bot mode the human plays X and the bot
// plays O, so the human always opens.
func (s *localGameService) Create(ctx context.Context, req *models.CreateLocalGameRequest) (*models.LocalGameState, error) {
	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = bot.DifficultyHard
	}

	lg := &localGame{session: session.New(), difficulty: difficulty}
	if err := lg.session.Start(session.Mode(req.Mode)); err != nil {
		return nil, err
	}

	id := uuid.New().String()
	s.mu.Lock()
	s.games[id] = lg
	s.mu.Unlock()

	return stateView(id, lg), nil
}

// Get returns the current state of a session.
func (s *localGameService) Get(ctx context.Context, id string) (*models.LocalGameState, error) {
	lg, err := s.find(id)
	if err != nil {
		return nil, err
	}
	lg.mu.Lock()
	defer lg.mu.Unlock()
	return stateView(id, lg), nil
}

// Move places the current player's mark. In bot mode a successful human move
// is answered immediately, so the returned state already contains the bot's
// reply.
func (s *localGameService) Move(ctx context.Context, id string, req *models.MoveRequest) (*models.LocalGameState, error) {
	lg, err := s.find(id)
	if err != nil {
		return nil, err
	}

	lg.mu.Lock()
	defer lg.mu.Unlock()

	outcome, err := lg.session.Move(req.Row, req.Col)
	if err != nil {
		return nil, err
	}

	if lg.session.Mode() == session.ModeBot && !outcome.Terminal() && lg.session.Turn() == game.PlayerO {
		row, col := s.calculator.CalculateNextMove(lg.session.Board(), game.PlayerO, lg.difficulty)
		if row != -1 {
			if _, err := lg.session.Move(row, col); err != nil {
				return nil, err
			}
		}
	}

	return stateView(id, lg), nil
}

// Restart begins a fresh game in the same session, keeping the mode.
func (s *localGameService) Restart(ctx context.Context, id string) (*models.LocalGameState, error) {
	lg, err := s.find(id)
	if err != nil {
		return nil, err
	}

	lg.mu.Lock()
	defer lg.mu.Unlock()

	if err := lg.session.Restart(); err != nil {
		return nil, err
	}
	return stateView(id, lg), nil
}

// Delete discards a session.
func (s *localGameService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[id]; !ok {
		return ErrGameSessionNotFound
	}
	delete(s.games, id)
	return nil
}

func (s *localGameService) find(id string) (*localGame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lg, ok := s.games[id]
	if !ok {
		return nil, ErrGameSessionNotFound
	}
	return lg, nil
}

func stateView(id string, lg *localGame) *models.LocalGameState {
	sess := lg.session
	outcome := sess.Outcome()

	view := &models.LocalGameState{
		ID:     id,
		Mode:   string(sess.Mode()),
		State:  string(sess.State()),
		Board:  sess.Board().AsSlices(),
		Winner: outcome.Winner,
		Draw:   outcome.Status == game.Draw,
	}
	if !outcome.Terminal() && sess.State() == session.StateInProgress {
		view.Next = sess.Turn()
	}
	if outcome.Status == game.Won {
		line := outcome.Line
		view.WinLine = &line
	}
	return view
}
