package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel"

	"calder/tictactoe-arena/internal/game"
)

var gameTracer = otel.Tracer("repository.game")

var (
	ErrGameNotFound = errors.New("game not found")
	ErrNotYourTurn  = errors.New("it's not your turn")
)

//go:generate mockgen -destination=mocks/mock_repositories.go -package=mocks calder/tictactoe-arena/internal/repository GameRepository,PlayerRepository,MatchmakingRepository

// GameRepository defines the interface for game data operations.
type GameRepository interface {
	Create(ctx context.Context, roomID, playerXID, playerOID string) error
	FindByID(ctx context.Context, id string) (*game.GameStateDTO, error)
	Update(ctx context.Context, id string, mark game.Mark, row, col int) (*game.GameStateDTO, error)
	RecordVote(ctx context.Context, roomID, playerID string) error
	GetVotes(ctx context.Context, roomID string) (map[string]string, error)
	ClearVotes(ctx context.Context, roomID, playerXID, playerOID string) error
}

type redisGameRepository struct {
	rdb *redis.Client
}

// NewGameRepository creates a new Redis-based GameRepository.
func NewGameRepository(rdb *redis.Client) GameRepository {
	return &redisGameRepository{rdb: rdb}
}

func roomKey(roomID string) string {
	return fmt.Sprintf("room:%s", roomID)
}

// Create initializes a new game state in Redis. X always opens.
func (r *redisGameRepository) Create(ctx context.Context, roomID, playerXID, playerOID string) error {
	ctx, span := gameTracer.Start(ctx, "GameRepository.Create")
	defer span.End()

	boardJSON, err := json.Marshal(game.NewBoard())
	if err != nil {
		return fmt.Errorf("failed to marshal initial board: %w", err)
	}

	pipe := r.rdb.Pipeline()
	key := roomKey(roomID)
	pipe.HSet(ctx, key, game.FieldBoard, boardJSON)
	pipe.HSet(ctx, key, game.FieldPlayerX, playerXID)
	pipe.HSet(ctx, key, game.FieldPlayerO, playerOID)
	pipe.HSet(ctx, key, game.FieldNextTurn, string(game.PlayerX))
	pipe.HSet(ctx, key, game.FieldWinner, "")
	pipe.HSet(ctx, key, game.FieldWinLine, "")
	pipe.HSet(ctx, key, game.FieldStatus, string(game.InProgress))

	if _, err = pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to create game in redis: %w", err)
	}
	return nil
}

// FindByID retrieves the current game state from Redis.
func (r *redisGameRepository) FindByID(ctx context.Context, id string) (*game.GameStateDTO, error) {
	ctx, span := gameTracer.Start(ctx, "GameRepository.FindByID")
	defer span.End()

	data, err := r.rdb.HGetAll(ctx, roomKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get game state from redis: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrGameNotFound
	}

	return stateFromHash(data)
}

// Update applies a player's move to the game state in Redis. Validation and
// evaluation are delegated to the engine inside a WATCH transaction, so two
// racing moves cannot both land.
func (r *redisGameRepository) Update(ctx context.Context, id string, mark game.Mark, row, col int) (*game.GameStateDTO, error) {
	ctx, span := gameTracer.Start(ctx, "GameRepository.Update")
	defer span.End()

	key := roomKey(id)

	txf := func(tx *redis.Tx) error {
		data, err := tx.HGetAll(ctx, key).Result()
		if err != nil {
			return err
		}
		if len(data) == 0 {
			return ErrGameNotFound
		}

		state, err := stateFromHash(data)
		if err != nil {
			return err
		}
		if state.CurrentTurn != mark {
			return ErrNotYourTurn
		}

		board, err := game.Apply(state.Board, row, col, mark)
		if err != nil {
			return err
		}

		boardJSON, err := json.Marshal(board)
		if err != nil {
			return fmt.Errorf("failed to marshal updated board: %w", err)
		}

		outcome := game.Evaluate(board)
		lineJSON := ""
		if outcome.Status == game.Won {
			raw, err := json.Marshal(outcome.Line)
			if err != nil {
				return fmt.Errorf("failed to marshal winning line: %w", err)
			}
			lineJSON = string(raw)
		}

		pipe := tx.TxPipeline()
		pipe.HSet(ctx, key, game.FieldBoard, boardJSON)
		pipe.HSet(ctx, key, game.FieldNextTurn, string(game.Opponent(mark)))
		pipe.HSet(ctx, key, game.FieldWinner, string(outcome.Winner))
		pipe.HSet(ctx, key, game.FieldWinLine, lineJSON)
		pipe.HSet(ctx, key, game.FieldStatus, string(outcome.Status))
		_, err = pipe.Exec(ctx)
		return err
	}

	if err := r.rdb.Watch(ctx, txf, key); err != nil {
		return nil, err
	}

	return r.FindByID(ctx, id)
}

// RecordVote records a player's vote for a rematch.
func (r *redisGameRepository) RecordVote(ctx context.Context, roomID, playerID string) error {
	ctx, span := gameTracer.Start(ctx, "GameRepository.RecordVote")
	defer span.End()

	return r.rdb.HSet(ctx, roomKey(roomID), voteKey(playerID), "true").Err()
}

// GetVotes retrieves the room hash, including any recorded votes.
func (r *redisGameRepository) GetVotes(ctx context.Context, roomID string) (map[string]string, error) {
	ctx, span := gameTracer.Start(ctx, "GameRepository.GetVotes")
	defer span.End()

	return r.rdb.HGetAll(ctx, roomKey(roomID)).Result()
}

// ClearVotes removes rematch votes from Redis.
func (r *redisGameRepository) ClearVotes(ctx context.Context, roomID, playerXID, playerOID string) error {
	ctx, span := gameTracer.Start(ctx, "GameRepository.ClearVotes")
	defer span.End()

	return r.rdb.HDel(ctx, roomKey(roomID), voteKey(playerXID), voteKey(playerOID)).Err()
}

func voteKey(playerID string) string {
	return fmt.Sprintf("vote:%s", playerID)
}

// stateFromHash rebuilds a GameStateDTO from the raw room hash. The stored
// outcome fields are trusted as written by Update; the board alone could
// re-derive them, but keeping them avoids re-evaluating on every read.
func stateFromHash(data map[string]string) (*game.GameStateDTO, error) {
	var board game.Board
	if raw := data[game.FieldBoard]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &board); err != nil {
			return nil, fmt.Errorf("failed to unmarshal board: %w", err)
		}
	}

	outcome := game.Outcome{
		Status: game.Status(data[game.FieldStatus]),
		Winner: game.Mark(data[game.FieldWinner]),
	}
	if outcome.Status == "" {
		outcome.Status = game.InProgress
	}
	if raw := data[game.FieldWinLine]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &outcome.Line); err != nil {
			return nil, fmt.Errorf("failed to unmarshal winning line: %w", err)
		}
	}

	return &game.GameStateDTO{
		Board:       board,
		CurrentTurn: game.Mark(data[game.FieldNextTurn]),
		Outcome:     outcome,
		PlayerXID:   data[game.FieldPlayerX],
		PlayerOID:   data[game.FieldPlayerO],
	}, nil
}
