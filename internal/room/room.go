package room

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"

	"calder/tictactoe-arena/internal/bot"
	"calder/tictactoe-arena/internal/game"
	"calder/tictactoe-arena/internal/hub/types"
	"calder/tictactoe-arena/internal/player"
	"calder/tictactoe-arena/internal/repository"
	"calder/tictactoe-arena/pkg/proto"
)

const heartbeatInterval = 10 * time.Second

var reconnectionGracePeriod = 60 * time.Second
var tracer = otel.Tracer("room")

// MoveCalculator defines an interface for an agent that can pick a game move.
// The bot package provides the production implementation.
type MoveCalculator interface {
	CalculateNextMove(board game.Board, mark game.Mark, difficulty string) (row, col int)
}

// Room represents a game room.
type Room struct {
	ID             string
	rdb            *redis.Client
	gameRepo       repository.GameRepository
	playerRepo     repository.PlayerRepository
	Players        []*player.Player
	mu             sync.Mutex
	incomingMoves  chan *types.PlayerMove
	unregister     chan *player.Player
	moveCalculator MoveCalculator
	moveTimeout    time.Duration
	Done           chan struct{}
}

// NewRoom creates a new game room.
func NewRoom(id string, rdb *redis.Client, gameRepo repository.GameRepository, playerRepo repository.PlayerRepository, calculator MoveCalculator, timeout time.Duration) *Room {
	return &Room{
		ID:             id,
		rdb:            rdb,
		gameRepo:       gameRepo,
		playerRepo:     playerRepo,
		Players:        make([]*player.Player, 0, 2),
		incomingMoves:  make(chan *types.PlayerMove, 10),
		unregister:     make(chan *player.Player),
		moveCalculator: calculator,
		moveTimeout:    timeout,
		Done:           make(chan struct{}),
	}
}

// Start launches the main game loop and a read pump per player. Bot
// connections block in ReadMessage until their logic produces a move, so
// they get a pump like everyone else.
func (r *Room) Start(unregisterPlayer chan<- *player.Player) {
	for _, p := range r.Players {
		go r.ReadPump(p)
	}
	go r.run()

	for p := range r.unregister {
		unregisterPlayer <- p
	}
}

// run is the main game loop for the room.
func (r *Room) run() {
	ctx := context.Background()
	moveTimer := time.NewTimer(r.moveTimeout)
	pingTicker := time.NewTicker(heartbeatInterval)
	cleanupTicker := time.NewTicker(reconnectionGracePeriod)

	defer func() {
		moveTimer.Stop()
		pingTicker.Stop()
		cleanupTicker.Stop()
	}()

	for {
		gameState, err := r.gameRepo.FindByID(ctx, r.ID)
		if err != nil {
			slog.ErrorContext(ctx, "run loop cannot get game state, closing room", "room.id", r.ID, "error", err)
			if len(r.Players) > 0 {
				r.unregister <- r.Players[0]
			}
			return
		}

		currentPlayer := r.playerForMark(gameState, gameState.CurrentTurn)
		isLocalTurn := currentPlayer != nil

		if isLocalTurn && !gameState.IsOver() {
			if currentPlayer.Status == player.StatusConnected {
				moveTimer.Reset(r.moveTimeout)
			} else {
				moveTimer.Reset(1 * time.Second)
			}
		} else {
			moveTimer.Stop()
		}

		select {
		case <-r.Done:
			slog.Info("Room run goroutine stopping", "room.id", r.ID)
			return

		case move := <-r.incomingMoves:
			if !moveTimer.Stop() {
				select {
				case <-moveTimer.C:
				default:
				}
			}
			r.HandleMessage(move.Player, move.Message)

		case <-moveTimer.C:
			if !isLocalTurn || gameState.IsOver() {
				continue
			}

			// A stalled player forfeits the turn to the medium bot so
			// the opponent is not held hostage.
			slog.Info("Player timed out, proxying move", "player.id", currentPlayer.ID, "room.id", r.ID)
			row, col := r.moveCalculator.CalculateNextMove(gameState.Board, gameState.CurrentTurn, bot.DifficultyMedium)
			if row != -1 && col != -1 {
				moveMsg := proto.ClientToServerMessage{Type: proto.TypeMove, Position: []int{row, col}}
				moveBytes, _ := json.Marshal(moveMsg)
				r.HandleMessage(currentPlayer, moveBytes)
			}

		case <-pingTicker.C:
			for _, p := range r.Players {
				if p.Status == player.StatusConnected && !p.IsBot {
					if err := p.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
						slog.Warn("Failed to ping player, assuming disconnect", "player.id", p.ID, "error", err)
					}
				}
			}

		case <-cleanupTicker.C:
			r.mu.Lock()
			for _, p := range r.Players {
				if p.Status == player.StatusDisconnected && time.Since(p.LastSeen) > reconnectionGracePeriod {
					slog.Info("Player exceeded reconnection grace period, removing", "player.id", p.ID, "room.id", r.ID)
					r.unregister <- p
				}
			}
			r.mu.Unlock()
		}
	}
}

// playerForMark finds the local player holding the given mark, if any.
func (r *Room) playerForMark(state *game.GameStateDTO, mark game.Mark) *player.Player {
	if mark == game.None {
		return nil
	}
	for _, p := range r.Players {
		switch p.ID {
		case state.PlayerXID:
			if mark == game.PlayerX {
				return p
			}
		case state.PlayerOID:
			if mark == game.PlayerO {
				return p
			}
		}
	}
	return nil
}

// AddPlayer adds a player to the room.
func (r *Room) AddPlayer(p *player.Player) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Players = append(r.Players, p)
}

// IncomingMoves returns the channel for incoming player moves.
func (r *Room) IncomingMoves() chan<- *types.PlayerMove {
	return r.incomingMoves
}
