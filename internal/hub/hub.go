package hub

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"

	"calder/tictactoe-arena/internal/bot"
	"calder/tictactoe-arena/internal/game"
	"calder/tictactoe-arena/internal/hub/types"
	"calder/tictactoe-arena/internal/match"
	"calder/tictactoe-arena/internal/player"
	"calder/tictactoe-arena/internal/repository"
	"calder/tictactoe-arena/internal/room"
)

const moveTimeout = 15 * time.Second

var tracer = otel.Tracer("hub")

// Matchmaking modes. Redis queues players globally across instances; local
// pairs players on this instance only, with no queue round trip.
const (
	MatchmakingRedis = "redis"
	MatchmakingLocal = "local"
)

// ResultRecorder persists finished games. The stats repository satisfies
// it; a nil recorder disables match history.
type ResultRecorder interface {
	RecordResult(ctx context.Context, roomID, playerXID, playerOID, winnerID string) error
}

// Hub manages the rooms and players connected to this server instance.
// Cross-instance coordination happens through Redis pub/sub events.
type Hub struct {
	serverID        string
	rdb             *redis.Client
	gameRepo        repository.GameRepository
	playerRepo      repository.PlayerRepository
	matchmakingRepo repository.MatchmakingRepository
	matchManager    *match.MatchManager
	matchmakingMode string
	moveCalculator  *bot.MoveCalculator
	resultRecorder  ResultRecorder

	mu           sync.Mutex
	localRooms   map[string]*room.Room
	localPlayers map[string]*player.Player

	register   chan *types.RegistrationRequest
	unregister chan *player.Player
}

// NewHub creates a new hub. An unknown matchmaking mode falls back to Redis.
func NewHub(rdb *redis.Client, gameRepo repository.GameRepository, playerRepo repository.PlayerRepository, matchmakingRepo repository.MatchmakingRepository, resultRecorder ResultRecorder, matchmakingMode string) *Hub {
	if matchmakingMode != MatchmakingLocal {
		matchmakingMode = MatchmakingRedis
	}
	return &Hub{
		serverID:        uuid.New().String(),
		rdb:             rdb,
		gameRepo:        gameRepo,
		playerRepo:      playerRepo,
		matchmakingRepo: matchmakingRepo,
		resultRecorder:  resultRecorder,
		matchManager:    match.NewMatchManager(),
		matchmakingMode: matchmakingMode,
		moveCalculator:  bot.NewMoveCalculator(nil),
		localRooms:      make(map[string]*room.Room),
		localPlayers:    make(map[string]*player.Player),
		register:        make(chan *types.RegistrationRequest),
		unregister:      make(chan *player.Player),
	}
}

// Run starts the hub's event loop and background workers.
func (h *Hub) Run(ctx context.Context) {
	go h.runEventSubscriber(ctx)

	if h.matchmakingMode == MatchmakingLocal {
		go h.matchManager.Run()
	} else {
		go h.runMatcher(ctx)
	}

	slog.InfoContext(ctx, "Hub started", "server.id", h.serverID, "matchmaking.mode", h.matchmakingMode)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Hub stopping", "server.id", h.serverID)
			return

		case req := <-h.register:
			h.handleRegistration(req)

		case p := <-h.unregister:
			h.removePlayer(ctx, p)

		case pair := <-h.matchManager.MatchedPair():
			h.handleLocalMatch(ctx, pair[0], pair[1])
		}
	}
}

func (h *Hub) handleRegistration(req *types.RegistrationRequest) {
	ctx := req.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	p := req.Player

	h.mu.Lock()
	h.localPlayers[p.ID] = p
	h.mu.Unlock()

	if req.PlayerID != "" {
		if roomID := h.tryReconnect(ctx, p, req.PlayerID); roomID != "" {
			return
		}
	}

	if err := h.playerRepo.SetInitialState(ctx, p.ID, h.serverID); err != nil {
		slog.ErrorContext(ctx, "Failed to set initial player state", "player.id", p.ID, "error", err)
	}

	if req.Mode == "bot" {
		h.registerBotGame(ctx, req)
		return
	}

	if h.matchmakingMode == MatchmakingLocal {
		slog.InfoContext(ctx, "Player added to local matchmaking", "player.id", p.ID)
		h.matchManager.AddPlayer(p)
		return
	}
	h.queuePlayerForMatchmaking(ctx, req)
}

// handleLocalMatch turns a locally matched pair into a persisted game and a
// running room. Used only in local matchmaking mode.
func (h *Hub) handleLocalMatch(ctx context.Context, player1, player2 *player.Player) {
	roomID := uuid.New().String()

	// Marks are assigned randomly; X still opens.
	if game.RandomlyChooseFirstPlayer() == game.PlayerO {
		player1, player2 = player2, player1
	}

	if err := h.gameRepo.Create(ctx, roomID, player1.ID, player2.ID); err != nil {
		slog.ErrorContext(ctx, "Failed to create game for local match", "room.id", roomID, "error", err)
		return
	}
	if err := h.playerRepo.UpdateForMatch(ctx, player1.ID, roomID); err != nil {
		slog.ErrorContext(ctx, "Failed to update player state for match", "player.id", player1.ID, "error", err)
	}
	if err := h.playerRepo.UpdateForMatch(ctx, player2.ID, roomID); err != nil {
		slog.ErrorContext(ctx, "Failed to update player state for match", "player.id", player2.ID, "error", err)
	}

	slog.InfoContext(ctx, "Local match made", "room.id", roomID, "player1.id", player1.ID, "player2.id", player2.ID)
	h.createAndStartRoom(ctx, roomID, []*player.Player{player1, player2})
}

func (h *Hub) removePlayer(ctx context.Context, p *player.Player) {
	h.mu.Lock()
	delete(h.localPlayers, p.ID)

	for roomID, r := range h.localRooms {
		for i, roomPlayer := range r.Players {
			if roomPlayer.ID != p.ID {
				continue
			}
			r.Players = append(r.Players[:i], r.Players[i+1:]...)
			slog.Info("Player removed from room", "player.id", p.ID, "room.id", roomID)

			if !h.hasLocalHumans(r) {
				close(r.Done)
				delete(h.localRooms, roomID)
				slog.Info("Room closed, no local players remain", "room.id", roomID)
			}
			break
		}
	}
	h.mu.Unlock()

	if !p.IsBot {
		if err := h.matchmakingRepo.RemoveFromQueue(ctx, p.ID); err != nil {
			slog.WarnContext(ctx, "Failed to remove player from matchmaking queue", "player.id", p.ID, "error", err)
		}
		if err := h.playerRepo.SetOffline(ctx, p.ID); err != nil {
			slog.WarnContext(ctx, "Failed to set player offline", "player.id", p.ID, "error", err)
		}
	}
	slog.Info("Player unregistered", "player.id", p.ID)
}

// hasLocalHumans reports whether the room still holds a non-bot player.
// A room whose only occupant is its bot has nobody left to play.
func (h *Hub) hasLocalHumans(r *room.Room) bool {
	for _, p := range r.Players {
		if !p.IsBot {
			return true
		}
	}
	return false
}

// Register returns the channel for registering players with the hub.
func (h *Hub) Register() chan<- *types.RegistrationRequest {
	return h.register
}

// Unregister returns the channel for removing players from the hub.
func (h *Hub) Unregister() chan<- *player.Player {
	return h.unregister
}
