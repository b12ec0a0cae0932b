package hub

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"calder/tictactoe-arena/internal/bot"
	"calder/tictactoe-arena/internal/events"
	"calder/tictactoe-arena/internal/hub/types"
	"calder/tictactoe-arena/internal/player"
	"calder/tictactoe-arena/internal/room"
)

// tryReconnect checks whether the given previous player ID belongs to a game
// that is still live, and if so rejoins the player. Returns the room ID on
// success and "" when there is nothing to rejoin.
func (h *Hub) tryReconnect(ctx context.Context, p *player.Player, previousID string) string {
	ctx, span := tracer.Start(ctx, "hub.tryReconnect", trace.WithAttributes(
		attribute.String("player.id", previousID),
	))
	defer span.End()

	roomID, _, err := h.playerRepo.FindForReconnection(ctx, previousID)
	if err != nil || roomID == "" {
		slog.InfoContext(ctx, "No game to reconnect to", "player.id", previousID)
		return ""
	}
	span.SetAttributes(attribute.String("room.id", roomID))

	// Resume the old identity so the stored game still recognizes the player.
	h.mu.Lock()
	delete(h.localPlayers, p.ID)
	p.ID = previousID
	h.localPlayers[p.ID] = p
	h.mu.Unlock()

	if err := h.playerRepo.UpdateConnectionStatus(ctx, p.ID, player.StatusConnected); err != nil {
		slog.ErrorContext(ctx, "Failed to mark reconnected player as connected", "player.id", p.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to mark player as connected")
	}

	h.handleReconnectionRegistration(ctx, p, roomID)

	payload, _ := json.Marshal(events.PlayerReconnectedPayload{RoomID: roomID, PlayerID: p.ID})
	event, _ := json.Marshal(events.Event{Type: "player_reconnected", Payload: payload})
	if err := h.rdb.Publish(ctx, events.EventsChannel, event).Err(); err != nil {
		slog.ErrorContext(ctx, "Failed to publish player_reconnected event", "player.id", p.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to publish player_reconnected event")
	}

	return roomID
}

func (h *Hub) handleReconnectionRegistration(ctx context.Context, p *player.Player, roomID string) {
	ctx, span := tracer.Start(ctx, "hub.handleReconnectionRegistration", trace.WithAttributes(
		attribute.String("player.id", p.ID),
		attribute.String("room.id", roomID),
	))
	defer span.End()

	h.mu.Lock()
	existingRoom, ok := h.localRooms[roomID]
	h.mu.Unlock()

	if ok {
		existingRoom.AddPlayer(p)
		go existingRoom.ReadPump(p)
		slog.InfoContext(ctx, "Reconnected player added back to existing local room", "player.id", p.ID, "room.id", roomID)
		h.sendInitialRoomState(ctx, existingRoom, []*player.Player{p})
		return
	}

	slog.InfoContext(ctx, "Creating new local room handler for reconnected player", "player.id", p.ID, "room.id", roomID)
	newRoom := room.NewRoom(roomID, h.rdb, h.gameRepo, h.playerRepo, h.moveCalculator, moveTimeout)
	newRoom.AddPlayer(p)

	h.mu.Lock()
	h.localRooms[roomID] = newRoom
	h.mu.Unlock()

	go newRoom.Start(h.unregister)
	go h.runRoomUpdateSubscriber(ctx, newRoom)
	h.sendInitialRoomState(ctx, newRoom, []*player.Player{p})
}

func (h *Hub) registerBotGame(ctx context.Context, req *types.RegistrationRequest) {
	ctx, span := tracer.Start(ctx, "hub.registerBotGame", trace.WithAttributes(
		attribute.String("player.id", req.Player.ID),
		attribute.String("bot.difficulty", req.Difficulty),
	))
	defer span.End()

	slog.InfoContext(ctx, "Creating bot match", "player.id", req.Player.ID, "bot.difficulty", req.Difficulty)

	// Players facing a harder bot get less time to think.
	var botGameTimeout time.Duration
	switch req.Difficulty {
	case bot.DifficultyHard:
		botGameTimeout = 5 * time.Second
	case bot.DifficultyEasy:
		botGameTimeout = 15 * time.Second
	default:
		botGameTimeout = 10 * time.Second
	}

	roomID := uuid.New().String()
	newRoom := room.NewRoom(roomID, h.rdb, h.gameRepo, h.playerRepo, h.moveCalculator, botGameTimeout)

	player1 := req.Player
	player2 := bot.NewBotPlayer(req.Difficulty, h.moveCalculator)

	if err := h.gameRepo.Create(ctx, roomID, player1.ID, player2.ID); err != nil {
		slog.ErrorContext(ctx, "Failed to create bot game in Redis", "room.id", roomID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create bot game in Redis")
		return
	}
	if err := h.playerRepo.UpdateForMatch(ctx, player1.ID, roomID); err != nil {
		slog.ErrorContext(ctx, "Failed to update player state for bot match", "player.id", player1.ID, "error", err)
		span.RecordError(err)
	}

	newRoom.AddPlayer(player1)
	newRoom.AddPlayer(player2)

	h.mu.Lock()
	h.localRooms[roomID] = newRoom
	h.mu.Unlock()

	go newRoom.Start(h.unregister)
	go h.runRoomUpdateSubscriber(ctx, newRoom)
	slog.InfoContext(ctx, "Local room handler created for bot match", "room.id", roomID, "bot.id", player2.ID)

	h.sendInitialRoomState(ctx, newRoom, newRoom.Players)
}

func (h *Hub) queuePlayerForMatchmaking(ctx context.Context, req *types.RegistrationRequest) {
	ctx, span := tracer.Start(ctx, "hub.queuePlayerForMatchmaking", trace.WithAttributes(
		attribute.String("player.id", req.Player.ID),
	))
	defer span.End()

	slog.InfoContext(ctx, "Player added to matchmaking queue", "player.id", req.Player.ID)

	if err := h.matchmakingRepo.AddToQueue(ctx, req.Player.ID); err != nil {
		slog.ErrorContext(ctx, "Failed to add player to queue", "player.id", req.Player.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to add player to queue")
	}
}
