package hub

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"calder/tictactoe-arena/internal/events"
	"calder/tictactoe-arena/internal/player"
	"calder/tictactoe-arena/internal/room"
	"calder/tictactoe-arena/pkg/proto"
)

func (h *Hub) runEventSubscriber(ctx context.Context) {
	slog.InfoContext(ctx, "Event subscriber started", "channel", events.EventsChannel)
	pubsub := h.rdb.Subscribe(ctx, events.EventsChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		eventCtx, eventSpan := tracer.Start(ctx, "hub.handleEvent", trace.WithAttributes(
			attribute.String("event.channel", events.EventsChannel),
			attribute.String("event.payload", msg.Payload),
		))

		var event events.Event
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			slog.ErrorContext(eventCtx, "Could not unmarshal global event", "error", err)
			eventSpan.RecordError(err)
			eventSpan.SetStatus(codes.Error, "Could not unmarshal global event")
			eventSpan.End()
			continue
		}
		eventSpan.SetAttributes(attribute.String("event.type", event.Type))

		switch event.Type {
		case "match_made":
			var payload events.MatchMadePayload
			if err := json.Unmarshal(event.Payload, &payload); err != nil {
				slog.ErrorContext(eventCtx, "Could not unmarshal match_made payload", "error", err)
				eventSpan.RecordError(err)
			} else {
				h.handleMatchMade(eventCtx, &payload)
			}

		case "player_disconnected":
			var payload events.PlayerDisconnectedPayload
			if err := json.Unmarshal(event.Payload, &payload); err != nil {
				slog.ErrorContext(eventCtx, "Could not unmarshal player_disconnected payload", "error", err)
				eventSpan.RecordError(err)
			} else {
				h.handlePlayerDisconnected(eventCtx, &payload)
			}

		case "player_reconnected":
			var payload events.PlayerReconnectedPayload
			if err := json.Unmarshal(event.Payload, &payload); err != nil {
				slog.ErrorContext(eventCtx, "Could not unmarshal player_reconnected payload", "error", err)
				eventSpan.RecordError(err)
			} else {
				h.handlePlayerReconnected(eventCtx, &payload)
			}

		case "rematch_requested":
			var payload events.RematchRequestedPayload
			if err := json.Unmarshal(event.Payload, &payload); err != nil {
				slog.ErrorContext(eventCtx, "Could not unmarshal rematch_requested payload", "error", err)
				eventSpan.RecordError(err)
			} else {
				h.handleRematchRequested(eventCtx, &payload)
			}

		case "rematch_successful":
			var payload events.RematchSuccessfulPayload
			if err := json.Unmarshal(event.Payload, &payload); err != nil {
				slog.ErrorContext(eventCtx, "Could not unmarshal rematch_successful payload", "error", err)
				eventSpan.RecordError(err)
			} else {
				h.handleRematchSuccessful(eventCtx, &payload)
			}
		}
		eventSpan.End()
	}
}

func (h *Hub) handleMatchMade(ctx context.Context, payload *events.MatchMadePayload) {
	ctx, span := tracer.Start(ctx, "hub.handleMatchMade", trace.WithAttributes(
		attribute.String("room.id", payload.RoomID),
		attribute.Int("player.count", len(payload.PlayerIDs)),
	))
	defer span.End()

	slog.InfoContext(ctx, "Received match_made event", "room.id", payload.RoomID)

	var localPlayersInRoom []*player.Player
	h.mu.Lock()
	for _, playerID := range payload.PlayerIDs {
		if p, isLocal := h.localPlayers[playerID]; isLocal {
			localPlayersInRoom = append(localPlayersInRoom, p)
		}
	}
	h.mu.Unlock()

	if len(localPlayersInRoom) > 0 {
		slog.InfoContext(ctx, "Found local players for room, creating handler", "local_players.count", len(localPlayersInRoom), "room.id", payload.RoomID)
		h.createAndStartRoom(ctx, payload.RoomID, localPlayersInRoom)
	}
}

func (h *Hub) handlePlayerDisconnected(ctx context.Context, payload *events.PlayerDisconnectedPayload) {
	ctx, span := tracer.Start(ctx, "hub.handlePlayerDisconnected", trace.WithAttributes(
		attribute.String("room.id", payload.RoomID),
		attribute.String("player.id", payload.PlayerID),
	))
	defer span.End()

	slog.InfoContext(ctx, "Received player_disconnected event", "player.id", payload.PlayerID, "room.id", payload.RoomID)

	h.mu.Lock()
	r, ok := h.localRooms[payload.RoomID]
	h.mu.Unlock()
	if ok {
		r.HandleOpponentDisconnected()
	}
}

func (h *Hub) handlePlayerReconnected(ctx context.Context, payload *events.PlayerReconnectedPayload) {
	ctx, span := tracer.Start(ctx, "hub.handlePlayerReconnected", trace.WithAttributes(
		attribute.String("room.id", payload.RoomID),
		attribute.String("player.id", payload.PlayerID),
	))
	defer span.End()

	slog.InfoContext(ctx, "Received player_reconnected event", "player.id", payload.PlayerID, "room.id", payload.RoomID)

	h.mu.Lock()
	r, ok := h.localRooms[payload.RoomID]
	h.mu.Unlock()
	if ok {
		r.HandleOpponentReconnected()
	}
}

func (h *Hub) handleRematchSuccessful(ctx context.Context, payload *events.RematchSuccessfulPayload) {
	ctx, span := tracer.Start(ctx, "hub.handleRematchSuccessful", trace.WithAttributes(
		attribute.String("room.id", payload.RoomID),
	))
	defer span.End()

	slog.InfoContext(ctx, "Received rematch_successful event", "room.id", payload.RoomID)

	h.mu.Lock()
	r, ok := h.localRooms[payload.RoomID]
	h.mu.Unlock()
	if ok {
		// Marks may have swapped, so resend assignments along with the state.
		h.sendInitialRoomState(ctx, r, r.Players)
	}
}

func (h *Hub) handleRematchRequested(ctx context.Context, payload *events.RematchRequestedPayload) {
	ctx, span := tracer.Start(ctx, "hub.handleRematchRequested", trace.WithAttributes(
		attribute.String("room.id", payload.RoomID),
		attribute.String("player.id", payload.PlayerID),
	))
	defer span.End()

	slog.InfoContext(ctx, "Received rematch_requested event", "player.id", payload.PlayerID, "room.id", payload.RoomID)

	h.mu.Lock()
	r, ok := h.localRooms[payload.RoomID]
	h.mu.Unlock()
	if !ok {
		return
	}

	for _, p := range r.Players {
		if p.ID == payload.PlayerID || p.Conn == nil {
			continue
		}
		msg := &proto.ServerToClientMessage{Type: proto.TypeRematchRequested}
		data, _ := json.Marshal(msg)
		if err := p.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
			slog.ErrorContext(ctx, "Error sending rematch_requested to player", "player.id", p.ID, "error", err)
			span.RecordError(err)
			span.SetStatus(codes.Error, "Error sending rematch_requested")
		}
	}
}

// createAndStartRoom creates a local room handler and starts its goroutines.
func (h *Hub) createAndStartRoom(ctx context.Context, roomID string, localPlayers []*player.Player) {
	ctx, span := tracer.Start(ctx, "hub.createAndStartRoom", trace.WithAttributes(
		attribute.String("room.id", roomID),
		attribute.Int("local_players.count", len(localPlayers)),
	))
	defer span.End()

	newRoom := room.NewRoom(roomID, h.rdb, h.gameRepo, h.playerRepo, h.moveCalculator, moveTimeout)
	for _, p := range localPlayers {
		newRoom.AddPlayer(p)
	}

	h.mu.Lock()
	h.localRooms[roomID] = newRoom
	h.mu.Unlock()

	go newRoom.Start(h.unregister)
	go h.runRoomUpdateSubscriber(ctx, newRoom)
	h.sendInitialRoomState(ctx, newRoom, localPlayers)
}
