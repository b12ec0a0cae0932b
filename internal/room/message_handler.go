package room

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"calder/tictactoe-arena/internal/events"
	"calder/tictactoe-arena/internal/game"
	"calder/tictactoe-arena/internal/player"
	"calder/tictactoe-arena/internal/repository"
	"calder/tictactoe-arena/internal/validator"
	"calder/tictactoe-arena/pkg/proto"
)

// HandleMessage handles a message from a player. It acts as a dispatcher.
func (r *Room) HandleMessage(p *player.Player, rawMessage []byte) {
	ctx := context.Background()
	ctx, span := tracer.Start(ctx, "room.HandleMessage", trace.WithAttributes(
		attribute.String("player.id", p.ID),
		attribute.String("room.id", r.ID),
	))
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	if p.Status == player.StatusDisconnected {
		slog.WarnContext(ctx, "ignoring message from disconnected player", "player.id", p.ID)
		span.SetStatus(codes.Error, "Message from disconnected player")
		return
	}

	var message proto.ClientToServerMessage
	if err := json.Unmarshal(rawMessage, &message); err != nil {
		slog.ErrorContext(ctx, "error unmarshalling message", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Error unmarshalling message")
		return
	}

	if err := validator.GetValidator().Struct(message); err != nil {
		slog.WarnContext(ctx, "invalid message from player", "player.id", p.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid message format")
		return
	}

	span.SetAttributes(attribute.String("message.type", message.Type))

	switch message.Type {
	case proto.TypeMove:
		r.handleMove(ctx, p, &message)
	case proto.TypeRematch:
		r.handleRematch(ctx, p)
	}
}

// handleMove processes a player's move. All rule enforcement happens in the
// repository's transactional update, which delegates to the engine; the room
// only translates the result onto the wire.
func (r *Room) handleMove(ctx context.Context, p *player.Player, message *proto.ClientToServerMessage) {
	if len(message.Position) != 2 {
		slog.WarnContext(ctx, "move without a position", "player.id", p.ID)
		return
	}

	ctx, moveSpan := tracer.Start(ctx, "room.handleMove", trace.WithAttributes(
		attribute.String("player.id", p.ID),
		attribute.String("room.id", r.ID),
		attribute.Int("move.row", message.Position[0]),
		attribute.Int("move.col", message.Position[1]),
	))
	defer moveSpan.End()

	gameState, err := r.gameRepo.FindByID(ctx, r.ID)
	if err != nil {
		slog.ErrorContext(ctx, "handleMove could not find game state", "room.id", r.ID, "error", err)
		moveSpan.RecordError(err)
		moveSpan.SetStatus(codes.Error, "Could not find game state")
		return
	}

	var playerMark game.Mark
	switch p.ID {
	case gameState.PlayerXID:
		playerMark = game.PlayerX
	case gameState.PlayerOID:
		playerMark = game.PlayerO
	}

	if playerMark == game.None {
		slog.WarnContext(ctx, "player is not part of room", "player.id", p.ID, "room.id", r.ID)
		moveSpan.SetStatus(codes.Error, "Player not part of room")
		return
	}

	_, err = r.gameRepo.Update(ctx, r.ID, playerMark, message.Position[0], message.Position[1])
	if err != nil {
		slog.WarnContext(ctx, "invalid move from player", "player.id", p.ID, "error", err)
		moveSpan.SetAttributes(attribute.Bool("move.valid", false))
		moveSpan.RecordError(err)
		moveSpan.SetStatus(codes.Error, "Invalid move")
		r.sendMoveRejection(p, err)
		return
	}
	moveSpan.SetAttributes(attribute.Bool("move.valid", true))

	roomChannel := fmt.Sprintf("channel:room:%s", r.ID)
	if err := r.rdb.Publish(ctx, roomChannel, "update").Err(); err != nil {
		slog.ErrorContext(ctx, "failed to publish update for room", "room.id", r.ID, "error", err)
		moveSpan.RecordError(err)
		moveSpan.SetStatus(codes.Error, "Failed to publish room update")
	}
}

// sendMoveRejection tells only the offending player why their move was
// refused. The board state is untouched, so no broadcast is needed.
func (r *Room) sendMoveRejection(p *player.Player, cause error) {
	reason := "invalid move"
	switch {
	case errors.Is(cause, game.ErrCellOccupied):
		reason = "cell already occupied"
	case errors.Is(cause, game.ErrOutOfRange):
		reason = "cell out of range"
	case errors.Is(cause, game.ErrGameFinished):
		reason = "game already finished"
	case errors.Is(cause, repository.ErrNotYourTurn):
		reason = "not your turn"
	}

	msg := &proto.ServerToClientMessage{Type: proto.TypeError, Reason: reason}
	data, _ := json.Marshal(msg)
	if p.Conn != nil {
		if err := p.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
			slog.Warn("failed to send move rejection", "player.id", p.ID, "error", err)
		}
	}
}

// handleRematch processes a player's rematch vote.
func (r *Room) handleRematch(ctx context.Context, p *player.Player) {
	ctx, span := tracer.Start(ctx, "room.handleRematch", trace.WithAttributes(
		attribute.String("player.id", p.ID),
		attribute.String("room.id", r.ID),
	))
	defer span.End()

	gameState, err := r.gameRepo.FindByID(ctx, r.ID)
	if err != nil {
		slog.ErrorContext(ctx, "could not get game state for rematch vote", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Could not get game state for rematch vote")
		return
	}

	if !gameState.IsOver() {
		slog.WarnContext(ctx, "rematch requested before game over", "player.id", p.ID)
		span.SetStatus(codes.Error, "Rematch requested before game over")
		return
	}

	slog.InfoContext(ctx, "Player voted for a rematch", "player.id", p.ID, "room.id", r.ID)
	if err := r.gameRepo.RecordVote(ctx, r.ID, p.ID); err != nil {
		slog.ErrorContext(ctx, "failed to record rematch vote", "player.id", p.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to record rematch vote")
		return
	}

	var otherPlayerIsBot bool
	for _, other := range r.Players {
		if other.ID != p.ID && other.IsBot {
			otherPlayerIsBot = true
			break
		}
	}

	if otherPlayerIsBot {
		slog.InfoContext(ctx, "Bot auto-accepts rematch, resetting game", "room.id", r.ID)
		r.resetGameForRematch(ctx)
		return
	}

	allVotes, err := r.gameRepo.GetVotes(ctx, r.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get votes for room", "room.id", r.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to get all votes")
		return
	}

	xVote := fmt.Sprintf("vote:%s", gameState.PlayerXID)
	oVote := fmt.Sprintf("vote:%s", gameState.PlayerOID)

	if allVotes[xVote] == "true" && allVotes[oVote] == "true" {
		slog.InfoContext(ctx, "All players voted for a rematch, resetting game", "room.id", r.ID)
		r.resetGameForRematch(ctx)
		return
	}

	payload, _ := json.Marshal(events.RematchRequestedPayload{
		RoomID:   r.ID,
		PlayerID: p.ID,
	})
	event, _ := json.Marshal(events.Event{Type: "rematch_requested", Payload: payload})
	if err := r.rdb.Publish(ctx, events.EventsChannel, event).Err(); err != nil {
		slog.ErrorContext(ctx, "failed to publish rematch_requested event", "room.id", r.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to publish rematch_requested event")
	}
}
