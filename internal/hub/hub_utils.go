package hub

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"calder/tictactoe-arena/internal/game"
	"calder/tictactoe-arena/internal/player"
	"calder/tictactoe-arena/internal/room"
	"calder/tictactoe-arena/pkg/proto"
)

// updateMessageFromState renders a stored game as the wire update message.
func updateMessageFromState(state *game.GameStateDTO) *proto.ServerToClientMessage {
	msg := &proto.ServerToClientMessage{
		Type:   proto.TypeUpdate,
		Board:  state.Board.AsSlices(),
		Next:   state.CurrentTurn,
		Winner: state.Outcome.Winner,
		Draw:   state.Outcome.Status == game.Draw,
	}
	if state.Outcome.Status == game.Won {
		line := state.Outcome.Line
		msg.WinLine = &line
	}
	return msg
}

// sendInitialRoomState sends mark assignments to the given players and
// broadcasts the current board to the whole room.
func (h *Hub) sendInitialRoomState(ctx context.Context, r *room.Room, localPlayers []*player.Player) {
	ctx, span := tracer.Start(ctx, "hub.sendInitialRoomState", trace.WithAttributes(
		attribute.String("room.id", r.ID),
		attribute.Int("local_players.count", len(localPlayers)),
	))
	defer span.End()

	slog.InfoContext(ctx, "Sending initial room state", "room.id", r.ID, "local_players.count", len(localPlayers))

	initialGameState, err := h.gameRepo.FindByID(ctx, r.ID)
	if err != nil {
		slog.ErrorContext(ctx, "Could not get initial game state", "room.id", r.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Could not get initial game state")
		return
	}

	for _, p := range localPlayers {
		var mark game.Mark
		switch p.ID {
		case initialGameState.PlayerXID:
			mark = game.PlayerX
		case initialGameState.PlayerOID:
			mark = game.PlayerO
		default:
			continue
		}
		assignmentMessage := &proto.PlayerAssignmentMessage{Type: proto.TypeAssignment, PlayerID: p.ID, Mark: mark}
		data, _ := json.Marshal(assignmentMessage)
		if p.Conn != nil {
			if err := p.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
				slog.ErrorContext(ctx, "Error sending assignment to player", "player.id", p.ID, "error", err)
				span.RecordError(err)
				span.SetStatus(codes.Error, "Error sending assignment to player")
			}
		}
	}

	r.Broadcast(updateMessageFromState(initialGameState))
}
