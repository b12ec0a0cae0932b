package hub

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"calder/tictactoe-arena/internal/events"
	"calder/tictactoe-arena/internal/game"
	"calder/tictactoe-arena/internal/room"
)

// runRoomUpdateSubscriber relays stored game changes to the room's local
// players. Any instance that writes a move publishes to the room channel;
// every instance holding players of that room is subscribed here.
func (h *Hub) runRoomUpdateSubscriber(ctx context.Context, r *room.Room) {
	roomChannel := fmt.Sprintf("channel:room:%s", r.ID)
	slog.InfoContext(ctx, "Starting subscriber for room", "room.id", r.ID, "channel", roomChannel)
	pubsub := h.rdb.Subscribe(ctx, roomChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for msg := range ch {
		updateCtx, updateSpan := tracer.Start(ctx, "hub.handleRoomUpdate", trace.WithAttributes(
			attribute.String("room.id", r.ID),
			attribute.String("redis.payload", msg.Payload),
		))

		gameState, err := h.gameRepo.FindByID(updateCtx, r.ID)
		if err != nil {
			slog.ErrorContext(updateCtx, "Room subscriber could not get game state", "room.id", r.ID, "error", err)
			updateSpan.RecordError(err)
			updateSpan.SetStatus(codes.Error, "Could not get game state")
			updateSpan.End()
			continue
		}

		r.Broadcast(updateMessageFromState(gameState))

		if gameState.IsOver() && h.resultRecorder != nil {
			winnerID := ""
			switch gameState.Outcome.Winner {
			case game.PlayerX:
				winnerID = gameState.PlayerXID
			case game.PlayerO:
				winnerID = gameState.PlayerOID
			}
			if err := h.resultRecorder.RecordResult(updateCtx, r.ID, gameState.PlayerXID, gameState.PlayerOID, winnerID); err != nil {
				slog.ErrorContext(updateCtx, "Failed to record match result", "room.id", r.ID, "error", err)
				updateSpan.RecordError(err)
			}
		}
		updateSpan.End()
	}
	slog.InfoContext(ctx, "Stopping subscriber for room", "room.id", r.ID)
}

// runMatcher pulls pairs off the Redis matchmaking queue, persists a fresh
// game for them, and announces the match on the global event channel.
func (h *Hub) runMatcher(ctx context.Context) {
	slog.InfoContext(ctx, "Redis-based matcher started")
	for {
		if ctx.Err() != nil {
			return
		}

		matchCtx, matchSpan := tracer.Start(ctx, "hub.runMatcher.matchAttempt")

		player1ID, player2ID, err := h.matchmakingRepo.GetPlayersFromQueue(matchCtx)
		if err != nil {
			slog.WarnContext(matchCtx, "Error getting players from queue", "error", err)
			matchSpan.RecordError(err)
			matchSpan.SetStatus(codes.Error, "Error getting players from queue")
			matchSpan.End()
			time.Sleep(1 * time.Second)
			continue
		}
		matchSpan.SetAttributes(attribute.String("player1.id", player1ID), attribute.String("player2.id", player2ID))

		roomID := uuid.New().String()
		matchSpan.SetAttributes(attribute.String("room.id", roomID))

		// Marks are assigned randomly; X still opens.
		if game.RandomlyChooseFirstPlayer() == game.PlayerO {
			player1ID, player2ID = player2ID, player1ID
		}

		if err := h.gameRepo.Create(matchCtx, roomID, player1ID, player2ID); err != nil {
			slog.ErrorContext(matchCtx, "Failed to create game in Redis, re-queuing players", "room.id", roomID, "error", err)
			matchSpan.RecordError(err)
			matchSpan.SetStatus(codes.Error, "Failed to create game in Redis")
			if err := h.matchmakingRepo.AddToQueue(matchCtx, player1ID); err != nil {
				slog.ErrorContext(matchCtx, "Failed to re-queue player", "player.id", player1ID, "error", err)
				matchSpan.RecordError(err)
			}
			if err := h.matchmakingRepo.AddToQueue(matchCtx, player2ID); err != nil {
				slog.ErrorContext(matchCtx, "Failed to re-queue player", "player.id", player2ID, "error", err)
				matchSpan.RecordError(err)
			}
			matchSpan.End()
			continue
		}

		if err := h.playerRepo.UpdateForMatch(matchCtx, player1ID, roomID); err != nil {
			slog.ErrorContext(matchCtx, "Failed to update player state for match", "player.id", player1ID, "error", err)
			matchSpan.RecordError(err)
		}
		if err := h.playerRepo.UpdateForMatch(matchCtx, player2ID, roomID); err != nil {
			slog.ErrorContext(matchCtx, "Failed to update player state for match", "player.id", player2ID, "error", err)
			matchSpan.RecordError(err)
		}

		payload, err := json.Marshal(events.MatchMadePayload{RoomID: roomID, PlayerIDs: []string{player1ID, player2ID}})
		if err != nil {
			slog.ErrorContext(matchCtx, "Failed to marshal match_made payload", "error", err)
			matchSpan.RecordError(err)
			matchSpan.End()
			continue
		}
		event, _ := json.Marshal(events.Event{Type: "match_made", Payload: payload})

		if err := h.rdb.Publish(matchCtx, events.EventsChannel, event).Err(); err != nil {
			slog.ErrorContext(matchCtx, "Failed to publish match_made event", "error", err)
			matchSpan.RecordError(err)
			matchSpan.SetStatus(codes.Error, "Failed to publish match_made event")
			matchSpan.End()
			continue
		}

		slog.InfoContext(matchCtx, "Match made", "room.id", roomID, "player1.id", player1ID, "player2.id", player2ID)
		matchSpan.End()
	}
}
