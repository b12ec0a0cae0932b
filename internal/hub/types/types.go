package types

import (
	"context"

	"calder/tictactoe-arena/internal/player"
)

// RegistrationRequest represents a request to register a player with the hub.
type RegistrationRequest struct {
	Player     *player.Player
	PlayerID   string // used for reconnection
	Mode       string // "human" or "bot"
	Difficulty string // "easy", "medium", "hard"
	Ctx        context.Context
}

// PlayerMove couples an incoming raw message with its sender.
type PlayerMove struct {
	Player  *player.Player
	Message []byte
}
