package proto

import "calder/tictactoe-arena/internal/game"

// Message type identifiers shared by both directions.
const (
	TypeMove       = "move"
	TypeRematch    = "rematch"
	TypeUpdate     = "update"
	TypeAssignment = "assignment"
	TypeError      = "error"

	TypeOpponentDisconnected = "opponent_disconnected"
	TypeOpponentReconnected  = "opponent_reconnected"
	TypeRematchRequested     = "rematch_requested"
)

// ClientToServerMessage represents a message from the client to the server.
type ClientToServerMessage struct {
	Type     string `json:"type" validate:"required,oneof=move rematch"`
	Position []int  `json:"position,omitempty" validate:"omitempty,len=2"`
}

// ServerToClientMessage represents a message from the server to the client.
type ServerToClientMessage struct {
	Type    string        `json:"type" validate:"required"`
	Reason  string        `json:"reason,omitempty"`
	Board   [][]game.Mark `json:"board,omitempty"`
	Next    game.Mark     `json:"next,omitempty"`
	Winner  game.Mark     `json:"winner,omitempty"`
	Draw    bool          `json:"draw,omitempty"`
	WinLine *game.Line    `json:"winLine,omitempty"`
}

// PlayerAssignmentMessage informs a player of their assigned mark.
type PlayerAssignmentMessage struct {
	Type     string    `json:"type"`
	PlayerID string    `json:"playerId,omitempty"`
	Mark     game.Mark `json:"mark"`
}
