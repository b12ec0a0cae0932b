package models

import "calder/tictactoe-arena/internal/game"

// CreateLocalGameRequest starts a single-client game session: either two
// players sharing the device or one player against the bot.
type CreateLocalGameRequest struct {
	Mode       string `json:"mode" binding:"required,oneof=local bot"`
	Difficulty string `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
}

// MoveRequest places a mark on the current session board.
type MoveRequest struct {
	Row int `json:"row" binding:"min=0,max=2"`
	Col int `json:"col" binding:"min=0,max=2"`
}

// LocalGameState is the API view of a session.
type LocalGameState struct {
	ID      string        `json:"id"`
	Mode    string        `json:"mode"`
	State   string        `json:"state"`
	Board   [][]game.Mark `json:"board"`
	Next    game.Mark     `json:"next,omitempty"`
	Winner  game.Mark     `json:"winner,omitempty"`
	Draw    bool          `json:"draw,omitempty"`
	WinLine *game.Line    `json:"winLine,omitempty"`
}
