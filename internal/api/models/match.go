package models

import "time"

// MatchResult is one finished game as stored in the database. An empty
// winner ID means the game ended in a draw.
type MatchResult struct {
	ID         int64     `db:"id"`
	RoomID     string    `db:"room_id"`
	PlayerXID  string    `db:"player_x_id"`
	PlayerOID  string    `db:"player_o_id"`
	WinnerID   string    `db:"winner_id"`
	FinishedAt time.Time `db:"finished_at"`
}

// PlayerStats aggregates a player's finished games.
type PlayerStats struct {
	PlayerID string `json:"player_id"`
	Wins     int    `json:"wins" db:"wins"`
	Losses   int    `json:"losses" db:"losses"`
	Draws    int    `json:"draws" db:"draws"`
}
