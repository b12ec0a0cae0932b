package game

// Redis hash field names for a stored game.
const (
	FieldBoard    = "board"
	FieldPlayerX  = "player_x"
	FieldPlayerO  = "player_o"
	FieldNextTurn = "next_turn"
	FieldStatus   = "status"
	FieldWinner   = "winner"
	FieldWinLine  = "win_line"
)

// GameStateDTO is the flattened view of a stored game that repositories hand
// to rooms and the hub.
type GameStateDTO struct {
	Board       Board
	CurrentTurn Mark
	Outcome     Outcome
	PlayerXID   string
	PlayerOID   string
}

// IsOver reports whether the stored game reached a terminal outcome.
func (s *GameStateDTO) IsOver() bool {
	return s.Outcome.Terminal()
}
