package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"calder/tictactoe-arena/internal/api/models"
)

// StatsRepository records finished games and aggregates per-player records.
type StatsRepository interface {
	RecordResult(ctx context.Context, roomID, playerXID, playerOID, winnerID string) error
	GetPlayerStats(ctx context.Context, playerID string) (*models.PlayerStats, error)
}

type sqliteStatsRepository struct {
	db *sqlx.DB
}

// NewStatsRepository creates a new SQLite-based StatsRepository.
func NewStatsRepository(db *sqlx.DB) StatsRepository {
	return &sqliteStatsRepository{db: db}
}

// RecordResult stores a finished game. An empty winnerID records a draw.
// The room ID is unique, so every server instance may report the same game
// and only the first insert lands.
func (r *sqliteStatsRepository) RecordResult(ctx context.Context, roomID, playerXID, playerOID, winnerID string) error {
	query := `INSERT OR IGNORE INTO match_results (room_id, player_x_id, player_o_id, winner_id, finished_at)
	          VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)`
	if _, err := r.db.ExecContext(ctx, query, roomID, playerXID, playerOID, winnerID); err != nil {
		return fmt.Errorf("failed to record match result: %w", err)
	}
	return nil
}

// GetPlayerStats counts the player's wins, losses, and draws.
func (r *sqliteStatsRepository) GetPlayerStats(ctx context.Context, playerID string) (*models.PlayerStats, error) {
	stats := models.PlayerStats{PlayerID: playerID}
	query := `SELECT
	            COUNT(CASE WHEN winner_id = ? THEN 1 END) AS wins,
	            COUNT(CASE WHEN winner_id != '' AND winner_id != ? THEN 1 END) AS losses,
	            COUNT(CASE WHEN winner_id = '' THEN 1 END) AS draws
	          FROM match_results
	          WHERE player_x_id = ? OR player_o_id = ?`
	if err := r.db.GetContext(ctx, &stats, query, playerID, playerID, playerID, playerID); err != nil {
		return nil, fmt.Errorf("failed to get player stats: %w", err)
	}
	return &stats, nil
}
