package db

import (
	"fmt"
	"os"
	"sync"

	_ "github.com/glebarez/go-sqlite"
	"github.com/jmoiron/sqlx"
)

var (
	once   sync.Once
	dbConn *sqlx.DB
	dbErr  error
)

const defaultSQLitePath = "./arena.db"

// Connect opens (once) the process-wide SQLite pool. The path comes from
// SQLITE_PATH, falling back to a file next to the binary.
func Connect() (*sqlx.DB, error) {
	once.Do(func() {
		path := os.Getenv("SQLITE_PATH")
		if path == "" {
			path = defaultSQLitePath
		}
		pool, err := sqlx.Open("sqlite", path)
		if err != nil {
			dbErr = fmt.Errorf("failed to open sqlite database at %s: %w", path, err)
			return
		}
		dbConn = pool
	})
	return dbConn, dbErr
}

// Initialize opens the database and verifies the schema exists.
func Initialize() error {
	conn, err := Connect()
	if err != nil {
		return err
	}

	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	userSchema := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL
	);`

	if _, err := conn.Exec(userSchema); err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}

	matchSchema := `
	CREATE TABLE IF NOT EXISTS match_results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		room_id TEXT NOT NULL UNIQUE,
		player_x_id TEXT NOT NULL,
		player_o_id TEXT NOT NULL,
		winner_id TEXT NOT NULL DEFAULT '',
		finished_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err := conn.Exec(matchSchema); err != nil {
		return fmt.Errorf("failed to create match_results table: %w", err)
	}

	return nil
}
