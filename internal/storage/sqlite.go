// Package storage provides SQLite-based persistence for session results
// and stage progress.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Outcomes stored in the results table.
const (
	OutcomeWon  = "won"
	OutcomeLost = "lost"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Result is one finished session.
type Result struct {
	ID               int64
	GameID           string
	Outcome          string // OutcomeWon or OutcomeLost
	Reason           string // "caught" or "timeout" for losses
	SecondsRemaining int
	ElapsedMs        int64 // Active play time
	CreatedAt        time.Time
}

// Progress tracks how often a stage was cleared.
type Progress struct {
	GameID        string
	ClearedCount  int
	LastClearedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Servers share one store across sessions; SQLite takes one writer
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			outcome TEXT NOT NULL,
			reason TEXT NOT NULL DEFAULT '',
			seconds_remaining INTEGER NOT NULL DEFAULT 0,
			elapsed_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_game_id ON results(game_id);
		CREATE INDEX IF NOT EXISTS idx_results_top ON results(game_id, outcome, seconds_remaining DESC);

		CREATE TABLE IF NOT EXISTS progress (
			game_id TEXT PRIMARY KEY,
			cleared_count INTEGER NOT NULL DEFAULT 0,
			last_cleared_at DATETIME
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveResult records a finished session.
// Returns the ID of the inserted record.
func (s *Store) SaveResult(r Result) (int64, error) {
	if r.Outcome != OutcomeWon && r.Outcome != OutcomeLost {
		return 0, fmt.Errorf("storage: unknown outcome %q", r.Outcome)
	}

	res, err := s.db.Exec(
		`INSERT INTO results (game_id, outcome, reason, seconds_remaining, elapsed_ms)
		 VALUES (?, ?, ?, ?, ?)`,
		r.GameID, r.Outcome, r.Reason, r.SecondsRemaining, r.ElapsedMs,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopResults returns the best wins: most seconds left, then fastest.
func (s *Store) TopResults(gameID string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}

	return s.queryResults(
		`SELECT id, game_id, outcome, reason, seconds_remaining, elapsed_ms, created_at
		 FROM results
		 WHERE game_id = ? AND outcome = ?
		 ORDER BY seconds_remaining DESC, elapsed_ms ASC, id ASC
		 LIMIT ?`,
		gameID, OutcomeWon, limit,
	)
}

// RecentResults returns the latest sessions of any outcome, newest first.
func (s *Store) RecentResults(gameID string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 20
	}

	return s.queryResults(
		`SELECT id, game_id, outcome, reason, seconds_remaining, elapsed_ms, created_at
		 FROM results
		 WHERE game_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		gameID, limit,
	)
}

func (s *Store) queryResults(query string, args ...any) ([]Result, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var createdAt any
		if err := rows.Scan(&r.ID, &r.GameID, &r.Outcome, &r.Reason, &r.SecondsRemaining, &r.ElapsedMs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// ClearResults deletes all results and progress for the given game.
func (s *Store) ClearResults(gameID string) error {
	if _, err := s.db.Exec("DELETE FROM results WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM progress WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear progress: %w", err)
	}
	return nil
}

// StageCleared counts one more clear of the stage.
// It satisfies the game's progress notifier.
func (s *Store) StageCleared(gameID string) error {
	_, err := s.db.Exec(
		`INSERT INTO progress (game_id, cleared_count, last_cleared_at)
		 VALUES (?, 1, CURRENT_TIMESTAMP)
		 ON CONFLICT(game_id) DO UPDATE SET
		   cleared_count = cleared_count + 1,
		   last_cleared_at = CURRENT_TIMESTAMP`,
		gameID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record stage clear: %w", err)
	}
	return nil
}

// Progress returns the clear count for a stage. A stage never cleared
// returns a zero count and no error.
func (s *Store) Progress(gameID string) (Progress, error) {
	p := Progress{GameID: gameID}
	var last any
	err := s.db.QueryRow(
		"SELECT cleared_count, last_cleared_at FROM progress WHERE game_id = ?",
		gameID,
	).Scan(&p.ClearedCount, &last)

	if errors.Is(err, sql.ErrNoRows) {
		return p, nil
	}
	if err != nil {
		return p, fmt.Errorf("storage: cannot query progress: %w", err)
	}
	p.LastClearedAt = parseTime(last)
	return p, nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID      string
	GamesCount  int
	Wins        int
	Caught      int
	Timeouts    int
	BestSeconds int // Most seconds left on a win
	LastPlayed  time.Time
}

// WinRate returns the share of games won, 0 when nothing was played.
func (g GameStats) WinRate() float64 {
	if g.GamesCount == 0 {
		return 0
	}
	return float64(g.Wins) / float64(g.GamesCount)
}

// GetGameStats retrieves aggregated statistics for a specific game.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = 'won' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN outcome = 'lost' AND reason = 'caught' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN outcome = 'lost' AND reason = 'timeout' THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(CASE WHEN outcome = 'won' THEN seconds_remaining END), 0),
		        MAX(created_at)
		 FROM results WHERE game_id = ?`,
		gameID,
	).Scan(&stats.GamesCount, &stats.Wins, &stats.Caught, &stats.Timeouts, &stats.BestSeconds, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// parseTime handles both time.Time and the string form SQLite returns for DATETIME columns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
