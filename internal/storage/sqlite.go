// Package storage provides SQLite-based persistence for game recordings.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/replay"
)

// ErrNotFound is returned when a recording does not exist.
var ErrNotFound = errors.New("storage: recording not found")

// Store manages the SQLite database connection for recordings.
type Store struct {
	db *sql.DB
}

// RecordingInfo summarizes a stored recording without its frames.
type RecordingInfo struct {
	ID        int64
	GameID    string
	Seed      int64
	Ticks     int
	Duration  time.Duration
	CreatedAt time.Time
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
		CREATE TABLE IF NOT EXISTS recordings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			tick_rate INTEGER NOT NULL,
			config TEXT NOT NULL DEFAULT '',
			ticks INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_recordings_game_id ON recordings(game_id);

		CREATE TABLE IF NOT EXISTS recording_frames (
			recording_id INTEGER NOT NULL REFERENCES recordings(id) ON DELETE CASCADE,
			tick INTEGER NOT NULL,
			elapsed_us INTEGER NOT NULL,
			actions TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (recording_id, tick)
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

// SaveRecording stores a recording and its frames in one transaction.
// Returns the ID of the inserted record.
func (s *Store) SaveRecording(rec replay.Recording) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`INSERT INTO recordings (game_id, seed, tick_rate, config, ticks, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.GameID, rec.Seed, rec.TickRate, string(rec.Config),
		len(rec.Frames), rec.Duration().Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save recording: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	stmt, err := tx.Prepare(
		"INSERT INTO recording_frames (recording_id, tick, elapsed_us, actions) VALUES (?, ?, ?, ?)",
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot prepare frame insert: %w", err)
	}
	defer stmt.Close()

	for _, f := range rec.Frames {
		if _, err := stmt.Exec(id, f.Tick, f.Elapsed.Microseconds(), encodeActions(f.Actions)); err != nil {
			return 0, fmt.Errorf("storage: cannot save frame %d: %w", f.Tick, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit recording: %w", err)
	}

	return id, nil
}

// Recording loads a recording with all of its frames.
// Returns ErrNotFound if no recording has the given ID.
func (s *Store) Recording(id int64) (replay.Recording, error) {
	var rec replay.Recording
	var config string
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, game_id, seed, tick_rate, config, created_at
		 FROM recordings
		 WHERE id = ?`,
		id,
	).Scan(&rec.ID, &rec.GameID, &rec.Seed, &rec.TickRate, &config, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return rec, ErrNotFound
	}
	if err != nil {
		return rec, fmt.Errorf("storage: cannot query recording: %w", err)
	}
	rec.Config = []byte(config)
	rec.CreatedAt = parseTime(createdAt)

	rows, err := s.db.Query(
		`SELECT tick, elapsed_us, actions
		 FROM recording_frames
		 WHERE recording_id = ?
		 ORDER BY tick`,
		id,
	)
	if err != nil {
		return rec, fmt.Errorf("storage: cannot query frames: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var f replay.Frame
		var elapsedUS int64
		var actions string
		if err := rows.Scan(&f.Tick, &elapsedUS, &actions); err != nil {
			return rec, fmt.Errorf("storage: cannot scan frame: %w", err)
		}
		f.Elapsed = time.Duration(elapsedUS) * time.Microsecond
		f.Actions, err = decodeActions(actions)
		if err != nil {
			return rec, fmt.Errorf("storage: frame %d: %w", f.Tick, err)
		}
		rec.Frames = append(rec.Frames, f)
	}

	if err := rows.Err(); err != nil {
		return rec, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return rec, nil
}

// ListRecordings returns the most recent recordings, newest first.
func (s *Store) ListRecordings(limit int) ([]RecordingInfo, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, seed, ticks, duration_ms, created_at
		 FROM recordings
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query recordings: %w", err)
	}
	defer rows.Close()

	var entries []RecordingInfo
	for rows.Next() {
		var e RecordingInfo
		var durationMS int64
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Seed, &e.Ticks, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Duration = time.Duration(durationMS) * time.Millisecond
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// DeleteRecording removes a recording and its frames.
// Returns ErrNotFound if no recording has the given ID.
func (s *Store) DeleteRecording(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM recording_frames WHERE recording_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete frames: %w", err)
	}
	result, err := tx.Exec("DELETE FROM recordings WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete recording: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}

// encodeActions stores actions as a comma-separated list of names.
func encodeActions(actions []core.Action) string {
	names := make([]string, len(actions))
	for i, a := range actions {
		names[i] = a.String()
	}
	return strings.Join(names, ",")
}

func decodeActions(s string) ([]core.Action, error) {
	if s == "" {
		return nil, nil
	}
	var out []core.Action
	for _, name := range strings.Split(s, ",") {
		a, err := core.ParseAction(name)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// parseTime handles both time.Time and string datetime values.
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
