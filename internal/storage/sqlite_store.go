package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/akarsten/wakeline/internal/logger"
	"github.com/akarsten/wakeline/internal/models"
)

// SQLiteStore persists the document in a SQLite database: one row per wake
// day (the day record serialized as JSON), a settings row, and a meta row
// carrying the last-write timestamp.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

const schema = `
CREATE TABLE IF NOT EXISTS days (
	key  TEXT PRIMARY KEY,
	data TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS settings (
	id   INTEGER PRIMARY KEY CHECK (id = 1),
	data TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	if err := s.open(); err != nil {
		return err
	}
	if !s.Save(DefaultDocument()) {
		return fmt.Errorf("failed to write initial storage at %s", s.path)
	}
	return nil
}

func (s *SQLiteStore) open() error {
	if s.db != nil {
		return nil
	}
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}
	s.db = db
	return nil
}

func (s *SQLiteStore) Load() Document {
	doc := DefaultDocument()

	if err := s.open(); err != nil {
		logger.Error("failed to open storage", "path", s.path, "error", err)
		return doc
	}

	rows, err := s.db.Query(`SELECT key, data FROM days`)
	if err != nil {
		logger.Error("failed to read days", "error", err)
		return doc
	}
	defer rows.Close()

	for rows.Next() {
		var key, data string
		if err := rows.Scan(&key, &data); err != nil {
			logger.Error("failed to scan day row", "error", err)
			continue
		}
		var day models.WakeDay
		if err := json.Unmarshal([]byte(data), &day); err != nil {
			logger.Error("skipping corrupt day record", "key", key, "error", err)
			continue
		}
		doc.Days[key] = day
	}
	if err := rows.Err(); err != nil {
		logger.Error("failed while iterating days", "error", err)
	}

	var settingsJSON string
	err = s.db.QueryRow(`SELECT data FROM settings WHERE id = 1`).Scan(&settingsJSON)
	if err == nil {
		var settings Settings
		if jsonErr := json.Unmarshal([]byte(settingsJSON), &settings); jsonErr == nil {
			doc.Settings = settings
		}
	} else if err != sql.ErrNoRows {
		logger.Error("failed to read settings", "error", err)
	}

	var updatedAt string
	err = s.db.QueryRow(`SELECT value FROM meta WHERE key = 'updated_at'`).Scan(&updatedAt)
	if err == nil {
		doc.UpdatedAt = updatedAt
	} else if err != sql.ErrNoRows {
		logger.Error("failed to read meta", "error", err)
	}

	return doc
}

func (s *SQLiteStore) Save(doc Document) bool {
	if err := s.open(); err != nil {
		logger.Error("failed to open storage", "path", s.path, "error", err)
		return false
	}

	tx, err := s.db.Begin()
	if err != nil {
		logger.Error("failed to begin transaction", "error", err)
		return false
	}
	defer tx.Rollback()

	// The document is the source of truth; replace the full day set so
	// deletions propagate.
	if _, err := tx.Exec(`DELETE FROM days`); err != nil {
		logger.Error("failed to clear days", "error", err)
		return false
	}
	for key, day := range doc.Days {
		data, err := json.Marshal(day)
		if err != nil {
			logger.Error("failed to serialize day", "key", key, "error", err)
			return false
		}
		if _, err := tx.Exec(`INSERT INTO days (key, data) VALUES (?, ?)`, key, string(data)); err != nil {
			logger.Error("failed to write day", "key", key, "error", err)
			return false
		}
	}

	settingsJSON, err := json.Marshal(doc.Settings)
	if err != nil {
		logger.Error("failed to serialize settings", "error", err)
		return false
	}
	if _, err := tx.Exec(
		`INSERT INTO settings (id, data) VALUES (1, ?) ON CONFLICT (id) DO UPDATE SET data = excluded.data`,
		string(settingsJSON)); err != nil {
		logger.Error("failed to write settings", "error", err)
		return false
	}

	updatedAt := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.Exec(
		`INSERT INTO meta (key, value) VALUES ('updated_at', ?) ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		updatedAt); err != nil {
		logger.Error("failed to write meta", "error", err)
		return false
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit storage write", "error", err)
		return false
	}
	return true
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) Path() string { return s.path }
