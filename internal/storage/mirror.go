package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/akarsten/wakeline/internal/logger"
)

// PostgresMirror keeps a remote copy of the document in a single-row-per-user
// Postgres table. It is strictly best effort: connection or query failures
// report false and the local store remains authoritative.
type PostgresMirror struct {
	db     *sql.DB
	userID string
}

const mirrorSchema = `
CREATE TABLE IF NOT EXISTS wakeline_documents (
	user_id    TEXT PRIMARY KEY,
	data       JSONB NOT NULL,
	updated_at TEXT NOT NULL
)`

// NewPostgresMirror connects to the given DSN and ensures the mirror table
// exists.
func NewPostgresMirror(dsn, userID string) (*PostgresMirror, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open mirror connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("mirror unreachable: %w", err)
	}
	if _, err := db.Exec(mirrorSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create mirror table: %w", err)
	}
	return &PostgresMirror{db: db, userID: userID}, nil
}

func (m *PostgresMirror) Pull() (Document, bool) {
	var data, updatedAt string
	err := m.db.QueryRow(
		`SELECT data, updated_at FROM wakeline_documents WHERE user_id = $1`,
		m.userID).Scan(&data, &updatedAt)
	if err == sql.ErrNoRows {
		return Document{}, false
	}
	if err != nil {
		logger.Warn("mirror pull failed", "error", err)
		return Document{}, false
	}

	var doc Document
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		logger.Warn("mirror document is corrupt, ignoring", "error", err)
		return Document{}, false
	}
	doc.UpdatedAt = updatedAt
	return doc, true
}

func (m *PostgresMirror) Push(doc Document) bool {
	data, err := json.Marshal(doc)
	if err != nil {
		logger.Warn("failed to serialize document for mirror", "error", err)
		return false
	}
	_, err = m.db.Exec(
		`INSERT INTO wakeline_documents (user_id, data, updated_at) VALUES ($1, $2, $3)
		 ON CONFLICT (user_id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		m.userID, string(data), doc.UpdatedAt)
	if err != nil {
		logger.Warn("mirror push failed", "error", err)
		return false
	}
	return true
}

func (m *PostgresMirror) Close() error {
	return m.db.Close()
}
