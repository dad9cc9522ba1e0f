package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/akarsten/wakeline/internal/logger"
	"github.com/akarsten/wakeline/internal/models"
)

// JSONStore persists the document as a single pretty-printed JSON file.
type JSONStore struct {
	path string
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	doc := DefaultDocument()
	doc.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	if !s.write(doc) {
		return fmt.Errorf("failed to write initial storage at %s", s.path)
	}
	return nil
}

func (s *JSONStore) Load() Document {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Error("failed to read storage", "path", s.path, "error", err)
		}
		return DefaultDocument()
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		logger.Error("failed to parse storage, starting empty", "path", s.path, "error", err)
		return DefaultDocument()
	}
	if doc.Days == nil {
		doc.Days = make(map[string]models.WakeDay)
	}
	return doc
}

func (s *JSONStore) Save(doc Document) bool {
	doc.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	return s.write(doc)
}

// write stores atomically: temp file in the same directory, then rename.
func (s *JSONStore) write(doc Document) bool {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		logger.Error("failed to serialize storage", "error", err)
		return false
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		logger.Error("failed to create data directory", "error", err)
		return false
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".wakeline-*.tmp")
	if err != nil {
		logger.Error("failed to create temp file", "error", err)
		return false
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		logger.Error("failed to write storage", "error", err)
		return false
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		logger.Error("failed to close temp file", "error", err)
		return false
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		logger.Error("failed to replace storage", "error", err)
		return false
	}
	return true
}

func (s *JSONStore) Close() error { return nil }

func (s *JSONStore) Path() string { return s.path }
