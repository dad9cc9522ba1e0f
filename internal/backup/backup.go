// Package backup keeps rotating snapshots of the data file next to it in a
// backups/ directory. Snapshots are taken before the TUI starts and on
// demand via the CLI.
package backup

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/akarsten/wakeline/internal/logger"
)

const (
	// MaxBackups bounds the rotation; roughly two weeks of daily use.
	MaxBackups = 14
	dirName    = "backups"
	filePrefix = "wakeline-"
)

// Info describes one snapshot on disk.
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager snapshots a single data file, JSON or SQLite, keyed by extension.
type Manager struct {
	dataPath  string
	backupDir string
}

func NewManager(dataPath string) *Manager {
	return &Manager{
		dataPath:  dataPath,
		backupDir: filepath.Join(filepath.Dir(dataPath), dirName),
	}
}

func (m *Manager) BackupDir() string { return m.backupDir }

func (m *Manager) suffix() string {
	if ext := filepath.Ext(m.dataPath); ext != "" {
		return ext
	}
	return ".db"
}

// Create snapshots the data file and rotates old snapshots out. The returned
// path names the new snapshot.
func (m *Manager) Create() (string, error) {
	return m.create(false)
}

func (m *Manager) create(skipRotation bool) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}
	if _, err := os.Stat(m.dataPath); os.IsNotExist(err) {
		return "", fmt.Errorf("data file does not exist: %s", m.dataPath)
	}

	backupPath := m.freshPath(time.Now())
	if err := m.snapshot(backupPath); err != nil {
		return "", fmt.Errorf("failed to snapshot data file: %w", err)
	}

	if !skipRotation {
		if err := m.rotate(); err != nil {
			logger.Warn("failed to rotate old backups", "error", err)
		}
	}
	return backupPath, nil
}

// freshPath picks an unused snapshot name, escalating from minute precision
// to seconds to a counter on collision.
func (m *Manager) freshPath(now time.Time) string {
	path := filepath.Join(m.backupDir, filePrefix+now.Format("20060102-1504")+m.suffix())
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}
	stamp := now.Format("20060102-150405")
	path = filepath.Join(m.backupDir, filePrefix+stamp+m.suffix())
	for counter := 1; ; counter++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path
		}
		path = filepath.Join(m.backupDir, fmt.Sprintf("%s%s-%d%s", filePrefix, stamp, counter, m.suffix()))
	}
}

func (m *Manager) snapshot(destPath string) error {
	if m.suffix() == ".json" {
		return copyFile(m.dataPath, destPath)
	}

	db, err := sql.Open("sqlite", m.dataPath+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open data file: %w", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count); err != nil {
		return fmt.Errorf("data file appears to be corrupted: %w", err)
	}

	// VACUUM INTO produces a clean copy without locking out a writer.
	if _, err := db.Exec("VACUUM INTO ?", destPath); err != nil {
		return copyFile(m.dataPath, destPath)
	}
	return nil
}

// List returns the snapshots newest first.
func (m *Manager) List() ([]Info, error) {
	if _, err := os.Stat(m.backupDir); os.IsNotExist(err) {
		return []Info{}, nil
	}
	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []Info
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, m.suffix()) {
			continue
		}

		ts, ok := parseStamp(strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), m.suffix()))
		if !ok {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, Info{
			Path:      filepath.Join(m.backupDir, name),
			Timestamp: ts,
			Size:      fi.Size(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

func parseStamp(s string) (time.Time, bool) {
	// A trailing "-N" counter is not part of the timestamp.
	if parts := strings.Split(s, "-"); len(parts) > 2 {
		if last := parts[len(parts)-1]; len(last) != 4 && len(last) != 6 {
			s = strings.Join(parts[:len(parts)-1], "-")
		}
	}
	if ts, err := time.Parse("20060102-1504", s); err == nil {
		return ts, true
	}
	if ts, err := time.Parse("20060102-150405", s); err == nil {
		return ts, true
	}
	return time.Time{}, false
}

func (m *Manager) rotate() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	for i := MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// Restore replaces the data file with a snapshot, backing up the current
// file first.
func (m *Manager) Restore(backupPath string) error {
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup file does not exist: %s", backupPath)
	}
	if err := m.verify(backupPath); err != nil {
		return fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	if _, err := os.Stat(m.dataPath); err == nil {
		saved, err := m.create(true)
		if err != nil {
			return fmt.Errorf("failed to back up current data before restore: %w", err)
		}
		logger.Info("saved current data before restore", "path", filepath.Base(saved))
	}

	tmpPath := m.dataPath + ".restore.tmp"
	if err := copyFile(backupPath, tmpPath); err != nil {
		return fmt.Errorf("failed to copy backup file: %w", err)
	}
	if err := os.Rename(tmpPath, m.dataPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to restore data file: %w", err)
	}
	return nil
}

func (m *Manager) verify(path string) error {
	if m.suffix() == ".json" {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		var probe map[string]json.RawMessage
		return json.Unmarshal(data, &probe)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()
	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := destFile.ReadFrom(sourceFile); err != nil {
		return err
	}
	return destFile.Sync()
}
