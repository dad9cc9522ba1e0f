package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/akarsten/wakeline/internal/storage"
)

func seedJSONData(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.json")
	store := storage.NewJSONStore(path)
	if !store.Save(storage.DefaultDocument()) {
		t.Fatal("failed to seed data file")
	}
	return path
}

func TestCreateAndList(t *testing.T) {
	path := seedJSONData(t)
	m := NewManager(path)

	backupPath, err := m.Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := os.Stat(backupPath); err != nil {
		t.Fatalf("backup file missing: %v", err)
	}

	backups, err := m.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(backups) != 1 {
		t.Fatalf("expected 1 backup, got %d", len(backups))
	}
	if backups[0].Size == 0 {
		t.Error("backup has zero size")
	}
}

func TestCreateFailsWithoutDataFile(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "missing.json"))
	if _, err := m.Create(); err == nil {
		t.Error("expected error for missing data file")
	}
}

func TestCollidingNamesStayUnique(t *testing.T) {
	path := seedJSONData(t)
	m := NewManager(path)

	first, err := m.Create()
	if err != nil {
		t.Fatal(err)
	}
	second, err := m.Create()
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Errorf("two backups share the same path: %s", first)
	}
}

func TestListSortsNewestFirst(t *testing.T) {
	path := seedJSONData(t)
	m := NewManager(path)
	if err := os.MkdirAll(m.BackupDir(), 0o700); err != nil {
		t.Fatal(err)
	}

	// Fabricate snapshots with known stamps.
	for _, stamp := range []string{"20250301-0800", "20250305-0800", "20250303-0800"} {
		name := filepath.Join(m.BackupDir(), filePrefix+stamp+".json")
		if err := os.WriteFile(name, []byte("{}"), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	backups, err := m.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 3 {
		t.Fatalf("expected 3 backups, got %d", len(backups))
	}
	want := time.Date(2025, 3, 5, 8, 0, 0, 0, time.UTC)
	if !backups[0].Timestamp.Equal(want) {
		t.Errorf("newest backup = %v, want %v", backups[0].Timestamp, want)
	}
}

func TestRotation(t *testing.T) {
	path := seedJSONData(t)
	m := NewManager(path)
	if err := os.MkdirAll(m.BackupDir(), 0o700); err != nil {
		t.Fatal(err)
	}

	base := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < MaxBackups+3; i++ {
		stamp := base.AddDate(0, 0, i).Format("20060102-1504")
		name := filepath.Join(m.BackupDir(), filePrefix+stamp+".json")
		if err := os.WriteFile(name, []byte("{}"), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	if err := m.rotate(); err != nil {
		t.Fatalf("rotate: %v", err)
	}
	backups, err := m.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != MaxBackups {
		t.Errorf("after rotation got %d backups, want %d", len(backups), MaxBackups)
	}
	// The oldest snapshots are the ones rotated out.
	oldest := backups[len(backups)-1].Timestamp
	if oldest.Before(base.AddDate(0, 0, 3)) {
		t.Errorf("rotation kept a too-old backup: %v", oldest)
	}
}

func TestRestore(t *testing.T) {
	path := seedJSONData(t)
	m := NewManager(path)

	backupPath, err := m.Create()
	if err != nil {
		t.Fatal(err)
	}

	// Corrupt the live file, then restore.
	if err := os.WriteFile(path, []byte("{broken"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := m.Restore(backupPath); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	doc := storage.NewJSONStore(path).Load()
	if doc.Settings.Theme != "light" {
		t.Errorf("restored document wrong: %+v", doc.Settings)
	}
}

func TestRestoreRejectsCorruptBackup(t *testing.T) {
	path := seedJSONData(t)
	m := NewManager(path)
	if err := os.MkdirAll(m.BackupDir(), 0o700); err != nil {
		t.Fatal(err)
	}

	bad := filepath.Join(m.BackupDir(), filePrefix+"20250301-0800.json")
	if err := os.WriteFile(bad, []byte("{nope"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := m.Restore(bad); err == nil {
		t.Error("expected error restoring corrupt backup")
	}
}
