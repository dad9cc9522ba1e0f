package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/akarsten/wakeline/internal/models"
)

func sampleDocument() Document {
	doc := DefaultDocument()
	doc.Days["2025-03-10_07:00"] = models.WakeDay{
		Date:     "2025-03-10",
		WakeTime: "07:00",
		Habits: []models.Habit{
			{ID: "h1", Title: "Stretch", Schedule: models.Schedule{Kind: models.ScheduleDynamic, OffsetMin: 30}},
		},
	}
	doc.Settings.Theme = "dark"
	return doc
}

func TestJSONStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	store := NewJSONStore(path)

	if !store.Save(sampleDocument()) {
		t.Fatal("Save returned false")
	}

	loaded := store.Load()
	day, ok := loaded.Days["2025-03-10_07:00"]
	if !ok {
		t.Fatal("saved day missing after load")
	}
	if day.WakeTime != "07:00" || len(day.Habits) != 1 {
		t.Errorf("day round-trip mismatch: %+v", day)
	}
	if loaded.Settings.Theme != "dark" {
		t.Errorf("Theme = %q, want dark", loaded.Settings.Theme)
	}
	if loaded.UpdatedAt == "" {
		t.Error("Save did not stamp UpdatedAt")
	}
}

func TestJSONStoreLoadMissingFile(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))
	doc := store.Load()
	if doc.Days == nil {
		t.Fatal("Load returned nil Days map")
	}
	if len(doc.Days) != 0 {
		t.Errorf("expected empty document, got %d days", len(doc.Days))
	}
	if doc.Settings.Theme != "light" {
		t.Errorf("Theme = %q, want default light", doc.Settings.Theme)
	}
}

func TestJSONStoreLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewJSONStore(path)
	doc := store.Load()
	if doc.Days == nil || len(doc.Days) != 0 {
		t.Errorf("corrupt file should degrade to empty document, got %+v", doc)
	}
}

func TestJSONStoreInitRefusesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("first Init: %v", err)
	}
	if err := store.Init(); err == nil {
		t.Error("second Init should fail on existing file")
	}
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name   string
		local  string
		remote string
		want   string
	}{
		{"remote newer", "2025-03-01T10:00:00Z", "2025-03-02T10:00:00Z", "remote"},
		{"local newer", "2025-03-02T10:00:00Z", "2025-03-01T10:00:00Z", "local"},
		{"equal keeps local", "2025-03-01T10:00:00Z", "2025-03-01T10:00:00Z", "local"},
		{"local unstamped", "", "2025-03-01T10:00:00Z", "remote"},
		{"remote unstamped", "2025-03-01T10:00:00Z", "", "local"},
		{"both unstamped", "", "", "local"},
		{"remote garbage stamp", "2025-03-01T10:00:00Z", "yesterdayish", "local"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			local := Document{Settings: Settings{Theme: "local"}, UpdatedAt: tt.local, Days: map[string]models.WakeDay{}}
			remote := Document{Settings: Settings{Theme: "remote"}, UpdatedAt: tt.remote, Days: map[string]models.WakeDay{}}
			got := Merge(local, remote)
			if got.Settings.Theme != tt.want {
				t.Errorf("Merge kept %q, want %q", got.Settings.Theme, tt.want)
			}
		})
	}
}

type fakeMirror struct {
	doc    Document
	hasDoc bool
	pushed []Document
}

func (f *fakeMirror) Pull() (Document, bool) { return f.doc, f.hasDoc }
func (f *fakeMirror) Push(doc Document) bool {
	f.pushed = append(f.pushed, doc)
	return true
}

func TestSyncWithMirrorAdoptsNewerRemote(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	store := NewJSONStore(path)

	local := sampleDocument()
	local.UpdatedAt = "2025-03-01T10:00:00Z"
	if !store.write(local) {
		t.Fatal("seed write failed")
	}

	remote := DefaultDocument()
	remote.Settings.Theme = "dark"
	remote.UpdatedAt = "2025-03-05T10:00:00Z"

	merged, adopted := SyncWithMirror(store, &fakeMirror{doc: remote, hasDoc: true})
	if !adopted {
		t.Fatal("expected remote copy to be adopted")
	}
	if merged.Settings.Theme != "dark" {
		t.Errorf("Theme = %q, want dark", merged.Settings.Theme)
	}

	reloaded := store.Load()
	if reloaded.Settings.Theme != "dark" {
		t.Error("adopted copy was not persisted locally")
	}
}

func TestSyncWithMirrorPushesWhenRemoteEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	store := NewJSONStore(path)

	local := sampleDocument()
	local.UpdatedAt = "2025-03-01T10:00:00Z"
	if !store.write(local) {
		t.Fatal("seed write failed")
	}

	mirror := &fakeMirror{}
	merged, adopted := SyncWithMirror(store, mirror)
	if adopted {
		t.Error("nothing to adopt from an empty mirror")
	}
	if len(mirror.pushed) != 1 {
		t.Fatalf("expected 1 push, got %d", len(mirror.pushed))
	}
	if merged.UpdatedAt != local.UpdatedAt {
		t.Errorf("merged.UpdatedAt = %q, want %q", merged.UpdatedAt, local.UpdatedAt)
	}
}
