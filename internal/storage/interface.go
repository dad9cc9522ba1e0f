package storage

import "github.com/akarsten/wakeline/internal/models"

// Settings are the persisted application settings carried inside the
// document.
type Settings struct {
	Theme         string `json:"theme"`
	Notifications bool   `json:"notifications"`
}

// Document is the full persisted state: every wake day keyed by its wake-day
// key, settings, and the last-write timestamp used for mirror merging.
type Document struct {
	Days      map[string]models.WakeDay `json:"days"`
	Settings  Settings                  `json:"settings"`
	UpdatedAt string                    `json:"updated_at"` // RFC3339 timestamp
}

// DefaultDocument returns the empty state a fresh or unreadable store
// degrades to.
func DefaultDocument() Document {
	return Document{
		Days:     make(map[string]models.WakeDay),
		Settings: Settings{Theme: "light", Notifications: true},
	}
}

// Provider is the local persistence backend. Load never fails: an unreadable
// or missing store degrades to the default empty document so the app starts
// with an empty session instead of crashing. Save reports success; callers
// log a false result and move on, they never block on it.
type Provider interface {
	// Init creates the backing store. It fails if one already exists.
	Init() error
	Load() Document
	Save(Document) bool
	Close() error
	Path() string
}

// Mirror is an optional remote copy of the document, merged by
// later-write-wins on the UpdatedAt timestamp. Both operations are best
// effort; failure reports false and is logged at the call site.
type Mirror interface {
	Pull() (Document, bool)
	Push(Document) bool
}
