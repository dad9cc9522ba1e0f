package storage

import (
	"time"

	"github.com/akarsten/wakeline/internal/logger"
)

// Merge resolves two document copies by comparing their UpdatedAt stamps and
// keeping the later write wholesale. A copy with no stamp, or an unparseable
// one, always loses to a stamped copy.
func Merge(local, remote Document) Document {
	lt, lok := parseStamp(local.UpdatedAt)
	rt, rok := parseStamp(remote.UpdatedAt)

	switch {
	case lok && rok:
		if rt.After(lt) {
			return remote
		}
		return local
	case rok:
		return remote
	default:
		return local
	}
}

func parseStamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// SyncWithMirror pulls the remote copy, merges it with the local document,
// and pushes the winner back. It returns the merged document and whether the
// remote contributed anything newer than the local copy.
func SyncWithMirror(store Provider, mirror Mirror) (Document, bool) {
	local := store.Load()

	remote, ok := mirror.Pull()
	if !ok {
		mirror.Push(local)
		return local, false
	}

	merged := Merge(local, remote)
	if merged.UpdatedAt == remote.UpdatedAt && merged.UpdatedAt != local.UpdatedAt {
		logger.Info("adopting newer mirror copy", "updatedAt", remote.UpdatedAt)
		if !store.Save(merged) {
			logger.Warn("failed to persist mirror copy locally")
		}
		return merged, true
	}

	mirror.Push(merged)
	return merged, false
}
