// Package daykey derives and parses wake-day identities. A key combines the
// calendar date with the wake time ("2025-03-14_06:30") so a user who wakes
// twice on the same date produces two distinct days.
package daykey

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/akarsten/wakeline/internal/constants"
	"github.com/akarsten/wakeline/internal/models"
)

var (
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// Key is the parsed form of a wake-day identity.
type Key struct {
	Date     string // YYYY-MM-DD format
	WakeTime string // HH:MM format
}

// Make builds the composite key string for a wake time and calendar date.
func Make(wakeTime, date string) string {
	return fmt.Sprintf("%s_%s", date, wakeTime)
}

// Parse splits a key back into its components. ok is false when the key does
// not consist of exactly two underscore-separated parts or either part fails
// its strict format check. Callers treat a failed parse as "invalid, skip or
// treat as expired" rather than an error.
func Parse(key string) (Key, bool) {
	parts := strings.Split(key, "_")
	if len(parts) != 2 {
		return Key{}, false
	}
	if !datePattern.MatchString(parts[0]) || !timePattern.MatchString(parts[1]) {
		return Key{}, false
	}
	return Key{Date: parts[0], WakeTime: parts[1]}, true
}

// Timestamp resolves the key to a wall-clock instant in local time.
func (k Key) Timestamp() time.Time {
	t, err := time.ParseInLocation(constants.DateFormat+" "+constants.TimeFormat, k.Date+" "+k.WakeTime, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

// IsExpired reports whether the key's encoded timestamp lies at least
// thresholdHours before now. Unparseable keys are always expired.
func IsExpired(key string, now time.Time, thresholdHours int) bool {
	parsed, ok := Parse(key)
	if !ok {
		return true
	}
	return now.Sub(parsed.Timestamp()).Hours() >= float64(thresholdHours)
}

// MostRecentUncompleted selects the uncompleted wake day with the latest
// encoded timestamp. Ties and unparseable keys are broken by sorted key order
// so the choice is deterministic. ok is false when every day is completed.
func MostRecentUncompleted(days map[string]models.WakeDay) (string, models.WakeDay, bool) {
	keys := make([]string, 0, len(days))
	for key, day := range days {
		if !day.IsCompleted {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return "", models.WakeDay{}, false
	}
	sort.Strings(keys)

	best := keys[0]
	bestAt := keyTimestamp(best)
	for _, key := range keys[1:] {
		if at := keyTimestamp(key); at.After(bestAt) {
			best = key
			bestAt = at
		}
	}
	return best, days[best], true
}

func keyTimestamp(key string) time.Time {
	parsed, ok := Parse(key)
	if !ok {
		return time.Time{}
	}
	return parsed.Timestamp()
}

// CompleteExpired marks every uncompleted day whose key has expired as
// auto-completed, stamping the completion time. It reports whether any day
// changed so the caller knows to persist.
func CompleteExpired(days map[string]models.WakeDay, now time.Time, thresholdHours int) bool {
	changed := false
	for key, day := range days {
		if day.IsCompleted || !IsExpired(key, now, thresholdHours) {
			continue
		}
		at := now.Format(time.RFC3339)
		day.IsCompleted = true
		day.AutoCompleted = true
		day.CompletedAt = &at
		days[key] = day
		changed = true
	}
	return changed
}
