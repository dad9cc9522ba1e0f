package daykey

import (
	"testing"
	"time"

	"github.com/akarsten/wakeline/internal/models"
)

func TestMakeAndParseRoundTrip(t *testing.T) {
	key := Make("06:30", "2025-03-14")
	if key != "2025-03-14_06:30" {
		t.Fatalf("Make = %q", key)
	}

	parsed, ok := Parse(key)
	if !ok {
		t.Fatal("Parse failed on a key produced by Make")
	}
	if parsed.Date != "2025-03-14" || parsed.WakeTime != "06:30" {
		t.Errorf("Parse = %+v", parsed)
	}
}

func TestParseRejectsMalformedKeys(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{"empty", ""},
		{"no separator", "2025-03-14"},
		{"two separators", "2025-03-14_06:30_extra"},
		{"unpadded date", "2024-1-1_06:00"},
		{"unpadded time", "2024-01-01_6:00"},
		{"swapped parts", "06:30_2025-03-14"},
		{"garbage date", "not-a-date_06:30"},
		{"garbage time", "2025-03-14_sixish"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := Parse(tt.key); ok {
				t.Errorf("Parse(%q) succeeded, want failure", tt.key)
			}
		})
	}
}

func TestIsExpired(t *testing.T) {
	now := time.Date(2025, 3, 15, 8, 0, 0, 0, time.Local)

	tests := []struct {
		name string
		key  string
		want bool
	}{
		{"just now", Make("08:00", "2025-03-15"), false},
		{"23 hours ago", Make("09:00", "2025-03-14"), false},
		{"exactly 24 hours ago", Make("08:00", "2025-03-14"), true},
		{"25 hours ago", Make("07:00", "2025-03-14"), true},
		{"days ago", Make("06:00", "2025-03-01"), true},
		{"unparseable", "garbage", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsExpired(tt.key, now, 24); got != tt.want {
				t.Errorf("IsExpired(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestMostRecentUncompleted(t *testing.T) {
	days := map[string]models.WakeDay{
		"2025-03-12_07:00": {Date: "2025-03-12", WakeTime: "07:00", IsCompleted: true},
		"2025-03-13_06:45": {Date: "2025-03-13", WakeTime: "06:45"},
		"2025-03-14_08:30": {Date: "2025-03-14", WakeTime: "08:30"},
	}

	key, day, ok := MostRecentUncompleted(days)
	if !ok {
		t.Fatal("expected an uncompleted day")
	}
	if key != "2025-03-14_08:30" || day.WakeTime != "08:30" {
		t.Errorf("got key %q, want the latest uncompleted day", key)
	}
}

func TestMostRecentUncompletedAllCompleted(t *testing.T) {
	days := map[string]models.WakeDay{
		"2025-03-13_06:45": {IsCompleted: true},
		"2025-03-14_08:30": {IsCompleted: true},
	}
	if _, _, ok := MostRecentUncompleted(days); ok {
		t.Error("expected ok=false when every day is completed")
	}
	if _, _, ok := MostRecentUncompleted(nil); ok {
		t.Error("expected ok=false for a nil map")
	}
}

func TestMostRecentUncompletedSameDateTwoWakes(t *testing.T) {
	// A user can wake twice on one calendar date; the later wake time wins.
	days := map[string]models.WakeDay{
		"2025-03-14_02:00": {Date: "2025-03-14", WakeTime: "02:00"},
		"2025-03-14_11:00": {Date: "2025-03-14", WakeTime: "11:00"},
	}
	key, _, ok := MostRecentUncompleted(days)
	if !ok || key != "2025-03-14_11:00" {
		t.Errorf("got %q, want 2025-03-14_11:00", key)
	}
}

func TestCompleteExpired(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.Local)
	days := map[string]models.WakeDay{
		"2025-03-13_07:00": {Date: "2025-03-13", WakeTime: "07:00"},                   // expired
		"2025-03-15_06:00": {Date: "2025-03-15", WakeTime: "06:00"},                   // fresh
		"2025-03-10_07:00": {Date: "2025-03-10", WakeTime: "07:00", IsCompleted: true}, // already done
	}

	if !CompleteExpired(days, now, 24) {
		t.Fatal("expected a change")
	}

	expired := days["2025-03-13_07:00"]
	if !expired.IsCompleted || !expired.AutoCompleted || expired.CompletedAt == nil {
		t.Errorf("expired day not auto-completed: %+v", expired)
	}
	if days["2025-03-15_06:00"].IsCompleted {
		t.Error("fresh day must not be completed")
	}
	if days["2025-03-10_07:00"].AutoCompleted {
		t.Error("already-completed day must not be re-stamped")
	}

	if CompleteExpired(days, now, 24) {
		t.Error("second pass should report no change")
	}
}
