package models

import "math"

// DayStats is the completion snapshot carried on every wake day, recomputed on
// each mutation and finalized at completion.
type DayStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Rate      int `json:"rate"` // rounded percentage
}

// WakeDay is one lifecycle instance of being awake, from wake-up to sleep.
// Habits is a snapshot owned by this day, not a live reference, so historical
// stats stay stable after future edits.
type WakeDay struct {
	Date          string   `json:"date"`      // YYYY-MM-DD format
	WakeTime      string   `json:"wake_time"` // HH:MM format
	Habits        []Habit  `json:"habits"`
	IsCompleted   bool     `json:"is_completed"`
	AutoCompleted bool     `json:"auto_completed,omitempty"`
	CompletedAt   *string  `json:"completed_at,omitempty"` // RFC3339 timestamp
	Stats         DayStats `json:"stats"`
}

// ComputeStats derives a completion snapshot from a habit list.
func ComputeStats(habits []Habit) DayStats {
	total := len(habits)
	completed := 0
	for _, h := range habits {
		if h.Completed {
			completed++
		}
	}
	rate := 0
	if total > 0 {
		rate = int(math.Round(float64(completed) / float64(total) * 100))
	}
	return DayStats{Total: total, Completed: completed, Rate: rate}
}
