// Package notify sends desktop reminders for upcoming habits. Delivery is
// best effort; a platform without notification support degrades to log lines.
package notify

import (
	"fmt"

	"github.com/gen2brain/beeep"

	"github.com/akarsten/wakeline/internal/logger"
	"github.com/akarsten/wakeline/internal/models"
	"github.com/akarsten/wakeline/internal/timeutil"
)

const appName = "wakeline"

func Send(title, message string) {
	if err := beeep.Notify(title, message, ""); err != nil {
		logger.Debug("notification failed", "title", title, "error", err)
	}
}

// HabitDue formats and sends the at-time reminder for a habit.
func HabitDue(h models.Habit) {
	msg := fmt.Sprintf("%s is due now", h.Title)
	if h.DurationMin > 0 {
		msg = fmt.Sprintf("%s is due now (%s)", h.Title, timeutil.FormatDuration(h.DurationMin))
	}
	Send(appName, msg)
}

// HabitWarning sends the lead-time warning before a habit is due.
func HabitWarning(h models.Habit, leadMin int) {
	Send(appName, fmt.Sprintf("%s coming up in %d minutes", h.Title, leadMin))
}

// DaySummary announces the final completion stats when a day ends.
func DaySummary(stats models.DayStats) {
	if err := beeep.Alert(appName, fmt.Sprintf("Day complete: %d/%d habits (%d%%)", stats.Completed, stats.Total, stats.Rate), ""); err != nil {
		logger.Debug("notification failed", "error", err)
	}
}
