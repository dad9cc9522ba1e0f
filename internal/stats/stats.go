// Package stats rolls historical wake-day records up into streaks and
// completion rates.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/akarsten/wakeline/internal/constants"
	"github.com/akarsten/wakeline/internal/models"
	"github.com/akarsten/wakeline/internal/timeutil"
)

// Daily groups completion snapshots into calendar buckets.
type Daily struct {
	Today     models.DayStats
	Yesterday models.DayStats
	Week      models.DayStats
	AllTime   models.DayStats
}

// Summary compares today's rate against recent history.
type Summary struct {
	VsYesterday int
	VsWeek      int
}

func dayTimestamp(d models.WakeDay) time.Time {
	t, err := time.ParseInLocation(
		constants.DateFormat+" "+constants.TimeFormat,
		d.Date+" "+d.WakeTime, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Streak counts consecutive completed days with a completion rate of at least
// 80%, walking calendar dates backward from now. Today may still be in
// progress, so the newest qualifying day is allowed to be yesterday; after
// that every qualifying day must follow the previous one without a gap.
func Streak(days map[string]models.WakeDay, now time.Time) int {
	qualified := make([]time.Time, 0, len(days))
	for _, day := range days {
		if !day.IsCompleted || day.Stats.Rate < constants.StreakRateThreshold {
			continue
		}
		at, err := time.ParseInLocation(constants.DateFormat, day.Date, time.Local)
		if err != nil {
			continue
		}
		qualified = append(qualified, at)
	}
	if len(qualified) == 0 {
		return 0
	}
	sort.Slice(qualified, func(i, j int) bool { return qualified[i].After(qualified[j]) })

	streak := 0
	expected := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	for _, at := range qualified {
		gap := int(math.Round(expected.Sub(at).Hours() / 24))
		if gap > 1 {
			break
		}
		streak++
		expected = at
	}
	return streak
}

// WeeklyRate is the rounded completion percentage over wake days whose
// timestamp falls within the trailing 7 days, inclusive. Zero when no habits
// were tracked in the window.
func WeeklyRate(days map[string]models.WakeDay, now time.Time) int {
	window := weekWindow(days, now)
	return window.Rate
}

func weekWindow(days map[string]models.WakeDay, now time.Time) models.DayStats {
	weekAgo := now.AddDate(0, 0, -7)
	var stats models.DayStats
	for _, day := range days {
		at := dayTimestamp(day)
		if at.Before(weekAgo) || at.After(now) {
			continue
		}
		stats.Total += day.Stats.Total
		stats.Completed += day.Stats.Completed
	}
	if stats.Total > 0 {
		stats.Rate = int(math.Round(float64(stats.Completed) / float64(stats.Total) * 100))
	}
	return stats
}

// DailyStats buckets wake days into today, yesterday, trailing week, and all
// time. The today bucket only considers days not yet marked completed: a day
// already completed for today's date has rolled into history and reads as
// zeros here. That mirrors long-standing behavior the rest of the app depends
// on, so keep it even though it looks like an off-by-one.
func DailyStats(days map[string]models.WakeDay, now time.Time) Daily {
	today := timeutil.DateKey(now)
	yesterday := timeutil.DateKey(now.AddDate(0, 0, -1))

	var result Daily
	for _, day := range days {
		switch {
		case day.Date == today && !day.IsCompleted:
			result.Today = day.Stats
		case day.Date == yesterday:
			result.Yesterday = day.Stats
		}

		result.AllTime.Total += day.Stats.Total
		result.AllTime.Completed += day.Stats.Completed
	}
	if result.AllTime.Total > 0 {
		result.AllTime.Rate = int(math.Round(
			float64(result.AllTime.Completed) / float64(result.AllTime.Total) * 100))
	}

	result.Week = weekWindow(days, now)
	return result
}

// Summarize compares today's completion rate against yesterday and the
// trailing week, for the end-of-day summary.
func Summarize(daily Daily) Summary {
	return Summary{
		VsYesterday: daily.Today.Rate - daily.Yesterday.Rate,
		VsWeek:      daily.Today.Rate - daily.Week.Rate,
	}
}
