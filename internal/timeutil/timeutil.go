// Package timeutil provides wake-relative clock arithmetic on HH:MM strings.
//
// Every function is total: malformed input degrades to a zero value instead of
// returning an error. Callers throughout the app rely on that, so parsing here
// must never fail loudly.
package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/akarsten/wakeline/internal/constants"
)

// ParseClock splits an HH:MM string into its components. ok is false when the
// string does not contain exactly one colon with numeric parts on both sides.
func ParseClock(s string) (hours, minutes int, ok bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return h, m, true
}

// TimeToMinutes converts an HH:MM string to minutes since midnight.
// Malformed input yields 0.
func TimeToMinutes(s string) int {
	h, m, ok := ParseClock(s)
	if !ok {
		return 0
	}
	return h*60 + m
}

// MinutesToTime normalizes any minute count into [0,1439] and formats it as
// zero-padded HH:MM. Negative and overflowing values wrap around the day.
func MinutesToTime(minutes int) string {
	n := ((minutes % constants.MinutesPerDay) + constants.MinutesPerDay) % constants.MinutesPerDay
	return fmt.Sprintf("%02d:%02d", n/60, n%60)
}

// AddMinutes shifts an HH:MM string by delta minutes, wrapping at midnight.
func AddMinutes(clock string, delta int) string {
	return MinutesToTime(TimeToMinutes(clock) + delta)
}

// MinutesSinceWake returns how far clock lies after wake, in [0,1439].
// A clock time earlier than wake is interpreted as the next day, never the
// previous one.
func MinutesSinceWake(clock, wake string) int {
	diff := TimeToMinutes(clock) - TimeToMinutes(wake)
	if diff < 0 {
		diff += constants.MinutesPerDay
	}
	return diff
}

// MinutesBetween returns the wrap-forward distance from a to b in minutes.
func MinutesBetween(a, b string) int {
	diff := TimeToMinutes(b) - TimeToMinutes(a)
	if diff < 0 {
		diff += constants.MinutesPerDay
	}
	return diff
}

// Clock formats a time.Time as an HH:MM string.
func Clock(t time.Time) string {
	return t.Format(constants.TimeFormat)
}

// DateKey formats a time.Time as a YYYY-MM-DD string.
func DateKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// Format12Hour renders an HH:MM string for display, e.g. "9:05 AM", or "9 AM"
// when withMinutes is false. Malformed input is returned unchanged.
func Format12Hour(clock string, withMinutes bool) string {
	h, m, ok := ParseClock(clock)
	if !ok {
		return clock
	}
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	display := h % 12
	if display == 0 {
		display = 12
	}
	if withMinutes {
		return fmt.Sprintf("%d:%02d %s", display, m, suffix)
	}
	return fmt.Sprintf("%d %s", display, suffix)
}

// FormatDuration renders a minute count as "45min", "2h" or "2h 30m".
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dmin", minutes)
	}
	h := minutes / 60
	m := minutes % 60
	if m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dh", h)
}

// FormatTimeAgo renders elapsed minutes as "3h 20m ago". Negative values mean
// the reference point is still in the future.
func FormatTimeAgo(minutes int) string {
	if minutes < 0 {
		return "not yet"
	}
	if minutes == 0 {
		return "just now"
	}
	h := minutes / 60
	m := minutes % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm ago", h, m)
	}
	return fmt.Sprintf("%dm ago", m)
}
