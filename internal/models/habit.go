package models

import (
	"github.com/akarsten/wakeline/internal/constants"
	"github.com/akarsten/wakeline/internal/timeutil"
)

type ScheduleKind string

const (
	// ScheduleFixed anchors a habit to an absolute clock time.
	ScheduleFixed ScheduleKind = "fixed"
	// ScheduleDynamic anchors a habit to an offset after wake-up.
	ScheduleDynamic ScheduleKind = "dynamic"
)

// Schedule is a tagged union over the two scheduling variants. Time is only
// meaningful for fixed schedules, OffsetMin only for dynamic ones.
type Schedule struct {
	Kind      ScheduleKind `json:"kind"`
	Time      string       `json:"time,omitempty"`       // HH:MM format
	OffsetMin int          `json:"offset_min,omitempty"` // minutes after wake
}

// SubHabit is a child checklist item with its own completion flag.
type SubHabit struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Completed   bool   `json:"completed"`
}

// Habit represents a recurring activity positioned on the wake-relative
// timeline. Position and the highlight flags are transient render state,
// recomputed on every timeline rebuild and never persisted.
type Habit struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	DurationMin   int        `json:"duration_min"`
	Tags          []string   `json:"tags,omitempty"`
	SubHabits     []SubHabit `json:"sub_habits,omitempty"`
	Schedule      Schedule   `json:"schedule"`
	EffectiveTime string     `json:"effective_time"` // HH:MM, derived
	Completed     bool       `json:"completed"`

	Position float64 `json:"-"`
	Hidden   bool    `json:"-"`
	Overdue  bool    `json:"-"`
	Current  bool    `json:"-"`
	Warning  bool    `json:"-"`
}

// ClampOffset bounds a minutes-since-wake value to [1,1439]. Zero is reserved
// for the wake marker and 1440 for the virtual end of day.
func ClampOffset(minutes int) int {
	if minutes < constants.MinOffsetMin {
		return constants.MinOffsetMin
	}
	if minutes > constants.MaxOffsetMin {
		return constants.MaxOffsetMin
	}
	return minutes
}

// ResolveEffectiveTime recomputes the habit's effective clock time against the
// given wake time. Dynamic habits have their offset clamped; fixed habits are
// re-clamped through minutes-since-wake so the stored time always lies within
// the wake day, then rewritten to the clamped value.
func (h *Habit) ResolveEffectiveTime(wakeTime string) {
	switch h.Schedule.Kind {
	case ScheduleDynamic:
		h.Schedule.OffsetMin = ClampOffset(h.Schedule.OffsetMin)
		h.EffectiveTime = timeutil.AddMinutes(wakeTime, h.Schedule.OffsetMin)
	default:
		sinceWake := ClampOffset(timeutil.MinutesSinceWake(h.Schedule.Time, wakeTime))
		h.EffectiveTime = timeutil.AddMinutes(wakeTime, sinceWake)
		h.Schedule.Time = h.EffectiveTime
	}
}

// SetCompleted toggles the habit. Completing the parent force-completes every
// sub-habit; un-completing leaves sub-habits untouched. Completing the last
// sub-habit does not complete the parent.
func (h *Habit) SetCompleted(done bool) {
	h.Completed = done
	if done {
		for i := range h.SubHabits {
			h.SubHabits[i].Completed = true
		}
	}
}

// WarningWindowMin is how many minutes before the effective time the habit
// enters its warning window.
func (h Habit) WarningWindowMin() int {
	if h.DurationMin > constants.WarningLeadMin {
		return h.DurationMin
	}
	return constants.WarningLeadMin
}

// HasTag reports whether the habit carries any of the given tags.
func (h Habit) HasTag(tags []string) bool {
	for _, want := range tags {
		for _, have := range h.Tags {
			if have == want {
				return true
			}
		}
	}
	return false
}
