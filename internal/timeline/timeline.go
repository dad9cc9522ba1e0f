// Package timeline converts a wake time and an ordered habit list into a
// vertically-ordered timeline: equally spaced segments anchored at wake, each
// habit, and a virtual end of day 1440 minutes later, plus a dense set of
// time-scale markers whose density adapts to the units-per-minute ratio of
// each segment pair.
//
// Spacing between habit tiles is purely ordinal (a fixed pitch per tile, not
// duration-proportional) so tiles keep a uniform visual size no matter how
// close together their clock times are. Equal position deltas therefore do
// NOT correspond to equal time deltas.
package timeline

import (
	"sort"

	"github.com/akarsten/wakeline/internal/constants"
	"github.com/akarsten/wakeline/internal/models"
	"github.com/akarsten/wakeline/internal/timeutil"
)

type SlotKind string

const (
	SlotWake    SlotKind = "wake"
	SlotHabit   SlotKind = "habit"
	SlotHour    SlotKind = "hour"
	SlotHalf    SlotKind = "half"
	SlotQuarter SlotKind = "quarter"
	SlotMicro   SlotKind = "micro"
)

// Slot is one timeline marker, rebuilt on every layout pass.
type Slot struct {
	ClockMinutes     int
	Position         float64
	Kind             SlotKind
	Label            string
	DisplayLabel     bool
	MinutesSinceWake int
	Priority         int
	HabitID          string
}

// Segment is an anchor point for piecewise-linear interpolation between
// positions and minutes-since-wake.
type Segment struct {
	Position         float64
	MinutesSinceWake int
	HabitID          string
}

// Timeline is the result of one layout pass.
type Timeline struct {
	Slots    []Slot
	Segments []Segment
	Height   float64
}

// Generate lays out the visible habits against the given wake time. Hidden
// habits are excluded from segments entirely. The habit list is not mutated;
// callers assign positions afterwards via TimeToPosition.
func Generate(habits []models.Habit, wakeTime string) Timeline {
	wakeMinutes := timeutil.TimeToMinutes(wakeTime)

	visible := make([]models.Habit, 0, len(habits))
	for _, h := range habits {
		if !h.Hidden {
			visible = append(visible, h)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool {
		return timeutil.MinutesSinceWake(visible[i].EffectiveTime, wakeTime) <
			timeutil.MinutesSinceWake(visible[j].EffectiveTime, wakeTime)
	})

	segments := buildSegments(visible, wakeTime)

	slots := make([]Slot, 0, len(segments)+32)
	slots = append(slots, Slot{
		ClockMinutes:     wakeMinutes,
		Position:         constants.TimelinePadding,
		Kind:             SlotWake,
		Label:            timeutil.Format12Hour(wakeTime, true),
		DisplayLabel:     true,
		MinutesSinceWake: 0,
	})

	for _, seg := range segments {
		if seg.HabitID == "" {
			continue
		}
		slots = append(slots, Slot{
			ClockMinutes:     (wakeMinutes + seg.MinutesSinceWake) % constants.MinutesPerDay,
			Position:         seg.Position,
			Kind:             SlotHabit,
			MinutesSinceWake: seg.MinutesSinceWake,
			HabitID:          seg.HabitID,
		})
	}

	slots = appendTimeMarkers(slots, segments, wakeMinutes)
	resolveOverlaps(slots)

	sort.SliceStable(slots, func(i, j int) bool { return slots[i].Position < slots[j].Position })

	var maxPosition float64
	if len(segments) > 0 {
		maxPosition = segments[len(segments)-1].Position + constants.UnitsPerTile
	} else {
		maxPosition = constants.TimelinePadding + constants.EmptyTimelineHeight
	}

	return Timeline{
		Slots:    slots,
		Segments: segments,
		Height:   maxPosition + constants.TimelinePadding*2,
	}
}

// buildSegments places the wake anchor at the edge padding, one anchor per
// habit at a fixed pitch, and a terminal anchor at minutes-since-wake 1440 one
// more pitch past the last habit. With no habits only the wake anchor exists.
func buildSegments(sorted []models.Habit, wakeTime string) []Segment {
	segments := make([]Segment, 0, len(sorted)+2)
	segments = append(segments, Segment{
		Position:         constants.TimelinePadding,
		MinutesSinceWake: 0,
	})

	position := float64(constants.TimelinePadding)
	for _, h := range sorted {
		position += constants.UnitsPerTile
		segments = append(segments, Segment{
			Position:         position,
			MinutesSinceWake: timeutil.MinutesSinceWake(h.EffectiveTime, wakeTime),
			HabitID:          h.ID,
		})
	}

	if len(sorted) > 0 {
		position += constants.UnitsPerTile
		segments = append(segments, Segment{
			Position:         position,
			MinutesSinceWake: constants.MinutesPerDay,
		})
	}

	return segments
}

// appendTimeMarkers emits hour markers across the whole day and sub-hour
// markers per segment pair at a density chosen from that pair's
// units-per-minute ratio.
func appendTimeMarkers(slots []Slot, segments []Segment, wakeMinutes int) []Slot {
	if len(segments) < 2 {
		return slots
	}

	endSinceWake := segments[len(segments)-1].MinutesSinceWake

	// Hour markers, starting at the first whole clock hour strictly after
	// wake, tagged with the highest priority.
	clock := (wakeMinutes/60 + 1) * 60
	for hour := 0; hour < 24; hour++ {
		sinceWake := clock - wakeMinutes
		if sinceWake < 0 {
			sinceWake += constants.MinutesPerDay
		}
		if sinceWake > endSinceWake {
			break
		}
		if position, ok := interpolate(sinceWake, segments); ok {
			clockMinutes := clock % constants.MinutesPerDay
			slots = append(slots, Slot{
				ClockMinutes:     clockMinutes,
				Position:         position,
				Kind:             SlotHour,
				Label:            timeutil.Format12Hour(timeutil.MinutesToTime(clockMinutes), false),
				DisplayLabel:     true,
				MinutesSinceWake: sinceWake,
				Priority:         1,
			})
		}
		clock += 60
	}

	// Sub-hour markers per segment pair. Whole hours are skipped here since
	// the loop above already emitted them.
	for i := 0; i < len(segments)-1; i++ {
		start, end := segments[i], segments[i+1]

		minuteSpan := end.MinutesSinceWake - start.MinutesSinceWake
		if minuteSpan <= 0 {
			continue
		}
		unitSpan := end.Position - start.Position
		unitsPerMinute := unitSpan / float64(minuteSpan)

		includeHalf := unitsPerMinute > constants.HalfHourDensity
		includeQuarter := unitsPerMinute > constants.QuarterHourDensity
		includeFive := unitsPerMinute > constants.FiveMinuteDensity
		includeMinute := unitsPerMinute > constants.MinuteDensity

		segStartClock := wakeMinutes + start.MinutesSinceWake
		segEndClock := wakeMinutes + end.MinutesSinceWake

		for clockTime := segStartClock + 1; clockTime < segEndClock; clockTime++ {
			sinceWake := clockTime - wakeMinutes
			if sinceWake <= start.MinutesSinceWake || sinceWake >= end.MinutesSinceWake {
				continue
			}

			clockMod := (clockTime % constants.MinutesPerDay) % 60
			var kind SlotKind
			switch {
			case clockMod == 0:
				continue
			case clockMod == 30 && includeHalf:
				kind = SlotHalf
			case (clockMod == 15 || clockMod == 45) && includeQuarter:
				kind = SlotQuarter
			case clockMod%5 == 0 && includeFive:
				kind = SlotMicro
			case includeMinute:
				kind = SlotMicro
			default:
				continue
			}

			progress := float64(sinceWake-start.MinutesSinceWake) / float64(minuteSpan)
			slots = append(slots, Slot{
				ClockMinutes:     clockTime % constants.MinutesPerDay,
				Position:         start.Position + progress*unitSpan,
				Kind:             kind,
				MinutesSinceWake: sinceWake,
			})
		}
	}

	return slots
}

// interpolate maps a minutes-since-wake value to a position within its
// bounding segment pair. ok is false past the last segment.
func interpolate(sinceWake int, segments []Segment) (float64, bool) {
	for i := 0; i < len(segments)-1; i++ {
		start, end := segments[i], segments[i+1]
		if sinceWake >= start.MinutesSinceWake && sinceWake <= end.MinutesSinceWake {
			span := end.MinutesSinceWake - start.MinutesSinceWake
			if span == 0 {
				return start.Position, true
			}
			progress := float64(sinceWake-start.MinutesSinceWake) / float64(span)
			return start.Position + progress*(end.Position-start.Position), true
		}
	}
	return 0, false
}

// resolveOverlaps hides (never removes) labeled markers that would collide.
// The wake marker is always shown. Among markers inside the minimum spacing
// window the higher priority wins; among equals the first in position order is
// kept and anything within 1.5x the minimum spacing of a kept label is hidden.
func resolveOverlaps(slots []Slot) {
	labeled := make([]*Slot, 0, len(slots))
	for i := range slots {
		if slots[i].DisplayLabel && slots[i].Kind != SlotWake {
			labeled = append(labeled, &slots[i])
		}
	}

	sort.SliceStable(labeled, func(i, j int) bool {
		a, b := labeled[i], labeled[j]
		gap := a.Position - b.Position
		if gap < 0 {
			gap = -gap
		}
		if gap < constants.MinMarkerSpacing {
			return a.Priority > b.Priority
		}
		return a.Position < b.Position
	})

	var kept []*Slot
	for _, slot := range labeled {
		tooClose := false
		for _, visible := range kept {
			gap := visible.Position - slot.Position
			if gap < 0 {
				gap = -gap
			}
			if gap < constants.MinMarkerSpacing*1.5 {
				tooClose = true
				break
			}
		}
		if tooClose {
			slot.DisplayLabel = false
		} else {
			kept = append(kept, slot)
		}
	}
}
