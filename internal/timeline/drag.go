package timeline

import (
	"math"

	"github.com/akarsten/wakeline/internal/models"
)

// Drag models the short-lived three-phase reschedule gesture: start, repeated
// moves, end. Only one habit can be dragged at a time; a move or end without a
// matching start is a no-op.
type Drag struct {
	habitID  string
	position float64
	active   bool
}

// Active reports whether a drag is in progress.
func (d *Drag) Active() bool { return d.active }

// HabitID returns the habit being dragged, or "" outside a drag.
func (d *Drag) HabitID() string {
	if !d.active {
		return ""
	}
	return d.habitID
}

// Position returns the current drag position.
func (d *Drag) Position() float64 { return d.position }

// Start begins dragging the given habit from its current position.
func (d *Drag) Start(habitID string, position float64) {
	d.active = true
	d.habitID = habitID
	d.position = position
}

// Move updates the drag position, clamped to the timeline canvas, and returns
// the clock time the position currently maps to for live display. A move
// without a prior start does nothing.
func (d *Drag) Move(y float64, tl Timeline, wakeTime string) (TimePoint, bool) {
	if !d.active {
		return TimePoint{}, false
	}
	if y < 0 {
		y = 0
	}
	if y > tl.Height {
		y = tl.Height
	}
	d.position = y
	return PositionToTime(d.position, tl.Segments, wakeTime), true
}

// End completes the gesture and returns the dragged habit ID together with
// the new wake-relative offset, clamped to [1,1439] so a drop on the wake
// marker or the virtual end of day never yields 0 or 1440. An end without a
// matching start reports ok=false.
func (d *Drag) End(tl Timeline, wakeTime string) (habitID string, offsetMin int, ok bool) {
	if !d.active {
		return "", 0, false
	}
	point := PositionToTime(d.position, tl.Segments, wakeTime)
	offset := models.ClampOffset(int(math.Round(point.MinutesSinceWake)))

	habitID = d.habitID
	d.active = false
	d.habitID = ""
	d.position = 0
	return habitID, offset, true
}
