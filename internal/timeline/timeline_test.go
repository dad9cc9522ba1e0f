package timeline

import (
	"testing"

	"github.com/akarsten/wakeline/internal/constants"
	"github.com/akarsten/wakeline/internal/models"
)

func fixedHabit(id, clock string) models.Habit {
	h := models.Habit{
		ID:       id,
		Title:    id,
		Schedule: models.Schedule{Kind: models.ScheduleFixed, Time: clock},
	}
	h.ResolveEffectiveTime("07:00")
	return h
}

func TestGenerateSegments(t *testing.T) {
	habits := []models.Habit{
		fixedHabit("a", "07:30"),
		fixedHabit("b", "09:00"),
		fixedHabit("c", "23:00"),
	}

	tl := Generate(habits, "07:00")

	if len(tl.Segments) != 5 {
		t.Fatalf("expected 5 segments (wake, 3 habits, end), got %d", len(tl.Segments))
	}

	wantSinceWake := []int{0, 30, 120, 960, 1440}
	for i, seg := range tl.Segments {
		if seg.MinutesSinceWake != wantSinceWake[i] {
			t.Errorf("segment %d minutesSinceWake = %d, want %d", i, seg.MinutesSinceWake, wantSinceWake[i])
		}
		if i > 0 && seg.MinutesSinceWake <= tl.Segments[i-1].MinutesSinceWake {
			t.Errorf("segment %d not strictly increasing", i)
		}
	}

	// Fixed pitch: each segment sits one tile below the previous one.
	for i, seg := range tl.Segments {
		want := float64(constants.TimelinePadding + i*constants.UnitsPerTile)
		if seg.Position != want {
			t.Errorf("segment %d position = %v, want %v", i, seg.Position, want)
		}
	}

	wantHeight := tl.Segments[4].Position + constants.UnitsPerTile + constants.TimelinePadding*2
	if tl.Height != wantHeight {
		t.Errorf("height = %v, want %v", tl.Height, wantHeight)
	}
}

func TestGenerateSortsByTimeSinceWake(t *testing.T) {
	// 06:00 is clock-wise before the 07:00 wake, so it wraps to the next day
	// and must sort last.
	habits := []models.Habit{
		fixedHabit("early-next-day", "06:00"),
		fixedHabit("soon", "08:00"),
	}

	tl := Generate(habits, "07:00")

	if tl.Segments[1].HabitID != "soon" || tl.Segments[2].HabitID != "early-next-day" {
		t.Errorf("habits not ordered by minutes since wake: %v, %v",
			tl.Segments[1].HabitID, tl.Segments[2].HabitID)
	}
}

func TestGenerateNoHabits(t *testing.T) {
	tl := Generate(nil, "07:00")

	if len(tl.Segments) != 1 {
		t.Fatalf("expected only the wake segment, got %d", len(tl.Segments))
	}
	for _, slot := range tl.Slots {
		if slot.Kind != SlotWake {
			t.Errorf("marker generation must be skipped with no habits, found %s slot", slot.Kind)
		}
	}
	if tl.Height <= 0 {
		t.Error("empty timeline must still have a fallback canvas height")
	}
}

func TestGenerateSkipsHiddenHabits(t *testing.T) {
	shown := fixedHabit("shown", "09:00")
	hidden := fixedHabit("hidden", "10:00")
	hidden.Hidden = true

	tl := Generate([]models.Habit{shown, hidden}, "07:00")

	// wake + one habit + end
	if len(tl.Segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(tl.Segments))
	}
	for _, seg := range tl.Segments {
		if seg.HabitID == "hidden" {
			t.Error("hidden habit must not produce a segment")
		}
	}
}

func TestHourMarkers(t *testing.T) {
	habits := []models.Habit{fixedHabit("a", "10:00")}
	tl := Generate(habits, "07:30")

	var hours []int
	for _, slot := range tl.Slots {
		if slot.Kind == SlotHour {
			hours = append(hours, slot.ClockMinutes)
		}
	}

	if len(hours) == 0 {
		t.Fatal("expected hour markers")
	}
	// First whole hour strictly after a 07:30 wake is 08:00.
	if hours[0] != 8*60 {
		t.Errorf("first hour marker at %d minutes, want 480", hours[0])
	}
	for _, h := range hours {
		if h%60 != 0 {
			t.Errorf("hour marker at %d not on a whole hour", h)
		}
	}
}

func TestHourMarkersStopAtLastSegment(t *testing.T) {
	habits := []models.Habit{fixedHabit("a", "09:00")}
	tl := Generate(habits, "07:00")

	last := tl.Segments[len(tl.Segments)-1]
	for _, slot := range tl.Slots {
		if slot.Position > last.Position {
			t.Errorf("%s marker at %v beyond last segment %v", slot.Kind, slot.Position, last.Position)
		}
	}
}

func TestSubHourMarkerDensity(t *testing.T) {
	// Wake segment to a habit 30 minutes later: 120 units / 30 min = 4.0
	// units per minute. That is above the five-minute threshold (0.8) but not
	// strictly above the every-minute threshold (4.0), so the first pair gets
	// quarter, half, and five-minute marks and no every-minute marks.
	habits := []models.Habit{fixedHabit("a", "07:30"), fixedHabit("b", "23:00")}
	tl := Generate(habits, "07:00")

	firstPairCounts := map[SlotKind]int{}
	for _, slot := range tl.Slots {
		if slot.MinutesSinceWake > 0 && slot.MinutesSinceWake < 30 &&
			(slot.Kind == SlotHalf || slot.Kind == SlotQuarter || slot.Kind == SlotMicro) {
			firstPairCounts[slot.Kind]++
		}
	}

	if firstPairCounts[SlotQuarter] != 1 {
		t.Errorf("expected exactly one quarter mark (07:15) in the first pair, got %d", firstPairCounts[SlotQuarter])
	}
	// Five-minute marks inside (0,30) excluding 15: 5, 10, 20, 25.
	if firstPairCounts[SlotMicro] != 4 {
		t.Errorf("expected 4 five-minute marks in the first pair, got %d", firstPairCounts[SlotMicro])
	}

	// Habit b to end-of-day: 120 units / 480 min = 0.25 units per minute.
	// Only half-hour marks qualify there.
	for _, slot := range tl.Slots {
		if slot.MinutesSinceWake > 960 && slot.MinutesSinceWake < 1440 {
			if slot.Kind == SlotQuarter || slot.Kind == SlotMicro {
				t.Errorf("unexpected %s marker in a 0.25 units/min pair at %d since wake",
					slot.Kind, slot.MinutesSinceWake)
			}
		}
	}
}

func TestNoDuplicateHourMarkersFromSubHourPass(t *testing.T) {
	habits := []models.Habit{fixedHabit("a", "12:00")}
	tl := Generate(habits, "07:00")

	seen := map[int]int{}
	for _, slot := range tl.Slots {
		if slot.MinutesSinceWake%60 == 0 && slot.MinutesSinceWake > 0 &&
			slot.Kind != SlotHabit && slot.Kind != SlotWake {
			seen[slot.MinutesSinceWake]++
			if slot.Kind != SlotHour {
				t.Errorf("whole-hour boundary emitted as %s", slot.Kind)
			}
		}
	}
	for sinceWake, n := range seen {
		if n > 1 {
			t.Errorf("hour boundary %d emitted %d times", sinceWake, n)
		}
	}
}

func TestOverlapResolutionHidesCrowdedLabels(t *testing.T) {
	// Many habits crammed into one hour produce hour markers separated by
	// large gaps, but a long empty stretch at the end compresses a full day
	// of hour markers into a single tile span, forcing label suppression.
	habits := []models.Habit{fixedHabit("a", "07:10"), fixedHabit("b", "07:20")}
	tl := Generate(habits, "07:00")

	// Final pair covers 20..1440 minutes since wake over one tile: 23 hour
	// markers in 120 units cannot all be labeled at 30-unit spacing.
	labeled := 0
	total := 0
	for _, slot := range tl.Slots {
		if slot.Kind == SlotHour {
			total++
			if slot.DisplayLabel {
				labeled++
			}
		}
	}
	if total < 20 {
		t.Fatalf("expected a crowded set of hour markers, got %d", total)
	}
	if labeled >= total {
		t.Error("expected some hour labels to be hidden by overlap resolution")
	}
	if labeled == 0 {
		t.Error("overlap resolution must keep at least one label")
	}

	// Hidden labels are suppressed, not removed.
	for _, slot := range tl.Slots {
		if slot.Kind == SlotHour && !slot.DisplayLabel && slot.Label == "" {
			t.Error("hidden markers must retain their label text")
		}
	}
}

func TestWakeLabelAlwaysShown(t *testing.T) {
	habits := []models.Habit{fixedHabit("a", "07:05")}
	tl := Generate(habits, "07:00")

	for _, slot := range tl.Slots {
		if slot.Kind == SlotWake && !slot.DisplayLabel {
			t.Error("wake marker label must never be hidden")
		}
	}
}
