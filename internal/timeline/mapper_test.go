package timeline

import (
	"math"
	"testing"

	"github.com/akarsten/wakeline/internal/constants"
	"github.com/akarsten/wakeline/internal/models"
)

func testTimeline(t *testing.T) Timeline {
	t.Helper()
	habits := []models.Habit{
		fixedHabit("a", "07:30"),
		fixedHabit("b", "09:00"),
		fixedHabit("c", "23:00"),
	}
	return Generate(habits, "07:00")
}

func TestTimeToPositionAtBoundaries(t *testing.T) {
	tl := testTimeline(t)

	tests := []struct {
		clock string
		want  float64
	}{
		{"07:00", 40},  // wake
		{"07:30", 160}, // habit a
		{"09:00", 280}, // habit b
		{"23:00", 400}, // habit c
	}
	for _, tt := range tests {
		if got := TimeToPosition(tt.clock, tl.Segments, "07:00"); got != tt.want {
			t.Errorf("TimeToPosition(%q) = %v, want %v", tt.clock, got, tt.want)
		}
	}
}

func TestTimeToPositionInterpolates(t *testing.T) {
	tl := testTimeline(t)

	// 08:15 sits 45 minutes into the 90-minute pair between habit a (07:30,
	// position 160) and habit b (09:00, position 280): exactly halfway.
	got := TimeToPosition("08:15", tl.Segments, "07:00")
	if got != 220 {
		t.Errorf("TimeToPosition(08:15) = %v, want 220", got)
	}
}

func TestTimeToPositionEmptySegments(t *testing.T) {
	if got := TimeToPosition("12:00", nil, "07:00"); got != constants.TimelinePadding {
		t.Errorf("empty segments should map to the edge padding, got %v", got)
	}
}

func TestPositionToTimeRoundTripAtBoundaries(t *testing.T) {
	tl := testTimeline(t)

	// positionToTime(timeToPosition(t)) == t for Segment boundary times.
	for _, clock := range []string{"07:30", "09:00", "23:00"} {
		position := TimeToPosition(clock, tl.Segments, "07:00")
		point := PositionToTime(position, tl.Segments, "07:00")
		if point.Clock != clock {
			t.Errorf("round trip of %q through position %v = %q", clock, position, point.Clock)
		}
	}
}

func TestPositionToTimeClamping(t *testing.T) {
	tl := testTimeline(t)

	before := PositionToTime(0, tl.Segments, "07:00")
	if before.Clock != "07:00" || before.MinutesSinceWake != 0 {
		t.Errorf("position before first segment should clamp to wake, got %+v", before)
	}

	after := PositionToTime(tl.Height, tl.Segments, "07:00")
	if after.MinutesSinceWake != constants.MaxOffsetMin {
		t.Errorf("position past last segment should clamp to 1439, got %+v", after)
	}
	if after.Clock != "06:59" {
		t.Errorf("clamped clock = %q, want 06:59", after.Clock)
	}
}

func TestPositionTimeAsymmetry(t *testing.T) {
	// Equal position deltas must not correspond to equal time deltas: the
	// pitch is ordinal, not duration-proportional.
	tl := testTimeline(t)

	// Pair a→b spans 90 minutes over one tile; pair b→c spans 840 minutes
	// over the same tile.
	mid1 := PositionToTime(220, tl.Segments, "07:00") // between a and b
	mid2 := PositionToTime(340, tl.Segments, "07:00") // between b and c

	delta1 := mid1.MinutesSinceWake - 30
	delta2 := mid2.MinutesSinceWake - 120
	if math.Abs(delta1-delta2) < 1 {
		t.Errorf("expected unequal time deltas for equal position deltas, got %v and %v", delta1, delta2)
	}
}
