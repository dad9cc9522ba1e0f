package timeline

import (
	"math"

	"github.com/akarsten/wakeline/internal/constants"
	"github.com/akarsten/wakeline/internal/timeutil"
)

// TimePoint is the result of mapping a position back to a time of day.
type TimePoint struct {
	Clock            string // HH:MM format
	MinutesSinceWake float64
}

// TimeToPosition maps a clock time to its vertical position by linear
// interpolation within the bounding segment pair. Times outside every pair
// (or an empty segment list) land on the leading edge padding.
//
// TimeToPosition and PositionToTime are mutual inverses only at segment
// boundaries: within the fixed-pitch design, equal position deltas do not
// correspond to equal time deltas.
func TimeToPosition(clock string, segments []Segment, wakeTime string) float64 {
	sinceWake := timeutil.MinutesSinceWake(clock, wakeTime)
	if position, ok := interpolate(sinceWake, segments); ok {
		return position
	}
	return constants.TimelinePadding
}

// PositionToTime maps a vertical position back to a time of day. Positions
// before the first segment clamp to the wake marker and positions past the
// last segment clamp to 1439 minutes since wake; in between the fractional
// minutes-since-wake is interpolated and converted to clock time mod 1440.
func PositionToTime(position float64, segments []Segment, wakeTime string) TimePoint {
	wakeMinutes := timeutil.TimeToMinutes(wakeTime)

	if len(segments) > 0 && position < segments[0].Position {
		return TimePoint{Clock: wakeTime, MinutesSinceWake: 0}
	}
	if len(segments) > 0 && position > segments[len(segments)-1].Position {
		return TimePoint{
			Clock:            timeutil.MinutesToTime(wakeMinutes + constants.MaxOffsetMin),
			MinutesSinceWake: constants.MaxOffsetMin,
		}
	}

	for i := 0; i < len(segments)-1; i++ {
		start, end := segments[i], segments[i+1]
		if position < start.Position || position > end.Position {
			continue
		}
		span := end.Position - start.Position
		var progress float64
		if span > 0 {
			progress = (position - start.Position) / span
		}
		sinceWake := float64(start.MinutesSinceWake) +
			float64(end.MinutesSinceWake-start.MinutesSinceWake)*progress
		return TimePoint{
			Clock:            timeutil.MinutesToTime(wakeMinutes + int(math.Round(sinceWake))),
			MinutesSinceWake: sinceWake,
		}
	}

	return TimePoint{Clock: wakeTime, MinutesSinceWake: 0}
}
