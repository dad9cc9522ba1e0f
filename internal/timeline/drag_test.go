package timeline

import (
	"testing"

	"github.com/akarsten/wakeline/internal/constants"
)

func TestDragLifecycle(t *testing.T) {
	tl := testTimeline(t)
	var d Drag

	d.Start("b", 280)
	if !d.Active() || d.HabitID() != "b" {
		t.Fatal("drag not active after Start")
	}

	point, ok := d.Move(220, tl, "07:00")
	if !ok {
		t.Fatal("Move during an active drag must report ok")
	}
	if point.Clock != "08:15" {
		t.Errorf("live display during drag = %q, want 08:15", point.Clock)
	}

	habitID, offset, ok := d.End(tl, "07:00")
	if !ok || habitID != "b" {
		t.Fatalf("End = (%q, %d, %v)", habitID, offset, ok)
	}
	if offset != 75 {
		t.Errorf("offset = %d, want 75", offset)
	}
	if d.Active() {
		t.Error("drag must be inactive after End")
	}
}

func TestDragMoveWithoutStartIsNoop(t *testing.T) {
	tl := testTimeline(t)
	var d Drag

	if _, ok := d.Move(100, tl, "07:00"); ok {
		t.Error("Move without Start must be a no-op")
	}
	if _, _, ok := d.End(tl, "07:00"); ok {
		t.Error("End without Start must be a no-op")
	}
}

func TestDragClampsToWakeDayRange(t *testing.T) {
	tl := testTimeline(t)

	// Dropping on the wake marker (minutes since wake 0) clamps to 1.
	var d Drag
	d.Start("a", 160)
	d.Move(-500, tl, "07:00")
	_, offset, ok := d.End(tl, "07:00")
	if !ok || offset != constants.MinOffsetMin {
		t.Errorf("drop at wake marker: offset = %d, want %d", offset, constants.MinOffsetMin)
	}

	// Dropping at or past the virtual end of day clamps to 1439.
	d.Start("a", 160)
	d.Move(tl.Height + 500, tl, "07:00")
	_, offset, ok = d.End(tl, "07:00")
	if !ok || offset != constants.MaxOffsetMin {
		t.Errorf("drop past end of day: offset = %d, want %d", offset, constants.MaxOffsetMin)
	}

	// Exactly on the terminal segment (minutes since wake 1440) also clamps
	// to 1439, never 1440.
	last := tl.Segments[len(tl.Segments)-1]
	d.Start("a", 160)
	d.Move(last.Position, tl, "07:00")
	_, offset, ok = d.End(tl, "07:00")
	if !ok || offset != constants.MaxOffsetMin {
		t.Errorf("drop on terminal segment: offset = %d, want %d", offset, constants.MaxOffsetMin)
	}
}

func TestDragMoveClampsToCanvas(t *testing.T) {
	tl := testTimeline(t)
	var d Drag

	d.Start("a", 160)
	d.Move(-50, tl, "07:00")
	if d.Position() != 0 {
		t.Errorf("position = %v, want clamp to 0", d.Position())
	}
	d.Move(tl.Height+50, tl, "07:00")
	if d.Position() != tl.Height {
		t.Errorf("position = %v, want clamp to height %v", d.Position(), tl.Height)
	}
}
