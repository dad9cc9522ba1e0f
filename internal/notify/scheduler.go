package notify

import (
	"context"
	"sync"
	"time"

	"github.com/akarsten/wakeline/internal/constants"
	"github.com/akarsten/wakeline/internal/logger"
	"github.com/akarsten/wakeline/internal/models"
	"github.com/akarsten/wakeline/internal/timeutil"
)

// Scheduler arms one timer pair per habit: a warning ahead of the effective
// time and a reminder at it. Rearming replaces the previous set, so callers
// just rearm after every mutation.
type Scheduler struct {
	mu     sync.Mutex
	cancel context.CancelFunc
	now    func() time.Time
}

func NewScheduler() *Scheduler {
	return &Scheduler{now: time.Now}
}

// Arm cancels any armed timers and schedules reminders for every uncompleted
// habit whose effective time falls within the next 24 hours.
func (s *Scheduler) Arm(habits []models.Habit) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	now := s.now()
	armed := 0
	for _, h := range habits {
		if h.Completed || h.EffectiveTime == "" {
			continue
		}
		due, ok := nextOccurrence(now, h.EffectiveTime)
		if !ok {
			continue
		}

		habit := models.CloneHabit(h)
		go fireAt(ctx, due, func() { HabitDue(habit) })

		lead := time.Duration(constants.WarningLeadMin) * time.Minute
		if warnAt := due.Add(-lead); warnAt.After(now) {
			go fireAt(ctx, warnAt, func() { HabitWarning(habit, constants.WarningLeadMin) })
		}
		armed++
	}
	logger.Debug("reminders armed", "habits", armed)
}

// Stop cancels all armed timers.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// nextOccurrence resolves a clock string to the next instant it names,
// looking at most 24 hours ahead. ok is false for malformed clocks.
func nextOccurrence(now time.Time, clock string) (time.Time, bool) {
	h, m, ok := timeutil.ParseClock(clock)
	if !ok {
		return time.Time{}, false
	}
	at := time.Date(now.Year(), now.Month(), now.Day(), h, m, 0, 0, now.Location())
	if !at.After(now) {
		at = at.Add(24 * time.Hour)
	}
	return at, true
}

func fireAt(ctx context.Context, at time.Time, f func()) {
	t := time.NewTimer(time.Until(at))
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
		f()
	}
}
