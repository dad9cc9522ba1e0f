// Package session owns the wake-day lifecycle: the NoDay/Awake state machine,
// habit mutations against the current day, and persistence after every change.
package session

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/akarsten/wakeline/internal/constants"
	"github.com/akarsten/wakeline/internal/daykey"
	"github.com/akarsten/wakeline/internal/logger"
	"github.com/akarsten/wakeline/internal/models"
	"github.com/akarsten/wakeline/internal/storage"
	"github.com/akarsten/wakeline/internal/timeutil"
)

type State int

const (
	// StateNoDay means no wake day is in progress.
	StateNoDay State = iota
	// StateAwake means a current day exists and accepts habit mutations.
	StateAwake
)

var (
	ErrNotAwake     = errors.New("no wake day in progress")
	ErrAlreadyAwake = errors.New("a wake day is already in progress")
)

// Options configures a session. Zero values fall back to sensible defaults:
// no mirror, the standard expiry threshold, wall-clock time, and an
// always-focused probe.
type Options struct {
	Mirror      storage.Mirror
	ExpiryHours int
	Now         func() time.Time
	Focused     func() bool
}

// Session drives the day lifecycle against a storage provider. It is not safe
// for concurrent use; the TUI and CLI both run it from a single goroutine.
type Session struct {
	store       storage.Provider
	mirror      storage.Mirror
	doc         storage.Document
	key         string
	state       State
	expiryHours int
	now         func() time.Time
	focused     func() bool
}

func New(store storage.Provider, opts Options) *Session {
	if opts.ExpiryHours <= 0 {
		opts.ExpiryHours = constants.DefaultExpiryHours
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Focused == nil {
		opts.Focused = func() bool { return true }
	}
	return &Session{
		store:       store,
		mirror:      opts.Mirror,
		expiryHours: opts.ExpiryHours,
		now:         opts.Now,
		focused:     opts.Focused,
	}
}

// Startup loads the document, completes any expired days, and resumes the
// most recent uncompleted day if one survives. Storage failures degrade to an
// empty NoDay session.
func (s *Session) Startup() {
	if s.mirror != nil {
		s.doc, _ = storage.SyncWithMirror(s.store, s.mirror)
	} else {
		s.doc = s.store.Load()
	}
	if s.doc.Days == nil {
		s.doc.Days = make(map[string]models.WakeDay)
	}

	if daykey.CompleteExpired(s.doc.Days, s.now(), s.expiryHours) {
		s.persist()
	}

	key, day, ok := daykey.MostRecentUncompleted(s.doc.Days)
	if !ok {
		s.state = StateNoDay
		s.key = ""
		return
	}

	s.key = key
	s.state = StateAwake
	for i := range day.Habits {
		day.Habits[i].ResolveEffectiveTime(day.WakeTime)
	}
	s.sortHabits(&day)
	s.doc.Days[key] = day
	s.UpdateHighlighting()
}

func (s *Session) State() State { return s.state }

func (s *Session) Key() string { return s.key }

// CurrentDay returns a copy of the day in progress. ok is false in NoDay.
func (s *Session) CurrentDay() (models.WakeDay, bool) {
	if s.state != StateAwake {
		return models.WakeDay{}, false
	}
	return models.CloneDay(s.doc.Days[s.key]), true
}

func (s *Session) WakeTime() string {
	if s.state != StateAwake {
		return ""
	}
	return s.doc.Days[s.key].WakeTime
}

// Days returns the full day map for stats and listing. Callers must not
// mutate it.
func (s *Session) Days() map[string]models.WakeDay { return s.doc.Days }

func (s *Session) Settings() storage.Settings { return s.doc.Settings }

// WakeUp starts a new day at the given wake time, seeding habits from the
// most recent previous day with all completion flags reset. An empty wakeTime
// means "now".
func (s *Session) WakeUp(wakeTime string) error {
	if s.state == StateAwake {
		return ErrAlreadyAwake
	}
	now := s.now()
	if wakeTime == "" {
		wakeTime = timeutil.Clock(now)
	}
	if _, _, ok := timeutil.ParseClock(wakeTime); !ok {
		return fmt.Errorf("invalid wake time %q, expected HH:MM", wakeTime)
	}

	date := timeutil.DateKey(now)
	key := daykey.Make(wakeTime, date)

	day := models.WakeDay{
		Date:     date,
		WakeTime: wakeTime,
		Habits:   s.templateHabits(),
	}
	for i := range day.Habits {
		day.Habits[i].ResolveEffectiveTime(wakeTime)
	}
	s.sortHabits(&day)
	day.Stats = models.ComputeStats(day.Habits)

	s.doc.Days[key] = day
	s.key = key
	s.state = StateAwake
	s.UpdateHighlighting()
	s.persist()
	logger.Info("wake day started", "key", key, "habits", len(day.Habits))
	return nil
}

// templateHabits copies the habit list of the latest day, completed or not,
// so each new day starts from yesterday's routine.
func (s *Session) templateHabits() []models.Habit {
	var (
		latest   models.WakeDay
		latestAt time.Time
		found    bool
	)
	for key, day := range s.doc.Days {
		parsed, ok := daykey.Parse(key)
		if !ok {
			continue
		}
		if at := parsed.Timestamp(); !found || at.After(latestAt) {
			latest = day
			latestAt = at
			found = true
		}
	}
	if !found {
		return nil
	}

	habits := make([]models.Habit, 0, len(latest.Habits))
	for _, h := range latest.Habits {
		habits = append(habits, models.TemplateHabit(h))
	}
	return habits
}

// GoToSleep finalizes the current day: stats are recomputed one last time and
// the day is marked completed with a timestamp.
func (s *Session) GoToSleep() error {
	if s.state != StateAwake {
		return ErrNotAwake
	}
	day := s.doc.Days[s.key]
	day.Stats = models.ComputeStats(day.Habits)
	day.IsCompleted = true
	at := s.now().Format(time.RFC3339)
	day.CompletedAt = &at
	s.doc.Days[s.key] = day

	s.persist()
	logger.Info("wake day completed", "key", s.key, "rate", day.Stats.Rate)
	s.key = ""
	s.state = StateNoDay
	return nil
}

// AutoCompleteIfExpired closes the current day when it has expired, but only
// while the app is unfocused so an active user is never interrupted. It
// reports whether the day was closed.
func (s *Session) AutoCompleteIfExpired() bool {
	if s.state != StateAwake {
		return false
	}
	if !daykey.IsExpired(s.key, s.now(), s.expiryHours) {
		return false
	}
	if s.focused() {
		return false
	}

	day := s.doc.Days[s.key]
	day.Stats = models.ComputeStats(day.Habits)
	day.IsCompleted = true
	day.AutoCompleted = true
	at := s.now().Format(time.RFC3339)
	day.CompletedAt = &at
	s.doc.Days[s.key] = day

	s.persist()
	logger.Info("wake day auto-completed", "key", s.key)
	s.key = ""
	s.state = StateNoDay
	return true
}

// AddHabit appends a habit to the current day, assigning an ID when the
// caller did not.
func (s *Session) AddHabit(h models.Habit) (models.Habit, error) {
	if s.state != StateAwake {
		return models.Habit{}, ErrNotAwake
	}
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	if h.DurationMin <= 0 {
		h.DurationMin = constants.DefaultDurationMin
	}
	day := s.doc.Days[s.key]
	h.ResolveEffectiveTime(day.WakeTime)
	day.Habits = append(day.Habits, h)
	s.commitDay(day)
	return h, nil
}

// UpdateHabit applies an edit over the existing habit with the same ID,
// preserving completion state the merge rules allow.
func (s *Session) UpdateHabit(h models.Habit) error {
	if s.state != StateAwake {
		return ErrNotAwake
	}
	day := s.doc.Days[s.key]
	idx := findHabit(day.Habits, h.ID)
	if idx < 0 {
		return fmt.Errorf("habit %q not found", h.ID)
	}
	merged := models.MergeHabit(day.Habits[idx], h)
	merged.ResolveEffectiveTime(day.WakeTime)
	day.Habits[idx] = merged
	s.commitDay(day)
	return nil
}

func (s *Session) DeleteHabit(id string) error {
	if s.state != StateAwake {
		return ErrNotAwake
	}
	day := s.doc.Days[s.key]
	idx := findHabit(day.Habits, id)
	if idx < 0 {
		return fmt.Errorf("habit %q not found", id)
	}
	day.Habits = append(day.Habits[:idx], day.Habits[idx+1:]...)
	s.commitDay(day)
	return nil
}

func (s *Session) ToggleHabit(id string) error {
	if s.state != StateAwake {
		return ErrNotAwake
	}
	day := s.doc.Days[s.key]
	idx := findHabit(day.Habits, id)
	if idx < 0 {
		return fmt.Errorf("habit %q not found", id)
	}
	day.Habits[idx].SetCompleted(!day.Habits[idx].Completed)
	s.commitDay(day)
	return nil
}

func (s *Session) ToggleSubHabit(habitID, subID string) error {
	if s.state != StateAwake {
		return ErrNotAwake
	}
	day := s.doc.Days[s.key]
	idx := findHabit(day.Habits, habitID)
	if idx < 0 {
		return fmt.Errorf("habit %q not found", habitID)
	}
	for i := range day.Habits[idx].SubHabits {
		if day.Habits[idx].SubHabits[i].ID == subID {
			day.Habits[idx].SubHabits[i].Completed = !day.Habits[idx].SubHabits[i].Completed
			s.commitDay(day)
			return nil
		}
	}
	return fmt.Errorf("sub-habit %q not found on habit %q", subID, habitID)
}

// Reschedule moves a habit to a new offset after wake, as produced by a drag
// drop. Dynamic habits keep their kind with the new offset; fixed habits get
// their clock time rewritten to the equivalent instant.
func (s *Session) Reschedule(habitID string, offsetMin int) error {
	if s.state != StateAwake {
		return ErrNotAwake
	}
	day := s.doc.Days[s.key]
	idx := findHabit(day.Habits, habitID)
	if idx < 0 {
		return fmt.Errorf("habit %q not found", habitID)
	}
	offsetMin = models.ClampOffset(offsetMin)
	h := &day.Habits[idx]
	switch h.Schedule.Kind {
	case models.ScheduleDynamic:
		h.Schedule.OffsetMin = offsetMin
	default:
		h.Schedule.Time = timeutil.AddMinutes(day.WakeTime, offsetMin)
	}
	h.ResolveEffectiveTime(day.WakeTime)
	s.commitDay(day)
	return nil
}

// UpdateHighlighting recomputes the transient status flags on every habit of
// the current day: overdue, warning window, and the single next upcoming
// habit marked as current.
func (s *Session) UpdateHighlighting() {
	if s.state != StateAwake {
		return
	}
	day := s.doc.Days[s.key]
	nowSinceWake := timeutil.MinutesSinceWake(timeutil.Clock(s.now()), day.WakeTime)

	nextIdx := -1
	minDiff := constants.MinutesPerDay + 1
	for i := range day.Habits {
		h := &day.Habits[i]
		h.Overdue = false
		h.Current = false
		h.Warning = false
		if h.Completed || h.EffectiveTime == "" {
			continue
		}

		sinceWake := timeutil.MinutesSinceWake(h.EffectiveTime, day.WakeTime)
		switch {
		case nowSinceWake > sinceWake:
			h.Overdue = true
		case nowSinceWake >= sinceWake-h.WarningWindowMin():
			h.Warning = true
		default:
			if diff := sinceWake - nowSinceWake; diff < minDiff {
				minDiff = diff
				nextIdx = i
			}
		}
	}
	if nextIdx >= 0 {
		day.Habits[nextIdx].Current = true
	}
	s.doc.Days[s.key] = day
}

// Tags returns the sorted set of tags across the current day's habits.
func (s *Session) Tags() []string {
	if s.state != StateAwake {
		return nil
	}
	seen := map[string]struct{}{}
	for _, h := range s.doc.Days[s.key].Habits {
		for _, tag := range h.Tags {
			seen[tag] = struct{}{}
		}
	}
	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

func (s *Session) commitDay(day models.WakeDay) {
	s.sortHabits(&day)
	day.Stats = models.ComputeStats(day.Habits)
	s.doc.Days[s.key] = day
	s.UpdateHighlighting()
	s.persist()
}

func (s *Session) sortHabits(day *models.WakeDay) {
	wake := day.WakeTime
	sort.SliceStable(day.Habits, func(i, j int) bool {
		return timeutil.MinutesSinceWake(day.Habits[i].EffectiveTime, wake) <
			timeutil.MinutesSinceWake(day.Habits[j].EffectiveTime, wake)
	})
}

// persist saves locally and pushes a snapshot to the mirror without waiting
// on it.
func (s *Session) persist() {
	s.doc.UpdatedAt = s.now().UTC().Format(time.RFC3339)
	if !s.store.Save(s.doc) {
		logger.Warn("failed to save document", "path", s.store.Path())
	}
	if s.mirror != nil {
		snapshot := s.doc
		snapshot.Days = make(map[string]models.WakeDay, len(s.doc.Days))
		for key, day := range s.doc.Days {
			snapshot.Days[key] = models.CloneDay(day)
		}
		go s.mirror.Push(snapshot)
	}
}

func findHabit(habits []models.Habit, id string) int {
	for i, h := range habits {
		if h.ID == id {
			return i
		}
	}
	return -1
}
