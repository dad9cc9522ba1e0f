package cli

import (
	"fmt"
	"strings"

	"github.com/akarsten/wakeline/internal/models"
	"github.com/akarsten/wakeline/internal/session"
	"github.com/akarsten/wakeline/internal/timeutil"
)

type HabitAddCmd struct {
	Title    string   `arg:"" help:"Habit title."`
	Time     string   `short:"t" help:"Fixed clock time (HH:MM). Mutually exclusive with --offset."`
	Offset   int      `short:"o" help:"Minutes after wake-up." default:"60"`
	Duration int      `short:"d" help:"Duration in minutes." default:"30"`
	Tags     []string `short:"T" help:"Tags."`
	Desc     string   `help:"Description."`
}

func (c *HabitAddCmd) Validate() error {
	if c.Time != "" {
		if _, _, ok := timeutil.ParseClock(c.Time); !ok {
			return fmt.Errorf("invalid time %q, expected HH:MM", c.Time)
		}
	}
	return nil
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	sess := ctx.startSession()
	if sess.State() != session.StateAwake {
		return fmt.Errorf("no day in progress; run 'wakeline wake' first")
	}

	h := models.Habit{
		Title:       c.Title,
		Description: c.Desc,
		DurationMin: c.Duration,
		Tags:        c.Tags,
	}
	if c.Time != "" {
		h.Schedule = models.Schedule{Kind: models.ScheduleFixed, Time: c.Time}
	} else {
		h.Schedule = models.Schedule{Kind: models.ScheduleDynamic, OffsetMin: models.ClampOffset(c.Offset)}
	}

	added, err := sess.AddHabit(h)
	if err != nil {
		return err
	}
	fmt.Printf("Added habit: %s at %s (ID: %s)\n",
		added.Title, timeutil.Format12Hour(added.EffectiveTime, true), added.ID)
	return nil
}

type HabitEditCmd struct {
	ID       string `arg:"" help:"Habit ID or unique title prefix."`
	Title    string `help:"New title."`
	Time     string `short:"t" help:"Fixed clock time (HH:MM)."`
	Offset   int    `short:"o" help:"Minutes after wake-up." default:"-1"`
	Duration int    `short:"d" help:"Duration in minutes." default:"-1"`
	Desc     string `help:"Description."`
}

func (c *HabitEditCmd) Run(ctx *Context) error {
	sess := ctx.startSession()
	existing, err := resolveHabit(sess, c.ID)
	if err != nil {
		return err
	}

	updated := existing
	if c.Title != "" {
		updated.Title = c.Title
	}
	if c.Desc != "" {
		updated.Description = c.Desc
	}
	if c.Duration >= 0 {
		updated.DurationMin = c.Duration
	}
	if c.Time != "" {
		if _, _, ok := timeutil.ParseClock(c.Time); !ok {
			return fmt.Errorf("invalid time %q, expected HH:MM", c.Time)
		}
		updated.Schedule = models.Schedule{Kind: models.ScheduleFixed, Time: c.Time}
	} else if c.Offset >= 0 {
		updated.Schedule = models.Schedule{Kind: models.ScheduleDynamic, OffsetMin: models.ClampOffset(c.Offset)}
	}

	if err := sess.UpdateHabit(updated); err != nil {
		return err
	}
	fmt.Printf("Updated habit: %s\n", updated.Title)
	return nil
}

type HabitDeleteCmd struct {
	ID string `arg:"" help:"Habit ID or unique title prefix."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	sess := ctx.startSession()
	h, err := resolveHabit(sess, c.ID)
	if err != nil {
		return err
	}
	if err := sess.DeleteHabit(h.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted habit: %s\n", h.Title)
	return nil
}

type HabitListCmd struct {
	Tag string `short:"T" help:"Show only habits carrying this tag."`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	sess := ctx.startSession()
	day, ok := sess.CurrentDay()
	if !ok {
		return fmt.Errorf("no day in progress")
	}
	if len(day.Habits) == 0 {
		fmt.Println("No habits yet. Add one with 'wakeline habit add'.")
		return nil
	}

	fmt.Printf("Habits for %s (woke %s):\n", day.Date, timeutil.Format12Hour(day.WakeTime, true))
	for _, h := range day.Habits {
		if c.Tag != "" && !h.HasTag([]string{c.Tag}) {
			continue
		}
		check := " "
		if h.Completed {
			check = "x"
		}
		fmt.Printf("  [%s] %-8s %s (%s)\n",
			check, timeutil.Format12Hour(h.EffectiveTime, true), h.Title, scheduleLabel(h))
		if len(h.Tags) > 0 {
			fmt.Printf("      #%s\n", strings.Join(h.Tags, " #"))
		}
		for _, sub := range h.SubHabits {
			subCheck := " "
			if sub.Completed {
				subCheck = "x"
			}
			fmt.Printf("      [%s] %s\n", subCheck, sub.Title)
		}
	}
	return nil
}

type HabitDoneCmd struct {
	ID string `arg:"" help:"Habit ID or unique title prefix."`
}

func (c *HabitDoneCmd) Run(ctx *Context) error {
	sess := ctx.startSession()
	h, err := resolveHabit(sess, c.ID)
	if err != nil {
		return err
	}
	if err := sess.ToggleHabit(h.ID); err != nil {
		return err
	}
	state := "done"
	if h.Completed {
		state = "not done"
	}
	fmt.Printf("Marked %s as %s.\n", h.Title, state)
	return nil
}

func scheduleLabel(h models.Habit) string {
	if h.Schedule.Kind == models.ScheduleDynamic {
		return fmt.Sprintf("wake +%s", timeutil.FormatDuration(h.Schedule.OffsetMin))
	}
	return "fixed " + h.Schedule.Time
}

// resolveHabit matches by exact ID first, then by unique title prefix.
func resolveHabit(sess *session.Session, ref string) (models.Habit, error) {
	day, ok := sess.CurrentDay()
	if !ok {
		return models.Habit{}, fmt.Errorf("no day in progress")
	}

	var matches []models.Habit
	for _, h := range day.Habits {
		if h.ID == ref {
			return h, nil
		}
		if strings.HasPrefix(strings.ToLower(h.Title), strings.ToLower(ref)) {
			matches = append(matches, h)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return models.Habit{}, fmt.Errorf("no habit matches %q", ref)
	default:
		return models.Habit{}, fmt.Errorf("%q is ambiguous (%d matches)", ref, len(matches))
	}
}
