package cli

import (
	"fmt"
	"sort"

	"github.com/akarsten/wakeline/internal/daykey"
	"github.com/akarsten/wakeline/internal/models"
	"github.com/akarsten/wakeline/internal/timeutil"
)

type DayCmd struct {
	Date string `arg:"" optional:"" help:"Date to show (YYYY-MM-DD), defaults to the current day."`
}

func (c *DayCmd) Run(ctx *Context) error {
	sess := ctx.startSession()

	if c.Date == "" {
		day, ok := sess.CurrentDay()
		if !ok {
			return fmt.Errorf("no day in progress; pass a date to inspect history")
		}
		printDay(day)
		return nil
	}

	// A date can hold several wake days; show them all, earliest wake first.
	var keys []string
	for key := range sess.Days() {
		if parsed, ok := daykey.Parse(key); ok && parsed.Date == c.Date {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return fmt.Errorf("no wake day recorded for %s", c.Date)
	}
	sort.Strings(keys)

	for _, key := range keys {
		printDay(sess.Days()[key])
	}
	return nil
}

func printDay(day models.WakeDay) {
	status := "in progress"
	if day.IsCompleted {
		status = "completed"
	}
	if day.AutoCompleted {
		status = "auto-completed"
	}
	fmt.Printf("%s · woke %s · %d/%d habits (%d%%) · %s\n",
		day.Date, timeutil.Format12Hour(day.WakeTime, true),
		day.Stats.Completed, day.Stats.Total, day.Stats.Rate, status)

	for _, h := range day.Habits {
		check := " "
		if h.Completed {
			check = "x"
		}
		fmt.Printf("  [%s] %-8s %s\n", check, timeutil.Format12Hour(h.EffectiveTime, true), h.Title)
	}
}
