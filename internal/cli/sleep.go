package cli

import (
	"errors"
	"fmt"

	"github.com/akarsten/wakeline/internal/daykey"
	"github.com/akarsten/wakeline/internal/session"
)

type SleepCmd struct{}

func (c *SleepCmd) Run(ctx *Context) error {
	sess := ctx.startSession()

	day, _ := sess.CurrentDay()
	err := sess.GoToSleep()
	if errors.Is(err, session.ErrNotAwake) {
		return fmt.Errorf("no day in progress; run 'wakeline wake' first")
	}
	if err != nil {
		return err
	}

	stats := sess.Days()[daykey.Make(day.WakeTime, day.Date)].Stats
	fmt.Printf("Day complete: %d/%d habits done (%d%%). Sleep well!\n",
		stats.Completed, stats.Total, stats.Rate)
	return nil
}
