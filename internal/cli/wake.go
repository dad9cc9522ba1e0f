package cli

import (
	"errors"
	"fmt"

	"github.com/akarsten/wakeline/internal/session"
	"github.com/akarsten/wakeline/internal/timeutil"
)

type WakeCmd struct {
	Time string `arg:"" optional:"" help:"Wake time (HH:MM), defaults to now."`
}

func (c *WakeCmd) Run(ctx *Context) error {
	sess := ctx.startSession()

	err := sess.WakeUp(c.Time)
	if errors.Is(err, session.ErrAlreadyAwake) {
		return fmt.Errorf("already awake since %s; run 'wakeline sleep' first", timeutil.Format12Hour(sess.WakeTime(), true))
	}
	if err != nil {
		return err
	}

	day, _ := sess.CurrentDay()
	fmt.Printf("Good morning! Day started at %s with %d habit(s).\n",
		timeutil.Format12Hour(day.WakeTime, true), len(day.Habits))
	return nil
}
