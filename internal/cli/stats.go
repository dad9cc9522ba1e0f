package cli

import (
	"fmt"
	"time"

	"github.com/akarsten/wakeline/internal/stats"
)

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *Context) error {
	sess := ctx.startSession()
	days := sess.Days()
	now := time.Now()

	if len(days) == 0 {
		fmt.Println("No days recorded yet.")
		return nil
	}

	daily := stats.DailyStats(days, now)
	summary := stats.Summarize(daily)

	fmt.Printf("Streak:       %d day(s)\n", stats.Streak(days, now))
	fmt.Printf("Weekly rate:  %d%%\n\n", stats.WeeklyRate(days, now))
	fmt.Printf("Today:        %d/%d\n", daily.Today.Completed, daily.Today.Total)
	fmt.Printf("Yesterday:    %d/%d\n", daily.Yesterday.Completed, daily.Yesterday.Total)
	fmt.Printf("This week:    %d/%d\n", daily.Week.Completed, daily.Week.Total)
	fmt.Printf("All time:     %d/%d\n\n", daily.AllTime.Completed, daily.AllTime.Total)
	fmt.Printf("vs yesterday: %+d habit(s)\n", summary.VsYesterday)
	fmt.Printf("vs week avg:  %+d habit(s)\n", summary.VsWeek)
	return nil
}
