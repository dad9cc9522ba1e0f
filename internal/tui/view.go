package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/akarsten/wakeline/internal/models"
	"github.com/akarsten/wakeline/internal/session"
	"github.com/akarsten/wakeline/internal/stats"
	"github.com/akarsten/wakeline/internal/timeutil"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateTimeline:
		content = m.viewTimeline()
	case StateHistory:
		content = docStyle.Render(m.dayList.View())
	case StateStats:
		content = m.viewStats()
	case StateForm:
		content = docStyle.Render(m.form.View())
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	case StateSummary:
		content = m.viewSummary()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Timeline", "History", "Stats"} {
		if m.state == ViewState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if m.filterTag != "" {
		bar += subtleStyle.Render("  filter: #" + m.filterTag)
	}
	return bar
}

func (m Model) viewTimeline() string {
	if m.sess.State() != session.StateAwake {
		return m.viewNotAwake()
	}
	return m.timelineView.View()
}

func (m Model) viewNotAwake() string {
	now := timeutil.Format12Hour(timeutil.Clock(time.Now()), true)
	lines := []string{
		titleStyle.Render("Good morning"),
		"",
		fmt.Sprintf("It is %s.", now),
		"",
		"Press 'w' to wake up and start your day.",
	}
	if _, day, ok := lastCompletedDay(m.sess); ok {
		lines = append(lines, "",
			subtleStyle.Render(fmt.Sprintf("Last day: %s · %d/%d habits (%d%%) · ended %s",
				day.Date, day.Stats.Completed, day.Stats.Total, day.Stats.Rate,
				timeutil.FormatTimeAgo(minutesSince(day.CompletedAt)))))
	}
	return lipgloss.Place(m.width, m.contentHeight(),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, lines...),
	)
}

func (m Model) viewStats() string {
	days := m.sess.Days()
	now := time.Now()

	streak := stats.Streak(days, now)
	weekly := stats.WeeklyRate(days, now)
	daily := stats.DailyStats(days, now)
	summary := stats.Summarize(daily)

	rows := []string{
		titleStyle.Render("Stats"),
		"",
		statLine("Streak", fmt.Sprintf("%d day(s)", streak)),
		statLine("Weekly rate", fmt.Sprintf("%d%%", weekly)),
		"",
		statLine("Today", fmt.Sprintf("%d/%d", daily.Today.Completed, daily.Today.Total)),
		statLine("Yesterday", fmt.Sprintf("%d/%d", daily.Yesterday.Completed, daily.Yesterday.Total)),
		statLine("This week", fmt.Sprintf("%d/%d", daily.Week.Completed, daily.Week.Total)),
		statLine("All time", fmt.Sprintf("%d/%d", daily.AllTime.Completed, daily.AllTime.Total)),
		"",
		subtleStyle.Render(fmt.Sprintf("vs yesterday: %+d · vs weekly avg: %+d", summary.VsYesterday, summary.VsWeek)),
	}
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func statLine(label, value string) string {
	return fmt.Sprintf("%-14s %s", label, statValueStyle.Render(value))
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, m.contentHeight(),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Delete this habit?"),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}

func (m Model) viewSummary() string {
	day := m.summaryDay
	lines := []string{
		titleStyle.Render("Day complete"),
		"",
		fmt.Sprintf("%s · woke %s", day.Date, timeutil.Format12Hour(day.WakeTime, true)),
		statLine("Habits", fmt.Sprintf("%d/%d (%d%%)", day.Stats.Completed, day.Stats.Total, day.Stats.Rate)),
		"",
	}
	for _, h := range day.Habits {
		check := "✗"
		style := subtleStyle
		if h.Completed {
			check = "✓"
			style = statValueStyle
		}
		lines = append(lines, style.Render(fmt.Sprintf("%s %s · %s", check, h.Title, timeutil.Format12Hour(h.EffectiveTime, true))))
	}
	lines = append(lines, "", subtleStyle.Render("press enter to close"))

	return lipgloss.Place(m.width, m.contentHeight(),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, lines...),
	)
}

func minutesSince(at *string) int {
	if at == nil {
		return -1
	}
	t, err := time.Parse(time.RFC3339, *at)
	if err != nil {
		return -1
	}
	return int(time.Since(t).Minutes())
}

// lastCompletedDay finds the most recently completed day for the wake screen.
func lastCompletedDay(sess *session.Session) (string, models.WakeDay, bool) {
	var (
		bestKey string
		best    models.WakeDay
		found   bool
	)
	for key, day := range sess.Days() {
		if !day.IsCompleted || day.CompletedAt == nil {
			continue
		}
		if !found || *day.CompletedAt > *best.CompletedAt {
			bestKey = key
			best = day
			found = true
		}
	}
	return bestKey, best, found
}
