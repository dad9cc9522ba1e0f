package tui

import (
	"math"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/akarsten/wakeline/internal/models"
	"github.com/akarsten/wakeline/internal/notify"
	"github.com/akarsten/wakeline/internal/session"
	"github.com/akarsten/wakeline/internal/timeutil"
	"github.com/akarsten/wakeline/internal/tui/components/daylist"
	"github.com/akarsten/wakeline/internal/tui/components/timelineview"
)

// contentHeight reserves rows for the tab bar and help line.
func (m Model) contentHeight() int {
	h := m.height - 4
	if h < 1 {
		h = 1
	}
	return h
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.timelineView.SetSize(msg.Width, m.contentHeight())
		m.dayList.SetSize(msg.Width-4, m.contentHeight())
		return m, nil

	case tickMsg:
		// The TUI counts as a focused foreground session, so expiry is
		// checked but never auto-completes out from under the user.
		m.sess.AutoCompleteIfExpired()
		m.refreshDay()
		return m, tickCmd()

	case daylist.OpenDayMsg:
		m.summaryKey = msg.Key
		m.summaryDay = msg.Day
		m.previousState = m.state
		m.state = StateSummary
		return m, nil
	}

	switch m.state {
	case StateForm:
		return m.updateForm(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	case StateSummary:
		return m.updateSummary(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKeys(msg)
	case tea.MouseMsg:
		if m.state == StateTimeline {
			return m.updateMouse(msg)
		}
	}

	return m.updateActiveTab(msg)
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.notifier.Stop()
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Tab):
		m.state = (m.state + 1) % tabCount
		return m, nil
	case key.Matches(msg, m.keys.ShiftTab):
		m.state = (m.state - 1 + tabCount) % tabCount
		return m, nil
	}

	if m.state == StateTimeline {
		return m.updateTimelineKeys(msg)
	}
	return m.updateActiveTab(msg)
}

func (m Model) updateTimelineKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	awake := m.sess.State() == session.StateAwake

	switch {
	case key.Matches(msg, m.keys.Wake):
		if !awake {
			if err := m.sess.WakeUp(""); err == nil {
				m.refreshDay()
				m.timelineView.ScrollToNow()
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Sleep):
		if awake {
			day, _ := m.sess.CurrentDay()
			if err := m.sess.GoToSleep(); err == nil {
				m.summaryKey = ""
				m.summaryDay = day
				m.summaryDay.Stats = models.ComputeStats(day.Habits)
				m.previousState = StateTimeline
				m.state = StateSummary
				if m.notifications {
					notify.DaySummary(m.summaryDay.Stats)
				}
				m.refreshDay()
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Add):
		if awake {
			m.openAddForm()
		}
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		if h, ok := m.timelineView.Selected(); awake && ok {
			m.openEditForm(h)
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if h, ok := m.timelineView.Selected(); awake && ok {
			m.deleteID = h.ID
			m.previousState = m.state
			m.state = StateConfirmDelete
		}
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		if h, ok := m.timelineView.Selected(); awake && ok {
			_ = m.sess.ToggleHabit(h.ID)
			m.refreshDay()
		}
		return m, nil

	case key.Matches(msg, m.keys.Filter):
		if awake {
			m.cycleFilter()
			m.refreshDay()
		}
		return m, nil

	case key.Matches(msg, m.keys.Now):
		m.timelineView.ScrollToNow()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.timelineView.MoveSelection(-1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.timelineView.MoveSelection(1)
		return m, nil
	}

	return m.updateActiveTab(msg)
}

// updateMouse drives the three-phase drag protocol: press on a habit row
// starts it, motion previews the drop time, release commits the reschedule.
func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Button != tea.MouseButtonLeft && msg.Action != tea.MouseActionMotion {
		return m.updateActiveTab(msg)
	}
	row := msg.Y - 2 // rows above the viewport: tab bar and its spacer

	switch msg.Action {
	case tea.MouseActionPress:
		if h, ok := m.timelineView.HabitAtRow(row); ok {
			m.drag.Start(h.ID, m.timelineView.RowToPosition(row))
		}

	case tea.MouseActionMotion:
		if m.drag.Active() {
			point, ok := m.drag.Move(m.timelineView.RowToPosition(row), m.timelineView.Timeline(), m.sess.WakeTime())
			if ok {
				m.timelineView.SetDrag(timeutil.Format12Hour(point.Clock, true), rowForPosition(m.drag.Position()))
			}
		}

	case tea.MouseActionRelease:
		if m.drag.Active() {
			habitID, offsetMin, ok := m.drag.End(m.timelineView.Timeline(), m.sess.WakeTime())
			m.timelineView.SetDrag("", 0)
			if ok {
				_ = m.sess.Reschedule(habitID, offsetMin)
				m.refreshDay()
			}
		}
	}
	return m, nil
}

func rowForPosition(position float64) int {
	return int(math.Round(position / timelineview.UnitsPerRow))
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		m.closeForm()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.submitForm()
	case huh.StateAborted:
		m.closeForm()
	}
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "y", "Y":
		_ = m.sess.DeleteHabit(m.deleteID)
		m.deleteID = ""
		m.state = m.previousState
		m.refreshDay()
	case "n", "N", "esc":
		m.deleteID = ""
		m.state = m.previousState
	}
	return m, nil
}

func (m Model) updateSummary(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter", "esc", "q":
			m.state = m.previousState
		}
	}
	return m, nil
}

func (m Model) updateActiveTab(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.state {
	case StateTimeline:
		m.timelineView, cmd = m.timelineView.Update(msg)
	case StateHistory:
		m.dayList, cmd = m.dayList.Update(msg)
	}
	return m, cmd
}
