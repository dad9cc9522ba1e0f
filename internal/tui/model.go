// Package tui is the interactive timeline front end. One root model owns the
// session and fans state out to the tab components.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/akarsten/wakeline/internal/models"
	"github.com/akarsten/wakeline/internal/notify"
	"github.com/akarsten/wakeline/internal/session"
	"github.com/akarsten/wakeline/internal/timeline"
	"github.com/akarsten/wakeline/internal/timeutil"
	"github.com/akarsten/wakeline/internal/tui/components/daylist"
	"github.com/akarsten/wakeline/internal/tui/components/timelineview"
)

type ViewState int

const (
	StateTimeline ViewState = iota
	StateHistory
	StateStats
	StateForm
	StateConfirmDelete
	StateSummary
)

const tabCount = 3

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type Model struct {
	sess     *session.Session
	notifier *notify.Scheduler

	state         ViewState
	previousState ViewState
	keys          KeyMap
	help          help.Model

	timelineView timelineview.Model
	dayList      daylist.Model

	form      *huh.Form
	formModel *HabitFormModel
	editingID string

	drag      timeline.Drag
	deleteID  string
	filterTag string

	summaryKey string
	summaryDay models.WakeDay

	notifications bool
	quitting      bool
	width         int
	height        int
}

func NewModel(sess *session.Session, notifications bool) Model {
	m := Model{
		sess:          sess,
		notifier:      notify.NewScheduler(),
		state:         StateTimeline,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		timelineView:  timelineview.New(0, 0),
		dayList:       daylist.New(sess.Days(), 0, 0),
		notifications: notifications,
	}
	m.refreshDay()
	return m
}

func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateTimeline:
		if m.sess.State() == session.StateAwake {
			keys = append(keys, m.keys.Add, m.keys.Toggle, m.keys.Sleep)
		} else {
			keys = append(keys, m.keys.Wake)
		}
	case StateHistory:
		keys = append(keys, m.keys.Enter)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter, m.keys.Now}

	var actions []key.Binding
	if m.state == StateTimeline {
		if m.sess.State() == session.StateAwake {
			actions = []key.Binding{m.keys.Add, m.keys.Edit, m.keys.Delete, m.keys.Toggle, m.keys.Filter, m.keys.Sleep}
		} else {
			actions = []key.Binding{m.keys.Wake}
		}
	}

	return [][]key.Binding{global, navigation, actions}
}

// refreshDay pushes the session's current day into the components, applying
// the tag filter and rearming reminders.
func (m *Model) refreshDay() {
	m.sess.UpdateHighlighting()

	day, ok := m.sess.CurrentDay()
	if !ok {
		m.timelineView.SetDay(nil, "", "")
		m.dayList.SetDays(m.sess.Days())
		m.notifier.Stop()
		return
	}

	if m.filterTag != "" {
		for i := range day.Habits {
			day.Habits[i].Hidden = !day.Habits[i].HasTag([]string{m.filterTag})
		}
	}

	m.timelineView.SetDay(day.Habits, day.WakeTime, timeutil.Clock(time.Now()))
	m.dayList.SetDays(m.sess.Days())

	if m.notifications {
		m.notifier.Arm(day.Habits)
	}
}

// cycleFilter advances the tag filter through all known tags and back to
// "show everything".
func (m *Model) cycleFilter() {
	tags := m.sess.Tags()
	if len(tags) == 0 {
		m.filterTag = ""
		return
	}
	if m.filterTag == "" {
		m.filterTag = tags[0]
		return
	}
	for i, tag := range tags {
		if tag == m.filterTag {
			if i+1 < len(tags) {
				m.filterTag = tags[i+1]
			} else {
				m.filterTag = ""
			}
			return
		}
	}
	m.filterTag = ""
}

func (m *Model) openAddForm() {
	m.formModel = emptyHabitForm()
	m.editingID = ""
	m.form = newHabitForm(m.formModel)
	m.previousState = m.state
	m.state = StateForm
}

func (m *Model) openEditForm(h models.Habit) {
	m.formModel = formFromHabit(h)
	m.editingID = h.ID
	m.form = newHabitForm(m.formModel)
	m.previousState = m.state
	m.state = StateForm
}

func (m *Model) submitForm() {
	h := m.formModel.toHabit()
	if m.editingID == "" {
		_, _ = m.sess.AddHabit(h)
	} else {
		h.ID = m.editingID
		_ = m.sess.UpdateHabit(h)
	}
	m.closeForm()
}

func (m *Model) closeForm() {
	m.form = nil
	m.formModel = nil
	m.editingID = ""
	m.state = m.previousState
	m.refreshDay()
}
