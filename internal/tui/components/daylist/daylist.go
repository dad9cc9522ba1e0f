// Package daylist shows the history of wake days as a filterable list.
package daylist

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/akarsten/wakeline/internal/daykey"
	"github.com/akarsten/wakeline/internal/models"
	"github.com/akarsten/wakeline/internal/timeutil"
)

// OpenDayMsg asks the root model to show the summary for a past day.
type OpenDayMsg struct {
	Key string
	Day models.WakeDay
}

type Item struct {
	Key string
	Day models.WakeDay
}

func (i Item) Title() string {
	title := fmt.Sprintf("%s · woke %s", i.Day.Date, timeutil.Format12Hour(i.Day.WakeTime, true))
	if !i.Day.IsCompleted {
		title += " (in progress)"
	}
	return title
}

func (i Item) Description() string {
	desc := fmt.Sprintf("%d/%d habits · %d%%", i.Day.Stats.Completed, i.Day.Stats.Total, i.Day.Stats.Rate)
	if i.Day.AutoCompleted {
		desc += " · auto-completed"
	}
	return desc
}

func (i Item) FilterValue() string { return i.Day.Date }

type KeyMap struct {
	Open key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open day"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(days map[string]models.WakeDay, width, height int) Model {
	l := list.New(buildItems(days), list.NewDefaultDelegate(), width, height)
	l.Title = "History"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Open}
	}

	return Model{list: l, keys: keys}
}

func (m *Model) SetDays(days map[string]models.WakeDay) {
	m.list.SetItems(buildItems(days))
}

// buildItems sorts newest first; unparseable keys sink to the bottom.
func buildItems(days map[string]models.WakeDay) []list.Item {
	entries := make([]Item, 0, len(days))
	for key, day := range days {
		entries = append(entries, Item{Key: key, Day: day})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, aok := daykey.Parse(entries[i].Key)
		b, bok := daykey.Parse(entries[j].Key)
		if aok != bok {
			return aok
		}
		if !aok {
			return entries[i].Key < entries[j].Key
		}
		return a.Timestamp().After(b.Timestamp())
	})

	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = e
	}
	return items
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		if key.Matches(msg, m.keys.Open) {
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return OpenDayMsg{Key: i.Key, Day: i.Day} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No days recorded yet.\n  Press 'w' to start one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
