// Package timelineview renders the wake-relative timeline into a scrolling
// viewport. Layout positions are in abstract units; the view maps them onto
// terminal rows at a fixed scale.
package timelineview

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/akarsten/wakeline/internal/models"
	"github.com/akarsten/wakeline/internal/timeline"
	"github.com/akarsten/wakeline/internal/timeutil"
)

// UnitsPerRow converts layout units to terminal rows. At 120 units per habit
// this leaves three rows of breathing room between adjacent habits.
const UnitsPerRow = 40

var (
	axisStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	hourStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	wakeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	habitStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	completedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	overdueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	warningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	currentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	selectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	nowStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	tagStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
	dragStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
)

type Model struct {
	viewport viewport.Model

	tl       timeline.Timeline
	habits   []models.Habit
	wakeTime string
	nowClock string
	selected int // index into habits, -1 when empty

	dragLabel string
	dragRow   int

	width  int
	height int
}

func New(width, height int) Model {
	return Model{
		viewport: viewport.New(width, height),
		selected: -1,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.wakeTime == "" {
		return "No day in progress."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.render()
}

// SetDay replaces the displayed day. Habits arrive pre-sorted with effective
// times and status flags already resolved; filtered-out habits have Hidden
// set and are skipped by layout.
func (m *Model) SetDay(habits []models.Habit, wakeTime, nowClock string) {
	m.habits = habits
	m.wakeTime = wakeTime
	m.nowClock = nowClock
	m.tl = timeline.Generate(habits, wakeTime)
	bySegment := make(map[string]float64, len(m.tl.Segments))
	for _, seg := range m.tl.Segments {
		if seg.HabitID != "" {
			bySegment[seg.HabitID] = seg.Position
		}
	}
	for i := range m.habits {
		if pos, ok := bySegment[m.habits[i].ID]; ok {
			m.habits[i].Position = pos
		} else {
			m.habits[i].Position = timeline.TimeToPosition(m.habits[i].EffectiveTime, m.tl.Segments, wakeTime)
		}
	}
	if m.selected >= len(m.visibleHabits()) {
		m.selected = len(m.visibleHabits()) - 1
	}
	if m.selected < 0 && len(m.visibleHabits()) > 0 {
		m.selected = 0
	}
	m.render()
}

// SetNow updates only the current-time marker.
func (m *Model) SetNow(nowClock string) {
	m.nowClock = nowClock
	m.render()
}

// SetDrag shows a floating drop preview at the given row, or clears it when
// label is empty.
func (m *Model) SetDrag(label string, row int) {
	m.dragLabel = label
	m.dragRow = row
	m.render()
}

func (m *Model) MoveSelection(delta int) {
	visible := m.visibleHabits()
	if len(visible) == 0 {
		m.selected = -1
		return
	}
	m.selected += delta
	if m.selected < 0 {
		m.selected = 0
	}
	if m.selected >= len(visible) {
		m.selected = len(visible) - 1
	}
	m.render()
	m.scrollToSelection()
}

// Selected returns the currently selected habit. ok is false when the day
// has no visible habits.
func (m Model) Selected() (models.Habit, bool) {
	visible := m.visibleHabits()
	if m.selected < 0 || m.selected >= len(visible) {
		return models.Habit{}, false
	}
	return visible[m.selected], true
}

// Timeline exposes the current layout for drag interpolation.
func (m Model) Timeline() timeline.Timeline { return m.tl }

// RowToPosition maps a viewport-relative row to a layout position.
func (m Model) RowToPosition(row int) float64 {
	return float64(row+m.viewport.YOffset) * UnitsPerRow
}

// HabitAtRow returns the habit rendered on the given viewport-relative row.
func (m Model) HabitAtRow(row int) (models.Habit, bool) {
	target := row + m.viewport.YOffset
	for _, h := range m.visibleHabits() {
		if positionRow(h.Position) == target {
			return h, true
		}
	}
	return models.Habit{}, false
}

func (m Model) visibleHabits() []models.Habit {
	visible := make([]models.Habit, 0, len(m.habits))
	for _, h := range m.habits {
		if !h.Hidden {
			visible = append(visible, h)
		}
	}
	return visible
}

func positionRow(position float64) int {
	return int(math.Round(position / UnitsPerRow))
}

func (m *Model) scrollToSelection() {
	h, ok := m.Selected()
	if !ok {
		return
	}
	row := positionRow(h.Position)
	if row < m.viewport.YOffset {
		m.viewport.SetYOffset(row)
	} else if row >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(row - m.viewport.Height + 1)
	}
}

// ScrollToNow centers the viewport on the current-time marker.
func (m *Model) ScrollToNow() {
	pos := timeline.TimeToPosition(m.nowClock, m.tl.Segments, m.wakeTime)
	row := positionRow(pos)
	offset := row - m.viewport.Height/2
	if offset < 0 {
		offset = 0
	}
	m.viewport.SetYOffset(offset)
}

func (m *Model) render() {
	if m.wakeTime == "" {
		m.viewport.SetContent("")
		return
	}

	rowCount := positionRow(m.tl.Height) + 1
	rows := make([]string, rowCount)

	for _, slot := range m.tl.Slots {
		if slot.Kind == timeline.SlotHabit {
			continue
		}
		row := positionRow(slot.Position)
		if row < 0 || row >= rowCount {
			continue
		}
		rows[row] = m.renderMarker(slot)
	}

	for i, h := range m.visibleHabits() {
		row := positionRow(h.Position)
		if row < 0 || row >= rowCount {
			continue
		}
		rows[row] = m.renderHabit(h, i == m.selected)
	}

	if nowRow := m.nowMarkerRow(); nowRow >= 0 && nowRow < rowCount && rows[nowRow] == "" {
		rows[nowRow] = nowStyle.Render(fmt.Sprintf("%8s ──▶ now", timeutil.Format12Hour(m.nowClock, true)))
	}

	if m.dragLabel != "" && m.dragRow >= 0 && m.dragRow < rowCount {
		rows[m.dragRow] = dragStyle.Render(fmt.Sprintf("%8s ◀── drop here", m.dragLabel))
	}

	for i, row := range rows {
		if row == "" {
			rows[i] = axisStyle.Render("         │")
		}
	}
	m.viewport.SetContent(strings.Join(rows, "\n"))
}

func (m Model) nowMarkerRow() int {
	if m.nowClock == "" {
		return -1
	}
	return positionRow(timeline.TimeToPosition(m.nowClock, m.tl.Segments, m.wakeTime))
}

func (m Model) renderMarker(slot timeline.Slot) string {
	label := ""
	if slot.DisplayLabel {
		label = slot.Label
	}
	switch slot.Kind {
	case timeline.SlotWake:
		return wakeStyle.Render(fmt.Sprintf("%8s ●── wake up", label))
	case timeline.SlotHour:
		return hourStyle.Render(fmt.Sprintf("%8s ┤", label))
	default:
		return axisStyle.Render(fmt.Sprintf("%8s ┤", label))
	}
}

func (m Model) renderHabit(h models.Habit, selected bool) string {
	check := "[ ]"
	if h.Completed {
		check = "[x]"
	}

	style := habitStyle
	status := ""
	switch {
	case h.Completed:
		style = completedStyle
	case h.Overdue:
		style = overdueStyle
		status = " (overdue)"
	case h.Warning:
		style = warningStyle
		status = " (soon)"
	case h.Current:
		style = currentStyle
		status = " (up next)"
	}
	if selected {
		style = selectedStyle
	}

	line := fmt.Sprintf("%8s ○ %s %s%s",
		timeutil.Format12Hour(h.EffectiveTime, true), check, h.Title, status)
	if h.DurationMin > 0 {
		line += " · " + timeutil.FormatDuration(h.DurationMin)
	}
	rendered := style.Render(line)
	if len(h.Tags) > 0 {
		rendered += tagStyle.Render("  #" + strings.Join(h.Tags, " #"))
	}
	if done, total := subHabitProgress(h); total > 0 {
		rendered += tagStyle.Render(fmt.Sprintf("  [%d/%d]", done, total))
	}
	return rendered
}

func subHabitProgress(h models.Habit) (done, total int) {
	total = len(h.SubHabits)
	for _, sub := range h.SubHabits {
		if sub.Completed {
			done++
		}
	}
	return done, total
}
