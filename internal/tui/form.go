package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/akarsten/wakeline/internal/constants"
	"github.com/akarsten/wakeline/internal/models"
	"github.com/akarsten/wakeline/internal/timeutil"
)

// HabitFormModel backs the add/edit form. Everything is kept as strings
// until submission so huh can bind directly.
type HabitFormModel struct {
	Title       string
	Description string
	Kind        models.ScheduleKind
	Time        string
	Offset      string
	Duration    string
	Tags        string
}

func newHabitForm(fm *HabitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&fm.Title).
				CharLimit(constants.MaxTitleLength).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title is required")
					}
					return nil
				}),
			huh.NewText().
				Title("Description").
				Value(&fm.Description).
				Lines(2),
			huh.NewSelect[models.ScheduleKind]().
				Title("Schedule").
				Options(
					huh.NewOption("Offset after wake-up", models.ScheduleDynamic),
					huh.NewOption("Fixed clock time", models.ScheduleFixed),
				).
				Value(&fm.Kind),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Clock time (HH:MM)").
				Value(&fm.Time).
				Validate(func(s string) error {
					if _, _, ok := timeutil.ParseClock(s); !ok {
						return fmt.Errorf("expected HH:MM")
					}
					return nil
				}),
		).WithHideFunc(func() bool { return fm.Kind != models.ScheduleFixed }),
		huh.NewGroup(
			huh.NewInput().
				Title("Minutes after wake-up").
				Value(&fm.Offset),
		).WithHideFunc(func() bool { return fm.Kind != models.ScheduleDynamic }),
		huh.NewGroup(
			huh.NewInput().
				Title("Duration (minutes)").
				Value(&fm.Duration),
			huh.NewInput().
				Title("Tags (comma separated)").
				Value(&fm.Tags),
		),
	)
}

func formFromHabit(h models.Habit) *HabitFormModel {
	return &HabitFormModel{
		Title:       h.Title,
		Description: h.Description,
		Kind:        h.Schedule.Kind,
		Time:        h.Schedule.Time,
		Offset:      strconv.Itoa(h.Schedule.OffsetMin),
		Duration:    strconv.Itoa(h.DurationMin),
		Tags:        strings.Join(h.Tags, ", "),
	}
}

func emptyHabitForm() *HabitFormModel {
	return &HabitFormModel{
		Kind:     models.ScheduleDynamic,
		Time:     "09:00",
		Offset:   strconv.Itoa(constants.DefaultOffsetMin),
		Duration: strconv.Itoa(constants.DefaultDurationMin),
	}
}

// toHabit converts a submitted form to a habit. Numeric fields degrade to
// defaults on bad input instead of failing.
func (fm *HabitFormModel) toHabit() models.Habit {
	offset, err := strconv.Atoi(strings.TrimSpace(fm.Offset))
	if err != nil {
		offset = constants.DefaultOffsetMin
	}
	duration, err := strconv.Atoi(strings.TrimSpace(fm.Duration))
	if err != nil || duration <= 0 {
		duration = constants.DefaultDurationMin
	}

	h := models.Habit{
		Title:       strings.TrimSpace(fm.Title),
		Description: strings.TrimSpace(fm.Description),
		DurationMin: duration,
		Tags:        parseTags(fm.Tags),
	}
	switch fm.Kind {
	case models.ScheduleFixed:
		h.Schedule = models.Schedule{Kind: models.ScheduleFixed, Time: strings.TrimSpace(fm.Time)}
	default:
		h.Schedule = models.Schedule{Kind: models.ScheduleDynamic, OffsetMin: models.ClampOffset(offset)}
	}
	return h
}

func parseTags(s string) []string {
	var tags []string
	for _, part := range strings.Split(s, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
