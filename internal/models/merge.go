package models

// Field-by-field merge rules for habit edits and day templating. Each function
// enumerates every field and its override rule rather than relying on implicit
// struct copies, so completion state can never leak the wrong way.

// MergeHabit applies an edited habit over an existing one. All descriptive and
// scheduling fields come from the update; the parent completion flag is
// preserved from the existing record, and sub-habits keep their completion
// state when their ID survives the edit. New sub-habits start uncompleted.
func MergeHabit(existing, updated Habit) Habit {
	merged := Habit{
		ID:            existing.ID,
		Title:         updated.Title,
		Description:   updated.Description,
		DurationMin:   updated.DurationMin,
		Tags:          append([]string(nil), updated.Tags...),
		Schedule:      updated.Schedule,
		EffectiveTime: updated.EffectiveTime,
		Completed:     existing.Completed,
	}

	merged.SubHabits = make([]SubHabit, 0, len(updated.SubHabits))
	for _, sub := range updated.SubHabits {
		for _, prev := range existing.SubHabits {
			if prev.ID == sub.ID {
				sub.Completed = prev.Completed
				break
			}
		}
		merged.SubHabits = append(merged.SubHabits, sub)
	}

	return merged
}

// CloneHabit deep-copies a habit so each wake day owns its snapshot.
func CloneHabit(h Habit) Habit {
	clone := h
	clone.Tags = append([]string(nil), h.Tags...)
	clone.SubHabits = append([]SubHabit(nil), h.SubHabits...)
	return clone
}

// TemplateHabit deep-copies a habit for seeding a new wake day: every
// completion flag, including sub-habit flags, is reset.
func TemplateHabit(h Habit) Habit {
	clone := CloneHabit(h)
	clone.Completed = false
	for i := range clone.SubHabits {
		clone.SubHabits[i].Completed = false
	}
	clone.Position = 0
	clone.Hidden = false
	clone.Overdue = false
	clone.Current = false
	clone.Warning = false
	return clone
}

// CloneDay deep-copies a wake day including its habit snapshot.
func CloneDay(d WakeDay) WakeDay {
	clone := d
	clone.Habits = make([]Habit, len(d.Habits))
	for i, h := range d.Habits {
		clone.Habits[i] = CloneHabit(h)
	}
	if d.CompletedAt != nil {
		at := *d.CompletedAt
		clone.CompletedAt = &at
	}
	return clone
}
