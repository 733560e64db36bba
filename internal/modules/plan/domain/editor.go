package domain

import (
	"fmt"

	apperrors "kqtrainer/internal/platform/errors"
)

// Focus and notes applied when a day is toggled between workout and rest.
const (
	RestDayFocus    = "Rest"
	RestDayNotes    = "Rest day - focus on recovery, hydration, and sleep"
	WorkoutDayFocus = "Full"
	WorkoutDayNotes = "Converted to a workout day - add exercises"
)

// ExerciseField names the editable numeric fields of an Exercise.
type ExerciseField string

const (
	FieldSets     ExerciseField = "sets"
	FieldReps     ExerciseField = "reps"
	FieldDuration ExerciseField = "duration"
	FieldRest     ExerciseField = "rest"
)

// EditSession is a working copy of one client's plan data. All edits land
// on the copy; the authoritative plan is untouched until a save succeeds.
// Toggling a day to rest stashes its exercise list so toggling back within
// the same session restores it; the stash dies with the session.
type EditSession struct {
	userID string
	draft  PlanData
	stash  map[int][]Exercise
	dirty  bool
}

// BeginEdit opens a session over the plan's data. A plan without data
// cannot be edited.
func BeginEdit(plan *WorkoutPlan) (*EditSession, error) {
	if plan == nil || plan.PlanData == nil {
		return nil, apperrors.ErrNoPlanData
	}
	return &EditSession{
		userID: plan.UserID,
		draft:  plan.PlanData.Clone(),
		stash:  make(map[int][]Exercise),
	}, nil
}

func (s *EditSession) UserID() string { return s.userID }

// Dirty reports whether any edit has been applied since the session opened.
func (s *EditSession) Dirty() bool { return s.dirty }

// Snapshot returns a copy of the working plan data, for rendering or for
// submitting as the save payload.
func (s *EditSession) Snapshot() PlanData {
	return s.draft.Clone()
}

func (s *EditSession) SetDayFocus(dayIdx int, focus string) error {
	day, err := s.day(dayIdx)
	if err != nil {
		return err
	}
	day.Focus = focus
	s.dirty = true
	return nil
}

func (s *EditSession) SetDayNotes(dayIdx int, notes string) error {
	day, err := s.day(dayIdx)
	if err != nil {
		return err
	}
	day.Notes = notes
	s.dirty = true
	return nil
}

func (s *EditSession) SetExerciseName(dayIdx, exIdx int, name string) error {
	ex, err := s.exercise(dayIdx, exIdx)
	if err != nil {
		return err
	}
	ex.Name = name
	s.dirty = true
	return nil
}

// SetExerciseField sets one numeric field, making it present if it was
// absent. Other fields of the exercise are left alone.
func (s *EditSession) SetExerciseField(dayIdx, exIdx int, field ExerciseField, value int) error {
	ex, err := s.exercise(dayIdx, exIdx)
	if err != nil {
		return err
	}
	target, err := ex.fieldPtr(field)
	if err != nil {
		return err
	}
	*target = &value
	s.dirty = true
	return nil
}

// ClearExerciseField makes a numeric field absent again.
func (s *EditSession) ClearExerciseField(dayIdx, exIdx int, field ExerciseField) error {
	ex, err := s.exercise(dayIdx, exIdx)
	if err != nil {
		return err
	}
	target, err := ex.fieldPtr(field)
	if err != nil {
		return err
	}
	*target = nil
	s.dirty = true
	return nil
}

// ToggleRest flips a day between workout and rest. Converting to rest
// clears the exercises after stashing them; converting back restores the
// stashed list if this session created one.
func (s *EditSession) ToggleRest(dayIdx int) error {
	day, err := s.day(dayIdx)
	if err != nil {
		return err
	}
	if day.IsRest() {
		day.Focus = WorkoutDayFocus
		day.Notes = WorkoutDayNotes
		if stashed, ok := s.stash[dayIdx]; ok {
			day.Exercises = stashed
			delete(s.stash, dayIdx)
		}
	} else {
		s.stash[dayIdx] = day.Exercises
		day.Exercises = []Exercise{}
		day.Focus = RestDayFocus
		day.Notes = RestDayNotes
		day.EstimatedDurationMinutes = 0
	}
	s.dirty = true
	return nil
}

// RemoveExercise splices one exercise out; later ones shift down by one.
func (s *EditSession) RemoveExercise(dayIdx, exIdx int) error {
	day, err := s.day(dayIdx)
	if err != nil {
		return err
	}
	if exIdx < 0 || exIdx >= len(day.Exercises) {
		return fmt.Errorf("exercise index %d out of range", exIdx)
	}
	day.Exercises = append(day.Exercises[:exIdx], day.Exercises[exIdx+1:]...)
	s.dirty = true
	return nil
}

func (s *EditSession) day(dayIdx int) (*Day, error) {
	if dayIdx < 0 || dayIdx >= len(s.draft.Days) {
		return nil, fmt.Errorf("day index %d out of range", dayIdx)
	}
	return &s.draft.Days[dayIdx], nil
}

func (s *EditSession) exercise(dayIdx, exIdx int) (*Exercise, error) {
	day, err := s.day(dayIdx)
	if err != nil {
		return nil, err
	}
	if exIdx < 0 || exIdx >= len(day.Exercises) {
		return nil, fmt.Errorf("exercise index %d out of range", exIdx)
	}
	return &day.Exercises[exIdx], nil
}

func (e *Exercise) fieldPtr(field ExerciseField) (**int, error) {
	switch field {
	case FieldSets:
		return &e.Sets, nil
	case FieldReps:
		return &e.Reps, nil
	case FieldDuration:
		return &e.Duration, nil
	case FieldRest:
		return &e.Rest, nil
	default:
		return nil, fmt.Errorf("unknown exercise field %q", field)
	}
}
