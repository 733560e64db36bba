package domain_test

import (
	"errors"
	"testing"

	"kqtrainer/internal/modules/plan/domain"
	apperrors "kqtrainer/internal/platform/errors"
)

func intp(v int) *int { return &v }

func samplePlan() *domain.WorkoutPlan {
	return &domain.WorkoutPlan{
		PlanID:   "p1",
		UserID:   "u1",
		IsActive: true,
		PlanData: &domain.PlanData{
			FitnessLevel: "intermediate",
			Days: []domain.Day{
				{
					Day: 1, DayName: "Monday", Focus: "Push",
					EstimatedDurationMinutes: 45,
					Exercises: []domain.Exercise{
						{Name: "Push-ups", Sets: intp(3), Reps: intp(12), Rest: intp(60)},
						{Name: "Plank", Duration: intp(45)},
						{Name: "Dips", Sets: intp(3), Reps: intp(8)},
					},
				},
				{Day: 2, DayName: "Tuesday", Focus: "Rest", Exercises: []domain.Exercise{}},
			},
		},
	}
}

func TestBeginEditRefusesMissingPlanData(t *testing.T) {
	t.Parallel()
	if _, err := domain.BeginEdit(nil); !errors.Is(err, apperrors.ErrNoPlanData) {
		t.Fatalf("nil plan: expected ErrNoPlanData, got %v", err)
	}
	if _, err := domain.BeginEdit(&domain.WorkoutPlan{UserID: "u1"}); !errors.Is(err, apperrors.ErrNoPlanData) {
		t.Fatalf("nil plan data: expected ErrNoPlanData, got %v", err)
	}
}

func TestEditsNeverTouchTheOriginalPlan(t *testing.T) {
	t.Parallel()
	plan := samplePlan()
	session, err := domain.BeginEdit(plan)
	if err != nil {
		t.Fatalf("begin edit: %v", err)
	}

	if err := session.SetDayFocus(0, "Upper"); err != nil {
		t.Fatalf("set focus: %v", err)
	}
	if err := session.SetExerciseField(0, 0, domain.FieldSets, 5); err != nil {
		t.Fatalf("set sets: %v", err)
	}
	if err := session.RemoveExercise(0, 1); err != nil {
		t.Fatalf("remove exercise: %v", err)
	}

	if plan.PlanData.Days[0].Focus != "Push" {
		t.Fatalf("original focus mutated: %q", plan.PlanData.Days[0].Focus)
	}
	if got := *plan.PlanData.Days[0].Exercises[0].Sets; got != 3 {
		t.Fatalf("original sets mutated: %d", got)
	}
	if len(plan.PlanData.Days[0].Exercises) != 3 {
		t.Fatalf("original exercise list mutated: %d entries", len(plan.PlanData.Days[0].Exercises))
	}

	draft := session.Snapshot()
	if draft.Days[0].Focus != "Upper" || *draft.Days[0].Exercises[0].Sets != 5 {
		t.Fatalf("draft lost edits: %+v", draft.Days[0])
	}
}

func TestRemoveExerciseSplices(t *testing.T) {
	t.Parallel()
	session, err := domain.BeginEdit(samplePlan())
	if err != nil {
		t.Fatalf("begin edit: %v", err)
	}
	if err := session.RemoveExercise(0, 1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	day := session.Snapshot().Days[0]
	if len(day.Exercises) != 2 {
		t.Fatalf("expected 2 exercises, got %d", len(day.Exercises))
	}
	if day.Exercises[0].Name != "Push-ups" || day.Exercises[1].Name != "Dips" {
		t.Fatalf("later exercises must shift down: %+v", day.Exercises)
	}
	if err := session.RemoveExercise(0, 5); err == nil {
		t.Fatalf("out-of-range removal must fail")
	}
}

func TestFieldPresenceSurvivesEdits(t *testing.T) {
	t.Parallel()
	session, err := domain.BeginEdit(samplePlan())
	if err != nil {
		t.Fatalf("begin edit: %v", err)
	}

	// Plank has only a duration; setting reps must not invent the others.
	if err := session.SetExerciseField(0, 1, domain.FieldReps, 10); err != nil {
		t.Fatalf("set reps: %v", err)
	}
	ex := session.Snapshot().Days[0].Exercises[1]
	if ex.Reps == nil || *ex.Reps != 10 {
		t.Fatalf("reps should now be present: %+v", ex)
	}
	if ex.Sets != nil || ex.Rest != nil {
		t.Fatalf("untouched fields must stay absent: %+v", ex)
	}
	if ex.Duration == nil || *ex.Duration != 45 {
		t.Fatalf("duration must stay present: %+v", ex)
	}

	if err := session.ClearExerciseField(0, 1, domain.FieldDuration); err != nil {
		t.Fatalf("clear duration: %v", err)
	}
	if session.Snapshot().Days[0].Exercises[1].Duration != nil {
		t.Fatalf("cleared field must be absent")
	}
}

func TestToggleRestStashesAndRestoresExercises(t *testing.T) {
	t.Parallel()
	session, err := domain.BeginEdit(samplePlan())
	if err != nil {
		t.Fatalf("begin edit: %v", err)
	}

	if err := session.ToggleRest(0); err != nil {
		t.Fatalf("toggle to rest: %v", err)
	}
	day := session.Snapshot().Days[0]
	if !day.IsRest() || day.Focus != domain.RestDayFocus || day.EstimatedDurationMinutes != 0 {
		t.Fatalf("day not converted to rest: %+v", day)
	}
	if day.Notes != domain.RestDayNotes {
		t.Fatalf("rest notes not applied: %q", day.Notes)
	}

	if err := session.ToggleRest(0); err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	day = session.Snapshot().Days[0]
	if day.Focus != domain.WorkoutDayFocus || day.Notes != domain.WorkoutDayNotes {
		t.Fatalf("day not converted back: %+v", day)
	}
	if len(day.Exercises) != 3 || day.Exercises[0].Name != "Push-ups" {
		t.Fatalf("stashed exercises not restored: %+v", day.Exercises)
	}
}

func TestToggleRestOnRestDayWithoutStash(t *testing.T) {
	t.Parallel()
	session, err := domain.BeginEdit(samplePlan())
	if err != nil {
		t.Fatalf("begin edit: %v", err)
	}
	// Day 1 started as a rest day; there is nothing to restore.
	if err := session.ToggleRest(1); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	day := session.Snapshot().Days[1]
	if day.Focus != domain.WorkoutDayFocus || len(day.Exercises) != 0 {
		t.Fatalf("expected empty workout day: %+v", day)
	}
}

func TestDirtyTracksEdits(t *testing.T) {
	t.Parallel()
	session, err := domain.BeginEdit(samplePlan())
	if err != nil {
		t.Fatalf("begin edit: %v", err)
	}
	if session.Dirty() {
		t.Fatalf("fresh session must not be dirty")
	}
	if err := session.SetDayNotes(0, "go easy"); err != nil {
		t.Fatalf("set notes: %v", err)
	}
	if !session.Dirty() {
		t.Fatalf("session must be dirty after an edit")
	}
}
