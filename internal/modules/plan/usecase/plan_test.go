package usecase_test

import (
	"context"
	"errors"
	"testing"

	"kqtrainer/internal/modules/plan/domain"
	planin "kqtrainer/internal/modules/plan/port/in"
	"kqtrainer/internal/modules/plan/service"
	"kqtrainer/internal/modules/plan/usecase"
	apperrors "kqtrainer/internal/platform/errors"
)

func intp(v int) *int { return &v }

type fakeGateway struct {
	plan      domain.WorkoutPlan
	fetchErr  error
	updateErr error

	updates   int
	lastData  domain.PlanData
	lastUser  string
	fetchCall int
}

func (f *fakeGateway) FetchPlan(_ context.Context, userID string) (domain.WorkoutPlan, error) {
	f.fetchCall++
	if f.fetchErr != nil {
		return domain.WorkoutPlan{}, f.fetchErr
	}
	plan := f.plan
	plan.UserID = userID
	return plan, nil
}

func (f *fakeGateway) UpdatePlan(_ context.Context, userID string, data domain.PlanData) (domain.WorkoutPlan, error) {
	f.updates++
	f.lastUser = userID
	f.lastData = data
	if f.updateErr != nil {
		return domain.WorkoutPlan{}, f.updateErr
	}
	updated := f.plan
	updated.UserID = userID
	updated.PlanData = &data
	return updated, nil
}

func activePlan() domain.WorkoutPlan {
	return domain.WorkoutPlan{
		PlanID:   "p1",
		IsActive: true,
		PlanData: &domain.PlanData{
			FitnessLevel: "beginner",
			Days: []domain.Day{
				{
					Day: 1, DayName: "Monday", Focus: "Push", EstimatedDurationMinutes: 40,
					Exercises: []domain.Exercise{
						{Name: "Push-ups", Sets: intp(3), Reps: intp(10), Rest: intp(60)},
						{Name: "Plank", Duration: intp(30)},
					},
				},
			},
		},
	}
}

func newPlan(gw *fakeGateway) planin.Usecase {
	return usecase.NewInteractor(service.NewPlanService(gw))
}

func TestBeginEditRequiresPlanData(t *testing.T) {
	t.Parallel()
	uc := newPlan(&fakeGateway{plan: domain.WorkoutPlan{PlanID: "p1"}})
	if _, err := uc.BeginEdit(context.Background(), "u1"); !errors.Is(err, apperrors.ErrNoPlanData) {
		t.Fatalf("expected ErrNoPlanData, got %v", err)
	}
	// No session was opened, so edits still refuse.
	if _, err := uc.SetDayFocus(0, "Pull"); !errors.Is(err, apperrors.ErrNoEditSession) {
		t.Fatalf("expected ErrNoEditSession, got %v", err)
	}
}

func TestEditWithoutSessionRefused(t *testing.T) {
	t.Parallel()
	uc := newPlan(&fakeGateway{plan: activePlan()})
	if _, err := uc.ToggleRest(0); !errors.Is(err, apperrors.ErrNoEditSession) {
		t.Fatalf("expected ErrNoEditSession, got %v", err)
	}
	if _, err := uc.Save(context.Background()); !errors.Is(err, apperrors.ErrNoEditSession) {
		t.Fatalf("save without session: expected ErrNoEditSession, got %v", err)
	}
}

func TestSecondBeginEditRefusedWhileOpen(t *testing.T) {
	t.Parallel()
	uc := newPlan(&fakeGateway{plan: activePlan()})
	if _, err := uc.BeginEdit(context.Background(), "u1"); err != nil {
		t.Fatalf("begin edit: %v", err)
	}
	if _, err := uc.BeginEdit(context.Background(), "u2"); !errors.Is(err, apperrors.ErrEditSessionOpen) {
		t.Fatalf("expected ErrEditSessionOpen, got %v", err)
	}
	if _, err := uc.Fetch(context.Background(), "u1"); !errors.Is(err, apperrors.ErrEditSessionOpen) {
		t.Fatalf("fetch during edit: expected ErrEditSessionOpen, got %v", err)
	}
}

func TestSaveSubmitsWholeWorkingCopyAndCloses(t *testing.T) {
	t.Parallel()
	gw := &fakeGateway{plan: activePlan()}
	uc := newPlan(gw)
	if _, err := uc.BeginEdit(context.Background(), "u1"); err != nil {
		t.Fatalf("begin edit: %v", err)
	}
	if _, err := uc.SetDayFocus(0, "Upper"); err != nil {
		t.Fatalf("set focus: %v", err)
	}
	if _, err := uc.RemoveExercise(0, 1); err != nil {
		t.Fatalf("remove: %v", err)
	}

	out, err := uc.Save(context.Background())
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if gw.updates != 1 || gw.lastUser != "u1" {
		t.Fatalf("expected one update for u1, got %d for %q", gw.updates, gw.lastUser)
	}
	if gw.lastData.Days[0].Focus != "Upper" || len(gw.lastData.Days[0].Exercises) != 1 {
		t.Fatalf("submitted data missing edits: %+v", gw.lastData.Days[0])
	}
	if out.Editing {
		t.Fatalf("session must close after a successful save")
	}
	if _, err := uc.SetDayFocus(0, "Pull"); !errors.Is(err, apperrors.ErrNoEditSession) {
		t.Fatalf("edits after save must refuse, got %v", err)
	}
}

func TestSaveFailureKeepsSessionOpen(t *testing.T) {
	t.Parallel()
	gw := &fakeGateway{plan: activePlan(), updateErr: errors.New("No active workout plan found")}
	uc := newPlan(gw)
	if _, err := uc.BeginEdit(context.Background(), "u1"); err != nil {
		t.Fatalf("begin edit: %v", err)
	}
	if _, err := uc.SetDayNotes(0, "push hard"); err != nil {
		t.Fatalf("set notes: %v", err)
	}

	if _, err := uc.Save(context.Background()); err == nil || err.Error() != "No active workout plan found" {
		t.Fatalf("expected gateway error verbatim, got %v", err)
	}
	// Working copy survives the failure.
	out, err := uc.SetDayFocus(0, "Pull")
	if err != nil {
		t.Fatalf("session should still be open: %v", err)
	}
	if !out.Editing || out.Data.Days[0].Notes != "push hard" {
		t.Fatalf("working copy lost after failed save: %+v", out.Data.Days[0])
	}
}

func TestDiscardDropsEditsAndKeepsAuthoritativePlan(t *testing.T) {
	t.Parallel()
	gw := &fakeGateway{plan: activePlan()}
	uc := newPlan(gw)
	if _, err := uc.BeginEdit(context.Background(), "u1"); err != nil {
		t.Fatalf("begin edit: %v", err)
	}
	if _, err := uc.ToggleRest(0); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	out, err := uc.Discard()
	if err != nil {
		t.Fatalf("discard: %v", err)
	}
	if out.Editing {
		t.Fatalf("discard must close the session")
	}
	if out.Data.Days[0].Focus != "Push" || len(out.Data.Days[0].Exercises) != 2 {
		t.Fatalf("authoritative plan must be untouched: %+v", out.Data.Days[0])
	}
	if gw.updates != 0 {
		t.Fatalf("discard must not call the gateway, got %d updates", gw.updates)
	}
}

func TestEditViewRendersWorkingCopy(t *testing.T) {
	t.Parallel()
	uc := newPlan(&fakeGateway{plan: activePlan()})
	if _, err := uc.BeginEdit(context.Background(), "u1"); err != nil {
		t.Fatalf("begin edit: %v", err)
	}
	out, err := uc.SetExerciseField(0, 1, domain.FieldReps, 15)
	if err != nil {
		t.Fatalf("set reps: %v", err)
	}
	ex := out.Data.Days[0].Exercises[1]
	if ex.Reps == nil || *ex.Reps != 15 {
		t.Fatalf("edited field missing from view: %+v", ex)
	}
	if ex.Sets != nil {
		t.Fatalf("absent fields must stay absent in the view: %+v", ex)
	}
	if !out.Dirty {
		t.Fatalf("view must report the session dirty")
	}
}
