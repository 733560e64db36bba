package usecase

import (
	"context"

	"kqtrainer/internal/modules/plan/domain"
	"kqtrainer/internal/modules/plan/dto"
	planin "kqtrainer/internal/modules/plan/port/in"
	"kqtrainer/internal/modules/plan/service"
)

type Interactor struct {
	svc *service.PlanService
}

func NewInteractor(svc *service.PlanService) planin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Fetch(ctx context.Context, userID string) (dto.PlanOutput, error) {
	plan, err := i.svc.Fetch(ctx, userID)
	if err != nil {
		return dto.PlanOutput{}, err
	}
	return planToOutput(plan, nil), nil
}

func (i *Interactor) BeginEdit(ctx context.Context, userID string) (dto.PlanOutput, error) {
	plan, session, err := i.svc.BeginEdit(ctx, userID)
	if err != nil {
		return dto.PlanOutput{}, err
	}
	return planToOutput(plan, session), nil
}

func (i *Interactor) SetDayFocus(dayIdx int, focus string) (dto.PlanOutput, error) {
	return i.edit(func(s *domain.EditSession) error { return s.SetDayFocus(dayIdx, focus) })
}

func (i *Interactor) SetDayNotes(dayIdx int, notes string) (dto.PlanOutput, error) {
	return i.edit(func(s *domain.EditSession) error { return s.SetDayNotes(dayIdx, notes) })
}

func (i *Interactor) SetExerciseName(dayIdx, exIdx int, name string) (dto.PlanOutput, error) {
	return i.edit(func(s *domain.EditSession) error { return s.SetExerciseName(dayIdx, exIdx, name) })
}

func (i *Interactor) SetExerciseField(dayIdx, exIdx int, field domain.ExerciseField, value int) (dto.PlanOutput, error) {
	return i.edit(func(s *domain.EditSession) error { return s.SetExerciseField(dayIdx, exIdx, field, value) })
}

func (i *Interactor) ClearExerciseField(dayIdx, exIdx int, field domain.ExerciseField) (dto.PlanOutput, error) {
	return i.edit(func(s *domain.EditSession) error { return s.ClearExerciseField(dayIdx, exIdx, field) })
}

func (i *Interactor) ToggleRest(dayIdx int) (dto.PlanOutput, error) {
	return i.edit(func(s *domain.EditSession) error { return s.ToggleRest(dayIdx) })
}

func (i *Interactor) RemoveExercise(dayIdx, exIdx int) (dto.PlanOutput, error) {
	return i.edit(func(s *domain.EditSession) error { return s.RemoveExercise(dayIdx, exIdx) })
}

func (i *Interactor) Save(ctx context.Context) (dto.PlanOutput, error) {
	updated, err := i.svc.Save(ctx)
	if err != nil {
		return dto.PlanOutput{}, err
	}
	return planToOutput(updated, nil), nil
}

func (i *Interactor) Discard() (dto.PlanOutput, error) {
	plan, err := i.svc.Discard()
	if err != nil {
		return dto.PlanOutput{}, err
	}
	return planToOutput(plan, nil), nil
}

func (i *Interactor) edit(apply func(*domain.EditSession) error) (dto.PlanOutput, error) {
	session, err := i.svc.Session()
	if err != nil {
		return dto.PlanOutput{}, err
	}
	if err := apply(session); err != nil {
		return dto.PlanOutput{}, err
	}
	plan := i.svc.Current()
	if plan == nil {
		plan = &domain.WorkoutPlan{UserID: session.UserID()}
	}
	return planToOutput(*plan, session), nil
}

// planToOutput renders the working copy when a session is open, the
// authoritative data otherwise.
func planToOutput(plan domain.WorkoutPlan, session *domain.EditSession) dto.PlanOutput {
	out := dto.PlanOutput{
		PlanID:    plan.PlanID,
		UserID:    plan.UserID,
		StartDate: plan.StartDate,
		EndDate:   plan.EndDate,
		IsActive:  plan.IsActive,
	}
	var data *domain.PlanData
	switch {
	case session != nil:
		snapshot := session.Snapshot()
		data = &snapshot
		out.Editing = true
		out.Dirty = session.Dirty()
	case plan.PlanData != nil:
		data = plan.PlanData
	}
	if data == nil {
		return out
	}
	out.HasData = true
	out.Data = dto.PlanDataOutput{
		FitnessLevel:    data.FitnessLevel,
		BasedOnWorkouts: data.BasedOnWorkouts,
		AvgFormScore:    data.AvgFormScore,
		Personalized:    data.Personalized,
		Days:            make([]dto.DayOutput, 0, len(data.Days)),
	}
	for _, d := range data.Days {
		day := dto.DayOutput{
			Day:                      d.Day,
			DayName:                  d.DayName,
			Date:                     d.Date,
			Focus:                    d.Focus,
			EstimatedDurationMinutes: d.EstimatedDurationMinutes,
			Notes:                    d.Notes,
			IsRest:                   d.IsRest(),
			Exercises:                make([]dto.ExerciseOutput, 0, len(d.Exercises)),
		}
		for _, e := range d.Exercises {
			day.Exercises = append(day.Exercises, dto.ExerciseOutput{
				Name:     e.Name,
				Sets:     e.Sets,
				Reps:     e.Reps,
				Duration: e.Duration,
				Rest:     e.Rest,
			})
		}
		out.Data.Days = append(out.Data.Days, day)
	}
	return out
}
