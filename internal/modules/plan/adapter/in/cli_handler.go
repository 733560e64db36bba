package in

import (
	"context"

	"kqtrainer/internal/modules/plan/domain"
	"kqtrainer/internal/modules/plan/dto"
	planin "kqtrainer/internal/modules/plan/port/in"
)

type CLIHandler struct {
	usecase planin.Usecase
}

func NewCLIHandler(usecase planin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Show(ctx context.Context, userID string) (dto.PlanOutput, error) {
	return h.usecase.Fetch(ctx, userID)
}

func (h CLIHandler) BeginEdit(ctx context.Context, userID string) (dto.PlanOutput, error) {
	return h.usecase.BeginEdit(ctx, userID)
}

func (h CLIHandler) SetDayFocus(dayIdx int, focus string) (dto.PlanOutput, error) {
	return h.usecase.SetDayFocus(dayIdx, focus)
}

func (h CLIHandler) SetDayNotes(dayIdx int, notes string) (dto.PlanOutput, error) {
	return h.usecase.SetDayNotes(dayIdx, notes)
}

func (h CLIHandler) SetExerciseName(dayIdx, exIdx int, name string) (dto.PlanOutput, error) {
	return h.usecase.SetExerciseName(dayIdx, exIdx, name)
}

func (h CLIHandler) SetExerciseField(dayIdx, exIdx int, field string, value int) (dto.PlanOutput, error) {
	return h.usecase.SetExerciseField(dayIdx, exIdx, domain.ExerciseField(field), value)
}

func (h CLIHandler) ClearExerciseField(dayIdx, exIdx int, field string) (dto.PlanOutput, error) {
	return h.usecase.ClearExerciseField(dayIdx, exIdx, domain.ExerciseField(field))
}

func (h CLIHandler) ToggleRest(dayIdx int) (dto.PlanOutput, error) {
	return h.usecase.ToggleRest(dayIdx)
}

func (h CLIHandler) RemoveExercise(dayIdx, exIdx int) (dto.PlanOutput, error) {
	return h.usecase.RemoveExercise(dayIdx, exIdx)
}

func (h CLIHandler) Save(ctx context.Context) (dto.PlanOutput, error) {
	return h.usecase.Save(ctx)
}

func (h CLIHandler) Discard() (dto.PlanOutput, error) {
	return h.usecase.Discard()
}
