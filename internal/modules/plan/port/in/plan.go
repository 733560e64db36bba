package in

import (
	"context"

	"kqtrainer/internal/modules/plan/domain"
	"kqtrainer/internal/modules/plan/dto"
)

// Usecase exposes plan reads and the edit-session lifecycle. Edit
// operations work on the session held by the service; they fail with
// ErrNoEditSession when none is open.
type Usecase interface {
	Fetch(ctx context.Context, userID string) (dto.PlanOutput, error)
	BeginEdit(ctx context.Context, userID string) (dto.PlanOutput, error)
	SetDayFocus(dayIdx int, focus string) (dto.PlanOutput, error)
	SetDayNotes(dayIdx int, notes string) (dto.PlanOutput, error)
	SetExerciseName(dayIdx, exIdx int, name string) (dto.PlanOutput, error)
	SetExerciseField(dayIdx, exIdx int, field domain.ExerciseField, value int) (dto.PlanOutput, error)
	ClearExerciseField(dayIdx, exIdx int, field domain.ExerciseField) (dto.PlanOutput, error)
	ToggleRest(dayIdx int) (dto.PlanOutput, error)
	RemoveExercise(dayIdx, exIdx int) (dto.PlanOutput, error)
	Save(ctx context.Context) (dto.PlanOutput, error)
	Discard() (dto.PlanOutput, error)
}
