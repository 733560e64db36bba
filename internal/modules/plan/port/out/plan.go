package out

import (
	"context"

	"kqtrainer/internal/modules/plan/domain"
)

type Gateway interface {
	FetchPlan(ctx context.Context, userID string) (domain.WorkoutPlan, error)
	UpdatePlan(ctx context.Context, userID string, data domain.PlanData) (domain.WorkoutPlan, error)
}
