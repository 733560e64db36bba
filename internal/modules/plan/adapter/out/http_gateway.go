package out

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"kqtrainer/internal/modules/plan/domain"
	planout "kqtrainer/internal/modules/plan/port/out"
	"kqtrainer/internal/platform/httpapi"
)

// HTTPGateway reads and writes weekly plans through the coaching API. The
// domain types carry the wire tags, so plan data passes through unchanged.
type HTTPGateway struct {
	api    *httpapi.Client
	logger *zap.Logger
}

func NewHTTPGateway(api *httpapi.Client, logger *zap.Logger) planout.Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPGateway{api: api, logger: logger}
}

type planEnvelope struct {
	Plan domain.WorkoutPlan `json:"plan"`
}

func (g *HTTPGateway) FetchPlan(ctx context.Context, userID string) (domain.WorkoutPlan, error) {
	var payload planEnvelope
	path := fmt.Sprintf("trainer/clients/%s/workout-plan", userID)
	if err := g.api.Get(ctx, path, &payload); err != nil {
		return domain.WorkoutPlan{}, err
	}
	return payload.Plan, nil
}

// UpdatePlan submits the whole plan data as one PUT; partial updates are
// not part of the API contract.
func (g *HTTPGateway) UpdatePlan(ctx context.Context, userID string, data domain.PlanData) (domain.WorkoutPlan, error) {
	body := map[string]any{"plan_data": data}
	var payload planEnvelope
	path := fmt.Sprintf("trainer/clients/%s/workout-plan", userID)
	if err := g.api.Put(ctx, path, body, &payload); err != nil {
		return domain.WorkoutPlan{}, err
	}
	g.logger.Info("workout plan updated", zap.String("user_id", userID))
	return payload.Plan, nil
}
