package out

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"kqtrainer/internal/modules/account/domain"
	accountout "kqtrainer/internal/modules/account/port/out"
	"kqtrainer/internal/platform/httpapi"
)

type HTTPGateway struct {
	api    *httpapi.Client
	logger *zap.Logger
}

func NewHTTPGateway(api *httpapi.Client, logger *zap.Logger) accountout.Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPGateway{api: api, logger: logger}
}

type userWire struct {
	UserID    string `json:"user_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

func (g *HTTPGateway) GetUser(ctx context.Context, userID string) (domain.User, error) {
	var payload struct {
		User  userWire `json:"user"`
		Stats struct {
			TotalWorkouts int `json:"total_workouts"`
		} `json:"stats"`
	}
	path := fmt.Sprintf("admin/users/%s", userID)
	if err := g.api.Get(ctx, path, &payload); err != nil {
		return domain.User{}, err
	}
	user := wireToUser(payload.User)
	user.TotalWorkouts = payload.Stats.TotalWorkouts
	return user, nil
}

func (g *HTTPGateway) UpdateUser(ctx context.Context, userID string, update domain.UserUpdate) (domain.User, error) {
	body := map[string]any{
		"first_name": update.FirstName,
		"last_name":  update.LastName,
		"email":      update.Email,
		"is_active":  update.IsActive,
	}
	var wire userWire
	path := fmt.Sprintf("admin/users/%s", userID)
	if err := g.api.Put(ctx, path, body, &wire); err != nil {
		return domain.User{}, err
	}
	g.logger.Info("user updated", zap.String("user_id", userID))
	return wireToUser(wire), nil
}

func wireToUser(w userWire) domain.User {
	return domain.User{
		UserID:    w.UserID,
		FirstName: w.FirstName,
		LastName:  w.LastName,
		Email:     w.Email,
		Role:      w.Role,
		IsActive:  w.IsActive,
		CreatedAt: w.CreatedAt,
	}
}
