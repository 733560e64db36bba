package out

import (
	"context"

	"kqtrainer/internal/modules/auth/domain"
	authout "kqtrainer/internal/modules/auth/port/out"
	"kqtrainer/internal/platform/httpapi"
)

type HTTPGateway struct {
	api *httpapi.Client
}

func NewHTTPGateway(api *httpapi.Client) authout.Gateway {
	return &HTTPGateway{api: api}
}

type loginPayload struct {
	AccessToken string `json:"access_token"`
	Role        string `json:"role"`
	User        struct {
		UserID    string `json:"user_id"`
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	} `json:"user"`
}

func (g *HTTPGateway) Login(ctx context.Context, email, password string) (domain.Session, error) {
	var payload loginPayload
	body := map[string]string{"email": email, "password": password}
	if err := g.api.Post(ctx, "auth/login", body, &payload); err != nil {
		return domain.Session{}, err
	}
	return domain.Session{
		AccessToken: payload.AccessToken,
		UserID:      payload.User.UserID,
		Role:        payload.Role,
		FirstName:   payload.User.FirstName,
		LastName:    payload.User.LastName,
		Email:       payload.User.Email,
	}, nil
}
