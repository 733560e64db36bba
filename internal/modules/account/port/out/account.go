package out

import (
	"context"

	"kqtrainer/internal/modules/account/domain"
)

type Gateway interface {
	GetUser(ctx context.Context, userID string) (domain.User, error)
	UpdateUser(ctx context.Context, userID string, update domain.UserUpdate) (domain.User, error)
}
