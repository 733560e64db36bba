package out

import (
	"context"

	"kqtrainer/internal/modules/auth/domain"
)

type Gateway interface {
	Login(ctx context.Context, email, password string) (domain.Session, error)
}

type TokenStore interface {
	Save(ctx context.Context, token domain.StoredToken) error
	Load(ctx context.Context) (domain.StoredToken, error)
	Clear(ctx context.Context) error
}
