package service

import (
	"context"
	"errors"
	"os"

	"kqtrainer/internal/modules/auth/domain"
	authout "kqtrainer/internal/modules/auth/port/out"
	"kqtrainer/internal/platform/clock"
	apperrors "kqtrainer/internal/platform/errors"
)

type AuthService struct {
	clock   clock.Clock
	gateway authout.Gateway
	tokens  authout.TokenStore
}

func NewAuthService(clock clock.Clock, gateway authout.Gateway, tokens authout.TokenStore) *AuthService {
	return &AuthService{clock: clock, gateway: gateway, tokens: tokens}
}

func (s *AuthService) Login(ctx context.Context, creds domain.Credentials) (domain.Session, error) {
	if err := creds.Validate(); err != nil {
		return domain.Session{}, err
	}
	session, err := s.gateway.Login(ctx, creds.Email, creds.Password)
	if err != nil {
		return domain.Session{}, err
	}
	stored := domain.StoredToken{
		AccessToken: session.AccessToken,
		UserID:      session.UserID,
		Role:        session.Role,
		Email:       session.Email,
		SavedAt:     s.clock.Now(),
	}
	if err := s.tokens.Save(ctx, stored); err != nil {
		return domain.Session{}, err
	}
	return session, nil
}

func (s *AuthService) Logout(ctx context.Context) error {
	return s.tokens.Clear(ctx)
}

// Current returns the stored token, distinguishing "never logged in" from
// "logged in but expired" so callers can phrase the prompt accordingly.
func (s *AuthService) Current(ctx context.Context) (domain.StoredToken, error) {
	stored, err := s.tokens.Load(ctx)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.StoredToken{}, apperrors.ErrNotLoggedIn
		}
		return domain.StoredToken{}, err
	}
	if stored.AccessToken == "" {
		return domain.StoredToken{}, apperrors.ErrNotLoggedIn
	}
	if domain.Expired(stored.AccessToken, s.clock.Now()) {
		return stored, apperrors.ErrTokenExpired
	}
	return stored, nil
}
