package usecase

import (
	"context"
	"errors"

	"kqtrainer/internal/modules/auth/domain"
	"kqtrainer/internal/modules/auth/dto"
	authin "kqtrainer/internal/modules/auth/port/in"
	"kqtrainer/internal/modules/auth/service"
	apperrors "kqtrainer/internal/platform/errors"
)

type Interactor struct {
	svc *service.AuthService
}

func NewInteractor(svc *service.AuthService) authin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Login(ctx context.Context, input dto.LoginInput) (dto.LoginOutput, error) {
	session, err := i.svc.Login(ctx, domain.Credentials{Email: input.Email, Password: input.Password})
	if err != nil {
		return dto.LoginOutput{}, err
	}
	expiry, _ := domain.TokenExpiry(session.AccessToken)
	return dto.LoginOutput{
		UserID:    session.UserID,
		Role:      session.Role,
		FirstName: session.FirstName,
		LastName:  session.LastName,
		Email:     session.Email,
		ExpiresAt: expiry,
	}, nil
}

func (i *Interactor) Logout(ctx context.Context) error {
	return i.svc.Logout(ctx)
}

func (i *Interactor) Status(ctx context.Context) (dto.StatusOutput, error) {
	stored, err := i.svc.Current(ctx)
	switch {
	case errors.Is(err, apperrors.ErrNotLoggedIn):
		return dto.StatusOutput{}, nil
	case errors.Is(err, apperrors.ErrTokenExpired):
		expiry, _ := domain.TokenExpiry(stored.AccessToken)
		return dto.StatusOutput{
			LoggedIn:  true,
			Expired:   true,
			UserID:    stored.UserID,
			Role:      stored.Role,
			Email:     stored.Email,
			ExpiresAt: expiry,
		}, nil
	case err != nil:
		return dto.StatusOutput{}, err
	}
	expiry, _ := domain.TokenExpiry(stored.AccessToken)
	return dto.StatusOutput{
		LoggedIn:  true,
		UserID:    stored.UserID,
		Role:      stored.Role,
		Email:     stored.Email,
		ExpiresAt: expiry,
	}, nil
}
