package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"kqtrainer/internal/modules/account/domain"
	accountout "kqtrainer/internal/modules/account/port/out"
	apperrors "kqtrainer/internal/platform/errors"
)

// AccountService drives the admin user edit form. One form at a time;
// beginning an edit for another user replaces the open one.
type AccountService struct {
	gateway accountout.Gateway

	mu   sync.Mutex
	form *domain.Form
}

func NewAccountService(gateway accountout.Gateway) *AccountService {
	return &AccountService{gateway: gateway}
}

func (s *AccountService) GetUser(ctx context.Context, userID string) (domain.User, error) {
	if strings.TrimSpace(userID) == "" {
		return domain.User{}, fmt.Errorf("user id is required")
	}
	return s.gateway.GetUser(ctx, userID)
}

func (s *AccountService) BeginEdit(ctx context.Context, userID string) (*domain.Form, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	form := domain.NewForm(user)
	s.mu.Lock()
	s.form = form
	s.mu.Unlock()
	return form, nil
}

func (s *AccountService) Form() (*domain.Form, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.form == nil {
		return nil, apperrors.ErrNotFound
	}
	return s.form, nil
}

// Submit validates first and never calls the gateway with a known-bad
// form. Success closes the form; failure keeps it open for correction.
func (s *AccountService) Submit(ctx context.Context) (*domain.Form, domain.User, error) {
	form, err := s.Form()
	if err != nil {
		return nil, domain.User{}, err
	}
	if err := form.Validate(); err != nil {
		return form, domain.User{}, err
	}
	user, err := s.gateway.UpdateUser(ctx, form.UserID(), form.Changes())
	if err != nil {
		return form, domain.User{}, err
	}
	s.mu.Lock()
	s.form = nil
	s.mu.Unlock()
	return nil, user, nil
}

func (s *AccountService) Discard() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.form == nil {
		return apperrors.ErrNotFound
	}
	s.form = nil
	return nil
}
