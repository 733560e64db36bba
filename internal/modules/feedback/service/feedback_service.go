package service

import (
	"context"
	"sync"

	"kqtrainer/internal/modules/feedback/domain"
	feedbackout "kqtrainer/internal/modules/feedback/port/out"
	apperrors "kqtrainer/internal/platform/errors"
)

// FeedbackService holds the draft for the client currently in focus.
// Beginning a draft for another client replaces the old one.
type FeedbackService struct {
	gateway feedbackout.Gateway

	mu       sync.Mutex
	composer *domain.Composer
}

func NewFeedbackService(gateway feedbackout.Gateway) *FeedbackService {
	return &FeedbackService{gateway: gateway}
}

func (s *FeedbackService) Begin(clientID string, sessions []domain.SessionRef) *domain.Composer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.composer = domain.NewComposer(clientID, sessions)
	return s.composer
}

func (s *FeedbackService) Composer() (*domain.Composer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.composer == nil {
		return nil, apperrors.ErrNotFound
	}
	return s.composer, nil
}

// Submit validates locally first; the gateway is never called with a draft
// the client side already knows is bad. Success resets the draft, failure
// leaves it intact for retry.
func (s *FeedbackService) Submit(ctx context.Context) (*domain.Composer, error) {
	composer, err := s.Composer()
	if err != nil {
		return nil, err
	}
	if err := composer.Validate(); err != nil {
		return composer, err
	}
	if err := s.gateway.AddFeedback(ctx, composer.ClientID(), composer.SelectedSession(), composer.Text()); err != nil {
		return composer, err
	}
	composer.Reset()
	return composer, nil
}
