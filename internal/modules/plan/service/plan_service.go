package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"kqtrainer/internal/modules/plan/domain"
	planout "kqtrainer/internal/modules/plan/port/out"
	apperrors "kqtrainer/internal/platform/errors"
)

// PlanService holds the authoritative plan last fetched and, while editing,
// the single open edit session. One session at a time: refreshing or
// opening another requires saving or discarding first.
type PlanService struct {
	gateway planout.Gateway

	mu      sync.Mutex
	current *domain.WorkoutPlan
	session *domain.EditSession
}

func NewPlanService(gateway planout.Gateway) *PlanService {
	return &PlanService{gateway: gateway}
}

// Fetch loads a client's plan and makes it the authoritative copy.
func (s *PlanService) Fetch(ctx context.Context, userID string) (domain.WorkoutPlan, error) {
	if strings.TrimSpace(userID) == "" {
		return domain.WorkoutPlan{}, fmt.Errorf("client id is required")
	}
	s.mu.Lock()
	if s.session != nil {
		s.mu.Unlock()
		return domain.WorkoutPlan{}, apperrors.ErrEditSessionOpen
	}
	s.mu.Unlock()

	plan, err := s.gateway.FetchPlan(ctx, userID)
	if err != nil {
		return domain.WorkoutPlan{}, err
	}
	s.mu.Lock()
	s.current = &plan
	s.mu.Unlock()
	return plan, nil
}

// BeginEdit fetches the latest plan and opens a session over it.
func (s *PlanService) BeginEdit(ctx context.Context, userID string) (domain.WorkoutPlan, *domain.EditSession, error) {
	plan, err := s.Fetch(ctx, userID)
	if err != nil {
		return domain.WorkoutPlan{}, nil, err
	}
	session, err := domain.BeginEdit(&plan)
	if err != nil {
		return domain.WorkoutPlan{}, nil, err
	}
	s.mu.Lock()
	s.session = session
	s.mu.Unlock()
	return plan, session, nil
}

// Session returns the open edit session, or ErrNoEditSession.
func (s *PlanService) Session() (*domain.EditSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil, apperrors.ErrNoEditSession
	}
	return s.session, nil
}

// Current returns the authoritative plan last fetched, if any.
func (s *PlanService) Current() *domain.WorkoutPlan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Save submits the whole working copy in one call. Success closes the
// session and adopts the server's updated plan as authoritative; failure
// keeps the session open with the working copy intact.
func (s *PlanService) Save(ctx context.Context) (domain.WorkoutPlan, error) {
	session, err := s.Session()
	if err != nil {
		return domain.WorkoutPlan{}, err
	}
	updated, err := s.gateway.UpdatePlan(ctx, session.UserID(), session.Snapshot())
	if err != nil {
		return domain.WorkoutPlan{}, err
	}
	s.mu.Lock()
	s.current = &updated
	s.session = nil
	s.mu.Unlock()
	return updated, nil
}

// Discard drops the session; the authoritative plan is returned unchanged.
func (s *PlanService) Discard() (domain.WorkoutPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return domain.WorkoutPlan{}, apperrors.ErrNoEditSession
	}
	s.session = nil
	if s.current == nil {
		return domain.WorkoutPlan{}, nil
	}
	return *s.current, nil
}
