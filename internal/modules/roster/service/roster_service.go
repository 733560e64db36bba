package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"kqtrainer/internal/modules/roster/domain"
	rosterout "kqtrainer/internal/modules/roster/port/out"
	"kqtrainer/internal/platform/clock"
	apperrors "kqtrainer/internal/platform/errors"
)

type RosterService struct {
	clock             clock.Clock
	gateway           rosterout.Gateway
	snapshot          rosterout.Snapshot
	defaultWindowDays int
}

func NewRosterService(clock clock.Clock, gateway rosterout.Gateway, snapshot rosterout.Snapshot, defaultWindowDays int) *RosterService {
	if defaultWindowDays <= 0 {
		defaultWindowDays = 30
	}
	return &RosterService{clock: clock, gateway: gateway, snapshot: snapshot, defaultWindowDays: defaultWindowDays}
}

// ListClients fetches the roster and filters it by query. The snapshot save
// is best-effort; a broken local disk must not hide a good fetch.
func (s *RosterService) ListClients(ctx context.Context, query string) ([]domain.Client, error) {
	clients, err := s.gateway.ListClients(ctx)
	if err != nil {
		return nil, err
	}
	if s.snapshot != nil {
		_ = s.snapshot.SaveClients(ctx, clients, s.clock.Now())
	}
	return domain.Filter(clients, query), nil
}

// ListClientsOffline serves the last snapshot without touching the network.
func (s *RosterService) ListClientsOffline(ctx context.Context, query string) ([]domain.Client, time.Time, error) {
	if s.snapshot == nil {
		return nil, time.Time{}, apperrors.ErrOfflineCacheEmpty
	}
	clients, fetchedAt, err := s.snapshot.LoadClients(ctx)
	if err != nil {
		return nil, time.Time{}, err
	}
	if len(clients) == 0 {
		return nil, time.Time{}, apperrors.ErrOfflineCacheEmpty
	}
	return domain.Filter(clients, query), fetchedAt, nil
}

func (s *RosterService) Performance(ctx context.Context, userID string, windowDays int) (domain.Performance, error) {
	if strings.TrimSpace(userID) == "" {
		return domain.Performance{}, fmt.Errorf("client id is required")
	}
	if windowDays <= 0 {
		windowDays = s.defaultWindowDays
	}
	perf, err := s.gateway.Performance(ctx, userID, windowDays)
	if err != nil {
		return domain.Performance{}, err
	}
	perf.WindowDays = windowDays
	return perf, nil
}

func (s *RosterService) SessionDetail(ctx context.Context, userID, sessionID string) (domain.SessionDetail, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(sessionID) == "" {
		return domain.SessionDetail{}, fmt.Errorf("client id and session id are required")
	}
	return s.gateway.SessionDetail(ctx, userID, sessionID)
}

func (s *RosterService) DashboardStats(ctx context.Context) (domain.DashboardStats, error) {
	return s.gateway.DashboardStats(ctx)
}
