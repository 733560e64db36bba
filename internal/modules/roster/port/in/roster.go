package in

import (
	"context"

	"kqtrainer/internal/modules/roster/dto"
)

type Usecase interface {
	ListClients(ctx context.Context, query string) (dto.ListClientsOutput, error)
	ListClientsOffline(ctx context.Context, query string) (dto.ListClientsOutput, error)
	Performance(ctx context.Context, userID string, windowDays int) (dto.PerformanceOutput, error)
	SessionDetail(ctx context.Context, userID, sessionID string) (dto.SessionDetailOutput, error)
	DashboardStats(ctx context.Context) (dto.DashboardStatsOutput, error)
}
