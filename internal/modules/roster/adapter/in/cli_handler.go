package in

import (
	"context"

	"kqtrainer/internal/modules/roster/dto"
	rosterin "kqtrainer/internal/modules/roster/port/in"
)

type CLIHandler struct {
	usecase rosterin.Usecase
}

func NewCLIHandler(usecase rosterin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) ListClients(ctx context.Context, query string, offline bool) (dto.ListClientsOutput, error) {
	if offline {
		return h.usecase.ListClientsOffline(ctx, query)
	}
	return h.usecase.ListClients(ctx, query)
}

func (h CLIHandler) Performance(ctx context.Context, userID string, windowDays int) (dto.PerformanceOutput, error) {
	return h.usecase.Performance(ctx, userID, windowDays)
}

func (h CLIHandler) SessionDetail(ctx context.Context, userID, sessionID string) (dto.SessionDetailOutput, error) {
	return h.usecase.SessionDetail(ctx, userID, sessionID)
}

func (h CLIHandler) DashboardStats(ctx context.Context) (dto.DashboardStatsOutput, error) {
	return h.usecase.DashboardStats(ctx)
}
