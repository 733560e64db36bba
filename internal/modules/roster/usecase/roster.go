package usecase

import (
	"context"

	"kqtrainer/internal/modules/roster/domain"
	"kqtrainer/internal/modules/roster/dto"
	rosterin "kqtrainer/internal/modules/roster/port/in"
	"kqtrainer/internal/modules/roster/service"
)

type Interactor struct {
	svc *service.RosterService
}

func NewInteractor(svc *service.RosterService) rosterin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) ListClients(ctx context.Context, query string) (dto.ListClientsOutput, error) {
	clients, err := i.svc.ListClients(ctx, query)
	if err != nil {
		return dto.ListClientsOutput{}, err
	}
	return dto.ListClientsOutput{Clients: toClientOutputs(clients)}, nil
}

func (i *Interactor) ListClientsOffline(ctx context.Context, query string) (dto.ListClientsOutput, error) {
	clients, fetchedAt, err := i.svc.ListClientsOffline(ctx, query)
	if err != nil {
		return dto.ListClientsOutput{}, err
	}
	return dto.ListClientsOutput{Clients: toClientOutputs(clients), Stale: true, FetchedAt: fetchedAt}, nil
}

func (i *Interactor) Performance(ctx context.Context, userID string, windowDays int) (dto.PerformanceOutput, error) {
	perf, err := i.svc.Performance(ctx, userID, windowDays)
	if err != nil {
		return dto.PerformanceOutput{}, err
	}
	history := make([]dto.HistoryEntryOutput, 0, len(perf.History))
	for _, h := range perf.History {
		history = append(history, dto.HistoryEntryOutput{
			SessionID:       h.SessionID,
			Date:            h.Date,
			ExerciseCount:   h.ExerciseCount,
			DurationMinutes: h.DurationMinutes,
			CaloriesBurned:  h.CaloriesBurned,
			FormScore:       h.FormScore,
		})
	}
	name := domain.Client{FirstName: perf.FirstName, LastName: perf.LastName}.FullName()
	return dto.PerformanceOutput{
		UserID:             perf.UserID,
		Name:               name,
		Email:              perf.Email,
		WindowDays:         perf.WindowDays,
		TotalWorkouts:      perf.TotalWorkouts,
		AvgDurationMinutes: perf.AvgDurationMinutes,
		TotalCalories:      perf.TotalCalories,
		AvgFormScore:       perf.AvgFormScore,
		History:            history,
	}, nil
}

func (i *Interactor) SessionDetail(ctx context.Context, userID, sessionID string) (dto.SessionDetailOutput, error) {
	detail, err := i.svc.SessionDetail(ctx, userID, sessionID)
	if err != nil {
		return dto.SessionDetailOutput{}, err
	}
	logs := make([]dto.ExerciseLogOutput, 0, len(detail.ExerciseLogs))
	for _, l := range detail.ExerciseLogs {
		logs = append(logs, dto.ExerciseLogOutput{
			LogID:           l.LogID,
			ExerciseName:    l.ExerciseName,
			SetsCompleted:   l.SetsCompleted,
			RepsCompleted:   l.RepsCompleted,
			DurationSeconds: l.DurationSeconds,
			FormScore:       l.FormScore,
			Feedback:        l.Feedback,
		})
	}
	return dto.SessionDetailOutput{
		SessionID:       detail.SessionID,
		Date:            detail.Date,
		DurationMinutes: detail.DurationMinutes,
		CaloriesBurned:  detail.CaloriesBurned,
		VideoURL:        detail.VideoURL,
		AvgFormScore:    detail.AvgFormScore,
		ExerciseLogs:    logs,
	}, nil
}

func (i *Interactor) DashboardStats(ctx context.Context) (dto.DashboardStatsOutput, error) {
	stats, err := i.svc.DashboardStats(ctx)
	if err != nil {
		return dto.DashboardStatsOutput{}, err
	}
	return dto.DashboardStatsOutput{
		TotalClients:        stats.TotalClients,
		ActiveClients:       stats.ActiveClients,
		WorkoutsThisWeek:    stats.WorkoutsThisWeek,
		AvgPerformanceScore: stats.AvgPerformanceScore,
	}, nil
}

func toClientOutputs(clients []domain.Client) []dto.ClientOutput {
	out := make([]dto.ClientOutput, 0, len(clients))
	for _, c := range clients {
		out = append(out, dto.ClientOutput{
			UserID:        c.UserID,
			Name:          c.FullName(),
			Email:         c.Email,
			IsActive:      c.IsActive,
			TotalWorkouts: c.TotalWorkouts,
			LastWorkoutAt: c.LastWorkoutAt,
		})
	}
	return out
}
