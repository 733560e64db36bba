package out

import (
	"context"
	"time"

	"kqtrainer/internal/modules/roster/domain"
)

type Gateway interface {
	ListClients(ctx context.Context) ([]domain.Client, error)
	Performance(ctx context.Context, userID string, windowDays int) (domain.Performance, error)
	SessionDetail(ctx context.Context, userID, sessionID string) (domain.SessionDetail, error)
	DashboardStats(ctx context.Context) (domain.DashboardStats, error)
}

// Snapshot persists the last successfully fetched roster so the list screen
// still renders without the network.
type Snapshot interface {
	SaveClients(ctx context.Context, clients []domain.Client, fetchedAt time.Time) error
	LoadClients(ctx context.Context) ([]domain.Client, time.Time, error)
}
