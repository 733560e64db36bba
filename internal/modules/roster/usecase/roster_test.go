package usecase_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	rosterout "kqtrainer/internal/modules/roster/adapter/out"
	"kqtrainer/internal/modules/roster/domain"
	rosterin "kqtrainer/internal/modules/roster/port/in"
	"kqtrainer/internal/modules/roster/service"
	"kqtrainer/internal/modules/roster/usecase"
	apperrors "kqtrainer/internal/platform/errors"
)

type fakeClock struct{ now time.Time }

func (f fakeClock) Now() time.Time { return f.now }

type fakeGateway struct {
	clients    []domain.Client
	clientsErr error

	perf       domain.Performance
	perfDays   int
	perfCalls  int
	statsCalls int
}

func (f *fakeGateway) ListClients(context.Context) ([]domain.Client, error) {
	return f.clients, f.clientsErr
}

func (f *fakeGateway) Performance(_ context.Context, _ string, windowDays int) (domain.Performance, error) {
	f.perfCalls++
	f.perfDays = windowDays
	return f.perf, nil
}

func (f *fakeGateway) SessionDetail(context.Context, string, string) (domain.SessionDetail, error) {
	return domain.SessionDetail{}, nil
}

func (f *fakeGateway) DashboardStats(context.Context) (domain.DashboardStats, error) {
	f.statsCalls++
	return domain.DashboardStats{TotalClients: 2, ActiveClients: 1}, nil
}

func newRoster(t *testing.T, gw *fakeGateway, now time.Time) rosterin.Usecase {
	t.Helper()
	snapshot, err := rosterout.NewSQLiteSnapshot(filepath.Join(t.TempDir(), "roster.db"))
	if err != nil {
		t.Fatalf("new snapshot: %v", err)
	}
	return usecase.NewInteractor(service.NewRosterService(fakeClock{now: now}, gw, snapshot, 30))
}

func TestListClientsFiltersAndFeedsOfflineSnapshot(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	gw := &fakeGateway{clients: []domain.Client{
		{UserID: "u1", FirstName: "Ana", LastName: "Petrova", Email: "a@x.com", TotalWorkouts: 12},
		{UserID: "u2", FirstName: "Bo", LastName: "Larsen", Email: "b@y.com"},
	}}
	uc := newRoster(t, gw, now)

	out, err := uc.ListClients(context.Background(), "a@")
	if err != nil {
		t.Fatalf("list clients: %v", err)
	}
	if len(out.Clients) != 1 || out.Clients[0].UserID != "u1" {
		t.Fatalf("expected only Ana for query a@, got %+v", out.Clients)
	}
	if out.Stale {
		t.Fatalf("online list must not be marked stale")
	}

	// Gateway now fails; the offline path serves the saved snapshot.
	gw.clientsErr = errors.New("network down")
	if _, err := uc.ListClients(context.Background(), ""); err == nil {
		t.Fatalf("expected gateway failure to propagate")
	}
	offline, err := uc.ListClientsOffline(context.Background(), "")
	if err != nil {
		t.Fatalf("offline list: %v", err)
	}
	if !offline.Stale || !offline.FetchedAt.Equal(now) {
		t.Fatalf("expected stale snapshot from %v, got %+v", now, offline)
	}
	if len(offline.Clients) != 2 || offline.Clients[0].UserID != "u1" || offline.Clients[1].UserID != "u2" {
		t.Fatalf("snapshot must preserve order, got %+v", offline.Clients)
	}
	if offline.Clients[0].Name != "Ana Petrova" || offline.Clients[0].TotalWorkouts != 12 {
		t.Fatalf("snapshot lost fields: %+v", offline.Clients[0])
	}
}

func TestListClientsOfflineWithoutSnapshotFails(t *testing.T) {
	t.Parallel()
	uc := newRoster(t, &fakeGateway{}, time.Now().UTC())
	if _, err := uc.ListClientsOffline(context.Background(), ""); !errors.Is(err, apperrors.ErrOfflineCacheEmpty) {
		t.Fatalf("expected ErrOfflineCacheEmpty, got %v", err)
	}
}

func TestPerformanceDefaultsWindowDays(t *testing.T) {
	t.Parallel()
	score := 82.5
	gw := &fakeGateway{perf: domain.Performance{
		UserID:        "u1",
		FirstName:     "Ana",
		LastName:      "Petrova",
		TotalWorkouts: 4,
		History: []domain.HistoryEntry{
			{SessionID: "s1", FormScore: &score},
			{SessionID: "s2"},
		},
	}}
	uc := newRoster(t, gw, time.Now().UTC())

	out, err := uc.Performance(context.Background(), "u1", 0)
	if err != nil {
		t.Fatalf("performance: %v", err)
	}
	if gw.perfDays != 30 {
		t.Fatalf("expected default 30-day window, got %d", gw.perfDays)
	}
	if out.WindowDays != 30 || out.Name != "Ana Petrova" {
		t.Fatalf("unexpected output: %+v", out)
	}
	if out.History[0].FormScore == nil || *out.History[0].FormScore != score {
		t.Fatalf("form score presence must survive mapping")
	}
	if out.History[1].FormScore != nil {
		t.Fatalf("absent form score must stay absent")
	}

	if _, err := uc.Performance(context.Background(), "u1", 7); err != nil {
		t.Fatalf("performance with explicit window: %v", err)
	}
	if gw.perfDays != 7 {
		t.Fatalf("expected explicit 7-day window, got %d", gw.perfDays)
	}

	if _, err := uc.Performance(context.Background(), "  ", 7); err == nil {
		t.Fatalf("blank client id must fail before the gateway call")
	}
}
