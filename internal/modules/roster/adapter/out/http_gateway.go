package out

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/coocood/freecache"
	"go.uber.org/zap"

	"kqtrainer/internal/modules/roster/domain"
	rosterout "kqtrainer/internal/modules/roster/port/out"
	"kqtrainer/internal/platform/httpapi"
)

const perfCacheSize = 2 * 1024 * 1024

// HTTPGateway serves roster reads from the coaching API. Performance
// responses are held in a short-TTL cache so a fast double-refresh of the
// detail pane does not issue two identical requests.
type HTTPGateway struct {
	api       *httpapi.Client
	perfCache *freecache.Cache
	perfTTL   time.Duration
	logger    *zap.Logger
}

func NewHTTPGateway(api *httpapi.Client, perfTTL time.Duration, logger *zap.Logger) rosterout.Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPGateway{
		api:       api,
		perfCache: freecache.NewCache(perfCacheSize),
		perfTTL:   perfTTL,
		logger:    logger,
	}
}

type clientWire struct {
	UserID          string  `json:"user_id"`
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	Email           string  `json:"email"`
	Role            string  `json:"role"`
	IsActive        bool    `json:"is_active"`
	TotalWorkouts   int     `json:"total_workouts"`
	LastWorkoutDate *string `json:"last_workout_date"`
}

func (g *HTTPGateway) ListClients(ctx context.Context) ([]domain.Client, error) {
	var payload struct {
		Clients []clientWire `json:"clients"`
	}
	if err := g.api.Get(ctx, "trainer/clients", &payload); err != nil {
		return nil, err
	}
	clients := make([]domain.Client, 0, len(payload.Clients))
	for _, w := range payload.Clients {
		clients = append(clients, domain.Client{
			UserID:        w.UserID,
			FirstName:     w.FirstName,
			LastName:      w.LastName,
			Email:         w.Email,
			Role:          w.Role,
			IsActive:      w.IsActive,
			TotalWorkouts: w.TotalWorkouts,
			LastWorkoutAt: parseAPITime(w.LastWorkoutDate),
		})
	}
	return clients, nil
}

type performanceWire struct {
	UserID         string  `json:"user_id"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Email          string  `json:"email"`
	TotalWorkouts  int     `json:"total_workouts"`
	AvgDuration    float64 `json:"avg_duration"`
	TotalCalories  float64 `json:"total_calories"`
	AvgFormScore   float64 `json:"avg_form_score"`
	WorkoutHistory []struct {
		SessionID      string   `json:"session_id"`
		Date           string   `json:"date"`
		ExercisesCount int      `json:"exercises_count"`
		Duration       int      `json:"duration"`
		CaloriesBurned int      `json:"calories_burned"`
		FormScore      *float64 `json:"form_score"`
	} `json:"workout_history"`
}

func (g *HTTPGateway) Performance(ctx context.Context, userID string, windowDays int) (domain.Performance, error) {
	cacheKey := []byte(fmt.Sprintf("perf::%s::%d", userID, windowDays))
	var wire performanceWire
	if cached, err := g.perfCache.Get(cacheKey); err == nil {
		if err := json.Unmarshal(cached, &wire); err == nil {
			return wireToPerformance(wire), nil
		}
		g.logger.Warn("stale performance cache entry dropped", zap.String("user_id", userID))
	}

	path := fmt.Sprintf("trainer/clients/%s/performance?days=%d", userID, windowDays)
	if err := g.api.Get(ctx, path, &wire); err != nil {
		return domain.Performance{}, err
	}
	if encoded, err := json.Marshal(wire); err == nil {
		_ = g.perfCache.Set(cacheKey, encoded, int(g.perfTTL.Seconds()))
	}
	return wireToPerformance(wire), nil
}

func wireToPerformance(wire performanceWire) domain.Performance {
	history := make([]domain.HistoryEntry, 0, len(wire.WorkoutHistory))
	for _, h := range wire.WorkoutHistory {
		date := h.Date
		history = append(history, domain.HistoryEntry{
			SessionID:       h.SessionID,
			Date:            parseAPITime(&date),
			ExerciseCount:   h.ExercisesCount,
			DurationMinutes: h.Duration,
			CaloriesBurned:  h.CaloriesBurned,
			FormScore:       h.FormScore,
		})
	}
	return domain.Performance{
		UserID:             wire.UserID,
		FirstName:          wire.FirstName,
		LastName:           wire.LastName,
		Email:              wire.Email,
		TotalWorkouts:      wire.TotalWorkouts,
		AvgDurationMinutes: wire.AvgDuration,
		TotalCalories:      wire.TotalCalories,
		AvgFormScore:       wire.AvgFormScore,
		History:            history,
	}
}

func (g *HTTPGateway) SessionDetail(ctx context.Context, userID, sessionID string) (domain.SessionDetail, error) {
	var wire struct {
		SessionID      string   `json:"session_id"`
		UserID         string   `json:"user_id"`
		Date           string   `json:"date"`
		Duration       int      `json:"duration"`
		CaloriesBurned int      `json:"calories_burned"`
		VideoURL       string   `json:"video_url"`
		AvgFormScore   *float64 `json:"avg_form_score"`
		ExerciseLogs   []struct {
			ExerciseLogID string   `json:"exercise_log_id"`
			ExerciseName  string   `json:"exercise_name"`
			SetsCompleted int      `json:"sets_completed"`
			RepsCompleted int      `json:"reps_completed"`
			Duration      *int     `json:"duration"`
			FormScore     *float64 `json:"form_score"`
			Feedback      string   `json:"feedback"`
		} `json:"exercise_logs"`
	}
	path := fmt.Sprintf("trainer/clients/%s/sessions/%s", userID, sessionID)
	if err := g.api.Get(ctx, path, &wire); err != nil {
		return domain.SessionDetail{}, err
	}
	logs := make([]domain.ExerciseLog, 0, len(wire.ExerciseLogs))
	for _, l := range wire.ExerciseLogs {
		logs = append(logs, domain.ExerciseLog{
			LogID:           l.ExerciseLogID,
			ExerciseName:    l.ExerciseName,
			SetsCompleted:   l.SetsCompleted,
			RepsCompleted:   l.RepsCompleted,
			DurationSeconds: l.Duration,
			FormScore:       l.FormScore,
			Feedback:        l.Feedback,
		})
	}
	date := wire.Date
	return domain.SessionDetail{
		SessionID:       wire.SessionID,
		UserID:          wire.UserID,
		Date:            parseAPITime(&date),
		DurationMinutes: wire.Duration,
		CaloriesBurned:  wire.CaloriesBurned,
		VideoURL:        g.api.MediaURL(wire.VideoURL),
		AvgFormScore:    wire.AvgFormScore,
		ExerciseLogs:    logs,
	}, nil
}

func (g *HTTPGateway) DashboardStats(ctx context.Context) (domain.DashboardStats, error) {
	var wire struct {
		TotalClients          int     `json:"total_clients"`
		ActiveClients         int     `json:"active_clients"`
		TotalWorkoutsThisWeek int     `json:"total_workouts_this_week"`
		AvgPerformanceScore   float64 `json:"avg_performance_score"`
	}
	if err := g.api.Get(ctx, "trainer/dashboard/stats", &wire); err != nil {
		return domain.DashboardStats{}, err
	}
	return domain.DashboardStats{
		TotalClients:        wire.TotalClients,
		ActiveClients:       wire.ActiveClients,
		WorkoutsThisWeek:    wire.TotalWorkoutsThisWeek,
		AvgPerformanceScore: wire.AvgPerformanceScore,
	}, nil
}

// parseAPITime accepts the backend's ISO timestamps with or without zone.
func parseAPITime(raw *string) time.Time {
	if raw == nil || *raw == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, *raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
