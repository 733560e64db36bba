package domain

import (
	"strings"
	"time"
)

// Client is one row of the trainer's roster, as listed by the gateway.
type Client struct {
	UserID        string
	FirstName     string
	LastName      string
	Email         string
	Role          string
	IsActive      bool
	TotalWorkouts int
	// LastWorkoutAt is zero when the client has never logged a workout.
	LastWorkoutAt time.Time
}

func (c Client) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(c.FirstName) + " " + strings.TrimSpace(c.LastName))
}

// Filter returns the subsequence of clients whose full name or email contains
// query as a case-insensitive substring, preserving order. A blank query
// returns the input unchanged. Missing fields never match and never fail.
func Filter(clients []Client, query string) []Client {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return clients
	}
	out := make([]Client, 0, len(clients))
	for _, c := range clients {
		name := strings.ToLower(c.FullName())
		email := strings.ToLower(c.Email)
		if strings.Contains(name, query) || strings.Contains(email, query) {
			out = append(out, c)
		}
	}
	return out
}

// Performance aggregates a client's workouts over a lookback window.
type Performance struct {
	UserID             string
	FirstName          string
	LastName           string
	Email              string
	WindowDays         int
	TotalWorkouts      int
	AvgDurationMinutes float64
	TotalCalories      float64
	AvgFormScore       float64
	History            []HistoryEntry
}

type HistoryEntry struct {
	SessionID       string
	Date            time.Time
	ExerciseCount   int
	DurationMinutes int
	CaloriesBurned  int
	// FormScore is nil when the session has no posture analysis.
	FormScore *float64
}

// SessionDetail is one workout session with its exercise logs and the
// optional recorded video.
type SessionDetail struct {
	SessionID       string
	UserID          string
	Date            time.Time
	DurationMinutes int
	CaloriesBurned  int
	VideoURL        string
	AvgFormScore    *float64
	ExerciseLogs    []ExerciseLog
}

type ExerciseLog struct {
	LogID           string
	ExerciseName    string
	SetsCompleted   int
	RepsCompleted   int
	DurationSeconds *int
	FormScore       *float64
	Feedback        string
}

// DashboardStats is the trainer's home-screen aggregate.
type DashboardStats struct {
	TotalClients        int
	ActiveClients       int
	WorkoutsThisWeek    int
	AvgPerformanceScore float64
}

// ScoreBand buckets a form-score percentage for display.
type ScoreBand int

const (
	ScoreBandPoor ScoreBand = iota
	ScoreBandFair
	ScoreBandGood
)

// BandForScore maps a 0..100 form score onto its display band: 80 and above
// is good, 60 and above is fair, everything below is poor.
func BandForScore(score float64) ScoreBand {
	switch {
	case score >= 80:
		return ScoreBandGood
	case score >= 60:
		return ScoreBandFair
	default:
		return ScoreBandPoor
	}
}
