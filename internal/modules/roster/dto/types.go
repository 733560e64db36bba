package dto

import "time"

type ClientOutput struct {
	UserID        string
	Name          string
	Email         string
	IsActive      bool
	TotalWorkouts int
	LastWorkoutAt time.Time
}

type ListClientsOutput struct {
	Clients []ClientOutput
	// Stale is set when the list came from the offline snapshot instead of
	// the gateway; FetchedAt is the snapshot's age in that case.
	Stale     bool
	FetchedAt time.Time
}

type HistoryEntryOutput struct {
	SessionID       string
	Date            time.Time
	ExerciseCount   int
	DurationMinutes int
	CaloriesBurned  int
	FormScore       *float64
}

type PerformanceOutput struct {
	UserID             string
	Name               string
	Email              string
	WindowDays         int
	TotalWorkouts      int
	AvgDurationMinutes float64
	TotalCalories      float64
	AvgFormScore       float64
	History            []HistoryEntryOutput
}

type ExerciseLogOutput struct {
	LogID           string
	ExerciseName    string
	SetsCompleted   int
	RepsCompleted   int
	DurationSeconds *int
	FormScore       *float64
	Feedback        string
}

type SessionDetailOutput struct {
	SessionID       string
	Date            time.Time
	DurationMinutes int
	CaloriesBurned  int
	VideoURL        string
	AvgFormScore    *float64
	ExerciseLogs    []ExerciseLogOutput
}

type DashboardStatsOutput struct {
	TotalClients        int
	ActiveClients       int
	WorkoutsThisWeek    int
	AvgPerformanceScore float64
}
