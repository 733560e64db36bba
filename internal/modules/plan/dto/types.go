package dto

// PlanOutput carries a rendered view of one client's plan. When an edit
// session is open, Data is the working copy, not the authoritative plan.
type PlanOutput struct {
	PlanID    string
	UserID    string
	StartDate string
	EndDate   string
	IsActive  bool
	HasData   bool
	Data      PlanDataOutput
	Editing   bool
	Dirty     bool
}

type PlanDataOutput struct {
	FitnessLevel    string
	BasedOnWorkouts int
	AvgFormScore    *float64
	Personalized    bool
	Days            []DayOutput
}

type DayOutput struct {
	Day                      int
	DayName                  string
	Date                     string
	Focus                    string
	EstimatedDurationMinutes int
	Notes                    string
	IsRest                   bool
	Exercises                []ExerciseOutput
}

type ExerciseOutput struct {
	Name     string
	Sets     *int
	Reps     *int
	Duration *int
	Rest     *int
}
