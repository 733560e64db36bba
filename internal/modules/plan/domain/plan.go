package domain

// WorkoutPlan is the weekly plan as the coaching API serves it. A client
// without an active plan still gets a plan record, just with nil PlanData.
type WorkoutPlan struct {
	PlanID    string    `json:"plan_id"`
	UserID    string    `json:"user_id"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	IsActive  bool      `json:"is_active"`
	PlanData  *PlanData `json:"plan_data"`
}

type PlanData struct {
	FitnessLevel    string   `json:"fitness_level"`
	Days            []Day    `json:"days"`
	BasedOnWorkouts int      `json:"based_on_workouts"`
	AvgFormScore    *float64 `json:"avg_form_score,omitempty"`
	Personalized    bool     `json:"personalized"`
}

type Day struct {
	Day                      int        `json:"day"`
	DayName                  string     `json:"day_name"`
	Date                     string     `json:"date"`
	Focus                    string     `json:"focus"`
	EstimatedDurationMinutes int        `json:"estimated_duration_minutes"`
	Notes                    string     `json:"notes,omitempty"`
	Exercises                []Exercise `json:"exercises"`
}

// Exercise fields other than the name are optional on the wire. Presence
// decides which inputs a screen renders, so absent and zero are different
// states and edits must keep them apart.
type Exercise struct {
	Name     string `json:"name"`
	Sets     *int   `json:"sets,omitempty"`
	Reps     *int   `json:"reps,omitempty"`
	Duration *int   `json:"duration,omitempty"`
	Rest     *int   `json:"rest,omitempty"`
}

// IsRest reports whether a day carries no exercises, which is what the
// plan format treats as a rest day.
func (d Day) IsRest() bool {
	return len(d.Exercises) == 0
}

// Clone deep-copies the plan data so edits on the copy can never reach
// the original through a shared slice or pointer.
func (p PlanData) Clone() PlanData {
	out := p
	if p.AvgFormScore != nil {
		v := *p.AvgFormScore
		out.AvgFormScore = &v
	}
	out.Days = make([]Day, len(p.Days))
	for i, d := range p.Days {
		out.Days[i] = d.clone()
	}
	return out
}

func (d Day) clone() Day {
	out := d
	out.Exercises = cloneExercises(d.Exercises)
	return out
}

func cloneExercises(exercises []Exercise) []Exercise {
	out := make([]Exercise, len(exercises))
	for i, e := range exercises {
		out[i] = e.clone()
	}
	return out
}

func (e Exercise) clone() Exercise {
	out := e
	out.Sets = cloneInt(e.Sets)
	out.Reps = cloneInt(e.Reps)
	out.Duration = cloneInt(e.Duration)
	out.Rest = cloneInt(e.Rest)
	return out
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
