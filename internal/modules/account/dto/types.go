package dto

type UserOutput struct {
	UserID        string
	Name          string
	FirstName     string
	LastName      string
	Email         string
	Role          string
	IsActive      bool
	CreatedAt     string
	TotalWorkouts int
}

// FormOutput is the rendered edit form: current values plus any per-field
// validation messages keyed by wire field name.
type FormOutput struct {
	UserID      string
	FirstName   string
	LastName    string
	Email       string
	IsActive    bool
	FieldErrors map[string]string
	CanSubmit   bool
}
