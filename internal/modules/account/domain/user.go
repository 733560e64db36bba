package domain

// User is the admin-facing view of one account.
type User struct {
	UserID        string
	FirstName     string
	LastName      string
	Email         string
	Role          string
	IsActive      bool
	CreatedAt     string
	TotalWorkouts int
}

func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}
