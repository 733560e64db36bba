package dto

import "time"

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	UserID    string
	Role      string
	FirstName string
	LastName  string
	Email     string
	ExpiresAt time.Time
}

type StatusOutput struct {
	LoggedIn  bool
	Expired   bool
	UserID    string
	Role      string
	Email     string
	ExpiresAt time.Time
}
