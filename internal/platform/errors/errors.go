package apperrors

import "errors"

var (
	ErrNotLoggedIn       = errors.New("not logged in")
	ErrTokenExpired      = errors.New("session token expired")
	ErrNotFound          = errors.New("not found")
	ErrNoPlanData        = errors.New("plan has no plan data")
	ErrNoEditSession     = errors.New("no edit session open")
	ErrEditSessionOpen   = errors.New("edit session already open")
	ErrFeedbackEmpty     = errors.New("feedback text is empty")
	ErrNoSessionSelected = errors.New("no workout session selected")
	ErrFormInvalid       = errors.New("form has validation errors")
	ErrOfflineCacheEmpty = errors.New("offline snapshot is empty")
)
