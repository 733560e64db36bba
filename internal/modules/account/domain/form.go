package domain

import (
	"regexp"
	"strings"

	apperrors "kqtrainer/internal/platform/errors"
)

type Field string

const (
	FieldFirstName Field = "first_name"
	FieldLastName  Field = "last_name"
	FieldEmail     Field = "email"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// Form is the editable state of one user's account details. Validation
// errors live per field; editing a field clears only its own error, a full
// re-check happens on the next Validate.
type Form struct {
	userID    string
	firstName string
	lastName  string
	email     string
	isActive  bool
	errors    map[Field]string
}

func NewForm(user User) *Form {
	return &Form{
		userID:    user.UserID,
		firstName: user.FirstName,
		lastName:  user.LastName,
		email:     user.Email,
		isActive:  user.IsActive,
		errors:    make(map[Field]string),
	}
}

func (f *Form) UserID() string    { return f.userID }
func (f *Form) FirstName() string { return f.firstName }
func (f *Form) LastName() string  { return f.lastName }
func (f *Form) Email() string     { return f.email }
func (f *Form) IsActive() bool    { return f.isActive }

// FieldErrors returns a copy of the current per-field messages.
func (f *Form) FieldErrors() map[Field]string {
	out := make(map[Field]string, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// SetField updates one text field and clears that field's error. Other
// fields' errors stay until the next Validate.
func (f *Form) SetField(field Field, value string) {
	switch field {
	case FieldFirstName:
		f.firstName = value
	case FieldLastName:
		f.lastName = value
	case FieldEmail:
		f.email = value
	default:
		return
	}
	delete(f.errors, field)
}

func (f *Form) SetActive(active bool) {
	f.isActive = active
}

// Validate checks every field and records per-field messages. Submission
// is blocked while any message is present.
func (f *Form) Validate() error {
	f.errors = make(map[Field]string)
	if strings.TrimSpace(f.firstName) == "" {
		f.errors[FieldFirstName] = "First name is required"
	}
	if strings.TrimSpace(f.lastName) == "" {
		f.errors[FieldLastName] = "Last name is required"
	}
	email := strings.TrimSpace(f.email)
	switch {
	case email == "":
		f.errors[FieldEmail] = "Email is required"
	case !emailPattern.MatchString(email):
		f.errors[FieldEmail] = "Invalid email format"
	}
	if len(f.errors) > 0 {
		return apperrors.ErrFormInvalid
	}
	return nil
}

// Changes builds the update payload from the current values.
func (f *Form) Changes() UserUpdate {
	return UserUpdate{
		FirstName: strings.TrimSpace(f.firstName),
		LastName:  strings.TrimSpace(f.lastName),
		Email:     strings.TrimSpace(f.email),
		IsActive:  f.isActive,
	}
}

// UserUpdate is the set of fields an admin may change.
type UserUpdate struct {
	FirstName string
	LastName  string
	Email     string
	IsActive  bool
}
