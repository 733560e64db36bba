package usecase_test

import (
	"context"
	"errors"
	"testing"

	"kqtrainer/internal/modules/account/domain"
	accountin "kqtrainer/internal/modules/account/port/in"
	"kqtrainer/internal/modules/account/service"
	"kqtrainer/internal/modules/account/usecase"
	apperrors "kqtrainer/internal/platform/errors"
)

type fakeGateway struct {
	user      domain.User
	updateErr error

	updates    int
	lastUpdate domain.UserUpdate
}

func (f *fakeGateway) GetUser(context.Context, string) (domain.User, error) {
	return f.user, nil
}

func (f *fakeGateway) UpdateUser(_ context.Context, _ string, update domain.UserUpdate) (domain.User, error) {
	f.updates++
	f.lastUpdate = update
	if f.updateErr != nil {
		return domain.User{}, f.updateErr
	}
	updated := f.user
	updated.FirstName = update.FirstName
	updated.LastName = update.LastName
	updated.Email = update.Email
	updated.IsActive = update.IsActive
	return updated, nil
}

func sampleUser() domain.User {
	return domain.User{
		UserID:    "u9",
		FirstName: "Mia",
		LastName:  "Chen",
		Email:     "mia@fit.io",
		Role:      "user",
		IsActive:  true,
	}
}

func newForm(t *testing.T, gw *fakeGateway) accountin.Usecase {
	t.Helper()
	uc := usecase.NewInteractor(service.NewAccountService(gw))
	if _, err := uc.BeginEdit(context.Background(), "u9"); err != nil {
		t.Fatalf("begin edit: %v", err)
	}
	return uc
}

func TestValidateFlagsEachBadField(t *testing.T) {
	t.Parallel()
	gw := &fakeGateway{user: sampleUser()}
	uc := newForm(t, gw)

	if _, err := uc.SetField("first_name", "  "); err != nil {
		t.Fatalf("set field: %v", err)
	}
	if _, err := uc.SetField("email", "not-an-email"); err != nil {
		t.Fatalf("set field: %v", err)
	}

	out, err := uc.Submit(context.Background())
	if !errors.Is(err, apperrors.ErrFormInvalid) {
		t.Fatalf("expected ErrFormInvalid, got %v", err)
	}
	if out.FieldErrors["first_name"] != "First name is required" {
		t.Fatalf("missing first name error: %+v", out.FieldErrors)
	}
	if out.FieldErrors["email"] != "Invalid email format" {
		t.Fatalf("missing email error: %+v", out.FieldErrors)
	}
	if _, ok := out.FieldErrors["last_name"]; ok {
		t.Fatalf("valid field must not carry an error: %+v", out.FieldErrors)
	}
	if gw.updates != 0 {
		t.Fatalf("invalid form must not reach the gateway")
	}
}

func TestSetFieldClearsOnlyItsOwnError(t *testing.T) {
	t.Parallel()
	uc := newForm(t, &fakeGateway{user: sampleUser()})

	if _, err := uc.SetField("first_name", ""); err != nil {
		t.Fatalf("set field: %v", err)
	}
	if _, err := uc.SetField("email", "broken"); err != nil {
		t.Fatalf("set field: %v", err)
	}
	if _, err := uc.Submit(context.Background()); !errors.Is(err, apperrors.ErrFormInvalid) {
		t.Fatalf("expected ErrFormInvalid")
	}

	// Typing into the email field clears its message without re-running
	// validation on anything else.
	out, err := uc.SetField("email", "still-broken")
	if err != nil {
		t.Fatalf("set field: %v", err)
	}
	if _, ok := out.FieldErrors["email"]; ok {
		t.Fatalf("edited field must drop its error: %+v", out.FieldErrors)
	}
	if out.FieldErrors["first_name"] != "First name is required" {
		t.Fatalf("other field errors must stay: %+v", out.FieldErrors)
	}
}

func TestSubmitSendsTrimmedChanges(t *testing.T) {
	t.Parallel()
	gw := &fakeGateway{user: sampleUser()}
	uc := newForm(t, gw)

	if _, err := uc.SetField("first_name", "  Amelia "); err != nil {
		t.Fatalf("set field: %v", err)
	}
	if _, err := uc.SetActive(false); err != nil {
		t.Fatalf("set active: %v", err)
	}

	out, err := uc.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if gw.updates != 1 {
		t.Fatalf("expected one update, got %d", gw.updates)
	}
	if gw.lastUpdate.FirstName != "Amelia" || gw.lastUpdate.IsActive {
		t.Fatalf("unexpected update payload: %+v", gw.lastUpdate)
	}
	if out.FirstName != "Amelia" || out.IsActive {
		t.Fatalf("saved values not reported back: %+v", out)
	}
	// The form closed; further edits need a new BeginEdit.
	if _, err := uc.SetField("email", "x@y.z"); err == nil {
		t.Fatalf("edits after save must refuse")
	}
}

func TestSubmitFailureKeepsFormOpen(t *testing.T) {
	t.Parallel()
	gw := &fakeGateway{user: sampleUser(), updateErr: errors.New("Email already exists")}
	uc := newForm(t, gw)

	if _, err := uc.SetField("email", "taken@fit.io"); err != nil {
		t.Fatalf("set field: %v", err)
	}
	out, err := uc.Submit(context.Background())
	if err == nil || err.Error() != "Email already exists" {
		t.Fatalf("expected gateway error verbatim, got %v", err)
	}
	if out.Email != "taken@fit.io" {
		t.Fatalf("form state lost after failed submit: %+v", out)
	}
	if _, err := uc.SetField("email", "free@fit.io"); err != nil {
		t.Fatalf("form must stay open for correction: %v", err)
	}
}
