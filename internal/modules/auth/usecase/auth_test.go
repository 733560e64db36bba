package usecase_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"

	authout "kqtrainer/internal/modules/auth/adapter/out"
	"kqtrainer/internal/modules/auth/domain"
	"kqtrainer/internal/modules/auth/dto"
	"kqtrainer/internal/modules/auth/service"
	"kqtrainer/internal/modules/auth/usecase"
)

type fakeClock struct{ now time.Time }

func (f fakeClock) Now() time.Time { return f.now }

type fakeGateway struct {
	session domain.Session
	err     error
	calls   int
}

func (f *fakeGateway) Login(context.Context, string, string) (domain.Session, error) {
	f.calls++
	return f.session, f.err
}

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "trainer-1",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return raw
}

func TestLoginStoresTokenAndReportsExpiry(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	expiry := now.Add(time.Hour)
	gw := &fakeGateway{session: domain.Session{
		AccessToken: signedToken(t, expiry),
		UserID:      "trainer-1",
		Role:        "trainer",
		Email:       "coach@example.com",
	}}
	store := authout.NewFileTokenStore(filepath.Join(t.TempDir(), "token"))
	uc := usecase.NewInteractor(service.NewAuthService(fakeClock{now: now}, gw, store))

	out, err := uc.Login(context.Background(), dto.LoginInput{Email: "coach@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if out.Role != "trainer" || out.UserID != "trainer-1" {
		t.Fatalf("unexpected login output: %+v", out)
	}
	if !out.ExpiresAt.Equal(expiry.Truncate(time.Second)) {
		t.Fatalf("expected expiry %v, got %v", expiry, out.ExpiresAt)
	}

	status, err := uc.Status(context.Background())
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !status.LoggedIn || status.Expired {
		t.Fatalf("expected live session, got %+v", status)
	}
}

func TestLoginRejectsBlankCredentialsBeforeGatewayCall(t *testing.T) {
	t.Parallel()
	gw := &fakeGateway{}
	store := authout.NewFileTokenStore(filepath.Join(t.TempDir(), "token"))
	uc := usecase.NewInteractor(service.NewAuthService(fakeClock{now: time.Now()}, gw, store))

	if _, err := uc.Login(context.Background(), dto.LoginInput{Email: "  ", Password: "pw"}); err == nil {
		t.Fatalf("blank email must fail")
	}
	if _, err := uc.Login(context.Background(), dto.LoginInput{Email: "a@b.c", Password: ""}); err == nil {
		t.Fatalf("blank password must fail")
	}
	if gw.calls != 0 {
		t.Fatalf("gateway must not be called for invalid credentials, got %d calls", gw.calls)
	}
}

func TestStatusDetectsExpiredToken(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	gw := &fakeGateway{session: domain.Session{
		AccessToken: signedToken(t, now.Add(-time.Minute)),
		UserID:      "trainer-1",
		Role:        "trainer",
	}}
	store := authout.NewFileTokenStore(filepath.Join(t.TempDir(), "token"))
	uc := usecase.NewInteractor(service.NewAuthService(fakeClock{now: now}, gw, store))

	if _, err := uc.Login(context.Background(), dto.LoginInput{Email: "a@b.c", Password: "pw"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	status, err := uc.Status(context.Background())
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !status.LoggedIn || !status.Expired {
		t.Fatalf("expected expired session, got %+v", status)
	}
}

func TestStatusWithoutTokenReportsLoggedOut(t *testing.T) {
	t.Parallel()
	store := authout.NewFileTokenStore(filepath.Join(t.TempDir(), "token"))
	uc := usecase.NewInteractor(service.NewAuthService(fakeClock{now: time.Now()}, &fakeGateway{}, store))

	status, err := uc.Status(context.Background())
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.LoggedIn {
		t.Fatalf("expected logged out, got %+v", status)
	}

	if err := uc.Logout(context.Background()); err != nil {
		t.Fatalf("logout with no token should be a no-op: %v", err)
	}
}
