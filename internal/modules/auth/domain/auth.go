package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Credentials is what the login form collects.
type Credentials struct {
	Email    string
	Password string
}

func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Email) == "" {
		return fmt.Errorf("email is required")
	}
	if c.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

// Session is the authenticated identity returned by the gateway on login.
type Session struct {
	AccessToken string
	UserID      string
	Role        string
	FirstName   string
	LastName    string
	Email       string
}

// StoredToken is the persisted slice of a Session the client needs between
// runs. The access token is opaque to us apart from its expiry claim.
type StoredToken struct {
	AccessToken string    `json:"access_token"`
	UserID      string    `json:"user_id"`
	Role        string    `json:"role"`
	Email       string    `json:"email"`
	SavedAt     time.Time `json:"saved_at"`
}

// TokenExpiry decodes the expiry claim without verifying the signature;
// verification is the server's job, the client only wants to warn the user
// before a doomed request. A token without an exp claim yields a zero time.
func TokenExpiry(raw string) (time.Time, error) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err != nil {
		return time.Time{}, fmt.Errorf("decode token claims: %w", err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, nil
	}
	return claims.ExpiresAt.Time, nil
}

// Expired reports whether the token's exp claim has passed. Tokens without
// an exp claim never expire client-side.
func Expired(raw string, now time.Time) bool {
	expiry, err := TokenExpiry(raw)
	if err != nil || expiry.IsZero() {
		return false
	}
	return now.After(expiry)
}
