// Package session carries the authenticated caller through a request context.
// Handlers and services read the session explicitly from the context instead
// of consulting any global state.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session identifies the caller of a request.
type Session struct {
	Subject string
	Role    string
}

// ErrInvalidToken is returned by ParseToken for any token that cannot be
// trusted: malformed, expired, wrongly signed, or missing a subject.
var ErrInvalidToken = errors.New("invalid token")

type ctxKey struct{}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session stored in ctx, if any.
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	return s, ok
}

// claims is the JWT payload: registered claims plus the caller's role.
type claims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// NewToken signs an HS256 access token for s that expires after ttl.
func NewToken(secret []byte, s Session, ttl time.Duration) (string, error) {
	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: s.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	signed, err := tok.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("session.NewToken: %w", err)
	}
	return signed, nil
}

// ParseToken verifies an HS256 token and returns the session it carries.
func ParseToken(secret []byte, raw string) (Session, error) {
	var c claims
	_, err := jwt.ParseWithClaims(raw, &c, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return Session{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if c.Subject == "" {
		return Session{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return Session{Subject: c.Subject, Role: c.Role}, nil
}
