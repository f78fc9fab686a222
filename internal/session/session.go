// Package session resolves who is making a request and owns login and logout.
//
// A Session is built once per request by Middleware and handed to guards and
// handlers through the request context.
package session

import (
	"context"
	"sync/atomic"

	"github.com/aaravmahajanofficial/shopdesk/internal/models"
)

type Session struct {
	CurrentUser *models.Profile
	Token       string
	Claims      *models.Claims

	loading atomic.Bool
}

func Anonymous() *Session {
	return &Session{}
}

// Pending is a session whose token checked out but whose user could not be
// resolved yet.
func Pending(token string, claims *models.Claims) *Session {
	s := &Session{Token: token, Claims: claims}
	s.setLoading(true)

	return s
}

func (s *Session) IsAuthenticated() bool {
	return s != nil && s.CurrentUser != nil
}

func (s *Session) IsAdmin() bool {
	return s.IsAuthenticated() && s.CurrentUser.Role == models.RoleAdmin
}

func (s *Session) IsStaff() bool {
	return s.IsAuthenticated() && s.CurrentUser.Role == models.RoleStaff
}

// Loading reports whether the identity is known but the session is not ready
// yet: a login or logout is in flight, or the profile could not be fetched.
func (s *Session) Loading() bool {
	return s != nil && s.loading.Load()
}

func (s *Session) setLoading(v bool) {
	s.loading.Store(v)
}

// Owner is the key the session's cart is stored under.
func (s *Session) Owner() string {
	if !s.IsAuthenticated() {
		return ""
	}

	return s.CurrentUser.ID.String()
}

type contextKey struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the request's session, or an anonymous one.
func FromContext(ctx context.Context) *Session {
	if s, ok := ctx.Value(contextKey{}).(*Session); ok && s != nil {
		return s
	}

	return Anonymous()
}
