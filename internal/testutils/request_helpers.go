package testutils

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/aaravmahajanofficial/shopdesk/internal/api/middleware"
	"github.com/aaravmahajanofficial/shopdesk/internal/models"
	"github.com/aaravmahajanofficial/shopdesk/internal/session"
	"github.com/google/uuid"
)

// CreateTestRequestWithSession builds a request carrying a discarding logger,
// the given session and path values.
func CreateTestRequestWithSession(method, target string, body io.Reader, sess *session.Session, pathParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)

	for key, value := range pathParams {
		req.SetPathValue(key, value)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := middleware.WithLogger(req.Context(), logger)
	ctx = session.WithSession(ctx, sess)

	return req.WithContext(ctx)
}

func CreateTestRequestWithoutSession(method, target string, body io.Reader, pathParams map[string]string) *http.Request {
	return CreateTestRequestWithSession(method, target, body, session.Anonymous(), pathParams)
}

// SessionFor is a signed-in session of a user with the given role.
func SessionFor(role models.Role) *session.Session {
	id := uuid.New()

	return &session.Session{
		CurrentUser: &models.Profile{ID: id, Email: "jane@example.com", FullName: "Jane Doe", Role: role},
		Claims:      &models.Claims{UserID: id, Email: "jane@example.com"},
	}
}
