package repository

import (
	"context"
	"database/sql"
	"errors"

	appErrors "github.com/aaravmahajanofficial/shopdesk/internal/errors"
	"github.com/lib/pq"
)

// backendError translates a failed database call into an AppError. The
// backend's own message is kept verbatim; its code and detail go to Detail.
func backendError(err error, notFound string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.NotFoundError(notFound).WithError(err)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		detail := string(pqErr.Code)
		if pqErr.Detail != "" {
			detail += ": " + pqErr.Detail
		}

		return appErrors.ExternalServiceError(pqErr.Message).
			WithDetail(detail).
			WithHint(pqErr.Hint).
			WithError(err)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return appErrors.ExternalServiceError("backend request timed out").WithError(err)
	}

	return appErrors.ExternalServiceError(err.Error()).WithError(err)
}

// IsUniqueViolation reports whether err came from a unique constraint.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error

	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
