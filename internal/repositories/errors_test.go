package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	appErrors "github.com/aaravmahajanofficial/shopdesk/internal/errors"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackendError(t *testing.T) {
	t.Run("Nil passes through", func(t *testing.T) {
		assert.NoError(t, backendError(nil, ""))
	})

	t.Run("No rows becomes not found", func(t *testing.T) {
		err := backendError(sql.ErrNoRows, "Order not found")

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		assert.Equal(t, "Order not found", appErr.Message)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	t.Run("Postgres error keeps message, code, detail and hint", func(t *testing.T) {
		pqErr := &pq.Error{
			Code:    "23503",
			Message: `insert or update on table "order_items" violates foreign key constraint`,
			Detail:  `Key (product_id) is not present in table "products".`,
			Hint:    "create the product first",
		}

		err := backendError(pqErr, "")

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeExternalService, appErr.Code)
		assert.Equal(t, pqErr.Message, appErr.Message)
		assert.Equal(t, `23503: Key (product_id) is not present in table "products".`, appErr.Detail)
		assert.Equal(t, "create the product first", appErr.Hint)
		assert.False(t, IsUniqueViolation(err))
	})

	t.Run("Unique violation is detectable", func(t *testing.T) {
		err := backendError(&pq.Error{Code: "23505", Message: "duplicate key value"}, "")
		assert.True(t, IsUniqueViolation(err))
	})

	t.Run("Timeout", func(t *testing.T) {
		err := backendError(context.DeadlineExceeded, "")
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeExternalService))
		assert.Equal(t, "backend request timed out", err.Error())
	})

	t.Run("Other errors are external service errors", func(t *testing.T) {
		err := backendError(errors.New("connection refused"), "")
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeExternalService))
		assert.Equal(t, "connection refused", err.Error())
	})
}
