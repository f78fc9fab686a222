package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	appErrors "github.com/aaravmahajanofficial/shopdesk/internal/errors"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func TestParseAndValidate(t *testing.T) {
	validate := validator.New()

	tests := []struct {
		name       string
		body       string
		wantOK     bool
		wantStatus int
		wantCode   string
	}{
		{"Valid body", `{"email":"a@b.co","password":"secret1"}`, true, http.StatusOK, ""},
		{"Empty body", ``, false, http.StatusBadRequest, appErrors.ErrCodeBadRequest},
		{"Malformed JSON", `{"email":`, false, http.StatusBadRequest, appErrors.ErrCodeBadRequest},
		{"Short password", `{"email":"a@b.co","password":"123"}`, false, http.StatusBadRequest, appErrors.ErrCodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()

			var dest signup
			ok := ParseAndValidate(req, rr, &dest, validate)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantStatus, rr.Code)

			if tt.wantCode != "" {
				assert.Contains(t, rr.Body.String(), tt.wantCode)
			}
		})
	}
}

func TestParseID(t *testing.T) {
	id := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/products/"+id.String(), nil)
	req.SetPathValue("id", id.String())

	got, err := ParseID(req, "id")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	req.SetPathValue("id", "not-a-uuid")

	_, err = ParseID(req, "id")
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeBadRequest))
}

func TestQueryHelpers(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/orders?sort_asc=false&low_stock=5&start_date=2024-03-01&bad=zzz", nil)

	b, err := QueryBool(req, "sort_asc")
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.False(t, *b)

	n, err := QueryInt(req, "low_stock")
	require.NoError(t, err)
	assert.Equal(t, 5, *n)

	ts, err := QueryTime(req, "start_date")
	require.NoError(t, err)
	assert.True(t, ts.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))

	missing, err := QueryUUID(req, "category_id")
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = QueryInt(req, "bad")
	assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeValidation))

	_, err = QueryTime(req, "bad")
	assert.Error(t, err)
}

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "Hello", SanitizeText(`<b>Hello</b><script>alert(1)</script>`))
	assert.Equal(t, "Tom & Jerry", SanitizeText("  Tom & Jerry "))
	assert.Nil(t, SanitizeTextPtr(nil))

	addr := " <i>12 Main St</i> "
	assert.Equal(t, "12 Main St", *SanitizeTextPtr(&addr))
}
