package session_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	appErrors "github.com/aaravmahajanofficial/shopdesk/internal/errors"
	"github.com/aaravmahajanofficial/shopdesk/internal/models"
	"github.com/aaravmahajanofficial/shopdesk/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/shopdesk/internal/services"
	"github.com/aaravmahajanofficial/shopdesk/internal/session"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	manager   *session.Manager
	users     *mocks.UserRepository
	limiter   *mocks.RateLimitRepository
	blacklist *mocks.TokenBlacklist
	tokens    *service.Tokens
}

func setup(t *testing.T) fixture {
	f := fixture{
		users:     mocks.NewUserRepository(t),
		limiter:   mocks.NewRateLimitRepository(t),
		blacklist: mocks.NewTokenBlacklist(t),
		tokens:    service.NewTokens([]byte("test-key")),
	}
	f.manager = session.NewManager(f.users, f.limiter, f.blacklist, f.tokens, nil, session.Options{TTL: time.Hour})

	return f
}

func account(t *testing.T, password string) *models.Account {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return &models.Account{ID: uuid.New(), Email: "jane@example.com", PasswordHash: string(hash)}
}

func TestManager_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := setup(t)
		acc := account(t, "secret1")
		profile := &models.Profile{ID: acc.ID, Email: acc.Email, Role: models.RoleAdmin}

		f.limiter.On("CheckLoginRateLimit", ctx, "jane@example.com").Return(true, 4, 0, nil).Once()
		f.users.On("GetAccountByEmail", ctx, "jane@example.com").Return(acc, nil).Once()
		f.limiter.On("ResetLoginAttempts", ctx, "jane@example.com").Return(nil).Once()
		f.users.On("GetProfile", ctx, acc.ID).Return(profile, nil).Once()

		sess := session.Anonymous()
		resp, err := f.manager.Login(ctx, sess, &models.LoginRequest{Email: " Jane@example.com", Password: "secret1"})

		require.NoError(t, err)
		assert.Equal(t, 3600, resp.ExpiresIn)
		assert.Equal(t, profile, resp.Profile)
		assert.True(t, sess.IsAdmin())
		assert.False(t, sess.Loading())

		claims, err := f.tokens.Parse(resp.Token, models.TokenPurposeSession)
		require.NoError(t, err)
		assert.Equal(t, acc.ID, claims.UserID)
	})

	t.Run("Wrong password", func(t *testing.T) {
		f := setup(t)
		acc := account(t, "secret1")

		f.limiter.On("CheckLoginRateLimit", ctx, "jane@example.com").Return(true, 3, 0, nil).Once()
		f.users.On("GetAccountByEmail", ctx, "jane@example.com").Return(acc, nil).Once()

		sess := session.Anonymous()
		_, err := f.manager.Login(ctx, sess, &models.LoginRequest{Email: "jane@example.com", Password: "nope"})

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeUnauthorized))
		assert.False(t, sess.IsAuthenticated())
		assert.False(t, sess.Loading())
	})

	t.Run("Unknown email", func(t *testing.T) {
		f := setup(t)

		f.limiter.On("CheckLoginRateLimit", ctx, "ghost@example.com").Return(true, 3, 0, nil).Once()
		f.users.On("GetAccountByEmail", ctx, "ghost@example.com").Return(nil, appErrors.NotFoundError("Account not found")).Once()

		_, err := f.manager.Login(ctx, session.Anonymous(), &models.LoginRequest{Email: "ghost@example.com", Password: "x"})

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeUnauthorized))
	})

	t.Run("Rate limited", func(t *testing.T) {
		f := setup(t)

		f.limiter.On("CheckLoginRateLimit", ctx, "jane@example.com").Return(false, 0, 12, nil).Once()

		_, err := f.manager.Login(ctx, session.Anonymous(), &models.LoginRequest{Email: "jane@example.com", Password: "x"})

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeTooManyRequests, appErr.Code)
		assert.Contains(t, appErr.Message, "12 seconds")
	})
}

func request(token string, cookie bool) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/store/products", nil)
	if token == "" {
		return r
	}

	if cookie {
		r.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	} else {
		r.Header.Set("Authorization", "Bearer "+token)
	}

	return r
}

func TestManager_FromRequest(t *testing.T) {
	userID := uuid.New()
	profile := &models.Profile{ID: userID, Role: models.RoleCustomer}

	issue := func(t *testing.T, f fixture, purpose string) (string, *models.Claims) {
		token, claims, err := f.tokens.Issue(userID, "jane@example.com", purpose, time.Hour)
		require.NoError(t, err)

		return token, claims
	}

	t.Run("No token is anonymous", func(t *testing.T) {
		f := setup(t)

		sess := f.manager.FromRequest(request("", false))

		assert.False(t, sess.IsAuthenticated())
		assert.False(t, sess.Loading())
	})

	t.Run("Bearer token", func(t *testing.T) {
		f := setup(t)
		token, claims := issue(t, f, models.TokenPurposeSession)

		f.blacklist.On("IsRevoked", mock.Anything, claims.ID).Return(false, nil).Once()
		f.blacklist.On("IsUserRevoked", mock.Anything, userID, mock.AnythingOfType("time.Time")).Return(false, nil).Once()
		f.users.On("GetProfile", mock.Anything, userID).Return(profile, nil).Once()

		sess := f.manager.FromRequest(request(token, false))

		assert.True(t, sess.IsAuthenticated())
		assert.Equal(t, userID.String(), sess.Owner())
		assert.False(t, sess.IsAdmin())
	})

	t.Run("Cookie token", func(t *testing.T) {
		f := setup(t)
		token, claims := issue(t, f, models.TokenPurposeSession)

		f.blacklist.On("IsRevoked", mock.Anything, claims.ID).Return(false, nil).Once()
		f.blacklist.On("IsUserRevoked", mock.Anything, userID, mock.Anything).Return(false, nil).Once()
		f.users.On("GetProfile", mock.Anything, userID).Return(profile, nil).Once()

		assert.True(t, f.manager.FromRequest(request(token, true)).IsAuthenticated())
	})

	t.Run("Reset token is not a session", func(t *testing.T) {
		f := setup(t)
		token, _ := issue(t, f, models.TokenPurposeReset)

		assert.False(t, f.manager.FromRequest(request(token, false)).IsAuthenticated())
	})

	t.Run("Revoked token", func(t *testing.T) {
		f := setup(t)
		token, claims := issue(t, f, models.TokenPurposeSession)

		f.blacklist.On("IsRevoked", mock.Anything, claims.ID).Return(true, nil).Once()

		assert.False(t, f.manager.FromRequest(request(token, false)).IsAuthenticated())
	})

	t.Run("Profile backend failure leaves the session loading", func(t *testing.T) {
		f := setup(t)
		token, claims := issue(t, f, models.TokenPurposeSession)

		f.blacklist.On("IsRevoked", mock.Anything, claims.ID).Return(false, nil).Once()
		f.blacklist.On("IsUserRevoked", mock.Anything, userID, mock.Anything).Return(false, nil).Once()
		f.users.On("GetProfile", mock.Anything, userID).Return(nil, appErrors.ExternalServiceError("backend request timed out")).Once()

		sess := f.manager.FromRequest(request(token, false))

		assert.False(t, sess.IsAuthenticated())
		assert.True(t, sess.Loading())
	})

	t.Run("Blacklist failure leaves the session loading", func(t *testing.T) {
		f := setup(t)
		token, claims := issue(t, f, models.TokenPurposeSession)

		f.blacklist.On("IsRevoked", mock.Anything, claims.ID).Return(false, errors.New("redis down")).Once()

		assert.True(t, f.manager.FromRequest(request(token, false)).Loading())
	})
}

func TestManager_Logout(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	token, claims, err := f.tokens.Issue(uuid.New(), "jane@example.com", models.TokenPurposeSession, time.Hour)
	require.NoError(t, err)

	sess := &session.Session{CurrentUser: &models.Profile{ID: claims.UserID}, Token: token, Claims: claims}

	f.blacklist.On("Revoke", ctx, claims.ID, mock.MatchedBy(func(ttl time.Duration) bool {
		return ttl > 59*time.Minute && ttl <= time.Hour
	})).Return(nil).Once()

	require.NoError(t, f.manager.Logout(ctx, sess))
	assert.False(t, sess.IsAuthenticated())

	require.NoError(t, f.manager.Logout(ctx, session.Anonymous()))
}

func TestMiddlewareStoresSession(t *testing.T) {
	f := setup(t)

	var got *session.Session
	handler := f.manager.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = session.FromContext(r.Context())
	}))

	handler.ServeHTTP(httptest.NewRecorder(), request("not-a-jwt", false))

	require.NotNil(t, got)
	assert.False(t, got.IsAuthenticated())
}

func TestCookies(t *testing.T) {
	f := setup(t)

	rr := httptest.NewRecorder()
	f.manager.SetCookie(rr, "tok")
	f.manager.ClearCookie(rr)

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 2)
	assert.Equal(t, "tok", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, 3600, cookies[0].MaxAge)
	assert.Equal(t, -1, cookies[1].MaxAge)
}
