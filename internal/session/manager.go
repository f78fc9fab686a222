package session

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/shopdesk/internal/api/middleware"
	"github.com/aaravmahajanofficial/shopdesk/internal/errors"
	"github.com/aaravmahajanofficial/shopdesk/internal/metrics"
	"github.com/aaravmahajanofficial/shopdesk/internal/models"
	repository "github.com/aaravmahajanofficial/shopdesk/internal/repositories"
	service "github.com/aaravmahajanofficial/shopdesk/internal/services"
	"golang.org/x/crypto/bcrypt"
)

const CookieName = "session"

type Options struct {
	TTL          time.Duration
	CookieSecure bool
}

type Manager struct {
	users     repository.UserRepository
	limiter   repository.RateLimitRepository
	blacklist repository.TokenBlacklist
	tokens    *service.Tokens
	accounts  service.UserService
	opts      Options
}

func NewManager(users repository.UserRepository, limiter repository.RateLimitRepository, blacklist repository.TokenBlacklist, tokens *service.Tokens, accounts service.UserService, opts Options) *Manager {
	return &Manager{users: users, limiter: limiter, blacklist: blacklist, tokens: tokens, accounts: accounts, opts: opts}
}

func bearerToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		token, ok := strings.CutPrefix(header, "Bearer ")
		if ok {
			return strings.TrimSpace(token)
		}

		return ""
	}

	if cookie, err := r.Cookie(CookieName); err == nil {
		return cookie.Value
	}

	return ""
}

// FromRequest builds the session for a request. Missing, invalid or revoked
// tokens give an anonymous session; a backend failure while checking a valid
// token gives a loading one.
func (m *Manager) FromRequest(r *http.Request) *Session {
	ctx := r.Context()
	logger := middleware.LoggerFromContext(ctx)

	token := bearerToken(r)
	if token == "" {
		return Anonymous()
	}

	claims, err := m.tokens.Parse(token, models.TokenPurposeSession)
	if err != nil {
		logger.Debug("Ignoring invalid session token", slog.Any("error", err))
		return Anonymous()
	}

	revoked, err := m.isRevoked(ctx, claims)
	if err != nil {
		logger.Warn("Failed to check token revocation", slog.Any("error", err))
		return Pending(token, claims)
	}
	if revoked {
		logger.Info("Rejected revoked session token", slog.String("user_id", claims.UserID.String()))
		return Anonymous()
	}

	profile, err := m.users.GetProfile(ctx, claims.UserID)
	if errors.HasCode(err, errors.ErrCodeNotFound) {
		logger.Warn("Session token for missing profile", slog.String("user_id", claims.UserID.String()))
		return Anonymous()
	}
	if err != nil {
		logger.Warn("Failed to load session profile", slog.String("user_id", claims.UserID.String()), slog.Any("error", err))
		return Pending(token, claims)
	}

	return &Session{CurrentUser: profile, Token: token, Claims: claims}
}

func (m *Manager) isRevoked(ctx context.Context, claims *models.Claims) (bool, error) {
	revoked, err := m.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil || revoked {
		return revoked, err
	}

	var issuedAt time.Time
	if claims.IssuedAt != nil {
		issuedAt = claims.IssuedAt.Time
	}

	return m.blacklist.IsUserRevoked(ctx, claims.UserID, issuedAt)
}

// Login checks the credentials, issues a token and loads the profile into sess.
func (m *Manager) Login(ctx context.Context, sess *Session, req *models.LoginRequest) (*models.LoginResponse, error) {
	logger := middleware.LoggerFromContext(ctx)

	sess.setLoading(true)
	defer sess.setLoading(false)

	email := strings.ToLower(strings.TrimSpace(req.Email))

	allowed, remaining, retryAfter, err := m.limiter.CheckLoginRateLimit(ctx, email)
	if err != nil {
		return nil, errors.ExternalServiceError("Failed to check login attempts").WithError(err)
	}
	if !allowed {
		metrics.LoginAttempts.WithLabelValues("rate_limited").Inc()
		return nil, errors.TooManyRequestsError(fmt.Sprintf("Too many login attempts, try again in %d seconds", retryAfter))
	}

	account, err := m.users.GetAccountByEmail(ctx, email)
	if errors.HasCode(err, errors.ErrCodeNotFound) {
		metrics.LoginAttempts.WithLabelValues("failed").Inc()
		logger.Info("Login for unknown email", slog.Int("remaining_attempts", remaining))

		return nil, errors.UnauthorizedError("Invalid email or password")
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		metrics.LoginAttempts.WithLabelValues("failed").Inc()
		logger.Info("Login with wrong password", slog.String("user_id", account.ID.String()), slog.Int("remaining_attempts", remaining))

		return nil, errors.UnauthorizedError("Invalid email or password")
	}

	if err := m.limiter.ResetLoginAttempts(ctx, email); err != nil {
		logger.Warn("Failed to reset login attempts", slog.Any("error", err))
	}

	token, claims, err := m.tokens.Issue(account.ID, account.Email, models.TokenPurposeSession, m.opts.TTL)
	if err != nil {
		return nil, err
	}

	profile, err := m.users.GetProfile(ctx, account.ID)
	if err != nil {
		logger.Error("Failed to load profile after login", slog.String("user_id", account.ID.String()), slog.Any("error", err))
		return nil, err
	}

	sess.CurrentUser = profile
	sess.Token = token
	sess.Claims = claims

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	logger.Info("User logged in", slog.String("user_id", account.ID.String()), slog.String("role", string(profile.Role)))

	return &models.LoginResponse{
		Token:     token,
		ExpiresIn: int(m.opts.TTL.Seconds()),
		Profile:   profile,
	}, nil
}

// Register signs a new customer up and logs them in.
func (m *Manager) Register(ctx context.Context, sess *Session, req *models.RegisterRequest) (*models.LoginResponse, error) {
	if _, err := m.accounts.Register(ctx, req); err != nil {
		return nil, err
	}

	return m.Login(ctx, sess, &models.LoginRequest{Email: req.Email, Password: req.Password})
}

// Logout revokes the session token until it would have expired.
func (m *Manager) Logout(ctx context.Context, sess *Session) error {
	if sess.Claims == nil {
		return nil
	}

	sess.setLoading(true)
	defer sess.setLoading(false)

	if err := m.blacklist.Revoke(ctx, sess.Claims.ID, service.Remaining(sess.Claims)); err != nil {
		middleware.LoggerFromContext(ctx).Error("Failed to revoke session token", slog.Any("error", err))
		return errors.ExternalServiceError("Failed to end session").WithError(err)
	}

	sess.CurrentUser = nil
	sess.Token = ""
	sess.Claims = nil

	return nil
}

func (m *Manager) SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.opts.TTL.Seconds()),
		HttpOnly: true,
		Secure:   m.opts.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (m *Manager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.opts.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Middleware resolves the session of every request and tags the request
// logger with the user id.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := m.FromRequest(r)

		ctx := WithSession(r.Context(), sess)
		if sess.IsAuthenticated() {
			logger := middleware.LoggerFromContext(ctx).With(slog.String("user_id", sess.CurrentUser.ID.String()))
			ctx = middleware.WithLogger(ctx, logger)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
