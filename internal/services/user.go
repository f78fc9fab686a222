package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/shopdesk/internal/api/middleware"
	"github.com/aaravmahajanofficial/shopdesk/internal/errors"
	"github.com/aaravmahajanofficial/shopdesk/internal/models"
	repository "github.com/aaravmahajanofficial/shopdesk/internal/repositories"
	"github.com/aaravmahajanofficial/shopdesk/internal/utils"
	"github.com/aaravmahajanofficial/shopdesk/pkg/sendgrid"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.Profile, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	ListUsers(ctx context.Context, params models.ProfileListParams) ([]models.Profile, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req *models.UpdateProfileRequest) (*models.Profile, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role models.Role) (*models.Profile, error)
	Stats(ctx context.Context) (*models.UserStats, error)
	ChangePassword(ctx context.Context, id uuid.UUID, password string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
}

// UserSettings holds the token lifetimes and the link mailed for password resets.
type UserSettings struct {
	SessionTTL time.Duration
	ResetTTL   time.Duration
	ResetURL   string
}

type userService struct {
	repo      repository.UserRepository
	blacklist repository.TokenBlacklist
	tokens    *Tokens
	mailer    sendgrid.EmailService
	settings  UserSettings
}

func NewUserService(repo repository.UserRepository, blacklist repository.TokenBlacklist, tokens *Tokens, mailer sendgrid.EmailService, settings UserSettings) UserService {
	return &userService{repo: repo, blacklist: blacklist, tokens: tokens, mailer: mailer, settings: settings}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates the account and then its customer profile. A failed
// profile insert removes the account again.
func (s *userService) Register(ctx context.Context, req *models.RegisterRequest) (*models.Profile, error) {
	logger := middleware.LoggerFromContext(ctx)

	email := normalizeEmail(req.Email)

	_, err := s.repo.GetAccountByEmail(ctx, email)
	if err == nil {
		return nil, errors.DuplicateEntryError("Email already registered")
	}
	if !errors.HasCode(err, errors.ErrCodeNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.InternalError("Failed to hash password").WithError(err)
	}

	account := &models.Account{Email: email, PasswordHash: string(hash)}
	if err := s.repo.CreateAccount(ctx, account); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, errors.DuplicateEntryError("Email already registered").WithError(err)
		}

		return nil, err
	}

	profile := &models.Profile{
		ID:       account.ID,
		Email:    email,
		FullName: utils.SanitizeText(req.FullName),
		Phone:    utils.SanitizeText(req.Phone),
		Address:  utils.SanitizeText(req.Address),
		Role:     models.RoleCustomer,
	}

	if err := s.repo.CreateProfile(ctx, profile); err != nil {
		logger.Error("Failed to create profile, removing account", slog.String("user_id", account.ID.String()), slog.Any("error", err))

		if delErr := s.repo.DeleteAccount(ctx, account.ID); delErr != nil {
			logger.Error("Failed to remove account without profile", slog.String("user_id", account.ID.String()), slog.Any("error", delErr))
		}

		return nil, err
	}

	logger.Info("User registered", slog.String("user_id", account.ID.String()))

	return profile, nil
}

func (s *userService) GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	return s.repo.GetProfile(ctx, id)
}

func (s *userService) ListUsers(ctx context.Context, params models.ProfileListParams) ([]models.Profile, error) {
	return s.repo.ListProfiles(ctx, params)
}

func (s *userService) UpdateProfile(ctx context.Context, id uuid.UUID, req *models.UpdateProfileRequest) (*models.Profile, error) {
	profile, err := s.repo.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		profile.FullName = utils.SanitizeText(*req.FullName)
	}
	if req.Phone != nil {
		profile.Phone = utils.SanitizeText(*req.Phone)
	}
	if req.Address != nil {
		profile.Address = utils.SanitizeText(*req.Address)
	}

	if err := s.repo.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

func (s *userService) UpdateRole(ctx context.Context, id uuid.UUID, role models.Role) (*models.Profile, error) {
	switch role {
	case models.RoleAdmin, models.RoleStaff, models.RoleCustomer:
	default:
		return nil, errors.ValidationError("Unknown role: " + string(role))
	}

	return s.repo.UpdateRole(ctx, id, role)
}

func (s *userService) Stats(ctx context.Context) (*models.UserStats, error) {
	counts, err := s.repo.CountByRole(ctx)
	if err != nil {
		return nil, err
	}

	stats := &models.UserStats{Roles: map[models.Role]int{
		models.RoleAdmin:    0,
		models.RoleStaff:    0,
		models.RoleCustomer: 0,
	}}

	for role, n := range counts {
		stats.Roles[role] += n
		stats.Total += n
	}

	return stats, nil
}

func (s *userService) ChangePassword(ctx context.Context, id uuid.UUID, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return errors.InternalError("Failed to hash password").WithError(err)
	}

	return s.repo.UpdatePassword(ctx, id, string(hash))
}

// RequestPasswordReset mails a reset link. Unknown addresses succeed silently.
func (s *userService) RequestPasswordReset(ctx context.Context, email string) error {
	logger := middleware.LoggerFromContext(ctx)

	account, err := s.repo.GetAccountByEmail(ctx, normalizeEmail(email))
	if errors.HasCode(err, errors.ErrCodeNotFound) {
		logger.Info("Password reset requested for unknown email")
		return nil
	}
	if err != nil {
		return err
	}

	token, _, err := s.tokens.Issue(account.ID, account.Email, models.TokenPurposeReset, s.settings.ResetTTL)
	if err != nil {
		return err
	}

	if s.mailer == nil {
		logger.Warn("Email delivery is not configured, reset link not sent", slog.String("user_id", account.ID.String()))
		return nil
	}

	link := s.settings.ResetURL + "?token=" + url.QueryEscape(token)

	err = s.mailer.Send(ctx, &models.EmailNotificationRequest{
		To:      account.Email,
		Subject: "Reset your password",
		Content: fmt.Sprintf("Use the link below to choose a new password. It expires in %s.\n\n%s\n", s.settings.ResetTTL, link),
	})
	if err != nil {
		logger.Error("Failed to send password reset email", slog.String("user_id", account.ID.String()), slog.Any("error", err))
		return errors.ThirdPartyError("Failed to send password reset email").WithError(err)
	}

	return nil
}

// ResetPassword consumes a reset token, stores the new password and signs the
// user out everywhere.
func (s *userService) ResetPassword(ctx context.Context, token, password string) error {
	claims, err := s.tokens.Parse(token, models.TokenPurposeReset)
	if err != nil {
		return err
	}

	used, err := s.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return errors.ExternalServiceError("Failed to check reset token").WithError(err)
	}
	if used {
		return errors.UnauthorizedError("Reset token already used")
	}

	if err := s.ChangePassword(ctx, claims.UserID, password); err != nil {
		return err
	}

	logger := middleware.LoggerFromContext(ctx)

	if err := s.blacklist.Revoke(ctx, claims.ID, Remaining(claims)); err != nil {
		logger.Warn("Failed to revoke used reset token", slog.Any("error", err))
	}

	if err := s.blacklist.RevokeUser(ctx, claims.UserID, s.settings.SessionTTL); err != nil {
		logger.Warn("Failed to revoke existing sessions", slog.String("user_id", claims.UserID.String()), slog.Any("error", err))
	}

	return nil
}
