package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	appErrors "github.com/aaravmahajanofficial/shopdesk/internal/errors"
	"github.com/aaravmahajanofficial/shopdesk/internal/models"
	"github.com/aaravmahajanofficial/shopdesk/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/shopdesk/internal/services"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testSettings = service.UserSettings{
	SessionTTL: 24 * time.Hour,
	ResetTTL:   30 * time.Minute,
	ResetURL:   "https://shop.example.com/reset-password",
}

type userFixture struct {
	svc       service.UserService
	repo      *mocks.UserRepository
	blacklist *mocks.TokenBlacklist
	mailer    *mocks.EmailService
	tokens    *service.Tokens
}

func setupUserServiceTest(t *testing.T) userFixture {
	f := userFixture{
		repo:      mocks.NewUserRepository(t),
		blacklist: mocks.NewTokenBlacklist(t),
		mailer:    mocks.NewEmailService(t),
		tokens:    service.NewTokens([]byte("test-key")),
	}
	f.svc = service.NewUserService(f.repo, f.blacklist, f.tokens, f.mailer, testSettings)

	return f
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()
	req := &models.RegisterRequest{
		Email:    "Jane@Example.com",
		Password: "secret1",
		FullName: "Jane Doe",
	}

	t.Run("Success - account then customer profile", func(t *testing.T) {
		f := setupUserServiceTest(t)
		id := uuid.New()

		f.repo.On("GetAccountByEmail", ctx, "jane@example.com").Return(nil, appErrors.NotFoundError("Account not found")).Once()
		f.repo.On("CreateAccount", ctx, mock.MatchedBy(func(a *models.Account) bool {
			return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte("secret1")) == nil
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*models.Account).ID = id
		}).Return(nil).Once()
		f.repo.On("CreateProfile", ctx, mock.MatchedBy(func(p *models.Profile) bool {
			return p.ID == id && p.Role == models.RoleCustomer
		})).Return(nil).Once()

		profile, err := f.svc.Register(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, id, profile.ID)
		assert.Equal(t, "jane@example.com", profile.Email)
		assert.Equal(t, models.RoleCustomer, profile.Role)
	})

	t.Run("Failure - duplicate email", func(t *testing.T) {
		f := setupUserServiceTest(t)

		f.repo.On("GetAccountByEmail", ctx, "jane@example.com").Return(&models.Account{ID: uuid.New()}, nil).Once()

		_, err := f.svc.Register(ctx, req)

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeDuplicateEntry))
	})

	t.Run("Failure - unique violation on insert", func(t *testing.T) {
		f := setupUserServiceTest(t)

		f.repo.On("GetAccountByEmail", ctx, "jane@example.com").Return(nil, appErrors.NotFoundError("Account not found")).Once()
		f.repo.On("CreateAccount", ctx, mock.Anything).
			Return(appErrors.ExternalServiceError("duplicate key").WithError(&pq.Error{Code: "23505"})).Once()

		_, err := f.svc.Register(ctx, req)

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeDuplicateEntry))
	})

	t.Run("Failure - profile insert removes the account", func(t *testing.T) {
		f := setupUserServiceTest(t)
		id := uuid.New()
		profileErr := appErrors.ExternalServiceError("profiles insert failed")

		f.repo.On("GetAccountByEmail", ctx, "jane@example.com").Return(nil, appErrors.NotFoundError("Account not found")).Once()
		f.repo.On("CreateAccount", ctx, mock.Anything).Run(func(args mock.Arguments) {
			args.Get(1).(*models.Account).ID = id
		}).Return(nil).Once()
		f.repo.On("CreateProfile", ctx, mock.Anything).Return(profileErr).Once()
		f.repo.On("DeleteAccount", ctx, id).Return(nil).Once()

		_, err := f.svc.Register(ctx, req)

		assert.ErrorIs(t, err, profileErr)
	})

	t.Run("Failure - lookup error", func(t *testing.T) {
		f := setupUserServiceTest(t)
		lookupErr := appErrors.ExternalServiceError("backend request timed out")

		f.repo.On("GetAccountByEmail", ctx, "jane@example.com").Return(nil, lookupErr).Once()

		_, err := f.svc.Register(ctx, req)

		assert.ErrorIs(t, err, lookupErr)
	})
}

func TestUserService_Profiles(t *testing.T) {
	ctx := context.Background()
	f := setupUserServiceTest(t)
	id := uuid.New()

	f.repo.On("GetProfile", ctx, id).Return(&models.Profile{ID: id, FullName: "Jane", Phone: "1"}, nil).Once()
	f.repo.On("UpdateProfile", ctx, mock.MatchedBy(func(p *models.Profile) bool {
		return p.FullName == "Jane" && p.Phone == "555" && p.Address == "1 Main St"
	})).Return(nil).Once()

	profile, err := f.svc.UpdateProfile(ctx, id, &models.UpdateProfileRequest{Phone: ptr("555"), Address: ptr("<p>1 Main St</p>")})
	require.NoError(t, err)
	assert.Equal(t, "1 Main St", profile.Address)

	f.repo.On("UpdateRole", ctx, id, models.RoleStaff).Return(&models.Profile{ID: id, Role: models.RoleStaff}, nil).Once()

	profile, err = f.svc.UpdateRole(ctx, id, models.RoleStaff)
	require.NoError(t, err)
	assert.Equal(t, models.RoleStaff, profile.Role)

	_, err = f.svc.UpdateRole(ctx, id, "owner")
	assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeValidation))
}

func TestUserService_Stats(t *testing.T) {
	ctx := context.Background()
	f := setupUserServiceTest(t)

	f.repo.On("CountByRole", ctx).Return(map[models.Role]int{models.RoleAdmin: 1, models.RoleCustomer: 7}, nil).Once()

	stats, err := f.svc.Stats(ctx)

	require.NoError(t, err)
	assert.Equal(t, 8, stats.Total)
	assert.Equal(t, 0, stats.Roles[models.RoleStaff])
	assert.Equal(t, 7, stats.Roles[models.RoleCustomer])
}

func TestUserService_PasswordReset(t *testing.T) {
	ctx := context.Background()
	account := &models.Account{ID: uuid.New(), Email: "jane@example.com"}

	t.Run("Unknown email succeeds silently", func(t *testing.T) {
		f := setupUserServiceTest(t)

		f.repo.On("GetAccountByEmail", ctx, "ghost@example.com").Return(nil, appErrors.NotFoundError("Account not found")).Once()

		require.NoError(t, f.svc.RequestPasswordReset(ctx, "ghost@example.com"))
	})

	t.Run("Mail failure is reported", func(t *testing.T) {
		f := setupUserServiceTest(t)

		f.repo.On("GetAccountByEmail", ctx, account.Email).Return(account, nil).Once()
		f.mailer.On("Send", ctx, mock.Anything).Return(errors.New("status code: 500")).Once()

		err := f.svc.RequestPasswordReset(ctx, account.Email)

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeThirdPartyError))
	})

	t.Run("Mailed token resets the password once", func(t *testing.T) {
		f := setupUserServiceTest(t)

		var link string

		f.repo.On("GetAccountByEmail", ctx, account.Email).Return(account, nil).Once()
		f.mailer.On("Send", ctx, mock.MatchedBy(func(r *models.EmailNotificationRequest) bool {
			return r.To == account.Email
		})).Run(func(args mock.Arguments) {
			content := args.Get(1).(*models.EmailNotificationRequest).Content
			link = content[strings.Index(content, testSettings.ResetURL):]
		}).Return(nil).Once()

		require.NoError(t, f.svc.RequestPasswordReset(ctx, account.Email))

		token := strings.TrimSpace(strings.TrimPrefix(link, testSettings.ResetURL+"?token="))
		claims, err := f.tokens.Parse(token, models.TokenPurposeReset)
		require.NoError(t, err)
		assert.Equal(t, account.ID, claims.UserID)

		f.blacklist.On("IsRevoked", ctx, claims.ID).Return(false, nil).Once()
		f.repo.On("UpdatePassword", ctx, account.ID, mock.AnythingOfType("string")).Return(nil).Once()
		f.blacklist.On("Revoke", ctx, claims.ID, mock.AnythingOfType("time.Duration")).Return(nil).Once()
		f.blacklist.On("RevokeUser", ctx, account.ID, testSettings.SessionTTL).Return(nil).Once()

		require.NoError(t, f.svc.ResetPassword(ctx, token, "newsecret"))

		f.blacklist.On("IsRevoked", ctx, claims.ID).Return(true, nil).Once()

		err = f.svc.ResetPassword(ctx, token, "again1")
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeUnauthorized))
	})

	t.Run("Session token cannot reset a password", func(t *testing.T) {
		f := setupUserServiceTest(t)

		token, _, err := f.tokens.Issue(account.ID, account.Email, models.TokenPurposeSession, time.Hour)
		require.NoError(t, err)

		err = f.svc.ResetPassword(ctx, token, "newsecret")
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeUnauthorized))
	})
}
