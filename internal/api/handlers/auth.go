package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/shopdesk/internal/api/guards"
	"github.com/aaravmahajanofficial/shopdesk/internal/api/middleware"
	"github.com/aaravmahajanofficial/shopdesk/internal/models"
	service "github.com/aaravmahajanofficial/shopdesk/internal/services"
	"github.com/aaravmahajanofficial/shopdesk/internal/session"
	"github.com/aaravmahajanofficial/shopdesk/internal/utils"
	"github.com/aaravmahajanofficial/shopdesk/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type AuthHandler struct {
	sessions  *session.Manager
	users     service.UserService
	validator *validator.Validate
}

func NewAuthHandler(sessions *session.Manager, users service.UserService) *AuthHandler {
	return &AuthHandler{sessions: sessions, users: users, validator: validator.New()}
}

type authPage struct {
	Redirect string `json:"redirect,omitempty"`
}

// LoginPage godoc
//
//	@Summary	Login screen
//	@Tags		Auth
//	@Produce	json
//	@Param		redirect	query		string	false	"Path to return to after login"
//	@Success	200			{object}	response.APIResponse
//	@Success	302			"Already signed in"
//	@Router		/login [get]
func (h *AuthHandler) LoginPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render(w, r, http.StatusOK, authPage{Redirect: safeRedirect(r.URL.Query().Get("redirect"), "")})
	}
}

// Login godoc
//
//	@Summary		Sign in
//	@Description	Checks the credentials, sets the session cookie and returns the bearer token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			credentials	body		models.LoginRequest		true	"Email and password"
//	@Param			redirect	query		string					false	"Path to return to after login"
//	@Success		200			{object}	models.LoginResponse
//	@Failure		400			{object}	response.ErrorResponse
//	@Failure		401			{object}	response.ErrorResponse	"Invalid email or password"
//	@Failure		429			{object}	response.ErrorResponse	"Too many attempts"
//	@Router			/login [post]
func (h *AuthHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.LoginRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid login input")
			return
		}

		sess := session.FromContext(r.Context())

		resp, err := h.sessions.Login(r.Context(), sess, &req)
		if err != nil {
			logger.Warn("Login failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		h.sessions.SetCookie(w, resp.Token)
		resp.Redirect = safeRedirect(r.URL.Query().Get("redirect"), guards.HomeFor(sess))

		response.Success(w, http.StatusOK, resp)
	}
}

func (h *AuthHandler) RegisterPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render(w, r, http.StatusOK, authPage{})
	}
}

// Register godoc
//
//	@Summary		Create a customer account
//	@Description	Creates the account and its profile, then signs the new user in.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			user	body		models.RegisterRequest	true	"New account"
//	@Success		201		{object}	models.LoginResponse
//	@Failure		400		{object}	response.ErrorResponse
//	@Failure		409		{object}	response.ErrorResponse	"Email already registered"
//	@Failure		502		{object}	response.ErrorResponse
//	@Router			/register [post]
func (h *AuthHandler) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.RegisterRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid registration input")
			return
		}

		sess := session.FromContext(r.Context())

		resp, err := h.sessions.Register(r.Context(), sess, &req)
		if err != nil {
			logger.Error("Registration failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		h.sessions.SetCookie(w, resp.Token)
		resp.Redirect = guards.HomeFor(sess)

		response.Success(w, http.StatusCreated, resp)
	}
}

// Logout godoc
//
//	@Summary	Sign out
//	@Tags		Auth
//	@Produce	json
//	@Success	200	{object}	response.APIResponse
//	@Failure	502	{object}	response.ErrorResponse
//	@Security	BearerAuth
//	@Router		/logout [post]
func (h *AuthHandler) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		if err := h.sessions.Logout(r.Context(), session.FromContext(r.Context())); err != nil {
			response.Error(w, err)
			return
		}

		h.sessions.ClearCookie(w)
		logger.Info("User logged out")

		response.Success(w, http.StatusOK, authPage{Redirect: "/login"})
	}
}

// RequestPasswordReset godoc
//
//	@Summary		Email a password reset link
//	@Description	Always accepted for well-formed addresses so that accounts cannot be probed.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		models.PasswordResetRequest	true	"Account email"
//	@Success		202		{object}	response.APIResponse
//	@Failure		400		{object}	response.ErrorResponse
//	@Router			/password/reset [post]
func (h *AuthHandler) RequestPasswordReset() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.PasswordResetRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if err := h.users.RequestPasswordReset(r.Context(), req.Email); err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusAccepted, map[string]string{"message": "If the address is registered a reset link is on its way"})
	}
}

// ConfirmPasswordReset godoc
//
//	@Summary	Set a new password with a reset token
//	@Tags		Auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		models.PasswordResetConfirmRequest	true	"Token and new password"
//	@Success	200		{object}	response.APIResponse
//	@Failure	400		{object}	response.ErrorResponse
//	@Failure	401		{object}	response.ErrorResponse	"Invalid, expired or used token"
//	@Router		/password/reset/confirm [post]
func (h *AuthHandler) ConfirmPasswordReset() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.PasswordResetConfirmRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if err := h.users.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
			logger.Warn("Password reset failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Password reset completed")
		response.Success(w, http.StatusOK, authPage{Redirect: "/login"})
	}
}
