package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/shopdesk/internal/api/middleware"
	"github.com/aaravmahajanofficial/shopdesk/internal/models"
	service "github.com/aaravmahajanofficial/shopdesk/internal/services"
	"github.com/aaravmahajanofficial/shopdesk/internal/session"
	"github.com/aaravmahajanofficial/shopdesk/internal/utils"
	"github.com/aaravmahajanofficial/shopdesk/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type UserHandler struct {
	service   service.UserService
	validator *validator.Validate
}

func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{service: service, validator: validator.New()}
}

// ListUsers godoc
//
//	@Summary	List user profiles
//	@Tags		Users
//	@Produce	json
//	@Param		role	query		string	false	"admin, staff or customer"
//	@Param		search	query		string	false	"Matches full name or phone"
//	@Param		sort	query		string	false	"full_name, role or created_at"
//	@Param		order	query		string	false	"asc or desc"
//	@Success	200		{object}	response.APIResponse{data=[]models.Profile}
//	@Failure	502		{object}	response.ErrorResponse
//	@Security	BearerAuth
//	@Router		/users [get]
func (h *UserHandler) ListUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		q := r.URL.Query()
		params := models.ProfileListParams{
			Role:   models.Role(q.Get("role")),
			Search: q.Get("search"),
		}
		params.SortBy, params.SortAsc = sortParams(r)

		users, err := h.service.ListUsers(r.Context(), params)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to list users", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		render(w, r, http.StatusOK, users)
	}
}

// Stats godoc
//
//	@Summary	User counts per role
//	@Tags		Users
//	@Produce	json
//	@Success	200	{object}	response.APIResponse{data=models.UserStats}
//	@Failure	502	{object}	response.ErrorResponse
//	@Security	BearerAuth
//	@Router		/users/stats [get]
func (h *UserHandler) Stats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		stats, err := h.service.Stats(r.Context())
		if err != nil {
			response.Error(w, err)
			return
		}

		render(w, r, http.StatusOK, stats)
	}
}

// GetUser godoc
//
//	@Summary	Get a user profile
//	@Tags		Users
//	@Produce	json
//	@Param		id	path		string	true	"User ID"
//	@Success	200	{object}	response.APIResponse{data=models.Profile}
//	@Failure	400	{object}	response.ErrorResponse
//	@Failure	404	{object}	response.ErrorResponse
//	@Security	BearerAuth
//	@Router		/users/{id} [get]
func (h *UserHandler) GetUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		profile, err := h.service.GetProfile(r.Context(), id)
		if err != nil {
			response.Error(w, err)
			return
		}

		render(w, r, http.StatusOK, profile)
	}
}

// UpdateRole godoc
//
//	@Summary	Change the role of a user
//	@Tags		Users
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"User ID"
//	@Param		role	body		models.UpdateRoleRequest	true	"New role"
//	@Success	200		{object}	response.APIResponse{data=models.Profile}
//	@Failure	400		{object}	response.ErrorResponse
//	@Failure	404		{object}	response.ErrorResponse
//	@Security	BearerAuth
//	@Router		/users/{id}/role [patch]
func (h *UserHandler) UpdateRole() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateRoleRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		profile, err := h.service.UpdateRole(r.Context(), id, req.Role)
		if err != nil {
			logger.Error("Failed to update role", slog.String("target_id", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Role updated", slog.String("target_id", id.String()), slog.String("role", string(profile.Role)))
		render(w, r, http.StatusOK, profile)
	}
}

// GetProfile godoc
//
//	@Summary	The signed-in user's profile
//	@Tags		Storefront
//	@Produce	json
//	@Success	200	{object}	response.APIResponse{data=models.Profile}
//	@Security	BearerAuth
//	@Router		/store/profile [get]
func (h *UserHandler) GetProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sess := session.FromContext(r.Context())

		profile, err := h.service.GetProfile(r.Context(), sess.CurrentUser.ID)
		if err != nil {
			response.Error(w, err)
			return
		}

		render(w, r, http.StatusOK, profile)
	}
}

// UpdateProfile godoc
//
//	@Summary	Update the signed-in user's profile
//	@Tags		Storefront
//	@Accept		json
//	@Produce	json
//	@Param		profile	body		models.UpdateProfileRequest	true	"Changed fields"
//	@Success	200		{object}	response.APIResponse{data=models.Profile}
//	@Failure	400		{object}	response.ErrorResponse
//	@Security	BearerAuth
//	@Router		/store/profile [put]
func (h *UserHandler) UpdateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sess := session.FromContext(r.Context())

		var req models.UpdateProfileRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		profile, err := h.service.UpdateProfile(r.Context(), sess.CurrentUser.ID, &req)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to update profile", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		// keep the shell's user block in step for the rest of this request
		sess.CurrentUser = profile

		render(w, r, http.StatusOK, profile)
	}
}

// ChangePassword godoc
//
//	@Summary	Change the signed-in user's password
//	@Tags		Storefront
//	@Accept		json
//	@Produce	json
//	@Param		password	body		models.ChangePasswordRequest	true	"New password"
//	@Success	200			{object}	response.APIResponse
//	@Failure	400			{object}	response.ErrorResponse
//	@Security	BearerAuth
//	@Router		/store/password [post]
func (h *UserHandler) ChangePassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())
		sess := session.FromContext(r.Context())

		var req models.ChangePasswordRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if err := h.service.ChangePassword(r.Context(), sess.CurrentUser.ID, req.Password); err != nil {
			logger.Error("Failed to change password", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Password changed")
		response.Success(w, http.StatusOK, map[string]string{"message": "Password updated"})
	}
}
