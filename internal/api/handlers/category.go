package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/shopdesk/internal/api/middleware"
	"github.com/aaravmahajanofficial/shopdesk/internal/models"
	service "github.com/aaravmahajanofficial/shopdesk/internal/services"
	"github.com/aaravmahajanofficial/shopdesk/internal/utils"
	"github.com/aaravmahajanofficial/shopdesk/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CategoryHandler struct {
	service   service.CategoryService
	validator *validator.Validate
}

func NewCategoryHandler(service service.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service, validator: validator.New()}
}

// ListCategories godoc
//
//	@Summary	List categories
//	@Tags		Categories
//	@Produce	json
//	@Success	200	{object}	response.APIResponse{data=[]models.Category}
//	@Failure	502	{object}	response.ErrorResponse
//	@Security	BearerAuth
//	@Router		/categories [get]
func (h *CategoryHandler) ListCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		categories, err := h.service.ListCategories(r.Context())
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to list categories", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		render(w, r, http.StatusOK, categories)
	}
}

// GetCategory godoc
//
//	@Summary	Get a category
//	@Tags		Categories
//	@Produce	json
//	@Param		id	path		string	true	"Category ID"
//	@Success	200	{object}	response.APIResponse{data=models.Category}
//	@Failure	404	{object}	response.ErrorResponse
//	@Security	BearerAuth
//	@Router		/categories/{id} [get]
func (h *CategoryHandler) GetCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		category, err := h.service.GetCategory(r.Context(), id)
		if err != nil {
			response.Error(w, err)
			return
		}

		render(w, r, http.StatusOK, category)
	}
}

// CreateCategory godoc
//
//	@Summary	Create a category
//	@Tags		Categories
//	@Accept		json
//	@Produce	json
//	@Param		category	body		models.CreateCategoryRequest	true	"Category"
//	@Success	201			{object}	response.APIResponse{data=models.Category}
//	@Failure	400			{object}	response.ErrorResponse
//	@Failure	502			{object}	response.ErrorResponse
//	@Security	BearerAuth
//	@Router		/categories [post]
func (h *CategoryHandler) CreateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateCategoryRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		category, err := h.service.CreateCategory(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create category", slog.String("name", req.Name), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		render(w, r, http.StatusCreated, category)
	}
}

// UpdateCategory godoc
//
//	@Summary	Update a category
//	@Tags		Categories
//	@Accept		json
//	@Produce	json
//	@Param		id			path		string							true	"Category ID"
//	@Param		category	body		models.UpdateCategoryRequest	true	"Changed fields"
//	@Success	200			{object}	response.APIResponse{data=models.Category}
//	@Failure	400			{object}	response.ErrorResponse
//	@Failure	404			{object}	response.ErrorResponse
//	@Security	BearerAuth
//	@Router		/categories/{id} [put]
func (h *CategoryHandler) UpdateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateCategoryRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		category, err := h.service.UpdateCategory(r.Context(), id, &req)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to update category", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		render(w, r, http.StatusOK, category)
	}
}

// DeleteCategory godoc
//
//	@Summary	Delete a category
//	@Tags		Categories
//	@Param		id	path	string	true	"Category ID"
//	@Success	204
//	@Failure	400	{object}	response.ErrorResponse
//	@Failure	502	{object}	response.ErrorResponse
//	@Security	BearerAuth
//	@Router		/categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.service.DeleteCategory(r.Context(), id); err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to delete category", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
