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

type ProductHandler struct {
	service   service.ProductService
	validator *validator.Validate
}

func NewProductHandler(service service.ProductService) *ProductHandler {
	return &ProductHandler{service: service, validator: validator.New()}
}

func productListParams(r *http.Request) (models.ProductListParams, error) {
	var params models.ProductListParams

	categoryID, err := utils.QueryUUID(r, "category_id")
	if err != nil {
		return params, err
	}

	isActive, err := utils.QueryBool(r, "is_active")
	if err != nil {
		return params, err
	}

	params.CategoryID = categoryID
	params.IsActive = isActive
	params.Search = r.URL.Query().Get("search")
	params.SortBy, params.SortAsc = sortParams(r)

	return params, nil
}

// ListProducts godoc
//
//	@Summary		List products
//	@Description	Admin product table with its category and stock level.
//	@Tags			Products
//	@Produce		json
//	@Param			category_id	query		string	false	"Category ID"
//	@Param			is_active	query		bool	false	"Active flag"
//	@Param			search		query		string	false	"Matches name or description"
//	@Param			sort		query		string	false	"name, price or created_at"
//	@Param			order		query		string	false	"asc or desc"
//	@Success		200			{object}	response.APIResponse{data=[]models.Product}
//	@Failure		400			{object}	response.ErrorResponse
//	@Failure		502			{object}	response.ErrorResponse
//	@Security		BearerAuth
//	@Router			/products [get]
func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		params, err := productListParams(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		products, err := h.service.ListProducts(r.Context(), params)
		if err != nil {
			logger.Error("Failed to list products", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		render(w, r, http.StatusOK, products)
	}
}

// StoreProducts godoc
//
//	@Summary	Browse the storefront catalogue
//	@Tags		Storefront
//	@Produce	json
//	@Param		category_id	query		string	false	"Category ID"
//	@Param		search		query		string	false	"Matches name or description"
//	@Success	200			{object}	response.APIResponse{data=[]models.Product}
//	@Failure	400			{object}	response.ErrorResponse
//	@Security	BearerAuth
//	@Router		/store/products [get]
func (h *ProductHandler) StoreProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		params, err := productListParams(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		// shoppers never see inactive products
		active := true
		params.IsActive = &active

		products, err := h.service.ListProducts(r.Context(), params)
		if err != nil {
			logger.Error("Failed to list storefront products", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		render(w, r, http.StatusOK, products)
	}
}

// GetProduct godoc
//
//	@Summary	Get a product
//	@Tags		Products
//	@Produce	json
//	@Param		id	path		string	true	"Product ID"
//	@Success	200	{object}	response.APIResponse{data=models.Product}
//	@Failure	400	{object}	response.ErrorResponse
//	@Failure	404	{object}	response.ErrorResponse
//	@Security	BearerAuth
//	@Router		/products/{id} [get]
func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		product, err := h.service.GetProduct(r.Context(), id)
		if err != nil {
			response.Error(w, err)
			return
		}

		render(w, r, http.StatusOK, product)
	}
}

// CreateProduct godoc
//
//	@Summary		Create a product
//	@Description	Creates the product and, when quantity is given, its inventory record.
//	@Tags			Products
//	@Accept			json
//	@Produce		json
//	@Param			product	body		models.CreateProductRequest	true	"Product"
//	@Success		201		{object}	response.APIResponse{data=models.Product}
//	@Failure		400		{object}	response.ErrorResponse
//	@Failure		502		{object}	response.ErrorResponse
//	@Security		BearerAuth
//	@Router			/products [post]
func (h *ProductHandler) CreateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateProductRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		product, err := h.service.CreateProduct(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create product", slog.String("name", req.Name), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Product created", slog.String("product_id", product.ID.String()))
		render(w, r, http.StatusCreated, product)
	}
}

// UpdateProduct godoc
//
//	@Summary	Update a product
//	@Tags		Products
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"Product ID"
//	@Param		product	body		models.UpdateProductRequest	true	"Changed fields"
//	@Success	200		{object}	response.APIResponse{data=models.Product}
//	@Failure	400		{object}	response.ErrorResponse
//	@Failure	404		{object}	response.ErrorResponse
//	@Security	BearerAuth
//	@Router		/products/{id} [put]
func (h *ProductHandler) UpdateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateProductRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		product, err := h.service.UpdateProduct(r.Context(), id, &req)
		if err != nil {
			logger.Error("Failed to update product", slog.String("product_id", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		render(w, r, http.StatusOK, product)
	}
}

// DeleteProduct godoc
//
//	@Summary	Delete a product
//	@Tags		Products
//	@Param		id	path	string	true	"Product ID"
//	@Success	204
//	@Failure	400	{object}	response.ErrorResponse
//	@Failure	502	{object}	response.ErrorResponse
//	@Security	BearerAuth
//	@Router		/products/{id} [delete]
func (h *ProductHandler) DeleteProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.service.DeleteProduct(r.Context(), id); err != nil {
			logger.Error("Failed to delete product", slog.String("product_id", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Product deleted", slog.String("product_id", id.String()))
		w.WriteHeader(http.StatusNoContent)
	}
}
