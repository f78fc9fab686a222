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

type InventoryHandler struct {
	service   service.InventoryService
	validator *validator.Validate
}

func NewInventoryHandler(service service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: service, validator: validator.New()}
}

// ListInventory godoc
//
//	@Summary	List stock levels
//	@Tags		Inventory
//	@Produce	json
//	@Param		product_id	query		string	false	"Product ID"
//	@Param		category_id	query		string	false	"Category of the product"
//	@Param		low_stock	query		int		false	"Only records with quantity at or below this value"
//	@Param		sort		query		string	false	"quantity, updated_at or last_restock_date"
//	@Param		order		query		string	false	"asc or desc"
//	@Success	200			{object}	response.APIResponse{data=[]models.InventoryRecord}
//	@Failure	400			{object}	response.ErrorResponse
//	@Failure	502			{object}	response.ErrorResponse
//	@Security	BearerAuth
//	@Router		/inventory [get]
func (h *InventoryHandler) ListInventory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var params models.InventoryListParams
		var err error

		if params.ProductID, err = utils.QueryUUID(r, "product_id"); err != nil {
			response.Error(w, err)
			return
		}

		if params.CategoryID, err = utils.QueryUUID(r, "category_id"); err != nil {
			response.Error(w, err)
			return
		}

		if params.LowStock, err = utils.QueryInt(r, "low_stock"); err != nil {
			response.Error(w, err)
			return
		}

		params.SortBy, params.SortAsc = sortParams(r)

		records, err := h.service.ListInventory(r.Context(), params)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to list inventory", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		render(w, r, http.StatusOK, records)
	}
}

// LowStock godoc
//
//	@Summary	Products running low
//	@Tags		Inventory
//	@Produce	json
//	@Success	200	{object}	response.APIResponse{data=[]models.InventoryRecord}
//	@Failure	502	{object}	response.ErrorResponse
//	@Security	BearerAuth
//	@Router		/inventory/low-stock [get]
func (h *InventoryHandler) LowStock() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		records, err := h.service.LowStock(r.Context())
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to load low stock", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		render(w, r, http.StatusOK, records)
	}
}

// UpdateStock godoc
//
//	@Summary		Set the stock level of a product
//	@Description	Records the change as a restock.
//	@Tags			Inventory
//	@Accept			json
//	@Produce		json
//	@Param			productId	path		string							true	"Product ID"
//	@Param			stock		body		models.UpdateInventoryRequest	true	"New quantity"
//	@Success		200			{object}	response.APIResponse{data=models.InventoryRecord}
//	@Failure		400			{object}	response.ErrorResponse
//	@Failure		404			{object}	response.ErrorResponse
//	@Security		BearerAuth
//	@Router			/inventory/{productId} [put]
func (h *InventoryHandler) UpdateStock() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		productID, err := utils.ParseID(r, "productId")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateInventoryRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		record, err := h.service.UpdateStock(r.Context(), productID, *req.Quantity)
		if err != nil {
			logger.Error("Failed to update stock", slog.String("product_id", productID.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Stock updated", slog.String("product_id", productID.String()), slog.Int("quantity", record.Quantity))
		render(w, r, http.StatusOK, record)
	}
}
