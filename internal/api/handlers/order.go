package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/shopdesk/internal/api/middleware"
	"github.com/aaravmahajanofficial/shopdesk/internal/cart"
	"github.com/aaravmahajanofficial/shopdesk/internal/errors"
	"github.com/aaravmahajanofficial/shopdesk/internal/models"
	service "github.com/aaravmahajanofficial/shopdesk/internal/services"
	"github.com/aaravmahajanofficial/shopdesk/internal/session"
	"github.com/aaravmahajanofficial/shopdesk/internal/utils"
	"github.com/aaravmahajanofficial/shopdesk/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type OrderHandler struct {
	orders    service.OrderService
	carts     cart.Repository
	validator *validator.Validate
}

func NewOrderHandler(orders service.OrderService, carts cart.Repository) *OrderHandler {
	return &OrderHandler{orders: orders, carts: carts, validator: validator.New()}
}

// ListOrders godoc
//
//	@Summary	List orders
//	@Tags		Orders
//	@Produce	json
//	@Param		user_id		query		string	false	"Customer ID"
//	@Param		status		query		string	false	"pending, processing, completed or cancelled"
//	@Param		start_date	query		string	false	"Placed on or after (YYYY-MM-DD or RFC 3339)"
//	@Param		end_date	query		string	false	"Placed on or before (YYYY-MM-DD or RFC 3339)"
//	@Param		sort		query		string	false	"created_at, total_amount or status"
//	@Param		order		query		string	false	"asc or desc"
//	@Success	200			{object}	response.APIResponse{data=[]models.Order}
//	@Failure	400			{object}	response.ErrorResponse
//	@Failure	502			{object}	response.ErrorResponse
//	@Security	BearerAuth
//	@Router		/orders [get]
func (h *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		params := models.OrderListParams{Status: models.OrderStatus(r.URL.Query().Get("status"))}
		var err error

		if params.UserID, err = utils.QueryUUID(r, "user_id"); err != nil {
			response.Error(w, err)
			return
		}

		if params.StartDate, err = utils.QueryTime(r, "start_date"); err != nil {
			response.Error(w, err)
			return
		}

		if params.EndDate, err = utils.QueryTime(r, "end_date"); err != nil {
			response.Error(w, err)
			return
		}

		params.SortBy, params.SortAsc = sortParams(r)

		orders, err := h.orders.ListOrders(r.Context(), params)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to list orders", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		render(w, r, http.StatusOK, orders)
	}
}

// GetOrder godoc
//
//	@Summary		Order detail
//	@Description	The order with its line items and the status changes offered from its current status.
//	@Tags			Orders
//	@Produce		json
//	@Param			id	path		string	true	"Order ID"
//	@Success		200	{object}	response.APIResponse{data=models.OrderDetail}
//	@Failure		400	{object}	response.ErrorResponse
//	@Failure		404	{object}	response.ErrorResponse
//	@Security		BearerAuth
//	@Router			/orders/{id} [get]
func (h *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		order, err := h.orders.GetOrder(r.Context(), id)
		if err != nil {
			response.Error(w, err)
			return
		}

		render(w, r, http.StatusOK, models.OrderDetail{
			Order:   order,
			Actions: service.AllowedActions(order.Status),
		})
	}
}

// UpdateOrderStatus godoc
//
//	@Summary	Change the status of an order
//	@Tags		Orders
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string							true	"Order ID"
//	@Param		status	body		models.UpdateOrderStatusRequest	true	"New status"
//	@Success	200		{object}	response.APIResponse{data=models.OrderDetail}
//	@Failure	400		{object}	response.ErrorResponse
//	@Failure	404		{object}	response.ErrorResponse
//	@Security	BearerAuth
//	@Router		/orders/{id}/status [patch]
func (h *OrderHandler) UpdateOrderStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateOrderStatusRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		order, err := h.orders.UpdateOrderStatus(r.Context(), id, req.Status)
		if err != nil {
			logger.Error("Failed to update order status", slog.String("order_id", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Order status updated", slog.String("order_id", id.String()), slog.String("status", string(order.Status)))
		render(w, r, http.StatusOK, models.OrderDetail{
			Order:   order,
			Actions: service.AllowedActions(order.Status),
		})
	}
}

// DeleteOrder godoc
//
//	@Summary	Delete an order
//	@Tags		Orders
//	@Param		id	path	string	true	"Order ID"
//	@Success	204
//	@Failure	400	{object}	response.ErrorResponse
//	@Failure	502	{object}	response.ErrorResponse
//	@Security	BearerAuth
//	@Router		/orders/{id} [delete]
func (h *OrderHandler) DeleteOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.orders.DeleteOrder(r.Context(), id); err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to delete order", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// StoreOrders godoc
//
//	@Summary	The signed-in customer's orders
//	@Tags		Storefront
//	@Produce	json
//	@Success	200	{object}	response.APIResponse{data=[]models.Order}
//	@Failure	502	{object}	response.ErrorResponse
//	@Security	BearerAuth
//	@Router		/store/orders [get]
func (h *OrderHandler) StoreOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sess := session.FromContext(r.Context())

		orders, err := h.orders.ListOrdersForUser(r.Context(), sess.CurrentUser.ID)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to list customer orders", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		render(w, r, http.StatusOK, orders)
	}
}

// CheckoutPage godoc
//
//	@Summary		Checkout form
//	@Description	The cart summary with shipping details prefilled from the profile.
//	@Tags			Storefront
//	@Produce		json
//	@Success		200	{object}	response.APIResponse{data=models.CheckoutView}
//	@Failure		502	{object}	response.ErrorResponse
//	@Security		BearerAuth
//	@Router			/store/checkout [get]
func (h *OrderHandler) CheckoutPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sess := session.FromContext(r.Context())

		items, err := h.carts.Load(r.Context(), sess.Owner())
		if err != nil {
			response.Error(w, err)
			return
		}

		render(w, r, http.StatusOK, models.CheckoutView{
			Items:           items,
			Total:           cart.CalculateTotal(items),
			ShippingAddress: sess.CurrentUser.Address,
			ContactPhone:    sess.CurrentUser.Phone,
		})
	}
}

// PlaceOrder godoc
//
//	@Summary		Place an order from the cart
//	@Description	Creates the order and its line items, decrements stock and empties the cart.
//	@Tags			Storefront
//	@Accept			json
//	@Produce		json
//	@Param			checkout	body		models.CheckoutRequest	true	"Shipping details"
//	@Success		201			{object}	response.APIResponse{data=models.Order}
//	@Failure		400			{object}	response.ErrorResponse	"Empty cart or invalid details"
//	@Failure		502			{object}	response.ErrorResponse	"Order could not be saved"
//	@Security		BearerAuth
//	@Router			/store/checkout [post]
func (h *OrderHandler) PlaceOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())
		sess := session.FromContext(r.Context())

		var req models.CheckoutRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		items, err := h.carts.Load(r.Context(), sess.Owner())
		if err != nil {
			logger.Error("Failed to load cart for checkout", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		order, err := h.orders.PlaceOrder(r.Context(), &models.PlaceOrderRequest{
			UserID:          sess.CurrentUser.ID,
			Items:           items,
			TotalAmount:     cart.Total(items),
			ShippingAddress: utils.SanitizeText(req.ShippingAddress),
			ContactPhone:    utils.SanitizeText(req.ContactPhone),
			Email:           sess.CurrentUser.Email,
		})
		if err != nil {
			if errors.HasCode(err, errors.ErrCodePartialFailure) {
				logger.Error("Order rolled back", slog.Any("error", err))
			} else {
				logger.Warn("Failed to place order", slog.Any("error", err))
			}
			response.Error(w, err)
			return
		}

		logger.Info("Order placed", slog.String("order_id", order.ID.String()))
		render(w, r, http.StatusCreated, order)
	}
}
