package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aaravmahajanofficial/shopdesk/internal/api/middleware"
	"github.com/aaravmahajanofficial/shopdesk/internal/cart"
	"github.com/aaravmahajanofficial/shopdesk/internal/errors"
	"github.com/aaravmahajanofficial/shopdesk/internal/metrics"
	"github.com/aaravmahajanofficial/shopdesk/internal/models"
	service "github.com/aaravmahajanofficial/shopdesk/internal/services"
	"github.com/aaravmahajanofficial/shopdesk/internal/session"
	"github.com/aaravmahajanofficial/shopdesk/internal/utils"
	"github.com/aaravmahajanofficial/shopdesk/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

const keepAliveInterval = 15 * time.Second

type CartHandler struct {
	carts     cart.Repository
	products  service.ProductService
	validator *validator.Validate
}

func NewCartHandler(carts cart.Repository, products service.ProductService) *CartHandler {
	return &CartHandler{carts: carts, products: products, validator: validator.New()}
}

func cartView(items []models.CartItem) models.CartView {
	return models.CartView{
		Items: items,
		Total: cart.CalculateTotal(items),
		Count: len(items),
	}
}

// GetCart godoc
//
//	@Summary	The signed-in user's cart
//	@Tags		Cart
//	@Produce	json
//	@Success	200	{object}	response.APIResponse{data=models.CartView}
//	@Failure	502	{object}	response.ErrorResponse
//	@Security	BearerAuth
//	@Router		/store/cart [get]
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		items, err := h.carts.Load(r.Context(), session.FromContext(r.Context()).Owner())
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to load cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		render(w, r, http.StatusOK, cartView(items))
	}
}

// AddItem godoc
//
//	@Summary		Add a product to the cart
//	@Description	Adds one unit, or increments the quantity if the product is already in the cart.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.AddCartItemRequest	true	"Product to add"
//	@Success		200		{object}	response.APIResponse{data=models.CartView}
//	@Failure		400		{object}	response.ErrorResponse
//	@Failure		404		{object}	response.ErrorResponse
//	@Security		BearerAuth
//	@Router			/store/cart/items [post]
func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.AddCartItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		product, err := h.products.GetProduct(r.Context(), req.ProductID)
		if err != nil {
			response.Error(w, err)
			return
		}

		if !product.IsActive {
			response.Error(w, errors.NotFoundError("Product not found"))
			return
		}

		items, err := h.carts.Add(r.Context(), session.FromContext(r.Context()).Owner(), product)
		if err != nil {
			logger.Error("Failed to add cart item", slog.String("product_id", product.ID.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		render(w, r, http.StatusOK, cartView(items))
	}
}

// UpdateItem godoc
//
//	@Summary		Change the quantity of a cart line
//	@Description	Quantities below 1 leave the line unchanged.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			id			path		string							true	"Product ID of the line"
//	@Param			quantity	body		models.UpdateCartItemRequest	true	"New quantity"
//	@Success		200			{object}	response.APIResponse{data=models.CartView}
//	@Failure		400			{object}	response.ErrorResponse
//	@Security		BearerAuth
//	@Router			/store/cart/items/{id} [put]
func (h *CartHandler) UpdateItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateCartItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		items, err := h.carts.SetQuantity(r.Context(), session.FromContext(r.Context()).Owner(), id, req.Quantity)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to update cart item", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		render(w, r, http.StatusOK, cartView(items))
	}
}

// RemoveItem godoc
//
//	@Summary	Remove a line from the cart
//	@Tags		Cart
//	@Produce	json
//	@Param		id	path		string	true	"Product ID of the line"
//	@Success	200	{object}	response.APIResponse{data=models.CartView}
//	@Failure	400	{object}	response.ErrorResponse
//	@Security	BearerAuth
//	@Router		/store/cart/items/{id} [delete]
func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		items, err := h.carts.Remove(r.Context(), session.FromContext(r.Context()).Owner(), id)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to remove cart item", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		render(w, r, http.StatusOK, cartView(items))
	}
}

// ClearCart godoc
//
//	@Summary	Empty the cart
//	@Tags		Cart
//	@Success	204
//	@Failure	502	{object}	response.ErrorResponse
//	@Security	BearerAuth
//	@Router		/store/cart [delete]
func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		if err := h.carts.Clear(r.Context(), session.FromContext(r.Context()).Owner()); err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to clear cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// Events godoc
//
//	@Summary		Cart change stream
//	@Description	Server-sent events. Each cart-updated event carries the cart as it is after the change.
//	@Tags			Cart
//	@Produce		text/event-stream
//	@Success		200	{string}	string	"event stream"
//	@Security		BearerAuth
//	@Router			/store/cart/events [get]
func (h *CartHandler) Events() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		ctx := r.Context()
		logger := middleware.LoggerFromContext(ctx)
		owner := session.FromContext(ctx).Owner()

		rc := http.NewResponseController(w)

		// the stream outlives the server's write timeout
		if err := rc.SetWriteDeadline(time.Time{}); err != nil {
			logger.Warn("Write deadline kept, stream ends at the server write timeout", slog.Any("error", err))
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)

		if err := rc.Flush(); err != nil {
			logger.Error("Event stream not supported by response writer", slog.Any("error", err))
			return
		}

		metrics.CartEventStreams.Inc()
		defer metrics.CartEventStreams.Dec()

		events := h.carts.Subscribe(ctx, owner)

		ticker := time.NewTicker(keepAliveInterval)
		defer ticker.Stop()

		send := func(event string, data []byte) bool {
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
				return false
			}

			return rc.Flush() == nil
		}

		// opening event so the client renders the current cart straight away
		if !h.pushCart(ctx, logger, owner, send) {
			return
		}

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-events:
				if !ok {
					return
				}

				if !h.pushCart(ctx, logger, owner, send) {
					return
				}
			case <-ticker.C:
				if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil || rc.Flush() != nil {
					return
				}
			}
		}
	}
}

func (h *CartHandler) pushCart(ctx context.Context, logger *slog.Logger, owner string, send func(string, []byte) bool) bool {
	items, err := h.carts.Load(ctx, owner)
	if err != nil {
		logger.Warn("Failed to reload cart for event", slog.Any("error", err))

		return true
	}

	data, err := json.Marshal(cartView(items))
	if err != nil {
		logger.Error("Failed to encode cart event", slog.Any("error", err))

		return true
	}

	return send(cart.EventCartUpdated, data)
}
