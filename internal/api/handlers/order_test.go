package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/shopdesk/internal/cart"
	appErrors "github.com/aaravmahajanofficial/shopdesk/internal/errors"
	"github.com/aaravmahajanofficial/shopdesk/internal/models"
	"github.com/aaravmahajanofficial/shopdesk/internal/services/mocks"
	"github.com/aaravmahajanofficial/shopdesk/internal/testutils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCartStore() *cart.Store {
	return cart.NewStore(cart.NewMemoryKV(), cart.NewNotifier(), cart.Options{})
}

func fillCart(t *testing.T, store *cart.Store, owner string) {
	t.Helper()

	ctx := context.Background()
	mug := &models.Product{ID: uuid.New(), Name: "Mug", Price: decimal.RequireFromString("10.00")}
	tea := &models.Product{ID: uuid.New(), Name: "Tea", Price: decimal.RequireFromString("3.50")}

	_, err := store.Add(ctx, owner, mug)
	require.NoError(t, err)
	_, err = store.Add(ctx, owner, mug)
	require.NoError(t, err)
	_, err = store.Add(ctx, owner, tea)
	require.NoError(t, err)
}

func TestOrderHandler_PlaceOrder(t *testing.T) {
	checkout := models.CheckoutRequest{ShippingAddress: "221B Baker Street", ContactPhone: "+44 20 7946"}

	t.Run("Cart becomes an order", func(t *testing.T) {
		sess := testutils.SessionFor(models.RoleCustomer)
		store := newCartStore()
		fillCart(t, store, sess.Owner())

		svc := mocks.NewOrderService(t)
		placed := &models.Order{ID: uuid.New(), Status: models.OrderStatusPending, TotalAmount: decimal.RequireFromString("23.50")}

		svc.On("PlaceOrder", mock.Anything, mock.MatchedBy(func(req *models.PlaceOrderRequest) bool {
			return req.UserID == sess.CurrentUser.ID &&
				len(req.Items) == 2 &&
				req.TotalAmount.StringFixed(2) == "23.50" &&
				req.ShippingAddress == "221B Baker Street" &&
				req.Email == sess.CurrentUser.Email
		})).Return(placed, nil).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithSession(http.MethodPost, "/store/checkout", jsonBody(t, checkout), sess, nil)
		NewOrderHandler(svc, store).PlaceOrder().ServeHTTP(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)
		data := decodeResponse(t, rr).Data.(map[string]any)
		assert.Equal(t, placed.ID.String(), data["id"])
		total, ok := data["total_amount"].(string)
		require.True(t, ok)
		assert.True(t, decimal.RequireFromString(total).Equal(placed.TotalAmount))
	})

	t.Run("Empty cart", func(t *testing.T) {
		sess := testutils.SessionFor(models.RoleCustomer)
		svc := mocks.NewOrderService(t)
		svc.On("PlaceOrder", mock.Anything, mock.MatchedBy(func(req *models.PlaceOrderRequest) bool {
			return len(req.Items) == 0
		})).Return(nil, appErrors.ValidationError("Cart is empty")).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithSession(http.MethodPost, "/store/checkout", jsonBody(t, checkout), sess, nil)
		NewOrderHandler(svc, newCartStore()).PlaceOrder().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Cart is empty", decodeResponse(t, rr).Error.Message)
	})

	t.Run("Rolled back order", func(t *testing.T) {
		sess := testutils.SessionFor(models.RoleCustomer)
		store := newCartStore()
		fillCart(t, store, sess.Owner())

		svc := mocks.NewOrderService(t)
		svc.On("PlaceOrder", mock.Anything, mock.Anything).
			Return(nil, appErrors.PartialFailure("Failed to create order items")).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithSession(http.MethodPost, "/store/checkout", jsonBody(t, checkout), sess, nil)
		NewOrderHandler(svc, store).PlaceOrder().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadGateway, rr.Code)
		assert.Equal(t, appErrors.ErrCodePartialFailure, decodeResponse(t, rr).Error.Code)

		items, err := store.Load(context.Background(), sess.Owner())
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("Missing shipping details", func(t *testing.T) {
		sess := testutils.SessionFor(models.RoleCustomer)

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithSession(http.MethodPost, "/store/checkout", jsonBody(t, map[string]string{}), sess, nil)
		NewOrderHandler(mocks.NewOrderService(t), newCartStore()).PlaceOrder().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestOrderHandler_CheckoutPage(t *testing.T) {
	sess := testutils.SessionFor(models.RoleCustomer)
	sess.CurrentUser.Address = "1 Main St"
	sess.CurrentUser.Phone = "555-0100"

	store := newCartStore()
	fillCart(t, store, sess.Owner())

	rr := httptest.NewRecorder()
	req := testutils.CreateTestRequestWithSession(http.MethodGet, "/store/checkout", nil, sess, nil)
	NewOrderHandler(mocks.NewOrderService(t), store).CheckoutPage().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	data := decodeResponse(t, rr).Data.(map[string]any)
	assert.Equal(t, "23.50", data["total"])
	assert.Equal(t, "1 Main St", data["shipping_address"])
	assert.Equal(t, "555-0100", data["contact_phone"])
	assert.Len(t, data["items"], 2)
}

func TestOrderHandler_GetOrder(t *testing.T) {
	admin := testutils.SessionFor(models.RoleAdmin)

	tests := []struct {
		status  models.OrderStatus
		actions int
	}{
		{models.OrderStatusPending, 2},
		{models.OrderStatusProcessing, 2},
		{models.OrderStatusCompleted, 0},
		{models.OrderStatusCancelled, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			id := uuid.New()
			svc := mocks.NewOrderService(t)
			svc.On("GetOrder", mock.Anything, id).Return(&models.Order{ID: id, Status: tt.status}, nil).Once()

			rr := httptest.NewRecorder()
			req := testutils.CreateTestRequestWithSession(http.MethodGet, "/orders/"+id.String(), nil, admin, map[string]string{"id": id.String()})
			NewOrderHandler(svc, nil).GetOrder().ServeHTTP(rr, req)

			require.Equal(t, http.StatusOK, rr.Code)
			data := decodeResponse(t, rr).Data.(map[string]any)
			assert.Len(t, data["actions"], tt.actions)
		})
	}
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	admin := testutils.SessionFor(models.RoleAdmin)
	id := uuid.New()

	t.Run("Any valid status is accepted", func(t *testing.T) {
		svc := mocks.NewOrderService(t)
		svc.On("UpdateOrderStatus", mock.Anything, id, models.OrderStatusPending).
			Return(&models.Order{ID: id, Status: models.OrderStatusPending}, nil).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithSession(http.MethodPatch, "/orders/"+id.String()+"/status",
			jsonBody(t, map[string]string{"status": "pending"}), admin, map[string]string{"id": id.String()})
		NewOrderHandler(svc, nil).UpdateOrderStatus().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Unknown status", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithSession(http.MethodPatch, "/orders/"+id.String()+"/status",
			jsonBody(t, map[string]string{"status": "shipped"}), admin, map[string]string{"id": id.String()})
		NewOrderHandler(mocks.NewOrderService(t), nil).UpdateOrderStatus().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestOrderHandler_ListOrders(t *testing.T) {
	svc := mocks.NewOrderService(t)
	svc.On("ListOrders", mock.Anything, mock.MatchedBy(func(p models.OrderListParams) bool {
		return p.Status == models.OrderStatusCompleted &&
			p.StartDate != nil && p.StartDate.Format("2006-01-02") == "2024-01-01" &&
			p.EndDate == nil
	})).Return([]models.Order{}, nil).Once()

	rr := httptest.NewRecorder()
	req := testutils.CreateTestRequestWithSession(http.MethodGet, "/orders?status=completed&start_date=2024-01-01", nil, testutils.SessionFor(models.RoleAdmin), nil)
	NewOrderHandler(svc, nil).ListOrders().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	req = testutils.CreateTestRequestWithSession(http.MethodGet, "/orders?start_date=yesterday", nil, testutils.SessionFor(models.RoleAdmin), nil)
	NewOrderHandler(svc, nil).ListOrders().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
