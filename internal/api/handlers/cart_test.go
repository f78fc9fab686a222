package handlers

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/shopdesk/internal/api/middleware"
	"github.com/aaravmahajanofficial/shopdesk/internal/models"
	"github.com/aaravmahajanofficial/shopdesk/internal/services/mocks"
	"github.com/aaravmahajanofficial/shopdesk/internal/session"
	"github.com/aaravmahajanofficial/shopdesk/internal/testutils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCartHandler_AddItem(t *testing.T) {
	sess := testutils.SessionFor(models.RoleCustomer)
	product := &models.Product{ID: uuid.New(), Name: "Mug", Price: decimal.RequireFromString("10.00"), IsActive: true}

	t.Run("Adding twice increments the quantity", func(t *testing.T) {
		products := mocks.NewProductService(t)
		products.On("GetProduct", mock.Anything, product.ID).Return(product, nil).Twice()

		h := NewCartHandler(newCartStore(), products)

		var rr *httptest.ResponseRecorder
		for range 2 {
			rr = httptest.NewRecorder()
			req := testutils.CreateTestRequestWithSession(http.MethodPost, "/store/cart/items",
				jsonBody(t, models.AddCartItemRequest{ProductID: product.ID}), sess, nil)
			h.AddItem().ServeHTTP(rr, req)
			require.Equal(t, http.StatusOK, rr.Code)
		}

		data := decodeResponse(t, rr).Data.(map[string]any)
		assert.Equal(t, "20.00", data["total"])
		assert.Equal(t, float64(1), data["count"])

		items := data["items"].([]any)
		assert.Equal(t, float64(2), items[0].(map[string]any)["quantity"])
	})

	t.Run("Inactive product", func(t *testing.T) {
		inactive := *product
		inactive.IsActive = false

		products := mocks.NewProductService(t)
		products.On("GetProduct", mock.Anything, product.ID).Return(&inactive, nil).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithSession(http.MethodPost, "/store/cart/items",
			jsonBody(t, models.AddCartItemRequest{ProductID: product.ID}), sess, nil)
		NewCartHandler(newCartStore(), products).AddItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestCartHandler_UpdateAndRemove(t *testing.T) {
	sess := testutils.SessionFor(models.RoleCustomer)
	store := newCartStore()
	fillCart(t, store, sess.Owner())

	items, err := store.Load(context.Background(), sess.Owner())
	require.NoError(t, err)
	mugID := items[0].ID.String()

	h := NewCartHandler(store, mocks.NewProductService(t))
	params := map[string]string{"id": mugID}

	t.Run("Quantity below one is ignored", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithSession(http.MethodPut, "/store/cart/items/"+mugID, jsonBody(t, map[string]int{"quantity": 0}), sess, params)
		h.UpdateItem().ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "23.50", decodeResponse(t, rr).Data.(map[string]any)["total"])
	})

	t.Run("Quantity is set", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithSession(http.MethodPut, "/store/cart/items/"+mugID, jsonBody(t, map[string]int{"quantity": 5}), sess, params)
		h.UpdateItem().ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "53.50", decodeResponse(t, rr).Data.(map[string]any)["total"])
	})

	t.Run("Remove", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithSession(http.MethodDelete, "/store/cart/items/"+mugID, nil, sess, params)
		h.RemoveItem().ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		data := decodeResponse(t, rr).Data.(map[string]any)
		assert.Equal(t, "3.50", data["total"])
		assert.Equal(t, float64(1), data["count"])
	})

	t.Run("Clear", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithSession(http.MethodDelete, "/store/cart", nil, sess, nil)
		h.ClearCart().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)

		items, err := store.Load(context.Background(), sess.Owner())
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

// readEvent returns the name and data of the next event, skipping comments.
func readEvent(t *testing.T, r *bufio.Reader) (string, string) {
	t.Helper()

	var name, data string
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)

		line = strings.TrimRight(line, "\n")
		switch {
		case line == "":
			if name != "" {
				return name, data
			}
		case strings.HasPrefix(line, "event: "):
			name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data = strings.TrimPrefix(line, "data: ")
		}
	}
}

func TestCartHandler_Events(t *testing.T) {
	sess := testutils.SessionFor(models.RoleCustomer)
	store := newCartStore()
	h := NewCartHandler(store, mocks.NewProductService(t))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.Events().ServeHTTP(w, r.WithContext(session.WithSession(r.Context(), sess)))
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)

	name, data := readEvent(t, reader)
	assert.Equal(t, "cart-updated", name)

	var view models.CartView
	require.NoError(t, json.Unmarshal([]byte(data), &view))
	assert.Equal(t, 0, view.Count)

	_, err = store.Add(context.Background(), sess.Owner(), &models.Product{ID: uuid.New(), Name: "Mug", Price: decimal.RequireFromString("10.00")})
	require.NoError(t, err)

	name, data = readEvent(t, reader)
	assert.Equal(t, "cart-updated", name)
	require.NoError(t, json.Unmarshal([]byte(data), &view))
	assert.Equal(t, 1, view.Count)
	assert.Equal(t, "10.00", view.Total)
}

func TestCartHandler_EventsWithoutDeadlineControl(t *testing.T) {
	sess := testutils.SessionFor(models.RoleCustomer)
	h := NewCartHandler(newCartStore(), mocks.NewProductService(t))

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := testutils.CreateTestRequestWithSession(http.MethodGet, "/store/cart/events", nil, sess, nil)
	req = req.WithContext(middleware.WithLogger(session.WithSession(ctx, sess), logger))

	rr := httptest.NewRecorder()
	h.Events().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "event: cart-updated")
	assert.Contains(t, logs.String(), "level=WARN")
	assert.Contains(t, logs.String(), "Write deadline kept")
}
