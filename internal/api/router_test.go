package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/shopdesk/internal/api"
	"github.com/aaravmahajanofficial/shopdesk/internal/api/guards"
	"github.com/aaravmahajanofficial/shopdesk/internal/api/handlers"
	"github.com/aaravmahajanofficial/shopdesk/internal/api/middleware"
	"github.com/aaravmahajanofficial/shopdesk/internal/cart"
	"github.com/aaravmahajanofficial/shopdesk/internal/models"
	repoMocks "github.com/aaravmahajanofficial/shopdesk/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/shopdesk/internal/services"
	"github.com/aaravmahajanofficial/shopdesk/internal/services/mocks"
	"github.com/aaravmahajanofficial/shopdesk/internal/session"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	router    http.Handler
	users     *repoMocks.UserRepository
	blacklist *repoMocks.TokenBlacklist
	tokens    *service.Tokens
	dashboard *mocks.DashboardService
}

func setup(t *testing.T) fixture {
	f := fixture{
		users:     repoMocks.NewUserRepository(t),
		blacklist: repoMocks.NewTokenBlacklist(t),
		tokens:    service.NewTokens([]byte("router-test")),
		dashboard: mocks.NewDashboardService(t),
	}

	accounts := mocks.NewUserService(t)
	products := mocks.NewProductService(t)
	orders := mocks.NewOrderService(t)
	carts := cart.NewStore(cart.NewMemoryKV(), cart.NewNotifier(), cart.Options{})

	sessions := session.NewManager(f.users, repoMocks.NewRateLimitRepository(t), f.blacklist, f.tokens, accounts, session.Options{TTL: time.Hour})

	f.router = api.NewRouter(guards.New(guards.NewShells(carts)), sessions, api.Handlers{
		Auth:      handlers.NewAuthHandler(sessions, accounts),
		Products:  handlers.NewProductHandler(products),
		Category:  handlers.NewCategoryHandler(mocks.NewCategoryService(t)),
		Inventory: handlers.NewInventoryHandler(mocks.NewInventoryService(t)),
		Orders:    handlers.NewOrderHandler(orders, carts),
		Cart:      handlers.NewCartHandler(carts, products),
		Users:     handlers.NewUserHandler(accounts),
		Dashboard: handlers.NewDashboardHandler(f.dashboard),
	}, api.Options{ServiceName: "shopdesk-test"})

	return f
}

// signIn makes token resolve to a user with the given role.
func (f fixture) signIn(t *testing.T, role models.Role) string {
	t.Helper()

	id := uuid.New()
	token, _, err := f.tokens.Issue(id, "jane@example.com", models.TokenPurposeSession, time.Hour)
	require.NoError(t, err)

	f.blacklist.On("IsRevoked", mock.Anything, mock.AnythingOfType("string")).Return(false, nil)
	f.blacklist.On("IsUserRevoked", mock.Anything, id, mock.Anything).Return(false, nil)
	f.users.On("GetProfile", mock.Anything, id).Return(&models.Profile{ID: id, Email: "jane@example.com", Role: role}, nil)

	return token
}

func do(h http.Handler, method, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	return rr
}

func TestRouter_Anonymous(t *testing.T) {
	f := setup(t)

	tests := []struct {
		name     string
		target   string
		location string
	}{
		{"Root goes to login", "/", "/login"},
		{"Back office goes to login", "/dashboard", "/login"},
		{"Storefront remembers the page", "/store/cart", "/login?redirect=%2Fstore%2Fcart"},
		{"Store root goes to the catalogue", "/store/", "/store/products"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(f.router, http.MethodGet, tt.target, "")

			assert.Equal(t, http.StatusFound, rr.Code)
			assert.Equal(t, tt.location, rr.Header().Get("Location"))
			assert.NotEmpty(t, rr.Header().Get(middleware.RequestIDHeader))
		})
	}

	t.Run("Login page is public", func(t *testing.T) {
		rr := do(f.router, http.MethodGet, "/login", "")

		assert.Equal(t, http.StatusOK, rr.Code)
	})
}

func TestRouter_SignedIn(t *testing.T) {
	t.Run("Customer is kept out of the back office", func(t *testing.T) {
		f := setup(t)
		token := f.signIn(t, models.RoleCustomer)

		rr := do(f.router, http.MethodGet, "/dashboard", token)

		assert.Equal(t, http.StatusFound, rr.Code)
		assert.Equal(t, "/store/products", rr.Header().Get("Location"))
	})

	t.Run("Admin reaches the dashboard", func(t *testing.T) {
		f := setup(t)
		token := f.signIn(t, models.RoleAdmin)
		f.dashboard.On("Stats", mock.Anything).Return(&models.DashboardStats{}, nil).Once()

		rr := do(f.router, http.MethodGet, "/dashboard", token)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Signed in user skips the login page", func(t *testing.T) {
		f := setup(t)
		token := f.signIn(t, models.RoleAdmin)

		rr := do(f.router, http.MethodGet, "/login", token)

		assert.Equal(t, http.StatusFound, rr.Code)
		assert.Equal(t, "/dashboard", rr.Header().Get("Location"))
	})

	t.Run("Empty cart for a new customer", func(t *testing.T) {
		f := setup(t)
		token := f.signIn(t, models.RoleCustomer)

		rr := do(f.router, http.MethodGet, "/store/cart", token)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"total":"0.00"`)
		assert.Contains(t, rr.Body.String(), `"name":"storefront"`)
	})
}

func TestRouter_Metrics(t *testing.T) {
	f := setup(t)

	do(f.router, http.MethodGet, "/dashboard", "")
	rr := do(f.router, http.MethodGet, "/metrics", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `path="GET /dashboard"`)
}
