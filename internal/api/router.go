// Package api assembles the HTTP surface: screens behind their guards plus the
// operational endpoints.
package api

import (
	"net/http"

	"github.com/aaravmahajanofficial/shopdesk/internal/api/guards"
	"github.com/aaravmahajanofficial/shopdesk/internal/api/handlers"
	"github.com/aaravmahajanofficial/shopdesk/internal/api/middleware"
	"github.com/aaravmahajanofficial/shopdesk/internal/metrics"
	"github.com/aaravmahajanofficial/shopdesk/internal/session"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Handlers struct {
	Auth      *handlers.AuthHandler
	Products  *handlers.ProductHandler
	Category  *handlers.CategoryHandler
	Inventory *handlers.InventoryHandler
	Orders    *handlers.OrderHandler
	Cart      *handlers.CartHandler
	Users     *handlers.UserHandler
	Dashboard *handlers.DashboardHandler
}

type Options struct {
	ServiceName string
	Health      http.Handler
}

func routes(mux *http.ServeMux, g *guards.Guard, h Handlers) {
	// Public
	mux.HandleFunc("GET /{$}", g.Root())
	mux.HandleFunc("GET /login", g.Public(h.Auth.LoginPage()))
	mux.HandleFunc("POST /login", h.Auth.Login())
	mux.HandleFunc("GET /register", g.Public(h.Auth.RegisterPage()))
	mux.HandleFunc("POST /register", h.Auth.Register())
	mux.HandleFunc("POST /logout", h.Auth.Logout())
	mux.HandleFunc("POST /password/reset", h.Auth.RequestPasswordReset())
	mux.HandleFunc("POST /password/reset/confirm", h.Auth.ConfirmPasswordReset())

	// Storefront
	mux.HandleFunc("GET /store/{$}", guards.To("/store/products"))
	mux.HandleFunc("GET /store/products", g.General(h.Products.StoreProducts()))
	mux.HandleFunc("GET /store/cart", g.General(h.Cart.GetCart()))
	mux.HandleFunc("DELETE /store/cart", g.General(h.Cart.ClearCart()))
	mux.HandleFunc("POST /store/cart/items", g.General(h.Cart.AddItem()))
	mux.HandleFunc("PUT /store/cart/items/{id}", g.General(h.Cart.UpdateItem()))
	mux.HandleFunc("DELETE /store/cart/items/{id}", g.General(h.Cart.RemoveItem()))
	mux.HandleFunc("GET /store/cart/events", g.General(h.Cart.Events()))
	mux.HandleFunc("GET /store/checkout", g.General(h.Orders.CheckoutPage()))
	mux.HandleFunc("POST /store/checkout", g.General(h.Orders.PlaceOrder()))
	mux.HandleFunc("GET /store/orders", g.General(h.Orders.StoreOrders()))
	mux.HandleFunc("GET /store/profile", g.General(h.Users.GetProfile()))
	mux.HandleFunc("PUT /store/profile", g.General(h.Users.UpdateProfile()))
	mux.HandleFunc("POST /store/password", g.General(h.Users.ChangePassword()))

	// Back office
	mux.HandleFunc("GET /dashboard", g.Admin(h.Dashboard.Dashboard()))

	mux.HandleFunc("GET /products", g.Admin(h.Products.ListProducts()))
	mux.HandleFunc("POST /products", g.Admin(h.Products.CreateProduct()))
	mux.HandleFunc("GET /products/{id}", g.Admin(h.Products.GetProduct()))
	mux.HandleFunc("PUT /products/{id}", g.Admin(h.Products.UpdateProduct()))
	mux.HandleFunc("DELETE /products/{id}", g.Admin(h.Products.DeleteProduct()))

	mux.HandleFunc("GET /categories", g.Admin(h.Category.ListCategories()))
	mux.HandleFunc("POST /categories", g.Admin(h.Category.CreateCategory()))
	mux.HandleFunc("GET /categories/{id}", g.Admin(h.Category.GetCategory()))
	mux.HandleFunc("PUT /categories/{id}", g.Admin(h.Category.UpdateCategory()))
	mux.HandleFunc("DELETE /categories/{id}", g.Admin(h.Category.DeleteCategory()))

	mux.HandleFunc("GET /orders", g.Admin(h.Orders.ListOrders()))
	mux.HandleFunc("GET /orders/{id}", g.Admin(h.Orders.GetOrder()))
	mux.HandleFunc("PATCH /orders/{id}/status", g.Admin(h.Orders.UpdateOrderStatus()))
	mux.HandleFunc("DELETE /orders/{id}", g.Admin(h.Orders.DeleteOrder()))

	mux.HandleFunc("GET /inventory", g.Admin(h.Inventory.ListInventory()))
	mux.HandleFunc("GET /inventory/low-stock", g.Admin(h.Inventory.LowStock()))
	mux.HandleFunc("PUT /inventory/{productId}", g.Admin(h.Inventory.UpdateStock()))

	mux.HandleFunc("GET /users", g.Admin(h.Users.ListUsers()))
	mux.HandleFunc("GET /users/stats", g.Admin(h.Users.Stats()))
	mux.HandleFunc("GET /users/{id}", g.Admin(h.Users.GetUser()))
	mux.HandleFunc("PATCH /users/{id}/role", g.Admin(h.Users.UpdateRole()))
}

// NewRouter returns the fully wrapped handler of the server. Metrics sit
// innermost so they see the matched route pattern.
func NewRouter(g *guards.Guard, sessions *session.Manager, h Handlers, opts Options) http.Handler {
	mux := http.NewServeMux()

	routes(mux, g, h)

	mux.Handle("GET /metrics", metrics.Handler())
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)
	if opts.Health != nil {
		mux.Handle("GET /health", opts.Health)
	}

	var handler http.Handler = mux
	handler = metrics.Middleware(handler)
	handler = sessions.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, opts.ServiceName)

	return handler
}
