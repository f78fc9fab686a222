package guards

import (
	"context"
	"log/slog"

	"github.com/aaravmahajanofficial/shopdesk/internal/api/middleware"
	"github.com/aaravmahajanofficial/shopdesk/internal/cart"
	"github.com/aaravmahajanofficial/shopdesk/internal/models"
	"github.com/aaravmahajanofficial/shopdesk/internal/session"
)

const (
	AdminLayout      = "admin"
	StorefrontLayout = "storefront"
)

// Shell is the chrome a screen renders inside.
type Shell interface {
	Layout(ctx context.Context, sess *session.Session) models.Layout
}

type AdminShell struct{}

func (AdminShell) Layout(_ context.Context, sess *session.Session) models.Layout {
	menu := []models.MenuItem{
		{Key: "dashboard", Label: "Dashboard", Path: "/dashboard"},
		{Key: "products", Label: "Products", Path: "/products"},
		{Key: "categories", Label: "Categories", Path: "/categories"},
		{Key: "orders", Label: "Orders", Path: "/orders"},
		{Key: "inventory", Label: "Inventory", Path: "/inventory"},
	}

	if sess.IsAdmin() {
		menu = append(menu, models.MenuItem{Key: "users", Label: "Users", Path: "/users"})
	}

	return models.Layout{
		Name: AdminLayout,
		Home: "/dashboard",
		Menu: menu,
		UserMenu: []models.MenuItem{
			{Key: "profile", Label: "Profile", Path: "/store/profile"},
			{Key: "logout", Label: "Log out", Path: "/logout"},
		},
		User: sess.CurrentUser,
	}
}

// StorefrontShell adds the number of cart lines as a badge count.
type StorefrontShell struct {
	Carts cart.Repository
}

func (s StorefrontShell) Layout(ctx context.Context, sess *session.Session) models.Layout {
	layout := models.Layout{
		Name: StorefrontLayout,
		Home: "/store/products",
		Menu: []models.MenuItem{
			{Key: "products", Label: "Products", Path: "/store/products"},
		},
		UserMenu: []models.MenuItem{
			{Key: "profile", Label: "Profile", Path: "/store/profile"},
			{Key: "orders", Label: "My orders", Path: "/store/orders"},
			{Key: "logout", Label: "Log out", Path: "/logout"},
		},
		User: sess.CurrentUser,
	}

	if !sess.IsAuthenticated() || s.Carts == nil {
		return layout
	}

	items, err := s.Carts.Load(ctx, sess.Owner())
	if err != nil {
		middleware.LoggerFromContext(ctx).Warn("Failed to load cart for badge", slog.Any("error", err))
	}

	count := len(items)
	layout.CartCount = &count

	return layout
}

// Shells holds the two layouts of the application.
type Shells struct {
	Admin      Shell
	Storefront Shell
}

func NewShells(carts cart.Repository) *Shells {
	return &Shells{Admin: AdminShell{}, Storefront: StorefrontShell{Carts: carts}}
}

// For is the one place that picks a shell by role.
func (s *Shells) For(sess *session.Session) Shell {
	if sess.IsAdmin() {
		return s.Admin
	}

	return s.Storefront
}

// HomeFor is where a session lands when it opens the root of the site.
func HomeFor(sess *session.Session) string {
	switch {
	case !sess.IsAuthenticated():
		return "/login"
	case sess.IsAdmin():
		return "/dashboard"
	default:
		return "/store/products"
	}
}

type layoutKey struct{}

func withLayout(ctx context.Context, layout models.Layout) context.Context {
	return context.WithValue(ctx, layoutKey{}, &layout)
}

// LayoutFromContext returns the layout chosen by the guard, if any.
func LayoutFromContext(ctx context.Context) *models.Layout {
	layout, _ := ctx.Value(layoutKey{}).(*models.Layout)

	return layout
}
