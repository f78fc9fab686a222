package handlers

import (
	"net/http"
	"strings"

	"github.com/aaravmahajanofficial/shopdesk/internal/api/guards"
	"github.com/aaravmahajanofficial/shopdesk/internal/utils/response"
)

// render writes data inside the layout chosen by the route guard.
func render(w http.ResponseWriter, r *http.Request, status int, data any) {
	var layout any
	if l := guards.LayoutFromContext(r.Context()); l != nil {
		layout = l
	}

	response.Render(w, status, layout, data)
}

// sortParams reads ?sort=<field>&order=asc|desc. A missing order is nil so
// the repository applies its default direction.
func sortParams(r *http.Request) (string, *bool) {
	q := r.URL.Query()

	var asc *bool
	switch strings.ToLower(q.Get("order")) {
	case "asc":
		v := true
		asc = &v
	case "desc":
		v := false
		asc = &v
	}

	return q.Get("sort"), asc
}

// safeRedirect keeps post-login redirects on this site.
func safeRedirect(target, fallback string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return fallback
	}

	return target
}
