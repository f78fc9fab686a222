package guards

import (
	"net/http"
	"net/url"

	"github.com/aaravmahajanofficial/shopdesk/internal/errors"
	"github.com/aaravmahajanofficial/shopdesk/internal/session"
	"github.com/aaravmahajanofficial/shopdesk/internal/utils/response"
)

const (
	loginPath      = "/login"
	storefrontPath = "/store/products"
)

type Guard struct {
	shells *Shells
}

func New(shells *Shells) *Guard {
	return &Guard{shells: shells}
}

// redirect sends the client to target unless it is already there, in which
// case it answers with denial instead.
func redirect(w http.ResponseWriter, r *http.Request, target string, denial error) {
	if u, err := url.Parse(target); err == nil && u.Path == r.URL.Path {
		response.Error(w, denial)
		return
	}

	http.Redirect(w, r, target, http.StatusFound)
}

func loading(w http.ResponseWriter) {
	w.Header().Set("Retry-After", "1")
	response.Error(w, errors.SessionLoadingError("Session is loading"))
}

// Admin lets administrators through inside the admin shell.
func (g *Guard) Admin(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromContext(r.Context())

		switch {
		case sess.Loading():
			loading(w)
		case !sess.IsAuthenticated():
			redirect(w, r, loginPath, errors.UnauthorizedError("Authentication required"))
		case !sess.IsAdmin():
			redirect(w, r, storefrontPath, errors.ForbiddenError("Administrator access required"))
		default:
			ctx := withLayout(r.Context(), g.shells.Admin.Layout(r.Context(), sess))
			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}

// General lets any signed-in user through inside the storefront shell.
func (g *Guard) General(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromContext(r.Context())

		switch {
		case sess.Loading():
			loading(w)
		case !sess.IsAuthenticated():
			target := loginPath + "?redirect=" + url.QueryEscape(r.URL.RequestURI())
			redirect(w, r, target, errors.UnauthorizedError("Authentication required"))
		default:
			ctx := withLayout(r.Context(), g.shells.Storefront.Layout(r.Context(), sess))
			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}

// Public renders anonymous screens such as login and register. Signed-in
// users are sent home instead.
func (g *Guard) Public(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromContext(r.Context())

		if sess.IsAuthenticated() {
			http.Redirect(w, r, HomeFor(sess), http.StatusFound)
			return
		}

		ctx := withLayout(r.Context(), g.shells.For(sess).Layout(r.Context(), sess))
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// Root sends every session to its home screen.
func (g *Guard) Root() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromContext(r.Context())

		if sess.Loading() {
			loading(w)
			return
		}

		http.Redirect(w, r, HomeFor(sess), http.StatusFound)
	}
}

// To is a fixed redirect, used for aliases such as /store.
func To(target string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, target, http.StatusFound)
	}
}
