/*
Package guard decides, for every navigation to a protected path, whether the
request may proceed or must be redirected.

The decision is a pure function of three inputs: whether the request carries
a session token, whether role selection is still pending, and the requested
path. No state survives between evaluations beyond the two cookies, which
are written elsewhere (the session manager); the guard only reads them.
*/
package guard

import (
	"net/http"
	"strings"

	"rbacgate/internal/session"
)

// Paths the guard knows about. Anything outside Matches passes the guard
// untouched.
const (
	LoginPath       = "/login"
	SelectRolePath  = "/select-role"
	DashboardPrefix = "/dashboard"
)

// Decision is the outcome of one guard evaluation.
type Decision struct {
	// RedirectTo is the redirect target; empty means the navigation is
	// allowed.
	RedirectTo string

	// NoCache marks allowed responses that must not be cached, so a
	// logged-out browser cannot show a stale authenticated page from
	// history.
	NoCache bool
}

// Allowed reports whether the navigation may proceed.
func (d Decision) Allowed() bool {
	return d.RedirectTo == ""
}

// Matches reports whether the path is guarded at all: exactly /login,
// exactly /select-role, or /dashboard and any subpath of it.
func Matches(pathname string) bool {
	if pathname == LoginPath || pathname == SelectRolePath {
		return true
	}

	return pathname == DashboardPrefix || strings.HasPrefix(pathname, DashboardPrefix+"/")
}

// Evaluate applies the guard's decision table.
//
// Logged in, role pending: only /select-role is reachable.
// Logged in, role chosen: /login and /select-role bounce to the dashboard,
// everything else is allowed without caching.
// Not logged in: /select-role and the dashboard bounce to /login; /login
// itself is allowed without caching.
func Evaluate(hasToken, pending bool, pathname string) Decision {
	if hasToken {
		if pending {
			if pathname != SelectRolePath {
				return Decision{RedirectTo: SelectRolePath}
			}
			return Decision{}
		}

		if pathname == SelectRolePath || pathname == LoginPath {
			return Decision{RedirectTo: DashboardPrefix}
		}

		return Decision{NoCache: true}
	}

	if strings.HasPrefix(pathname, DashboardPrefix) || pathname == SelectRolePath {
		return Decision{RedirectTo: LoginPath}
	}

	return Decision{NoCache: true}
}

// Middleware enforces the decision table on matched paths. Unmatched paths
// are not evaluated at all. Redirects use 307 so the browser re-issues the
// navigation as-is against the new location.
func Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !Matches(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			hasToken := false
			if cookie, err := r.Cookie(session.TokenCookie); err == nil && cookie.Value != "" {
				hasToken = true
			}

			// Presence-based: any value counts as pending.
			pending := false
			if _, err := r.Cookie(session.PendingCookie); err == nil {
				pending = true
			}

			decision := Evaluate(hasToken, pending, r.URL.Path)

			if !decision.Allowed() {
				http.Redirect(w, r, decision.RedirectTo, http.StatusTemporaryRedirect)
				return
			}

			if decision.NoCache {
				setNoCacheHeaders(w)
			}

			next.ServeHTTP(w, r)
		})
	}
}

func setNoCacheHeaders(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, proxy-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")
}
