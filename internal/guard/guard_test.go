package guard

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"rbacgate/internal/session"
)

func TestEvaluateDecisionTable(t *testing.T) {
	tests := []struct {
		name         string
		hasToken     bool
		pending      bool
		pathname     string
		wantRedirect string
		wantNoCache  bool
	}{
		{"no token, select-role", false, false, "/select-role", "/login", false},
		{"no token, login allowed", false, false, "/login", "", true},
		{"no token, dashboard", false, false, "/dashboard", "/login", false},
		{"no token, dashboard subpath", false, false, "/dashboard/reports/x", "/login", false},
		{"no token, stale pending cookie", false, true, "/select-role", "/login", false},

		{"pending, select-role allowed", true, true, "/select-role", "", false},
		{"pending, login", true, true, "/login", "/select-role", false},
		{"pending, dashboard", true, true, "/dashboard", "/select-role", false},
		{"pending, dashboard subpath", true, true, "/dashboard/x", "/select-role", false},

		{"role chosen, select-role", true, false, "/select-role", "/dashboard", false},
		{"role chosen, login", true, false, "/login", "/dashboard", false},
		{"role chosen, dashboard allowed", true, false, "/dashboard", "", true},
		{"role chosen, dashboard subpath allowed", true, false, "/dashboard/settings", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.hasToken, tt.pending, tt.pathname)

			if got.RedirectTo != tt.wantRedirect {
				t.Fatalf("Evaluate(%v, %v, %q) redirect = %q, want %q",
					tt.hasToken, tt.pending, tt.pathname, got.RedirectTo, tt.wantRedirect)
			}
			if got.NoCache != tt.wantNoCache {
				t.Fatalf("Evaluate(%v, %v, %q) noCache = %v, want %v",
					tt.hasToken, tt.pending, tt.pathname, got.NoCache, tt.wantNoCache)
			}
			if got.Allowed() != (tt.wantRedirect == "") {
				t.Fatalf("Allowed() inconsistent with redirect %q", got.RedirectTo)
			}
		})
	}
}

func TestMatches(t *testing.T) {
	matched := []string{"/login", "/select-role", "/dashboard", "/dashboard/", "/dashboard/reports/42"}
	for _, p := range matched {
		if !Matches(p) {
			t.Errorf("Matches(%q) = false, want true", p)
		}
	}

	unmatched := []string{"/", "/about", "/health", "/auth/login", "/dashboards", "/dashboardx", "/login/extra"}
	for _, p := range unmatched {
		if Matches(p) {
			t.Errorf("Matches(%q) = true, want false", p)
		}
	}
}

func guardedRequest(t *testing.T, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	Middleware()(next).ServeHTTP(rec, req)

	return rec
}

func TestMiddlewareUnmatchedPathUntouched(t *testing.T) {
	rec := guardedRequest(t, "/about")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Header().Get("Cache-Control"); got != "" {
		t.Fatalf("unmatched path got Cache-Control %q, want none", got)
	}
}

func TestMiddlewareRedirectsAnonymousDashboard(t *testing.T) {
	rec := guardedRequest(t, "/dashboard/anything")

	if rec.Code != http.StatusTemporaryRedirect {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusTemporaryRedirect)
	}
	if loc := rec.Header().Get("Location"); loc != LoginPath {
		t.Fatalf("Location = %q, want %q", loc, LoginPath)
	}
}

func TestMiddlewarePendingForcesSelectRole(t *testing.T) {
	rec := guardedRequest(t, "/login",
		&http.Cookie{Name: session.TokenCookie, Value: "tok"},
		&http.Cookie{Name: session.PendingCookie, Value: "true"},
	)

	if rec.Code != http.StatusTemporaryRedirect {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusTemporaryRedirect)
	}
	if loc := rec.Header().Get("Location"); loc != SelectRolePath {
		t.Fatalf("Location = %q, want %q", loc, SelectRolePath)
	}
}

func TestMiddlewarePendingIsPresenceBased(t *testing.T) {
	// Any value counts, not just "true".
	rec := guardedRequest(t, "/dashboard",
		&http.Cookie{Name: session.TokenCookie, Value: "tok"},
		&http.Cookie{Name: session.PendingCookie, Value: "1"},
	)

	if loc := rec.Header().Get("Location"); loc != SelectRolePath {
		t.Fatalf("Location = %q, want %q", loc, SelectRolePath)
	}
}

func TestMiddlewareAllowsDashboardWithNoCacheHeaders(t *testing.T) {
	rec := guardedRequest(t, "/dashboard",
		&http.Cookie{Name: session.TokenCookie, Value: "tok"},
	)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Header().Get("Cache-Control"); got != "no-store, no-cache, must-revalidate, proxy-revalidate" {
		t.Fatalf("Cache-Control = %q", got)
	}
	if got := rec.Header().Get("Pragma"); got != "no-cache" {
		t.Fatalf("Pragma = %q", got)
	}
	if got := rec.Header().Get("Expires"); got != "0" {
		t.Fatalf("Expires = %q", got)
	}
}

func TestMiddlewareEmptyTokenCookieIsAnonymous(t *testing.T) {
	rec := guardedRequest(t, "/dashboard",
		&http.Cookie{Name: session.TokenCookie, Value: ""},
	)

	if loc := rec.Header().Get("Location"); loc != LoginPath {
		t.Fatalf("Location = %q, want %q", loc, LoginPath)
	}
}
