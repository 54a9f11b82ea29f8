package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rbacgate/internal/menu"
	"rbacgate/internal/pkg/errs"
	"rbacgate/internal/session"
)

func routedRequest(deps *AppDeps, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	Router(deps).ServeHTTP(rec, req)

	return rec
}

func TestRouterHealth(t *testing.T) {
	rec := routedRequest(newTestDeps(&fakeAPI{}), "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "RBAC Gateway")
}

func TestRouterGuardRedirectsAnonymousDashboard(t *testing.T) {
	rec := routedRequest(newTestDeps(&fakeAPI{}), "/dashboard")

	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRouterGuardBouncesLoggedInLogin(t *testing.T) {
	rec := routedRequest(newTestDeps(&fakeAPI{}), "/login",
		&http.Cookie{Name: session.TokenCookie, Value: "tok"})

	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
}

func TestRouterLandingPageIsPublic(t *testing.T) {
	rec := routedRequest(newTestDeps(&fakeAPI{}), "/")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Role-Based Access Control")
}

func TestRouterDashboardRendersSidebar(t *testing.T) {
	api := &fakeAPI{
		menus: []menu.Node{
			{
				ID: 1, Name: "Admin", URL: "/dashboard/admin",
				Children: []menu.Node{
					{ID: 2, Name: "Users", URL: "/dashboard/admin/users"},
				},
			},
			{ID: 3, Name: "Reports", URL: "/dashboard/reports"},
		},
	}
	deps := newTestDeps(api)

	seed := httptest.NewRecorder()
	require.NoError(t, deps.Sessions.SaveSession(context.Background(), seed, "tok",
		session.Record{Roles: []string{"admin"}, ActiveRole: "admin"}))

	rec := routedRequest(deps, "/dashboard",
		&http.Cookie{Name: session.TokenCookie, Value: "tok"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store, no-cache, must-revalidate, proxy-revalidate", rec.Header().Get("Cache-Control"))

	body := rec.Body.String()
	assert.Contains(t, body, `href="/dashboard/admin/users"`)
	assert.Contains(t, body, `href="/dashboard/reports"`)
	assert.Contains(t, body, "<summary>Admin</summary>")
	assert.Contains(t, body, "admin", "active role shown")
}

func TestRouterDashboardMenuFetchFailureRendersEmptySidebar(t *testing.T) {
	api := &fakeAPI{menusErr: assert.AnError}
	deps := newTestDeps(api)

	rec := routedRequest(deps, "/dashboard",
		&http.Cookie{Name: session.TokenCookie, Value: "tok"})

	require.Equal(t, http.StatusOK, rec.Code, "a broken menu fetch must not break the page")
	assert.NotContains(t, rec.Body.String(), "menu-leaf")
}

func TestRouterSelectRolePageListsStoredRoles(t *testing.T) {
	deps := newTestDeps(&fakeAPI{})

	seed := httptest.NewRecorder()
	require.NoError(t, deps.Sessions.SaveSession(context.Background(), seed, "tok",
		session.Record{Roles: []string{"admin", "viewer"}}))

	rec := routedRequest(deps, "/select-role",
		&http.Cookie{Name: session.TokenCookie, Value: "tok"},
		&http.Cookie{Name: session.PendingCookie, Value: "true"})

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `data-role="admin"`)
	assert.Contains(t, body, `data-role="viewer"`)
}

func TestRouterLoginRateLimitExceeded(t *testing.T) {
	api := &fakeAPI{}
	router := Router(newTestDeps(api))

	// The limiter keys on the client IP, so the requests must go through
	// one router instance. Empty credentials keep every attempt inside the
	// gateway; only the limiter decides when to cut them off.
	var rec *httptest.ResponseRecorder
	for i := 0; i < LoginBurst+1; i++ {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"","password":""}`))
		req.Header.Set("Content-Type", "application/json")
		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if i < LoginBurst {
			require.Equal(t, http.StatusBadRequest, rec.Code, "request %d should still reach the handler", i+1)
		}
	}

	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, errs.ErrRateLimitExceeded, env.Code)
	assert.NotEmpty(t, env.Message)

	assert.Zero(t, api.loginCalls, "invalid credentials must never reach the remote API")
}

func TestRouterSelectRolePageWithoutRolesShowsLoadingState(t *testing.T) {
	deps := newTestDeps(&fakeAPI{})

	rec := routedRequest(deps, "/select-role",
		&http.Cookie{Name: session.TokenCookie, Value: "tok"},
		&http.Cookie{Name: session.PendingCookie, Value: "true"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Loading roles...")
}
