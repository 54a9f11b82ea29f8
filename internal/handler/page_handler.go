/*
Package handler provides HTTP handler functions for the gateway's pages and
authentication flow.

This file contains the server-rendered pages. The route guard has already
run by the time these execute, so each page only deals with its own data:
the select-role page reads the stored roles, the dashboard fetches and
renders the menu forest.
*/
package handler

import (
	"html/template"
	"net/http"

	"rbacgate/internal/menu"
	"rbacgate/internal/pkg/logx"
)

func renderPage(deps *AppDeps, w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := deps.Pages.Render(w, name, data); err != nil {
		// Headers are gone by now; all we can do is log.
		logx.Error(err, "Failed to render page.", "page", name)
	}
}

// HandleLandingPage serves the public landing page.
func HandleLandingPage(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(deps, w, "landing", nil)
	}
}

// HandleLoginPage serves the login form.
func HandleLoginPage(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(deps, w, "login", nil)
	}
}

// HandleSelectRolePage serves the role picker, listing the roles from the
// stored user record. An empty sequence (no record yet, or a malformed one)
// renders the loading state.
func HandleSelectRolePage(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, _ := deps.Sessions.Token(r)

		data := struct {
			Roles []string
		}{
			Roles: deps.Sessions.ReadRoles(r.Context(), token),
		}

		renderPage(deps, w, "select_role", data)
	}
}

// HandleDashboardPage serves the dashboard with the sidebar rendered from a
// fresh menu fetch. A failed fetch renders an empty sidebar rather than an
// error page; the failure is logged so it stays distinguishable from a role
// with no menus.
func HandleDashboardPage(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, _ := deps.Sessions.Token(r)

		forest, err := deps.Upstream.ListMenus(r.Context(), token)
		if err != nil {
			logx.Warn("Menu fetch failed; rendering empty sidebar.", "error", err)
			forest = []menu.Node{}
		}

		sidebar, err := deps.Sidebar.Sidebar("Menu", forest)
		if err != nil {
			logx.Error(err, "Failed to render sidebar.")
			sidebar = template.HTML("")
		}

		data := struct {
			Sidebar    template.HTML
			ActiveRole string
		}{
			Sidebar:    sidebar,
			ActiveRole: deps.Sessions.ActiveRole(r.Context(), token),
		}

		renderPage(deps, w, "dashboard", data)
	}
}
