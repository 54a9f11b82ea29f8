/*
Package handler provides HTTP handler functions for the gateway's pages and
authentication flow.

This file defines the main Router, applying necessary middleware like logging, CORS,
the route guard, and IP-based rate limiting before delegating requests to the page
and controller handlers.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"rbacgate/internal/guard"
	"rbacgate/internal/pkg/limiter"
	"rbacgate/internal/pkg/logx"
	"rbacgate/internal/pkg/resp"
)

const (
	// LoginRate bounds credential attempts per IP. Half a token per second
	// with a small burst keeps brute forcing slow without hurting a user
	// who mistypes a password.
	LoginRate  = 0.5
	LoginBurst = 5

	SelectRoleRate  = 1
	SelectRoleBurst = 5
)

// Router sets up the main HTTP routing table (chi.Router) for the gateway.
// It configures CORS from the allowed origins, applies global middleware
// including the route guard, and wires the page and controller handlers.
func Router(deps *AppDeps) http.Handler {
	loginLimiter := limiter.NewIPRateLimiter(rate.Limit(LoginRate), LoginBurst)
	selectRoleLimiter := limiter.NewIPRateLimiter(rate.Limit(SelectRoleRate), SelectRoleBurst)

	r := chi.NewRouter()

	corsAllowedOrigins := []string{}
	if deps.Config.Environment == "development" {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	// The guard only touches /login, /select-role, and /dashboard paths;
	// everything else passes through it unchanged.
	r.Use(guard.Middleware())

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		data := map[string]string{
			"status":  "ok",
			"service": "RBAC Gateway",
		}
		resp.RespondSuccess(w, r, data)
	})

	r.Get("/", HandleLandingPage(deps))
	r.Get(guard.LoginPath, HandleLoginPage(deps))
	r.Get(guard.SelectRolePath, HandleSelectRolePage(deps))
	r.Get(guard.DashboardPrefix, HandleDashboardPage(deps))
	r.Get(guard.DashboardPrefix+"/*", HandleDashboardPage(deps))

	r.Route("/auth", func(auth chi.Router) {
		auth.With(loginLimiter.Middleware).Post("/login", HandleLogin(deps))
		auth.With(selectRoleLimiter.Middleware).Post("/select-role", HandleSelectRole(deps))
		auth.Post("/logout", HandleLogout(deps))
	})

	return r
}
