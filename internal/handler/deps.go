package handler

import (
	"context"

	"rbacgate/internal/configs"
	"rbacgate/internal/menu"
	"rbacgate/internal/session"
	"rbacgate/internal/upstream"
	"rbacgate/internal/web"
)

// SessionAPI is the slice of the remote session API the handlers consume.
// *upstream.Client satisfies it; tests substitute a fake.
type SessionAPI interface {
	Login(ctx context.Context, username, password string) (*upstream.LoginResult, error)
	SelectRole(ctx context.Context, token, roleCode string) (string, error)
	ListMenus(ctx context.Context, token string) ([]menu.Node, error)
	Logout(ctx context.Context, token string) error
}

// AppDeps bundles everything the handlers need.
type AppDeps struct {
	Config   *configs.AppConfig
	Sessions *session.Manager
	Upstream SessionAPI
	Pages    *web.Templates
	Sidebar  *menu.Renderer
}
