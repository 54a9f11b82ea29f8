package session

import (
	"context"
	"net/http"
	"time"

	"rbacgate/internal/pkg/logx"
)

// Cookie names shared between the session manager (which writes them) and
// the route guard (which only reads them).
const (
	// TokenCookie holds the opaque session token issued by the remote
	// session API. It expires with the session TTL.
	TokenCookie = "token"

	// PendingCookie marks a logged-in user who has not chosen an active
	// role yet. It is presence-based: the value is irrelevant, existence
	// means pending. It carries no explicit expiry.
	PendingCookie = "role_selection_pending"
)

// Manager is the single place where session state is written or cleared.
// It combines the token-keyed record Store with the cookie surface, so
// controllers never touch either directly.
type Manager struct {
	store Store
	ttl   time.Duration

	// secure marks the cookies Secure; enabled outside development.
	secure bool
}

// NewManager returns a Manager writing records with the given TTL.
func NewManager(store Store, ttl time.Duration, secureCookies bool) *Manager {
	return &Manager{
		store:  store,
		ttl:    ttl,
		secure: secureCookies,
	}
}

// SaveSession stores the record under the token and sets the token cookie
// with an expiry matching the session TTL.
func (m *Manager) SaveSession(ctx context.Context, w http.ResponseWriter, token string, rec Record) error {
	if err := m.store.Save(ctx, token, rec, m.ttl); err != nil {
		return err
	}

	m.setCookie(w, TokenCookie, token, int(m.ttl.Seconds()))

	return nil
}

// MarkRoleSelectionPending sets the pending-flag cookie.
func (m *Manager) MarkRoleSelectionPending(w http.ResponseWriter) {
	m.setCookie(w, PendingCookie, "true", 0)
}

// ClearRoleSelectionPending removes the pending-flag cookie.
func (m *Manager) ClearRoleSelectionPending(w http.ResponseWriter) {
	m.expireCookie(w, PendingCookie)
}

// UpdateActiveRole rewrites the stored record with the given active role.
// When no record exists under the token, or the stored one cannot be read,
// this is a no-op: the session simply proceeds without a local role copy.
func (m *Manager) UpdateActiveRole(ctx context.Context, token, roleCode string) error {
	rec, found, err := m.store.Load(ctx, token)
	if err != nil || !found {
		if err != nil {
			logx.Warn("Skipping active role update: session record unreadable.", "error", err)
		}
		return nil
	}

	rec.ActiveRole = roleCode

	return m.store.Save(ctx, token, rec, m.ttl)
}

// RotateToken moves the session to a newly issued token: the record is
// saved under the new token with the chosen role, the old entry is removed,
// and the token cookie is rewritten. A missing or unreadable old record
// still rotates the token; the new session just starts with a bare record.
func (m *Manager) RotateToken(ctx context.Context, w http.ResponseWriter, oldToken, newToken, roleCode string) error {
	rec, found, err := m.store.Load(ctx, oldToken)
	if err != nil {
		logx.Warn("Rotating token without previous record.", "error", err)
		rec = Record{}
	}

	rec.ActiveRole = roleCode

	if err := m.store.Save(ctx, newToken, rec, m.ttl); err != nil {
		return err
	}

	if found && oldToken != newToken {
		if err := m.store.Delete(ctx, oldToken); err != nil {
			logx.Warn("Failed to delete rotated session record.", "error", err)
		}
	}

	m.setCookie(w, TokenCookie, newToken, int(m.ttl.Seconds()))

	return nil
}

// ClearAll removes the stored record and expires both session cookies. It
// never fails the caller: logout cleanup must complete regardless of store
// availability.
func (m *Manager) ClearAll(ctx context.Context, w http.ResponseWriter, token string) {
	if token != "" {
		if err := m.store.Delete(ctx, token); err != nil {
			logx.Warn("Failed to delete session record during logout.", "error", err)
		}
	}

	m.expireCookie(w, TokenCookie)
	m.expireCookie(w, PendingCookie)
}

// ReadRoles returns the roles sequence from the stored record, or an empty
// sequence when the record is absent or malformed. It never reports an
// error; a broken record reads the same as a missing one.
func (m *Manager) ReadRoles(ctx context.Context, token string) []string {
	rec, found, err := m.store.Load(ctx, token)
	if err != nil {
		logx.Warn("Failed to read session record for roles.", "error", err)
		return []string{}
	}
	if !found || rec.Roles == nil {
		return []string{}
	}

	return rec.Roles
}

// ActiveRole returns the active role from the stored record, or the empty
// string when the record is absent, malformed, or carries no active role.
func (m *Manager) ActiveRole(ctx context.Context, token string) string {
	rec, found, err := m.store.Load(ctx, token)
	if err != nil || !found {
		return ""
	}

	return rec.ActiveRole
}

// Token extracts the session token from the request's cookie, if any.
func (m *Manager) Token(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(TokenCookie)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	return cookie.Value, true
}

// setCookie writes a cookie scoped to the whole site. maxAge of zero means
// a session cookie (no explicit expiry).
func (m *Manager) setCookie(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// expireCookie instructs the browser to drop the cookie immediately.
func (m *Manager) expireCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
