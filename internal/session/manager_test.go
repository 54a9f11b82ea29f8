package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newManagerTest() *Manager {
	return NewManager(NewMemoryStore(), 24*time.Hour, false)
}

func findCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()

	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}

	return nil
}

func TestSaveSessionRoundTrip(t *testing.T) {
	m := newManagerTest()
	ctx := context.Background()
	rec := httptest.NewRecorder()

	user := Record{Roles: []string{"admin", "viewer"}}
	if err := m.SaveSession(ctx, rec, "tok", user); err != nil {
		t.Fatalf("save session: %v", err)
	}

	roles := m.ReadRoles(ctx, "tok")
	if len(roles) != 2 || roles[0] != "admin" || roles[1] != "viewer" {
		t.Fatalf("roles = %v, want [admin viewer] in order", roles)
	}

	cookie := findCookie(t, rec, TokenCookie)
	if cookie == nil {
		t.Fatal("token cookie not set")
	}
	if cookie.Value != "tok" {
		t.Fatalf("token cookie = %q, want %q", cookie.Value, "tok")
	}
	if cookie.MaxAge != int((24 * time.Hour).Seconds()) {
		t.Fatalf("token cookie MaxAge = %d, want one day", cookie.MaxAge)
	}
	if !cookie.HttpOnly {
		t.Fatal("token cookie must be HttpOnly")
	}
}

func TestReadRolesAbsent(t *testing.T) {
	m := newManagerTest()

	roles := m.ReadRoles(context.Background(), "unknown")
	if roles == nil {
		t.Fatal("ReadRoles returned nil, want empty slice")
	}
	if len(roles) != 0 {
		t.Fatalf("roles = %v, want empty", roles)
	}
}

func TestReadRolesMalformedRecord(t *testing.T) {
	store, rdb, done := newRedisStoreTest(t)
	defer done()

	m := NewManager(store, time.Hour, false)
	ctx := context.Background()

	if err := rdb.Set(ctx, sessionKey("tok"), "not json at all", 0).Err(); err != nil {
		t.Fatalf("seed: %v", err)
	}

	roles := m.ReadRoles(ctx, "tok")
	if len(roles) != 0 {
		t.Fatalf("roles = %v, want empty for malformed record", roles)
	}
}

func TestUpdateActiveRoleMissingRecordIsNoop(t *testing.T) {
	m := newManagerTest()

	if err := m.UpdateActiveRole(context.Background(), "unknown", "admin"); err != nil {
		t.Fatalf("UpdateActiveRole on missing record: %v", err)
	}
}

func TestUpdateActiveRole(t *testing.T) {
	m := newManagerTest()
	ctx := context.Background()

	if err := m.SaveSession(ctx, httptest.NewRecorder(), "tok", Record{Roles: []string{"a", "b"}}); err != nil {
		t.Fatalf("save session: %v", err)
	}

	if err := m.UpdateActiveRole(ctx, "tok", "b"); err != nil {
		t.Fatalf("update active role: %v", err)
	}

	if got := m.ActiveRole(ctx, "tok"); got != "b" {
		t.Fatalf("active role = %q, want %q", got, "b")
	}

	// The roles sequence must survive the rewrite.
	if roles := m.ReadRoles(ctx, "tok"); len(roles) != 2 {
		t.Fatalf("roles = %v, want both kept", roles)
	}
}

func TestRotateToken(t *testing.T) {
	m := newManagerTest()
	ctx := context.Background()

	if err := m.SaveSession(ctx, httptest.NewRecorder(), "old", Record{Roles: []string{"a", "b"}}); err != nil {
		t.Fatalf("save session: %v", err)
	}

	rec := httptest.NewRecorder()
	if err := m.RotateToken(ctx, rec, "old", "new", "b"); err != nil {
		t.Fatalf("rotate token: %v", err)
	}

	if roles := m.ReadRoles(ctx, "new"); len(roles) != 2 {
		t.Fatalf("roles under new token = %v, want both", roles)
	}
	if got := m.ActiveRole(ctx, "new"); got != "b" {
		t.Fatalf("active role under new token = %q, want %q", got, "b")
	}
	if roles := m.ReadRoles(ctx, "old"); len(roles) != 0 {
		t.Fatal("old token still resolves a record after rotation")
	}

	cookie := findCookie(t, rec, TokenCookie)
	if cookie == nil || cookie.Value != "new" {
		t.Fatalf("token cookie = %v, want rewritten to new token", cookie)
	}
}

func TestPendingCookieLifecycle(t *testing.T) {
	m := newManagerTest()

	rec := httptest.NewRecorder()
	m.MarkRoleSelectionPending(rec)

	cookie := findCookie(t, rec, PendingCookie)
	if cookie == nil {
		t.Fatal("pending cookie not set")
	}
	if cookie.MaxAge != 0 {
		t.Fatalf("pending cookie MaxAge = %d, want session cookie", cookie.MaxAge)
	}

	rec = httptest.NewRecorder()
	m.ClearRoleSelectionPending(rec)

	cookie = findCookie(t, rec, PendingCookie)
	if cookie == nil {
		t.Fatal("pending cookie not cleared")
	}
	if cookie.MaxAge >= 0 {
		t.Fatalf("pending cookie MaxAge = %d, want expiry", cookie.MaxAge)
	}
}

func TestClearAll(t *testing.T) {
	m := newManagerTest()
	ctx := context.Background()

	if err := m.SaveSession(ctx, httptest.NewRecorder(), "tok", Record{Roles: []string{"a"}}); err != nil {
		t.Fatalf("save session: %v", err)
	}

	rec := httptest.NewRecorder()
	m.ClearAll(ctx, rec, "tok")

	if roles := m.ReadRoles(ctx, "tok"); len(roles) != 0 {
		t.Fatal("record survived ClearAll")
	}

	for _, name := range []string{TokenCookie, PendingCookie} {
		cookie := findCookie(t, rec, name)
		if cookie == nil {
			t.Fatalf("cookie %q not touched by ClearAll", name)
		}
		if cookie.MaxAge >= 0 || cookie.Value != "" {
			t.Fatalf("cookie %q = %q (MaxAge %d), want expired", name, cookie.Value, cookie.MaxAge)
		}
	}
}

func TestClearAllSurvivesStoreFailure(t *testing.T) {
	store, rdb, done := newRedisStoreTest(t)
	m := NewManager(store, time.Hour, false)
	ctx := context.Background()

	if err := m.SaveSession(ctx, httptest.NewRecorder(), "tok", Record{Roles: []string{"a"}}); err != nil {
		t.Fatalf("save session: %v", err)
	}

	// Kill the backing store; cleanup must still expire the cookies.
	done()
	_ = rdb

	rec := httptest.NewRecorder()
	m.ClearAll(ctx, rec, "tok")

	for _, name := range []string{TokenCookie, PendingCookie} {
		cookie := findCookie(t, rec, name)
		if cookie == nil || cookie.MaxAge >= 0 {
			t.Fatalf("cookie %q not expired despite store failure", name)
		}
	}
}

func TestTokenFromRequest(t *testing.T) {
	m := newManagerTest()

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	if _, ok := m.Token(req); ok {
		t.Fatal("token reported on a request without cookies")
	}

	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: "tok"})
	token, ok := m.Token(req)
	if !ok || token != "tok" {
		t.Fatalf("Token() = %q, %v; want tok, true", token, ok)
	}
}
