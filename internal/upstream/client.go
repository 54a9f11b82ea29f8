/*
Package upstream implements the HTTP client for the remote session API, the
service that performs the actual authentication and authorization work.

The gateway consumes four calls: login, role selection, menu retrieval, and
logout. All of them speak the API's {code, message, data} JSON envelope; a
rejected call surfaces as an *AuthError carrying the server-supplied message
so controllers can show it to the user verbatim.
*/
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"rbacgate/internal/menu"
	"rbacgate/internal/session"

	"github.com/google/uuid"
)

// AuthError is the typed failure for a non-2xx response from the remote
// session API. Message is the server-supplied text when present, empty
// otherwise.
type AuthError struct {
	StatusCode int
	Message    string
}

// Error implements the standard Go error interface.
func (e *AuthError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote session API rejected the request (HTTP %d)", e.StatusCode)
	}
	return fmt.Sprintf("remote session API rejected the request (HTTP %d): %s", e.StatusCode, e.Message)
}

// Client is a thin HTTP client over the remote session API.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// NewClient returns a Client for the API rooted at baseURL. Every request
// is bounded by the given timeout on top of the caller's context.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc: &http.Client{
			Timeout: timeout,
		},
	}
}

// envelope is the remote API's response wrapper.
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// do performs one API call and returns the envelope's data payload.
// A non-2xx status yields an *AuthError; transport failures pass through
// wrapped.
func (c *Client) do(ctx context.Context, method, path, token string, body any) (json.RawMessage, error) {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remote session API unreachable: %w", err)
	}
	defer res.Body.Close()

	// Bodies are small JSON documents; bound them anyway.
	raw, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var env envelope
	if len(raw) > 0 {
		// A body that is not the expected envelope is tolerated: error
		// responses still carry the HTTP status, success responses without
		// a payload (logout) need no data.
		_ = json.Unmarshal(raw, &env)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &AuthError{
			StatusCode: res.StatusCode,
			Message:    env.Message,
		}
	}

	return env.Data, nil
}

// LoginResult is the payload of a successful login call.
type LoginResult struct {
	// Token is the issued session token.
	Token string

	// Record is the full user payload with roles and, when the user has a
	// single role, the already-active role. Fields the gateway does not
	// model stay inside the record opaquely.
	Record session.Record
}

// Login exchanges credentials for a session token and user record.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	data, err := c.do(ctx, http.MethodPost, "/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	var payload struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode login payload: %w", err)
	}
	if payload.Token == "" {
		return nil, fmt.Errorf("login payload carried no token")
	}

	var rec session.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode login user record: %w", err)
	}

	return &LoginResult{
		Token:  payload.Token,
		Record: rec,
	}, nil
}

// SelectRole binds the session to the chosen role and returns the newly
// issued token. It is only meaningful while holding a valid session token.
func (c *Client) SelectRole(ctx context.Context, token, roleCode string) (string, error) {
	data, err := c.do(ctx, http.MethodPost, "/auth/select-role", token, map[string]string{
		"roleCode": roleCode,
	})
	if err != nil {
		return "", err
	}

	var payload struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", fmt.Errorf("failed to decode role selection payload: %w", err)
	}
	if payload.Token == "" {
		return "", fmt.Errorf("role selection payload carried no token")
	}

	return payload.Token, nil
}

// ListMenus fetches the navigation forest authorized for the session's
// active role. Callers treat any failure as an empty forest.
func (c *Client) ListMenus(ctx context.Context, token string) ([]menu.Node, error) {
	data, err := c.do(ctx, http.MethodGet, "/menus", token, nil)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Menus []menu.Node `json:"menus"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode menu payload: %w", err)
	}
	if payload.Menus == nil {
		return []menu.Node{}, nil
	}

	return payload.Menus, nil
}

// Logout invalidates the session upstream. Best-effort: callers proceed
// with local cleanup whatever this returns.
func (c *Client) Logout(ctx context.Context, token string) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/logout", token, nil)
	return err
}
