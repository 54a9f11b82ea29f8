/*
Package handler provides HTTP handler functions for the gateway's pages and
authentication flow.

This file contains the three session controllers: login, role selection, and
logout. Each one performs a single remote session API call, updates the
persistent session state, and returns the navigation target for the page
script to follow.
*/
package handler

import (
	"errors"
	"net/http"
	"strings"

	"rbacgate/internal/guard"
	"rbacgate/internal/pkg/errs"
	"rbacgate/internal/pkg/logx"
	"rbacgate/internal/pkg/req"
	"rbacgate/internal/pkg/resp"
	"rbacgate/internal/upstream"
)

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HandleLogin exchanges credentials for a session. On success it persists
// the session, sets or clears the role-selection-pending cookie depending on
// whether the remote API already resolved an active role, and returns the
// matching redirect target. On failure nothing is persisted.
func HandleLogin(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input LoginInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if strings.TrimSpace(input.Username) == "" || strings.TrimSpace(input.Password) == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrMissingCredentials))
			return
		}

		result, err := deps.Upstream.Login(r.Context(), input.Username, input.Password)
		if err != nil {
			var authErr *upstream.AuthError
			if errors.As(err, &authErr) {
				logx.Warn("Login rejected by remote session API.", "status", authErr.StatusCode)
				resp.RespondError(w, r, errs.WithMessage(errs.ErrLoginRejected, authErr.Message))
				return
			}

			logx.Error(err, "Login call to remote session API failed.")
			resp.RespondError(w, r, errs.NewError(errs.ErrUpstreamUnavailable))
			return
		}

		if err := deps.Sessions.SaveSession(r.Context(), w, result.Token, result.Record); err != nil {
			logx.Error(err, "Failed to persist session after login.")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		redirect := guard.DashboardPrefix
		if result.Record.ActiveRole != "" {
			deps.Sessions.ClearRoleSelectionPending(w)
		} else {
			deps.Sessions.MarkRoleSelectionPending(w)
			redirect = guard.SelectRolePath
		}

		resp.RespondSuccess(w, r, map[string]any{
			"redirect": redirect,
		})
	}
}

type SelectRoleInput struct {
	RoleCode string `json:"roleCode"`
}

// HandleSelectRole binds the session to the chosen role. The remote API
// issues a fresh token for the role, so the local session record moves to
// the new token and the pending cookie is cleared.
func HandleSelectRole(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := deps.Sessions.Token(r)
		if !ok {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		var input SelectRoleInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if strings.TrimSpace(input.RoleCode) == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrMissingRoleCode))
			return
		}

		newToken, err := deps.Upstream.SelectRole(r.Context(), token, input.RoleCode)
		if err != nil {
			var authErr *upstream.AuthError
			if errors.As(err, &authErr) {
				logx.Warn("Role selection rejected by remote session API.", "status", authErr.StatusCode, "role", input.RoleCode)
				resp.RespondError(w, r, errs.WithMessage(errs.ErrRoleSelectionRejected, authErr.Message))
				return
			}

			logx.Error(err, "Role selection call to remote session API failed.")
			resp.RespondError(w, r, errs.NewError(errs.ErrUpstreamUnavailable))
			return
		}

		if err := deps.Sessions.RotateToken(r.Context(), w, token, newToken, input.RoleCode); err != nil {
			logx.Error(err, "Failed to persist session after role selection.")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		deps.Sessions.ClearRoleSelectionPending(w)

		resp.RespondSuccess(w, r, map[string]any{
			"redirect": guard.DashboardPrefix,
		})
	}
}

// HandleLogout ends the session. The remote logout call is best-effort;
// local cleanup always runs, so the browser ends up signed out even when
// the remote API is down.
func HandleLogout(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, _ := deps.Sessions.Token(r)

		if token != "" {
			if err := deps.Upstream.Logout(r.Context(), token); err != nil {
				logx.Warn("Remote logout failed; clearing local session anyway.", "error", err)
			}
		}

		deps.Sessions.ClearAll(r.Context(), w, token)

		resp.RespondSuccess(w, r, map[string]any{
			"redirect": guard.LoginPath,
		})
	}
}
