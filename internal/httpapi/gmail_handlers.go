package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"outreach-engine/internal/gmail"
)

type GmailHandler struct {
	Service *gmail.Service // nil when the deployment uses SMTP
}

type gmailAuthRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code,omitempty"`
	RedirectURI string `json:"redirect_uri,omitempty"`
}

// AuthStatus reports whether a usable grant exists for the queried email.
func (h GmailHandler) AuthStatus(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		WriteError(w, r, http.StatusNotImplemented, "gmail_disabled", "gmail transport is not configured")
		return
	}
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_email", "email query parameter is required")
		return
	}
	writeJSON(w, map[string]any{
		"success":       true,
		"authenticated": h.Service.IsAuthenticated(email),
	})
}

// Auth initiates or completes an OAuth grant. Without a code it returns the
// consent URL; with one it exchanges and stores the token.
func (h GmailHandler) Auth(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		WriteError(w, r, http.StatusNotImplemented, "gmail_disabled", "gmail transport is not configured")
		return
	}
	var req gmailAuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_email", "email is required")
		return
	}

	if req.Code == "" {
		writeJSON(w, map[string]any{
			"success":  true,
			"auth_url": h.Service.AuthURL(req.RedirectURI),
		})
		return
	}

	if err := h.Service.Exchange(r.Context(), req.Email, req.Code, req.RedirectURI); err != nil {
		WriteError(w, r, http.StatusBadGateway, "exchange_failed", err.Error())
		return
	}
	writeJSON(w, map[string]any{"success": true, "authenticated": true})
}

// Revoke invalidates and deletes the stored grant for the queried email.
func (h GmailHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		WriteError(w, r, http.StatusNotImplemented, "gmail_disabled", "gmail transport is not configured")
		return
	}
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_email", "email query parameter is required")
		return
	}
	if err := h.Service.Revoke(r.Context(), email); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "revoke_failed", err.Error())
		return
	}
	writeJSON(w, map[string]any{"success": true, "authenticated": false})
}
