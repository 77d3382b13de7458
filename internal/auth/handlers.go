// auth/handlers.go
package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

// Handler provides HTTP handlers for the Xero connection flow
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler creates a new auth handler
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// ConnectHandler initiates the Xero authorization flow
func (h *Handler) ConnectHandler(w http.ResponseWriter, r *http.Request) {
	state, err := GenerateState()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate state")
		return
	}

	// Save state in session for verification at callback time
	session := GetSession(r)
	session.Values["xero_state"] = state
	session.Values["xero_state_expiry"] = time.Now().Add(10 * time.Minute).Unix()
	if err := session.Save(r, w); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save session")
		return
	}

	http.Redirect(w, r, h.service.AuthorizationURL(state), http.StatusFound)
}

// CallbackHandler handles the OAuth callback from Xero
func (h *Handler) CallbackHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	session := GetSession(r)
	expectedState, _ := session.Values["xero_state"].(string)

	// Verify the state hasn't expired
	if expiry, ok := session.Values["xero_state_expiry"].(int64); !ok || time.Now().Unix() > expiry {
		expectedState = ""
	}

	// One attempt per issued state
	delete(session.Values, "xero_state")
	delete(session.Values, "xero_state_expiry")
	if err := session.Save(r, w); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save session")
		return
	}

	err := h.service.HandleCallback(r.Context(),
		query.Get("state"), expectedState, query.Get("code"), query.Get("error"))
	if err != nil {
		h.logger.Warn("xero callback failed", "error", err)
		switch {
		case errors.Is(err, ErrStateMismatch):
			writeError(w, http.StatusBadRequest, "invalid state parameter")
		case errors.Is(err, ErrAuthorizationDenied):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusBadGateway, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status": "connected",
	})
}

// DisconnectHandler clears the stored Xero tokens
func (h *Handler) DisconnectHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Disconnect(); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to disconnect: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status": "disconnected",
	})
}

// StatusHandler returns the connection status
func (h *Handler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	token, err := h.service.tokenStore.Load()
	if err != nil || token == nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"connected": false,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"connected":  h.service.IsValid(),
		"tenant_id":  token.TenantID,
		"expires_at": token.Expiry().UTC().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
