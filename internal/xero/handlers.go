// xero/handlers.go
package xero

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/finishlineauto/quoteserver/internal/auth"
	"github.com/finishlineauto/quoteserver/internal/quote"
)

// QuoteSender pushes a quote to the accounting provider
type QuoteSender interface {
	SendQuote(ctx context.Context, q *quote.Quote) (*SendResult, error)
}

// Handler provides the send-to-Xero HTTP surface
type Handler struct {
	sender QuoteSender
	quotes *quote.Service
	logger *slog.Logger
}

// NewHandler creates a new Xero handler
func NewHandler(sender QuoteSender, quotes *quote.Service, logger *slog.Logger) *Handler {
	return &Handler{
		sender: sender,
		quotes: quotes,
		logger: logger,
	}
}

// SendQuoteHandler loads a quote and pushes it to Xero
func (h *Handler) SendQuoteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid quote id")
		return
	}

	q, err := h.quotes.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, quote.ErrNotFound) {
			writeError(w, http.StatusNotFound, "quote not found")
			return
		}
		h.logger.Error("loading quote failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load quote")
		return
	}

	result, err := h.sender.SendQuote(r.Context(), q)
	if err != nil {
		h.logger.Warn("sending quote to xero failed", "id", id, "error", err)
		switch {
		case errors.Is(err, auth.ErrNotAuthorized):
			writeError(w, http.StatusUnauthorized, "not connected to Xero, please authorize first")
		case errors.Is(err, ErrRemoteRejected):
			writeError(w, http.StatusBadGateway, err.Error())
		default:
			writeError(w, http.StatusBadGateway, "failed to reach Xero: "+err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":        "sent",
		"xero_quote_id": result.QuoteID,
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
