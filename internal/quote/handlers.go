// quote/handlers.go
package quote

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
)

// dateLayout is the wire format for quote dates
const dateLayout = "2006-01-02"

// Handler provides HTTP handlers for quote CRUD
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler creates a new quote handler
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// quotePayload is the JSON shape for quotes on the wire
type quotePayload struct {
	ID             int64                  `json:"id,omitempty"`
	QuoteNumber    string                 `json:"quote_number"`
	Date           string                 `json:"date"`
	VINNumber      string                 `json:"vin_number"`
	VINPictureLink string                 `json:"vin_picture_link,omitempty"`
	Year           int                    `json:"year,omitempty"`
	Make           string                 `json:"make,omitempty"`
	Model          string                 `json:"model,omitempty"`
	Instructions   string                 `json:"instructions,omitempty"`
	Services       map[string]ServiceLine `json:"services,omitempty"`
	GrandTotal     float64                `json:"grand_total"`
}

func toPayload(q *Quote) quotePayload {
	services := make(map[string]ServiceLine, len(q.Services))
	for key, line := range q.Services {
		services[string(key)] = line
	}
	return quotePayload{
		ID:             q.ID,
		QuoteNumber:    q.QuoteNumber,
		Date:           q.Date.Format(dateLayout),
		VINNumber:      q.VINNumber,
		VINPictureLink: q.VINPictureLink,
		Year:           q.Year,
		Make:           q.Make,
		Model:          q.Model,
		Instructions:   q.Instructions,
		Services:       services,
		GrandTotal:     q.GrandTotal(),
	}
}

func (p quotePayload) toQuote() (*Quote, error) {
	date, err := time.Parse(dateLayout, p.Date)
	if err != nil {
		return nil, errors.New("date must be formatted YYYY-MM-DD")
	}
	services := make(map[ServiceKey]ServiceLine, len(p.Services))
	for key, line := range p.Services {
		services[ServiceKey(key)] = line
	}
	return &Quote{
		ID:             p.ID,
		QuoteNumber:    p.QuoteNumber,
		Date:           date,
		VINNumber:      p.VINNumber,
		VINPictureLink: p.VINPictureLink,
		Year:           p.Year,
		Make:           p.Make,
		Model:          p.Model,
		Instructions:   p.Instructions,
		Services:       services,
	}, nil
}

// ListHandler returns quotes matching the query-parameter filters
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := ListFilter{
		VIN:         query.Get("vin"),
		QuoteNumber: query.Get("quote_number"),
		Make:        query.Get("make"),
		Model:       query.Get("model"),
	}
	if from := query.Get("date_from"); from != "" {
		if t, err := time.Parse(dateLayout, from); err == nil {
			filter.DateFrom = t
		}
	}
	if to := query.Get("date_to"); to != "" {
		if t, err := time.Parse(dateLayout, to); err == nil {
			filter.DateTo = t
		}
	}

	quotes, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("listing quotes failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list quotes")
		return
	}

	payloads := make([]quotePayload, 0, len(quotes))
	for _, q := range quotes {
		payloads = append(payloads, toPayload(q))
	}
	writeJSON(w, http.StatusOK, map[string]any{"quotes": payloads})
}

// CreateHandler stores a new quote
func (h *Handler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var payload quotePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	q, err := payload.toQuote()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.service.Create(r.Context(), q); err != nil {
		if errors.Is(err, ErrInvalid) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("creating quote failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create quote")
		return
	}

	writeJSON(w, http.StatusCreated, toPayload(q))
}

// GetHandler returns a single quote
func (h *Handler) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	q, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "quote not found")
			return
		}
		h.logger.Error("loading quote failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load quote")
		return
	}

	writeJSON(w, http.StatusOK, toPayload(q))
}

// UpdateHandler replaces an existing quote
func (h *Handler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var payload quotePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	q, err := payload.toQuote()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	q.ID = id

	if err := h.service.Update(r.Context(), q); err != nil {
		switch {
		case errors.Is(err, ErrInvalid):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrNotFound):
			writeError(w, http.StatusNotFound, "quote not found")
		default:
			h.logger.Error("updating quote failed", "id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to update quote")
		}
		return
	}

	writeJSON(w, http.StatusOK, toPayload(q))
}

// DeleteHandler removes a quote and returns its id
func (h *Handler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "quote not found")
			return
		}
		h.logger.Error("deleting quote failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete quote")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"id": id})
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid quote id")
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
