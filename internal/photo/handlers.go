// photo/handlers.go
package photo

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// maxUploadBytes caps a single photo upload
const maxUploadBytes = 20 << 20 // 20 MiB

// Handler provides the photo upload HTTP surface
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler creates a new photo handler
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// UploadHandler accepts a multipart file and returns its public URL
func (h *Handler) UploadHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file in request")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		writeError(w, http.StatusBadRequest, "no selected file")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := h.service.Upload(r.Context(), header.Filename, contentType, file)
	if err != nil {
		h.logger.Error("photo upload failed", "filename", header.Filename, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store photo")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
