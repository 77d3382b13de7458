// routes/photo.go
package routes

import (
	"github.com/gorilla/mux"

	"github.com/finishlineauto/quoteserver/internal/photo"
)

// RegisterPhotoRoutes registers the photo upload route
func RegisterPhotoRoutes(router *mux.Router, photoHandler *photo.Handler) {
	router.HandleFunc("/photos", photoHandler.UploadHandler).Methods("POST")
}
