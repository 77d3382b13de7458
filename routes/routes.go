// routes/routes.go
package routes

import (
	"github.com/gorilla/mux"

	"github.com/finishlineauto/quoteserver/internal/auth"
	"github.com/finishlineauto/quoteserver/internal/photo"
	"github.com/finishlineauto/quoteserver/internal/quote"
	"github.com/finishlineauto/quoteserver/internal/xero"
)

// SetupRoutes configures all API routes
func SetupRoutes(
	router *mux.Router,
	authHandler *auth.Handler,
	quoteHandler *quote.Handler,
	photoHandler *photo.Handler,
	xeroHandler *xero.Handler,
) {
	RegisterAuthRoutes(router, authHandler)

	apiRouter := router.PathPrefix("/api").Subrouter()
	RegisterQuoteRoutes(apiRouter, quoteHandler, xeroHandler)
	RegisterPhotoRoutes(apiRouter, photoHandler)
}
