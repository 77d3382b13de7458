// routes/quote.go
package routes

import (
	"github.com/gorilla/mux"

	"github.com/finishlineauto/quoteserver/internal/quote"
	"github.com/finishlineauto/quoteserver/internal/xero"
)

// RegisterQuoteRoutes registers quote CRUD and export routes
func RegisterQuoteRoutes(router *mux.Router, quoteHandler *quote.Handler, xeroHandler *xero.Handler) {
	router.HandleFunc("/quotes", quoteHandler.ListHandler).Methods("GET")
	router.HandleFunc("/quotes", quoteHandler.CreateHandler).Methods("POST")
	router.HandleFunc("/quotes/{id:[0-9]+}", quoteHandler.GetHandler).Methods("GET")
	router.HandleFunc("/quotes/{id:[0-9]+}", quoteHandler.UpdateHandler).Methods("PUT")
	router.HandleFunc("/quotes/{id:[0-9]+}/delete", quoteHandler.DeleteHandler).Methods("POST")
	router.HandleFunc("/quotes/{id:[0-9]+}/send-to-xero", xeroHandler.SendQuoteHandler).Methods("POST")
}
