// routes/auth.go
package routes

import (
	"github.com/gorilla/mux"

	"github.com/finishlineauto/quoteserver/internal/auth"
)

// RegisterAuthRoutes registers the Xero connection routes
func RegisterAuthRoutes(router *mux.Router, authHandler *auth.Handler) {
	router.HandleFunc("/auth/xero/connect", authHandler.ConnectHandler).Methods("GET")
	router.HandleFunc("/auth/xero/callback", authHandler.CallbackHandler).Methods("GET")
	router.HandleFunc("/auth/xero/disconnect", authHandler.DisconnectHandler).Methods("POST")
	router.HandleFunc("/auth/xero/status", authHandler.StatusHandler).Methods("GET")
}
