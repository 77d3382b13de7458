// auth/session.go
package auth

import (
	"net/http"

	"github.com/gorilla/sessions"
)

var (
	store *sessions.CookieStore
)

// InitSessionStore initializes the cookie session store used to hold the
// in-flight authorization state
func InitSessionStore(secret []byte) {
	store = sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   600, // one authorization attempt, not a login session
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

// GetSession retrieves the auth session
func GetSession(r *http.Request) *sessions.Session {
	session, _ := store.Get(r, "xero-auth-session")
	return session
}
