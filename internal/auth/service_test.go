// auth/service_test.go
package auth

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(t *testing.T, tokenURL string) (*Service, *FileTokenStore) {
	t.Helper()
	store := NewFileTokenStore(filepath.Join(t.TempDir(), "xero_tokens.json"), "")
	svc := NewService(OAuthConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURI:  "https://shop.example/auth/xero/callback",
		Scopes:       []string{"openid", "accounting.transactions"},
		AuthURL:      "https://login.xero.example/identity/connect/authorize",
		TokenURL:     tokenURL,
	}, store, discardLogger())
	return svc, store
}

// tokenEndpoint is a fake provider token endpoint returning body with
// the given status, counting calls.
func tokenEndpoint(t *testing.T, status int, body string, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "client-id", user)
		assert.Equal(t, "client-secret", pass)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAuthorizationURL(t *testing.T) {
	svc, _ := newTestService(t, "https://identity.xero.example/connect/token")

	raw := svc.AuthorizationURL("state-123")
	u, err := url.Parse(raw)
	require.NoError(t, err)

	q := u.Query()
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "client-id", q.Get("client_id"))
	assert.Equal(t, "https://shop.example/auth/xero/callback", q.Get("redirect_uri"))
	assert.Equal(t, "openid accounting.transactions", q.Get("scope"))
	assert.Equal(t, "state-123", q.Get("state"))
}

func TestIsValidBoundary(t *testing.T) {
	tests := []struct {
		name      string
		expiresIn int
		want      bool
	}{
		{"well within lifetime", 3600, true},
		{"just outside buffer", 400, true},
		{"inside buffer", 200, false},
		{"already expired", -100, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newTestService(t, "https://identity.xero.example/connect/token")
			require.NoError(t, store.Save("A1", "R1", tt.expiresIn, "T1"))
			assert.Equal(t, tt.want, svc.IsValid())
		})
	}
}

func TestIsValidNoRecord(t *testing.T) {
	svc, _ := newTestService(t, "https://identity.xero.example/connect/token")
	assert.False(t, svc.IsValid())
}

func TestGetAccessTokenNoRecordMakesNoNetworkCall(t *testing.T) {
	var calls atomic.Int32
	srv := tokenEndpoint(t, http.StatusOK, `{}`, &calls)

	svc, _ := newTestService(t, srv.URL)

	_, err := svc.GetAccessToken(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthorized)
	assert.Equal(t, int32(0), calls.Load())
}

func TestGetAccessTokenValidSkipsRefresh(t *testing.T) {
	var calls atomic.Int32
	srv := tokenEndpoint(t, http.StatusOK, `{}`, &calls)

	svc, store := newTestService(t, srv.URL)
	require.NoError(t, store.Save("A1", "R1", 3600, "T1"))

	token, err := svc.GetAccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "A1", token.AccessToken)
	assert.Equal(t, int32(0), calls.Load())
}

func TestGetAccessTokenStaleTriggersRefresh(t *testing.T) {
	var calls atomic.Int32
	srv := tokenEndpoint(t, http.StatusOK,
		`{"access_token":"A2","refresh_token":"R2","expires_in":1800}`, &calls)

	svc, store := newTestService(t, srv.URL)
	require.NoError(t, store.Save("A1", "R1", 100, "T1"))

	token, err := svc.GetAccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "A2", token.AccessToken)
	assert.Equal(t, int32(1), calls.Load())
}

func TestRefreshCarriesTenantForward(t *testing.T) {
	var calls atomic.Int32
	srv := tokenEndpoint(t, http.StatusOK,
		`{"access_token":"A2","refresh_token":"R2","expires_in":1800}`, &calls)

	svc, store := newTestService(t, srv.URL)
	require.NoError(t, store.Save("A1", "R1", 100, "T1"))

	token, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "A2", token.AccessToken)
	assert.Equal(t, "R2", token.RefreshToken)
	assert.Equal(t, "T1", token.TenantID)

	persisted, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "A2", persisted.AccessToken)
	assert.Equal(t, "T1", persisted.TenantID)
}

func TestRefreshKeepsRefreshTokenWhenOmitted(t *testing.T) {
	var calls atomic.Int32
	srv := tokenEndpoint(t, http.StatusOK,
		`{"access_token":"A2","expires_in":1800}`, &calls)

	svc, store := newTestService(t, srv.URL)
	require.NoError(t, store.Save("A1", "R1", 100, "T1"))

	token, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "R1", token.RefreshToken)
}

func TestRefreshFailureLeavesRecordUntouched(t *testing.T) {
	var calls atomic.Int32
	srv := tokenEndpoint(t, http.StatusBadRequest, `{"error":"invalid_grant"}`, &calls)

	svc, store := newTestService(t, srv.URL)
	require.NoError(t, store.Save("A1", "R1", 100, "T1"))

	before, err := os.ReadFile(store.path)
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthorized)
	assert.Equal(t, int32(1), calls.Load())

	after, err := os.ReadFile(store.path)
	require.NoError(t, err)
	assert.Equal(t, before, after, "failed refresh must not mutate the stored record")
}

func TestRefreshWithoutRefreshToken(t *testing.T) {
	var calls atomic.Int32
	srv := tokenEndpoint(t, http.StatusOK, `{}`, &calls)

	svc, store := newTestService(t, srv.URL)
	require.NoError(t, store.Save("A1", "", 100, "T1"))

	_, err := svc.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthorized)
	assert.Equal(t, int32(0), calls.Load())
}

func TestHandleCallbackStateMismatch(t *testing.T) {
	var calls atomic.Int32
	srv := tokenEndpoint(t, http.StatusOK,
		`{"access_token":"A1","refresh_token":"R1","expires_in":1800}`, &calls)

	svc, _ := newTestService(t, srv.URL)

	// Mismatch rejects regardless of a present, valid code
	err := svc.HandleCallback(context.Background(), "state-evil", "state-good", "valid-code", "")
	assert.ErrorIs(t, err, ErrStateMismatch)
	assert.Equal(t, int32(0), calls.Load())

	// Empty expected state never matches
	err = svc.HandleCallback(context.Background(), "", "", "valid-code", "")
	assert.ErrorIs(t, err, ErrStateMismatch)
}

func TestHandleCallbackProviderError(t *testing.T) {
	svc, _ := newTestService(t, "https://identity.xero.example/connect/token")

	err := svc.HandleCallback(context.Background(), "s", "s", "", "access_denied")
	assert.ErrorIs(t, err, ErrAuthorizationDenied)
}

func TestHandleCallbackExchangeFailure(t *testing.T) {
	var calls atomic.Int32
	srv := tokenEndpoint(t, http.StatusInternalServerError, `boom`, &calls)

	svc, store := newTestService(t, srv.URL)

	err := svc.HandleCallback(context.Background(), "s", "s", "code-1", "")
	assert.ErrorIs(t, err, ErrTokenExchangeFailed)

	token, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, token)
}

func TestHandleCallbackSuccess(t *testing.T) {
	var calls atomic.Int32
	srv := tokenEndpoint(t, http.StatusOK,
		`{"access_token":"A1","refresh_token":"R1","expires_in":1800}`, &calls)

	svc, store := newTestService(t, srv.URL)

	err := svc.HandleCallback(context.Background(), "s", "s", "code-1", "")
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())

	token, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, token)
	assert.Equal(t, "A1", token.AccessToken)
	assert.Equal(t, "R1", token.RefreshToken)
	assert.True(t, svc.IsValid())
}
