// xero/client_test.go
package xero

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finishlineauto/quoteserver/internal/auth"
	"github.com/finishlineauto/quoteserver/internal/quote"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newConnectedClient returns a client with a valid stored token pointing
// at apiURL
func newConnectedClient(t *testing.T, apiURL string) *Client {
	t.Helper()
	store := auth.NewFileTokenStore(filepath.Join(t.TempDir(), "xero_tokens.json"), "")
	require.NoError(t, store.Save("A1", "R1", 3600, "T1"))

	authService := auth.NewService(auth.OAuthConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		TokenURL:     "https://identity.xero.example/connect/token",
	}, store, discardLogger())

	return NewClient(apiURL, "contact-1", authService, discardLogger())
}

func newDisconnectedClient(t *testing.T, apiURL string) *Client {
	t.Helper()
	store := auth.NewFileTokenStore(filepath.Join(t.TempDir(), "xero_tokens.json"), "")
	authService := auth.NewService(auth.OAuthConfig{}, store, discardLogger())
	return NewClient(apiURL, "contact-1", authService, discardLogger())
}

func TestSendQuoteSuccess(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)

		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/Quotes", r.URL.Path)
		assert.Equal(t, "Bearer A1", r.Header.Get("Authorization"))
		assert.Equal(t, "T1", r.Header.Get("xero-tenant-id"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var envelope quotesEnvelope
		require.NoError(t, json.NewDecoder(r.Body).Decode(&envelope))
		require.Len(t, envelope.Quotes, 1)
		assert.Equal(t, "Q-100", envelope.Quotes[0].QuoteNumber)
		require.Len(t, envelope.Quotes[0].LineItems, 2)
		assert.Equal(t, 50.0, envelope.Quotes[0].LineItems[0].UnitAmount)
		assert.Equal(t, 25.0, envelope.Quotes[0].LineItems[1].UnitAmount)

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"Quotes":[{"QuoteID":"xq-1","QuoteNumber":"Q-100"}]}`)
	}))
	defer srv.Close()

	client := newConnectedClient(t, srv.URL)

	q := testQuote()
	q.Services[quote.ServiceChips] = quote.ServiceLine{PartsCost: 50.00, LaborCost: 25.00}

	result, err := client.SendQuote(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, "xq-1", result.QuoteID)
	assert.NotEmpty(t, result.Raw)
	assert.Equal(t, int32(1), calls.Load())
}

func TestSendQuoteNotAuthorized(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	client := newDisconnectedClient(t, srv.URL)

	_, err := client.SendQuote(context.Background(), testQuote())
	assert.ErrorIs(t, err, auth.ErrNotAuthorized)
	assert.Equal(t, int32(0), calls.Load(), "no remote call without a token")
}

func TestSendQuoteRemoteRejectedStructured(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"Message":"A validation exception occurred"}`)
	}))
	defer srv.Close()

	client := newConnectedClient(t, srv.URL)

	_, err := client.SendQuote(context.Background(), testQuote())
	require.ErrorIs(t, err, ErrRemoteRejected)
	assert.Contains(t, err.Error(), "A validation exception occurred")
}

func TestSendQuoteRemoteRejectedRawBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		io.WriteString(w, "forbidden by gateway")
	}))
	defer srv.Close()

	client := newConnectedClient(t, srv.URL)

	_, err := client.SendQuote(context.Background(), testQuote())
	require.ErrorIs(t, err, ErrRemoteRejected)
	assert.Contains(t, err.Error(), "forbidden by gateway")
	assert.Contains(t, err.Error(), "403")
}

func TestSendQuoteTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused

	client := newConnectedClient(t, srv.URL)

	_, err := client.SendQuote(context.Background(), testQuote())
	assert.ErrorIs(t, err, ErrTransportError)
}

func TestSendQuoteMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "not json at all")
	}))
	defer srv.Close()

	client := newConnectedClient(t, srv.URL)

	_, err := client.SendQuote(context.Background(), testQuote())
	assert.ErrorIs(t, err, ErrTransportError)
}
