// xero/client.go
package xero

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/finishlineauto/quoteserver/internal/auth"
	"github.com/finishlineauto/quoteserver/internal/quote"
)

var (
	// ErrRemoteRejected means Xero answered the call with an error status
	ErrRemoteRejected = errors.New("xero rejected the request")

	// ErrTransportError means the call never produced a usable response
	ErrTransportError = errors.New("xero request failed")
)

// SendResult is the outcome of a successful quote push
type SendResult struct {
	QuoteID string
	Raw     json.RawMessage
}

// Client is the Xero API client
type Client struct {
	baseURL     string
	contactID   string
	authService *auth.Service
	httpClient  *http.Client
	logger      *slog.Logger
}

// NewClient creates a new Xero API client
func NewClient(baseURL, contactID string, authService *auth.Service, logger *slog.Logger) *Client {
	return &Client{
		baseURL:     baseURL,
		contactID:   contactID,
		authService: authService,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		logger:      logger,
	}
}

// quotesEnvelope wraps payloads the way the Quotes endpoint expects
type quotesEnvelope struct {
	Quotes []QuotePayload `json:"Quotes"`
}

// quotesResponse is the subset of the Quotes response we read back
type quotesResponse struct {
	Quotes []struct {
		QuoteID string `json:"QuoteID"`
	} `json:"Quotes"`
}

// xeroError is Xero's structured error body
type xeroError struct {
	Message string `json:"Message"`
}

// SendQuote pushes a quote to the Xero Quotes API. A single best-effort
// attempt: failures are surfaced to the caller for display, never retried.
func (c *Client) SendQuote(ctx context.Context, q *quote.Quote) (*SendResult, error) {
	token, err := c.authService.GetAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	payload := BuildQuotePayload(q, c.contactID)

	body, err := json.Marshal(quotesEnvelope{Quotes: []QuotePayload{payload}})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransportError, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/Quotes", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransportError, err)
	}

	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	req.Header.Set("xero-tenant-id", token.TenantID)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransportError, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrTransportError, err)
	}

	if resp.StatusCode >= 400 {
		// Prefer Xero's structured message, fall back to the raw body
		var xe xeroError
		if err := json.Unmarshal(respBody, &xe); err == nil && xe.Message != "" {
			return nil, fmt.Errorf("%w: %s", ErrRemoteRejected, xe.Message)
		}
		return nil, fmt.Errorf("%w: status %d: %s", ErrRemoteRejected, resp.StatusCode, respBody)
	}

	var qr quotesResponse
	if err := json.Unmarshal(respBody, &qr); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", ErrTransportError, err)
	}

	result := &SendResult{Raw: respBody}
	if len(qr.Quotes) > 0 {
		result.QuoteID = qr.Quotes[0].QuoteID
	}

	c.logger.Info("quote sent to xero", "quote_number", q.QuoteNumber, "xero_quote_id", result.QuoteID)
	return result, nil
}
