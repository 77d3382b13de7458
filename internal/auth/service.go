// auth/service.go
package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// validityBuffer keeps a safety margin against provider clock skew and
// request latency: a token within 5 minutes of expiry counts as stale.
const validityBuffer = 5 * time.Minute

// Service handles the OAuth 2.0 token lifecycle against Xero
type Service struct {
	config     OAuthConfig
	tokenStore TokenStore
	httpClient *http.Client
	logger     *slog.Logger
}

// NewService creates a new auth service
func NewService(config OAuthConfig, tokenStore TokenStore, logger *slog.Logger) *Service {
	return &Service{
		config:     config,
		tokenStore: tokenStore,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

// GenerateState creates a secure random state for one authorization attempt
func GenerateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// AuthorizationURL builds the Xero authorization URL for the given state
func (s *Service) AuthorizationURL(state string) string {
	u, _ := url.Parse(s.config.AuthURL)
	q := u.Query()

	q.Set("response_type", "code")
	q.Set("client_id", s.config.ClientID)
	q.Set("redirect_uri", s.config.RedirectURI)
	q.Set("scope", strings.Join(s.config.Scopes, " "))
	q.Set("state", state)

	u.RawQuery = q.Encode()
	return u.String()
}

// HandleCallback validates the OAuth callback and exchanges the code for
// tokens. The state check runs first and rejects unconditionally on
// mismatch, whether or not a code is present.
func (s *Service) HandleCallback(ctx context.Context, receivedState, expectedState, code, providerErr string) error {
	if expectedState == "" || receivedState != expectedState {
		return ErrStateMismatch
	}

	if providerErr != "" {
		return fmt.Errorf("%w: %s", ErrAuthorizationDenied, providerErr)
	}
	if code == "" {
		return fmt.Errorf("%w: no authorization code", ErrAuthorizationDenied)
	}

	data := url.Values{}
	data.Set("grant_type", "authorization_code")
	data.Set("code", code)
	data.Set("redirect_uri", s.config.RedirectURI)

	resp, err := s.executeTokenRequest(ctx, data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTokenExchangeFailed, err)
	}

	if err := s.tokenStore.Save(resp.AccessToken, resp.RefreshToken, resp.ExpiresIn, resp.TenantID); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	return nil
}

// IsValid reports whether a stored token exists and is outside the
// expiry buffer. Storage errors count as not valid.
func (s *Service) IsValid() bool {
	token, err := s.tokenStore.Load()
	if err != nil || token == nil {
		return false
	}
	return time.Now().Before(token.Expiry().Add(-validityBuffer))
}

// GetAccessToken returns a usable token, refreshing once if the stored
// one is stale. Returns ErrNotAuthorized when no record exists; no
// network call is made in that case.
func (s *Service) GetAccessToken(ctx context.Context) (*Token, error) {
	token, err := s.tokenStore.Load()
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, ErrNotAuthorized
	}

	if time.Now().Before(token.Expiry().Add(-validityBuffer)) {
		return token, nil
	}

	return s.Refresh(ctx)
}

// Refresh exchanges the stored refresh token for a new token pair and
// replaces the stored record. On any failure the prior record is left
// untouched and ErrNotAuthorized is returned.
func (s *Service) Refresh(ctx context.Context) (*Token, error) {
	token, err := s.tokenStore.Load()
	if err != nil {
		return nil, err
	}
	if token == nil || token.RefreshToken == "" {
		return nil, fmt.Errorf("%w: no refresh token", ErrNotAuthorized)
	}

	data := url.Values{}
	data.Set("grant_type", "refresh_token")
	data.Set("refresh_token", token.RefreshToken)

	resp, err := s.executeTokenRequest(ctx, data)
	if err != nil {
		s.logger.Warn("token refresh failed", "error", err)
		return nil, fmt.Errorf("%w: refresh rejected", ErrNotAuthorized)
	}

	// Xero rotates the refresh token on every refresh; if the response
	// omitted it, keep using the current one.
	if resp.RefreshToken == "" {
		resp.RefreshToken = token.RefreshToken
	}
	// Refresh responses carry no tenant; Save falls back to the stored one.
	tenantID := resp.TenantID
	if tenantID == "" {
		tenantID = token.TenantID
	}

	if err := s.tokenStore.Save(resp.AccessToken, resp.RefreshToken, resp.ExpiresIn, tenantID); err != nil {
		return nil, fmt.Errorf("failed to save refreshed token: %w", err)
	}

	return s.tokenStore.Load()
}

// Disconnect removes the stored token record; idempotent
func (s *Service) Disconnect() error {
	return s.tokenStore.Clear()
}

// executeTokenRequest performs a token endpoint call authenticated with
// the client credentials
func (s *Service) executeTokenRequest(ctx context.Context, data url.Values) (*tokenResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.TokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create token request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(s.config.ClientID, s.config.ClientSecret)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("token request failed with status %d: %s", resp.StatusCode, body)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, fmt.Errorf("failed to parse token response: %w", err)
	}

	return &tr, nil
}
