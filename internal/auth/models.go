// auth/models.go
package auth

import (
	"time"
)

// Token is the persisted Xero credential bundle
type Token struct {
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
	ExpiresAt    float64 `json:"expires_at"` // epoch seconds
	TenantID     string  `json:"tenant_id"`
}

// Expiry returns ExpiresAt as a time.Time
func (t *Token) Expiry() time.Time {
	sec := int64(t.ExpiresAt)
	nsec := int64((t.ExpiresAt - float64(sec)) * float64(time.Second))
	return time.Unix(sec, nsec)
}

// TokenStore interface for different token storage implementations
type TokenStore interface {
	// Save computes the expiry from expiresIn and replaces any prior
	// record wholesale. An empty tenantID keeps the previously stored one.
	Save(accessToken, refreshToken string, expiresIn int, tenantID string) error
	// Load returns (nil, nil) when no record exists and an error only
	// when storage is unreadable or the record is corrupt.
	Load() (*Token, error)
	// Clear removes the record; clearing an absent record is not an error.
	Clear() error
}

// OAuthConfig holds OAuth 2.0 configuration for the provider
type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Scopes       []string
	AuthURL      string
	TokenURL     string
	// DefaultTenantID is used when neither the stored record nor the
	// provider response carries a tenant identifier.
	DefaultTenantID string
}

// tokenResponse is the provider's token endpoint response body
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	TenantID     string `json:"tenant_id"`
}
