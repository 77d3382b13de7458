// auth/errors.go
package auth

import "errors"

var (
	// ErrStateMismatch means the callback state did not match the one
	// issued for this authorization attempt.
	ErrStateMismatch = errors.New("authorization state mismatch")

	// ErrAuthorizationDenied means the provider returned an error instead
	// of an authorization code.
	ErrAuthorizationDenied = errors.New("authorization denied by provider")

	// ErrTokenExchangeFailed means the code-for-token exchange call failed.
	ErrTokenExchangeFailed = errors.New("token exchange failed")

	// ErrNotAuthorized means no usable access token could be obtained.
	ErrNotAuthorized = errors.New("not connected to Xero")

	// ErrStorageUnavailable means the token record exists but could not
	// be read or parsed.
	ErrStorageUnavailable = errors.New("token storage unavailable")
)
