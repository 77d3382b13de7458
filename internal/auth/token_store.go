// auth/token_store.go
package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileTokenStore persists the token record as a single JSON file.
// This is the default store: one organization, one connection, one file.
type FileTokenStore struct {
	path            string
	defaultTenantID string
}

// NewFileTokenStore creates a file-backed token store at path
func NewFileTokenStore(path, defaultTenantID string) *FileTokenStore {
	return &FileTokenStore{
		path:            path,
		defaultTenantID: defaultTenantID,
	}
}

// Save writes the full token record, replacing any prior one. The record
// is written to a temp file and renamed so a reader never observes a
// half-written record.
func (s *FileTokenStore) Save(accessToken, refreshToken string, expiresIn int, tenantID string) error {
	if tenantID == "" {
		if prior, err := s.Load(); err == nil && prior != nil {
			tenantID = prior.TenantID
		}
	}
	if tenantID == "" {
		tenantID = s.defaultTenantID
	}

	token := Token{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    float64(time.Now().Add(time.Duration(expiresIn) * time.Second).Unix()),
		TenantID:     tenantID,
	}

	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".tokens-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp token file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write token file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close token file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace token file: %w", err)
	}

	return nil
}

// Load reads the token record. A missing file is not an error.
func (s *FileTokenStore) Load() (*Token, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	var token Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("%w: corrupt token file: %v", ErrStorageUnavailable, err)
	}

	return &token, nil
}

// Clear removes the token file. Clearing an absent file is a no-op.
func (s *FileTokenStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}
