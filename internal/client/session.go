package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
)

const credentialsFileName = "credentials.json"

type credentials struct {
	Token  string `json:"token"`
	Server string `json:"server"`
}

// SessionStore persists the session token between CLI invocations.
type SessionStore struct {
	path string
}

// NewSessionStore creates a store at the user's config directory. A non-empty
// path overrides the default location (useful in tests).
func NewSessionStore(path string) (*SessionStore, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("find config directory: %w", err)
		}
		path = filepath.Join(dir, "knowyourplant", credentialsFileName)
	}
	return &SessionStore{path: path}, nil
}

// Save writes the token and server URL to disk, creating the directory if
// needed. The file is user-readable only.
func (s *SessionStore) Save(token, server string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := json.MarshalIndent(credentials{Token: token, Server: server}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

// Load reads the stored token and server, returning empty strings if no
// session is saved.
func (s *SessionStore) Load() (token, server string) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", ""
	}
	var creds credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return "", ""
	}
	return creds.Token, creds.Server
}

// Clear removes the stored session.
func (s *SessionStore) Clear() error {
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Restore attaches the stored token to c and verifies it against the server.
// A stale token is cleared from both the client and the store. Returns nil
// with no error when no valid session exists.
func (c *Client) Restore(ctx context.Context, store *SessionStore) (*Profile, error) {
	token, _ := store.Load()
	if token == "" {
		return nil, nil
	}

	c.SetToken(token)
	p, err := c.Me(ctx)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
			c.SetToken("")
			_ = store.Clear()
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}
