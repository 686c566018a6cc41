package client

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"taskboard/internal/api"
)

const (
	tokenFile = "token"
	userFile  = "user.json"
)

// StateStore persists the session token and cached profile between
// runs. Files are mode 0600 because the token grants account access.
type StateStore struct {
	Dir string
}

func NewStateStore(dir string) (*StateStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &StateStore{Dir: dir}, nil
}

// Token returns the stored token, or "" when none is saved.
func (s *StateStore) Token() string {
	b, err := os.ReadFile(filepath.Join(s.Dir, tokenFile))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

func (s *StateStore) SaveToken(token string) error {
	return os.WriteFile(filepath.Join(s.Dir, tokenFile), []byte(token), 0o600)
}

// User returns the cached profile, if any.
func (s *StateStore) User() (api.UserResponse, bool) {
	var u api.UserResponse
	b, err := os.ReadFile(filepath.Join(s.Dir, userFile))
	if err != nil {
		return u, false
	}
	if err := json.Unmarshal(b, &u); err != nil {
		return u, false
	}
	return u, true
}

func (s *StateStore) SaveUser(u api.UserResponse) error {
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.Dir, userFile), b, 0o600)
}

// Clear removes all persisted session state.
func (s *StateStore) Clear() error {
	var firstErr error
	for _, name := range []string{tokenFile, userFile} {
		if err := os.Remove(filepath.Join(s.Dir, name)); err != nil && !os.IsNotExist(err) {
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
