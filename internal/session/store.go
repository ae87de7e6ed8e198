package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mobilestore/storefront/internal/model"
)

// Fixed storage keys for the persisted token pair.
const (
	accessTokenKey  = "access_token"
	refreshTokenKey = "refresh_token"
)

// Store persists the bearer token pair in a JSON file, the durable-storage
// analog of the browser's localStorage. Tokens are opaque: the store never
// inspects or validates their content, and IsAuthenticated is a presence
// check only — an expired token is discovered when a later API call fails.
type Store struct {
	path   string
	tokens map[string]string
}

// Open loads any previously persisted session from path. A missing file is
// a valid empty session; any other storage failure is returned so the
// caller can treat it as fatal at startup.
func Open(path string) (*Store, error) {
	s := &Store{path: path, tokens: map[string]string{}}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}
	if err := json.Unmarshal(data, &s.tokens); err != nil {
		return nil, fmt.Errorf("parse session file %s: %w", path, err)
	}
	return s, nil
}

// Save persists both tokens, overwriting any existing session.
func (s *Store) Save(tokens model.Tokens) error {
	s.tokens = map[string]string{
		accessTokenKey:  tokens.Access,
		refreshTokenKey: tokens.Refresh,
	}
	return s.flush()
}

// Clear removes both tokens. Clearing an already-empty store is not an
// error.
func (s *Store) Clear() error {
	s.tokens = map[string]string{}
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

// IsAuthenticated reports whether an access token is present.
func (s *Store) IsAuthenticated() bool {
	return s.tokens[accessTokenKey] != ""
}

// AccessToken returns the stored access token, if any.
func (s *Store) AccessToken() (string, bool) {
	tok := s.tokens[accessTokenKey]
	return tok, tok != ""
}

// RefreshToken returns the stored refresh token, if any.
func (s *Store) RefreshToken() (string, bool) {
	tok := s.tokens[refreshTokenKey]
	return tok, tok != ""
}

func (s *Store) flush() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	data, err := json.Marshal(s.tokens)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}
