package client

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// Profile is the user snapshot persisted next to the token. It is read
// synchronously by consumers to render identity-aware UI (own messages,
// gated actions) without a network round trip.
type Profile struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Avatar string `json:"avatar"`
}

// Session is the persisted credential state for one authenticated user.
type Session struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
}

// SessionStore persists the session to a single JSON file. The client never
// validates token expiry locally; an expired token surfaces as a 401/403 on
// the next request, at which point the store is cleared.
type SessionStore struct {
	path string

	mu      sync.Mutex
	current *Session
}

// NewSessionStore creates a store backed by the given file path.
func NewSessionStore(path string) *SessionStore {
	return &SessionStore{path: path}
}

// Current returns the in-memory session, loading it from disk on first use.
// A nil session means no one is logged in.
func (s *SessionStore) Current() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		return s.current
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}
	var session Session
	if err := json.Unmarshal(raw, &session); err != nil || session.Token == "" {
		return nil
	}
	s.current = &session
	return s.current
}

// Save persists the session and makes it current.
func (s *SessionStore) Save(session *Session) error {
	if session == nil || session.Token == "" {
		return errors.New("session requires a token")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(session)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return err
	}
	s.current = session
	return nil
}

// Clear forgets the session in memory and on disk.
func (s *SessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
