package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"sync"
)

type (
	// SessionStore maps opaque session tokens to user ids. Entries live in
	// process memory until revoked, a restart drops every session. The
	// store is owned by the composition root and handed to whoever needs
	// identity, never a package global.
	SessionStore struct {
		mu       sync.Mutex
		sessions map[string]string
	}
)

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]string),
	}
}

// Create issues a fresh random token bound to userID. Tokens are 256 bits
// of entropy so collisions are not checked for, an overwrite would require
// astronomically bad luck.
func (s *SessionStore) Create(userID string) (string, error) {
	buf := make([]byte, 32)
	_, err := rand.Read(buf)
	if err != nil {
		return "", fmt.Errorf("unable to generate session token, cause %w", err)
	}
	token := base64.RawURLEncoding.EncodeToString(buf)
	s.mu.Lock()
	s.sessions[token] = userID
	s.mu.Unlock()
	return token, nil
}

// Resolve looks up the user behind a token. An unknown token is not an
// error, it just means the caller is anonymous.
func (s *SessionStore) Resolve(token string) (string, bool) {
	s.mu.Lock()
	userID, ok := s.sessions[token]
	s.mu.Unlock()
	return userID, ok
}

// Revoke drops the token if present, revoking an unknown token is a no-op.
func (s *SessionStore) Revoke(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}
