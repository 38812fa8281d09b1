// Package auth keeps the client's server session between CLI invocations.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/gophsync/internal/client/storage"
)

const keySession = "session"

// Auth errors
var (
	// ErrNotAuthenticated indicates that no session is stored
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrSessionExpired indicates that the stored access token has expired
	ErrSessionExpired = errors.New("session expired")
)

// Session represents the stored login of this client
type Session struct {
	ExpiresAt   time.Time `json:"expires_at"`
	ClientID    string    `json:"client_id"`
	AccessToken string    `json:"access_token"`
	ServerURL   string    `json:"server_url"`
}

// Expired reports whether the token is no longer valid at now
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Store persists the session in the reserved metadata store
type Store struct {
	storage storage.Storage
}

// NewStore creates a session store
func NewStore(s storage.Storage) *Store {
	return &Store{storage: s}
}

// Save сохраняет сессию, перезаписывая предыдущую
func (s *Store) Save(ctx context.Context, session *Session) error {
	if session == nil {
		return fmt.Errorf("session is nil")
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.storage.Set(ctx, storage.StoreMetadata, keySession, data); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Load returns the stored session.
// Returns ErrNotAuthenticated if there is none
func (s *Store) Load(ctx context.Context) (*Session, error) {
	data, err := s.storage.Get(ctx, storage.StoreMetadata, keySession)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

// Delete removes the stored session
func (s *Store) Delete(ctx context.Context) error {
	if err := s.storage.Delete(ctx, storage.StoreMetadata, keySession); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
