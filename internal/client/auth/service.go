package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/iudanet/gophsync/pkg/api"
)

//go:generate moq -out authenticator_mock.go . Authenticator

// Authenticator exchanges client credentials for an access token
type Authenticator interface {
	Login(ctx context.Context, clientID, secret string) (*api.TokenResponse, error)
}

// Service предоставляет функции авторизации
type Service struct {
	authenticator Authenticator
	store         *Store
	logger        *slog.Logger
	now           func() time.Time
}

// NewService создает новый сервис авторизации
func NewService(authenticator Authenticator, store *Store, logger *slog.Logger) *Service {
	return &Service{
		authenticator: authenticator,
		store:         store,
		logger:        logger,
		now:           time.Now,
	}
}

// Login authenticates against serverURL and stores the session
func (s *Service) Login(ctx context.Context, serverURL, clientID, secret string) (*Session, error) {
	if clientID == "" {
		return nil, fmt.Errorf("client id is required")
	}
	if secret == "" {
		return nil, fmt.Errorf("secret is required")
	}

	resp, err := s.authenticator.Login(ctx, clientID, secret)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	session := &Session{
		ClientID:    clientID,
		AccessToken: resp.AccessToken,
		ServerURL:   serverURL,
	}
	if resp.ExpiresIn > 0 {
		session.ExpiresAt = s.now().Add(time.Duration(resp.ExpiresIn) * time.Second)
	}

	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("Logged in", "client_id", clientID, "expires_at", session.ExpiresAt)
	return session, nil
}

// Session returns the stored session if it is still valid.
// Returns ErrNotAuthenticated or ErrSessionExpired otherwise
func (s *Service) Session(ctx context.Context) (*Session, error) {
	session, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if session.Expired(s.now()) {
		return nil, ErrSessionExpired
	}
	return session, nil
}

// Logout removes the stored session
func (s *Service) Logout(ctx context.Context) error {
	if err := s.store.Delete(ctx); err != nil {
		return err
	}
	s.logger.Info("Logged out")
	return nil
}
