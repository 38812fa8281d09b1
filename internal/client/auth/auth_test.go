package auth

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/gophsync/internal/client/storage/boltdb"
	"github.com/iudanet/gophsync/internal/logging"
	"github.com/iudanet/gophsync/pkg/api"
)

func newStore(t *testing.T) *Store {
	t.Helper()

	s, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return NewStore(s)
}

func TestStore_SaveLoadDelete(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	expires := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(ctx, &Session{ClientID: "laptop", AccessToken: "tok", ExpiresAt: expires}))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "laptop", got.ClientID)
	assert.Equal(t, "tok", got.AccessToken)
	assert.True(t, expires.Equal(got.ExpiresAt))

	require.NoError(t, store.Delete(ctx))
	require.NoError(t, store.Delete(ctx))

	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	assert.Error(t, store.Save(ctx, nil))
}

func TestService_Login(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	authn := &AuthenticatorMock{
		LoginFunc: func(ctx context.Context, clientID, secret string) (*api.TokenResponse, error) {
			if secret != "s3cret" {
				return nil, errors.New("invalid credentials")
			}
			return &api.TokenResponse{AccessToken: "tok", ExpiresIn: 900}, nil
		},
	}

	svc := NewService(authn, newStore(t), logging.Discard())
	svc.now = func() time.Time { return now }
	ctx := context.Background()

	_, err := svc.Session(ctx)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = svc.Login(ctx, "http://srv", "laptop", "wrong")
	assert.ErrorContains(t, err, "invalid credentials")

	_, err = svc.Login(ctx, "http://srv", "", "s3cret")
	assert.Error(t, err)
	_, err = svc.Login(ctx, "http://srv", "laptop", "")
	assert.Error(t, err)
	assert.Len(t, authn.LoginCalls(), 1)

	session, err := svc.Login(ctx, "http://srv", "laptop", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, now.Add(15*time.Minute), session.ExpiresAt)
	assert.Equal(t, "http://srv", session.ServerURL)

	got, err := svc.Session(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok", got.AccessToken)

	// Токен истек
	svc.now = func() time.Time { return now.Add(time.Hour) }
	_, err = svc.Session(ctx)
	assert.ErrorIs(t, err, ErrSessionExpired)

	require.NoError(t, svc.Logout(ctx))
	_, err = svc.Session(ctx)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestSession_Expired(t *testing.T) {
	now := time.Now()

	assert.False(t, (&Session{}).Expired(now), "zero expiry never expires")
	assert.False(t, (&Session{ExpiresAt: now.Add(time.Second)}).Expired(now))
	assert.True(t, (&Session{ExpiresAt: now}).Expired(now))
}
