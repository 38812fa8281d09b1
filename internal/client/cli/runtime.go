package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/iudanet/gophsync/internal/client"
	"github.com/iudanet/gophsync/internal/client/api"
	"github.com/iudanet/gophsync/internal/client/auth"
	"github.com/iudanet/gophsync/internal/client/collection"
	"github.com/iudanet/gophsync/internal/client/conflict"
	"github.com/iudanet/gophsync/internal/client/storage/boltdb"
	"github.com/iudanet/gophsync/internal/config"
	"github.com/iudanet/gophsync/internal/logging"
	"github.com/iudanet/gophsync/internal/validation"
)

// runtime holds everything one command invocation needs
type runtime struct {
	cfg     *config.ClientConfig
	logger  *slog.Logger
	storage *boltdb.Storage
	api     *api.Client
	auth    *auth.Service
	client  *client.Client
}

// open loads configuration, applies flag overrides and opens the local database
func (o *RootOptions) open(ctx context.Context, logOut io.Writer) (*runtime, error) {
	cfg, err := config.LoadClient(o.ConfigPath, o.lookup)
	if err != nil {
		return nil, err
	}

	if o.DBPath != "" {
		cfg.DBPath = o.DBPath
	}
	if o.ServerURL != "" {
		cfg.ServerURL = o.ServerURL
	}
	if o.LogLevel != "" {
		cfg.Log.Level = o.LogLevel
	}
	if o.LogFormat != "" {
		cfg.Log.Format = o.LogFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Log, logOut)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	s, err := boltdb.New(ctx, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	apiClient := api.NewClient(cfg.ServerURL)

	return &runtime{
		cfg:     cfg,
		logger:  logger,
		storage: s,
		api:     apiClient,
		auth:    auth.NewService(apiClient, auth.NewStore(s), logger),
	}, nil
}

// syncClient builds the sync client for one-shot commands. With
// requireSession the stored session must be valid and its token is attached
// to every request.
func (r *runtime) syncClient(ctx context.Context, requireSession bool) (*client.Client, error) {
	if r.client != nil {
		return r.client, nil
	}

	// Prober не передаем: одноразовая команда не должна запускать
	// фоновую синхронизацию параллельно с ручной
	return r.buildClient(ctx, requireSession, client.Options{Online: true})
}

// watchClient builds a client driven by connectivity probes and the periodic
// sync interval from the configuration. It starts offline until the first
// probe succeeds.
func (r *runtime) watchClient(ctx context.Context) (*client.Client, error) {
	return r.buildClient(ctx, true, client.Options{
		Prober:        r.api,
		ProbeInterval: r.cfg.ProbeInterval,
		ProbeTimeout:  r.cfg.ProbeTimeout,
		SyncInterval:  r.cfg.SyncInterval,
		Online:        false,
	})
}

func (r *runtime) buildClient(ctx context.Context, requireSession bool, opts client.Options) (*client.Client, error) {
	if requireSession {
		session, err := r.auth.Session(ctx)
		if err != nil {
			if errors.Is(err, auth.ErrNotAuthenticated) || errors.Is(err, auth.ErrSessionExpired) {
				return nil, fmt.Errorf("%w. Please run 'gophsync login' first", err)
			}
			return nil, err
		}
		if session.ServerURL != "" && session.ServerURL != r.cfg.ServerURL {
			r.logger.Warn("Session was created for a different server",
				"session_server", session.ServerURL, "server", r.cfg.ServerURL)
		}
		r.api.SetToken(session.AccessToken)
	}

	resolver, err := conflict.New(r.cfg.Conflict, r.logger)
	if err != nil {
		return nil, err
	}

	opts.Storage = r.storage
	opts.Remote = r.api
	opts.Resolver = resolver
	opts.Logger = r.logger

	c, err := client.New(ctx, opts)
	if err != nil {
		return nil, err
	}

	r.client = c
	return c, nil
}

// collection opens the named collection through the sync client
func (r *runtime) collection(ctx context.Context, name string) (*collection.Collection, error) {
	if err := validation.ValidateCollection(name); err != nil {
		return nil, err
	}
	c, err := r.syncClient(ctx, false)
	if err != nil {
		return nil, err
	}
	return c.Collection(ctx, name)
}

// Close releases the client or the bare storage
func (r *runtime) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return r.storage.Close()
}

// withRuntime opens a runtime for the duration of fn
func (o *RootOptions) withRuntime(ctx context.Context, logOut io.Writer, fn func(r *runtime) error) (err error) {
	r, err := o.open(ctx, logOut)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := r.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return fn(r)
}
