package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/iudanet/gophsync/internal/server"
	"github.com/iudanet/gophsync/internal/server/storage/sqlite"
)

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions, info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the sync server until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, rootOpts, info)
		},
	}
}

func runServe(cmd *cobra.Command, rootOpts *RootOptions, info BuildInfo) error {
	cfg, err := rootOpts.load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	logger.Info("Starting gophsync server",
		"version", info.Version,
		"commit", info.GitCommit,
		"addr", cfg.Addr,
		"db", cfg.DBPath)

	store, err := sqlite.New(cmd.Context(), cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}()

	srv := server.New(cfg, store, logger, info.Version)
	g, ctx := errgroup.WithContext(cmd.Context())

	g.Go(func() error {
		return srv.Run(ctx)
	})

	// Сообщаем о причине остановки, чтобы в логах было видно сигнал
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Stop requested", "reason", context.Cause(ctx))
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("Server stopped")
	return nil
}
