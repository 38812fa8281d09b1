package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

type watchOptions struct {
	checkInterval time.Duration
	syncInterval  time.Duration
}

// NewWatchCommand creates the watch command.
func NewWatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep synchronizing in the background until interrupted",
		Long: `Check the server and synchronize every time it becomes reachable. With a
sync interval, queued changes are also pushed periodically while online.

Stop with Ctrl+C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withRuntime(cmd.Context(), cmd.ErrOrStderr(), func(r *runtime) error {
				if opts.checkInterval > 0 {
					r.cfg.ProbeInterval = opts.checkInterval
					r.cfg.ProbeTimeout = min(r.cfg.ProbeTimeout, opts.checkInterval)
				}
				if opts.syncInterval > 0 {
					r.cfg.SyncInterval = opts.syncInterval
				}
				return runWatch(cmd, rootOpts, r)
			})
		},
	}

	cmd.Flags().DurationVar(&opts.checkInterval, "check-interval", 0, "connectivity check interval (default from config)")
	cmd.Flags().DurationVar(&opts.syncInterval, "sync-interval", 0, "periodic sync interval while online (default from config)")

	return cmd
}

func runWatch(cmd *cobra.Command, rootOpts *RootOptions, r *runtime) error {
	ctx := cmd.Context()
	io := rootOpts.IO

	c, err := r.watchClient(ctx)
	if err != nil {
		return err
	}

	unsubscribe := c.Signal().Subscribe(func(online bool) {
		r.logger.Info("Connectivity changed", "server", r.cfg.ServerURL, "online", online)
	})
	defer unsubscribe()

	// Прерывание останавливает наблюдение, но не обрывает начатый цикл:
	// Stop дожидается его завершения
	runCtx := context.WithoutCancel(ctx)
	if err := c.Start(runCtx); err != nil {
		return err
	}

	io.Printf("Watching %s (checking every %s). Press Ctrl+C to stop.\n", r.cfg.ServerURL, r.cfg.ProbeInterval)

	<-ctx.Done()
	c.Stop()

	pending, err := c.PendingCount(runCtx)
	if err != nil {
		return fmt.Errorf("failed to get pending count: %w", err)
	}

	io.Println()
	io.Printf("Stopped watching. Pending operations: %d\n", pending)
	return nil
}
