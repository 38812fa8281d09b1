package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewSyncCommand creates the sync command.
func NewSyncCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Push queued changes and pull remote changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withRuntime(cmd.Context(), cmd.ErrOrStderr(), func(r *runtime) error {
				return runSync(cmd, rootOpts, r)
			})
		},
	}
}

func runSync(cmd *cobra.Command, rootOpts *RootOptions, r *runtime) error {
	ctx := cmd.Context()
	io := rootOpts.IO

	c, err := r.syncClient(ctx, true)
	if err != nil {
		return err
	}

	io.Println("=== Synchronization ===")
	io.Println()
	io.Printf("Starting synchronization with %s...\n", r.cfg.ServerURL)

	if err := c.Start(ctx); err != nil {
		return err
	}
	defer c.Stop()

	result, err := c.Sync(ctx)
	if err != nil {
		return fmt.Errorf("synchronization failed: %w", err)
	}

	io.Println()
	io.Println("✓ Synchronization completed successfully!")
	io.Println()
	io.Printf("Pushed to server:   %d operation(s)\n", result.Pushed)
	io.Printf("Acknowledged:       %d\n", result.Acknowledged)
	io.Printf("Pulled from server: %d change(s)\n", result.Pulled)
	if result.Conflicts > 0 {
		io.Printf("Conflicts:          %d (remote wins: %d, local wins: %d, merged: %d)\n",
			result.Conflicts, result.RemoteWins, result.LocalWins, result.Merged)
	}
	if result.Unresolved > 0 {
		io.Printf("Still queued:       %d\n", result.Unresolved)
	}
	io.Printf("Cursor:             %d\n", result.Cursor)

	return nil
}
