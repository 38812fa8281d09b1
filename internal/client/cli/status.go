package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/gophsync/internal/client/auth"
	"github.com/iudanet/gophsync/internal/client/storage"
)

type statusOptions struct {
	check bool
}

// NewStatusCommand creates the status command.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &statusOptions{}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show session and synchronization status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withRuntime(cmd.Context(), cmd.ErrOrStderr(), func(r *runtime) error {
				return runStatus(cmd, rootOpts, r, opts)
			})
		},
	}

	cmd.Flags().BoolVar(&opts.check, "check", false, "check that the server is reachable")

	return cmd
}

func runStatus(cmd *cobra.Command, rootOpts *RootOptions, r *runtime, opts *statusOptions) error {
	ctx := cmd.Context()
	io := rootOpts.IO

	io.Println("=== Status ===")
	io.Println()
	io.Printf("Server: %s\n", r.cfg.ServerURL)

	if opts.check {
		if err := r.api.Ping(ctx); err != nil {
			io.Printf("Server status: unreachable (%v)\n", err)
		} else {
			io.Println("Server status: reachable")
		}
	}

	session, err := r.auth.Session(ctx)
	switch {
	case err == nil:
		io.Printf("Status: Authenticated as %s\n", session.ClientID)
		if !session.ExpiresAt.IsZero() {
			io.Printf("Token expires: %s\n", session.ExpiresAt.Format(time.RFC3339))
		}
	case errors.Is(err, auth.ErrSessionExpired):
		io.Println("Status: Session expired")
		io.Println("Run 'gophsync login' to authenticate.")
	case errors.Is(err, auth.ErrNotAuthenticated):
		io.Println("Status: Not authenticated")
		io.Println("Run 'gophsync login' to authenticate.")
	default:
		return fmt.Errorf("failed to check authentication: %w", err)
	}

	c, err := r.syncClient(ctx, false)
	if err != nil {
		return err
	}

	pending, err := c.PendingCount(ctx)
	if err != nil {
		return fmt.Errorf("failed to get pending count: %w", err)
	}
	cursor, err := storage.NewMetadata(r.storage).GetCursor(ctx)
	if err != nil {
		return fmt.Errorf("failed to get cursor: %w", err)
	}

	io.Println()
	io.Printf("Last pulled cursor: %d\n", cursor)
	if pending > 0 {
		io.Printf("⚠️  Pending sync: %d operation(s) waiting to be synchronized\n", pending)
		io.Println("Run 'gophsync sync' to synchronize with server.")
	} else {
		io.Println("✓ All changes are synchronized")
	}

	return nil
}
