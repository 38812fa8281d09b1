package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

type loginOptions struct {
	clientID string
	secret   string
}

// NewLoginCommand creates the login command.
func NewLoginCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &loginOptions{}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate this client against the server",
		Long: `Exchange the client credentials for an access token and store the session
in the local database.

Credentials are taken from flags, then from the config file or GOPHSYNC_CLIENT_ID
and GOPHSYNC_SECRET, and are prompted for when still missing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withRuntime(cmd.Context(), cmd.ErrOrStderr(), func(r *runtime) error {
				return runLogin(cmd, rootOpts, r, opts)
			})
		},
	}

	cmd.Flags().StringVar(&opts.clientID, "client-id", "", "client identifier")
	cmd.Flags().StringVar(&opts.secret, "secret", "", "client secret (prompted when empty)")

	return cmd
}

func runLogin(cmd *cobra.Command, rootOpts *RootOptions, r *runtime, opts *loginOptions) error {
	io := rootOpts.IO
	io.Println("=== Login ===")
	io.Println()

	clientID := firstNonEmpty(opts.clientID, r.cfg.ClientID)
	if clientID == "" {
		var err error
		if clientID, err = io.ReadInput("Client ID: "); err != nil {
			return fmt.Errorf("failed to read client id: %w", err)
		}
	}

	secret := firstNonEmpty(opts.secret, r.cfg.Secret)
	if secret == "" {
		var err error
		if secret, err = io.ReadPassword("Secret: "); err != nil {
			return fmt.Errorf("failed to read secret: %w", err)
		}
	}

	session, err := r.auth.Login(cmd.Context(), r.cfg.ServerURL, clientID, secret)
	if err != nil {
		return err
	}

	io.Println()
	io.Printf("✓ Logged in as %s\n", session.ClientID)
	if !session.ExpiresAt.IsZero() {
		io.Printf("Token expires: %s\n", session.ExpiresAt.Format("2006-01-02 15:04:05 MST"))
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
