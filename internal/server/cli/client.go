package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/gophsync/internal/crypto"
	"github.com/iudanet/gophsync/internal/models"
	"github.com/iudanet/gophsync/internal/server/storage"
	"github.com/iudanet/gophsync/internal/server/storage/sqlite"
	"github.com/iudanet/gophsync/internal/validation"
)

// NewClientCommand creates the client command group.
func NewClientCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "client",
		Short: "Manage clients allowed to synchronize",
	}

	cmd.AddCommand(newClientAddCommand(rootOpts))
	cmd.AddCommand(newClientListCommand(rootOpts))
	cmd.AddCommand(newClientRemoveCommand(rootOpts))

	return cmd
}

type clientAddOptions struct {
	secret   string
	generate bool
}

func newClientAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &clientAddOptions{}

	cmd := &cobra.Command{
		Use:   "add <client-id>",
		Short: "Register a client",
		Long: `Register a client and store the bcrypt hash of its secret.

The secret is taken from --secret, generated with --generate, or prompted for.
A generated secret is printed once and cannot be recovered later.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientID := args[0]
			if err := validation.ValidateClientID(clientID); err != nil {
				return err
			}

			secret, err := resolveSecret(rootOpts, opts)
			if err != nil {
				return err
			}
			if err := validation.ValidateSecret(secret); err != nil {
				return err
			}

			hash, err := crypto.HashSecret(secret)
			if err != nil {
				return err
			}

			return rootOpts.withStorage(cmd.Context(), func(s *sqlite.Storage) error {
				client := &models.SyncClient{ID: clientID, SecretHash: hash, CreatedAt: time.Now().UTC()}
				if err := s.CreateClient(cmd.Context(), client); err != nil {
					if errors.Is(err, storage.ErrClientAlreadyExists) {
						return fmt.Errorf("client %q is already registered", clientID)
					}
					return err
				}

				io := rootOpts.IO
				io.Printf("✓ Client %s registered\n", clientID)
				if opts.generate {
					io.Printf("Secret: %s\n", secret)
					io.Println("⚠️  Store the secret now: it is not shown again.")
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&opts.secret, "secret", "", "client secret (prompted when empty)")
	cmd.Flags().BoolVar(&opts.generate, "generate", false, "generate a random secret")
	cmd.MarkFlagsMutuallyExclusive("secret", "generate")

	return cmd
}

func resolveSecret(rootOpts *RootOptions, opts *clientAddOptions) (string, error) {
	switch {
	case opts.secret != "":
		return opts.secret, nil
	case opts.generate:
		return crypto.GenerateSecret()
	}

	secret, err := rootOpts.IO.ReadPassword("Secret: ")
	if err != nil {
		return "", fmt.Errorf("failed to read secret: %w", err)
	}
	confirm, err := rootOpts.IO.ReadPassword("Confirm secret: ")
	if err != nil {
		return "", fmt.Errorf("failed to read secret: %w", err)
	}
	if secret != confirm {
		return "", fmt.Errorf("secrets do not match")
	}
	return secret, nil
}

func newClientListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered clients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withStorage(cmd.Context(), func(s *sqlite.Storage) error {
				clients, err := s.ListClients(cmd.Context())
				if err != nil {
					return err
				}

				io := rootOpts.IO
				if len(clients) == 0 {
					io.Println("No clients registered.")
					io.Println()
					io.Println("Use 'gophsync-server client add <client-id>' to register one.")
					return nil
				}

				io.Printf("Found %d client(s):\n", len(clients))
				for _, c := range clients {
					io.Printf("  %-32s registered %s\n", c.ID, c.CreatedAt.Format("2006-01-02 15:04:05"))
				}
				return nil
			})
		},
	}
}

func newClientRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <client-id>",
		Aliases: []string{"rm"},
		Short:   "Remove a registered client",
		Long: `Remove a registered client. Tokens already issued stay valid until they
expire. Changes the client pushed are kept.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withStorage(cmd.Context(), func(s *sqlite.Storage) error {
				if err := s.DeleteClient(cmd.Context(), args[0]); err != nil {
					return err
				}
				rootOpts.IO.Printf("✓ Client %s removed\n", args[0])
				return nil
			})
		},
	}
}
