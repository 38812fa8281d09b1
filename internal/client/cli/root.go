// Package cli implements the gophsync command-line client.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/iudanet/gophsync/internal/client/iocli"
	"github.com/iudanet/gophsync/internal/config"
	"github.com/iudanet/gophsync/internal/logging"
)

// BuildInfo is reported by the version command
type BuildInfo struct {
	Version   string
	BuildDate string
	GitCommit string
}

// RootOptions holds global flags for all commands.
type RootOptions struct {
	IO         iocli.IO
	lookup     config.LookupFunc
	ConfigPath string
	DBPath     string
	ServerURL  string
	LogLevel   string
	LogFormat  string
}

// ValidLogFormats defines the allowed --log-format values.
var ValidLogFormats = []string{logging.FormatAuto, logging.FormatText, logging.FormatJSON}

// NewRootCommand creates the root command for the gophsync CLI.
func NewRootCommand(io iocli.IO, info BuildInfo) *cobra.Command {
	return newRootCommand(io, info, os.LookupEnv)
}

func newRootCommand(io iocli.IO, info BuildInfo, lookup config.LookupFunc) *cobra.Command {
	opts := &RootOptions{
		IO:     io,
		lookup: lookup,
	}

	cmd := &cobra.Command{
		Use:   "gophsync",
		Short: "gophsync - offline-first document sync client",
		Long: `Store JSON documents locally and synchronize them with a gophsync server.

Every change is applied locally first and queued. Run 'gophsync sync' to push
queued changes and pull changes made by other clients.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.LogFormat != "" && !isValidLogFormat(opts.LogFormat) {
				return fmt.Errorf("invalid log format %q: must be one of %v", opts.LogFormat, ValidLogFormats)
			}
			if opts.LogLevel != "" {
				if _, err := logging.ParseLevel(opts.LogLevel); err != nil {
					return err
				}
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to YAML config file")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "path to local database (default from config)")
	cmd.PersistentFlags().StringVar(&opts.ServerURL, "server", "", "server URL (default from config)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", "", "log format (auto|text|json)")

	// Add subcommands
	cmd.AddCommand(NewLoginCommand(opts))
	cmd.AddCommand(NewLogoutCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewUpdateCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewGetCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewSyncCommand(opts))
	cmd.AddCommand(NewStatusCommand(opts))
	cmd.AddCommand(NewWatchCommand(opts))
	cmd.AddCommand(NewVersionCommand(opts, info))

	return cmd
}

func isValidLogFormat(format string) bool {
	for _, f := range ValidLogFormats {
		if f == format {
			return true
		}
	}
	return false
}
