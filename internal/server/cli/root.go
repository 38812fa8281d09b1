// Package cli implements the gophsync-server command line: running the sync
// server and managing registered clients.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/iudanet/gophsync/internal/client/iocli"
	"github.com/iudanet/gophsync/internal/config"
	"github.com/iudanet/gophsync/internal/logging"
	"github.com/iudanet/gophsync/internal/server/storage/sqlite"
)

// BuildInfo is reported by the version command and the health endpoint
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
	Addr       string
	DBPath     string
	LogLevel   string
	LogFormat  string
}

// NewRootCommand creates the root command for gophsync-server.
// Without a subcommand it runs the server.
func NewRootCommand(io iocli.IO, info BuildInfo) *cobra.Command {
	return newRootCommand(io, info, os.LookupEnv)
}

func newRootCommand(io iocli.IO, info BuildInfo, lookup config.LookupFunc) *cobra.Command {
	opts := &RootOptions{
		IO:     io,
		lookup: lookup,
	}

	serve := NewServeCommand(opts, info)

	cmd := &cobra.Command{
		Use:   "gophsync-server",
		Short: "gophsync-server - sync server for gophsync clients",
		Long: `Accept pushed operations from gophsync clients, detect conflicts and serve
the change feed clients pull from.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          serve.RunE,
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to YAML config file")
	cmd.PersistentFlags().StringVar(&opts.Addr, "addr", "", "listen address (default from config)")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "path to server database (default from config)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", "", "log format (auto|text|json)")

	cmd.AddCommand(serve)
	cmd.AddCommand(NewClientCommand(opts))
	cmd.AddCommand(NewVersionCommand(opts, info))

	return cmd
}

// load reads the configuration and applies flag overrides. The result is
// not validated: admin commands need only the database path.
func (o *RootOptions) load() (*config.ServerConfig, error) {
	cfg, err := config.LoadServer(o.ConfigPath, o.lookup)
	if err != nil {
		return nil, err
	}

	if o.Addr != "" {
		cfg.Addr = o.Addr
	}
	if o.DBPath != "" {
		cfg.DBPath = o.DBPath
	}
	if o.LogLevel != "" {
		cfg.Log.Level = o.LogLevel
	}
	if o.LogFormat != "" {
		cfg.Log.Format = o.LogFormat
	}
	return cfg, nil
}

// withStorage opens the server database for the duration of fn
func (o *RootOptions) withStorage(ctx context.Context, fn func(s *sqlite.Storage) error) (err error) {
	cfg, err := o.load()
	if err != nil {
		return err
	}
	if cfg.DBPath == "" {
		return fmt.Errorf("%w: db_path is required", config.ErrInvalidConfig)
	}

	s, err := sqlite.New(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return fn(s)
}

func newLogger(cfg logging.Config, w io.Writer) (*slog.Logger, error) {
	logger, err := logging.New(cfg, w)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}
