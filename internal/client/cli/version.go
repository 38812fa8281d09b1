package cli

import (
	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(rootOpts *RootOptions, info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rootOpts.IO.Printf("gophsync %s\n", info.Version)
			rootOpts.IO.Printf("Build date: %s\n", info.BuildDate)
			rootOpts.IO.Printf("Git commit: %s\n", info.GitCommit)
			return nil
		},
	}
}
