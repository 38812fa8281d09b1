package cli

import (
	"github.com/spf13/cobra"
)

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <collection> <id>",
		Short: "Delete a document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withRuntime(cmd.Context(), cmd.ErrOrStderr(), func(r *runtime) error {
				coll, err := r.collection(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				if err := coll.Delete(cmd.Context(), args[1]); err != nil {
					return err
				}
				rootOpts.IO.Printf("✓ Deleted %s from %s\n", args[1], args[0])
				return nil
			})
		},
	}
}
