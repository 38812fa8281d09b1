package cli

import (
	"github.com/spf13/cobra"
)

// NewUpdateCommand creates the update command.
func NewUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "update <collection> <id> <json>",
		Short:   "Update fields of a document",
		Long:    "Write the given top-level fields over the stored document. Fields not given are kept.",
		Example: `  gophsync update todos 6f1c... '{"done": true}'`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			delta, err := parseDocument(args[2])
			if err != nil {
				return err
			}

			return rootOpts.withRuntime(cmd.Context(), cmd.ErrOrStderr(), func(r *runtime) error {
				coll, err := r.collection(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				updated, err := coll.Update(cmd.Context(), args[1], delta)
				if err != nil {
					return err
				}
				return printDocument(rootOpts.IO, updated)
			})
		},
	}
}
