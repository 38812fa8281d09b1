package cli

import (
	"github.com/spf13/cobra"
)

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <collection> <json>",
		Short: "Add a document to a collection",
		Long: `Add a JSON document to a collection. An "id" is generated when the document
has none. The change is queued until the next sync.`,
		Example: `  gophsync add todos '{"title": "buy milk", "done": false}'`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := parseDocument(args[1])
			if err != nil {
				return err
			}

			return rootOpts.withRuntime(cmd.Context(), cmd.ErrOrStderr(), func(r *runtime) error {
				coll, err := r.collection(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				created, err := coll.Add(cmd.Context(), doc)
				if err != nil {
					return err
				}
				return printDocument(rootOpts.IO, created)
			})
		},
	}
}
