package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/gophsync/internal/client/collection"
)

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <collection> <id>",
		Short: "Print one document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withRuntime(cmd.Context(), cmd.ErrOrStderr(), func(r *runtime) error {
				coll, err := r.collection(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				doc, ok := coll.Get(args[1])
				if !ok {
					return fmt.Errorf("%w: %s", collection.ErrNotFound, args[1])
				}
				return printDocument(rootOpts.IO, doc)
			})
		},
	}
}
