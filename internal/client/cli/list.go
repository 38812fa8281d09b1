package cli

import (
	"sort"

	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list <collection>",
		Short: "Print every document of a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withRuntime(cmd.Context(), cmd.ErrOrStderr(), func(r *runtime) error {
				coll, err := r.collection(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				io := rootOpts.IO
				docs := coll.GetAll()
				if len(docs) == 0 {
					io.Printf("No documents in %s.\n", args[0])
					io.Println()
					io.Printf("Use 'gophsync add %s <json>' to add your first document.\n", args[0])
					return nil
				}

				sort.Slice(docs, func(i, j int) bool { return docs[i].ID() < docs[j].ID() })

				io.Printf("Found %d document(s):\n", len(docs))
				for _, doc := range docs {
					if err := printDocument(io, doc); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}
