package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrlokans/quotes/internal/database"
	"github.com/mrlokans/quotes/internal/database/quotes"
	"github.com/mrlokans/quotes/internal/entrypoint"
)

// newCleanupCommand runs the dangling-association sweep once, without the task queue.
func newCleanupCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Remove quote-tag links left behind by deleted quotes and tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.loadConfig()

			db, err := database.NewDatabase(cfg.Database.Path, entrypoint.NewLogger(cfg))
			if err != nil {
				return err
			}
			defer db.Close()

			removed, err := quotes.NewRepository(db.DB).DeleteDanglingAssociations(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d dangling associations\n", removed)
			return nil
		},
	}
}
