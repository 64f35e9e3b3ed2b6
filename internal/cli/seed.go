package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrlokans/quotes/internal/database"
	"github.com/mrlokans/quotes/internal/database/quotes"
	"github.com/mrlokans/quotes/internal/entrypoint"
	"github.com/mrlokans/quotes/internal/importers"
)

func newSeedCommand(opts *options) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Import quotes from a JSON or YAML file",
		Long: `Import quotes from a JSON or YAML file into the catalog.

The file holds a list of records with "quote", "author_name" and "related_tags".
Records that fail are reported and skipped.

Example:
  quotes seed --file ./static/assets/quotes.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.loadConfig()
			if file == "" {
				file = cfg.Seed.File
			}
			logger := entrypoint.NewLogger(cfg)

			db, err := database.NewDatabase(cfg.Database.Path, logger)
			if err != nil {
				return err
			}
			defer db.Close()

			result, err := importers.ImportFile(cmd.Context(), quotes.NewRepository(db.DB), file, logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d quotes from %s\n", result.Imported, file)
			if result.Failed > 0 {
				fmt.Fprintf(out, "Skipped %d records:\n", result.Failed)
				for _, msg := range result.Errors {
					fmt.Fprintf(out, "  %s\n", msg)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "quotes file to import (defaults to SEED_FILE)")
	return cmd
}
