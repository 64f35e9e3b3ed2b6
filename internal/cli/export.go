package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrlokans/quotes/internal/database"
	"github.com/mrlokans/quotes/internal/database/quotes"
	"github.com/mrlokans/quotes/internal/entrypoint"
	"github.com/mrlokans/quotes/internal/exporters"
)

func newExportCommand(opts *options) *cobra.Command {
	var (
		out      string
		markdown bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the catalog to a quotes file or markdown notes",
		Long: `Export the catalog.

By default --out names a .json or .yaml file in the seed format, so it can be
imported again with "quotes seed". With --markdown, --out is a directory that
receives one note per author.

Example:
  quotes export --out backup.yaml
  quotes export --markdown --out ~/Obsidian/Quotes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.loadConfig()

			db, err := database.NewDatabase(cfg.Database.Path, entrypoint.NewLogger(cfg))
			if err != nil {
				return err
			}
			defer db.Close()

			var exporter exporters.CatalogExporter = exporters.NewFileExporter(out)
			if markdown {
				exporter = exporters.NewMarkdownExporter(out)
			}

			result, err := exporter.Export(cmd.Context(), quotes.NewRepository(db.DB))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d quotes by %d authors to %s\n",
				result.QuotesProcessed, result.AuthorsProcessed, out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file, or directory with --markdown (required)")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "write one markdown note per author")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
