package cli

import (
	"github.com/spf13/cobra"

	"github.com/mrlokans/quotes/internal/entrypoint"
)

func newServeCommand(opts *options, version string) *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the HTTP server. Pending migrations are applied first.

With --init the quotes file from SEED_FILE is imported before the server starts.

Example:
  quotes serve --init --db-path ./quotes.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return entrypoint.Run(opts.loadConfig(), entrypoint.Options{
				Version: version,
				Seed:    seed,
			})
		},
	}
	cmd.Flags().BoolVar(&seed, "init", false, "import the seed quotes file before serving")
	return cmd
}
