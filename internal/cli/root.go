// Package cli holds the quotes command line: the server and its maintenance commands.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/mrlokans/quotes/internal/config"
)

// options are the global flags shared by every command.
type options struct {
	dbPath string
}

// NewRootCommand builds the command tree. Running it without a subcommand starts the server.
func NewRootCommand(version, commit string) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "quotes",
		Short:         "Quotes catalog server",
		Long:          "Serve a catalog of quotes, authors and tags as a JSON API and HTML pages.",
		Version:       version + " (" + commit + ")",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.dbPath, "db-path", "", "path to the SQLite database (overrides DATABASE_PATH)")

	serve := newServeCommand(opts, version)
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())

	root.AddCommand(
		serve,
		newSeedCommand(opts),
		newExportCommand(opts),
		newMigrateCommand(opts),
		newCleanupCommand(opts),
		newHashPasswordCommand(),
	)
	return root
}

// loadConfig reads the environment and applies the global flags on top.
func (o *options) loadConfig() *config.Config {
	cfg := config.NewConfig()
	if o.dbPath != "" {
		cfg.Database.Path = o.dbPath
	}
	return cfg
}
