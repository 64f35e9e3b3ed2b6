package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mrlokans/quotes/internal/database"
)

func newMigrateCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
		Long:  `Create, upgrade or roll back the catalog schema.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.loadConfig()
			version, err := database.Migrate(cfg.Database.Path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Migrated to version: %d\n", version)
			return nil
		},
	}

	down := &cobra.Command{
		Use:   "down [steps]",
		Short: "Roll back migrations",
		Long: `Roll back the given number of migrations (default: 1).

Example:
  quotes migrate down      # Rollback 1 migration
  quotes migrate down 3    # Rollback 3 migrations`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps := 1
			if len(args) > 0 {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid steps %q: %w", args[0], err)
				}
				steps = n
			}

			cfg := opts.loadConfig()
			fmt.Fprintf(cmd.OutOrStdout(), "Rolling back %d migration(s)...\n", steps)
			version, err := database.MigrateDown(cfg.Database.Path, steps)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rolled back to version: %d\n", version)
			return nil
		},
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Show the current migration version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.loadConfig()
			version, dirty, err := database.MigrationVersion(cfg.Database.Path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if version == 0 {
				fmt.Fprintln(out, "No migrations have been applied yet")
				return nil
			}
			fmt.Fprintf(out, "Current version: %d\n", version)
			if dirty {
				fmt.Fprintln(out, "Warning: Database is in a dirty state")
			}
			return nil
		},
	}

	cmd.AddCommand(up, down, status)
	return cmd
}
