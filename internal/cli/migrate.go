package cli

import (
	"fmt"
	"strconv"

	"cinedex/internal/database"

	"github.com/spf13/cobra"
)

func newMigrateCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Inspect and apply the database schema",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply pending SQL migrations (postgres only)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				db, closeDB, err := a.openDB(cmd.Context(), false)
				if err != nil {
					return err
				}
				defer closeDB()

				if err := database.RunMigrations(cmd.Context(), db); err != nil {
					return fmt.Errorf("sql migrations failed: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "sql migrations applied")
				return nil
			},
		},
		&cobra.Command{
			Use:   "auto",
			Short: "Create or update tables from the models with GORM AutoMigrate",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				db, closeDB, err := a.openDB(cmd.Context(), false)
				if err != nil {
					return err
				}
				defer closeDB()

				a.cfg.DBSchemaMode = database.SchemaModeAuto
				if err := database.ApplySchema(cmd.Context(), db, a.cfg); err != nil {
					return fmt.Errorf("auto schema apply failed: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "automigrations applied")
				return nil
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show the schema policy and pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				db, closeDB, err := a.openDB(cmd.Context(), false)
				if err != nil {
					return err
				}
				defer closeDB()

				status, err := database.GetSchemaStatus(cmd.Context(), db, a.cfg)
				if err != nil {
					return fmt.Errorf("schema status failed: %w", err)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "mode=%s env=%s driver=%s run_sql=%t run_auto=%t applied=%d pending=%d\n",
					status.Mode, status.Environment, status.Driver, status.SQL, status.Auto,
					len(status.AppliedVersions), len(status.PendingMigrations))
				for _, m := range status.PendingMigrations {
					fmt.Fprintf(out, "pending: %s\n", m.String())
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "down <version>",
			Short: "Roll back one applied SQL migration",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				version, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid version %q: %w", args[0], err)
				}

				db, closeDB, err := a.openDB(cmd.Context(), false)
				if err != nil {
					return err
				}
				defer closeDB()

				if err := database.RollbackMigration(cmd.Context(), db, version); err != nil {
					return fmt.Errorf("rollback failed: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "rolled back migration %d\n", version)
				return nil
			},
		},
	)
	return cmd
}
