package cli

import (
	"errors"
	"fmt"

	"cinedex/internal/database"

	"github.com/spf13/cobra"
)

func newNukeCommand(a *app) *cobra.Command {
	var confirmed bool
	cmd := &cobra.Command{
		Use:   "nuke",
		Short: "Delete every row from every seeded table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !confirmed {
				return errors.New("refusing to empty the database without --yes")
			}
			if a.cfg.IsProduction() {
				return errors.New("nuke is disabled in production")
			}

			db, closeDB, err := a.openDB(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer closeDB()

			if err := database.TruncateAllTables(cmd.Context(), db); err != nil {
				return fmt.Errorf("nuke: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "emptied %s\n", database.Label(a.cfg))
			return nil
		},
	}
	cmd.Flags().BoolVar(&confirmed, "yes", false, "Confirm that every row should be deleted")
	return cmd
}
