package cli

import (
	"fmt"

	"cinedex/internal/database"
	"cinedex/internal/repository"
	"cinedex/internal/seed"

	"github.com/spf13/cobra"
)

func newCountsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "counts",
		Short: "Print the row count of every seeded table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, closeDB, err := a.openDB(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer closeDB()

			s, err := seed.New(repository.NewStore(db), seed.DefaultOptions())
			if err != nil {
				return err
			}
			counts, err := s.Counts(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "database: %s\n", database.Label(a.cfg))
			for _, c := range counts {
				fmt.Fprintf(out, "%-24s %8d\n", c.Table, c.Rows)
			}
			return nil
		},
	}
}
