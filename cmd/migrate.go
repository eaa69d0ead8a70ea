package cmd

import (
	"fmt"

	"table-booking/internal/data/migration"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and seed the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, cleanup, err := bootstrap()
			if err != nil {
				return err
			}
			defer cleanup()

			applied, err := migration.Up(cmd.Context(), rt.db, rt.logger)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "applied %d migration(s)\n", applied)
			return nil
		},
	}
}
