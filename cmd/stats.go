package cmd

import (
	"fmt"

	"table-booking/internal/data/entity"
	"table-booking/internal/usecase"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print booking counts by status and the number of users",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, cleanup, err := bootstrap()
			if err != nil {
				return err
			}
			defer cleanup()

			stats := usecase.NewStatsService(rt.repo, rt.logger)

			counts, err := stats.CountByStatus(cmd.Context())
			if err != nil {
				return err
			}
			users, err := stats.CountUsers(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, status := range entity.BookingStatuses {
				fmt.Fprintf(out, "%-10s %d\n", status, counts[string(status)])
			}
			fmt.Fprintf(out, "%-10s %d\n", entity.TotalKey, counts[entity.TotalKey])
			fmt.Fprintf(out, "%-10s %d\n", "users", users)
			return nil
		},
	}
}
