package cmd

import (
	"fmt"

	"table-booking/internal/scheduler"
	"table-booking/internal/usecase"

	"github.com/spf13/cobra"
)

func newSweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Complete every booking whose time slot has ended, once",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, cleanup, err := bootstrap()
			if err != nil {
				return err
			}
			defer cleanup()

			lifecycle := usecase.NewLifecycleService(rt.repo.Booking, rt.clock, rt.logger)
			sweeper := scheduler.NewSweeper(lifecycle, rt.config.Scheduler.SweepInterval, rt.config.Scheduler.SweepTimeout, rt.logger)

			completed, err := sweeper.RunOnce(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "completed %d booking(s)\n", completed)
			return nil
		},
	}
}
