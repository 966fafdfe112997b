package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/templui/proofstreak/internal/repository"
)

func ProgressCmd() *cobra.Command {
	var at, output string

	c := &cobra.Command{
		Use:   "progress <user-id>",
		Short: "Print a user's dashboard numbers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(at)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			progress, err := a.DashboardService.Progress(context.Background(), args[0])
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), output, progress)
		},
	}
	addAtFlag(c, &at)
	addOutputFlag(c, &output)
	return c
}

func GoalsCmd() *cobra.Command {
	var at, output, sortBy string

	c := &cobra.Command{
		Use:   "goals <user-id>",
		Short: "Print a user's goals with their status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(at)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			goals, err := a.GoalService.List(context.Background(), args[0], sortBy)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), output, goals)
		},
	}
	addAtFlag(c, &at)
	addOutputFlag(c, &output)
	c.Flags().StringVar(&sortBy, "sort", repository.GoalSortCreated, "sort order: recent, created or title")
	return c
}

func TickCmd() *cobra.Command {
	var at string

	c := &cobra.Command{
		Use:   "tick",
		Short: "Run one reminder and break-expiry pass",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(at)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			sent := a.ReminderWorker.Tick(context.Background())
			fmt.Fprintf(cmd.OutOrStdout(), "reminders sent: %d\n", sent)
			return nil
		},
	}
	addAtFlag(c, &at)
	return c
}
