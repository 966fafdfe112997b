package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func UserCmd() *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users and their plans",
	}

	var output string
	createCmd := &cobra.Command{
		Use:   "create <email>",
		Short: "Create a user on the free plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp("")
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			user, err := a.UserService.Create(context.Background(), args[0])
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), output, user)
		},
	}
	addOutputFlag(createCmd, &output)
	userCmd.AddCommand(createCmd)

	userCmd.AddCommand(&cobra.Command{
		Use:   "plan <user-id> <free|pro|enterprise>",
		Short: "Move a user to another plan",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp("")
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			sub, err := a.SubscriptionService.ChangePlan(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "user %s is now on the %s plan (goal limit %d, max break days %d)\n",
				sub.UserID, sub.PlanID, sub.GoalLimit(), sub.MaxBreakDays())
			return nil
		},
	})

	userCmd.AddCommand(&cobra.Command{
		Use:   "delete <user-id>",
		Short: "Delete a user with all goals and photos",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp("")
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			return a.UserService.DeleteAccount(context.Background(), args[0])
		},
	})

	return userCmd
}

func TokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token <user-id>",
		Short: "Mint an API token for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp("")
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			user, err := a.UserService.ByID(args[0])
			if err != nil {
				return err
			}

			token, expiresAt, err := a.TokenService.GenerateJWT(user)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", expiresAt.Format("2006-01-02 15:04 MST"))
			return nil
		},
	}
}
