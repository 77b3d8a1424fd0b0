package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// stopCmd represents the stop command
var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the current session",
	Long: `Stop the current schedule's session and cancel its pending reminders.
Safe to run when nothing is active; reminders are cancelled either way.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		schedule, err := currentSchedule(ctx)
		if err != nil {
			return err
		}
		if err := app.sessions.Stop(ctx, schedule.ID); err != nil {
			return fmt.Errorf("failed to stop session: %w", err)
		}
		fmt.Println("Session stopped.")
		return nil
	},
}
