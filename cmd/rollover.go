package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"minder/internal/domain"
)

// rolloverCmd represents the rollover command
var rolloverCmd = &cobra.Command{
	Use:   "rollover",
	Short: "Schedule today's passed reminders for tomorrow",
	Long: `Accept the pending proposal to re-arm reminders whose times have already
passed today, each at the same clock time tomorrow.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		schedule, err := currentSchedule(ctx)
		if err != nil {
			return err
		}

		count, err := app.sessions.AcceptRollover(ctx, schedule)
		if errors.Is(err, domain.ErrNoPendingRollover) {
			fmt.Println("Nothing to roll over.")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Printf("Scheduled %d reminder(s) for tomorrow.\n", count)
		return nil
	},
}
