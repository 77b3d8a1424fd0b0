package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// doneCmd represents the done command
var doneCmd = &cobra.Command{
	Use:   "done <activity>",
	Short: "Mark an activity done by hand",
	Long: `Force-mark an activity completed for the rest of the session, whatever
its time window says. The mark never comes off until the session stops.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		schedule, err := currentSchedule(ctx)
		if err != nil {
			return err
		}
		activity, err := app.schedules.ResolveActivity(schedule, args[0])
		if err != nil {
			return err
		}
		if err := app.sessions.MarkDone(ctx, schedule.ID, activity.ID); err != nil {
			return err
		}
		fmt.Printf("Marked %q done\n", activity.Name)
		return nil
	},
}
