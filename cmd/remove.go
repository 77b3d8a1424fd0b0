package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// removeCmd represents the remove command
var removeCmd = &cobra.Command{
	Use:   "remove <activity>",
	Short: "Remove an activity (by id or fuzzy name match)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		schedule, err := currentSchedule(ctx)
		if err != nil {
			return err
		}

		removed, rollover, err := app.schedules.RemoveActivity(ctx, schedule, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Removed %q\n", removed.Name)
		printRollover(rollover)
		return nil
	},
}
