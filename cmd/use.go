package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// useCmd represents the use command
var useCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Select the schedule commands operate on",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		schedule, err := app.schedules.GetByName(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if err := setCurrentSchedule(schedule.Name); err != nil {
			return fmt.Errorf("failed to select schedule: %w", err)
		}
		fmt.Printf("Using schedule %q\n", schedule.Name)
		return nil
	},
}
