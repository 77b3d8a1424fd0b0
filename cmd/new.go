package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var newMode string

// newCmd represents the new command
var newCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Create a new schedule",
	Long: `Create a new schedule. A deadline schedule counts backwards from a single
target time; a start-time schedule gives every activity its own clock time.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		schedule, err := app.schedules.Create(cmd.Context(), args[0], newMode)
		if err != nil {
			return err
		}
		if err := setCurrentSchedule(schedule.Name); err != nil {
			return fmt.Errorf("failed to select schedule: %w", err)
		}
		fmt.Printf("Created %s schedule %q (now current)\n", schedule.Mode, schedule.Name)
		return nil
	},
}

func init() {
	newCmd.Flags().StringVar(&newMode, "mode", "deadline", "Anchor mode: deadline or start_times")
}
