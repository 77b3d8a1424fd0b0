package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"minder/internal/domain"
)

var addAt string

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <name> <minutes>",
	Short: "Add an activity to the current schedule",
	Long: `Add an activity with a duration in whole minutes. In a deadline schedule
new activities go to the end of the countdown order (they run first); in a
start-time schedule --at is required and the list is kept sorted by clock
time.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		schedule, err := currentSchedule(ctx)
		if err != nil {
			return err
		}

		minutes, err := strconv.Atoi(args[1])
		if err != nil || minutes <= 0 {
			return fmt.Errorf("duration must be a positive number of minutes, got %q", args[1])
		}

		var startAt *domain.TimeOfDay
		if addAt != "" {
			t, err := domain.ParseTimeOfDay(addAt)
			if err != nil {
				return err
			}
			startAt = &t
		}
		if schedule.Mode == domain.AnchorStartTimes && startAt == nil {
			return fmt.Errorf("schedule %q needs a start time: use --at HH:MM", schedule.Name)
		}

		activity, rollover, err := app.schedules.AddActivity(ctx, schedule, args[0], time.Duration(minutes)*time.Minute, startAt)
		if err != nil {
			return err
		}

		fmt.Printf("Added %q (%d min) at position %d\n", activity.Name, minutes, activity.Position)
		printRollover(rollover)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addAt, "at", "", "Start time HH:MM (start-time schedules)")
}
