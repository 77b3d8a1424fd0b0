package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"minder/internal/domain"
)

// setCmd represents the set command
var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Change schedule or activity settings",
}

var setDeadlineCmd = &cobra.Command{
	Use:   "deadline <HH:MM>",
	Short: "Set the deadline for a deadline schedule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		schedule, err := currentSchedule(ctx)
		if err != nil {
			return err
		}
		deadline, err := domain.ParseTimeOfDay(args[0])
		if err != nil {
			return err
		}

		rollover, err := app.schedules.SetDeadline(ctx, schedule, deadline)
		if err != nil {
			return err
		}
		fmt.Printf("Deadline set to %s (plan needs %s, latest start %s)\n",
			deadline, formatMinutes(schedule.TotalDuration()),
			deadline.At(time.Now()).Add(-schedule.TotalDuration()).Format("15:04"))
		printRollover(rollover)
		return nil
	},
}

var setDurationCmd = &cobra.Command{
	Use:   "duration <activity> <minutes>",
	Short: "Change an activity's duration",
	Args:  cobra.ExactArgs(2),
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

		rollover, err := app.schedules.UpdateActivity(ctx, schedule, args[0], func(a *domain.Activity) {
			a.Duration = time.Duration(minutes) * time.Minute
		})
		if err != nil {
			return err
		}
		fmt.Printf("Set %q to %d min\n", args[0], minutes)
		printRollover(rollover)
		return nil
	},
}

var setStartCmd = &cobra.Command{
	Use:   "start <activity> <HH:MM>",
	Short: "Change an activity's start time (start-time schedules)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		schedule, err := currentSchedule(ctx)
		if err != nil {
			return err
		}
		if schedule.Mode != domain.AnchorStartTimes {
			return fmt.Errorf("schedule %q is deadline-anchored; set its deadline instead", schedule.Name)
		}
		startAt, err := domain.ParseTimeOfDay(args[1])
		if err != nil {
			return err
		}

		rollover, err := app.schedules.UpdateActivity(ctx, schedule, args[0], func(a *domain.Activity) {
			a.StartAt = &startAt
		})
		if err != nil {
			return err
		}
		fmt.Printf("Set %q to start at %s\n", args[0], startAt)
		printRollover(rollover)
		return nil
	},
}

func init() {
	setCmd.AddCommand(setDeadlineCmd)
	setCmd.AddCommand(setDurationCmd)
	setCmd.AddCommand(setStartCmd)
}
