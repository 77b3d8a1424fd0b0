package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// moveCmd represents the move command
var moveCmd = &cobra.Command{
	Use:   "move <activity> <position>",
	Short: "Move an activity to a new position in the countdown order",
	Long: `Move an activity within a deadline schedule. Position 0 is the activity
that ends last, right at the deadline; the highest position runs first.
Start-time schedules are ordered by clock time and cannot be reordered.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		schedule, err := currentSchedule(ctx)
		if err != nil {
			return err
		}

		position, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("position must be a number, got %q", args[1])
		}

		rollover, err := app.schedules.MoveActivity(ctx, schedule, args[0], position)
		if err != nil {
			return err
		}
		fmt.Printf("Moved %q to position %d\n", args[0], position)
		printRollover(rollover)
		return nil
	},
}
