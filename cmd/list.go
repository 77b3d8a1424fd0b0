package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"minder/internal/domain"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the current schedule's activities with their time windows",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		schedule, err := currentSchedule(ctx)
		if err != nil {
			return err
		}
		if len(schedule.Activities) == 0 {
			fmt.Printf("Schedule %q is empty. Add activities with \"minder add\".\n", schedule.Name)
			return nil
		}

		snap, err := app.sessions.Snapshot(ctx, schedule)
		if err != nil {
			return err
		}

		fmt.Printf("%s (%s mode, %s total)\n", schedule.Name, schedule.Mode, formatMinutes(schedule.TotalDuration()))
		if !snap.Anchor.IsZero() {
			fmt.Printf("deadline %s\n", formatClock(snap.Anchor))
		}
		for _, st := range snap.Statuses {
			a := schedule.Activity(st.ActivityID)
			if a == nil {
				continue
			}
			fmt.Printf("%2d. %-24s %5s   %s - %s   %s\n",
				a.Position,
				a.Name,
				formatMinutes(a.Duration),
				formatClock(st.Window.Start),
				formatClock(st.Window.End),
				stateLabel(st),
			)
		}
		return nil
	},
}

func stateLabel(st domain.ActivityStatus) string {
	if st.Skipped {
		return "skipped"
	}
	return string(st.State)
}
