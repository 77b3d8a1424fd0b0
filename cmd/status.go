package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"minder/internal/adapters/tui"
	"minder/internal/domain"
	"minder/internal/services"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current schedule's evaluated status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStatus(cmd.Context())
	},
}

func runStatus(ctx context.Context) error {
	schedule, err := currentSchedule(ctx)
	if err != nil {
		return err
	}
	snap, err := app.sessions.Snapshot(ctx, schedule)
	if err != nil {
		return err
	}

	if jsonOutput {
		return outputStatusJSON(schedule, snap)
	}

	state := "idle"
	if snap.Active {
		state = "running"
	}
	fmt.Printf("%s (%s, %s)\n", schedule.Name, schedule.Mode, state)
	if !snap.Anchor.IsZero() {
		fmt.Printf("Deadline: %s\n", formatClock(snap.Anchor))
	}
	if snap.Active {
		fmt.Printf("Progress: %3.0f%% of %s\n", snap.Progress*100, formatMinutes(snap.Total))
	}
	if current, ok := snap.Current(); ok {
		fmt.Printf("Now: %s — %s left\n", current.Name, tui.FormatCountdown(current.Remaining))
	}
	for _, st := range snap.Statuses {
		fmt.Printf("  [%s] %s\n", stateLabel(st), st.Name)
	}
	proposal, err := app.sessions.PendingRollover(ctx, schedule)
	if err != nil {
		return err
	}
	if proposal != nil {
		printRollover(proposal)
	}
	return nil
}

// outputStatusJSON outputs the status in JSON format.
func outputStatusJSON(schedule *domain.Schedule, snap *services.Snapshot) error {
	activities := make([]map[string]interface{}, 0, len(snap.Statuses))
	for _, st := range snap.Statuses {
		entry := map[string]interface{}{
			"name":    st.Name,
			"state":   string(st.State),
			"skipped": st.Skipped,
			"starts":  st.Window.Start.Format("2006-01-02T15:04:05"),
			"ends":    st.Window.End.Format("2006-01-02T15:04:05"),
		}
		if st.State == domain.StateCurrent {
			entry["remaining_seconds"] = int(st.Remaining.Seconds())
		}
		if st.State == domain.StateUpcoming {
			entry["until_start_seconds"] = int(st.UntilStart.Seconds())
		}
		activities = append(activities, entry)
	}

	result := map[string]interface{}{
		"schedule":   schedule.Name,
		"mode":       string(schedule.Mode),
		"active":     snap.Active,
		"progress":   snap.Progress,
		"activities": activities,
	}
	if !snap.Anchor.IsZero() {
		result["deadline"] = snap.Anchor.Format("2006-01-02T15:04:05")
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}
