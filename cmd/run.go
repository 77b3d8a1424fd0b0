package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"minder/internal/adapters/tui"
	"minder/internal/services"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Follow the current session full-screen",
	Long:  `Open the live countdown view for the running session. Starts one if needed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		schedule, err := currentSchedule(ctx)
		if err != nil {
			return err
		}

		snap, err := app.sessions.Snapshot(ctx, schedule)
		if err != nil {
			return err
		}
		if !snap.Active {
			if err := startCmd.RunE(cmd, nil); err != nil {
				return err
			}
			if snap, err = app.sessions.Snapshot(ctx, schedule); err != nil {
				return err
			}
		}

		model := tui.NewModel(
			schedule,
			snap,
			&app.config.Theme,
			func() (*services.Snapshot, error) { return app.sessions.Snapshot(ctx, schedule) },
			func() error { return app.sessions.Stop(ctx, schedule.ID) },
		)

		final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
		if err != nil {
			return fmt.Errorf("failed to run countdown view: %w", err)
		}
		if m, ok := final.(tui.Model); ok {
			if m.Err() != nil {
				return m.Err()
			}
			if m.Stopped {
				fmt.Println("Session stopped.")
			}
		}
		return nil
	},
}
