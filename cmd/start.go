package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"minder/internal/adapters/tui"
	"minder/internal/domain"
	"minder/internal/services"
)

var (
	startWatch bool
	startYes   bool
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a session for the current schedule",
	Long: `Start a session. Under a deadline the plan is pinned so its last activity
ends exactly at the deadline; starting late skips the activities whose
windows have already passed. If every activity has already elapsed the
start is rejected.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		schedule, err := currentSchedule(ctx)
		if err != nil {
			return err
		}

		result, err := app.sessions.Start(ctx, schedule)
		var tooLate *domain.TooLateError
		if errors.As(err, &tooLate) {
			return fmt.Errorf("%s; adjust the deadline or the plan and try again", tooLate.Error())
		}
		if err != nil {
			return err
		}

		fmt.Printf("Session started (plan start %s)\n", formatClock(result.Session.StartedAt))
		if len(result.Skipped) > 0 {
			fmt.Printf("Running %s late; skipped: %s\n",
				result.LateBy.Truncate(time.Second), strings.Join(result.Skipped, ", "))
		}

		if result.Rollover != nil {
			if startYes || confirm(fmt.Sprintf("All reminder times have passed today. Schedule %d reminder(s) for tomorrow?", len(result.Rollover.Boundaries))) {
				count, err := app.sessions.AcceptRollover(ctx, schedule)
				if err != nil {
					return err
				}
				fmt.Printf("Scheduled %d reminder(s) for tomorrow.\n", count)
			} else {
				fmt.Println("Reminders dropped for today. Run \"minder rollover\" to change your mind.")
			}
		}

		if startWatch {
			return watchSession(ctx, schedule)
		}
		return nil
	},
}

// watchSession follows the session with a single updating line until it
// ends or the schedule runs out.
func watchSession(ctx context.Context, schedule *domain.Schedule) error {
	width := 80
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		width = w
	}

	return app.sessions.Run(ctx, schedule, time.Second, func(snap *services.Snapshot) {
		line := fmt.Sprintf("%3.0f%% done", snap.Progress*100)
		if current, ok := snap.Current(); ok {
			line = fmt.Sprintf("%s — %s left · %s", current.Name, tui.FormatCountdown(current.Remaining), line)
		}
		fmt.Printf("\r\033[K%s", truncateLine(line, width))
	})
}

// truncateLine clamps a status line to the terminal width, leaving one
// column free for the cursor. Truncation is by rune; the line carries
// multi-byte characters that must not be torn.
func truncateLine(line string, width int) string {
	runes := []rune(line)
	if len(runes) < width {
		return line
	}
	return string(runes[:width-1])
}

func init() {
	startCmd.Flags().BoolVar(&startWatch, "watch", false, "Keep following the countdown on one line")
	startCmd.Flags().BoolVarP(&startYes, "yes", "y", false, "Accept a rollover proposal without asking")
}
