package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"minder/internal/domain"
)

// printRollover tells the user a next-day proposal is waiting.
func printRollover(proposal *domain.RolloverProposal) {
	if proposal == nil {
		return
	}
	fmt.Printf("All of today's reminder times have passed. Schedule %d reminder(s) for tomorrow?\n", len(proposal.Boundaries))
	for _, b := range proposal.Boundaries {
		fmt.Printf("   %s  %s\n", b.At.Format("Mon 15:04"), b.Name)
	}
	fmt.Println("Run \"minder rollover\" to accept.")
}

// confirm asks a y/N question on stdin.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	answer = strings.TrimSpace(strings.ToLower(answer))
	return answer == "y" || answer == "yes"
}

// formatClock renders an instant as HH:MM.
func formatClock(t time.Time) string {
	return t.Format("15:04")
}

// formatMinutes renders a duration in whole minutes.
func formatMinutes(d time.Duration) string {
	return fmt.Sprintf("%dm", int(d.Minutes()))
}
