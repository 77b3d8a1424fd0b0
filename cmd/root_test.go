package cmd

import (
	"bytes"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"minder/internal/domain"
)

// executeCmd is a helper to execute a cobra command in tests
func executeCmd(cmd *cobra.Command, args ...string) (stdout string, stderr string, err error) {
	bufOut := new(bytes.Buffer)
	bufErr := new(bytes.Buffer)

	cmd.SetOut(bufOut)
	cmd.SetErr(bufErr)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return bufOut.String(), bufErr.String(), err
}

func TestRootCmd(t *testing.T) {
	if rootCmd == nil {
		t.Fatal("rootCmd should not be nil")
	}
	if rootCmd.Use != "minder" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "minder")
	}
}

// TestRootCmd_Help tests the --help flag
func TestRootCmd_Help(t *testing.T) {
	stdout, _, err := executeCmd(rootCmd, "--help")
	if err != nil {
		t.Fatalf("help command failed: %v", err)
	}
	if !bytes.Contains([]byte(stdout), []byte("minder")) && !bytes.Contains([]byte(stdout), []byte("Minder")) {
		t.Error("help output should contain 'minder' or 'Minder'")
	}
}

// TestRootCmd_Flags tests that global flags are registered
func TestRootCmd_Flags(t *testing.T) {
	if rootCmd.PersistentFlags().Lookup("db") == nil {
		t.Error("--db flag should be registered")
	}
	if rootCmd.PersistentFlags().Lookup("json") == nil {
		t.Error("--json flag should be registered")
	}
}

// TestRootCmd_Subcommands verifies every verb is registered
func TestRootCmd_Subcommands(t *testing.T) {
	want := []string{
		"new", "use", "schedules", "add", "list", "remove", "move", "set",
		"start", "stop", "status", "done", "run", "rollover", "export", "mcp",
	}
	registered := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}
	for _, name := range want {
		if !registered[name] {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		duration time.Duration
		want     string
	}{
		{10 * time.Minute, "10m"},
		{90 * time.Second, "1m"},
		{2 * time.Hour, "120m"},
	}
	for _, tt := range tests {
		if got := formatMinutes(tt.duration); got != tt.want {
			t.Errorf("formatMinutes(%v) = %q, want %q", tt.duration, got, tt.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	at := time.Date(2024, 6, 15, 14, 5, 30, 0, time.Local)
	if got := formatClock(at); got != "14:05" {
		t.Errorf("formatClock() = %q, want %q", got, "14:05")
	}
}

func TestTruncateLine(t *testing.T) {
	// The watch line mixes ASCII with multi-byte runes; clamping at a
	// narrow width must never tear a character.
	line := "Déjeuner — 4:59 left · 45% done"
	for width := 2; width <= 40; width++ {
		got := truncateLine(line, width)
		if !utf8.ValidString(got) {
			t.Fatalf("truncateLine(width=%d) = %q, invalid UTF-8", width, got)
		}
		if n := len([]rune(got)); n >= width {
			t.Errorf("truncateLine(width=%d) kept %d runes", width, n)
		}
	}
	if got := truncateLine("short", 80); got != "short" {
		t.Errorf("truncateLine() = %q, want unchanged", got)
	}
}

func TestStateLabel(t *testing.T) {
	tests := []struct {
		name string
		st   domain.ActivityStatus
		want string
	}{
		{"skipped wins", domain.ActivityStatus{State: domain.StateCompleted, Skipped: true}, "skipped"},
		{"completed", domain.ActivityStatus{State: domain.StateCompleted}, "completed"},
		{"current", domain.ActivityStatus{State: domain.StateCurrent}, "current"},
		{"upcoming", domain.ActivityStatus{State: domain.StateUpcoming}, "upcoming"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stateLabel(tt.st); got != tt.want {
				t.Errorf("stateLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}
