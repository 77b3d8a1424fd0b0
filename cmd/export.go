package cmd

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"minder/internal/domain"
)

var exportFormat string

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the current schedule",
	Long:  "Export the current schedule and session state as JSON, YAML, or CSV.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd.Context())
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "Output format: json, yaml, or csv")
}

// exportedActivity is the serialized activity shape.
type exportedActivity struct {
	ID              string `json:"id" yaml:"id"`
	Name            string `json:"name" yaml:"name"`
	DurationMinutes int    `json:"duration_minutes" yaml:"duration_minutes"`
	Position        int    `json:"position" yaml:"position"`
	StartAt         string `json:"start_at,omitempty" yaml:"start_at,omitempty"`
}

// exportedSchedule is the serialized schedule shape.
type exportedSchedule struct {
	Name       string             `json:"name" yaml:"name"`
	Mode       string             `json:"mode" yaml:"mode"`
	Deadline   string             `json:"deadline,omitempty" yaml:"deadline,omitempty"`
	Activities []exportedActivity `json:"activities" yaml:"activities"`
	Active     bool               `json:"active" yaml:"active"`
	StartedAt  string             `json:"started_at,omitempty" yaml:"started_at,omitempty"`
	Completed  []string           `json:"completed_ids,omitempty" yaml:"completed_ids,omitempty"`
}

func runExport(ctx context.Context) error {
	schedule, err := currentSchedule(ctx)
	if err != nil {
		return err
	}
	session, err := app.storage.Sessions().Find(ctx, schedule.ID)
	if err != nil {
		return err
	}

	out := exportedSchedule{
		Name:      schedule.Name,
		Mode:      string(schedule.Mode),
		Active:    session.Active,
		Completed: session.Completed,
	}
	if schedule.Deadline != nil {
		out.Deadline = schedule.Deadline.String()
	}
	if !session.StartedAt.IsZero() {
		out.StartedAt = session.StartedAt.Format("2006-01-02T15:04:05Z07:00")
	}
	for _, a := range schedule.Activities {
		ea := exportedActivity{
			ID:              a.ID,
			Name:            a.Name,
			DurationMinutes: int(a.Duration.Minutes()),
			Position:        a.Position,
		}
		if a.StartAt != nil {
			ea.StartAt = a.StartAt.String()
		}
		out.Activities = append(out.Activities, ea)
	}

	switch exportFormat {
	case "yaml":
		return yaml.NewEncoder(os.Stdout).Encode(out)
	case "csv":
		return exportCSV(schedule)
	default:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(out)
	}
}

func exportCSV(schedule *domain.Schedule) error {
	w := csv.NewWriter(os.Stdout)
	if err := w.Write([]string{"position", "name", "duration_minutes", "start_at"}); err != nil {
		return err
	}
	for _, a := range schedule.Activities {
		startAt := ""
		if a.StartAt != nil {
			startAt = a.StartAt.String()
		}
		record := []string{
			strconv.Itoa(a.Position),
			a.Name,
			strconv.Itoa(int(a.Duration.Minutes())),
			startAt,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}
