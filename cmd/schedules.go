package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var schedulesDelete string

// schedulesCmd represents the schedules command
var schedulesCmd = &cobra.Command{
	Use:   "schedules",
	Short: "List schedules",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if schedulesDelete != "" {
			schedule, err := app.schedules.GetByName(ctx, schedulesDelete)
			if err != nil {
				return err
			}
			if err := app.schedules.Delete(ctx, schedule.ID); err != nil {
				return err
			}
			fmt.Printf("Deleted schedule %q\n", schedule.Name)
			return nil
		}

		all, err := app.schedules.List(ctx)
		if err != nil {
			return err
		}
		if len(all) == 0 {
			fmt.Println("No schedules yet. Create one with \"minder new <name>\".")
			return nil
		}
		for _, s := range all {
			marker := " "
			if s.Name == app.config.CurrentSchedule {
				marker = "*"
			}
			extra := ""
			if s.Deadline != nil {
				extra = fmt.Sprintf(", deadline %s", s.Deadline)
			}
			fmt.Printf("%s %-20s %s mode, %d activities, %s total%s\n",
				marker, s.Name, s.Mode, len(s.Activities), s.TotalDuration(), extra)
		}
		return nil
	},
}

func init() {
	schedulesCmd.Flags().StringVar(&schedulesDelete, "delete", "", "Delete the named schedule")
}
