package cmd

import (
	"github.com/spf13/cobra"

	"minder/internal/adapters/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve schedules over the Model Context Protocol (stdio)",
	RunE: func(cmd *cobra.Command, args []string) error {
		server := mcp.NewServer(app.schedules, app.sessions)
		return server.Start(cmd.Context())
	},
}
