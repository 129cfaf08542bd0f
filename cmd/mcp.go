package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rskel/rskel/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve skeleton rendering over MCP on stdio",
	Long: `Runs a Model Context Protocol server on stdin/stdout exposing the
render_skeleton, search and list tools.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSkel()
		if err != nil {
			return err
		}
		return mcp.NewServer(s).Run()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
