package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nightwatch-ai/nightwatch/internal/mcp"
)

func newMCPServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp-server",
		Short: "Run nightwatch as an MCP (Model Context Protocol) server",
		Long: `Start an MCP server that exposes nightwatch over stdio.

The MCP server lets AI assistants invoke nightwatch tools directly:

  • nightwatch_analyze - Analyze the risk of a travel plan
  • nightwatch_report  - File an incident report
  • nightwatch_sos     - List SOS cases

The server communicates via JSON-RPC 2.0 over stdin/stdout, following
the Model Context Protocol specification.

Example client configuration:

  {
    "mcpServers": {
      "nightwatch": {
        "command": "nightwatch",
        "args": ["mcp-server", "--config", "/path/to/config.yaml"]
      }
    }
  }
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd, nil)
			if err != nil {
				return err
			}
			defer app.Close()

			server, err := mcp.NewServer(&mcp.Config{
				Name:    "nightwatch",
				Version: version,
			}, app.engine)
			if err != nil {
				return fmt.Errorf("failed to create MCP server: %w", err)
			}
			defer server.Close()

			// Blocks until the client disconnects or SIGTERM/SIGINT
			if err := server.Run(cmd.Context()); err != nil {
				return fmt.Errorf("MCP server error: %w", err)
			}
			return nil
		},
	}

	return cmd
}
