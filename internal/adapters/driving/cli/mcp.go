package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sharepoint-lookup/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default, the server communicates over stdio using JSON-RPC and can be
used with Claude Desktop and other MCP-compatible AI assistants.

Tools:
  lookup            search SharePoint for one or more values
  validate_options  check the configured connection options

Use --port to start an HTTP server instead.

Examples:
  # Stdio mode (default)
  splookup mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  splookup mcp serve --port 8080`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	if err := ensureServices(); err != nil {
		return err
	}

	ports := &mcp.Ports{
		Lookup:  lookupService,
		Options: optionsStore,
		Version: version,
	}
	if logFile == "" {
		ports.LogSink = cmd.ErrOrStderr()
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	return runWithWatch(cmd.Context(), func(ctx context.Context) error {
		if port > 0 {
			addr := fmt.Sprintf(":%d", port)
			cmd.PrintErrf("MCP server listening on http://localhost%s\n", addr)
			return server.RunHTTP(ctx, addr)
		}
		return server.Run(ctx)
	})
}
