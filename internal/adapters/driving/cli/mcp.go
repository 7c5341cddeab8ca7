package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-launcher/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so assistants can query the
launcher: rank apps, contacts, files and settings, build engine URLs and
ask the direct-answer engine.

By default, the server communicates over stdio using JSON-RPC.
Use --port to start an HTTP server instead, or --http to pick a free port.

Examples:
  # Stdio mode (default)
  sercha-launcher mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  sercha-launcher mcp serve --port 8080

  # HTTP mode on the first free port from 8765
  sercha-launcher mcp serve --http

Client configuration:
  {
    "mcpServers": {
      "sercha-launcher": {
        "command": "/path/to/sercha-launcher",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpServeCmd.Flags().Bool("http", false, "serve HTTP on the first free port")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	useHTTP, err := cmd.Flags().GetBool("http")
	if err != nil {
		return fmt.Errorf("getting http flag: %w", err)
	}
	if useHTTP && port == 0 {
		port, err = mcp.FindAvailablePort(mcp.DefaultPortStart, mcp.DefaultPortEnd)
		if err != nil {
			return err
		}
	}

	ports := &mcp.Ports{
		Search:  searchService,
		Engines: engineService,
		Answer:  answerService,
		Sources: sourceManagers,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	stopScheduler := startScheduler(cmd.Context())
	defer stopScheduler()

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
