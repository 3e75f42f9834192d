package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lookup/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Serves two tools to MCP clients: "search" resolves one or more queries
within a category, "categories" lists the catalog. The catalog is also
available as the resource lookup://categories.

Stdio is used unless --port is given:
  lookup mcp serve              # stdio, launched by the client
  lookup mcp serve --port 8081  # streamable HTTP

Client configuration:
  {
    "mcpServers": {
      "lookup": {
        "command": "/path/to/lookup",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

var mcpPort int

func init() {
	mcpServeCmd.Flags().IntVarP(&mcpPort, "port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	server, err := mcp.NewServer(&mcp.Ports{
		Lookup:     deps.Lookup,
		Categories: deps.Categories,
	})
	if err != nil {
		return err
	}

	if mcpPort <= 0 {
		return server.Run(cmd.Context())
	}

	addr := fmt.Sprintf(":%d", mcpPort)
	// stdout stays clean in stdio mode; only HTTP mode announces itself.
	fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://localhost%s/\n", addr)
	return server.RunHTTP(cmd.Context(), addr)
}
