package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/flowgrid/internal/cli"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp [definition]",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes grid sessions to AI agents as MCP tools (open_grid, apply_event,
get_view, get_outputs) and resources (flowgrid://grids).

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cli.ServeOptions{RunOptions: runOptions(cmd, args)}
		opts.GridID, _ = cmd.Flags().GetString("grid")
		opts.Transport, _ = cmd.Flags().GetString("transport")
		opts.Port, _ = cmd.Flags().GetInt("port")

		// Logs must not corrupt JSON-RPC on stdout.
		log.SetOutput(os.Stderr)

		ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return cli.ServeMCP(ctx, opts)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
	mcpCmd.Flags().String("grid", "", "Id of the grid opened from the definition")
}
