package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/flowgrid/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve [definition]",
	Short: "Start the HTTP server",
	Long: `Serves grid sessions over a JSON API with an SSE stream of output changes.
A definition, when given, is opened as the first grid (id from --grid, or "default").`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cli.ServeOptions{RunOptions: runOptions(cmd, args)}
		opts.GridID, _ = cmd.Flags().GetString("grid")
		opts.Port, _ = cmd.Flags().GetInt("port")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return cli.Serve(ctx, opts)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("grid", "", "Id of the grid opened from the definition")
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
