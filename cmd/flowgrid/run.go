package main

import (
	"github.com/aretw0/flowgrid/internal/cli"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [definition]",
	Short: "Drive a grid interactively",
	Long: `Opens the grid of a definition in an interactive shell. Type "help" for the
command list. A named grid (--grid) is persisted and resumed on the next run.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := runOptions(cmd, args)
		opts.GridID, _ = cmd.Flags().GetString("grid")
		opts.Fresh, _ = cmd.Flags().GetBool("fresh")
		opts.Headless, _ = cmd.Flags().GetBool("headless")
		opts.JSON, _ = cmd.Flags().GetBool("json")
		opts.HooksFile, _ = cmd.Flags().GetString("hooks")
		return cli.RunSession(cmd.Context(), opts, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("grid", "", "Grid session id (persisted when set)")
	runCmd.Flags().Bool("fresh", false, "Discard the stored session before starting")
	runCmd.Flags().Bool("headless", false, "Run in headless mode (no prompts, plain output)")
	runCmd.Flags().Bool("json", false, "Run in JSON mode (JSON Lines input and output)")
	runCmd.Flags().String("hooks", "", "Hooks file running local commands for engine actions (e.g. NAVIGATE)")
}
