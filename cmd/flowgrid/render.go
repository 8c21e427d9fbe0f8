package main

import (
	"github.com/aretw0/flowgrid/internal/cli"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render [definition]",
	Short: "Render a grid once",
	Long: `Starts the grid of a definition, applies the --do commands in order and prints
the result. Commands use the syntax of the interactive shell, e.g.
  flowgrid render grid.yaml --do "sort Amount desc" --do "toggle o1" --format outputs`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := runOptions(cmd, args)
		format, _ := cmd.Flags().GetString("format")
		commands, _ := cmd.Flags().GetStringArray("do")
		return cli.RenderGrid(cmd.Context(), opts, format, commands, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().String("format", cli.FormatTable, "Output format: table, markdown, json or outputs")
	renderCmd.Flags().StringArray("do", nil, "Command to apply before rendering (repeatable)")
}
