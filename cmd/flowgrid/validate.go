package main

import (
	"fmt"

	"github.com/aretw0/flowgrid/internal/cli"
	"github.com/aretw0/flowgrid/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [definition]",
	Short: "Check a grid definition against its metadata",
	Long: `Reports unknown fields, overrides that name unconfigured fields, broken
relationship columns and records with missing or duplicate ids.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if err := cli.Validate(commandContext(cmd), runOptions(cmd, args)); err != nil {
			fmt.Fprintln(out, tui.Status(out, false, "validation failed"))
			return err
		}
		fmt.Fprintln(out, tui.Status(out, true, "grid definition is valid"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
