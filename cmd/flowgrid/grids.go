package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/flowgrid/internal/cli"
	"github.com/spf13/cobra"
)

var gridsCmd = &cobra.Command{
	Use:   "grids",
	Short: "Manage persisted grid sessions",
	Long:  `List, inspect, and remove grid sessions kept in the file store (.flowgrid/grids) or Redis.`,
}

var gridsLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List stored grids",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := cli.ListGrids(commandContext(cmd), runOptions(cmd, nil))
		if err != nil {
			return fmt.Errorf("error listing grids: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(ids) == 0 {
			fmt.Fprintln(out, "No stored grids found.")
			return nil
		}
		for _, id := range ids {
			fmt.Fprintln(out, "- "+id)
		}
		return nil
	},
}

var gridsInspectCmd = &cobra.Command{
	Use:   "inspect <grid-id>",
	Short: "Print the stored state of a grid",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		state, err := cli.InspectGrid(commandContext(cmd), runOptions(cmd, nil), args[0])
		if err != nil {
			return fmt.Errorf("error loading grid '%s': %w", args[0], err)
		}
		data, err := json.MarshalIndent(state, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var gridsRmCmd = &cobra.Command{
	Use:   "rm <grid-id>...",
	Short: "Remove one or more grids",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cli.RemoveGrids(commandContext(cmd), runOptions(cmd, nil), args...); err != nil {
			return err
		}
		for _, id := range args {
			fmt.Fprintf(cmd.OutOrStdout(), "Removed grid '%s'\n", id)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(gridsCmd)
	gridsCmd.AddCommand(gridsLsCmd, gridsInspectCmd, gridsRmCmd)
}
