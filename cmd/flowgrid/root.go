package main

import (
	"fmt"
	"os"

	"github.com/aretw0/flowgrid/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "flowgrid",
	Short: "flowgrid is a headless engine for interactive record tables",
	Long: `flowgrid drives the record table of a workflow screen: selection, inline
edits, search and sort over a record collection described by a grid definition.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("dir", ".", "Directory holding object metadata documents")
	flags.StringP("file", "f", "", "Grid definition file (YAML or JSON)")
	flags.Bool("debug", false, "Log every engine hook at debug level")
	flags.String("log-level", "", "Log level: debug, info, warn or error")
	flags.String("location", "", "IANA time zone used to format date-times")
	flags.String("store-dir", "", "Directory for persisted grid sessions")
	flags.String("redis-url", "", "Persist grid sessions in Redis (redis://host:port/db)")
	flags.Duration("ttl", 0, "Expiry of grid sessions stored in Redis (0 keeps them)")
	flags.StringSlice("mask-field", nil, "Regular expression of record fields masked in stored sessions (repeatable)")
}

// runOptions reads the persistent flags. A positional argument stands in
// for --file when the flag is not set.
func runOptions(cmd *cobra.Command, args []string) cli.RunOptions {
	flags := cmd.Flags()
	opts := cli.RunOptions{}
	opts.RepoPath, _ = flags.GetString("dir")
	opts.Definition, _ = flags.GetString("file")
	opts.Debug, _ = flags.GetBool("debug")
	opts.LogLevel, _ = flags.GetString("log-level")
	opts.Location, _ = flags.GetString("location")
	opts.StoreDir, _ = flags.GetString("store-dir")
	opts.RedisURL, _ = flags.GetString("redis-url")
	opts.TTL, _ = flags.GetDuration("ttl")
	opts.MaskFields, _ = flags.GetStringSlice("mask-field")
	opts.EncryptionKey, opts.FallbackKeys = cli.KeysFromEnv()

	if !flags.Changed("file") && len(args) > 0 {
		opts.Definition = args[0]
	}
	return opts
}
