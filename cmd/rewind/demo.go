package main

import (
	"log/slog"

	"github.com/aretw0/rewind/internal/cli"
	"github.com/aretw0/rewind/internal/logging"
	"github.com/spf13/cobra"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the poem walkthrough",
	Long:  `Prints a poem, edits and burns it, undoing and redoing every step on an in-memory library.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		debug, _ := cmd.Flags().GetBool("debug")
		logger := logging.NewNop()
		if debug {
			logger = logging.New(slog.LevelDebug)
		}
		return cli.RunDemo(cmd.OutOrStdout(), logger)
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
}
