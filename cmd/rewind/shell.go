package main

import (
	"github.com/aretw0/rewind/internal/cli"
	"github.com/spf13/cobra"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive book shell",
	Long:  `Opens a REPL over the configured library. Type 'help' inside the shell for commands.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		stack, err := loadStack(cmd)
		if err != nil {
			return err
		}
		defer stack.Close()

		return cli.RunShell(stack)
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}
