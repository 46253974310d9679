package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage the configured library of sources",
}

var libraryLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List library sources",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stack, err := loadStack(cmd)
		if err != nil {
			return err
		}
		defer stack.Close()

		sources, err := stack.Library.Sources(cmd.Context())
		if err != nil {
			return err
		}
		for _, s := range sources {
			fmt.Fprintln(cmd.OutOrStdout(), s)
		}
		return nil
	},
}

var libraryGetCmd = &cobra.Command{
	Use:   "get <source>",
	Short: "Print the text stored under a source",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stack, err := loadStack(cmd)
		if err != nil {
			return err
		}
		defer stack.Close()

		text, err := stack.Library.Lookup(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}

var libraryPutCmd = &cobra.Command{
	Use:   "put <source> [text...]",
	Short: "Store text under a source (reads stdin when no text is given)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stack, err := loadStack(cmd)
		if err != nil {
			return err
		}
		defer stack.Close()

		text := strings.Join(args[1:], " ")
		if len(args) == 1 {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			text = strings.TrimRight(string(data), "\n")
		}

		if err := stack.Library.Put(cmd.Context(), args[0], text); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), ">>> Stored '%s' (%d bytes).\n", args[0], len(text))
		return nil
	},
}

func init() {
	libraryCmd.AddCommand(libraryLsCmd, libraryGetCmd, libraryPutCmd)
	rootCmd.AddCommand(libraryCmd)
}
