package cli

import (
	"context"
	"io"
	"os"

	"github.com/aretw0/rewind"
	"github.com/aretw0/rewind/internal/presentation/tui"
	"golang.org/x/term"
)

// RunShell starts the interactive shell on stdin/stdout.
// Banner, prompt and styled rendering are enabled only when stdin is a terminal.
func RunShell(stack *Stack) error {
	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	return runShell(sigCtx, stack, os.Stdin, os.Stdout, interactive)
}

func runShell(ctx context.Context, stack *Stack, in io.Reader, out io.Writer, interactive bool) error {
	style := "notty"
	if interactive {
		tui.PrintBanner(out, rewind.Version)
		printSystemMessage(out, "Type 'help' for commands.")
		style = ""
	}

	shell := NewShell(stack.Desk, stack.Engine, out,
		WithPrompt(interactive),
		WithRenderer(tui.NewRenderer(style)),
	)

	// Stop blocking on input as soon as a signal arrives
	reader := NewInterruptibleReader(in, ctx.Done())
	err := shell.Run(ctx, reader)
	if interactive && isInterrupted(err) {
		printSystemMessage(out, "Interrupted.")
	}
	return handleExecutionError(err)
}
