package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/aretw0/rewind/internal/config"
	"github.com/aretw0/rewind/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStack(t *testing.T) *Stack {
	t.Helper()
	cfg := config.Default()
	cfg.Capacity = 10
	cfg.Metrics.Enabled = false

	stack, err := NewStack(cfg, BuildOptions{Logger: logging.NewNop()})
	require.NoError(t, err)
	t.Cleanup(func() { stack.Close() })
	return stack
}

func runScript(t *testing.T, stack *Stack, script ...string) string {
	t.Helper()
	var out bytes.Buffer
	err := runShell(context.Background(), stack, strings.NewReader(strings.Join(script, "\n")+"\n"), &out, false)
	require.NoError(t, err)
	return out.String()
}

func TestShell_PoemSession(t *testing.T) {
	stack := newTestStack(t)

	out := runScript(t, stack,
		"print poem",
		"append 0 ..I hate coding",
		"undo",
		"ls",
		"redo",
		"show 0",
		"history",
		"quit",
		"print tale", // never reached
	)

	assert.Contains(t, out, ">>> Printed book 0 from 'poem'.")
	assert.Contains(t, out, ">>> Undone (undo 1, redo 1).")
	assert.Contains(t, out, "Roses are red, violets are blue..\n")
	assert.Contains(t, out, ">>> Redone (undo 2, redo 0).")
	assert.Contains(t, out, "Roses are red, violets are blue....I hate coding")
	assert.Contains(t, out, "undo (2):\n  ~0\n  +0\n")

	assert.Len(t, stack.Factory.Books(), 1, "commands after quit are ignored")
}

func TestShell_BurnUndo(t *testing.T) {
	stack := newTestStack(t)

	runScript(t, stack, "print tale", "edit 0 The   end.", "burn 0", "undo")

	b, ok := stack.Factory.Book(0)
	require.True(t, ok)
	assert.Equal(t, "The   end.", b.Text, "edit keeps the text spacing")
}

func TestShell_Errors(t *testing.T) {
	stack := newTestStack(t)

	out := runScript(t, stack,
		"fly",
		"print",
		"print missing",
		"edit x hello",
		"burn 7",
		"show 3",
		"undo",
		"redo",
	)

	assert.Contains(t, out, `error: unknown command "fly"`)
	assert.Contains(t, out, "error: usage: print <source>")
	assert.Contains(t, out, "source not found")
	assert.Contains(t, out, `error: invalid book id "x"`)
	assert.Contains(t, out, "error: book 7: object not found")
	assert.Contains(t, out, "error: book 3 not found")
	assert.Contains(t, out, ">>> Nothing to undo.")
	assert.Contains(t, out, ">>> Nothing to redo.")
}

func TestShell_Extras(t *testing.T) {
	stack := newTestStack(t)

	out := runScript(t, stack, "help", "sources", "ls", "record", "history mermaid")

	assert.Contains(t, out, "Commands:")
	assert.Contains(t, out, "poem\ntale\n")
	assert.Contains(t, out, ">>> No books printed.")
	assert.Contains(t, out, ">>> Recorded (undo 1, redo 0).")
	assert.Contains(t, out, "graph LR")
	assert.Contains(t, out, `u0[/"empty"/]`)
}

func TestShell_CancelledContext(t *testing.T) {
	stack := newTestStack(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := runShell(ctx, stack, strings.NewReader("print poem\n"), &out, false)
	assert.NoError(t, err, "interruptions exit cleanly")
	assert.Empty(t, stack.Factory.Books())
}

func TestRestOf(t *testing.T) {
	assert.Equal(t, "..I hate coding", restOf("append 0 ..I hate coding", 2))
	assert.Equal(t, "a  b", restOf("  edit\t1   a  b", 2))
	assert.Equal(t, "", restOf("edit 1", 2))
}
