package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/rewind"
	"github.com/aretw0/rewind/pkg/adapters/memory"
	"github.com/aretw0/rewind/pkg/books"
)

// RunDemo walks a poem through print, edit and burn, undoing and redoing each step.
// It uses its own memory library so the output never depends on configuration.
func RunDemo(out io.Writer, logger *slog.Logger) error {
	factory := books.NewFactory(memory.NewLibrary(SampleTexts), books.WithLogger(logger))

	notifications := 0
	eng, err := rewind.New(factory,
		rewind.WithCapacity(10),
		rewind.WithLogger(logger),
		rewind.OnUndoRedoPerformed(func() { notifications++ }),
	)
	if err != nil {
		return err
	}

	step := func(format string, args ...any) {
		printSystemMessage(out, format, args...)
	}
	show := func(id int) {
		if b, ok := factory.Book(id); ok {
			fmt.Fprintf(out, "    book %d: %q\n", id, b.Text)
			return
		}
		fmt.Fprintf(out, "    book %d: (not printed)\n", id)
	}

	poem, err := factory.Print("poem")
	if err != nil {
		return err
	}
	id := poem.ID()
	if err := eng.Record(); err != nil {
		return err
	}
	step("Printed the poem and recorded it.")
	show(id)

	if err := eng.PerformUndo(); err != nil {
		return err
	}
	step("Undo: the poem was never printed.")
	show(id)

	if err := eng.PerformRedo(); err != nil {
		return err
	}
	step("Redo: the poem is back.")
	show(id)

	poem, _ = factory.Book(id)
	poem.SetDirty(true)
	if err := eng.Record(); err != nil {
		return err
	}
	poem.Text += "..I hate coding"
	step("Edited the poem.")
	show(id)

	if err := eng.PerformUndo(); err != nil {
		return err
	}
	step("Undo: the edit is gone.")
	show(id)

	if err := eng.PerformRedo(); err != nil {
		return err
	}
	step("Redo: the edit is back.")
	show(id)

	poem.SetDirty(true)
	if err := eng.Record(); err != nil {
		return err
	}
	factory.Burn(poem)
	step("Burned the poem.")
	show(id)

	if err := eng.PerformUndo(); err != nil {
		return err
	}
	step("Undo: the poem rose from its ashes.")
	show(id)

	step("%d undo/redo notifications.", notifications)
	return nil
}
