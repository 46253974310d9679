/*
Package rewind is an in-memory undo/redo engine for objects owned by a factory.

Objects opt in by implementing domain.Undoable: they can save their persisted fields
as an immutable domain.State and load them back, and they carry two transient flags,
dirty and just-created. A checkpoint captures the prior state of every dirty object and
the state of every just-created one. Undo restores the former and deletes the latter;
Redo does the reverse.

# Concept

Snapshots are never allocated after construction. The engine owns two fixed pools of
reusable snapshots, one feeding the undo history and one feeding the redo history,
indexed by wrapping cursors. The histories are bounded by the same capacity: pushing
past it on Undo or Redo evicts the oldest entry. Recording more checkpoints than the
pool holds recycles the oldest slot even if the history still points at it.

The engine is synchronous and single-threaded. Callers that share it between
goroutines must serialize access, as the HTTP adapter does.

# Usage

	package main

	import (
		"log"

		"github.com/aretw0/rewind"
		"github.com/aretw0/rewind/pkg/adapters/memory"
		"github.com/aretw0/rewind/pkg/books"
	)

	func main() {
		lib := memory.NewLibrary(map[string]string{"poem": "Roses are red"})
		factory := books.NewFactory(lib)

		eng, err := rewind.New(factory, rewind.WithCapacity(10))
		if err != nil {
			log.Fatal(err)
		}

		poem, _ := factory.Print("poem")
		_ = eng.Record() // checkpoint: poem was created

		poem.SetDirty(true)
		_ = eng.Record() // checkpoint: poem text before the edit
		poem.Text += ", violets are blue"

		_ = eng.PerformUndo() // poem.Text == "Roses are red"
	}

# Adapters

Library backends for the books domain live under pkg/adapters (memory, file, redis).
pkg/adapters/http exposes a desk over REST, and pkg/observability turns lifecycle
hooks into logs and Prometheus metrics.
*/
package rewind
