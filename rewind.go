package rewind

import (
	"io"
	"log/slog"

	"github.com/aretw0/rewind/internal/history"
	"github.com/aretw0/rewind/pkg/domain"
	"github.com/aretw0/rewind/pkg/ports"
)

// DefaultCapacity is the number of snapshots per pool when WithCapacity is not given.
const DefaultCapacity = 100

// Checkpoint describes one history entry by the identities it holds.
type Checkpoint = history.Checkpoint

// Stats is a point-in-time view of the history bookkeeping.
type Stats = history.Stats

// Engine is the high-level entry point for the Rewind library.
// It wraps the internal history engine and provides a simplified API for consumers.
type Engine struct {
	core    *history.Engine
	factory ports.Factory

	capacity       int
	undoablesCount int
	recordEviction bool
	hooks          domain.LifecycleHooks
	logger         *slog.Logger
	onPerformed    []func()
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithCapacity sets the number of pooled snapshots per direction,
// which is also the bound on the undo and redo histories.
func WithCapacity(n int) Option {
	return func(e *Engine) {
		e.capacity = n
	}
}

// WithUndoablesCount pre-sizes every snapshot for n objects (default: the capacity).
func WithUndoablesCount(n int) Option {
	return func(e *Engine) {
		e.undoablesCount = n
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithRecordEviction caps the undo history at the capacity on Record as well as on Redo.
func WithRecordEviction(enabled bool) Option {
	return func(e *Engine) {
		e.recordEviction = enabled
	}
}

// OnUndoRedoPerformed registers fn to be notified after every successful Undo or Redo.
func OnUndoRedoPerformed(fn func()) Option {
	return func(e *Engine) {
		e.onPerformed = append(e.onPerformed, fn)
	}
}

// New initializes a new Rewind Engine over factory.
func New(factory ports.Factory, opts ...Option) (*Engine, error) {
	eng := &Engine{
		factory:        factory,
		capacity:       DefaultCapacity,
		undoablesCount: -1,
	}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.undoablesCount < 0 {
		eng.undoablesCount = eng.capacity
	}
	// Ensure logger is initialized so the core never writes to a nil handler.
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	core, err := history.New(factory, eng.capacity, eng.undoablesCount,
		history.WithLogger(eng.logger),
		history.WithLifecycleHooks(eng.hooks),
		history.WithRecordEviction(eng.recordEviction),
	)
	if err != nil {
		return nil, err
	}
	eng.core = core

	for _, fn := range eng.onPerformed {
		core.Subscribe(fn)
	}
	return eng, nil
}

// Record captures every dirty or just-created object as a new undo checkpoint.
func (e *Engine) Record() error { return e.core.Record() }

// PerformUndo reverts the most recent checkpoint.
func (e *Engine) PerformUndo() error { return e.core.PerformUndo() }

// PerformRedo re-applies the most recently undone checkpoint.
func (e *Engine) PerformRedo() error { return e.core.PerformRedo() }

// Subscribe registers fn to run after every successful Undo or Redo.
// Call the returned function to unregister it.
func (e *Engine) Subscribe(fn func()) (cancel func()) { return e.core.Subscribe(fn) }

// CanUndo returns true if undo is available.
func (e *Engine) CanUndo() bool { return e.core.CanUndo() }

// CanRedo returns true if redo is available.
func (e *Engine) CanRedo() bool { return e.core.CanRedo() }

// UndoCount returns the number of undo entries available.
func (e *Engine) UndoCount() int { return e.core.UndoCount() }

// RedoCount returns the number of redo entries available.
func (e *Engine) RedoCount() int { return e.core.RedoCount() }

// Capacity returns the pool size and history bound.
func (e *Engine) Capacity() int { return e.core.Capacity() }

// Stats returns the current bookkeeping counters.
func (e *Engine) Stats() Stats { return e.core.Stats() }

// History returns the undo and redo entries, oldest first.
func (e *Engine) History() (undo, redo []Checkpoint) { return e.core.History() }

// Reset drops both histories. Objects held by the factory are not touched.
func (e *Engine) Reset() error { return e.core.Reset() }

// Factory returns the factory the engine operates on.
func (e *Engine) Factory() ports.Factory { return e.factory }

// Logger returns the engine logger.
func (e *Engine) Logger() *slog.Logger { return e.logger }
