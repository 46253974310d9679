package history

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/rewind/internal/logging"
	"github.com/aretw0/rewind/pkg/domain"
	"github.com/aretw0/rewind/pkg/ports"
)

const (
	stackUndo = "undo"
	stackRedo = "redo"
)

// Engine drives Record/Undo/Redo over two fixed pools of reusable snapshots.
//
// It is not safe for concurrent use: callers must serialize access.
// Subscribers and hooks must not call back into the Engine; such calls return domain.ErrReentrant.
type Engine struct {
	factory  ports.Factory
	capacity int

	undoPool  *pool
	redoPool  *pool
	undoStack stack
	redoStack stack

	recordEviction bool
	hooks          domain.LifecycleHooks
	logger         *slog.Logger

	subscribers []subscriber
	nextSubID   int
	busy        bool
}

type subscriber struct {
	id int
	fn func()
}

// Option configures the Engine.
type Option func(*Engine)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithRecordEviction caps the undo history at capacity on Record too.
// Without it, Record never evicts and only the pool bounds memory.
func WithRecordEviction(enabled bool) Option {
	return func(e *Engine) {
		e.recordEviction = enabled
	}
}

// Checkpoint describes one history entry by the identities it holds.
type Checkpoint struct {
	Changed []int `json:"changed"`
	Created []int `json:"created"`
}

// Stats is a point-in-time view of the engine bookkeeping.
type Stats struct {
	Capacity   int `json:"capacity"`
	UndoDepth  int `json:"undo_depth"`
	RedoDepth  int `json:"redo_depth"`
	UndoCursor int `json:"undo_cursor"`
	RedoCursor int `json:"redo_cursor"`
}

// New creates an engine whose pools hold capacity snapshots each,
// every snapshot pre-sized for undoablesCount entries.
func New(factory ports.Factory, capacity, undoablesCount int, opts ...Option) (*Engine, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidCapacity, capacity)
	}
	if undoablesCount < 0 {
		undoablesCount = 0
	}

	e := &Engine{
		factory:   factory,
		capacity:  capacity,
		undoPool:  newPool(factory, capacity, undoablesCount),
		redoPool:  newPool(factory, capacity, undoablesCount),
		undoStack: newStack(capacity),
		redoStack: newStack(capacity),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Record captures every dirty or just-created object into a recycled snapshot
// and pushes it onto the undo history. Captured flags are cleared, so a second
// Record without intervening changes captures nothing.
// On failure nothing is pushed and every flag is left as it was.
func (e *Engine) Record() error {
	if err := e.enter(); err != nil {
		return err
	}
	defer e.leave()

	snap, aliased := e.recycle(e.undoPool, &e.undoStack)

	all := e.factory.GetAll()
	for _, u := range all {
		var err error
		switch {
		case u.IsDirty():
			err = snap.Record(u)
		case u.IsJustCreated():
			err = snap.RecordCreated(u)
		}
		if err != nil {
			snap.Clear()
			return fmt.Errorf("record failed: %w", err)
		}
	}
	for _, u := range all {
		switch {
		case u.IsDirty():
			u.SetDirty(false)
		case u.IsJustCreated():
			u.SetJustCreated(false)
		}
	}

	e.undoStack.push(snap)
	if aliased {
		e.reportWrap(stackUndo, snap)
	}
	if e.recordEviction {
		e.evict(&e.undoStack, stackUndo)
	}

	e.logger.Debug("checkpoint recorded",
		"changed", len(snap.changed.entries),
		"created", len(snap.created.entries),
		"undo_depth", e.undoStack.len(),
	)
	if h := e.hooks.OnRecord; h != nil {
		h(e.event(domain.EventRecord, stackUndo, snap))
	}
	return nil
}

// PerformUndo reverts the most recent checkpoint. It is a no-op when there is nothing to undo.
func (e *Engine) PerformUndo() error {
	if err := e.enter(); err != nil {
		return err
	}
	defer e.leave()

	applied, ok := e.replay(&e.undoStack, e.redoPool, &e.redoStack, stackRedo)
	if !ok {
		return nil
	}
	if applied.err != nil {
		return fmt.Errorf("undo failed: %w", applied.err)
	}

	e.logger.Debug("undo performed",
		"restored", len(applied.snap.changed.entries),
		"deleted", len(applied.snap.created.entries),
		"undo_depth", e.undoStack.len(),
		"redo_depth", e.redoStack.len(),
	)
	if h := e.hooks.OnUndo; h != nil {
		h(e.event(domain.EventUndo, stackUndo, applied.snap))
	}
	e.notify()
	return nil
}

// PerformRedo re-applies the most recently undone checkpoint. It is a no-op when there is nothing to redo.
func (e *Engine) PerformRedo() error {
	if err := e.enter(); err != nil {
		return err
	}
	defer e.leave()

	applied, ok := e.replay(&e.redoStack, e.undoPool, &e.undoStack, stackUndo)
	if !ok {
		return nil
	}
	if applied.err != nil {
		return fmt.Errorf("redo failed: %w", applied.err)
	}

	e.logger.Debug("redo performed",
		"restored", len(applied.snap.changed.entries),
		"deleted", len(applied.snap.created.entries),
		"undo_depth", e.undoStack.len(),
		"redo_depth", e.redoStack.len(),
	)
	if h := e.hooks.OnRedo; h != nil {
		h(e.event(domain.EventRedo, stackRedo, applied.snap))
	}
	e.notify()
	return nil
}

type replayResult struct {
	snap *Snapshot
	err  error
}

// replay applies the top of from, after capturing its inverse into a recycled
// slot of toPool that is then pushed onto to. On failure nothing is pushed,
// nothing is reported and the entry stays on from.
func (e *Engine) replay(from *stack, toPool *pool, to *stack, toName string) (replayResult, bool) {
	snap, ok := from.peek()
	if !ok {
		return replayResult{}, false
	}

	inverse, aliased := e.recycle(toPool, to)
	if err := captureInverse(e.factory, snap, inverse); err != nil {
		inverse.Clear()
		return replayResult{err: err}, true
	}
	if err := snap.Load(); err != nil {
		inverse.Clear()
		return replayResult{err: err}, true
	}

	from.pop()
	to.push(inverse)
	if aliased {
		e.reportWrap(toName, inverse)
	}
	e.evict(to, toName)
	return replayResult{snap: snap}, true
}

// recycle takes the next slot of p and tells whether it was still referenced by s.
func (e *Engine) recycle(p *pool, s *stack) (*Snapshot, bool) {
	snap := p.next()
	return snap, s.contains(snap)
}

// reportWrap is called once an operation that overwrote a referenced slot has committed.
func (e *Engine) reportWrap(name string, snap *Snapshot) {
	e.logger.Warn("snapshot pool exhausted, overwriting an entry still in history",
		"stack", name,
		"capacity", e.capacity,
	)
	if h := e.hooks.OnPoolWrap; h != nil {
		h(e.event(domain.EventPoolWrap, name, snap))
	}
}

func (e *Engine) evict(s *stack, name string) {
	evicted := s.evictOldest(e.capacity)
	if evicted == nil {
		return
	}
	e.logger.Debug("history entry evicted", "stack", name, "capacity", e.capacity)
	if h := e.hooks.OnEvict; h != nil {
		h(e.event(domain.EventEvict, name, evicted))
	}
}

// Subscribe registers fn to be called once after every successful Undo or Redo.
// Subscribers run synchronously in registration order. The returned function unregisters fn.
func (e *Engine) Subscribe(fn func()) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	e.nextSubID++
	id := e.nextSubID
	e.subscribers = append(e.subscribers, subscriber{id: id, fn: fn})

	return func() {
		for i, s := range e.subscribers {
			if s.id == id {
				e.subscribers = append(e.subscribers[:i], e.subscribers[i+1:]...)
				return
			}
		}
	}
}

func (e *Engine) notify() {
	subs := make([]subscriber, len(e.subscribers))
	copy(subs, e.subscribers)
	for _, s := range subs {
		s.fn()
	}
}

// CanUndo returns true if undo is available.
func (e *Engine) CanUndo() bool { return e.undoStack.len() > 0 }

// CanRedo returns true if redo is available.
func (e *Engine) CanRedo() bool { return e.redoStack.len() > 0 }

// UndoCount returns the number of undo entries available.
func (e *Engine) UndoCount() int { return e.undoStack.len() }

// RedoCount returns the number of redo entries available.
func (e *Engine) RedoCount() int { return e.redoStack.len() }

// Capacity returns the pool size and the history bound.
func (e *Engine) Capacity() int { return e.capacity }

// Stats returns the current bookkeeping counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Capacity:   e.capacity,
		UndoDepth:  e.undoStack.len(),
		RedoDepth:  e.redoStack.len(),
		UndoCursor: e.undoPool.cursor,
		RedoCursor: e.redoPool.cursor,
	}
}

// History returns the undo and redo entries, oldest first.
func (e *Engine) History() (undo, redo []Checkpoint) {
	return checkpoints(&e.undoStack), checkpoints(&e.redoStack)
}

func checkpoints(s *stack) []Checkpoint {
	out := make([]Checkpoint, len(s.items))
	for i, snap := range s.items {
		out[i] = Checkpoint{Changed: snap.Changed(), Created: snap.Created()}
	}
	return out
}

// Reset drops both histories and rewinds the pools. Objects are not touched.
func (e *Engine) Reset() error {
	if err := e.enter(); err != nil {
		return err
	}
	defer e.leave()

	e.undoStack.reset()
	e.redoStack.reset()
	e.undoPool.reset()
	e.redoPool.reset()
	return nil
}

func (e *Engine) enter() error {
	if e.busy {
		return domain.ErrReentrant
	}
	e.busy = true
	return nil
}

func (e *Engine) leave() { e.busy = false }

func (e *Engine) event(t domain.EventType, stackName string, snap *Snapshot) *domain.HistoryEvent {
	return &domain.HistoryEvent{
		Timestamp: time.Now(),
		Type:      t,
		Stack:     stackName,
		Changed:   snap.Changed(),
		Created:   snap.Created(),
		UndoDepth: e.undoStack.len(),
		RedoDepth: e.redoStack.len(),
	}
}
