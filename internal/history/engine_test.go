package history_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/aretw0/rewind/internal/history"
	"github.com/aretw0/rewind/internal/logging"
	"github.com/aretw0/rewind/pkg/adapters/memory"
	"github.com/aretw0/rewind/pkg/books"
	"github.com/aretw0/rewind/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	poemText = "Roses are red, violets are blue.."
	taleText = "Once upon a time..."
)

func newLibrary() *memory.Library {
	return memory.NewLibrary(map[string]string{
		"poem": poemText,
		"tale": taleText,
	})
}

func setup(t *testing.T, capacity int, opts ...history.Option) (*books.Factory, *books.Desk, *history.Engine) {
	t.Helper()
	factory := books.NewFactory(newLibrary())
	eng, err := history.New(factory, capacity, capacity, opts...)
	require.NoError(t, err)
	return factory, books.NewDesk(factory, eng), eng
}

func text(t *testing.T, f *books.Factory, id int) string {
	t.Helper()
	b, ok := f.Book(id)
	require.True(t, ok, "book %d should exist", id)
	return b.Text
}

func TestNew_InvalidCapacity(t *testing.T) {
	factory := books.NewFactory(newLibrary())

	for _, capacity := range []int{0, -1} {
		eng, err := history.New(factory, capacity, 1)
		assert.ErrorIs(t, err, domain.ErrInvalidCapacity)
		assert.Nil(t, eng)
	}
}

func TestEngine_EmptyHistoryIsNoOp(t *testing.T) {
	_, _, eng := setup(t, 3)

	calls := 0
	eng.Subscribe(func() { calls++ })

	require.NoError(t, eng.PerformUndo())
	require.NoError(t, eng.PerformRedo())

	assert.Equal(t, 0, calls, "no notification without a history entry")
	assert.False(t, eng.CanUndo())
	assert.False(t, eng.CanRedo())
}

func TestEngine_RecordClearsFlags(t *testing.T) {
	factory, _, eng := setup(t, 3)

	b, err := factory.Print("poem")
	require.NoError(t, err)
	require.True(t, b.IsJustCreated())

	require.NoError(t, eng.Record())
	assert.False(t, b.IsJustCreated())

	b.SetDirty(true)
	require.NoError(t, eng.Record())
	assert.False(t, b.IsDirty())

	// Nothing flagged: the checkpoint is empty but still pushed.
	require.NoError(t, eng.Record())

	undo, redo := eng.History()
	require.Len(t, undo, 3)
	assert.Empty(t, redo)
	assert.Equal(t, []int{b.ID()}, undo[0].Created)
	assert.Equal(t, []int{b.ID()}, undo[1].Changed)
	assert.Empty(t, undo[2].Changed)
	assert.Empty(t, undo[2].Created)
}

func TestEngine_UndoEmptyCheckpoint(t *testing.T) {
	_, _, eng := setup(t, 3)
	require.NoError(t, eng.Record())

	calls := 0
	eng.Subscribe(func() { calls++ })

	require.NoError(t, eng.PerformUndo())
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, eng.UndoCount())
	assert.Equal(t, 1, eng.RedoCount())
}

func TestEngine_UndoRestoresAndRemoves(t *testing.T) {
	factory, desk, eng := setup(t, 10)

	poem, err := desk.Print("poem")
	require.NoError(t, err)
	tale, err := desk.Print("tale")
	require.NoError(t, err)
	require.NoError(t, desk.Edit(poem.ID(), "changed"))

	require.Equal(t, 3, eng.UndoCount())

	require.NoError(t, eng.PerformUndo())
	assert.Equal(t, poemText, text(t, factory, poem.ID()))

	require.NoError(t, eng.PerformUndo())
	assert.False(t, factory.HasKey(tale.ID()), "undoing a print removes the book")

	require.NoError(t, eng.PerformUndo())
	assert.False(t, factory.HasKey(poem.ID()))
	assert.False(t, eng.CanUndo())
	assert.Equal(t, 3, eng.RedoCount())

	// Redo walks the same path forward.
	require.NoError(t, eng.PerformRedo())
	assert.Equal(t, poemText, text(t, factory, poem.ID()))

	require.NoError(t, eng.PerformRedo())
	assert.Equal(t, taleText, text(t, factory, tale.ID()))

	require.NoError(t, eng.PerformRedo())
	assert.Equal(t, "changed", text(t, factory, poem.ID()))
	assert.False(t, eng.CanRedo())
	assert.Equal(t, 3, eng.UndoCount())
}

func TestEngine_BurnAndResurrect(t *testing.T) {
	factory, desk, eng := setup(t, 10)

	poem, err := desk.Print("poem")
	require.NoError(t, err)
	id := poem.ID()

	require.NoError(t, desk.Burn(id))
	require.False(t, factory.HasKey(id))

	require.NoError(t, eng.PerformUndo())
	revived, ok := factory.Book(id)
	require.True(t, ok, "undo brings the burned book back")
	assert.Equal(t, poemText, revived.Text)
	assert.False(t, revived.IsJustCreated())

	require.NoError(t, eng.PerformRedo())
	assert.False(t, factory.HasKey(id), "redo burns it again")

	require.NoError(t, eng.PerformUndo())
	assert.True(t, factory.HasKey(id))

	// New prints never reuse the resurrected identity.
	next, err := desk.Print("tale")
	require.NoError(t, err)
	assert.NotEqual(t, id, next.ID())
}

func TestEngine_RecordAfterUndoKeepsRedo(t *testing.T) {
	factory, desk, eng := setup(t, 10)

	poem, err := desk.Print("poem")
	require.NoError(t, err)
	require.NoError(t, desk.Edit(poem.ID(), "v1"))
	require.NoError(t, eng.PerformUndo())
	require.Equal(t, 1, eng.RedoCount())

	require.NoError(t, desk.Edit(poem.ID(), "v2"))
	assert.Equal(t, 1, eng.RedoCount(), "recording does not discard redo history")

	require.NoError(t, eng.PerformRedo())
	assert.Equal(t, "v1", text(t, factory, poem.ID()))
}

func TestEngine_PoemScenario(t *testing.T) {
	factory := books.NewFactory(newLibrary())
	eng, err := history.New(factory, 10, 10)
	require.NoError(t, err)

	calls := 0
	eng.Subscribe(func() { calls++ })

	poem, err := factory.Print("poem")
	require.NoError(t, err)
	id := poem.ID()
	require.NoError(t, eng.Record())

	undo, _ := eng.History()
	require.Len(t, undo, 1)
	assert.Equal(t, []int{id}, undo[0].Created)

	require.NoError(t, eng.PerformUndo())
	assert.False(t, factory.HasKey(id))
	assert.Equal(t, 1, calls)

	require.NoError(t, eng.PerformRedo())
	assert.Equal(t, poemText, text(t, factory, id))
	assert.Equal(t, 2, calls)

	poem, _ = factory.Book(id)
	poem.SetDirty(true)
	require.NoError(t, eng.Record())
	poem.Text = poemText + "..I hate coding"

	undo, _ = eng.History()
	assert.Equal(t, []int{id}, undo[len(undo)-1].Changed)

	require.NoError(t, eng.PerformUndo())
	assert.Equal(t, poemText, text(t, factory, id))

	require.NoError(t, eng.PerformRedo())
	assert.Equal(t, "Roses are red, violets are blue....I hate coding", text(t, factory, id))
	assert.Equal(t, 4, calls)

	poem, _ = factory.Book(id)
	poem.SetDirty(true)
	require.NoError(t, eng.Record())
	factory.Burn(poem)

	require.NoError(t, eng.PerformUndo())
	assert.Equal(t, "Roses are red, violets are blue....I hate coding", text(t, factory, id))
}

func TestEngine_RedoHistoryEvictsOldest(t *testing.T) {
	var evicted []*domain.HistoryEvent
	factory, desk, eng := setup(t, 2, history.WithLifecycleHooks(domain.LifecycleHooks{
		OnEvict: func(e *domain.HistoryEvent) { evicted = append(evicted, e) },
	}))

	poem, err := desk.Print("poem")
	require.NoError(t, err)
	id := poem.ID()
	require.NoError(t, desk.Edit(id, "v1"))
	require.NoError(t, desk.Edit(id, "v2"))
	require.Equal(t, 3, eng.UndoCount(), "record never evicts by default")

	for range 3 {
		require.NoError(t, eng.PerformUndo())
	}

	assert.Equal(t, 0, eng.UndoCount())
	assert.Equal(t, 2, eng.RedoCount())
	require.Len(t, evicted, 1)
	assert.Equal(t, "redo", evicted[0].Stack)

	// The third undo replayed a recycled slot, so the book survived with v1.
	assert.Equal(t, "v1", text(t, factory, id))

	// The newest redo entry survived eviction.
	require.NoError(t, eng.PerformRedo())
	assert.Equal(t, poemText, text(t, factory, id))
	require.NoError(t, eng.PerformRedo())
	assert.Equal(t, "v1", text(t, factory, id))
	assert.False(t, eng.CanRedo())
}

func TestEngine_UndoHistoryEvictsOnRedo(t *testing.T) {
	var evicted []string
	factory, desk, eng := setup(t, 2, history.WithLifecycleHooks(domain.LifecycleHooks{
		OnEvict: func(e *domain.HistoryEvent) { evicted = append(evicted, e.Stack) },
	}))

	poem, err := desk.Print("poem")
	require.NoError(t, err)
	require.NoError(t, desk.Edit(poem.ID(), "v1"))
	require.NoError(t, desk.Edit(poem.ID(), "v2"))

	require.NoError(t, eng.PerformUndo())
	assert.Equal(t, "v1", text(t, factory, poem.ID()))

	require.NoError(t, eng.PerformRedo())
	assert.Equal(t, "v2", text(t, factory, poem.ID()))
	assert.Equal(t, 2, eng.UndoCount())
	assert.Equal(t, []string{"undo"}, evicted)
}

func TestEngine_RecordEviction(t *testing.T) {
	_, desk, eng := setup(t, 2, history.WithRecordEviction(true))

	poem, err := desk.Print("poem")
	require.NoError(t, err)
	for _, v := range []string{"v1", "v2", "v3"} {
		require.NoError(t, desk.Edit(poem.ID(), v))
	}

	assert.Equal(t, 2, eng.UndoCount())
}

func TestEngine_PoolWrapAliasesHistory(t *testing.T) {
	var wraps []*domain.HistoryEvent
	var logs bytes.Buffer
	_, desk, eng := setup(t, 2,
		history.WithLogger(logging.NewWithWriter(&logs, slog.LevelWarn)),
		history.WithLifecycleHooks(domain.LifecycleHooks{
			OnPoolWrap: func(e *domain.HistoryEvent) { wraps = append(wraps, e) },
		}),
	)

	poem, err := desk.Print("poem")
	require.NoError(t, err)
	require.NoError(t, desk.Edit(poem.ID(), "v1"))
	require.Empty(t, wraps)

	require.NoError(t, desk.Edit(poem.ID(), "v2"))

	require.Len(t, wraps, 1)
	assert.Equal(t, "undo", wraps[0].Stack)
	assert.Contains(t, logs.String(), "snapshot pool exhausted")

	// The oldest entry shares its buffer with the newest one.
	undo, _ := eng.History()
	require.Len(t, undo, 3)
	assert.Equal(t, undo[2], undo[0])
	assert.Empty(t, undo[0].Created, "the original creation checkpoint was overwritten")
}

func TestEngine_DuplicateIdentity(t *testing.T) {
	factory := &twinFactory{Factory: books.NewFactory(newLibrary())}
	eng, err := history.New(factory, 3, 3)
	require.NoError(t, err)

	b, err := factory.Print("poem")
	require.NoError(t, err)
	factory.twin = &books.Book{}
	require.NoError(t, factory.twin.LoadState(books.Content{BookID: b.ID(), SourcePath: "poem"}))
	b.SetDirty(true)
	factory.twin.SetDirty(true)

	err = eng.Record()
	assert.ErrorIs(t, err, domain.ErrDuplicateState)
	assert.Equal(t, 0, eng.UndoCount(), "a failed record pushes nothing")
	assert.True(t, b.IsDirty(), "flags survive a failed record")
	assert.True(t, b.IsJustCreated())

	// Once the clash is gone the pending change is still recorded.
	factory.twin = nil
	require.NoError(t, eng.Record())
	undo, _ := eng.History()
	require.Len(t, undo, 1)
	assert.Equal(t, []int{b.ID()}, undo[0].Changed)
	assert.False(t, b.IsDirty())
}

// twinFactory reports an extra object sharing an identity with a real one.
type twinFactory struct {
	*books.Factory
	twin *books.Book
}

func (f *twinFactory) GetAll() []domain.Undoable {
	all := f.Factory.GetAll()
	if f.twin != nil {
		all = append(all, f.twin)
	}
	return all
}

func TestEngine_Reentrancy(t *testing.T) {
	_, desk, eng := setup(t, 3)
	_, err := desk.Print("poem")
	require.NoError(t, err)

	var inner error
	eng.Subscribe(func() { inner = eng.Record() })

	require.NoError(t, eng.PerformUndo())
	assert.ErrorIs(t, inner, domain.ErrReentrant)

	// The guard is released once the outer call returns.
	assert.NoError(t, eng.Record())
}

func TestEngine_SubscribeOrderAndCancel(t *testing.T) {
	_, desk, eng := setup(t, 3)
	_, err := desk.Print("poem")
	require.NoError(t, err)

	var order []string
	eng.Subscribe(func() { order = append(order, "first") })
	cancel := eng.Subscribe(func() { order = append(order, "second") })
	eng.Subscribe(func() { order = append(order, "third") })
	eng.Subscribe(nil)

	require.NoError(t, eng.PerformUndo())
	assert.Equal(t, []string{"first", "second", "third"}, order)

	cancel()
	cancel() // idempotent
	order = nil

	require.NoError(t, eng.PerformRedo())
	assert.Equal(t, []string{"first", "third"}, order)
}

func TestEngine_Hooks(t *testing.T) {
	var events []*domain.HistoryEvent
	record := func(e *domain.HistoryEvent) { events = append(events, e) }

	_, desk, eng := setup(t, 3, history.WithLifecycleHooks(domain.LifecycleHooks{
		OnRecord: record,
		OnUndo:   record,
		OnRedo:   record,
	}))

	poem, err := desk.Print("poem")
	require.NoError(t, err)
	require.NoError(t, eng.PerformUndo())
	require.NoError(t, eng.PerformRedo())

	require.Len(t, events, 3)

	assert.Equal(t, domain.EventRecord, events[0].Type)
	assert.Equal(t, []int{poem.ID()}, events[0].Created)
	assert.Equal(t, 1, events[0].UndoDepth)

	assert.Equal(t, domain.EventUndo, events[1].Type)
	assert.Equal(t, 0, events[1].UndoDepth)
	assert.Equal(t, 1, events[1].RedoDepth)

	assert.Equal(t, domain.EventRedo, events[2].Type)
	assert.Equal(t, 1, events[2].UndoDepth)
	assert.Equal(t, 0, events[2].RedoDepth)
	assert.False(t, events[2].Timestamp.IsZero())
}

func TestEngine_LoadFailureKeepsEntry(t *testing.T) {
	lib := newLibrary()
	factory := books.NewFactory(&flakyLibrary{Library: lib})
	eng, err := history.New(factory, 3, 3)
	require.NoError(t, err)
	desk := books.NewDesk(factory, eng)

	poem, err := desk.Print("poem")
	require.NoError(t, err)
	require.NoError(t, desk.Burn(poem.ID()))

	calls := 0
	eng.Subscribe(func() { calls++ })

	// Resurrection needs the library, which is now failing.
	factory.Library().(*flakyLibrary).fail = true
	err = eng.PerformUndo()
	assert.ErrorIs(t, err, errLibraryDown)
	assert.Equal(t, 2, eng.UndoCount())
	assert.Equal(t, 0, eng.RedoCount())
	assert.Equal(t, 0, calls)

	factory.Library().(*flakyLibrary).fail = false
	require.NoError(t, eng.PerformUndo())
	assert.Equal(t, poemText, text(t, factory, poem.ID()))
	assert.Equal(t, 1, calls)
}

func TestEngine_FailedUndoReportsNoPoolWrap(t *testing.T) {
	var wraps []string
	lib := &flakyLibrary{Library: newLibrary()}
	factory := books.NewFactory(lib)
	eng, err := history.New(factory, 1, 1, history.WithLifecycleHooks(domain.LifecycleHooks{
		OnPoolWrap: func(e *domain.HistoryEvent) { wraps = append(wraps, e.Stack) },
	}))
	require.NoError(t, err)
	desk := books.NewDesk(factory, eng)

	_, err = desk.Print("poem")
	require.NoError(t, err)
	require.NoError(t, eng.PerformUndo())
	require.Equal(t, 1, eng.RedoCount())

	tale, err := desk.Print("tale")
	require.NoError(t, err)
	require.NoError(t, desk.Burn(tale.ID()))
	require.Equal(t, []string{"undo"}, wraps, "burning reuses the only undo slot")

	// Resurrecting the tale needs the library, and the only redo slot is still in use.
	lib.fail = true
	err = eng.PerformUndo()
	assert.ErrorIs(t, err, errLibraryDown)
	assert.Equal(t, []string{"undo"}, wraps, "a failed undo reports nothing")
	assert.Equal(t, 2, eng.UndoCount())

	lib.fail = false
	require.NoError(t, eng.PerformUndo())
	assert.Equal(t, []string{"undo", "redo"}, wraps)
	assert.Equal(t, taleText, text(t, factory, tale.ID()))
}

func TestEngine_StatsAndReset(t *testing.T) {
	_, desk, eng := setup(t, 4)

	poem, err := desk.Print("poem")
	require.NoError(t, err)
	require.NoError(t, desk.Edit(poem.ID(), "v1"))
	require.NoError(t, eng.PerformUndo())

	stats := eng.Stats()
	assert.Equal(t, history.Stats{
		Capacity:   4,
		UndoDepth:  1,
		RedoDepth:  1,
		UndoCursor: 2,
		RedoCursor: 1,
	}, stats)
	assert.Equal(t, 4, eng.Capacity())

	require.NoError(t, eng.Reset())
	assert.Equal(t, history.Stats{Capacity: 4}, eng.Stats())
	assert.False(t, eng.CanUndo())
	assert.False(t, eng.CanRedo())
}

var errLibraryDown = errors.New("library down")

type flakyLibrary struct {
	*memory.Library
	fail bool
}

func (l *flakyLibrary) Lookup(ctx context.Context, source string) (string, error) {
	if l.fail {
		return "", errLibraryDown
	}
	return l.Library.Lookup(ctx, source)
}
