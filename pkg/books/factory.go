package books

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/aretw0/rewind/internal/logging"
	"github.com/aretw0/rewind/pkg/domain"
	"github.com/aretw0/rewind/pkg/ports"
)

// DefaultLookupTimeout bounds each library lookup made while printing.
const DefaultLookupTimeout = 2 * time.Second

// Factory prints books from a library and keeps track of them by identity.
// It implements ports.Factory. It is not safe for concurrent use.
type Factory struct {
	library       ports.Library
	printed       map[int]*Book
	idCounter     int
	lookupTimeout time.Duration
	logger        *slog.Logger
}

// Option configures the Factory.
type Option func(*Factory)

// WithLookupTimeout sets the timeout applied to each library lookup.
func WithLookupTimeout(d time.Duration) Option {
	return func(f *Factory) {
		if d > 0 {
			f.lookupTimeout = d
		}
	}
}

// WithLogger configures a logger for the Factory.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Factory) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// NewFactory creates a factory printing from library.
func NewFactory(library ports.Library, opts ...Option) *Factory {
	f := &Factory{
		library:       library,
		printed:       make(map[int]*Book),
		lookupTimeout: DefaultLookupTimeout,
		logger:        logging.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Library returns the library books are printed from.
func (f *Factory) Library() ports.Library {
	return f.library
}

// Print creates a new book from source with a fresh identity.
func (f *Factory) Print(source string) (*Book, error) {
	return f.PrintWithID(source, f.idCounter)
}

// PrintWithID creates a book from source with the given identity,
// replacing any book currently printed under it.
func (f *Factory) PrintWithID(source string, id int) (*Book, error) {
	ctx, cancel := context.WithTimeout(context.Background(), f.lookupTimeout)
	defer cancel()

	text, err := f.library.Lookup(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("failed to print %q: %w", source, err)
	}

	book := &Book{
		id:     id,
		source: source,
		Text:   text,
	}
	book.SetJustCreated(true)

	f.printed[id] = book
	if id >= f.idCounter {
		f.idCounter = id + 1
	}

	f.logger.Debug("book printed", "id", id, "source", source)
	return book, nil
}

// Book returns the printed book with the given identity.
func (f *Factory) Book(id int) (*Book, bool) {
	b, ok := f.printed[id]
	return b, ok
}

// Books returns every printed book, ordered by identity.
func (f *Factory) Books() []*Book {
	out := make([]*Book, 0, len(f.printed))
	for _, b := range f.printed {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// Burn removes the book from the factory.
func (f *Factory) Burn(b *Book) {
	if b == nil {
		return
	}
	delete(f.printed, b.id)
	f.logger.Debug("book burned", "id", b.id)
}

// Get implements ports.Factory.
func (f *Factory) Get(id int) (domain.Undoable, bool) {
	b, ok := f.printed[id]
	if !ok {
		return nil, false
	}
	return b, true
}

// GetAll implements ports.Factory. Books are returned ordered by identity.
func (f *Factory) GetAll() []domain.Undoable {
	books := f.Books()
	out := make([]domain.Undoable, len(books))
	for i, b := range books {
		out[i] = b
	}
	return out
}

// HasKey implements ports.Factory.
func (f *Factory) HasKey(id int) bool {
	_, ok := f.printed[id]
	return ok
}

// Create implements ports.Factory.
func (f *Factory) Create(source string) (domain.Undoable, error) {
	b, err := f.Print(source)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// CreateWithID implements ports.Factory.
func (f *Factory) CreateWithID(source string, id int) (domain.Undoable, error) {
	b, err := f.PrintWithID(source, id)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Delete implements ports.Factory.
func (f *Factory) Delete(u domain.Undoable) {
	if b, ok := u.(*Book); ok {
		f.Burn(b)
		return
	}
	// Foreign implementations are deleted by identity.
	if u != nil {
		delete(f.printed, u.SaveState().ID())
	}
}

var _ ports.Factory = (*Factory)(nil)
