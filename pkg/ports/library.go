package ports

import "context"

// Library resolves source descriptors into the raw content objects are built from.
// This allows the backing storage (Memory, File, Redis) to be decoupled from factories.
type Library interface {
	// Lookup returns the content stored under source.
	// Returns domain.ErrSourceNotFound if the source does not exist.
	Lookup(ctx context.Context, source string) (string, error)

	// Sources lists every available source descriptor, sorted.
	Sources(ctx context.Context) ([]string, error)
}

// WritableLibrary is a Library that can be seeded or edited.
type WritableLibrary interface {
	Library

	// Put stores content under source, overwriting any previous value.
	Put(ctx context.Context, source, content string) error
}
