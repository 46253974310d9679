package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/rewind/pkg/domain"
)

// Library implements ports.WritableLibrary in memory.
// Safe for concurrent use.
type Library struct {
	texts map[string]string
	mu    sync.RWMutex
}

// NewLibrary creates a new in-memory library seeded with texts.
// The map is copied; later changes to it are not observed.
func NewLibrary(texts map[string]string) *Library {
	l := &Library{
		texts: make(map[string]string, len(texts)),
	}
	for k, v := range texts {
		l.texts[k] = v
	}
	return l
}

// Lookup retrieves the text stored under source.
func (l *Library) Lookup(ctx context.Context, source string) (string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	text, ok := l.texts[source]
	if !ok {
		return "", domain.ErrSourceNotFound
	}
	return text, nil
}

// Put stores text under source.
func (l *Library) Put(ctx context.Context, source, text string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.texts[source] = text
	return nil
}

// Sources returns every source, sorted.
func (l *Library) Sources(ctx context.Context) ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	sources := make([]string, 0, len(l.texts))
	for s := range l.texts {
		sources = append(sources, s)
	}
	sort.Strings(sources)
	return sources, nil
}
