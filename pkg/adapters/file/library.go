package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/aretw0/rewind/pkg/domain"
	"gopkg.in/yaml.v3"
)

// DefaultPath is used when no path is given.
var DefaultPath = filepath.Join(".rewind", "library.yaml")

// Library implements ports.WritableLibrary on top of a single YAML document
// mapping source descriptors to texts:
//
//	poem: Roses are red, violets are blue..
//	tale: Once upon a time...
//
// The file is re-read on every lookup so external edits are picked up.
type Library struct {
	Path string

	mu sync.Mutex
}

// New creates a Library backed by path.
// If path is empty, it defaults to DefaultPath.
func New(path string) *Library {
	if path == "" {
		path = DefaultPath
	}
	return &Library{Path: path}
}

// Lookup returns the text stored under source.
func (l *Library) Lookup(ctx context.Context, source string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	texts, err := l.read()
	if err != nil {
		return "", err
	}
	text, ok := texts[source]
	if !ok {
		return "", domain.ErrSourceNotFound
	}
	return text, nil
}

// Sources lists every source in the file, sorted.
// A missing file is an empty library.
func (l *Library) Sources(ctx context.Context) ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	texts, err := l.read()
	if err != nil {
		return nil, err
	}
	sources := make([]string, 0, len(texts))
	for s := range texts {
		sources = append(sources, s)
	}
	sort.Strings(sources)
	return sources, nil
}

// Put stores text under source and rewrites the file atomically.
func (l *Library) Put(ctx context.Context, source, text string) error {
	if source == "" {
		return fmt.Errorf("source cannot be empty")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	texts, err := l.read()
	if err != nil {
		return err
	}
	texts[source] = text
	return l.write(texts)
}

func (l *Library) read() (map[string]string, error) {
	data, err := os.ReadFile(l.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read library file: %w", err)
	}

	texts := map[string]string{}
	if err := yaml.Unmarshal(data, &texts); err != nil {
		return nil, fmt.Errorf("failed to parse library file %s: %w", l.Path, err)
	}
	return texts, nil
}

// write replaces the file via a temp file in the same directory, fsync and rename.
func (l *Library) write(texts map[string]string) error {
	dir := filepath.Dir(l.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to ensure library directory: %w", err)
	}

	data, err := yaml.Marshal(texts)
	if err != nil {
		return fmt.Errorf("failed to marshal library: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, "tmp-library-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// On Windows, os.Rename fails if dest exists.
	if _, err := os.Stat(l.Path); err == nil {
		if err := os.Remove(l.Path); err != nil {
			return fmt.Errorf("failed to remove existing library file for overwrite: %w", err)
		}
	}
	if err := os.Rename(tmpPath, l.Path); err != nil {
		return fmt.Errorf("failed to rename temp file to library: %w", err)
	}
	return nil
}
