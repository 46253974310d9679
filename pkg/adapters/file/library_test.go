package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/rewind/pkg/adapters/file"
	"github.com/aretw0/rewind/pkg/domain"
	"github.com/aretw0/rewind/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.WritableLibrary = (*file.Library)(nil)

func TestFileLibrary_Contract(t *testing.T) {
	lib := file.New(filepath.Join(t.TempDir(), "library.yaml"))
	ports.RunLibraryContract(t, lib)
}

func TestFileLibrary_ReadsHandWrittenYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.yaml")
	content := "poem: Roses are red, violets are blue..\ntale: \"Once upon a time...\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	lib := file.New(path)
	ctx := context.Background()

	text, err := lib.Lookup(ctx, "poem")
	require.NoError(t, err)
	assert.Equal(t, "Roses are red, violets are blue..", text)

	sources, err := lib.Sources(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"poem", "tale"}, sources)
}

func TestFileLibrary_MissingFileIsEmpty(t *testing.T) {
	lib := file.New(filepath.Join(t.TempDir(), "nested", "library.yaml"))
	ctx := context.Background()

	sources, err := lib.Sources(ctx)
	require.NoError(t, err)
	assert.Empty(t, sources)

	_, err = lib.Lookup(ctx, "poem")
	assert.ErrorIs(t, err, domain.ErrSourceNotFound)

	// Put creates intermediate directories.
	require.NoError(t, lib.Put(ctx, "poem", "Roses"))
	_, err = os.Stat(lib.Path)
	assert.NoError(t, err)
}

func TestFileLibrary_NoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	lib := file.New(filepath.Join(dir, "library.yaml"))
	require.NoError(t, lib.Put(context.Background(), "poem", "Roses"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "library.yaml", entries[0].Name())
}

func TestFileLibrary_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- not\n- a map\n"), 0644))

	_, err := file.New(path).Lookup(context.Background(), "poem")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSourceNotFound)
}
