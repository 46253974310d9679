package ports

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/aretw0/rewind/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunFactoryContract runs a suite of tests to verify that a Factory implementation
// adheres to the defined interface contract.
// newFactory must return an empty factory on each call; source must be resolvable by it.
func RunFactoryContract(t *testing.T, newFactory func(t *testing.T) Factory, source string) {
	t.Run("Create assigns fresh identities", func(t *testing.T) {
		f := newFactory(t)

		a, err := f.Create(source)
		require.NoError(t, err, "Create should not return error")
		b, err := f.Create(source)
		require.NoError(t, err)

		idA, idB := a.SaveState().ID(), b.SaveState().ID()
		assert.NotEqual(t, idA, idB, "identities must be unique")
		assert.True(t, f.HasKey(idA))
		assert.True(t, f.HasKey(idB))

		got, ok := f.Get(idA)
		require.True(t, ok)
		assert.Equal(t, idA, got.SaveState().ID())
		assert.Equal(t, source, got.SaveState().Source())
	})

	t.Run("CreateWithID uses the given identity", func(t *testing.T) {
		f := newFactory(t)

		obj, err := f.CreateWithID(source, 42)
		require.NoError(t, err)
		assert.Equal(t, 42, obj.SaveState().ID())
		assert.True(t, f.HasKey(42))

		// Recreating over a live identity replaces it rather than duplicating it.
		_, err = f.CreateWithID(source, 42)
		require.NoError(t, err)
		assert.Len(t, f.GetAll(), 1)
	})

	t.Run("Delete", func(t *testing.T) {
		f := newFactory(t)

		obj, err := f.Create(source)
		require.NoError(t, err)
		id := obj.SaveState().ID()

		f.Delete(obj)

		assert.False(t, f.HasKey(id), "HasKey after Delete should be false")
		_, ok := f.Get(id)
		assert.False(t, ok)
		assert.Empty(t, f.GetAll())
	})

	t.Run("GetAll", func(t *testing.T) {
		f := newFactory(t)

		ids := make([]int, 0, 3)
		for range 3 {
			obj, err := f.Create(source)
			require.NoError(t, err)
			ids = append(ids, obj.SaveState().ID())
		}

		all := f.GetAll()
		got := make([]int, 0, len(all))
		for _, obj := range all {
			got = append(got, obj.SaveState().ID())
		}
		assert.ElementsMatch(t, ids, got)
	})

	t.Run("Create Unknown Source", func(t *testing.T) {
		f := newFactory(t)

		_, err := f.Create("non-existent-source-" + time.Now().Format("150405.000"))
		assert.Error(t, err)
		assert.Empty(t, f.GetAll(), "failed creation must not register an object")
	})
}

// RunLibraryContract runs a suite of tests to verify that a WritableLibrary implementation
// adheres to the defined interface contract.
func RunLibraryContract(t *testing.T, lib WritableLibrary) {
	ctx := context.Background()
	prefix := "contract-" + time.Now().Format("20060102150405")

	t.Run("Put and Lookup", func(t *testing.T) {
		source := prefix + "-poem"
		err := lib.Put(ctx, source, "Roses are red")
		require.NoError(t, err, "Put should not return error")

		text, err := lib.Lookup(ctx, source)
		require.NoError(t, err, "Lookup should not return error")
		assert.Equal(t, "Roses are red", text)
	})

	t.Run("Overwrite", func(t *testing.T) {
		source := prefix + "-tale"
		require.NoError(t, lib.Put(ctx, source, "Once"))
		require.NoError(t, lib.Put(ctx, source, "Once upon a time..."))

		text, err := lib.Lookup(ctx, source)
		require.NoError(t, err)
		assert.Equal(t, "Once upon a time...", text)
	})

	t.Run("Lookup Non-Existent", func(t *testing.T) {
		_, err := lib.Lookup(ctx, "non-existent-"+prefix)
		assert.ErrorIs(t, err, domain.ErrSourceNotFound)
	})

	t.Run("Sources", func(t *testing.T) {
		a, b := prefix+"-a", prefix+"-b"
		require.NoError(t, lib.Put(ctx, b, "second"))
		require.NoError(t, lib.Put(ctx, a, "first"))

		sources, err := lib.Sources(ctx)
		require.NoError(t, err)
		assert.Contains(t, sources, a)
		assert.Contains(t, sources, b)
		assert.True(t, sort.StringsAreSorted(sources), "Sources should be sorted")
	})
}
