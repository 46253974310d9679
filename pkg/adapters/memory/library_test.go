package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/rewind/pkg/adapters/memory"
	"github.com/aretw0/rewind/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLibrary_Contract(t *testing.T) {
	lib := memory.NewLibrary(nil)
	ports.RunLibraryContract(t, lib)
}

func TestMemoryLibrary_SeedIsCopied(t *testing.T) {
	seed := map[string]string{"poem": "Roses are red, violets are blue.."}
	lib := memory.NewLibrary(seed)

	seed["poem"] = "changed behind our back"

	text, err := lib.Lookup(context.Background(), "poem")
	require.NoError(t, err)
	assert.Equal(t, "Roses are red, violets are blue..", text)
}
