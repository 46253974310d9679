package books_test

import (
	"testing"

	"github.com/aretw0/rewind/pkg/books"
	"github.com/aretw0/rewind/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type foreignState struct{}

func (foreignState) ID() int        { return 0 }
func (foreignState) Source() string { return "" }

func TestBook_SaveAndLoadState(t *testing.T) {
	f := newFactory()
	b, err := f.Print("poem")
	require.NoError(t, err)

	saved := b.SaveState()
	assert.Equal(t, b.ID(), saved.ID())
	assert.Equal(t, "poem", saved.Source())

	b.Text = "scribbled"
	require.NoError(t, b.LoadState(saved))
	assert.Equal(t, poemText, b.Text)
}

func TestBook_LoadState_Rejects(t *testing.T) {
	f := newFactory()
	a, err := f.Print("poem")
	require.NoError(t, err)
	b, err := f.Print("tale")
	require.NoError(t, err)

	err = a.LoadState(b.SaveState())
	assert.ErrorIs(t, err, domain.ErrIdentityMismatch)
	assert.Equal(t, poemText, a.Text, "a rejected load leaves the book untouched")

	err = a.LoadState(foreignState{})
	assert.ErrorIs(t, err, books.ErrForeignState)
}
