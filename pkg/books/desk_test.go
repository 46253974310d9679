package books_test

import (
	"errors"
	"testing"

	"github.com/aretw0/rewind/pkg/books"
	"github.com/aretw0/rewind/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRecorder captures the flags observed at each checkpoint.
type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) Record() error {
	return m.Called().Error(0)
}

func TestDesk_EditRecordsBeforeMutating(t *testing.T) {
	f := newFactory()
	rec := new(MockRecorder)
	desk := books.NewDesk(f, rec)

	rec.On("Record").Return(nil).Once()
	b, err := desk.Print("poem")
	require.NoError(t, err)

	rec.On("Record").Return(nil).Run(func(mock.Arguments) {
		assert.True(t, b.IsDirty(), "the book is flagged when the checkpoint is taken")
		assert.Equal(t, poemText, b.Text, "the checkpoint sees the prior text")
	}).Once()
	require.NoError(t, desk.Edit(b.ID(), "new"))
	assert.Equal(t, "new", b.Text)

	rec.On("Record").Return(nil).Once()
	require.NoError(t, desk.Append(b.ID(), "!"))
	assert.Equal(t, "new!", b.Text)

	rec.AssertNumberOfCalls(t, "Record", 3)
}

func TestDesk_Burn(t *testing.T) {
	f := newFactory()
	rec := new(MockRecorder)
	rec.On("Record").Return(nil)
	desk := books.NewDesk(f, rec)

	b, err := desk.Print("tale")
	require.NoError(t, err)
	require.NoError(t, desk.Burn(b.ID()))

	_, ok := f.Book(b.ID())
	assert.False(t, ok)
}

func TestDesk_Errors(t *testing.T) {
	t.Run("Unknown Book", func(t *testing.T) {
		rec := new(MockRecorder)
		desk := books.NewDesk(newFactory(), rec)

		assert.ErrorIs(t, desk.Edit(9, "x"), domain.ErrObjectNotFound)
		assert.ErrorIs(t, desk.Burn(9), domain.ErrObjectNotFound)
		rec.AssertNotCalled(t, "Record")
	})

	t.Run("Record Failure Leaves Book Untouched", func(t *testing.T) {
		f := newFactory()
		b, err := f.Print("poem")
		require.NoError(t, err)

		errFull := errors.New("history full")
		rec := new(MockRecorder)
		rec.On("Record").Return(errFull)
		desk := books.NewDesk(f, rec)

		err = desk.Edit(b.ID(), "lost")
		assert.ErrorIs(t, err, errFull)
		assert.Equal(t, poemText, b.Text)

		err = desk.Burn(b.ID())
		assert.ErrorIs(t, err, errFull)
		_, ok := f.Book(b.ID())
		assert.True(t, ok)
	})
}
