package books

import (
	"errors"
	"fmt"

	"github.com/aretw0/rewind/pkg/domain"
)

// ErrForeignState is returned when a Book is asked to load a state that is not Content.
var ErrForeignState = errors.New("state is not book content")

// Content is the persisted state of a Book.
type Content struct {
	BookID     int    `json:"id"`
	SourcePath string `json:"source"`
	Text       string `json:"text"`
}

// ID implements domain.State.
func (c Content) ID() int { return c.BookID }

// Source implements domain.State.
func (c Content) Source() string { return c.SourcePath }

// Book is a printed copy of a library text that can be edited.
type Book struct {
	domain.Tracker

	id     int
	source string
	Text   string
}

// ID returns the identity assigned by the factory.
func (b *Book) ID() int { return b.id }

// Source returns the library source the book was printed from.
func (b *Book) Source() string { return b.source }

// SaveContent returns the current content.
func (b *Book) SaveContent() Content {
	return Content{
		BookID:     b.id,
		SourcePath: b.source,
		Text:       b.Text,
	}
}

// LoadContent overwrites the book with c.
func (b *Book) LoadContent(c Content) error {
	if err := domain.CheckIdentity(b.id, c); err != nil {
		return fmt.Errorf("book %d cannot load content of book %d: %w", b.id, c.BookID, err)
	}
	b.source = c.SourcePath
	b.Text = c.Text
	return nil
}

// SaveState implements domain.Undoable.
func (b *Book) SaveState() domain.State {
	return b.SaveContent()
}

// LoadState implements domain.Undoable.
func (b *Book) LoadState(s domain.State) error {
	c, ok := s.(Content)
	if !ok {
		return fmt.Errorf("%w: %T", ErrForeignState, s)
	}
	return b.LoadContent(c)
}
