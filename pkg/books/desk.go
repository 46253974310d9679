package books

import (
	"fmt"

	"github.com/aretw0/rewind/pkg/domain"
)

// Recorder takes a checkpoint of every flagged object.
type Recorder interface {
	Record() error
}

// Desk edits books so that every change can be undone:
// books are flagged and a checkpoint is recorded before they are mutated.
type Desk struct {
	factory  *Factory
	recorder Recorder
}

// NewDesk creates a desk over factory, checkpointing through recorder.
func NewDesk(factory *Factory, recorder Recorder) *Desk {
	return &Desk{factory: factory, recorder: recorder}
}

// Factory returns the underlying factory.
func (d *Desk) Factory() *Factory {
	return d.factory
}

// Print creates a book from source and records its creation.
func (d *Desk) Print(source string) (*Book, error) {
	b, err := d.factory.Print(source)
	if err != nil {
		return nil, err
	}
	if err := d.recorder.Record(); err != nil {
		return nil, fmt.Errorf("failed to record print of %q: %w", source, err)
	}
	return b, nil
}

// Edit replaces the text of a book.
func (d *Desk) Edit(id int, text string) error {
	b, err := d.checkpoint(id)
	if err != nil {
		return err
	}
	b.Text = text
	return nil
}

// Append adds text at the end of a book.
func (d *Desk) Append(id int, text string) error {
	b, err := d.checkpoint(id)
	if err != nil {
		return err
	}
	b.Text += text
	return nil
}

// Burn deletes a book. Undo brings it back.
func (d *Desk) Burn(id int) error {
	b, err := d.checkpoint(id)
	if err != nil {
		return err
	}
	d.factory.Burn(b)
	return nil
}

func (d *Desk) checkpoint(id int) (*Book, error) {
	b, ok := d.factory.Book(id)
	if !ok {
		return nil, fmt.Errorf("book %d: %w", id, domain.ErrObjectNotFound)
	}
	b.SetDirty(true)
	if err := d.recorder.Record(); err != nil {
		return nil, fmt.Errorf("failed to record checkpoint for book %d: %w", id, err)
	}
	return b, nil
}
