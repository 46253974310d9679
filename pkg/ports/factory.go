package ports

import "github.com/aretw0/rewind/pkg/domain"

// Factory is the registry that owns undoable objects, keyed by integer identity.
// The history engine never owns objects; it only holds references produced here.
type Factory interface {
	// Get returns the live object with the given identity, if any.
	Get(id int) (domain.Undoable, bool)

	// GetAll returns every live object.
	// The returned slice must not be mutated by the factory while the caller iterates it.
	GetAll() []domain.Undoable

	// HasKey reports whether an object with the given identity is live.
	HasKey(id int) bool

	// Create builds a new object from a source descriptor and assigns it a fresh identity.
	Create(source string) (domain.Undoable, error)

	// CreateWithID builds an object with an explicit identity.
	// The history engine uses it to resurrect objects that were deleted.
	CreateWithID(source string, id int) (domain.Undoable, error)

	// Delete removes the object from the registry.
	Delete(domain.Undoable)
}
