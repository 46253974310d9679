package domain

// State is an immutable snapshot of one object's persisted fields.
// Two states with the same ID describe the same logical object at different times.
type State interface {
	// ID is the identity of the object the state was taken from.
	ID() int

	// Source is the factory-interpretable descriptor needed to recreate the object.
	Source() string
}

// Undoable is a mutable entity whose state can be captured and restored.
type Undoable interface {
	// SaveState returns a snapshot of the current persisted fields.
	SaveState() State

	// LoadState overwrites the persisted fields from the given state.
	// Implementations return ErrIdentityMismatch if the state belongs to another object.
	LoadState(State) error

	IsDirty() bool
	SetDirty(bool)
	IsJustCreated() bool
	SetJustCreated(bool)
}

// Tracker implements the transient dirty/just-created flags of Undoable.
// Embed it in domain objects.
type Tracker struct {
	dirty       bool
	justCreated bool
}

// IsDirty reports whether the object changed since the last checkpoint.
func (t *Tracker) IsDirty() bool { return t.dirty }

// SetDirty marks or clears the dirty flag.
func (t *Tracker) SetDirty(v bool) { t.dirty = v }

// IsJustCreated reports whether the object did not exist at the last checkpoint.
func (t *Tracker) IsJustCreated() bool { return t.justCreated }

// SetJustCreated marks or clears the just-created flag.
func (t *Tracker) SetJustCreated(v bool) { t.justCreated = v }

// CheckIdentity verifies that a state can be loaded into an object with the given identity.
func CheckIdentity(id int, s State) error {
	if s == nil || s.ID() != id {
		return ErrIdentityMismatch
	}
	return nil
}
