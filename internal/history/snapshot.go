package history

import (
	"fmt"

	"github.com/aretw0/rewind/pkg/domain"
	"github.com/aretw0/rewind/pkg/ports"
)

// entry pairs a captured state with the object it was taken from.
type entry struct {
	state domain.State
	obj   domain.Undoable
}

// section is one identity-keyed mapping of a Snapshot.
// Entries keep capture order; index rejects duplicate identities.
type section struct {
	entries []entry
	index   map[int]struct{}
}

func newSection(hint int) section {
	return section{
		entries: make([]entry, 0, hint),
		index:   make(map[int]struct{}, hint),
	}
}

func (s *section) add(obj domain.Undoable) error {
	state := obj.SaveState()
	id := state.ID()
	if _, dup := s.index[id]; dup {
		return fmt.Errorf("%w: %d", domain.ErrDuplicateState, id)
	}
	s.index[id] = struct{}{}
	s.entries = append(s.entries, entry{state: state, obj: obj})
	return nil
}

// reset empties the section while keeping its storage for the next cycle.
func (s *section) reset() {
	clear(s.entries)
	s.entries = s.entries[:0]
	clear(s.index)
}

func (s *section) ids() []int {
	ids := make([]int, len(s.entries))
	for i, e := range s.entries {
		ids[i] = e.state.ID()
	}
	return ids
}

// Snapshot is a reusable buffer holding the states captured at one checkpoint:
// prior states of changed objects and states of objects created since.
// Snapshots are owned by a pool for their entire lifetime.
type Snapshot struct {
	factory ports.Factory
	changed section
	created section
}

func newSnapshot(factory ports.Factory, hint int) *Snapshot {
	return &Snapshot{
		factory: factory,
		changed: newSection(hint),
		created: newSection(hint),
	}
}

// Clear empties both mappings. Referenced objects are not touched.
func (s *Snapshot) Clear() {
	s.changed.reset()
	s.created.reset()
}

// Record captures the current state of obj as a changed object.
func (s *Snapshot) Record(obj domain.Undoable) error {
	return s.changed.add(obj)
}

// RecordCreated captures the current state of obj as a newly created object.
func (s *Snapshot) RecordCreated(obj domain.Undoable) error {
	return s.created.add(obj)
}

// Len returns the total number of captured states.
func (s *Snapshot) Len() int {
	return len(s.changed.entries) + len(s.created.entries)
}

// Changed returns the identities captured as changed, in capture order.
func (s *Snapshot) Changed() []int { return s.changed.ids() }

// Created returns the identities captured as created, in capture order.
func (s *Snapshot) Created() []int { return s.created.ids() }

// Load applies the snapshot to the factory.
// Changed states are restored into the live object with the same identity, or into
// an object recreated from the state's source when the factory no longer has one.
// Objects captured as created are then deleted. Restorations always run first.
// Load stops at the first error; objects already restored are not rolled back.
func (s *Snapshot) Load() error {
	for _, e := range s.changed.entries {
		id := e.state.ID()

		if s.factory.HasKey(id) {
			obj, ok := s.factory.Get(id)
			if !ok {
				obj = e.obj
			}
			if err := obj.LoadState(e.state); err != nil {
				return fmt.Errorf("failed to restore object %d: %w", id, err)
			}
			continue
		}

		obj, err := s.factory.CreateWithID(e.state.Source(), id)
		if err != nil {
			return fmt.Errorf("failed to recreate object %d from %q: %w", id, e.state.Source(), err)
		}
		if err := obj.LoadState(e.state); err != nil {
			return fmt.Errorf("failed to restore recreated object %d: %w", id, err)
		}
		// A resurrected object existed at the checkpoint; it is not a new creation.
		obj.SetJustCreated(false)
	}

	for _, e := range s.created.entries {
		if obj, ok := s.factory.Get(e.state.ID()); ok {
			s.factory.Delete(obj)
		}
	}
	return nil
}

// captureInverse fills dst with whatever is needed to reverse applying s.
// Identities live in the factory are captured from the live object as changed;
// identities that s will resurrect are captured as created so that dst deletes them again.
func captureInverse(factory ports.Factory, s, dst *Snapshot) error {
	for _, sec := range []*section{&s.changed, &s.created} {
		for _, e := range sec.entries {
			if obj, ok := factory.Get(e.state.ID()); ok {
				if err := dst.Record(obj); err != nil {
					return err
				}
				continue
			}
			if err := dst.RecordCreated(e.obj); err != nil {
				return err
			}
		}
	}
	return nil
}
