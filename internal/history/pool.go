package history

import "github.com/aretw0/rewind/pkg/ports"

// pool is a fixed ring of reusable snapshots indexed by a wrapping cursor.
type pool struct {
	slots  []*Snapshot
	cursor int
}

func newPool(factory ports.Factory, size, hint int) *pool {
	p := &pool{slots: make([]*Snapshot, size)}
	for i := range p.slots {
		p.slots[i] = newSnapshot(factory, hint)
	}
	return p
}

// next returns the next slot to recycle, already cleared.
// The slot may still be referenced by a history entry; its content is overwritten regardless.
func (p *pool) next() *Snapshot {
	if p.cursor >= len(p.slots) {
		p.cursor = 0
	}
	s := p.slots[p.cursor]
	p.cursor++
	s.Clear()
	return s
}

func (p *pool) reset() {
	for _, s := range p.slots {
		s.Clear()
	}
	p.cursor = 0
}
