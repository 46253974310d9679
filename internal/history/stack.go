package history

// stack is an ordered history of snapshots; the last element is the top.
type stack struct {
	items []*Snapshot
}

func newStack(capacity int) stack {
	return stack{items: make([]*Snapshot, 0, capacity+1)}
}

func (s *stack) push(snap *Snapshot) {
	s.items = append(s.items, snap)
}

func (s *stack) peek() (*Snapshot, bool) {
	if len(s.items) == 0 {
		return nil, false
	}
	return s.items[len(s.items)-1], true
}

func (s *stack) pop() {
	if len(s.items) == 0 {
		return
	}
	s.items[len(s.items)-1] = nil
	s.items = s.items[:len(s.items)-1]
}

// evictOldest drops the first-appended entry when the stack holds more than limit entries.
// It returns the evicted snapshot, or nil.
func (s *stack) evictOldest(limit int) *Snapshot {
	if len(s.items) <= limit {
		return nil
	}
	oldest := s.items[0]
	copy(s.items, s.items[1:])
	s.items[len(s.items)-1] = nil
	s.items = s.items[:len(s.items)-1]
	return oldest
}

func (s *stack) contains(snap *Snapshot) bool {
	for _, it := range s.items {
		if it == snap {
			return true
		}
	}
	return false
}

func (s *stack) len() int { return len(s.items) }

func (s *stack) reset() {
	clear(s.items)
	s.items = s.items[:0]
}
