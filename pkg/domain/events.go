package domain

import "time"

// EventType defines the category of the event.
type EventType string

const (
	EventRecord   EventType = "record"
	EventUndo     EventType = "undo"
	EventRedo     EventType = "redo"
	EventEvict    EventType = "evict"
	EventPoolWrap EventType = "pool_wrap"
)

// HistoryEvent describes one transition of the undo/redo history.
type HistoryEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`

	// Stack is "undo" or "redo": the history the event applies to.
	Stack string `json:"stack"`

	// Changed and Created are the identities held by the snapshot involved.
	Changed []int `json:"changed,omitempty"`
	Created []int `json:"created,omitempty"`

	UndoDepth int `json:"undo_depth"`
	RedoDepth int `json:"redo_depth"`
}

// LifecycleHooks defines callbacks for history observability.
// Hooks run synchronously and must not call back into the history.
type LifecycleHooks struct {
	OnRecord   func(*HistoryEvent)
	OnUndo     func(*HistoryEvent)
	OnRedo     func(*HistoryEvent)
	OnEvict    func(*HistoryEvent)
	OnPoolWrap func(*HistoryEvent)
}

// Merge returns hooks that invoke h first and then other, for each callback.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnRecord:   chain(h.OnRecord, other.OnRecord),
		OnUndo:     chain(h.OnUndo, other.OnUndo),
		OnRedo:     chain(h.OnRedo, other.OnRedo),
		OnEvict:    chain(h.OnEvict, other.OnEvict),
		OnPoolWrap: chain(h.OnPoolWrap, other.OnPoolWrap),
	}
}

func chain(a, b func(*HistoryEvent)) func(*HistoryEvent) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(e *HistoryEvent) {
		a(e)
		b(e)
	}
}
