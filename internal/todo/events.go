package todo

import (
	"github.com/google/uuid"
)

// EventKind names what changed.
type EventKind string

const (
	EventAdded       EventKind = "added"
	EventUpdated     EventKind = "updated"
	EventToggled     EventKind = "toggled"
	EventDeleted     EventKind = "deleted"
	EventReloaded    EventKind = "reloaded"
	EventPreferences EventKind = "preferences"
)

// Event is delivered to subscribers after a change has been persisted.
type Event struct {
	Kind EventKind
	IDs  []uuid.UUID
}

// Subscribe registers fn for every subsequent Event. Callbacks run on the
// mutating goroutine after the Store lock is released, so they may call
// back into the Store. The returned func unregisters fn.
func (s *Store) Subscribe(fn func(Event)) (cancel func()) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.subsMu.Lock()
		defer s.subsMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) emit(ev Event) {
	s.subsMu.Lock()
	fns := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subsMu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}
