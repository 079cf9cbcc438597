package store

import (
	"fmt"

	"chronofy/internal/model"
	"chronofy/internal/storage"
)

// Events returns a snapshot copy of all events.
func (s *Store) Events() []model.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Event, len(s.events))
	copy(out, s.events)
	return out
}

// AddEvent inserts one event, assigning a fresh id when absent, and
// returns the stored value.
func (s *Store) AddEvent(e model.Event) (model.Event, error) {
	if err := e.Validate(); err != nil {
		return model.Event{}, err
	}

	s.mu.Lock()
	if e.ID == "" {
		e.ID = newID()
	}
	s.events = append(s.events, e)
	s.persist(storage.KindEvents, s.events)
	s.mu.Unlock()

	s.notify()
	return e, nil
}

// AddEvents inserts a batch, merging by id: an incoming event whose id
// already exists replaces the stored one instead of duplicating it.
// This is what makes re-expanding a class idempotent.
func (s *Store) AddEvents(events []model.Event) {
	if len(events) == 0 {
		return
	}

	s.mu.Lock()
	index := make(map[string]int, len(s.events))
	for i, ev := range s.events {
		index[ev.ID] = i
	}
	for _, e := range events {
		if e.ID == "" {
			e.ID = newID()
		}
		if i, ok := index[e.ID]; ok {
			s.events[i] = e
			continue
		}
		index[e.ID] = len(s.events)
		s.events = append(s.events, e)
	}
	s.persist(storage.KindEvents, s.events)
	s.mu.Unlock()

	s.notify()
}

// UpdateEvent replaces the event with a matching id.
func (s *Store) UpdateEvent(e model.Event) error {
	if err := e.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	found := false
	for i := range s.events {
		if s.events[i].ID == e.ID {
			s.events[i] = e
			found = true
			break
		}
	}
	if found {
		s.persist(storage.KindEvents, s.events)
	}
	s.mu.Unlock()

	if !found {
		return fmt.Errorf("event %q not found", e.ID)
	}
	s.notify()
	return nil
}

// RemoveEvent deletes one event by id.
func (s *Store) RemoveEvent(id string) error {
	s.mu.Lock()
	found := false
	kept := s.events[:0]
	for _, ev := range s.events {
		if ev.ID == id {
			found = true
			continue
		}
		kept = append(kept, ev)
	}
	s.events = kept
	if found {
		s.persist(storage.KindEvents, s.events)
	}
	s.mu.Unlock()

	if !found {
		return fmt.Errorf("event %q not found", id)
	}
	s.notify()
	return nil
}
