package store

import (
	"fmt"

	"chronofy/internal/expand"
	appLog "chronofy/internal/log"
	"chronofy/internal/model"
	"chronofy/internal/storage"
)

// Classes returns a snapshot copy of all class definitions.
func (s *Store) Classes() []model.ClassInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.ClassInfo, len(s.classes))
	copy(out, s.classes)
	return out
}

// AddClass validates and stores a class definition, then expands it
// into per-day events and inserts them in the same mutation. Generated
// events merge by their deterministic ids, so adding an identical class
// definition twice cannot duplicate occurrences.
func (s *Store) AddClass(class model.ClassInfo) (model.ClassInfo, []model.Event, error) {
	if err := class.Validate(); err != nil {
		return model.ClassInfo{}, nil, err
	}

	s.mu.Lock()
	if class.ID == "" {
		class.ID = newID()
	}
	generated := expand.Expand(class, s.loc)

	s.classes = append(s.classes, class)
	s.persist(storage.KindClasses, s.classes)

	index := make(map[string]int, len(s.events))
	for i, ev := range s.events {
		index[ev.ID] = i
	}
	for _, e := range generated {
		if i, ok := index[e.ID]; ok {
			s.events[i] = e
			continue
		}
		index[e.ID] = len(s.events)
		s.events = append(s.events, e)
	}
	s.persist(storage.KindEvents, s.events)
	s.mu.Unlock()

	appLog.Info("class added",
		"class_id", class.ID,
		"name", class.Name,
		"generated_events", len(generated),
	)

	s.notify()
	return class, generated, nil
}

// RemoveClass deletes a class and cascade-deletes every event whose
// ClassID matches. No orphaned generated events survive.
func (s *Store) RemoveClass(classID string) error {
	s.mu.Lock()
	found := false
	keptClasses := s.classes[:0]
	for _, c := range s.classes {
		if c.ID == classID {
			found = true
			continue
		}
		keptClasses = append(keptClasses, c)
	}
	s.classes = keptClasses

	removedEvents := 0
	if found {
		keptEvents := s.events[:0]
		for _, ev := range s.events {
			if ev.ClassID == classID {
				removedEvents++
				continue
			}
			keptEvents = append(keptEvents, ev)
		}
		s.events = keptEvents

		s.persist(storage.KindClasses, s.classes)
		s.persist(storage.KindEvents, s.events)
	}
	s.mu.Unlock()

	if !found {
		return fmt.Errorf("class %q not found", classID)
	}

	appLog.Info("class removed", "class_id", classID, "cascade_deleted_events", removedEvents)
	s.notify()
	return nil
}
