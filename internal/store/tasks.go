package store

import (
	"fmt"

	"chronofy/internal/model"
	"chronofy/internal/storage"
)

// Tasks returns a snapshot copy of all tasks.
func (s *Store) Tasks() []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// AddTask inserts a task at the front of the list (newest first, as the
// quick-add surfaces it), assigning a fresh id. Completed state always
// starts false regardless of input.
func (s *Store) AddTask(t model.Task) (model.Task, error) {
	if err := t.Validate(); err != nil {
		return model.Task{}, err
	}
	t.Completed = false
	t.CompletedAt = nil

	s.mu.Lock()
	if t.ID == "" {
		t.ID = newID()
	}
	s.tasks = append([]model.Task{t}, s.tasks...)
	s.persist(storage.KindTasks, s.tasks)
	s.mu.Unlock()

	s.notify()
	return t, nil
}

// TaskUpdate carries the editable fields of a task. Nil pointers leave
// the stored value untouched.
type TaskUpdate struct {
	Text  *string `json:"text,omitempty"`
	Emoji *string `json:"emoji,omitempty"`
	Tag   *string `json:"tag,omitempty"`
}

// UpdateTask applies a partial update to the task with the given id.
func (s *Store) UpdateTask(id string, upd TaskUpdate) (model.Task, error) {
	s.mu.Lock()
	var updated model.Task
	found := false
	for i := range s.tasks {
		if s.tasks[i].ID != id {
			continue
		}
		if upd.Text != nil {
			s.tasks[i].Text = *upd.Text
		}
		if upd.Emoji != nil {
			s.tasks[i].Emoji = *upd.Emoji
		}
		if upd.Tag != nil {
			s.tasks[i].Tag = *upd.Tag
		}
		updated = s.tasks[i]
		found = true
		break
	}
	if found {
		s.persist(storage.KindTasks, s.tasks)
	}
	s.mu.Unlock()

	if !found {
		return model.Task{}, fmt.Errorf("task %q not found", id)
	}
	s.notify()
	return updated, nil
}

// ToggleTask flips completion. CompletedAt is set exactly on the
// false -> true transition and cleared on true -> false.
func (s *Store) ToggleTask(id string) (model.Task, error) {
	s.mu.Lock()
	var toggled model.Task
	found := false
	for i := range s.tasks {
		if s.tasks[i].ID != id {
			continue
		}
		s.tasks[i].Completed = !s.tasks[i].Completed
		if s.tasks[i].Completed {
			now := s.now()
			s.tasks[i].CompletedAt = &now
		} else {
			s.tasks[i].CompletedAt = nil
		}
		toggled = s.tasks[i]
		found = true
		break
	}
	if found {
		s.persist(storage.KindTasks, s.tasks)
	}
	s.mu.Unlock()

	if !found {
		return model.Task{}, fmt.Errorf("task %q not found", id)
	}
	s.notify()
	return toggled, nil
}

// RemoveTask deletes one task by id.
func (s *Store) RemoveTask(id string) error {
	s.mu.Lock()
	found := false
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.ID == id {
			found = true
			continue
		}
		kept = append(kept, t)
	}
	s.tasks = kept
	if found {
		s.persist(storage.KindTasks, s.tasks)
	}
	s.mu.Unlock()

	if !found {
		return fmt.Errorf("task %q not found", id)
	}
	s.notify()
	return nil
}
