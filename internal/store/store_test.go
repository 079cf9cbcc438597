package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"chronofy/internal/model"
	"chronofy/internal/storage"
)

func newTestStore(t *testing.T) (*Store, *storage.MemoryRepository) {
	t.Helper()
	repo := storage.NewMemory()
	return New(context.Background(), repo, time.UTC), repo
}

func testEvent(title string) model.Event {
	return model.Event{
		Title:    title,
		Category: model.CategoryPersonal,
		Start:    time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		End:      time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestAddEventAssignsID(t *testing.T) {
	s, _ := newTestStore(t)
	created, err := s.AddEvent(testEvent("Lunch"))
	if err != nil {
		t.Fatalf("AddEvent: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected a fresh id")
	}
	if got := s.Events(); len(got) != 1 || got[0].ID != created.ID {
		t.Fatalf("events = %+v", got)
	}
}

func TestAddEventValidation(t *testing.T) {
	s, _ := newTestStore(t)
	bad := testEvent("Backwards")
	bad.End = bad.Start.Add(-time.Hour)
	if _, err := s.AddEvent(bad); err == nil {
		t.Fatal("expected validation error for end before start")
	}
	if len(s.Events()) != 0 {
		t.Fatal("rejected event must not be stored")
	}
}

func TestAddEventsMergesByID(t *testing.T) {
	s, _ := newTestStore(t)
	e := testEvent("Lecture")
	e.ID = "c1::2024-05-01"
	s.AddEvents([]model.Event{e})
	e.Title = "Lecture (updated)"
	s.AddEvents([]model.Event{e})

	events := s.Events()
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1 after merge", len(events))
	}
	if events[0].Title != "Lecture (updated)" {
		t.Fatalf("title = %q", events[0].Title)
	}
}

func TestRemoveClassCascades(t *testing.T) {
	s, _ := newTestStore(t)

	class := model.ClassInfo{
		Name:          "PSY 101",
		Instructor:    "Dr. Reyes",
		Location:      "Hall B",
		Days:          []model.Weekday{model.Mon, model.Wed},
		StartTime:     "09:00",
		EndTime:       "10:30",
		SemesterStart: "2024-01-01",
		SemesterEnd:   "2024-01-14",
	}
	created, generated, err := s.AddClass(class)
	if err != nil {
		t.Fatalf("AddClass: %v", err)
	}
	if len(generated) != 4 {
		t.Fatalf("generated %d events, want 4", len(generated))
	}

	// An unrelated manual event must survive the cascade.
	manual, _ := s.AddEvent(testEvent("Dentist"))

	if err := s.RemoveClass(created.ID); err != nil {
		t.Fatalf("RemoveClass: %v", err)
	}
	if len(s.Classes()) != 0 {
		t.Fatal("class not removed")
	}
	events := s.Events()
	if len(events) != 1 || events[0].ID != manual.ID {
		t.Fatalf("cascade removed the wrong events: %+v", events)
	}
}

func TestAddClassTwiceDoesNotDuplicate(t *testing.T) {
	s, _ := newTestStore(t)
	class := model.ClassInfo{
		ID:            "psy101",
		Name:          "PSY 101",
		Days:          []model.Weekday{model.Mon},
		StartTime:     "09:00",
		EndTime:       "10:00",
		SemesterStart: "2024-01-01",
		SemesterEnd:   "2024-01-14",
	}
	if _, _, err := s.AddClass(class); err != nil {
		t.Fatalf("AddClass: %v", err)
	}
	if _, _, err := s.AddClass(class); err != nil {
		t.Fatalf("AddClass again: %v", err)
	}
	// Generated ids are deterministic, so the second expansion merges.
	if got := len(s.Events()); got != 2 {
		t.Fatalf("got %d events, want 2", got)
	}
}

func TestToggleTaskCompletedAt(t *testing.T) {
	s, _ := newTestStore(t)
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	task, err := s.AddTask(model.Task{Text: "Read chapter 4", Tag: "study"})
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}

	done, err := s.ToggleTask(task.ID)
	if err != nil {
		t.Fatalf("ToggleTask: %v", err)
	}
	if !done.Completed || done.CompletedAt == nil || !done.CompletedAt.Equal(fixed) {
		t.Fatalf("after first toggle: %+v", done)
	}

	undone, err := s.ToggleTask(task.ID)
	if err != nil {
		t.Fatalf("ToggleTask back: %v", err)
	}
	if undone.Completed || undone.CompletedAt != nil {
		t.Fatalf("after second toggle: %+v", undone)
	}
	if undone.ID != task.ID || undone.Text != task.Text || undone.Tag != task.Tag {
		t.Fatalf("double toggle changed identity/content: %+v vs %+v", undone, task)
	}
}

func TestUpdateTaskPartial(t *testing.T) {
	s, _ := newTestStore(t)
	task, _ := s.AddTask(model.Task{Text: "Essay draft", Tag: "study", Emoji: "📝"})

	text := "Essay final"
	updated, err := s.UpdateTask(task.ID, TaskUpdate{Text: &text})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if updated.Text != "Essay final" || updated.Tag != "study" || updated.Emoji != "📝" {
		t.Fatalf("partial update touched other fields: %+v", updated)
	}
}

func TestSubscribersNotifiedSynchronously(t *testing.T) {
	s, _ := newTestStore(t)
	calls := 0
	s.Subscribe(func() { calls++ })

	s.AddEvent(testEvent("One"))
	if calls != 1 {
		t.Fatalf("calls = %d after one mutation", calls)
	}
	task, _ := s.AddTask(model.Task{Text: "x", Tag: "personal"})
	s.ToggleTask(task.ID)
	if calls != 3 {
		t.Fatalf("calls = %d after three mutations", calls)
	}
}

func TestCorruptBlobLoadsEmpty(t *testing.T) {
	repo := storage.NewMemory()
	repo.Seed(storage.KindTasks, []byte("{not json"))
	repo.Seed(storage.KindEvents, []byte("[{\"id\":\"ok\",\"title\":\"Kept\",\"category\":\"personal\",\"start\":\"2024-05-01T09:00:00Z\",\"end\":\"2024-05-01T10:00:00Z\"}]"))

	s := New(context.Background(), repo, time.UTC)
	if len(s.Tasks()) != 0 {
		t.Fatal("corrupt tasks must load as empty")
	}
	if got := s.Events(); len(got) != 1 || got[0].ID != "ok" {
		t.Fatalf("valid events must still load: %+v", got)
	}
}

func TestMutationsWriteThrough(t *testing.T) {
	s, repo := newTestStore(t)
	created, _ := s.AddEvent(testEvent("Persisted"))

	data, err := repo.Load(context.Background(), storage.KindEvents)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	var persisted []model.Event
	if err := json.Unmarshal(data, &persisted); err != nil {
		t.Fatalf("persisted blob unparseable: %v", err)
	}
	if len(persisted) != 1 || persisted[0].ID != created.ID {
		t.Fatalf("persisted = %+v", persisted)
	}
}

func TestRemoveMissing(t *testing.T) {
	s, _ := newTestStore(t)
	if err := s.RemoveEvent("nope"); err == nil {
		t.Fatal("expected error removing unknown event")
	}
	if err := s.RemoveTask("nope"); err == nil {
		t.Fatal("expected error removing unknown task")
	}
	if err := s.RemoveClass("nope"); err == nil {
		t.Fatal("expected error removing unknown class")
	}
}
