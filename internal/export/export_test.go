package export

import (
	"strings"
	"testing"
	"time"

	"chronofy/internal/model"
)

func TestCalendarVEvent(t *testing.T) {
	events := []model.Event{{
		ID:          "ev1",
		Title:       "Midterm",
		Category:    model.CategoryExam,
		Start:       time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		End:         time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		Description: "Chapters 1-5",
	}}
	now := time.Date(2024, 4, 30, 12, 0, 0, 0, time.UTC)

	out := Calendar(events, now)

	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"PRODID:-//Chronofy//Smart Student Agenda//EN",
		"BEGIN:VEVENT",
		"UID:ev1@chronofy.app",
		"DTSTART:20240501T090000Z",
		"DTEND:20240501T100000Z",
		"SUMMARY:Midterm",
		"DESCRIPTION:Chapters 1-5",
		"END:VEVENT",
		"END:VCALENDAR",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestCalendarConvertsToUTC(t *testing.T) {
	eastern := time.FixedZone("UTC-5", -5*3600)
	events := []model.Event{{
		ID:       "ev2",
		Title:    "Lab",
		Category: model.CategoryClass,
		Start:    time.Date(2024, 5, 1, 9, 0, 0, 0, eastern),
		End:      time.Date(2024, 5, 1, 10, 0, 0, 0, eastern),
	}}

	out := Calendar(events, time.Now())
	if !strings.Contains(out, "DTSTART:20240501T140000Z") {
		t.Fatalf("start not converted to UTC:\n%s", out)
	}
}

func TestCalendarEmpty(t *testing.T) {
	out := Calendar(nil, time.Now())
	if !strings.Contains(out, "BEGIN:VCALENDAR") || strings.Contains(out, "BEGIN:VEVENT") {
		t.Fatalf("empty calendar wrong:\n%s", out)
	}
}

func TestTaskList(t *testing.T) {
	done := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		{ID: "1", Text: "Read chapter 4", Emoji: "📖", Tag: "study"},
		{ID: "2", Text: "Buy groceries", Tag: "personal", Completed: true, CompletedAt: &done},
	}

	out := TaskList(tasks)

	if !strings.HasPrefix(out, "Chronofy To-Do List\n\n") {
		t.Fatalf("header wrong:\n%s", out)
	}
	if !strings.Contains(out, "- [ ] 📖 Read chapter 4 (study)") {
		t.Errorf("open task line wrong:\n%s", out)
	}
	if !strings.Contains(out, "- [x] Buy groceries (personal)") {
		t.Errorf("completed task line wrong:\n%s", out)
	}
	if strings.Index(out, "To-Do:") > strings.Index(out, "Completed:") {
		t.Error("To-Do section must come before Completed")
	}
}

func TestTaskListNoEmoji(t *testing.T) {
	out := TaskList([]model.Task{{Text: "Plain", Tag: "work"}})
	if !strings.Contains(out, "- [ ] Plain (work)") {
		t.Fatalf("line with no emoji wrong:\n%s", out)
	}
	if strings.Contains(out, "  Plain") {
		t.Fatal("missing emoji must not leave a double space")
	}
}
