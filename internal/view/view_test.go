package view

import (
	"testing"
	"time"

	"chronofy/internal/model"
)

func eventAt(id, title string, start, end time.Time) model.Event {
	return model.Event{
		ID:       id,
		Title:    title,
		Category: model.CategoryPersonal,
		Start:    start,
		End:      end,
	}
}

func TestMonthGridPadsToFullWeeks(t *testing.T) {
	// January 2024: the 1st is a Monday, the 31st a Wednesday. With a
	// Sunday week start the grid must run Dec 31 through Feb 3.
	ref := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	grid := Month(ref, nil, Config{Location: time.UTC, WeekStart: time.Sunday})

	if len(grid.Weeks) != 5 {
		t.Fatalf("got %d weeks, want 5", len(grid.Weeks))
	}
	first := grid.Weeks[0][0]
	if first.Date.String() != "2023-12-31" {
		t.Fatalf("grid starts %s, want 2023-12-31", first.Date)
	}
	if first.InMonth {
		t.Fatal("Dec 31 must be flagged out-of-month")
	}
	last := grid.Weeks[4][6]
	if last.Date.String() != "2024-02-03" {
		t.Fatalf("grid ends %s, want 2024-02-03", last.Date)
	}

	if !grid.Weeks[0][1].InMonth || grid.Weeks[0][1].Date.String() != "2024-01-01" {
		t.Fatalf("Jan 1 cell wrong: %+v", grid.Weeks[0][1])
	}
}

func TestMonthGridMondayWeekStart(t *testing.T) {
	ref := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	grid := Month(ref, nil, Config{Location: time.UTC, WeekStart: time.Monday})
	if got := grid.Weeks[0][0].Date.String(); got != "2024-01-01" {
		t.Fatalf("grid starts %s, want 2024-01-01", got)
	}
}

func TestMonthCellOverflow(t *testing.T) {
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	var events []model.Event
	for i := 0; i < 5; i++ {
		start := day.Add(time.Duration(9+i) * time.Hour)
		events = append(events, eventAt(string(rune('a'+i)), "E", start, start.Add(time.Hour)))
	}

	grid := Month(day, events, Config{Location: time.UTC, WeekStart: time.Sunday})

	var cell MonthCell
	for _, week := range grid.Weeks {
		for _, c := range week {
			if c.Date.String() == "2024-01-10" {
				cell = c
			}
		}
	}
	if len(cell.Events) != MaxEventsPerMonthCell {
		t.Fatalf("cell shows %d events, want %d", len(cell.Events), MaxEventsPerMonthCell)
	}
	if cell.Overflow != 2 {
		t.Fatalf("overflow = %d, want 2", cell.Overflow)
	}
}

func TestMonthUsesLocalDaySemantics(t *testing.T) {
	eastern := time.FixedZone("UTC-5", -5*3600)
	// 02:00 UTC on Jan 2 is 21:00 on Jan 1 in UTC-5; the event belongs
	// on the Jan 1 cell, not Jan 2.
	ev := eventAt("late", "Late show",
		time.Date(2024, 1, 2, 2, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 2, 3, 0, 0, 0, time.UTC))

	ref := time.Date(2024, 1, 15, 0, 0, 0, 0, eastern)
	grid := Month(ref, []model.Event{ev}, Config{Location: eastern, WeekStart: time.Sunday})

	for _, week := range grid.Weeks {
		for _, c := range week {
			switch c.Date.String() {
			case "2024-01-01":
				if len(c.Events) != 1 {
					t.Fatalf("Jan 1 cell has %d events, want 1", len(c.Events))
				}
			case "2024-01-02":
				if len(c.Events) != 0 {
					t.Fatalf("Jan 2 cell has %d events, want 0", len(c.Events))
				}
			}
		}
	}
}

func TestWeekPositioning(t *testing.T) {
	ref := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC) // a Wednesday
	ev := eventAt("e1", "Seminar",
		time.Date(2024, 1, 10, 9, 30, 0, 0, time.UTC),
		time.Date(2024, 1, 10, 10, 15, 0, 0, time.UTC))

	layout := Week(ref, []model.Event{ev}, Config{Location: time.UTC, WeekStart: time.Sunday})

	if got := layout.Days[0].Date.String(); got != "2024-01-07" {
		t.Fatalf("week starts %s, want 2024-01-07", got)
	}
	wed := layout.Days[3]
	if len(wed.Blocks) != 1 {
		t.Fatalf("wednesday has %d blocks, want 1", len(wed.Blocks))
	}
	b := wed.Blocks[0]
	if b.Top != 570 {
		t.Errorf("top = %d, want 570 (09:30)", b.Top)
	}
	if b.Height != 45 {
		t.Errorf("height = %d, want 45", b.Height)
	}
	if b.Description != "" {
		t.Error("week blocks must not carry descriptions")
	}
}

func TestStableTieBreak(t *testing.T) {
	day := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	first := eventAt("first", "Added first", day, day.Add(time.Hour))
	second := eventAt("second", "Added second", day, day.Add(30*time.Minute))

	layout := Day(day, []model.Event{first, second}, Config{Location: time.UTC, WeekStart: time.Sunday})
	blocks := layout.Day.Blocks
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks", len(blocks))
	}
	if blocks[0].Event.ID != "first" || blocks[1].Event.ID != "second" {
		t.Fatalf("tie-break lost insertion order: %q then %q",
			blocks[0].Event.ID, blocks[1].Event.ID)
	}
}

func TestMinimumBlockHeight(t *testing.T) {
	at := time.Date(2024, 1, 10, 14, 0, 0, 0, time.UTC)
	zero := eventAt("z", "Deadline", at, at)
	layout := Day(at, []model.Event{zero}, Config{Location: time.UTC, WeekStart: time.Sunday})
	if got := layout.Day.Blocks[0].Height; got != MinBlockHeight {
		t.Fatalf("height = %d, want floor %d", got, MinBlockHeight)
	}
}

func TestDayCarriesDescription(t *testing.T) {
	at := time.Date(2024, 1, 10, 14, 0, 0, 0, time.UTC)
	ev := eventAt("d", "Office hours", at, at.Add(time.Hour))
	ev.Description = "Room 204"
	layout := Day(at, []model.Event{ev}, Config{Location: time.UTC, WeekStart: time.Sunday})
	if got := layout.Day.Blocks[0].Description; got != "Room 204" {
		t.Fatalf("description = %q", got)
	}
}

func TestTodayMarking(t *testing.T) {
	now := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)
	layout := Week(now, nil, Config{Location: time.UTC, WeekStart: time.Sunday, Now: now})
	for i, col := range layout.Days {
		want := i == 3 // Wednesday the 10th
		if col.Today != want {
			t.Errorf("day %d Today = %v, want %v", i, col.Today, want)
		}
	}

	// Zero Now marks nothing.
	layout = Week(now, nil, Config{Location: time.UTC, WeekStart: time.Sunday})
	for i, col := range layout.Days {
		if col.Today {
			t.Errorf("day %d marked today with zero Now", i)
		}
	}
}

func TestFilterByCategory(t *testing.T) {
	at := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	events := []model.Event{
		{ID: "1", Category: model.CategoryClass, Start: at, End: at},
		{ID: "2", Category: model.CategoryExam, Start: at, End: at},
		{ID: "3", Category: model.CategoryWork, Start: at, End: at},
	}

	got := FilterByCategory(events, []model.Category{model.CategoryExam})
	if len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("filtered = %+v", got)
	}
	if got := FilterByCategory(events, nil); len(got) != 3 {
		t.Fatal("empty filter must pass everything through")
	}
}
