package model

import (
	"testing"
	"time"
)

func validEvent() Event {
	return Event{
		Title:    "Midterm",
		Category: CategoryExam,
		Start:    time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		End:      time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestEventValidate(t *testing.T) {
	if err := validEvent().Validate(); err != nil {
		t.Fatalf("valid event rejected: %v", err)
	}

	e := validEvent()
	e.Title = "   "
	if e.Validate() == nil {
		t.Error("blank title accepted")
	}

	e = validEvent()
	e.Category = "homework"
	if e.Validate() == nil {
		t.Error("unknown category accepted")
	}

	e = validEvent()
	e.End = time.Time{}
	if e.Validate() == nil {
		t.Error("zero end accepted")
	}

	e = validEvent()
	e.End = e.Start.Add(-time.Minute)
	if e.Validate() == nil {
		t.Error("end before start accepted")
	}

	// Zero duration is allowed; deadlines are instants.
	e = validEvent()
	e.End = e.Start
	if err := e.Validate(); err != nil {
		t.Errorf("zero-duration event rejected: %v", err)
	}
}

func TestTaskValidate(t *testing.T) {
	if err := (Task{Text: "Read chapter 4"}).Validate(); err != nil {
		t.Fatalf("valid task rejected: %v", err)
	}
	if (Task{Text: "  "}).Validate() == nil {
		t.Error("blank text accepted")
	}
}

func validClass() ClassInfo {
	return ClassInfo{
		Name:          "PSY 101",
		Days:          []Weekday{Mon, Wed},
		StartTime:     "09:00",
		EndTime:       "10:30",
		SemesterStart: "2024-01-01",
		SemesterEnd:   "2024-05-01",
	}
}

func TestClassValidate(t *testing.T) {
	if err := validClass().Validate(); err != nil {
		t.Fatalf("valid class rejected: %v", err)
	}

	c := validClass()
	c.Days = nil
	if c.Validate() == nil {
		t.Error("empty day set accepted")
	}

	c = validClass()
	c.Days = []Weekday{Mon, Mon}
	if c.Validate() == nil {
		t.Error("duplicate day accepted")
	}

	c = validClass()
	c.Days = []Weekday{"monday"}
	if c.Validate() == nil {
		t.Error("unknown day name accepted")
	}

	c = validClass()
	c.EndTime = "09:00"
	if c.Validate() == nil {
		t.Error("end equal to start accepted")
	}

	c = validClass()
	c.SemesterEnd = ""
	if c.Validate() == nil {
		t.Error("missing semester end accepted")
	}
}

func TestCategoryValid(t *testing.T) {
	for _, c := range Categories() {
		if !c.Valid() {
			t.Errorf("%q not valid", c)
		}
	}
	if Category("homework").Valid() {
		t.Error("unknown category reported valid")
	}
}

func TestWeekdayTimeWeekday(t *testing.T) {
	d, ok := Wed.TimeWeekday()
	if !ok || d != time.Wednesday {
		t.Fatalf("wed = %v, %v", d, ok)
	}
	if _, ok := Weekday("wednesday").TimeWeekday(); ok {
		t.Fatal("long name must not map")
	}
}
