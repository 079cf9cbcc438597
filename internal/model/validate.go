package model

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks an event coming from user input. Generated events are
// produced by the expander and do not pass through here.
func (e Event) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return errors.New("event title is required")
	}
	if !e.Category.Valid() {
		return fmt.Errorf("unknown event category %q", e.Category)
	}
	if e.Start.IsZero() || e.End.IsZero() {
		return errors.New("event start and end are required")
	}
	if e.End.Before(e.Start) {
		return errors.New("event end is before start")
	}
	return nil
}

// Validate checks a task submitted via the quick-add or task form.
func (t Task) Validate() error {
	if strings.TrimSpace(t.Text) == "" {
		return errors.New("task text is required")
	}
	return nil
}

// Validate checks a class definition before it is expanded. The form
// layer is expected to prevent most of these, but the store must never
// accept a class the expander cannot handle.
func (c ClassInfo) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("class name is required")
	}
	if len(c.Days) == 0 {
		return errors.New("class must have at least one day selected")
	}
	seen := make(map[Weekday]bool, len(c.Days))
	for _, d := range c.Days {
		if !d.Valid() {
			return fmt.Errorf("unknown weekday %q", d)
		}
		if seen[d] {
			return fmt.Errorf("duplicate weekday %q", d)
		}
		seen[d] = true
	}
	if c.StartTime == "" || c.EndTime == "" {
		return errors.New("class start and end times are required")
	}
	if c.EndTime <= c.StartTime {
		return errors.New("class end time must be after start time")
	}
	if c.SemesterStart == "" || c.SemesterEnd == "" {
		return errors.New("semester start and end dates are required")
	}
	return nil
}
