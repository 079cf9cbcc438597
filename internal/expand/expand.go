// Package expand turns a recurring class definition into concrete
// calendar events, one per matching calendar day of the semester.
package expand

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"chronofy/internal/dateutil"
	appLog "chronofy/internal/log"
	"chronofy/internal/model"
)

var rruleWeekdays = map[model.Weekday]rrule.Weekday{
	model.Sun: rrule.SU,
	model.Mon: rrule.MO,
	model.Tue: rrule.TU,
	model.Wed: rrule.WE,
	model.Thu: rrule.TH,
	model.Fri: rrule.FR,
	model.Sat: rrule.SA,
}

// Expand generates one event per (class weekday) x (calendar day in the
// semester range), in loc. Event IDs are a deterministic composite of
// the class id and the occurrence date, so re-expanding the same class
// produces the same set and merging by id cannot duplicate.
//
// Degenerate input (semester end before start, empty day set, bad
// dates/times) yields an empty slice rather than an error: the form
// layer validates, the expander just refuses to misbehave.
func Expand(class model.ClassInfo, loc *time.Location) []model.Event {
	if loc == nil {
		loc = time.Local
	}

	semStart, err := dateutil.ParseCivilDate(class.SemesterStart)
	if err != nil {
		appLog.Error("expand: bad semester start", err, "class_id", class.ID)
		return nil
	}
	semEnd, err := dateutil.ParseCivilDate(class.SemesterEnd)
	if err != nil {
		appLog.Error("expand: bad semester end", err, "class_id", class.ID)
		return nil
	}
	if semEnd.Before(semStart) {
		return nil
	}

	startHour, startMin, err := dateutil.ParseClock(class.StartTime)
	if err != nil {
		appLog.Error("expand: bad class start time", err, "class_id", class.ID)
		return nil
	}
	endHour, endMin, err := dateutil.ParseClock(class.EndTime)
	if err != nil {
		appLog.Error("expand: bad class end time", err, "class_id", class.ID)
		return nil
	}

	byDay := make([]rrule.Weekday, 0, len(class.Days))
	for _, d := range class.Days {
		wd, ok := rruleWeekdays[d]
		if !ok {
			appLog.Error("expand: unknown weekday", fmt.Errorf("weekday %q", d), "class_id", class.ID)
			continue
		}
		byDay = append(byDay, wd)
	}
	if len(byDay) == 0 {
		return nil
	}

	// The rule runs on civil dates anchored at the class start time in
	// the display location. UNTIL is inclusive in rrule, matching the
	// inclusive semester end.
	r, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Dtstart:   semStart.At(startHour, startMin, loc),
		Until:     semEnd.At(startHour, startMin, loc),
		Byweekday: byDay,
	})
	if err != nil {
		appLog.Error("expand: rrule construction failed", err, "class_id", class.ID)
		return nil
	}

	occurrences := r.All()
	events := make([]model.Event, 0, len(occurrences))
	for _, occ := range occurrences {
		day := dateutil.CivilDateOf(occ.In(loc))
		events = append(events, model.Event{
			ID:          EventID(class.ID, day),
			Title:       class.Name,
			Category:    model.CategoryClass,
			Start:       day.At(startHour, startMin, loc),
			End:         day.At(endHour, endMin, loc),
			Description: fmt.Sprintf("Instructor: %s\nLocation: %s", class.Instructor, class.Location),
			ClassID:     class.ID,
		})
	}
	return events
}

// EventID builds the deterministic id for one generated occurrence.
// The "::" separator cannot appear in store-assigned ids, so a manually
// created event can never collide with a generated one.
func EventID(classID string, day dateutil.CivilDate) string {
	return classID + "::" + day.String()
}
