// Package export serializes planner state into interchange formats:
// an iCalendar document for events and a plain-text checklist for
// tasks.
//
// Known limitation, inherited deliberately: field values are emitted as
// stored. Characters that are structurally significant in the target
// format (commas, semicolons, raw newlines in titles) are not escaped
// beyond what the underlying serializer does, and can produce malformed
// output.
package export

import (
	"time"

	ical "github.com/arran4/golang-ical"

	"chronofy/internal/model"
)

const (
	productID = "-//Chronofy//Smart Student Agenda//EN"
	uidDomain = "@chronofy.app"
)

// Calendar renders events as a VCALENDAR document, one VEVENT per
// event. UIDs are the event id suffixed with the app domain; DTSTAMP is
// the supplied generation time; DTSTART/DTEND are compact UTC
// ("YYYYMMDDTHHMMSSZ") timestamps.
func Calendar(events []model.Event, now time.Time) string {
	cal := ical.NewCalendar()
	cal.SetProductId(productID)

	for _, e := range events {
		ev := cal.AddEvent(e.ID + uidDomain)
		ev.SetDtStampTime(now.UTC())
		ev.SetStartAt(e.Start.UTC())
		ev.SetEndAt(e.End.UTC())
		ev.SetSummary(e.Title)
		ev.SetDescription(e.Description)
	}

	return cal.Serialize()
}
