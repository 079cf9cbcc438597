package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"chronofy/internal/dateutil"
	appLog "chronofy/internal/log"
	"chronofy/internal/model"
)

const extractPrompt = `Analyze the following syllabus content and extract all academic events.
Today is %s. Pay close attention to dates, days of the week, times, and event types.
Respond with ONLY a JSON array, no prose and no code fences. Each element must be an
object with these keys:
  "eventName": full name of the event, like "PSY 101 Lecture" or "Midterm Exam"
  "date": the event date in YYYY-MM-DD format
  "time": the start time in 24-hour HH:MM format
  "eventType": one of "class", "deadline", "exam", "office-hours"
If there are no events, respond with [].`

// ExtractEvents asks the model to pull structured events out of raw
// syllabus text. A response that is empty or fails to parse as the
// expected array means "no events found", not an error.
func (c *Client) ExtractEvents(ctx context.Context, text string, today dateutil.CivilDate) ([]model.ExtractedEvent, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	prompt := fmt.Sprintf(extractPrompt, today)
	raw, err := c.complete(ctx, []Message{
		{Role: "user", Content: prompt + "\n\nSyllabus Text:\n" + text},
	})
	if err != nil {
		return nil, err
	}
	return parseExtracted(raw), nil
}

// ExtractEventsFromFile is like ExtractEvents for an uploaded file
// (e.g. a syllabus PDF or photo), sent inline as a data URI.
func (c *Client) ExtractEventsFromFile(ctx context.Context, mimeType string, data []byte, today dateutil.CivilDate) ([]model.ExtractedEvent, error) {
	if len(data) == 0 {
		return nil, nil
	}
	prompt := fmt.Sprintf(extractPrompt, today)
	raw, err := c.complete(ctx, []Message{
		{Role: "user", Content: []contentPart{
			{Type: "text", Text: prompt},
			filePart(mimeType, data),
		}},
	})
	if err != nil {
		return nil, err
	}
	return parseExtracted(raw), nil
}

// parseExtracted leniently parses the model output. Code fences are
// stripped if present despite the instructions; anything that still
// fails to parse yields nil.
func parseExtracted(raw string) []model.ExtractedEvent {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var events []model.ExtractedEvent
	if err := json.Unmarshal([]byte(raw), &events); err != nil {
		appLog.Error("ai: unparseable extraction output, treating as empty", err, "len", len(raw))
		return nil
	}
	return events
}

// ToEvents converts extracted records into calendar events in loc.
// Records with an unparseable date are skipped; a missing or bad time
// means midnight. Duration defaults to one hour, and unknown event
// types fall back to the personal category. IDs are left empty for the
// store to assign.
func ToEvents(extracted []model.ExtractedEvent, loc *time.Location) []model.Event {
	events := make([]model.Event, 0, len(extracted))
	for _, rec := range extracted {
		day, err := dateutil.ParseCivilDate(rec.Date)
		if err != nil {
			appLog.Error("ai: skipping record with bad date", err, "event", rec.EventName)
			continue
		}
		hour, minute, err := dateutil.ParseClock(rec.Time)
		if err != nil {
			hour, minute = 0, 0
		}

		category := model.Category(rec.EventType)
		if !category.Valid() {
			category = model.CategoryPersonal
		}

		start := day.At(hour, minute, loc)
		events = append(events, model.Event{
			Title:    rec.EventName,
			Category: category,
			Start:    start,
			End:      start.Add(time.Hour),
		})
	}
	return events
}
