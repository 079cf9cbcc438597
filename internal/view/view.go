// Package view computes renderable calendar layouts for month, week and
// day granularities. It is a pure function of (reference date, events,
// config): no store access, no clock access, no side effects. Category
// filtering is the caller's job.
package view

import (
	"sort"
	"time"

	"chronofy/internal/dateutil"
	"chronofy/internal/model"
)

const (
	// MaxEventsPerMonthCell caps how many events a month cell lists
	// before collapsing the rest into an overflow counter.
	MaxEventsPerMonthCell = 3

	// MinBlockHeight keeps zero and near-zero duration events visible
	// and clickable in week/day columns (height unit = minutes).
	MinBlockHeight = 20
)

// Config controls layout computation.
type Config struct {
	// Location is the display timezone; nil means time.Local. All
	// "same day" decisions use local-day semantics in this zone.
	Location *time.Location

	// WeekStart is the first day of a displayed week. The application
	// default is Sunday; Monday is supported for configs that ask.
	WeekStart time.Weekday

	// Now marks the "today" cell/column. The zero value marks nothing,
	// which keeps layout functions deterministic in tests.
	Now time.Time
}

func (c Config) location() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

// MonthCell is one day square of the month grid.
type MonthCell struct {
	Date     dateutil.CivilDate `json:"date"`
	InMonth  bool               `json:"in_month"`
	Today    bool               `json:"today"`
	Events   []model.Event      `json:"events"`
	Overflow int                `json:"overflow"`
}

// MonthGrid is a full-week-aligned grid covering one month, padded with
// leading/trailing days of the adjacent months.
type MonthGrid struct {
	Year  int            `json:"year"`
	Month time.Month     `json:"month"`
	Weeks [][7]MonthCell `json:"weeks"`
}

// Block is one positioned event in a day column. Top is minutes since
// local midnight, Height is the duration in minutes floored at
// MinBlockHeight. Description is filled only for day granularity.
type Block struct {
	Event       model.Event `json:"event"`
	Top         int         `json:"top"`
	Height      int         `json:"height"`
	Description string      `json:"description,omitempty"`
}

// Column is one day of a week or day layout.
type Column struct {
	Date   dateutil.CivilDate `json:"date"`
	Today  bool               `json:"today"`
	Blocks []Block            `json:"blocks"`
}

// WeekLayout is the 7 columns of the week containing the reference date.
type WeekLayout struct {
	Days [7]Column `json:"days"`
}

// DayLayout is a single column plus descriptions.
type DayLayout struct {
	Day Column `json:"day"`
}

// FilterByCategory returns the events whose category is in cats. An
// empty filter returns the input unchanged.
func FilterByCategory(events []model.Event, cats []model.Category) []model.Event {
	if len(cats) == 0 {
		return events
	}
	allowed := make(map[model.Category]bool, len(cats))
	for _, c := range cats {
		allowed[c] = true
	}
	out := make([]model.Event, 0, len(events))
	for _, e := range events {
		if allowed[e.Category] {
			out = append(out, e)
		}
	}
	return out
}

// weekAnchor returns the first day of the week containing day.
func weekAnchor(day dateutil.CivilDate, weekStart time.Weekday) dateutil.CivilDate {
	back := (int(day.Weekday()) - int(weekStart) + 7) % 7
	return day.AddDays(-back)
}

// byDay partitions events by the local calendar day their start falls
// on, preserving input order within each day.
func byDay(events []model.Event, loc *time.Location) map[dateutil.CivilDate][]model.Event {
	m := make(map[dateutil.CivilDate][]model.Event)
	for _, e := range events {
		d := dateutil.CivilDateOf(e.Start.In(loc))
		m[d] = append(m[d], e)
	}
	return m
}

// Month lays out the month containing ref as full weeks from the first
// week-start on or before the 1st through the last week-end on or after
// the final day.
func Month(ref time.Time, events []model.Event, cfg Config) MonthGrid {
	loc := cfg.location()
	ref = ref.In(loc)

	first := dateutil.CivilDate{Year: ref.Year(), Month: ref.Month(), Day: 1}
	last := first.AddDays(daysInMonth(ref.Year(), ref.Month()) - 1)

	gridStart := weekAnchor(first, cfg.WeekStart)
	gridEnd := weekAnchor(last, cfg.WeekStart).AddDays(6)

	perDay := byDay(events, loc)

	var today dateutil.CivilDate
	if !cfg.Now.IsZero() {
		today = dateutil.CivilDateOf(cfg.Now.In(loc))
	}

	grid := MonthGrid{Year: ref.Year(), Month: ref.Month()}
	total := gridStart.DaysUntil(gridEnd) + 1
	for w := 0; w < total/7; w++ {
		var week [7]MonthCell
		for i := 0; i < 7; i++ {
			d := gridStart.AddDays(w*7 + i)
			dayEvents := perDay[d]
			cell := MonthCell{
				Date:    d,
				InMonth: d.Month == ref.Month() && d.Year == ref.Year(),
				Today:   !cfg.Now.IsZero() && d == today,
			}
			if len(dayEvents) > MaxEventsPerMonthCell {
				cell.Events = dayEvents[:MaxEventsPerMonthCell]
				cell.Overflow = len(dayEvents) - MaxEventsPerMonthCell
			} else {
				cell.Events = dayEvents
			}
			week[i] = cell
		}
		grid.Weeks = append(grid.Weeks, week)
	}
	return grid
}

// Week lays out the 7 days of the week containing ref.
func Week(ref time.Time, events []model.Event, cfg Config) WeekLayout {
	loc := cfg.location()
	start := weekAnchor(dateutil.CivilDateOf(ref.In(loc)), cfg.WeekStart)
	perDay := byDay(events, loc)

	var out WeekLayout
	for i := 0; i < 7; i++ {
		d := start.AddDays(i)
		out.Days[i] = column(d, perDay[d], cfg, false)
	}
	return out
}

// Day lays out the single day containing ref. Blocks carry the event
// description so the renderer can show it inline.
func Day(ref time.Time, events []model.Event, cfg Config) DayLayout {
	loc := cfg.location()
	d := dateutil.CivilDateOf(ref.In(loc))
	perDay := byDay(events, loc)
	return DayLayout{Day: column(d, perDay[d], cfg, true)}
}

// column positions one day's events. Sort is by start time ascending;
// the sort is stable so two events starting at the same instant keep
// their insertion order.
func column(d dateutil.CivilDate, events []model.Event, cfg Config, withDescription bool) Column {
	loc := cfg.location()

	sorted := make([]model.Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	col := Column{Date: d}
	if !cfg.Now.IsZero() {
		col.Today = d == dateutil.CivilDateOf(cfg.Now.In(loc))
	}

	for _, e := range sorted {
		start := e.Start.In(loc)
		top := dateutil.MinutesSinceMidnight(start)
		height := int(e.End.Sub(e.Start).Minutes())
		if height < MinBlockHeight {
			height = MinBlockHeight
		}
		b := Block{Event: e, Top: top, Height: height}
		if withDescription {
			b.Description = e.Description
		}
		col.Blocks = append(col.Blocks, b)
	}
	return col
}

func daysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
