// Package stats derives productivity statistics from tasks: completion
// totals, the daily completion streak, earned badges and the Eisenhower
// quadrant partition. All functions are pure.
package stats

import (
	"time"

	"chronofy/internal/dateutil"
	"chronofy/internal/model"
)

// Completed counts completed tasks.
func Completed(tasks []model.Task) int {
	n := 0
	for _, t := range tasks {
		if t.Completed {
			n++
		}
	}
	return n
}

// Streak counts consecutive local calendar days with at least one task
// completion, ending today or, if nothing was completed today yet,
// yesterday.
func Streak(tasks []model.Task, now time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.Local
	}

	days := make(map[dateutil.CivilDate]bool)
	for _, t := range tasks {
		if t.Completed && t.CompletedAt != nil {
			days[dateutil.CivilDateOf(t.CompletedAt.In(loc))] = true
		}
	}

	day := dateutil.CivilDateOf(now.In(loc))
	if !days[day] {
		day = day.AddDays(-1)
	}

	streak := 0
	for days[day] {
		streak++
		day = day.AddDays(-1)
	}
	return streak
}

// Badge is one achievement.
type Badge struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Earned      bool   `json:"earned"`
}

// Badges evaluates the fixed badge set against totals.
func Badges(totalCompleted, streak int) []Badge {
	type threshold struct {
		name, desc string
		earned     bool
	}
	defs := []threshold{
		{"First Step", "Complete 1 task", totalCompleted >= 1},
		{"Task Rabbit", "Complete 10 tasks", totalCompleted >= 10},
		{"Productivity Pro", "Complete 50 tasks", totalCompleted >= 50},
		{"Warming Up", "3-day streak", streak >= 3},
		{"On Fire!", "7-day streak", streak >= 7},
		{"Unstoppable", "30-day streak", streak >= 30},
	}
	out := make([]Badge, 0, len(defs))
	for _, d := range defs {
		out = append(out, Badge{Name: d.name, Description: d.desc, Earned: d.earned})
	}
	return out
}

// Quadrants is the Eisenhower matrix partition of open tasks.
type Quadrants struct {
	UrgentImportant       []model.Task `json:"urgent_important"`
	NotUrgentImportant    []model.Task `json:"not_urgent_important"`
	UrgentNotImportant    []model.Task `json:"urgent_not_important"`
	NotUrgentNotImportant []model.Task `json:"not_urgent_not_important"`
}

// Matrix partitions incomplete tasks by tag: "urgent" is do-first,
// "study"/"group" are schedule, "delegate" is delegate, and everything
// else lands in the eliminate quadrant.
func Matrix(tasks []model.Task) Quadrants {
	var q Quadrants
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		switch t.Tag {
		case "urgent":
			q.UrgentImportant = append(q.UrgentImportant, t)
		case "study", "group":
			q.NotUrgentImportant = append(q.NotUrgentImportant, t)
		case "delegate":
			q.UrgentNotImportant = append(q.UrgentNotImportant, t)
		default:
			q.NotUrgentNotImportant = append(q.NotUrgentNotImportant, t)
		}
	}
	return q
}
