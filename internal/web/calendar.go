package web

import (
	"net/http"
	"strings"
	"time"

	"chronofy/internal/export"
	"chronofy/internal/model"
	"chronofy/internal/stats"
	"chronofy/internal/view"
)

// handleCalendar computes a renderable layout.
//
// GET /api/calendar?view=month|week|day&date=YYYY-MM-DD&types=class,exam
//   - view:  granularity (default month)
//   - date:  reference date (default today in the display timezone)
//   - types: optional category filter applied before layout
func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	ref := time.Now().In(s.loc)
	if d := q.Get("date"); d != "" {
		parsed, err := time.ParseInLocation("2006-01-02", d, s.loc)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
			return
		}
		ref = parsed
	}

	events := s.store.Events()
	if t := q.Get("types"); t != "" {
		var cats []model.Category
		for _, raw := range strings.Split(t, ",") {
			c := model.Category(strings.TrimSpace(raw))
			if !c.Valid() {
				writeError(w, http.StatusBadRequest, "unknown category "+string(c))
				return
			}
			cats = append(cats, c)
		}
		events = view.FilterByCategory(events, cats)
	}

	cfg := view.Config{
		Location:  s.loc,
		WeekStart: s.weekStart(),
		Now:       time.Now(),
	}

	switch q.Get("view") {
	case "", "month":
		writeJSON(w, http.StatusOK, view.Month(ref, events, cfg))
	case "week":
		writeJSON(w, http.StatusOK, view.Week(ref, events, cfg))
	case "day":
		writeJSON(w, http.StatusOK, view.Day(ref, events, cfg))
	default:
		writeError(w, http.StatusBadRequest, "unknown view, want month|week|day")
	}
}

func (s *Server) weekStart() time.Weekday {
	if s.cfg.WeekStart == "monday" {
		return time.Monday
	}
	return time.Sunday
}

func (s *Server) handleExportCalendar(w http.ResponseWriter, _ *http.Request) {
	body := export.Calendar(s.store.Events(), time.Now())
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="chronofy_calendar.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

func (s *Server) handleExportTasks(w http.ResponseWriter, _ *http.Request) {
	body := export.TaskList(s.store.Tasks())
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="chronofy_todos.txt"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

// statsResponse bundles everything the dashboard shows.
type statsResponse struct {
	TotalCompleted int             `json:"total_completed"`
	Streak         int             `json:"streak"`
	Badges         []stats.Badge   `json:"badges"`
	Matrix         stats.Quadrants `json:"matrix"`
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	tasks := s.store.Tasks()
	completed := stats.Completed(tasks)
	streak := stats.Streak(tasks, time.Now(), s.loc)
	writeJSON(w, http.StatusOK, statsResponse{
		TotalCompleted: completed,
		Streak:         streak,
		Badges:         stats.Badges(completed, streak),
		Matrix:         stats.Matrix(tasks),
	})
}
