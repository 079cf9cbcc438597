// Package web exposes the planner as a JSON HTTP API.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/rs/cors"

	"chronofy/internal/ai"
	"chronofy/internal/auth"
	"chronofy/internal/config"
	appLog "chronofy/internal/log"
	"chronofy/internal/store"
	"chronofy/internal/timer"
)

// Server wires the store, view engine, exporters, AI client, focus
// timer and auth service behind an http.Handler.
type Server struct {
	cfg   *config.Config
	store *store.Store
	timer *timer.Timer
	ai    *ai.Client
	auth  *auth.Service
	loc   *time.Location
	mux   *http.ServeMux

	// extractMu guards in-flight syllabus extractions per user so a
	// pending call cannot be submitted twice.
	extractMu  sync.Mutex
	extracting map[string]bool
}

// NewServer constructs the API server.
func NewServer(cfg *config.Config, st *store.Store, tm *timer.Timer, aiClient *ai.Client, authSvc *auth.Service) *Server {
	s := &Server{
		cfg:        cfg,
		store:      st,
		timer:      tm,
		ai:         aiClient,
		auth:       authSvc,
		loc:        st.Location(),
		mux:        http.NewServeMux(),
		extracting: make(map[string]bool),
	}
	s.registerRoutes()
	return s
}

// Handler returns the full middleware chain: CORS on the outside, then
// session auth for everything except /health and the auth endpoints.
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.mux
	h = s.authGate(h)

	c := cors.New(cors.Options{
		AllowedOrigins:   s.corsOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})
	return c.Handler(h)
}

func (s *Server) corsOrigins() []string {
	if len(s.cfg.CORSOrigins) == 0 {
		return []string{"*"}
	}
	return s.cfg.CORSOrigins
}

// authGate applies the session middleware to all routes except /health
// and /api/auth/*.
func (s *Server) authGate(next http.Handler) http.Handler {
	protected := s.auth.Middleware(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/health",
			r.URL.Path == "/api/auth/signup",
			r.URL.Path == "/api/auth/login":
			next.ServeHTTP(w, r)
		default:
			protected.ServeHTTP(w, r)
		}
	})
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)

	s.mux.HandleFunc("GET /api/events", s.handleListEvents)
	s.mux.HandleFunc("POST /api/events", s.handleCreateEvent)
	s.mux.HandleFunc("PUT /api/events/{id}", s.handleUpdateEvent)
	s.mux.HandleFunc("DELETE /api/events/{id}", s.handleDeleteEvent)

	s.mux.HandleFunc("GET /api/tasks", s.handleListTasks)
	s.mux.HandleFunc("POST /api/tasks", s.handleCreateTask)
	s.mux.HandleFunc("PUT /api/tasks/{id}", s.handleUpdateTask)
	s.mux.HandleFunc("POST /api/tasks/{id}/toggle", s.handleToggleTask)
	s.mux.HandleFunc("DELETE /api/tasks/{id}", s.handleDeleteTask)

	s.mux.HandleFunc("GET /api/classes", s.handleListClasses)
	s.mux.HandleFunc("POST /api/classes", s.handleCreateClass)
	s.mux.HandleFunc("DELETE /api/classes/{id}", s.handleDeleteClass)

	s.mux.HandleFunc("GET /api/calendar", s.handleCalendar)
	s.mux.HandleFunc("GET /api/export/calendar", s.handleExportCalendar)
	s.mux.HandleFunc("GET /api/export/tasks", s.handleExportTasks)

	s.mux.HandleFunc("POST /api/ai/extract", s.handleExtract)
	s.mux.HandleFunc("POST /api/ai/apply", s.handleApplyExtracted)
	s.mux.HandleFunc("POST /api/ai/chat", s.handleChat)

	s.mux.HandleFunc("GET /api/timer", s.handleTimerState)
	s.mux.HandleFunc("POST /api/timer/start", s.handleTimerStart)
	s.mux.HandleFunc("POST /api/timer/pause", s.handleTimerPause)
	s.mux.HandleFunc("POST /api/timer/reset", s.handleTimerReset)
	s.mux.HandleFunc("POST /api/timer/mode", s.handleTimerMode)

	s.mux.HandleFunc("GET /api/stats", s.handleStats)

	s.mux.HandleFunc("POST /api/auth/signup", s.handleSignUp)
	s.mux.HandleFunc("POST /api/auth/login", s.handleLogIn)
	s.mux.HandleFunc("POST /api/auth/logout", s.handleLogOut)
	s.mux.HandleFunc("GET /api/auth/me", s.handleMe)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// Serve runs the HTTP server until ctx is canceled, then shuts down
// gracefully.
func Serve(ctx context.Context, s *Server) error {
	srv := &http.Server{
		Addr:    s.cfg.Listen,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		appLog.Info("http server listening", "listen", "http://"+s.cfg.Listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		err := <-errCh
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		appLog.Error("failed to write JSON response", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	type errResp struct {
		Error string `json:"error"`
	}
	writeJSON(w, status, errResp{Error: msg})
}

// decodeJSON reads a request body into v with a strict decoder.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
