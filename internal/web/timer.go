package web

import (
	"net/http"

	"chronofy/internal/timer"
)

func (s *Server) handleTimerState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.timer.Snapshot())
}

func (s *Server) handleTimerStart(w http.ResponseWriter, _ *http.Request) {
	s.timer.Start()
	writeJSON(w, http.StatusOK, s.timer.Snapshot())
}

func (s *Server) handleTimerPause(w http.ResponseWriter, _ *http.Request) {
	s.timer.Pause()
	writeJSON(w, http.StatusOK, s.timer.Snapshot())
}

func (s *Server) handleTimerReset(w http.ResponseWriter, _ *http.Request) {
	s.timer.Reset()
	writeJSON(w, http.StatusOK, s.timer.Snapshot())
}

func (s *Server) handleTimerMode(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Mode timer.Mode `json:"mode"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	switch body.Mode {
	case timer.ModeWork, timer.ModeShortBreak, timer.ModeLongBreak:
	default:
		writeError(w, http.StatusBadRequest, "unknown mode")
		return
	}
	s.timer.SwitchMode(body.Mode)
	writeJSON(w, http.StatusOK, s.timer.Snapshot())
}
