package web

import (
	"net/http"

	"chronofy/internal/model"
)

func (s *Server) handleListClasses(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Classes())
}

// classCreated is the response for a successful class creation: the
// stored definition plus how many calendar events it generated.
type classCreated struct {
	Class           model.ClassInfo `json:"class"`
	GeneratedEvents int             `json:"generated_events"`
}

func (s *Server) handleCreateClass(w http.ResponseWriter, r *http.Request) {
	var c model.ClassInfo
	if err := decodeJSON(r, &c); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	c.ID = ""
	created, generated, err := s.store.AddClass(c)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, classCreated{
		Class:           created,
		GeneratedEvents: len(generated),
	})
}

func (s *Server) handleDeleteClass(w http.ResponseWriter, r *http.Request) {
	if err := s.store.RemoveClass(r.PathValue("id")); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
