package web

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"chronofy/internal/ai"
	"chronofy/internal/auth"
	"chronofy/internal/dateutil"
	appLog "chronofy/internal/log"
	"chronofy/internal/model"
)

const maxUploadBytes = 10 << 20 // 10 MiB syllabus upload cap

// handleExtract runs syllabus extraction on raw text (JSON body) or an
// uploaded file (multipart form, field "file"). While one extraction is
// pending for a user, a second submission is rejected rather than
// queued; remote failures surface as errors and are never retried.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	if !s.ai.Enabled() {
		writeError(w, http.StatusServiceUnavailable, "AI features are not configured")
		return
	}

	userID := requestUserID(r)
	if !s.beginExtract(userID) {
		writeError(w, http.StatusConflict, "an extraction is already in progress")
		return
	}
	defer s.endExtract(userID)

	today := dateutil.CivilDateOf(time.Now().In(s.loc))

	var (
		extracted []model.ExtractedEvent
		err       error
	)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		extracted, err = s.extractFromUpload(r, today)
	} else {
		var body struct {
			Text string `json:"text"`
		}
		if derr := decodeJSON(r, &body); derr != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}
		extracted, err = s.ai.ExtractEvents(r.Context(), body.Text, today)
	}
	if err != nil {
		appLog.Error("syllabus extraction failed", err)
		writeError(w, http.StatusBadGateway, "failed to analyze syllabus: the AI service may be unavailable")
		return
	}

	if extracted == nil {
		extracted = []model.ExtractedEvent{}
	}
	writeJSON(w, http.StatusOK, extracted)
}

func (s *Server) extractFromUpload(r *http.Request, today dateutil.CivilDate) ([]model.ExtractedEvent, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, err
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, errors.New("missing file field")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		return nil, err
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return s.ai.ExtractEventsFromFile(r.Context(), mimeType, data, today)
}

// handleApplyExtracted converts reviewed extraction records into stored
// calendar events.
func (s *Server) handleApplyExtracted(w http.ResponseWriter, r *http.Request) {
	var records []model.ExtractedEvent
	if err := decodeJSON(r, &records); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	events := ai.ToEvents(records, s.loc)
	s.store.AddEvents(events)
	writeJSON(w, http.StatusOK, map[string]int{"added": len(events)})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if !s.ai.Enabled() {
		writeError(w, http.StatusServiceUnavailable, "AI features are not configured")
		return
	}

	var body struct {
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if len(body.Messages) == 0 {
		writeError(w, http.StatusBadRequest, "messages are required")
		return
	}

	history := make([]ai.Message, 0, len(body.Messages))
	for _, m := range body.Messages {
		role := m.Role
		if role != "assistant" {
			role = "user"
		}
		history = append(history, ai.Message{Role: role, Content: m.Content})
	}

	reply, err := s.ai.Chat(r.Context(), history)
	if err != nil {
		appLog.Error("assistant chat failed", err)
		writeError(w, http.StatusBadGateway, "the assistant is unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

func requestUserID(r *http.Request) string {
	if u, ok := auth.UserFromContext(r.Context()); ok {
		return u.ID
	}
	return "anonymous"
}

func (s *Server) beginExtract(userID string) bool {
	s.extractMu.Lock()
	defer s.extractMu.Unlock()
	if s.extracting[userID] {
		return false
	}
	s.extracting[userID] = true
	return true
}

func (s *Server) endExtract(userID string) {
	s.extractMu.Lock()
	defer s.extractMu.Unlock()
	delete(s.extracting, userID)
}
