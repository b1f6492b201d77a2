package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meetscribe/scribe/internal/meeting"
	"github.com/meetscribe/scribe/internal/orchestrator"
)

// maxAudioBytes caps an uploaded recording at 512 MiB.
const maxAudioBytes = 512 << 20

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	session := s.manager.Create()
	s.logger.Info(r.Context(), "meeting session created: %s", session.ID)
	s.writeJSON(w, http.StatusCreated, session.Snapshot())
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, session.Snapshot())
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := s.manager.Get(id); !ok {
		s.writeError(w, r, http.StatusNotFound, "unknown meeting session")
		return
	}
	s.manager.Delete(id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, func(session *orchestrator.Session) error { return session.Start() })
}

func (s *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, func(session *orchestrator.Session) error { return session.Pause() })
}

func (s *Server) handleResume(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, func(session *orchestrator.Session) error { return session.Resume() })
}

// handleStop receives the captured audio as the raw request body.
func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	audio, err := io.ReadAll(io.LimitReader(r.Body, maxAudioBytes))
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, "read audio body: "+err.Error())
		return
	}
	if err := session.Stop(audio); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, session.Snapshot())
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	if err := session.Process(r.Context()); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, session.Snapshot())
}

func (s *Server) handleSpeakers(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	var labels meeting.SpeakerMap
	if err := json.NewDecoder(r.Body).Decode(&labels); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "decode speaker labels: "+err.Error())
		return
	}
	if err := session.SetSpeakerLabels(labels); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, session.Snapshot())
}

type saveRequest struct {
	FileName  string `json:"file_name"`
	SendEmail bool   `json:"send_email"`
	Recipient string `json:"recipient"`
}

type saveResponse struct {
	Path       string `json:"path"`
	EmailSent  bool   `json:"email_sent"`
	EmailError string `json:"email_error,omitempty"`
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	var req saveRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, r, http.StatusBadRequest, "decode save request: "+err.Error())
			return
		}
	}

	result, err := session.Save(r.Context(), orchestrator.SaveRequest{
		FileName:  req.FileName,
		SendEmail: req.SendEmail,
		Recipient: req.Recipient,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	resp := saveResponse{Path: result.Path, EmailSent: result.EmailSent}
	if result.EmailErr != nil {
		resp.EmailError = result.EmailErr.Error()
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, func(session *orchestrator.Session) error { return session.Reset() })
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*orchestrator.Session, bool) {
	id := chi.URLParam(r, "id")
	session, ok := s.manager.Get(id)
	if !ok {
		s.writeError(w, r, http.StatusNotFound, "unknown meeting session")
		return nil, false
	}
	return session, true
}

func (s *Server) transition(w http.ResponseWriter, r *http.Request, op func(*orchestrator.Session) error) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	if err := op(session); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, session.Snapshot())
}
