package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/meetscribe/scribe/internal/meeting"
	"github.com/meetscribe/scribe/internal/orchestrator"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error(context.Background(), "encode response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	if status >= http.StatusInternalServerError {
		s.logger.Error(r.Context(), "%s %s: %s", r.Method, r.URL.Path, msg)
	} else {
		s.logger.Warn(r.Context(), "%s %s: %s", r.Method, r.URL.Path, msg)
	}
	s.writeJSON(w, status, errorResponse{Error: msg})
}

// writeDomainError maps pipeline errors onto HTTP statuses: bad input is the
// caller's fault, illegal transitions are conflicts, provider failures are
// upstream errors, persistence failures are ours.
func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		stateErr   *orchestrator.StateError
		inputErr   *meeting.InvalidInputError
		transErr   *meeting.TranscriptionError
		summErr    *meeting.SummarizationError
		persistErr *meeting.PersistenceError
	)
	switch {
	case errors.As(err, &inputErr):
		s.writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.As(err, &stateErr):
		s.writeError(w, r, http.StatusConflict, err.Error())
	case errors.As(err, &transErr), errors.As(err, &summErr):
		s.writeError(w, r, http.StatusBadGateway, err.Error())
	case errors.As(err, &persistErr):
		s.writeError(w, r, http.StatusInternalServerError, err.Error())
	default:
		s.writeError(w, r, http.StatusInternalServerError, err.Error())
	}
}
