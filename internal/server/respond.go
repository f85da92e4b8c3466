package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"rokto/pkg/types"
)

type errorResponse struct {
	Message     string            `json:"message"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
}

func (s *Service) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.WithError(err).Error("failed to encode response body")
	}
}

func (s *Service) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, errorResponse{Message: message})
}

func (s *Service) respondFieldErrors(w http.ResponseWriter, message string, fieldErrors map[string]string) {
	s.respondJSON(w, http.StatusBadRequest, errorResponse{Message: message, FieldErrors: fieldErrors})
}

// respondStoreError maps the store's sentinel errors to their HTTP statuses;
// anything unrecognized is a 500 with the detail kept in the log, not the body.
func (s *Service) respondStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, types.ErrUserNotFound):
		s.respondError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, types.ErrRequestNotFound):
		s.respondError(w, http.StatusNotFound, "Donation request not found")
	case errors.Is(err, types.ErrRequestUnavailable):
		s.respondError(w, http.StatusConflict, "request no longer available")
	case errors.Is(err, types.ErrDuplicateTransaction):
		s.respondError(w, http.StatusConflict, "Transaction already recorded")
	case errors.Is(err, types.ErrEmailTaken):
		s.respondError(w, http.StatusConflict, "An account with this email already exists")
	default:
		s.logger.WithError(err).Error("unexpected store error")
		s.respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
