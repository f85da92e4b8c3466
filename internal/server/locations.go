package server

import (
	"net/http"
	"strings"

	"rokto/pkg/types"
)

func (s *Service) handleDistricts(w http.ResponseWriter, r *http.Request) {
	districts, err := s.locations.Districts(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("failed to list districts")
		s.respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	s.respondJSON(w, http.StatusOK, districts)
}

// handleUpazilas returns all upazilas, or the subset for one district when
// district_id is given. The narrowing is the same derived computation the
// cascading selectors use.
func (s *Service) handleUpazilas(w http.ResponseWriter, r *http.Request) {
	upazilas, err := s.locations.Upazilas(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("failed to list upazilas")
		s.respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if districtID := strings.TrimSpace(r.URL.Query().Get("district_id")); districtID != "" {
		upazilas = types.FilterUpazilas(districtID, upazilas)
	}

	s.respondJSON(w, http.StatusOK, upazilas)
}
