package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"rokto/pkg/types"

	"github.com/alexedwards/flow"
)

type setRolePayload struct {
	Role types.Role `json:"role"`
}

type setUserStatusPayload struct {
	Status types.UserStatus `json:"status"`
}

// handleSearchDonors matches donors on blood group, district, and upazila.
// All three criteria are required; there is no partial search and no
// pagination on this path.
func (s *Service) handleSearchDonors(w http.ResponseWriter, r *http.Request) {
	var params types.DonorSearchParams
	if err := decoder.Decode(&params, r.URL.Query()); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid query parameters")
		return
	}

	fieldErrors := map[string]string{}
	if !params.BloodGroup.Valid() {
		fieldErrors["bloodGroup"] = "Blood group is required."
	}
	if params.District == "" {
		fieldErrors["district"] = "District is required."
	}
	if params.Upazila == "" {
		fieldErrors["upazila"] = "Upazila is required."
	}
	if len(fieldErrors) > 0 {
		s.respondFieldErrors(w, "Blood group, district, and upazila are all required.", fieldErrors)
		return
	}

	donors, err := s.users.SearchDonors(r.Context(), params)
	if err != nil {
		s.logger.WithError(err).Error("failed to search donors")
		s.respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	s.respondJSON(w, http.StatusOK, donors)
}

func (s *Service) handleListUsers(w http.ResponseWriter, r *http.Request) {
	status := types.UserStatus(strings.TrimSpace(r.URL.Query().Get("status")))
	if status != "" && !status.Valid() {
		s.respondError(w, http.StatusBadRequest, "invalid status filter")
		return
	}

	users, err := s.users.Users(r.Context(), status)
	if err != nil {
		s.logger.WithError(err).Error("failed to list users")
		s.respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	s.respondJSON(w, http.StatusOK, users)
}

// handleUpdateProfile writes the owner-mutable fields. The payload struct has
// no email field, so an email in the request body is dropped on decode and
// never reaches the store.
func (s *Service) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r.Context())
	if err != nil {
		s.respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var update types.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	fieldErrors := map[string]string{}
	if strings.TrimSpace(update.Name) == "" {
		fieldErrors["name"] = "Name is required."
	}
	if !update.BloodGroup.Valid() {
		fieldErrors["bloodGroup"] = "Blood group is required."
	}
	if len(fieldErrors) > 0 {
		s.respondFieldErrors(w, "Please fix the highlighted fields.", fieldErrors)
		return
	}

	if err := s.users.UpdateProfile(r.Context(), user.ID, update); err != nil {
		s.respondStoreError(w, err)
		return
	}

	updated, err := s.users.User(r.Context(), user.ID)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, updated)
}

func (s *Service) handleSetUserRole(w http.ResponseWriter, r *http.Request) {
	var payload setRolePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	if !payload.Role.Valid() {
		s.respondError(w, http.StatusBadRequest, "invalid role")
		return
	}

	userID := flow.Param(r.Context(), "id")

	if err := s.users.SetRole(r.Context(), userID, payload.Role); err != nil {
		s.respondStoreError(w, err)
		return
	}

	updated, err := s.users.User(r.Context(), userID)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, updated)
}

func (s *Service) handleSetUserStatus(w http.ResponseWriter, r *http.Request) {
	var payload setUserStatusPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	if !payload.Status.Valid() {
		s.respondError(w, http.StatusBadRequest, "invalid status")
		return
	}

	userID := flow.Param(r.Context(), "id")

	if err := s.users.SetStatus(r.Context(), userID, payload.Status); err != nil {
		s.respondStoreError(w, err)
		return
	}

	updated, err := s.users.User(r.Context(), userID)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, updated)
}
