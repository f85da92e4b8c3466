package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strings"

	"rokto/pkg/types"

	"github.com/alexedwards/flow"
)

type createRequestPayload struct {
	RecipientName     string           `json:"recipientName"`
	RecipientDistrict string           `json:"recipientDistrict"`
	RecipientUpazila  string           `json:"recipientUpazila"`
	HospitalName      string           `json:"hospitalName"`
	FullAddress       string           `json:"fullAddress"`
	BloodGroup        types.BloodGroup `json:"bloodGroup"`
	DonationDate      string           `json:"donationDate"`
	DonationTime      string           `json:"donationTime"`
	RequestMessage    string           `json:"requestMessage"`
}

type setStatusPayload struct {
	Status types.DonationStatus `json:"status"`
}

func (s *Service) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r.Context())
	if err != nil {
		s.respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	// Blocked users cannot open requests. This is the only operation gated on
	// status; a blocked user can still donate to someone else's request.
	if user.IsBlocked() {
		s.respondError(w, http.StatusForbidden, "You are blocked and cannot create requests")
		return
	}

	var payload createRequestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	fieldErrors := validateCreateRequestInput(payload)
	if len(fieldErrors) > 0 {
		s.respondFieldErrors(w, missingFieldsMessage(fieldErrors), fieldErrors)
		return
	}

	request := &types.DonationRequest{
		RequesterID:    user.ID,
		RequesterName:  user.Name,
		RequesterEmail: user.Email,

		RecipientName:     payload.RecipientName,
		RecipientDistrict: payload.RecipientDistrict,
		RecipientUpazila:  payload.RecipientUpazila,
		HospitalName:      payload.HospitalName,
		FullAddress:       payload.FullAddress,
		BloodGroup:        payload.BloodGroup,
		DonationDate:      payload.DonationDate,
		DonationTime:      payload.DonationTime,
		RequestMessage:    payload.RequestMessage,
	}

	if err := s.requests.Create(r.Context(), request); err != nil {
		s.logger.WithError(err).Error("failed to create donation request")
		s.respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	s.respondJSON(w, http.StatusCreated, request)
}

func (s *Service) handleListRequests(w http.ResponseWriter, r *http.Request) {
	var filter types.RequestFilter
	if err := decoder.Decode(&filter, r.URL.Query()); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid query parameters")
		return
	}

	if filter.Status != "" && !filter.Status.Valid() {
		s.respondError(w, http.StatusBadRequest, "invalid status filter")
		return
	}

	requests, err := s.requests.Requests(r.Context(), filter)
	if err != nil {
		s.logger.WithError(err).Error("failed to list donation requests")
		s.respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	s.respondJSON(w, http.StatusOK, requests)
}

func (s *Service) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	requestID := flow.Param(r.Context(), "id")

	request, err := s.requests.Request(r.Context(), requestID)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, request)
}

// handleDonate commits the acting user as the donor on a pending request.
// The winner of a concurrent race is decided by the store's conditional
// update; the loser gets a Conflict and the request is left untouched.
func (s *Service) handleDonate(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r.Context())
	if err != nil {
		s.respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	requestID := flow.Param(r.Context(), "id")

	if _, err := s.requests.Request(r.Context(), requestID); err != nil {
		s.respondStoreError(w, err)
		return
	}

	if err := s.requests.Donate(r.Context(), requestID, user); err != nil {
		if errors.Is(err, types.ErrRequestUnavailable) {
			s.respondStoreError(w, err)
			return
		}
		s.logger.WithError(err).WithField("request_id", requestID).Error("failed to commit donor")
		s.respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	updated, err := s.requests.Request(r.Context(), requestID)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, updated)
}

// handleSetRequestStatus is the management dropdown path: requester,
// volunteer, or admin may write any of the four statuses at any time. It
// deliberately carries no transition validation on top of the role check.
func (s *Service) handleSetRequestStatus(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r.Context())
	if err != nil {
		s.respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var payload setStatusPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	if !payload.Status.Valid() {
		s.respondError(w, http.StatusBadRequest, "invalid status")
		return
	}

	requestID := flow.Param(r.Context(), "id")

	request, err := s.requests.Request(r.Context(), requestID)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	if !request.CanSetStatus(user) {
		s.respondError(w, http.StatusForbidden, "Forbidden")
		return
	}

	if err := s.requests.SetStatus(r.Context(), requestID, payload.Status); err != nil {
		s.respondStoreError(w, err)
		return
	}

	updated, err := s.requests.Request(r.Context(), requestID)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, updated)
}

func (s *Service) handleDeleteRequest(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r.Context())
	if err != nil {
		s.respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	requestID := flow.Param(r.Context(), "id")

	request, err := s.requests.Request(r.Context(), requestID)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	if !request.CanDelete(user) {
		s.respondError(w, http.StatusForbidden, "Forbidden")
		return
	}

	if err := s.requests.Delete(r.Context(), requestID); err != nil {
		s.logger.WithError(err).WithField("request_id", requestID).Error("failed to delete request")
		s.respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func validateCreateRequestInput(payload createRequestPayload) map[string]string {
	errs := map[string]string{}

	if strings.TrimSpace(payload.RecipientName) == "" {
		errs["recipientName"] = "Recipient Name is required"
	}
	if strings.TrimSpace(payload.HospitalName) == "" {
		errs["hospitalName"] = "Hospital Name is required"
	}
	if !payload.BloodGroup.Valid() {
		errs["bloodGroup"] = "Blood Group is required"
	}
	if strings.TrimSpace(payload.DonationDate) == "" {
		errs["donationDate"] = "Date is required"
	}
	if strings.TrimSpace(payload.DonationTime) == "" {
		errs["donationTime"] = "Time is required"
	}
	if strings.TrimSpace(payload.RecipientDistrict) == "" {
		errs["recipientDistrict"] = "District is required"
	}
	if strings.TrimSpace(payload.RecipientUpazila) == "" {
		errs["recipientUpazila"] = "Upazila is required"
	}
	if strings.TrimSpace(payload.FullAddress) == "" {
		errs["fullAddress"] = "Address is required"
	}
	if strings.TrimSpace(payload.RequestMessage) == "" {
		errs["requestMessage"] = "Message is required"
	}

	return errs
}

func missingFieldsMessage(fieldErrors map[string]string) string {
	fields := make([]string, 0, len(fieldErrors))
	for field := range fieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return "Missing required fields: " + strings.Join(fields, ", ")
}
