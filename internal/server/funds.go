package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"rokto/pkg/types"
)

type createPaymentIntentPayload struct {
	Amount float64 `json:"amount"`
}

type recordFundPayload struct {
	FundAmount    float64 `json:"fundAmount"`
	TransactionID string  `json:"transactionId"`
}

func (s *Service) handleCreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var payload createPaymentIntentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	if payload.Amount <= 0 {
		s.respondError(w, http.StatusBadRequest, "amount must be positive")
		return
	}

	clientSecret, err := s.payments.CreateIntent(r.Context(), payload.Amount)
	if err != nil {
		s.logger.WithError(err).Error("failed to create payment intent")
		s.respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]string{"clientSecret": clientSecret})
}

// handleRecordFund writes the fund row after the client has confirmed the
// payment. The donor name is snapshotted from the session user; the
// transaction id is unique so a double submit cannot record twice.
func (s *Service) handleRecordFund(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r.Context())
	if err != nil {
		s.respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var payload recordFundPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	if payload.FundAmount <= 0 {
		s.respondError(w, http.StatusBadRequest, "amount must be positive")
		return
	}
	if strings.TrimSpace(payload.TransactionID) == "" {
		s.respondError(w, http.StatusBadRequest, "transactionId is required")
		return
	}

	fund := &types.Fund{
		DonorName:     user.Name,
		FundAmount:    payload.FundAmount,
		TransactionID: payload.TransactionID,
	}

	if err := s.funds.Create(r.Context(), fund); err != nil {
		if errors.Is(err, types.ErrDuplicateTransaction) {
			s.respondStoreError(w, err)
			return
		}
		s.logger.WithError(err).Error("failed to record fund")
		s.respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	s.respondJSON(w, http.StatusCreated, fund)
}

func (s *Service) handleListFunds(w http.ResponseWriter, r *http.Request) {
	funds, err := s.funds.Funds(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("failed to list funds")
		s.respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	s.respondJSON(w, http.StatusOK, funds)
}
