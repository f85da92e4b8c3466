package server

import (
	"net/http"
	"testing"

	"rokto/pkg/types"
)

func TestCreatePaymentIntent(t *testing.T) {
	f := newTestService(t)
	user := seedUser(f, "Karim", "karim@example.com", types.RoleDonor, types.UserStatusActive)
	cookie := sessionCookie(t, f.service, user)

	rec := doJSON(t, f.service.Handler(), http.MethodPost, "/payment/create-payment-intent", map[string]float64{"amount": 50}, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body map[string]string
	decodeBody(t, rec, &body)
	if body["clientSecret"] != "pi_test_secret" {
		t.Errorf("unexpected client secret: %q", body["clientSecret"])
	}
	if f.payments.calls != 1 || f.payments.amount != 50 {
		t.Errorf("payment client not called as expected: calls=%d amount=%v", f.payments.calls, f.payments.amount)
	}
}

func TestCreatePaymentIntentRejectsNonPositiveAmount(t *testing.T) {
	f := newTestService(t)
	user := seedUser(f, "Karim", "karim@example.com", types.RoleDonor, types.UserStatusActive)
	cookie := sessionCookie(t, f.service, user)

	for _, amount := range []float64{0, -10} {
		rec := doJSON(t, f.service.Handler(), http.MethodPost, "/payment/create-payment-intent", map[string]float64{"amount": amount}, cookie)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("amount %v: expected 400, got %d", amount, rec.Code)
		}
	}
	if f.payments.calls != 0 {
		t.Errorf("payment client should not have been called, got %d calls", f.payments.calls)
	}
}

func TestRecordFundSnapshotsDonorName(t *testing.T) {
	f := newTestService(t)
	user := seedUser(f, "Karim Ahmed", "karim@example.com", types.RoleDonor, types.UserStatusActive)
	cookie := sessionCookie(t, f.service, user)

	rec := doJSON(t, f.service.Handler(), http.MethodPost, "/payment/funds",
		map[string]any{"fundAmount": 25.5, "transactionId": "pi_123"}, cookie)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var fund types.Fund
	decodeBody(t, rec, &fund)
	if fund.DonorName != "Karim Ahmed" {
		t.Errorf("expected donor name from session user, got %q", fund.DonorName)
	}
	if fund.FundAmount != 25.5 {
		t.Errorf("expected amount 25.5, got %v", fund.FundAmount)
	}
}

func TestRecordFundDuplicateTransaction(t *testing.T) {
	f := newTestService(t)
	user := seedUser(f, "Karim", "karim@example.com", types.RoleDonor, types.UserStatusActive)
	cookie := sessionCookie(t, f.service, user)

	payload := map[string]any{"fundAmount": 25.5, "transactionId": "pi_123"}

	rec := doJSON(t, f.service.Handler(), http.MethodPost, "/payment/funds", payload, cookie)
	if rec.Code != http.StatusCreated {
		t.Fatalf("first record: expected 201, got %d", rec.Code)
	}

	rec = doJSON(t, f.service.Handler(), http.MethodPost, "/payment/funds", payload, cookie)
	if rec.Code != http.StatusConflict {
		t.Fatalf("second record: expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRecordFundValidation(t *testing.T) {
	f := newTestService(t)
	user := seedUser(f, "Karim", "karim@example.com", types.RoleDonor, types.UserStatusActive)
	cookie := sessionCookie(t, f.service, user)

	cases := []struct {
		name    string
		payload map[string]any
	}{
		{"zero amount", map[string]any{"fundAmount": 0, "transactionId": "pi_123"}},
		{"negative amount", map[string]any{"fundAmount": -5, "transactionId": "pi_123"}},
		{"missing transaction id", map[string]any{"fundAmount": 10}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, f.service.Handler(), http.MethodPost, "/payment/funds", tc.payload, cookie)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestListFundsRequiresAuth(t *testing.T) {
	f := newTestService(t)

	rec := doJSON(t, f.service.Handler(), http.MethodGet, "/payment/funds", nil, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	user := seedUser(f, "Karim", "karim@example.com", types.RoleDonor, types.UserStatusActive)
	rec = doJSON(t, f.service.Handler(), http.MethodGet, "/payment/funds", nil, sessionCookie(t, f.service, user))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var funds []*types.Fund
	decodeBody(t, rec, &funds)
	if len(funds) != 0 {
		t.Errorf("expected no funds yet, got %d", len(funds))
	}
}
