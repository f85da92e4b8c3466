package server

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"rokto/pkg/types"
)

func seedRequest(f *fixtures, requester *types.User) *types.DonationRequest {
	request := &types.DonationRequest{
		RequesterID:    requester.ID,
		RequesterName:  requester.Name,
		RequesterEmail: requester.Email,

		RecipientName:     "Rahim Uddin",
		RecipientDistrict: "Dhaka",
		RecipientUpazila:  "Savar",
		HospitalName:      "Enam Medical College",
		FullAddress:       "Savar Bus Stand, Dhaka",
		BloodGroup:        types.BloodGroupBPos,
		DonationDate:      "2026-09-15",
		DonationTime:      "10:30",
		RequestMessage:    "Urgent need for surgery tomorrow morning.",

		DonationStatus: types.DonationStatusPending,
	}
	f.requests.add(request)
	return request
}

func TestCreateRequestStartsPending(t *testing.T) {
	f := newTestService(t)
	requester := seedUser(f, "Karim", "karim@example.com", types.RoleDonor, types.UserStatusActive)
	cookie := sessionCookie(t, f.service, requester)

	rec := doJSON(t, f.service.Handler(), http.MethodPost, "/donation-requests", validCreatePayload(), cookie)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created types.DonationRequest
	decodeBody(t, rec, &created)

	if created.DonationStatus != types.DonationStatusPending {
		t.Errorf("expected pending status, got %q", created.DonationStatus)
	}
	if created.DonorID != nil {
		t.Errorf("expected no donor on a new request, got %q", *created.DonorID)
	}
	if created.RequesterID != requester.ID {
		t.Errorf("expected requester id %q, got %q", requester.ID, created.RequesterID)
	}
	if created.RequesterName != requester.Name || created.RequesterEmail != requester.Email {
		t.Errorf("requester snapshot not taken: %q %q", created.RequesterName, created.RequesterEmail)
	}
}

func TestCreateRequestMissingFields(t *testing.T) {
	f := newTestService(t)
	requester := seedUser(f, "Karim", "karim@example.com", types.RoleDonor, types.UserStatusActive)
	cookie := sessionCookie(t, f.service, requester)

	payload := validCreatePayload()
	delete(payload, "hospitalName")
	delete(payload, "requestMessage")

	rec := doJSON(t, f.service.Handler(), http.MethodPost, "/donation-requests", payload, cookie)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Message     string            `json:"message"`
		FieldErrors map[string]string `json:"fieldErrors"`
	}
	decodeBody(t, rec, &body)

	if body.Message != "Missing required fields: hospitalName, requestMessage" {
		t.Errorf("unexpected message: %q", body.Message)
	}
	if body.FieldErrors["hospitalName"] != "Hospital Name is required" {
		t.Errorf("unexpected field error: %q", body.FieldErrors["hospitalName"])
	}
	if f.requests.createCalls != 0 {
		t.Errorf("store should not have been called, got %d creates", f.requests.createCalls)
	}
}

func TestCreateRequestBlockedUser(t *testing.T) {
	f := newTestService(t)
	blocked := seedUser(f, "Blocked", "blocked@example.com", types.RoleDonor, types.UserStatusBlocked)
	cookie := sessionCookie(t, f.service, blocked)

	rec := doJSON(t, f.service.Handler(), http.MethodPost, "/donation-requests", validCreatePayload(), cookie)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "You are blocked and cannot create requests") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
	if f.requests.createCalls != 0 {
		t.Errorf("store should not have been called, got %d creates", f.requests.createCalls)
	}
}

func TestDonateAssignsDonor(t *testing.T) {
	f := newTestService(t)
	requester := seedUser(f, "Karim", "karim@example.com", types.RoleDonor, types.UserStatusActive)
	donor := seedUser(f, "Jamil", "jamil@example.com", types.RoleDonor, types.UserStatusActive)
	request := seedRequest(f, requester)

	cookie := sessionCookie(t, f.service, donor)
	rec := doJSON(t, f.service.Handler(), http.MethodPut, "/donation-requests/"+request.ID+"/donate", nil, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var updated types.DonationRequest
	decodeBody(t, rec, &updated)

	if updated.DonationStatus != types.DonationStatusInProgress {
		t.Errorf("expected inprogress, got %q", updated.DonationStatus)
	}
	if updated.DonorID == nil || *updated.DonorID != donor.ID {
		t.Errorf("donor not recorded: %+v", updated.DonorID)
	}
	if updated.DonorName == nil || *updated.DonorName != donor.Name {
		t.Errorf("donor name snapshot missing")
	}
	if updated.DonorEmail == nil || *updated.DonorEmail != donor.Email {
		t.Errorf("donor email snapshot missing")
	}
}

func TestDonateLoserGetsConflict(t *testing.T) {
	f := newTestService(t)
	requester := seedUser(f, "Karim", "karim@example.com", types.RoleDonor, types.UserStatusActive)
	first := seedUser(f, "Jamil", "jamil@example.com", types.RoleDonor, types.UserStatusActive)
	second := seedUser(f, "Nasir", "nasir@example.com", types.RoleDonor, types.UserStatusActive)
	request := seedRequest(f, requester)

	rec := doJSON(t, f.service.Handler(), http.MethodPut, "/donation-requests/"+request.ID+"/donate", nil, sessionCookie(t, f.service, first))
	if rec.Code != http.StatusOK {
		t.Fatalf("first donate: expected 200, got %d", rec.Code)
	}

	rec = doJSON(t, f.service.Handler(), http.MethodPut, "/donation-requests/"+request.ID+"/donate", nil, sessionCookie(t, f.service, second))
	if rec.Code != http.StatusConflict {
		t.Fatalf("second donate: expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "request no longer available") {
		t.Errorf("unexpected conflict body: %s", rec.Body.String())
	}

	// The loser must not have overwritten the winner.
	stored, err := f.requests.Request(context.Background(), request.ID)
	if err != nil {
		t.Fatalf("failed to reload request: %v", err)
	}
	if stored.DonorID == nil || *stored.DonorID != first.ID {
		t.Errorf("winner's donor assignment was clobbered: %+v", stored.DonorID)
	}
}

func TestDonateNonPendingRequest(t *testing.T) {
	f := newTestService(t)
	requester := seedUser(f, "Karim", "karim@example.com", types.RoleDonor, types.UserStatusActive)
	donor := seedUser(f, "Jamil", "jamil@example.com", types.RoleDonor, types.UserStatusActive)
	request := seedRequest(f, requester)
	request.DonationStatus = types.DonationStatusCanceled

	rec := doJSON(t, f.service.Handler(), http.MethodPut, "/donation-requests/"+request.ID+"/donate", nil, sessionCookie(t, f.service, donor))
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestDonateUnknownRequest(t *testing.T) {
	f := newTestService(t)
	donor := seedUser(f, "Jamil", "jamil@example.com", types.RoleDonor, types.UserStatusActive)

	rec := doJSON(t, f.service.Handler(), http.MethodPut, "/donation-requests/nope/donate", nil, sessionCookie(t, f.service, donor))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestSetStatusAuthorization(t *testing.T) {
	f := newTestService(t)
	requester := seedUser(f, "Karim", "karim@example.com", types.RoleDonor, types.UserStatusActive)
	volunteer := seedUser(f, "Vol", "vol@example.com", types.RoleVolunteer, types.UserStatusActive)
	admin := seedUser(f, "Admin", "admin@example.com", types.RoleAdmin, types.UserStatusActive)
	stranger := seedUser(f, "Stranger", "stranger@example.com", types.RoleDonor, types.UserStatusActive)
	assigned := seedUser(f, "Assigned", "assigned@example.com", types.RoleDonor, types.UserStatusActive)

	cases := []struct {
		name string
		user *types.User
		want int
	}{
		{"requester may set status", requester, http.StatusOK},
		{"volunteer may set status", volunteer, http.StatusOK},
		{"admin may set status", admin, http.StatusOK},
		{"stranger may not", stranger, http.StatusForbidden},
		{"assigned donor may not", assigned, http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			request := seedRequest(f, requester)
			// Commit the "assigned" user as donor so that case exercises the
			// donor-is-not-requester rule.
			if err := f.requests.Donate(context.Background(), request.ID, assigned); err != nil {
				t.Fatalf("failed to assign donor: %v", err)
			}

			rec := doJSON(t, f.service.Handler(), http.MethodPut, "/donation-requests/"+request.ID+"/status",
				map[string]string{"status": "done"}, sessionCookie(t, f.service, tc.user))
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d: %s", tc.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestSetStatusReopensTerminalRequest(t *testing.T) {
	f := newTestService(t)
	requester := seedUser(f, "Karim", "karim@example.com", types.RoleDonor, types.UserStatusActive)
	donor := seedUser(f, "Jamil", "jamil@example.com", types.RoleDonor, types.UserStatusActive)
	request := seedRequest(f, requester)

	if err := f.requests.Donate(context.Background(), request.ID, donor); err != nil {
		t.Fatalf("failed to assign donor: %v", err)
	}

	cookie := sessionCookie(t, f.service, requester)
	rec := doJSON(t, f.service.Handler(), http.MethodPut, "/donation-requests/"+request.ID+"/status", map[string]string{"status": "done"}, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	// There is no transition rule on this path; done back to pending is
	// accepted and the donor assignment stays in place.
	rec = doJSON(t, f.service.Handler(), http.MethodPut, "/donation-requests/"+request.ID+"/status", map[string]string{"status": "pending"}, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 reopening, got %d: %s", rec.Code, rec.Body.String())
	}

	var updated types.DonationRequest
	decodeBody(t, rec, &updated)
	if updated.DonationStatus != types.DonationStatusPending {
		t.Errorf("expected pending, got %q", updated.DonationStatus)
	}
	if updated.DonorID == nil || *updated.DonorID != donor.ID {
		t.Errorf("donor assignment should survive status edits")
	}
}

func TestSetStatusInvalidValue(t *testing.T) {
	f := newTestService(t)
	requester := seedUser(f, "Karim", "karim@example.com", types.RoleDonor, types.UserStatusActive)
	request := seedRequest(f, requester)

	rec := doJSON(t, f.service.Handler(), http.MethodPut, "/donation-requests/"+request.ID+"/status",
		map[string]string{"status": "finished"}, sessionCookie(t, f.service, requester))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestDeleteRequestAuthorization(t *testing.T) {
	f := newTestService(t)
	requester := seedUser(f, "Karim", "karim@example.com", types.RoleDonor, types.UserStatusActive)
	volunteer := seedUser(f, "Vol", "vol@example.com", types.RoleVolunteer, types.UserStatusActive)
	admin := seedUser(f, "Admin", "admin@example.com", types.RoleAdmin, types.UserStatusActive)
	assigned := seedUser(f, "Assigned", "assigned@example.com", types.RoleDonor, types.UserStatusActive)

	cases := []struct {
		name string
		user *types.User
		want int
	}{
		{"requester may delete", requester, http.StatusNoContent},
		{"admin may delete", admin, http.StatusNoContent},
		{"volunteer may not delete", volunteer, http.StatusForbidden},
		{"assigned donor may not delete", assigned, http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			request := seedRequest(f, requester)
			if err := f.requests.Donate(context.Background(), request.ID, assigned); err != nil {
				t.Fatalf("failed to assign donor: %v", err)
			}

			rec := doJSON(t, f.service.Handler(), http.MethodDelete, "/donation-requests/"+request.ID, nil, sessionCookie(t, f.service, tc.user))
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d: %s", tc.want, rec.Code, rec.Body.String())
			}

			_, err := f.requests.Request(context.Background(), request.ID)
			deleted := err != nil
			if tc.want == http.StatusNoContent && !deleted {
				t.Error("request should be gone")
			}
			if tc.want == http.StatusForbidden && deleted {
				t.Error("request should still exist")
			}
		})
	}
}

func TestListRequestsFilters(t *testing.T) {
	f := newTestService(t)
	alice := seedUser(f, "Alice", "alice@example.com", types.RoleDonor, types.UserStatusActive)
	bob := seedUser(f, "Bob", "bob@example.com", types.RoleDonor, types.UserStatusActive)

	seedRequest(f, alice)
	inProgress := seedRequest(f, alice)
	seedRequest(f, bob)

	if err := f.requests.Donate(context.Background(), inProgress.ID, bob); err != nil {
		t.Fatalf("failed to assign donor: %v", err)
	}

	cases := []struct {
		name   string
		target string
		want   int
	}{
		{"no filter returns everything", "/donation-requests", 3},
		{"status filter", "/donation-requests?status=pending", 2},
		{"requester filter", "/donation-requests?requesterId=" + alice.ID, 2},
		{"donor filter", "/donation-requests?donorId=" + bob.ID, 1},
		{"combined", "/donation-requests?status=pending&requesterId=" + alice.ID, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, f.service.Handler(), http.MethodGet, tc.target, nil, nil)
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
			}

			var listed []*types.DonationRequest
			decodeBody(t, rec, &listed)
			if len(listed) != tc.want {
				t.Errorf("expected %d requests, got %d", tc.want, len(listed))
			}
		})
	}
}

func TestListRequestsInvalidStatus(t *testing.T) {
	f := newTestService(t)

	rec := doJSON(t, f.service.Handler(), http.MethodGet, "/donation-requests?status=bogus", nil, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestGetRequestPublic(t *testing.T) {
	f := newTestService(t)
	requester := seedUser(f, "Karim", "karim@example.com", types.RoleDonor, types.UserStatusActive)
	request := seedRequest(f, requester)

	rec := doJSON(t, f.service.Handler(), http.MethodGet, "/donation-requests/"+request.ID, nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 without auth, got %d", rec.Code)
	}

	rec = doJSON(t, f.service.Handler(), http.MethodGet, "/donation-requests/missing", nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
