package types

import "time"

type DonationStatus string

const (
	DonationStatusPending    DonationStatus = "pending"
	DonationStatusInProgress DonationStatus = "inprogress"
	DonationStatusDone       DonationStatus = "done"
	DonationStatusCanceled   DonationStatus = "canceled"
)

func (s DonationStatus) Valid() bool {
	switch s {
	case DonationStatusPending, DonationStatusInProgress, DonationStatusDone, DonationStatusCanceled:
		return true
	}
	return false
}

// DonationRequest is a request for blood. Requester and donor identity are
// snapshots taken when the request was created / when the donor committed;
// they are never re-resolved against the users table, so later profile edits
// leave historical records untouched.
type DonationRequest struct {
	ID             string `db:"id" json:"id"`
	RequesterID    string `db:"requester_id" json:"requesterId"`
	RequesterName  string `db:"requester_name" json:"requesterName"`
	RequesterEmail string `db:"requester_email" json:"requesterEmail"`

	RecipientName     string     `db:"recipient_name" json:"recipientName"`
	RecipientDistrict string     `db:"recipient_district" json:"recipientDistrict"`
	RecipientUpazila  string     `db:"recipient_upazila" json:"recipientUpazila"`
	HospitalName      string     `db:"hospital_name" json:"hospitalName"`
	FullAddress       string     `db:"full_address" json:"fullAddress"`
	BloodGroup        BloodGroup `db:"blood_group" json:"bloodGroup"`
	DonationDate      string     `db:"donation_date" json:"donationDate"`
	DonationTime      string     `db:"donation_time" json:"donationTime"`
	RequestMessage    string     `db:"request_message" json:"requestMessage"`

	DonationStatus DonationStatus `db:"donation_status" json:"donationStatus"`

	DonorID    *string `db:"donor_id" json:"donorId"`
	DonorName  *string `db:"donor_name" json:"donorName"`
	DonorEmail *string `db:"donor_email" json:"donorEmail"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// CanSetStatus is the authorization rule for the direct status-edit path:
// the original requester, any volunteer, or an admin. It intentionally
// carries no transition rule on top of that; any of the four values may be
// written at any time, including out of done/canceled. Only the donate path
// is guarded.
func (d *DonationRequest) CanSetStatus(u *User) bool {
	return u.Role.IsVolunteer() || d.RequesterID == u.ID
}

// CanDelete admits admins and the owning requester. An assigned donor cannot
// delete the request they committed to.
func (d *DonationRequest) CanDelete(u *User) bool {
	return u.Role.IsAdmin() || d.RequesterID == u.ID
}

// RequestFilter narrows a listing. Zero value means no filter; the store
// combines whichever fields are set.
type RequestFilter struct {
	Status      DonationStatus `form:"status"`
	RequesterID string         `form:"requesterId"`
	DonorID     string         `form:"donorId"`
}
