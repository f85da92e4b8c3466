package types

import "time"

type Role string

const (
	RoleDonor     Role = "donor"
	RoleVolunteer Role = "volunteer"
	RoleAdmin     Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleDonor, RoleVolunteer, RoleAdmin:
		return true
	}
	return false
}

// IsVolunteer reports whether the role carries volunteer capability.
// Admins pass every volunteer gate.
func (r Role) IsVolunteer() bool {
	return r == RoleVolunteer || r == RoleAdmin
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

type UserStatus string

const (
	UserStatusActive  UserStatus = "active"
	UserStatusBlocked UserStatus = "blocked"
)

func (s UserStatus) Valid() bool {
	return s == UserStatusActive || s == UserStatusBlocked
}

type BloodGroup string

const (
	BloodGroupAPos  BloodGroup = "A+"
	BloodGroupANeg  BloodGroup = "A-"
	BloodGroupBPos  BloodGroup = "B+"
	BloodGroupBNeg  BloodGroup = "B-"
	BloodGroupABPos BloodGroup = "AB+"
	BloodGroupABNeg BloodGroup = "AB-"
	BloodGroupOPos  BloodGroup = "O+"
	BloodGroupONeg  BloodGroup = "O-"
)

var BloodGroups = []BloodGroup{
	BloodGroupAPos, BloodGroupANeg,
	BloodGroupBPos, BloodGroupBNeg,
	BloodGroupABPos, BloodGroupABNeg,
	BloodGroupOPos, BloodGroupONeg,
}

func (b BloodGroup) Valid() bool {
	for _, g := range BloodGroups {
		if b == g {
			return true
		}
	}
	return false
}

type User struct {
	ID           string     `db:"id" json:"id"`
	Name         string     `db:"name" json:"name"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	BloodGroup   BloodGroup `db:"blood_group" json:"bloodGroup"`
	District     string     `db:"district" json:"district"`
	Upazila      string     `db:"upazila" json:"upazila"`
	Avatar       string     `db:"avatar" json:"avatar"`
	Role         Role       `db:"role" json:"role"`
	Status       UserStatus `db:"status" json:"status"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updatedAt"`
}

func (u *User) IsBlocked() bool {
	return u.Status == UserStatusBlocked
}

// ProfileUpdate carries the only user fields the owner may change. Email is
// deliberately absent: it is immutable after registration no matter what the
// client submits.
type ProfileUpdate struct {
	Name       string     `json:"name"`
	BloodGroup BloodGroup `json:"bloodGroup"`
	District   string     `json:"district"`
	Upazila    string     `json:"upazila"`
	Avatar     string     `json:"avatar"`
}

// DonorSearchParams are the donor search criteria. All three are required;
// matching is exact and case-sensitive against stored values.
type DonorSearchParams struct {
	BloodGroup BloodGroup `form:"bloodGroup"`
	District   string     `form:"district"`
	Upazila    string     `form:"upazila"`
}
