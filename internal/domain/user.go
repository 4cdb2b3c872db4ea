package domain

import "time"

// UserRole represents the role of a platform user
type UserRole string

const (
	RolePatient UserRole = "PATIENT"
	RoleDoctor  UserRole = "DOCTOR"
)

// VerificationStatus represents the moderation status of a doctor profile
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "PENDING"
	VerificationVerified VerificationStatus = "VERIFIED"
	VerificationRejected VerificationStatus = "REJECTED"
)

// User represents a platform user as seen by the scheduling core.
// The scheduling core reads role, verification status and credits;
// everything else belongs to the identity subsystem.
type User struct {
	ID                 int64
	Name               string
	Email              string
	Role               UserRole
	Specialty          *string
	VerificationStatus VerificationStatus
	Credits            int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsVerifiedDoctor returns true if the user is a doctor approved for bookings
func (u *User) IsVerifiedDoctor() bool {
	return u.Role == RoleDoctor && u.VerificationStatus == VerificationVerified
}

// IsPatient returns true if the user books appointments as a patient
func (u *User) IsPatient() bool {
	return u.Role == RolePatient
}

// HasCreditsFor returns true if the balance covers the given cost
func (u *User) HasCreditsFor(cost int) bool {
	return u.Credits >= cost
}
