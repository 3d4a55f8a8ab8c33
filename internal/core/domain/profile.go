package domain

import "time"

// Role is the staff role stored on a profile row.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleDoctor       Role = "doctor"
	RoleReceptionist Role = "receptionist"
	RoleCashier      Role = "cashier"
	RoleAuditor      Role = "auditor" // external reviewer, read-only, time-boxed
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RoleReceptionist, RoleCashier, RoleAuditor:
		return true
	}
	return false
}

// CanSubmitCashRegisters reports whether the role may declare a shift.
func (r Role) CanSubmitCashRegisters() bool {
	return r == RoleAdmin || r == RoleReceptionist || r == RoleCashier
}

// CanReviewCashRegisters reports whether the role may approve, reject or void shifts.
func (r Role) CanReviewCashRegisters() bool {
	return r == RoleAdmin
}

// CanSeeAllCashRegisters reports whether the role may read other cashiers' shifts.
func (r Role) CanSeeAllCashRegisters() bool {
	return r == RoleAdmin || r == RoleAuditor
}

// IsReadOnly reports whether the role is restricted to reads.
func (r Role) IsReadOnly() bool {
	return r == RoleAuditor
}

// Profile is a staff member's account and role.
type Profile struct {
	UserID       string     `json:"userID"`
	Email        string     `json:"email"`
	FullName     string     `json:"fullName"`
	Phone        string     `json:"phone"`
	Role         Role       `json:"role"`
	IsActive     bool       `json:"isActive"`
	PasswordHash string     `json:"-"`
	LastSignInAt *time.Time `json:"lastSignInAt,omitempty"`
	AuditFields
}

// RevokedToken is a signed-out access token, kept until it would have expired anyway.
type RevokedToken struct {
	TokenID   string
	UserID    string
	RevokedAt time.Time
	ExpiresAt time.Time
}

// Actor is the authenticated caller a service acts on behalf of.
type Actor struct {
	UserID string
	Role   Role
}

// Session is a validated access token bound to the profile it was issued for.
type Session struct {
	TokenID   string    `json:"tokenID"`
	ExpiresAt time.Time `json:"expiresAt"`
	Profile   Profile   `json:"profile"`
}

// Actor returns the caller identity carried by the session.
func (s Session) Actor() Actor {
	return Actor{UserID: s.Profile.UserID, Role: s.Profile.Role}
}
