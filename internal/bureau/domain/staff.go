package domain

import "time"

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleStaff  Role = "staff"
	RoleClient Role = "client"
)

// Scopes granted in access tokens.
const (
	ScopeConsultationsRead  = "consultations:read"
	ScopeConsultationsWrite = "consultations:write"
	ScopeStaffWrite         = "staff:write"
	ScopeClientRead         = "client:read"
)

// Scopes returns the scopes a role carries.
func (r Role) Scopes() []string {
	switch r {
	case RoleAdmin:
		return []string{ScopeConsultationsRead, ScopeConsultationsWrite, ScopeStaffWrite}
	case RoleStaff:
		return []string{ScopeConsultationsRead, ScopeConsultationsWrite}
	case RoleClient:
		return []string{ScopeClientRead}
	}
	return nil
}

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStaff
}

type Staff struct {
	ID           string
	Email        string
	Name         string
	Role         Role
	PasswordHash string
	MFASecret    *string    // base32 TOTP secret, set on enrollment
	MFAEnabledAt *time.Time // set once a code has been verified
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (s Staff) MFAEnabled() bool { return s.MFAEnabledAt != nil }
