package models

// Role defines the access level of a sewadar account
type Role string

const (
	RoleSewadar  Role = "SEWADAR"
	RoleIncharge Role = "INCHARGE"
	RoleAdmin    Role = "ADMIN"
)

// IsValid reports whether the role is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleSewadar, RoleIncharge, RoleAdmin:
		return true
	}
	return false
}

// Program lifecycle statuses
const (
	ProgramStatusScheduled = "scheduled"
	ProgramStatusActive    = "active"
	ProgramStatusCompleted = "completed"
	ProgramStatusCancelled = "cancelled"
)

// IsValidProgramStatus reports whether s is a known program status
func IsValidProgramStatus(s string) bool {
	switch s {
	case ProgramStatusScheduled, ProgramStatusActive, ProgramStatusCompleted, ProgramStatusCancelled:
		return true
	}
	return false
}

// Application statuses
const (
	ApplicationStatusPending       = "PENDING"
	ApplicationStatusApproved      = "APPROVED"
	ApplicationStatusRejected      = "REJECTED"
	ApplicationStatusDropRequested = "DROP_REQUESTED"
	ApplicationStatusDropped       = "DROPPED"
)

// Location classification derived from the program location text
const (
	LocationTypeBeas    = "BEAS"
	LocationTypeNonBeas = "NON_BEAS"
)

// DeriveLocationType classifies a program location. A location equal to
// "BEAS" is BEAS, anything else is NON_BEAS.
func DeriveLocationType(location string) string {
	if location == LocationTypeBeas {
		return LocationTypeBeas
	}
	return LocationTypeNonBeas
}
