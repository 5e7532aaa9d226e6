package models

import (
	"time"
)

// ProgramApplication defines a sewadar's request to participate in a program,
// based on the 'program_applications' table.
//
// Status transitions are role-gated and enforced server-side:
// PENDING -> {APPROVED, REJECTED}; {PENDING, APPROVED} -> DROP_REQUESTED -> DROPPED;
// DROPPED -> (reapply) -> a fresh PENDING application.
type ProgramApplication struct {
	ID              int64      `json:"id" db:"id" example:"10"`
	ProgramID       int64      `json:"programId" db:"program_id" example:"1"`
	SewadarZonalID  string     `json:"sewadarId" db:"sewadar_zonal_id" example:"ZN-1042"`
	Status          string     `json:"status" db:"status" example:"PENDING"`
	Notes           *string    `json:"notes,omitempty" db:"notes"`
	AppliedAt       time.Time  `json:"appliedAt" db:"applied_at"`
	ReapplyAllowed  *bool      `json:"reapplyAllowed,omitempty" db:"reapply_allowed"`
	DropRequestedAt *time.Time `json:"dropRequestedAt,omitempty" db:"drop_requested_at"`
	DropApprovedAt  *time.Time `json:"dropApprovedAt,omitempty" db:"drop_approved_at"`
	DropApprovedBy  *string    `json:"dropApprovedBy,omitempty" db:"drop_approved_by"`
	Sewadar         *Sewadar   `json:"sewadar,omitempty"` // Relation, no db tag
}

// IsActive reports whether the application still occupies a slot in the
// program (anything other than a completed drop).
func (a *ProgramApplication) IsActive() bool {
	return a.Status != ApplicationStatusDropped
}
