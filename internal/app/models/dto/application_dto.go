package dto

import "time"

// ApplyRequest represents a sewadar's application to a program
type ApplyRequest struct {
	Notes *string `json:"notes,omitempty"`
}

// UpdateApplicationStatusRequest represents an incharge decision on a
// pending application
type UpdateApplicationStatusRequest struct {
	Status string  `json:"status" binding:"required,oneof=APPROVED REJECTED" example:"APPROVED"`
	Notes  *string `json:"notes,omitempty"`
}

// PrioritizedApplicationResponse is one row of the incharge's prioritized
// applicant list: the application joined with the sewadar's attendance
// history and the derived priority score.
type PrioritizedApplicationResponse struct {
	ApplicationID          int64      `json:"applicationId" example:"10"`
	SewadarZonalID         string     `json:"sewadarId" example:"ZN-1042"`
	FirstName              string     `json:"firstName" example:"Ravi"`
	LastName               string     `json:"lastName" example:"Sharma"`
	Mobile                 *string    `json:"mobile,omitempty"`
	Profession             *string    `json:"profession,omitempty"`
	JoiningDate            *time.Time `json:"joiningDate,omitempty"`
	Status                 string     `json:"status" example:"PENDING"`
	AppliedAt              time.Time  `json:"appliedAt"`
	TotalAttendanceCount   int64      `json:"totalAttendanceCount" example:"12"`
	BeasAttendanceCount    int64      `json:"beasAttendanceCount" example:"8"`
	NonBeasAttendanceCount int64      `json:"nonBeasAttendanceCount" example:"4"`
	TotalDaysAttended      int        `json:"totalDaysAttended" example:"34"`
	BeasDaysAttended       int        `json:"beasDaysAttended" example:"22"`
	NonBeasDaysAttended    int        `json:"nonBeasDaysAttended" example:"12"`
	PriorityScore          int64      `json:"priorityScore" example:"154"`
}
