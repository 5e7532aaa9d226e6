package models

import (
	"time"
)

// Attendance records whether a sewadar attended a program and for how many
// days, based on the 'attendances' table. Marked by an incharge after the
// program completes.
type Attendance struct {
	ID               int64     `json:"id" db:"id"`
	ProgramID        int64     `json:"programId" db:"program_id"`
	SewadarZonalID   string    `json:"sewadarId" db:"sewadar_zonal_id"`
	Attended         bool      `json:"attended" db:"attended"`
	DaysParticipated *int      `json:"daysParticipated,omitempty" db:"days_participated"`
	MarkedBy         string    `json:"markedBy" db:"marked_by"` // Zonal ID of the incharge who marked it
	MarkedAt         time.Time `json:"markedAt" db:"marked_at"`
	Notes            *string   `json:"notes,omitempty" db:"notes"`
	Sewadar          *Sewadar  `json:"sewadar,omitempty"` // Relation, no db tag
	Program          *Program  `json:"program,omitempty"` // Relation, no db tag
}

// AttendanceSummary aggregates a sewadar's attendance history across
// programs, split by the BEAS / NON_BEAS location classification.
type AttendanceSummary struct {
	SewadarZonalID       string `json:"sewadarId"`
	TotalAttendanceCount int64  `json:"totalAttendanceCount"`
	BeasAttendanceCount  int64  `json:"beasAttendanceCount"`
	NonBeasAttendance    int64  `json:"nonBeasAttendanceCount"`
	TotalDaysAttended    int    `json:"totalDaysAttended"`
	BeasDaysAttended     int    `json:"beasDaysAttended"`
	NonBeasDaysAttended  int    `json:"nonBeasDaysAttended"`
}
