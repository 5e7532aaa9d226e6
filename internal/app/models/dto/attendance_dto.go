package dto

// AttendanceRecordRequest marks attendance for one sewadar
type AttendanceRecordRequest struct {
	SewadarZonalID   string  `json:"sewadarId" binding:"required" example:"ZN-1042"`
	Attended         bool    `json:"attended"`
	DaysParticipated *int    `json:"daysParticipated,omitempty" binding:"omitempty,gte=0"`
	Notes            *string `json:"notes,omitempty"`
}

// MarkAttendanceRequest marks attendance for a batch of sewadars in one program
type MarkAttendanceRequest struct {
	Records []AttendanceRecordRequest `json:"records" binding:"required,min=1,dive"`
}

// UpdateAttendanceRequest corrects a single attendance record
type UpdateAttendanceRequest struct {
	Attended         bool    `json:"attended"`
	DaysParticipated *int    `json:"daysParticipated,omitempty" binding:"omitempty,gte=0"`
	Notes            *string `json:"notes,omitempty"`
}
