package dto

// SewadarsDashboardResponse aggregates the roster for the admin dashboard
type SewadarsDashboardResponse struct {
	TotalCount       int64            `json:"totalCount" example:"412"`
	RoleCounts       map[string]int64 `json:"roleCounts"`
	LocationCounts   map[string]int64 `json:"locationCounts"`
	ProfessionCounts map[string]int64 `json:"professionCounts"`
	LanguageCounts   map[string]int64 `json:"languageCounts"`
}

// ProgramApplicationStats summarizes application activity for one program
type ProgramApplicationStats struct {
	ProgramID          int64  `json:"programId" example:"1"`
	Title              string `json:"title" example:"Annual Satsang Seva"`
	Status             string `json:"status" example:"active"`
	MaxSewadars        *int   `json:"maxSewadars,omitempty" example:"50"`
	PendingCount       int64  `json:"pendingCount"`
	ApprovedCount      int64  `json:"approvedCount"`
	RejectedCount      int64  `json:"rejectedCount"`
	DropRequestedCount int64  `json:"dropRequestedCount"`
	DroppedCount       int64  `json:"droppedCount"`
	SlotsRemaining     *int   `json:"slotsRemaining,omitempty" example:"12"`
}

// ApplicationsDashboardResponse summarizes application activity across programs
type ApplicationsDashboardResponse struct {
	Programs []ProgramApplicationStats `json:"programs"`
}
