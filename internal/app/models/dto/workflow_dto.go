package dto

import "time"

// ProgramWorkflowResponse is the workflow position of one program plus the
// single next legal operation resolved for it.
type ProgramWorkflowResponse struct {
	ProgramID        int64      `json:"programId" example:"1"`
	ProgramTitle     string     `json:"programTitle" example:"Annual Satsang Seva"`
	CurrentNode      int        `json:"currentNode" example:"3"`
	CurrentNodeName  string     `json:"currentNodeName" example:"Release Form"`
	FormReleased     bool       `json:"formReleased"`
	DetailsCollected bool       `json:"detailsCollected"`
	NextAction       string     `json:"nextAction" example:"RELEASE_FORM"`
	UpdatedAt        *time.Time `json:"updatedAt,omitempty"`
}

// MissingFormSubmittersResponse lists approved sewadars who have not yet
// submitted the travel-details form for a program.
type MissingFormSubmittersResponse struct {
	ProgramID       int64    `json:"programId" example:"1"`
	MissingZonalIDs []string `json:"missingSewadarIds" example:"ZN-1042,ZN-2088"`
}

// DailyNotificationSweepResponse reports the outcome of a manual run of the
// daily workflow-notification sweep.
type DailyNotificationSweepResponse struct {
	ProgramsChecked   int `json:"programsChecked" example:"14"`
	NotificationsSent int `json:"notificationsSent" example:"3"`
}
