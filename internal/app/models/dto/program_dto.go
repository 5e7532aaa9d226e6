package dto

import (
	"time"

	"github.com/rssb/sewadar-backend/internal/app/models"
)

// CreateProgramRequest represents program creation data. At least one
// program date is required.
type CreateProgramRequest struct {
	Title                string      `json:"title" binding:"required" example:"Annual Satsang Seva"`
	Description          *string     `json:"description,omitempty"`
	Location             string      `json:"location" binding:"required" example:"BEAS"`
	MaxSewadars          *int        `json:"maxSewadars,omitempty" binding:"omitempty,gt=0"`
	LastDateToApply      *time.Time  `json:"lastDateToApply,omitempty"`
	LastDateToSubmitForm *time.Time  `json:"lastDateToSubmitForm,omitempty"`
	ProgramDates         []time.Time `json:"programDates" binding:"required,min=1"`
}

// UpdateProgramRequest represents editable program data. Status changes go
// through the dedicated status endpoint.
type UpdateProgramRequest struct {
	Title                string      `json:"title" binding:"required"`
	Description          *string     `json:"description,omitempty"`
	Location             string      `json:"location" binding:"required"`
	MaxSewadars          *int        `json:"maxSewadars,omitempty" binding:"omitempty,gt=0"`
	LastDateToApply      *time.Time  `json:"lastDateToApply,omitempty"`
	LastDateToSubmitForm *time.Time  `json:"lastDateToSubmitForm,omitempty"`
	ProgramDates         []time.Time `json:"programDates" binding:"required,min=1"`
}

// UpdateProgramStatusRequest represents a program lifecycle transition
type UpdateProgramStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=scheduled active completed cancelled" example:"active"`
}

// ProgramViewResponse is a program as seen by the requesting sewadar: the
// record itself plus the resolved display state, legal actions and apply
// countdown for that account.
type ProgramViewResponse struct {
	Program        models.Program             `json:"program"`
	LocationType   string                     `json:"locationType" example:"BEAS"`
	ViewState      string                     `json:"viewState" example:"CAN_APPLY"`
	Actions        []string                   `json:"actions" example:"APPLY"`
	ApplyCountdown string                     `json:"applyCountdown,omitempty" example:"5h 03m"`
	Application    *models.ProgramApplication `json:"application,omitempty"`
}

// ProgramFilterRequest represents program list filter parameters
type ProgramFilterRequest struct {
	Status   string `form:"status" binding:"omitempty,oneof=scheduled active completed cancelled"`
	Location string `form:"location"`
	Page     int    `form:"page,default=1" binding:"omitempty,min=1"`
	Size     int    `form:"size,default=10" binding:"omitempty,min=1,max=100"`
}
