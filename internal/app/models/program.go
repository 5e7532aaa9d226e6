package models

import (
	"time"
)

// Program defines the program model based on the 'programs' table
type Program struct {
	ID                   int64       `json:"id" db:"id" example:"1"`
	Title                string      `json:"title" db:"title" example:"Annual Satsang Seva"`
	Description          *string     `json:"description,omitempty" db:"description"`
	Location             string      `json:"location" db:"location" example:"BEAS"`
	Status               string      `json:"status" db:"status" example:"active"` // scheduled, active, completed, cancelled
	MaxSewadars          *int        `json:"maxSewadars,omitempty" db:"max_sewadars" example:"50"`
	CreatedBy            string      `json:"createdBy" db:"created_by" example:"ZN-2001"` // Zonal ID of the incharge who created the program
	LastDateToApply      *time.Time  `json:"lastDateToApply,omitempty" db:"last_date_to_apply"`
	LastDateToSubmitForm *time.Time  `json:"lastDateToSubmitForm,omitempty" db:"last_date_to_submit_form"`
	ProgramDates         []time.Time `json:"programDates"` // Relation from program_dates, no db tag
	ApplicationCount     int         `json:"applicationCount"`
	CreatedAt            time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt            *time.Time  `json:"updatedAt,omitempty" db:"updated_at"`
}

// LocationType classifies the program location as BEAS or NON_BEAS.
// Derived from the location text on every read, never stored.
func (p *Program) LocationType() string {
	return DeriveLocationType(p.Location)
}

// LastProgramDate returns the latest scheduled date, or nil when no dates exist
func (p *Program) LastProgramDate() *time.Time {
	var last *time.Time
	for i := range p.ProgramDates {
		d := p.ProgramDates[i]
		if last == nil || d.After(*last) {
			last = &d
		}
	}
	return last
}
