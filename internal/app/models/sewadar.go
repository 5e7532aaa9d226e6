package models

import (
	"time"
)

// Sewadar defines the sewadar model based on the 'sewadars' table.
// The zonal ID is the organizational identity and is immutable after creation.
type Sewadar struct {
	ID                           int64      `json:"-" db:"id"`
	ZonalID                      string     `json:"zonalId" db:"zonal_id" example:"ZN-1042"`
	FirstName                    string     `json:"firstName" db:"first_name" example:"Ravi"`
	LastName                     string     `json:"lastName" db:"last_name" example:"Sharma"`
	Mobile                       *string    `json:"mobile,omitempty" db:"mobile" example:"9876543210"`
	EmailID                      *string    `json:"emailId,omitempty" db:"email_id" example:"ravi@example.com"`
	Location                     *string    `json:"location,omitempty" db:"location" example:"Delhi North Zone"`
	Role                         Role       `json:"role" db:"role" example:"SEWADAR"`
	Password                     string     `json:"-" db:"password"` // bcrypt hash, never serialized
	Profession                   *string    `json:"profession,omitempty" db:"profession" example:"Teacher"`
	JoiningDate                  *time.Time `json:"joiningDate,omitempty" db:"joining_date" example:"2018-06-01T00:00:00Z"`
	DateOfBirth                  *time.Time `json:"dateOfBirth,omitempty" db:"date_of_birth" example:"1985-03-12T00:00:00Z"`
	EmergencyContact             *string    `json:"emergencyContact,omitempty" db:"emergency_contact"`
	EmergencyContactRelationship *string    `json:"emergencyContactRelationship,omitempty" db:"emergency_contact_relationship"`
	PhotoURL                     *string    `json:"photoUrl,omitempty" db:"photo_url"`
	AadharNumber                 *string    `json:"aadharNumber,omitempty" db:"aadhar_number"`
	Remarks                      *string    `json:"remarks,omitempty" db:"remarks"`
	Languages                    []string   `json:"languages,omitempty"` // Relation from sewadar_languages, no db tag
	CreatedAt                    time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt                    *time.Time `json:"updatedAt,omitempty" db:"updated_at"`
}

// FullName returns the display name used in notifications and dashboards
func (s *Sewadar) FullName() string {
	return s.FirstName + " " + s.LastName
}
