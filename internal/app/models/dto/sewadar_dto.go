package dto

import "time"

// CreateSewadarRequest represents sewadar registration data
type CreateSewadarRequest struct {
	ZonalID                      string     `json:"zonalId" binding:"required" example:"ZN-1042"`
	FirstName                    string     `json:"firstName" binding:"required" example:"Ravi"`
	LastName                     string     `json:"lastName" binding:"required" example:"Sharma"`
	Password                     string     `json:"password" binding:"required,min=8"`
	Role                         string     `json:"role" binding:"omitempty,oneof=SEWADAR INCHARGE ADMIN" example:"SEWADAR"`
	Mobile                       *string    `json:"mobile,omitempty" binding:"omitempty,len=10,numeric"`
	EmailID                      *string    `json:"emailId,omitempty" binding:"omitempty,email"`
	Location                     *string    `json:"location,omitempty"`
	Profession                   *string    `json:"profession,omitempty"`
	JoiningDate                  *time.Time `json:"joiningDate,omitempty"`
	DateOfBirth                  *time.Time `json:"dateOfBirth,omitempty"`
	EmergencyContact             *string    `json:"emergencyContact,omitempty" binding:"omitempty,len=10,numeric"`
	EmergencyContactRelationship *string    `json:"emergencyContactRelationship,omitempty"`
	PhotoURL                     *string    `json:"photoUrl,omitempty" binding:"omitempty,url"`
	AadharNumber                 *string    `json:"aadharNumber,omitempty" binding:"omitempty,len=12,numeric"`
	Remarks                      *string    `json:"remarks,omitempty"`
	Languages                    []string   `json:"languages,omitempty"`
}

// UpdateSewadarRequest represents editable sewadar profile data. The zonal ID
// and password are not updatable through this request.
type UpdateSewadarRequest struct {
	FirstName                    string     `json:"firstName" binding:"required"`
	LastName                     string     `json:"lastName" binding:"required"`
	Role                         string     `json:"role" binding:"omitempty,oneof=SEWADAR INCHARGE ADMIN"`
	Mobile                       *string    `json:"mobile,omitempty" binding:"omitempty,len=10,numeric"`
	EmailID                      *string    `json:"emailId,omitempty" binding:"omitempty,email"`
	Location                     *string    `json:"location,omitempty"`
	Profession                   *string    `json:"profession,omitempty"`
	JoiningDate                  *time.Time `json:"joiningDate,omitempty"`
	DateOfBirth                  *time.Time `json:"dateOfBirth,omitempty"`
	EmergencyContact             *string    `json:"emergencyContact,omitempty" binding:"omitempty,len=10,numeric"`
	EmergencyContactRelationship *string    `json:"emergencyContactRelationship,omitempty"`
	PhotoURL                     *string    `json:"photoUrl,omitempty" binding:"omitempty,url"`
	AadharNumber                 *string    `json:"aadharNumber,omitempty" binding:"omitempty,len=12,numeric"`
	Remarks                      *string    `json:"remarks,omitempty"`
	Languages                    []string   `json:"languages,omitempty"`
}

// SewadarFilterRequest represents sewadar list filter parameters
type SewadarFilterRequest struct {
	Name       string `form:"name"`
	Location   string `form:"location"`
	Profession string `form:"profession"`
	Language   string `form:"language"`
	Role       string `form:"role" binding:"omitempty,oneof=SEWADAR INCHARGE ADMIN"`
	Page       int    `form:"page,default=1" binding:"omitempty,min=1"`
	Size       int    `form:"size,default=10" binding:"omitempty,min=1,max=100"`
}
