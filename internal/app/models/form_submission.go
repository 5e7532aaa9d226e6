package models

import (
	"time"
)

// SewadarFormSubmission is a sewadar's travel-detail form for one program,
// based on the 'sewadar_form_submissions' table. One submission per
// (program, sewadar); required once the workflow has released the form and
// the sewadar's application is approved.
type SewadarFormSubmission struct {
	ID                        int64      `json:"id" db:"id"`
	ProgramID                 int64      `json:"programId" db:"program_id"`
	SewadarZonalID            string     `json:"sewadarId" db:"sewadar_zonal_id"`
	StartingDateTimeFromHome  *time.Time `json:"startingDateTimeFromHome,omitempty" db:"starting_datetime_from_home"`
	ReachingDateTimeToHome    *time.Time `json:"reachingDateTimeToHome,omitempty" db:"reaching_datetime_to_home"`
	OnwardTrainFlightDateTime *time.Time `json:"onwardTrainFlightDateTime,omitempty" db:"onward_train_flight_datetime"`
	OnwardTrainFlightNo       *string    `json:"onwardTrainFlightNo,omitempty" db:"onward_train_flight_no"`
	ReturnTrainFlightDateTime *time.Time `json:"returnTrainFlightDateTime,omitempty" db:"return_train_flight_datetime"`
	ReturnTrainFlightNo       *string    `json:"returnTrainFlightNo,omitempty" db:"return_train_flight_no"`
	StayInHotel               *string    `json:"stayInHotel,omitempty" db:"stay_in_hotel"`
	StayInPandal              *string    `json:"stayInPandal,omitempty" db:"stay_in_pandal"`
	SubmittedAt               time.Time  `json:"submittedAt" db:"submitted_at"`
	UpdatedAt                 *time.Time `json:"updatedAt,omitempty" db:"updated_at"`
}
