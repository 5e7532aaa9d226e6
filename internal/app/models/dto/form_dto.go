package dto

import "time"

// SubmitFormRequest carries a sewadar's travel details for one program.
// Every field is optional; the submission itself is what the workflow's
// collect-details gate checks for.
type SubmitFormRequest struct {
	StartingDateTimeFromHome  *time.Time `json:"startingDateTimeFromHome,omitempty"`
	ReachingDateTimeToHome    *time.Time `json:"reachingDateTimeToHome,omitempty"`
	OnwardTrainFlightDateTime *time.Time `json:"onwardTrainFlightDateTime,omitempty"`
	OnwardTrainFlightNo       *string    `json:"onwardTrainFlightNo,omitempty"`
	ReturnTrainFlightDateTime *time.Time `json:"returnTrainFlightDateTime,omitempty"`
	ReturnTrainFlightNo       *string    `json:"returnTrainFlightNo,omitempty"`
	StayInHotel               *string    `json:"stayInHotel,omitempty"`
	StayInPandal              *string    `json:"stayInPandal,omitempty"`
}
