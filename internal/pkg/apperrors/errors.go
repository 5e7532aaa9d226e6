package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Sewadar errors
var (
	ErrSewadarNotFound        = errors.New("sewadar not found")
	ErrZonalIDAlreadyExists   = errors.New("zonal ID already exists")
	ErrInvalidZonalID         = errors.New("invalid zonal ID format")
	ErrSewadarHasApplications = errors.New("sewadar has program applications and cannot be deleted")
)

// Program errors
var (
	ErrProgramNotFound      = errors.New("program not found")
	ErrProgramNotActive     = errors.New("program is not active")
	ErrInvalidProgramStatus = errors.New("invalid program status")
	ErrApplyWindowClosed    = errors.New("last date to apply has passed")
)

// Application errors
var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrAlreadyApplied      = errors.New("an active application already exists for this program")
	ErrIllegalTransition   = errors.New("application is not in a state that permits this transition")
	ErrNotProgramCreator   = errors.New("only the program creator can perform this action")
)

// Workflow errors
var (
	ErrWorkflowNotFound        = errors.New("workflow not found for program")
	ErrWorkflowComplete        = errors.New("workflow already at final node")
	ErrFormNotReleased         = errors.New("form has not been released for this program")
	ErrFormAlreadyReleased     = errors.New("form already released")
	ErrDetailsAlreadyCollected = errors.New("details already collected")
	ErrGatePending             = errors.New("current node requires its checkpoint action before advancing")
	ErrFormSubmissionsMissing  = errors.New("form submissions are missing for approved sewadars")
)

// Form submission errors
var (
	ErrFormSubmissionNotFound = errors.New("form submission not found")
	ErrFormSubmissionExists   = errors.New("form already submitted for this program")
	ErrApplicationNotApproved = errors.New("sewadar does not have an approved application for this program")
)

// Attendance errors
var (
	ErrAttendanceNotFound      = errors.New("attendance record not found")
	ErrAttendanceAlreadyMarked = errors.New("attendance already marked for this sewadar")
)

// Notification errors
var (
	ErrNotificationNotFound     = errors.New("notification not found")
	ErrNotificationPrefNotFound = errors.New("notification preference not found")
	ErrInvalidNodeNumber        = errors.New("invalid workflow node number")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// Is returns whether target matches err, or any of the additional errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err       error
	Message   string
	StatusMsg string
	Code      string
	Details   map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

// WithStatusMsg adds a user-friendly status message
func (e *CustomError) WithStatusMsg(msg string) *CustomError {
	e.StatusMsg = msg
	return e
}
