package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rssb/sewadar-backend/internal/app/models/dto"
	"github.com/rssb/sewadar-backend/internal/pkg/apperrors"
)

// HandleAPIError maps service errors to HTTP responses. The response message
// carries the error text verbatim so clients can display it directly.
func HandleAPIError(c *gin.Context, err error) {
	status, code := classifyError(err)

	errorDetail := dto.NewErrorDetail(code, err.Error())
	c.JSON(status, dto.NewErrorResponse(errorDetail))
}

// classifyError picks the HTTP status and error code for a service error.
func classifyError(err error) (int, dto.ErrorCode) {
	switch {
	// 404 - missing resources
	case errors.Is(err, apperrors.ErrSewadarNotFound),
		errors.Is(err, apperrors.ErrProgramNotFound),
		errors.Is(err, apperrors.ErrApplicationNotFound),
		errors.Is(err, apperrors.ErrWorkflowNotFound),
		errors.Is(err, apperrors.ErrFormSubmissionNotFound),
		errors.Is(err, apperrors.ErrAttendanceNotFound),
		errors.Is(err, apperrors.ErrNotificationNotFound),
		errors.Is(err, apperrors.ErrNotificationPrefNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound, dto.ErrorCodeResourceNotFound

	// 409 - state conflicts
	case errors.Is(err, apperrors.ErrZonalIDAlreadyExists),
		errors.Is(err, apperrors.ErrSewadarHasApplications),
		errors.Is(err, apperrors.ErrAlreadyApplied),
		errors.Is(err, apperrors.ErrApplyWindowClosed),
		errors.Is(err, apperrors.ErrIllegalTransition),
		errors.Is(err, apperrors.ErrGatePending),
		errors.Is(err, apperrors.ErrWorkflowComplete),
		errors.Is(err, apperrors.ErrFormAlreadyReleased),
		errors.Is(err, apperrors.ErrDetailsAlreadyCollected),
		errors.Is(err, apperrors.ErrFormSubmissionsMissing),
		errors.Is(err, apperrors.ErrAttendanceAlreadyMarked),
		errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, dto.ErrorCodeResourceConflict

	// 400 - rejected input
	case errors.Is(err, apperrors.ErrInvalidZonalID),
		errors.Is(err, apperrors.ErrInvalidProgramStatus),
		errors.Is(err, apperrors.ErrInvalidNodeNumber),
		errors.Is(err, apperrors.ErrProgramNotActive),
		errors.Is(err, apperrors.ErrFormNotReleased),
		errors.Is(err, apperrors.ErrApplicationNotApproved),
		errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest, dto.ErrorCodeValidationFailed

	// 401 - authentication failures
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials
	case errors.Is(err, apperrors.ErrTokenExpired):
		return http.StatusUnauthorized, dto.ErrorCodeExpiredToken
	case errors.Is(err, apperrors.ErrTokenInvalid),
		errors.Is(err, apperrors.ErrTokenNotFound):
		return http.StatusUnauthorized, dto.ErrorCodeInvalidToken

	// 403 - authorization failures
	case errors.Is(err, apperrors.ErrNotProgramCreator),
		errors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden, dto.ErrorCodeForbidden

	default:
		return http.StatusInternalServerError, dto.ErrorCodeInternalServer
	}
}
