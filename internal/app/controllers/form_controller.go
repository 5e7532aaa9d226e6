package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rssb/sewadar-backend/internal/app/models/dto"
	"github.com/rssb/sewadar-backend/internal/app/services"
	"github.com/rssb/sewadar-backend/internal/middleware"
)

// FormController handles travel-detail form submissions
type FormController struct {
	formService *services.FormService
}

// NewFormController creates a new FormController
func NewFormController(formService *services.FormService) *FormController {
	return &FormController{
		formService: formService,
	}
}

// SubmitForm records a sewadar's travel details
// @Summary Submit the travel form
// @Description Records the authenticated sewadar's travel details for a program. Requires a released form, an approved application and a date inside the form window. Resubmitting replaces the previous details.
// @Tags forms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program ID"
// @Param request body dto.SubmitFormRequest true "Travel details"
// @Success 200 {object} dto.APIResponse{data=models.SewadarFormSubmission} "Form submitted successfully"
// @Failure 400 {object} dto.ErrorResponse "Form not released or application not approved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Failure 409 {object} dto.ErrorResponse "Form submission window has closed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /programs/{id}/form-submissions [post]
func (c *FormController) SubmitForm(ctx *gin.Context) {
	programID, ok := parseProgramID(ctx, "id")
	if !ok {
		return
	}

	var req dto.SubmitFormRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid form data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	submission, err := c.formService.SubmitForm(ctx, programID, middleware.CurrentZonalID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(submission))
}

// UpdateSubmission replaces the travel details of an existing submission
// @Summary Update a form submission
// @Description Replaces the travel details of an existing submission. Only the submitting sewadar may update it, and only while the form window is open.
// @Tags forms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Submission ID"
// @Param request body dto.SubmitFormRequest true "Travel details"
// @Success 200 {object} dto.APIResponse{data=models.SewadarFormSubmission} "Form updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid form data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Not the submitting sewadar"
// @Failure 404 {object} dto.ErrorResponse "Submission not found"
// @Failure 409 {object} dto.ErrorResponse "Form submission window has closed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /form-submissions/{id} [put]
func (c *FormController) UpdateSubmission(ctx *gin.Context) {
	submissionID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid submission ID")
		errorDetail = errorDetail.WithDetails("Submission ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.SubmitFormRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid form data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	submission, err := c.formService.UpdateSubmission(ctx, submissionID,
		middleware.CurrentZonalID(ctx), middleware.CurrentRole(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(submission))
}

// GetMySubmission retrieves the sewadar's own submission for a program
// @Summary Get own form submission
// @Description Retrieves the authenticated sewadar's travel-details submission for a program
// @Tags forms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program ID"
// @Success 200 {object} dto.APIResponse{data=models.SewadarFormSubmission} "Submission retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Submission not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /programs/{id}/form-submissions/mine [get]
func (c *FormController) GetMySubmission(ctx *gin.Context) {
	programID, ok := parseProgramID(ctx, "id")
	if !ok {
		return
	}

	submission, err := c.formService.GetMySubmission(ctx, programID, middleware.CurrentZonalID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(submission))
}

// GetSubmissionForSewadar retrieves one sewadar's submission for a program
// @Summary Get a sewadar's form submission
// @Description Retrieves one sewadar's travel-details submission of a program for its creator
// @Tags forms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program ID"
// @Param zonalId path string true "Zonal ID" example(ZN-1042)
// @Success 200 {object} dto.APIResponse{data=models.SewadarFormSubmission} "Submission retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Not the program creator"
// @Failure 404 {object} dto.ErrorResponse "Submission not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /programs/{id}/form-submissions/sewadar/{zonalId} [get]
func (c *FormController) GetSubmissionForSewadar(ctx *gin.Context) {
	programID, ok := parseProgramID(ctx, "id")
	if !ok {
		return
	}

	submission, err := c.formService.GetSubmissionForSewadar(ctx, programID, ctx.Param("zonalId"),
		middleware.CurrentZonalID(ctx), middleware.CurrentRole(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(submission))
}

// GetSubmissionsByProgram retrieves a program's form submissions
// @Summary List program form submissions
// @Description Retrieves all travel-details submissions of a program for its creator
// @Tags forms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program ID"
// @Success 200 {object} dto.APIResponse{data=[]models.SewadarFormSubmission} "Submissions retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Not the program creator"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /programs/{id}/form-submissions [get]
func (c *FormController) GetSubmissionsByProgram(ctx *gin.Context) {
	programID, ok := parseProgramID(ctx, "id")
	if !ok {
		return
	}

	submissions, err := c.formService.GetSubmissionsByProgram(ctx, programID,
		middleware.CurrentZonalID(ctx), middleware.CurrentRole(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(submissions))
}
