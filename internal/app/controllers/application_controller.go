package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rssb/sewadar-backend/internal/app/models/dto"
	"github.com/rssb/sewadar-backend/internal/app/services"
	"github.com/rssb/sewadar-backend/internal/middleware"
)

// ApplicationController handles the application lifecycle endpoints
type ApplicationController struct {
	applicationService *services.ApplicationService
}

// NewApplicationController creates a new ApplicationController
func NewApplicationController(applicationService *services.ApplicationService) *ApplicationController {
	return &ApplicationController{
		applicationService: applicationService,
	}
}

// parseApplicationID extracts and validates the application ID path parameter
func parseApplicationID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid application ID")
		errorDetail = errorDetail.WithDetails("Application ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// Apply submits an application to a program
// @Summary Apply to a program
// @Description Creates a PENDING application for an active program inside the apply window. A sewadar whose previous application was dropped may reapply.
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program ID"
// @Param request body dto.ApplyRequest false "Optional application notes"
// @Success 201 {object} dto.APIResponse{data=models.ProgramApplication} "Application submitted"
// @Failure 400 {object} dto.ErrorResponse "Program is not active"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Failure 409 {object} dto.ErrorResponse "Already applied or apply window closed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /programs/{id}/applications [post]
func (c *ApplicationController) Apply(ctx *gin.Context) {
	programID, ok := parseProgramID(ctx, "id")
	if !ok {
		return
	}

	var req dto.ApplyRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid application data")
			errorDetail = errorDetail.WithDetails(err.Error())
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
	}

	application, err := c.applicationService.Apply(ctx, programID,
		middleware.CurrentZonalID(ctx), middleware.CurrentRole(ctx), req.Notes)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(application))
}

// GetMyApplications lists the authenticated sewadar's applications
// @Summary List own applications
// @Description Retrieves all applications submitted by the authenticated sewadar
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.ProgramApplication} "Applications retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /applications/mine [get]
func (c *ApplicationController) GetMyApplications(ctx *gin.Context) {
	applications, err := c.applicationService.GetMyApplications(ctx, middleware.CurrentZonalID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(applications))
}

// GetApplicationsByProgram lists a program's applications
// @Summary List program applications
// @Description Retrieves a program's applications for its creator, optionally filtered by status
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program ID"
// @Param status query string false "Filter by status" Enums(PENDING, APPROVED, REJECTED, DROP_REQUESTED, DROPPED)
// @Success 200 {object} dto.APIResponse{data=[]models.ProgramApplication} "Applications retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Not the program creator"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /programs/{id}/applications [get]
func (c *ApplicationController) GetApplicationsByProgram(ctx *gin.Context) {
	programID, ok := parseProgramID(ctx, "id")
	if !ok {
		return
	}

	applications, err := c.applicationService.GetApplicationsByProgram(ctx, programID,
		middleware.CurrentZonalID(ctx), middleware.CurrentRole(ctx), ctx.Query("status"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(applications))
}

// Decide approves or rejects a pending application
// @Summary Decide an application
// @Description Approves or rejects a PENDING application. Approving past the program's capacity is refused.
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param request body dto.UpdateApplicationStatusRequest true "Decision"
// @Success 200 {object} dto.APIResponse{data=models.ProgramApplication} "Application decided"
// @Failure 400 {object} dto.ErrorResponse "Invalid decision data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Not the program creator"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 409 {object} dto.ErrorResponse "Application is not pending or program is full"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /applications/{id}/decision [patch]
func (c *ApplicationController) Decide(ctx *gin.Context) {
	id, ok := parseApplicationID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid decision data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	application, err := c.applicationService.Decide(ctx, id,
		middleware.CurrentZonalID(ctx), middleware.CurrentRole(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(application))
}

// RequestDrop asks to withdraw from a program
// @Summary Request a drop
// @Description Moves the caller's own PENDING or APPROVED application to DROP_REQUESTED. The slot stays occupied until the incharge approves.
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse{data=models.ProgramApplication} "Drop requested"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Not the application owner"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 409 {object} dto.ErrorResponse "Application cannot request a drop in its current state"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /applications/{id}/request-drop [post]
func (c *ApplicationController) RequestDrop(ctx *gin.Context) {
	id, ok := parseApplicationID(ctx)
	if !ok {
		return
	}

	application, err := c.applicationService.RequestDrop(ctx, id, middleware.CurrentZonalID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(application))
}

// ApproveDrop completes the drop handshake
// @Summary Approve a drop request
// @Description Moves a DROP_REQUESTED application to DROPPED, vacates the slot and raises a refill alert for the incharge
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse{data=models.ProgramApplication} "Drop approved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Not the program creator"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 409 {object} dto.ErrorResponse "Application has no pending drop request"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /applications/{id}/approve-drop [post]
func (c *ApplicationController) ApproveDrop(ctx *gin.Context) {
	id, ok := parseApplicationID(ctx)
	if !ok {
		return
	}

	application, err := c.applicationService.ApproveDrop(ctx, id,
		middleware.CurrentZonalID(ctx), middleware.CurrentRole(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(application))
}

// GetDropRequests lists a program's pending drop requests
// @Summary List drop requests
// @Description Retrieves a program's DROP_REQUESTED applications for its creator
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program ID"
// @Success 200 {object} dto.APIResponse{data=[]models.ProgramApplication} "Drop requests retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Not the program creator"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /programs/{id}/drop-requests [get]
func (c *ApplicationController) GetDropRequests(ctx *gin.Context) {
	programID, ok := parseProgramID(ctx, "id")
	if !ok {
		return
	}

	applications, err := c.applicationService.GetDropRequests(ctx, programID,
		middleware.CurrentZonalID(ctx), middleware.CurrentRole(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(applications))
}

// GetPrioritized ranks a program's applicants by attendance history
// @Summary List prioritized applications
// @Description Retrieves a program's applicants ranked by attendance history. The priority score is total attendance * 10 + total days.
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program ID"
// @Param sortBy query string false "Sort column" Enums(priorityscore, attendance, beasattendance, nonbeasattendance, days, beasdays, nonbeasdays, profession, joiningdate) default(priorityscore)
// @Success 200 {object} dto.APIResponse{data=[]dto.PrioritizedApplicationResponse} "Prioritized applications retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Not the program creator"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /programs/{id}/applications/prioritized [get]
func (c *ApplicationController) GetPrioritized(ctx *gin.Context) {
	programID, ok := parseProgramID(ctx, "id")
	if !ok {
		return
	}

	results, err := c.applicationService.GetPrioritized(ctx, programID,
		middleware.CurrentZonalID(ctx), middleware.CurrentRole(ctx), ctx.Query("sortBy"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(results))
}
