package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rssb/sewadar-backend/internal/app/models/dto"
	"github.com/rssb/sewadar-backend/internal/app/services"
	"github.com/rssb/sewadar-backend/internal/middleware"
)

// WorkflowController handles the six-node program workflow endpoints
type WorkflowController struct {
	workflowService *services.WorkflowService
}

// NewWorkflowController creates a new WorkflowController
func NewWorkflowController(workflowService *services.WorkflowService) *WorkflowController {
	return &WorkflowController{
		workflowService: workflowService,
	}
}

// GetWorkflow retrieves a program's workflow position
// @Summary Get program workflow
// @Description Retrieves a program's workflow position with the single next legal operation resolved
// @Tags workflow
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program ID"
// @Success 200 {object} dto.APIResponse{data=dto.ProgramWorkflowResponse} "Workflow retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Program or workflow not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /programs/{id}/workflow [get]
func (c *WorkflowController) GetWorkflow(ctx *gin.Context) {
	programID, ok := parseProgramID(ctx, "id")
	if !ok {
		return
	}

	workflow, err := c.workflowService.GetWorkflow(ctx, programID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(workflow))
}

// GetMyWorkflows retrieves the workflows of the incharge's programs
// @Summary List own workflows
// @Description Retrieves the workflows of all programs the authenticated incharge created
// @Tags workflow
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ProgramWorkflowResponse} "Workflows retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /workflows/mine [get]
func (c *WorkflowController) GetMyWorkflows(ctx *gin.Context) {
	workflows, err := c.workflowService.GetWorkflowsForIncharge(ctx, middleware.CurrentZonalID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(workflows))
}

// AdvanceNode moves a workflow to its next node
// @Summary Advance workflow node
// @Description Moves a program's workflow to its next node. Refused while the release-form or collect-details gate is pending.
// @Tags workflow
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program ID"
// @Success 200 {object} dto.APIResponse{data=dto.ProgramWorkflowResponse} "Workflow advanced"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Not the program creator"
// @Failure 404 {object} dto.ErrorResponse "Program or workflow not found"
// @Failure 409 {object} dto.ErrorResponse "A gate is pending or the workflow is complete"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /programs/{id}/workflow/next-node [post]
func (c *WorkflowController) AdvanceNode(ctx *gin.Context) {
	programID, ok := parseProgramID(ctx, "id")
	if !ok {
		return
	}

	workflow, err := c.workflowService.AdvanceNode(ctx, programID,
		middleware.CurrentZonalID(ctx), middleware.CurrentRole(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(workflow))
}

// ReleaseForm performs the manual gate at the release-form node
// @Summary Release the travel form
// @Description Opens the travel-detail form to approved sewadars and moves the workflow to the collect-details node. Irreversible.
// @Tags workflow
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program ID"
// @Success 200 {object} dto.APIResponse{data=dto.ProgramWorkflowResponse} "Form released"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Not the program creator"
// @Failure 404 {object} dto.ErrorResponse "Program or workflow not found"
// @Failure 409 {object} dto.ErrorResponse "Form already released or workflow not at the release-form node"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /programs/{id}/workflow/release-form [post]
func (c *WorkflowController) ReleaseForm(ctx *gin.Context) {
	programID, ok := parseProgramID(ctx, "id")
	if !ok {
		return
	}

	workflow, err := c.workflowService.ReleaseForm(ctx, programID,
		middleware.CurrentZonalID(ctx), middleware.CurrentRole(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(workflow))
}

// MarkDetailsCollected performs the manual gate at the collect-details node
// @Summary Mark details collected
// @Description Confirms every approved sewadar has submitted the travel form and moves the workflow onward. Refused while submissions are missing; the error names the missing sewadars.
// @Tags workflow
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program ID"
// @Success 200 {object} dto.APIResponse{data=dto.ProgramWorkflowResponse} "Details collected"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Not the program creator"
// @Failure 404 {object} dto.ErrorResponse "Program or workflow not found"
// @Failure 409 {object} dto.ErrorResponse "Form submissions are missing or the workflow is not at the collect-details node"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /programs/{id}/workflow/mark-details-collected [post]
func (c *WorkflowController) MarkDetailsCollected(ctx *gin.Context) {
	programID, ok := parseProgramID(ctx, "id")
	if !ok {
		return
	}

	workflow, err := c.workflowService.MarkDetailsCollected(ctx, programID,
		middleware.CurrentZonalID(ctx), middleware.CurrentRole(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(workflow))
}

// GetMissingSubmitters lists approved sewadars still owing the travel form
// @Summary List missing form submitters
// @Description Retrieves the approved sewadars who have not yet submitted the travel-details form
// @Tags workflow
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program ID"
// @Success 200 {object} dto.APIResponse{data=dto.MissingFormSubmittersResponse} "Missing submitters retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Not the program creator"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /programs/{id}/workflow/missing-form-submitters [get]
func (c *WorkflowController) GetMissingSubmitters(ctx *gin.Context) {
	programID, ok := parseProgramID(ctx, "id")
	if !ok {
		return
	}

	missing, err := c.workflowService.GetMissingSubmitters(ctx, programID,
		middleware.CurrentZonalID(ctx), middleware.CurrentRole(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(missing))
}

// RunDailySweep triggers the daily workflow-notification sweep
// @Summary Run the daily notification sweep
// @Description Mails every incharge whose active program is waiting on a workflow step, honoring per-program notification overrides. Running it twice in a day repeats the mails.
// @Tags workflow
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DailyNotificationSweepResponse} "Sweep finished"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Admin only"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /workflows/notify-daily [post]
func (c *WorkflowController) RunDailySweep(ctx *gin.Context) {
	result, err := c.workflowService.RunDailySweep(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(result))
}
