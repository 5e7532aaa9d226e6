package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rssb/sewadar-backend/internal/app/models/dto"
	"github.com/rssb/sewadar-backend/internal/app/services"
	"github.com/rssb/sewadar-backend/internal/middleware"
)

// NotificationController handles notification preferences and the incharge
// alert inbox.
type NotificationController struct {
	notificationService *services.NotificationService
}

// NewNotificationController creates a new NotificationController
func NewNotificationController(notificationService *services.NotificationService) *NotificationController {
	return &NotificationController{
		notificationService: notificationService,
	}
}

// parseNodeNumber extracts and validates the workflow node path parameter
func parseNodeNumber(ctx *gin.Context) (int, bool) {
	nodeNumber, err := strconv.Atoi(ctx.Param("nodeNumber"))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid node number")
		errorDetail = errorDetail.WithDetails("Node number must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return nodeNumber, true
}

// ListGlobalPreferences retrieves the global defaults for every workflow node
// @Summary List notification preferences
// @Description Retrieves the global notification default for every workflow node
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.NotificationPreference} "Preferences retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /notification-preferences [get]
func (c *NotificationController) ListGlobalPreferences(ctx *gin.Context) {
	preferences, err := c.notificationService.ListGlobalPreferences(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(preferences))
}

// UpdateGlobalPreference toggles a node's global default
// @Summary Update a notification preference
// @Description Toggles one workflow node's global notification default and optionally replaces its message template
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param nodeNumber path int true "Workflow node number" minimum(1) maximum(6)
// @Param request body dto.UpdateNotificationPreferenceRequest true "New preference"
// @Success 200 {object} dto.APIResponse{data=models.NotificationPreference} "Preference updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid node number or request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /notification-preferences/{nodeNumber} [put]
func (c *NotificationController) UpdateGlobalPreference(ctx *gin.Context) {
	nodeNumber, ok := parseNodeNumber(ctx)
	if !ok {
		return
	}

	var req dto.UpdateNotificationPreferenceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid preference data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	preference, err := c.notificationService.UpdateGlobalPreference(ctx, nodeNumber, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(preference))
}

// GetProgramPreferences resolves the notification configuration of one program
// @Summary List program notification preferences
// @Description Resolves each node's notification configuration for a program: the global default, the override if any and the effective result
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.ProgramNotificationPreferenceResponse} "Preferences retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Not the program creator"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /programs/{id}/notification-preferences [get]
func (c *NotificationController) GetProgramPreferences(ctx *gin.Context) {
	programID, ok := parseProgramID(ctx, "id")
	if !ok {
		return
	}

	preferences, err := c.notificationService.GetProgramPreferences(ctx, programID,
		middleware.CurrentZonalID(ctx), middleware.CurrentRole(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(preferences))
}

// SetProgramPreference sets or clears a per-program override
// @Summary Set a program notification preference
// @Description Sets or clears the override for one node of a program. A null enabled clears the override so the program inherits the global setting again.
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program ID"
// @Param nodeNumber path int true "Workflow node number" minimum(1) maximum(6)
// @Param request body dto.UpsertProgramNotificationPreferenceRequest true "Override"
// @Success 200 {object} dto.APIResponse{data=dto.ProgramNotificationPreferenceResponse} "Preference set successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid node number or request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Not the program creator"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /programs/{id}/notification-preferences/{nodeNumber} [put]
func (c *NotificationController) SetProgramPreference(ctx *gin.Context) {
	programID, ok := parseProgramID(ctx, "id")
	if !ok {
		return
	}
	nodeNumber, ok := parseNodeNumber(ctx)
	if !ok {
		return
	}

	var req dto.UpsertProgramNotificationPreferenceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid preference data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	preference, err := c.notificationService.SetProgramPreference(ctx, programID, nodeNumber,
		middleware.CurrentZonalID(ctx), middleware.CurrentRole(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(preference))
}

// GetMyNotifications retrieves the incharge's alert inbox
// @Summary List own notifications
// @Description Retrieves the authenticated incharge's alerts, unresolved first
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param unresolvedOnly query bool false "Only return unresolved alerts" default(false)
// @Success 200 {object} dto.APIResponse{data=[]models.Notification} "Notifications retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /notifications/mine [get]
func (c *NotificationController) GetMyNotifications(ctx *gin.Context) {
	unresolvedOnly := ctx.Query("unresolvedOnly") == "true"

	notifications, err := c.notificationService.GetInchargeNotifications(ctx,
		middleware.CurrentZonalID(ctx), unresolvedOnly)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(notifications))
}

// ResolveNotification marks one of the incharge's alerts as handled
// @Summary Resolve a notification
// @Description Marks one of the authenticated incharge's alerts as handled
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} dto.APIResponse "Notification resolved"
// @Failure 400 {object} dto.ErrorResponse "Invalid notification ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Notification not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /notifications/{id}/resolve [post]
func (c *NotificationController) ResolveNotification(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid notification ID")
		errorDetail = errorDetail.WithDetails("Notification ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.notificationService.ResolveNotification(ctx, id, middleware.CurrentZonalID(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Notification resolved"))
}
