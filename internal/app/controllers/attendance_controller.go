package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rssb/sewadar-backend/internal/app/models/dto"
	"github.com/rssb/sewadar-backend/internal/app/services"
	"github.com/rssb/sewadar-backend/internal/middleware"
)

// AttendanceController handles attendance marking and history
type AttendanceController struct {
	attendanceService *services.AttendanceService
}

// NewAttendanceController creates a new AttendanceController
func NewAttendanceController(attendanceService *services.AttendanceService) *AttendanceController {
	return &AttendanceController{
		attendanceService: attendanceService,
	}
}

// MarkAttendance records attendance for a batch of sewadars
// @Summary Mark attendance
// @Description Records attendance for a batch of sewadars in one program. Every named sewadar must hold an approved application. Re-marking a sewadar overwrites the earlier record.
// @Tags attendances
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program ID"
// @Param request body dto.MarkAttendanceRequest true "Attendance records"
// @Success 200 {object} dto.APIResponse{data=[]models.Attendance} "Attendance marked successfully"
// @Failure 400 {object} dto.ErrorResponse "A named sewadar has no approved application"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Not the program creator"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /programs/{id}/attendances [post]
func (c *AttendanceController) MarkAttendance(ctx *gin.Context) {
	programID, ok := parseProgramID(ctx, "id")
	if !ok {
		return
	}

	var req dto.MarkAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid attendance data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	records, err := c.attendanceService.MarkAttendance(ctx, programID,
		middleware.CurrentZonalID(ctx), middleware.CurrentRole(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(records))
}

// GetAttendanceByProgram retrieves a program's attendance records
// @Summary List program attendance
// @Description Retrieves all attendance records of a program for its creator
// @Tags attendances
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Attendance} "Attendance retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Not the program creator"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /programs/{id}/attendances [get]
func (c *AttendanceController) GetAttendanceByProgram(ctx *gin.Context) {
	programID, ok := parseProgramID(ctx, "id")
	if !ok {
		return
	}

	records, err := c.attendanceService.GetAttendanceByProgram(ctx, programID,
		middleware.CurrentZonalID(ctx), middleware.CurrentRole(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(records))
}

// UpdateAttendance corrects a single attendance record
// @Summary Update an attendance record
// @Description Corrects one attendance record. Only the creator of the record's program may correct it.
// @Tags attendances
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Attendance ID"
// @Param request body dto.UpdateAttendanceRequest true "Corrected attendance"
// @Success 200 {object} dto.APIResponse{data=models.Attendance} "Attendance updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid attendance data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Not the program creator"
// @Failure 404 {object} dto.ErrorResponse "Attendance record not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendances/{id} [put]
func (c *AttendanceController) UpdateAttendance(ctx *gin.Context) {
	attendanceID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid attendance ID")
		errorDetail = errorDetail.WithDetails("Attendance ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.UpdateAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid attendance data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	record, err := c.attendanceService.UpdateAttendance(ctx, attendanceID,
		middleware.CurrentZonalID(ctx), middleware.CurrentRole(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(record))
}

// GetAttendanceBySewadar retrieves a sewadar's attendance history
// @Summary List sewadar attendance
// @Description Retrieves a sewadar's attendance records across all programs, newest first
// @Tags attendances
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param zonalId path string true "Zonal ID" example(ZN-1042)
// @Success 200 {object} dto.APIResponse{data=[]models.Attendance} "Attendance retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /sewadars/{zonalId}/attendances [get]
func (c *AttendanceController) GetAttendanceBySewadar(ctx *gin.Context) {
	records, err := c.attendanceService.GetAttendanceBySewadar(ctx, ctx.Param("zonalId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(records))
}

// GetSummary aggregates a sewadar's attendance history
// @Summary Get attendance summary
// @Description Aggregates a sewadar's attendance history split by the BEAS / NON_BEAS classification, with the derived priority score
// @Tags attendances
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param zonalId path string true "Zonal ID" example(ZN-1042)
// @Success 200 {object} dto.APIResponse{data=models.AttendanceSummary} "Summary retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /sewadars/{zonalId}/attendance-summary [get]
func (c *AttendanceController) GetSummary(ctx *gin.Context) {
	summary, err := c.attendanceService.GetSummary(ctx, ctx.Param("zonalId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(summary))
}
