package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rssb/sewadar-backend/internal/app/models/dto"
	"github.com/rssb/sewadar-backend/internal/app/services"
	"github.com/rssb/sewadar-backend/internal/middleware"
)

// SewadarController handles roster management operations
type SewadarController struct {
	sewadarService *services.SewadarService
}

// NewSewadarController creates a new SewadarController
func NewSewadarController(sewadarService *services.SewadarService) *SewadarController {
	return &SewadarController{
		sewadarService: sewadarService,
	}
}

// CreateSewadar registers a new sewadar
// @Summary Register a sewadar
// @Description Registers a new sewadar on the roster. The zonal ID must be unique; the role defaults to SEWADAR.
// @Tags sewadars
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSewadarRequest true "Sewadar information"
// @Success 201 {object} dto.APIResponse{data=models.Sewadar} "Sewadar registered successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 409 {object} dto.ErrorResponse "Zonal ID already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /sewadars [post]
func (c *SewadarController) CreateSewadar(ctx *gin.Context) {
	var req dto.CreateSewadarRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid sewadar data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	sewadar, err := c.sewadarService.CreateSewadar(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(sewadar))
}

// GetSewadar retrieves a sewadar by zonal ID
// @Summary Get sewadar by zonal ID
// @Description Retrieves a specific sewadar from the roster
// @Tags sewadars
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param zonalId path string true "Zonal ID" example(ZN-1042)
// @Success 200 {object} dto.APIResponse{data=models.Sewadar} "Sewadar retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Sewadar not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /sewadars/{zonalId} [get]
func (c *SewadarController) GetSewadar(ctx *gin.Context) {
	sewadar, err := c.sewadarService.GetSewadar(ctx, ctx.Param("zonalId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(sewadar))
}

// GetMe retrieves the authenticated sewadar's own profile
// @Summary Get own profile
// @Description Retrieves the profile of the authenticated sewadar
// @Tags sewadars
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.Sewadar} "Profile retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /sewadars/me [get]
func (c *SewadarController) GetMe(ctx *gin.Context) {
	sewadar, err := c.sewadarService.GetSewadar(ctx, middleware.CurrentZonalID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(sewadar))
}

// ListSewadars retrieves a filtered roster page
// @Summary List sewadars
// @Description Retrieves a filtered, paginated page of the roster. Name matches first or last name, case-insensitively.
// @Tags sewadars
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param name query string false "Filter by first or last name"
// @Param location query string false "Filter by location"
// @Param profession query string false "Filter by profession"
// @Param language query string false "Filter by spoken language"
// @Param role query string false "Filter by role" Enums(SEWADAR, INCHARGE, ADMIN)
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Sewadars retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /sewadars [get]
func (c *SewadarController) ListSewadars(ctx *gin.Context) {
	var filter dto.SewadarFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid filter parameters")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	sewadars, pagination, err := c.sewadarService.ListSewadars(ctx, &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PaginatedResponse{
		Items:      sewadars,
		Pagination: pagination,
	}))
}

// UpdateSewadar updates an existing sewadar
// @Summary Update a sewadar
// @Description Updates an existing sewadar's profile. The zonal ID cannot change. Incharges and admins may edit anyone; a sewadar may edit only their own profile.
// @Tags sewadars
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param zonalId path string true "Zonal ID" example(ZN-1042)
// @Param request body dto.UpdateSewadarRequest true "Updated sewadar information"
// @Success 200 {object} dto.APIResponse{data=models.Sewadar} "Sewadar updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Sewadar not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /sewadars/{zonalId} [put]
func (c *SewadarController) UpdateSewadar(ctx *gin.Context) {
	var req dto.UpdateSewadarRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid sewadar data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	sewadar, err := c.sewadarService.UpdateSewadar(ctx, ctx.Param("zonalId"),
		middleware.CurrentZonalID(ctx), middleware.CurrentRole(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(sewadar))
}

// DeleteSewadar removes a sewadar from the roster
// @Summary Delete a sewadar
// @Description Removes a sewadar from the roster. Sewadars with program applications cannot be deleted.
// @Tags sewadars
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param zonalId path string true "Zonal ID" example(ZN-1042)
// @Success 204 "Sewadar deleted successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Sewadar not found"
// @Failure 409 {object} dto.ErrorResponse "Sewadar has program applications"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /sewadars/{zonalId} [delete]
func (c *SewadarController) DeleteSewadar(ctx *gin.Context) {
	if err := c.sewadarService.DeleteSewadar(ctx, ctx.Param("zonalId")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
