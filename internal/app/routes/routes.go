package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rssb/sewadar-backend/internal/app/controllers"
	"github.com/rssb/sewadar-backend/internal/app/models"
	"github.com/rssb/sewadar-backend/internal/app/models/dto"
	"github.com/rssb/sewadar-backend/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	sewadarController *controllers.SewadarController,
	programController *controllers.ProgramController,
	applicationController *controllers.ApplicationController,
	workflowController *controllers.WorkflowController,
	formController *controllers.FormController,
	attendanceController *controllers.AttendanceController,
	notificationController *controllers.NotificationController,
	dashboardController *controllers.DashboardController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/change-password", authController.ChangePassword)

		// Sewadar roster routes
		sewadars := authenticated.Group("/sewadars")
		{
			sewadars.GET("/me", sewadarController.GetMe)
			sewadars.GET("", sewadarController.ListSewadars)
			sewadars.GET("/:zonalId", sewadarController.GetSewadar)
			sewadars.GET("/:zonalId/attendances", attendanceController.GetAttendanceBySewadar)
			sewadars.GET("/:zonalId/attendance-summary", attendanceController.GetSummary)

			// Self-edit is allowed; the service rejects edits to other profiles
			// by plain sewadars.
			sewadars.PUT("/:zonalId", sewadarController.UpdateSewadar)

			sewadarsStaffProtected := sewadars.Group("")
			sewadarsStaffProtected.Use(authMiddleware.RoleRequired(models.RoleIncharge, models.RoleAdmin))
			{
				sewadarsStaffProtected.POST("", sewadarController.CreateSewadar)
			}

			sewadarsAdminProtected := sewadars.Group("")
			sewadarsAdminProtected.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				sewadarsAdminProtected.DELETE("/:zonalId", sewadarController.DeleteSewadar)
			}
		}

		// Program routes
		programs := authenticated.Group("/programs")
		{
			programs.GET("", programController.ListPrograms)
			programs.GET("/:id", programController.GetProgram)

			// Application routes every sewadar can reach
			programs.POST("/:id/applications", applicationController.Apply)
			programs.POST("/:id/form-submissions", formController.SubmitForm)
			programs.GET("/:id/form-submissions/mine", formController.GetMySubmission)

			// Incharge routes over their own programs
			programsInchargeProtected := programs.Group("")
			programsInchargeProtected.Use(authMiddleware.RoleRequired(models.RoleIncharge, models.RoleAdmin))
			{
				programsInchargeProtected.POST("", programController.CreateProgram)
				programsInchargeProtected.GET("/mine", programController.ListMyPrograms)
				programsInchargeProtected.PUT("/:id", programController.UpdateProgram)
				programsInchargeProtected.PATCH("/:id/status", programController.UpdateProgramStatus)
				programsInchargeProtected.DELETE("/:id", programController.DeleteProgram)

				programsInchargeProtected.GET("/:id/applications", applicationController.GetApplicationsByProgram)
				programsInchargeProtected.GET("/:id/applications/prioritized", applicationController.GetPrioritized)
				programsInchargeProtected.GET("/:id/drop-requests", applicationController.GetDropRequests)

				programsInchargeProtected.GET("/:id/workflow", workflowController.GetWorkflow)
				programsInchargeProtected.POST("/:id/workflow/next-node", workflowController.AdvanceNode)
				programsInchargeProtected.POST("/:id/workflow/release-form", workflowController.ReleaseForm)
				programsInchargeProtected.POST("/:id/workflow/mark-details-collected", workflowController.MarkDetailsCollected)
				programsInchargeProtected.GET("/:id/workflow/missing-form-submitters", workflowController.GetMissingSubmitters)

				programsInchargeProtected.GET("/:id/form-submissions", formController.GetSubmissionsByProgram)
				programsInchargeProtected.GET("/:id/form-submissions/sewadar/:zonalId", formController.GetSubmissionForSewadar)

				programsInchargeProtected.POST("/:id/attendances", attendanceController.MarkAttendance)
				programsInchargeProtected.GET("/:id/attendances", attendanceController.GetAttendanceByProgram)

				programsInchargeProtected.GET("/:id/notification-preferences", notificationController.GetProgramPreferences)
				programsInchargeProtected.PUT("/:id/notification-preferences/:nodeNumber", notificationController.SetProgramPreference)
			}
		}

		// Application routes addressed by application ID
		applications := authenticated.Group("/applications")
		{
			applications.GET("/mine", applicationController.GetMyApplications)
			applications.POST("/:id/request-drop", applicationController.RequestDrop)

			applicationsInchargeProtected := applications.Group("")
			applicationsInchargeProtected.Use(authMiddleware.RoleRequired(models.RoleIncharge, models.RoleAdmin))
			{
				applicationsInchargeProtected.PATCH("/:id/decision", applicationController.Decide)
				applicationsInchargeProtected.POST("/:id/approve-drop", applicationController.ApproveDrop)
			}
		}

		// Form submissions addressed by submission ID
		authenticated.PUT("/form-submissions/:id", formController.UpdateSubmission)

		// Attendance corrections addressed by record ID
		attendances := authenticated.Group("/attendances")
		attendances.Use(authMiddleware.RoleRequired(models.RoleIncharge, models.RoleAdmin))
		{
			attendances.PUT("/:id", attendanceController.UpdateAttendance)
		}

		// Workflow routes not tied to a single program
		workflows := authenticated.Group("/workflows")
		workflows.Use(authMiddleware.RoleRequired(models.RoleIncharge, models.RoleAdmin))
		{
			workflows.GET("/mine", workflowController.GetMyWorkflows)

			workflowsAdminProtected := workflows.Group("")
			workflowsAdminProtected.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				workflowsAdminProtected.POST("/notify-daily", workflowController.RunDailySweep)
			}
		}

		// Global notification preference routes
		notificationPreferences := authenticated.Group("/notification-preferences")
		notificationPreferences.Use(authMiddleware.RoleRequired(models.RoleIncharge, models.RoleAdmin))
		{
			notificationPreferences.GET("", notificationController.ListGlobalPreferences)
			notificationPreferences.PUT("/:nodeNumber", notificationController.UpdateGlobalPreference)
		}

		// Incharge alert inbox
		notifications := authenticated.Group("/notifications")
		notifications.Use(authMiddleware.RoleRequired(models.RoleIncharge, models.RoleAdmin))
		{
			notifications.GET("/mine", notificationController.GetMyNotifications)
			notifications.POST("/:id/resolve", notificationController.ResolveNotification)
		}

		// Dashboard routes
		dashboard := authenticated.Group("/dashboard")
		dashboard.Use(authMiddleware.RoleRequired(models.RoleIncharge, models.RoleAdmin))
		{
			dashboard.GET("/sewadars", dashboardController.GetSewadarsDashboard)
			dashboard.GET("/applications", dashboardController.GetApplicationsDashboard)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.NewAPIResponse(gin.H{"status": "ok"}))
	})

	// Swagger routes are set up in bootstrap.go already
}
