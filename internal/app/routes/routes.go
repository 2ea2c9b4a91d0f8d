package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/nnrgconnect/backend/internal/app/controllers"
	"github.com/nnrgconnect/backend/internal/app/models"
	"github.com/nnrgconnect/backend/internal/app/models/dto"
	"github.com/nnrgconnect/backend/internal/middleware"
)

// SetupRouter configures all application routes. Authorization is a
// route-layer concern: handlers behind RoleRequired trust that gate and
// the services below them do no further permission checks.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	adminController *controllers.AdminController,
	directoryController *controllers.DirectoryController,
	jobController *controllers.JobController,
	eventController *controllers.EventController,
	messageController *controllers.MessageController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/id-card", authController.UploadIDCard)
		auth.POST("/login", authController.Login)
		auth.POST("/logout", authController.Logout)
		auth.POST("/refresh", authController.RefreshToken)
		auth.GET("/session/:deviceId", authController.Session)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/profile", authController.Profile)

		directory := authenticated.Group("/directory")
		{
			directory.GET("", directoryController.List)
			directory.GET("/:key", directoryController.Get)
		}

		jobs := authenticated.Group("/jobs")
		{
			jobs.GET("", jobController.List)
			jobs.GET("/:id", jobController.Get)

			jobsAdminProtected := jobs.Group("")
			jobsAdminProtected.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
			{
				jobsAdminProtected.POST("", jobController.Create)
				jobsAdminProtected.PUT("/:id", jobController.Update)
				jobsAdminProtected.DELETE("/:id", jobController.Delete)
			}
		}

		events := authenticated.Group("/events")
		{
			events.GET("", eventController.List)
			events.GET("/:id", eventController.Get)
			events.POST("/:id/register", eventController.Register)
			events.DELETE("/:id/register", eventController.Unregister)

			eventsAdminProtected := events.Group("")
			eventsAdminProtected.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
			{
				eventsAdminProtected.POST("", eventController.Create)
				eventsAdminProtected.PUT("/:id", eventController.Update)
				eventsAdminProtected.DELETE("/:id", eventController.Delete)
			}
		}

		groups := authenticated.Group("/groups")
		{
			groups.GET("", messageController.Groups)
			groups.GET("/:group/messages", messageController.Messages)
			groups.POST("/:group/messages", messageController.Post)
		}

		admin := authenticated.Group("/admin")
		admin.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
		{
			admin.GET("/approvals", adminController.PendingApprovals)
			admin.PUT("/approvals/:id", adminController.SetApproval)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.NewAPIResponse(gin.H{"status": "ok"}))
	})
}
