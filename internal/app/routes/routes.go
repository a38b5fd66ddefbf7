package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/yigit/alumnihub/internal/app/controllers"
	"github.com/yigit/alumnihub/internal/app/models"
	"github.com/yigit/alumnihub/internal/middleware"
	"github.com/yigit/alumnihub/internal/pkg/realtime"
)

// Controllers bundles every HTTP handler the router mounts
type Controllers struct {
	Auth       *controllers.AuthController
	Directory  *controllers.DirectoryController
	Job        *controllers.JobController
	Event      *controllers.EventController
	Story      *controllers.StoryController
	Mentorship *controllers.MentorshipController
	Message    *controllers.MessageController
	Dashboard  *controllers.DashboardController
	Admin      *controllers.AdminController
	Workflow   *controllers.WorkflowController
	Health     *controllers.HealthController
	Upload     *controllers.UploadController
	Realtime   *realtime.Handler

	// UploadDir is served read-only under /uploads
	UploadDir string
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, h Controllers, authMiddleware *middleware.AuthMiddleware) {
	if h.UploadDir != "" {
		router.Static("/uploads", h.UploadDir)
	}

	// API version group
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	v1.GET("/health", h.Health.Health)

	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
	}

	// The handshake carries the token as a query parameter when the client cannot set headers
	v1.GET("/ws", authMiddleware.JWTAuth(), authMiddleware.ActiveAccountRequired(), h.Realtime.HandleConnection)

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth(), authMiddleware.ActiveAccountRequired())

	adminOnly := authMiddleware.RoleRequired(models.RoleAdmin)
	alumniOrAdmin := authMiddleware.RoleRequired(models.RoleAlumni, models.RoleAdmin)
	studentOnly := authMiddleware.RoleRequired(models.RoleStudent)

	authenticated.GET("/auth/me", h.Auth.Me)
	authenticated.GET("/dashboard", h.Dashboard.Get)

	// Directory and profile
	authenticated.GET("/alumni", h.Directory.SearchAlumni)
	authenticated.GET("/alumni/:id", h.Directory.GetAlumni)
	authenticated.GET("/profile", h.Directory.GetProfile)
	authenticated.PUT("/profile", h.Directory.UpdateProfile)

	// Jobs
	jobs := authenticated.Group("/jobs")
	{
		jobs.GET("", h.Job.List)
		jobs.GET("/:id", h.Job.Get)
		jobs.POST("", alumniOrAdmin, h.Job.Create)
		jobs.POST("/:id/apply", studentOnly, h.Job.Apply)
		jobs.GET("/:id/applications", alumniOrAdmin, h.Job.JobApplications)
		jobs.PUT("/:id/approve", adminOnly, h.Job.Approve)
		jobs.PUT("/:id/reject", adminOnly, h.Job.Reject)
		jobs.DELETE("/:id", alumniOrAdmin, h.Job.Delete)
	}

	applications := authenticated.Group("/applications")
	{
		applications.GET("", h.Job.MyApplications)
		applications.PUT("/:id/status", alumniOrAdmin, h.Job.UpdateApplicationStatus)
	}

	authenticated.POST("/uploads/resume", studentOnly, h.Upload.UploadResume)

	// Events
	events := authenticated.Group("/events")
	{
		events.GET("", h.Event.List)
		events.GET("/:id", h.Event.Get)
		events.POST("", h.Event.Create)
		events.POST("/:id/register", h.Event.Register)
		events.DELETE("/:id/register", h.Event.Unregister)
		events.PUT("/:id/approve", adminOnly, h.Event.Approve)
		events.PUT("/:id/reject", adminOnly, h.Event.Reject)
		events.DELETE("/:id", h.Event.Delete)
	}

	// Success stories
	stories := authenticated.Group("/success-stories")
	{
		stories.GET("", h.Story.List)
		stories.GET("/stats", h.Story.Stats)
		stories.GET("/:id", h.Story.Get)
		stories.POST("", h.Story.Submit)
		stories.POST("/:id/like", h.Story.ToggleLike)
		stories.PUT("/:id/approve", adminOnly, h.Story.Approve)
		stories.PUT("/:id/reject", adminOnly, h.Story.Reject)
		stories.PUT("/:id/feature", adminOnly, h.Story.ToggleFeature)
		stories.DELETE("/:id", h.Story.Delete)
	}

	// Mentorship
	mentorship := authenticated.Group("/mentorship/requests")
	{
		mentorship.GET("", h.Mentorship.List)
		mentorship.POST("", studentOnly, h.Mentorship.Request)
		mentorship.PUT("/:id/respond", h.Mentorship.Respond)
		mentorship.PUT("/:id/complete", h.Mentorship.Complete)
		mentorship.PUT("/:id/cancel", h.Mentorship.Cancel)
	}

	// Messaging
	messages := authenticated.Group("/messages")
	{
		messages.POST("", h.Message.Send)
		messages.GET("/conversations", h.Message.Conversations)
		messages.GET("/unread-count", h.Message.UnreadCount)
		messages.GET("/with/:userId", h.Message.Conversation)
		messages.PUT("/with/:userId/read", h.Message.MarkConversationRead)
		messages.PUT("/:id/delivered", h.Message.MarkDelivered)
		messages.PUT("/:id/read", h.Message.MarkRead)
	}

	authenticated.GET("/announcements", h.Message.Announcements)
	authenticated.POST("/announcements", adminOnly, h.Message.CreateAnnouncement)

	// --- Admin routes ---
	users := authenticated.Group("/users", adminOnly)
	{
		users.GET("", h.Admin.Users)
		users.PUT("/:id/status", h.Admin.UpdateUserStatus)
	}

	// Assignees update their own tasks; the service checks ownership
	authenticated.PUT("/tasks/:id/status", h.Workflow.UpdateTaskStatus)

	admin := authenticated.Group("/admin", adminOnly)
	{
		admin.GET("/stats", h.Admin.Stats)
		admin.GET("/alumni-verification", h.Admin.PendingVerifications)
		admin.POST("/alumni-verification", h.Admin.DecideVerification)
		admin.GET("/audit-logs", h.Admin.AuditLogs)
		admin.GET("/reports", h.Admin.Report)

		admin.GET("/workflows", h.Workflow.ListWorkflows)
		admin.POST("/workflows", h.Workflow.CreateWorkflow)
		admin.GET("/workflows/:id", h.Workflow.GetWorkflow)
		admin.PUT("/workflows/:id/start", h.Workflow.StartWorkflow)
		admin.PUT("/workflows/:id/steps/complete", h.Workflow.CompleteStep)
		admin.PUT("/workflows/:id/cancel", h.Workflow.CancelWorkflow)

		admin.GET("/tasks", h.Workflow.ListTasks)
		admin.POST("/tasks", h.Workflow.CreateTask)
		admin.POST("/tasks/:id/assign", h.Workflow.AssignTask)
		admin.PUT("/tasks/:id/assign", h.Workflow.AssignTask)
		admin.PUT("/tasks/:id/status", h.Workflow.UpdateTaskStatus)
	}
}
